package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWashBooking/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-CarWashBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CarWashBooking/pkg/logger"
)

var cet = time.FixedZone("CET", 60*60)

type useCaseMock struct{ mock.Mock }

func (m *useCaseMock) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*createBooking.Response)
	return resp, args.Error(1)
}

const validBody = `{"name":"Jonas","phone":"+49160","email":"jonas@example.com","service":"car_easy","start_time":"2030-06-01T10:00:00"}`

func doRequest(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/book", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_Created(t *testing.T) {
	uc := &useCaseMock{}
	h := NewHandler(uc, cet, logger.NewNop())

	start := time.Date(2030, 6, 1, 10, 0, 0, 0, cet)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *createBooking.Request) bool {
		return r.StartTime.Equal(start) && r.ServiceID == "car_easy" && r.CustomerEmail == "jonas@example.com"
	})).Return(&createBooking.Response{
		ID:           7,
		CustomerName: "Jonas",
		ServiceID:    "car_easy",
		ServiceName:  "Easy",
		ServicePrice: 19.9,
		StartTime:    start.UTC(),
		EndTime:      start.Add(30 * time.Minute).UTC(),
		Status:       "confirmed",
		CancelToken:  "tok",
		CreatedAt:    start,
	}, nil)

	rec := doRequest(h, validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp BookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.OK)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "tok", resp.CancelToken)
	assert.Equal(t, "2030-06-01T10:00:00", resp.StartTime)
	assert.Equal(t, "2030-06-01T10:30:00", resp.EndTime)
	uc.AssertExpectations(t)
}

func TestHandler_ShortStartTimeLayout(t *testing.T) {
	uc := &useCaseMock{}
	h := NewHandler(uc, cet, logger.NewNop())

	start := time.Date(2030, 6, 1, 9, 30, 0, 0, cet)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *createBooking.Request) bool {
		return r.StartTime.Equal(start)
	})).Return(&createBooking.Response{ID: 1, StartTime: start, EndTime: start}, nil)

	rec := doRequest(h, strings.Replace(validBody, "2030-06-01T10:00:00", "2030-06-01T09:30", 1))

	assert.Equal(t, http.StatusCreated, rec.Code)
	uc.AssertExpectations(t)
}

func TestHandler_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"name":`},
		{name: "missing email", body: `{"name":"A","phone":"1","service":"car_easy","start_time":"2030-06-01T10:00:00"}`},
		{name: "invalid email", body: strings.Replace(validBody, "jonas@example.com", "jonas", 1)},
		{name: "bad start_time", body: strings.Replace(validBody, "2030-06-01T10:00:00", "01.06.2030 10:00", 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &useCaseMock{}
			h := NewHandler(uc, cet, logger.NewNop())

			rec := doRequest(h, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var body handlers.ErrorBody
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, handlers.KindInvalidInput, body.Error.Kind)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_UseCaseErrors(t *testing.T) {
	tests := []struct {
		err     error
		status  int
		kind    handlers.ErrorKind
		message string
	}{
		{createBooking.ErrSlotTaken, http.StatusConflict, handlers.KindSlotTaken, msgSlotTaken},
		{createBooking.ErrUnknownService, http.StatusBadRequest, handlers.KindUnknownService, msgUnknownService},
		{createBooking.ErrPastTime, http.StatusBadRequest, handlers.KindPastTime, msgPastTime},
		{createBooking.ErrOutsideBusinessHours, http.StatusBadRequest, handlers.KindOutsideBusinessHours, msgOutsideHours},
		{createBooking.ErrInvalidInput, http.StatusBadRequest, handlers.KindInvalidInput, msgInvalidCustomer},
		{fmt.Errorf("%w: boom", createBooking.ErrInternal), http.StatusInternalServerError, handlers.KindInternal, "Interner Serverfehler"},
		{errors.New("unexpected"), http.StatusInternalServerError, handlers.KindInternal, "Interner Serverfehler"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := &useCaseMock{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)
			h := NewHandler(uc, cet, logger.NewNop())

			rec := doRequest(h, validBody)

			assert.Equal(t, tt.status, rec.Code)
			var body handlers.ErrorBody
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.kind, body.Error.Kind)
			assert.Equal(t, tt.message, body.Error.Message)
		})
	}
}

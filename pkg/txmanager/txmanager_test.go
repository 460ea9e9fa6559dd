package txmanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWashBooking/pkg/dbmetrics"
)

func newManager(t *testing.T, opts ...Option) (*TransactionManager, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	opts = append([]Option{WithBackoff(time.Millisecond)}, opts...)
	return NewTransactionManager(dbmetrics.Wrap(db, nil), opts...), mock
}

func TestDo_CommitsOnSuccess(t *testing.T) {
	m, mock := newManager(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	err := m.Do(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_RollsBackOnError(t *testing.T) {
	m, mock := newManager(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := m.Do(context.Background(), func(ctx context.Context) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_NestedCallReusesTransaction(t *testing.T) {
	m, mock := newManager(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.Do(ctx, func(context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializable_RetriesSerializationFailure(t *testing.T) {
	retries := 0
	m, mock := newManager(t, WithRetryHook(func() { retries++ }))
	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectCommit()

	calls := 0
	err := m.DoSerializable(context.Background(), func(context.Context) error {
		calls++
		if calls == 1 {
			return &pq.Error{Code: codeSerializationFailure}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, retries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializable_RetriesExhausted(t *testing.T) {
	m, mock := newManager(t, WithMaxAttempts(2))
	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectRollback()
	}

	err := m.DoSerializable(context.Background(), func(context.Context) error {
		return &pq.Error{Code: codeDeadlockDetected}
	})

	assert.ErrorIs(t, err, ErrRetriesExhausted)
	assert.True(t, IsRetryable(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializable_DoesNotRetryOtherErrors(t *testing.T) {
	m, mock := newManager(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	calls := 0
	err := m.DoSerializable(context.Background(), func(context.Context) error {
		calls++
		return &pq.Error{Code: "23505"}
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.NotErrorIs(t, err, ErrRetriesExhausted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_BeginFailure(t *testing.T) {
	m, mock := newManager(t)
	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	err := m.Do(context.Background(), func(context.Context) error { return nil })

	assert.ErrorIs(t, err, ErrTransaction)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package handlers

import (
	"encoding/json"
	"net/http"
)

// ErrorKind машинно-читаемый вид ошибки в ответе
type ErrorKind string

const (
	KindInvalidInput         ErrorKind = "InvalidInput"
	KindUnknownService       ErrorKind = "UnknownService"
	KindPastTime             ErrorKind = "PastTime"
	KindOutsideBusinessHours ErrorKind = "OutsideBusinessHours"
	KindSlotTaken            ErrorKind = "SlotTaken"
	KindNotFound             ErrorKind = "NotFound"
	KindUnauthorized         ErrorKind = "Unauthorized"
	KindInternal             ErrorKind = "Internal"
)

const msgInternalError = "Interner Serverfehler"

// ErrorBody тело ответа с ошибкой: {"error": {"kind": "...", "message": "..."}}
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// RespondJSON пишет v как JSON с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError пишет ошибку заданного вида
func RespondError(w http.ResponseWriter, status int, kind ErrorKind, message string) {
	RespondJSON(w, status, ErrorBody{Error: ErrorDetail{Kind: kind, Message: message}})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, KindInvalidInput, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, KindNotFound, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, KindUnauthorized, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, KindInternal, msgInternalError)
}

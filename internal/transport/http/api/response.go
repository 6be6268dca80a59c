package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"hrstore/internal/store"
)

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     *Error `json:"error,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("write json failed", "err", err)
	}
}

func Success(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Created(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusCreated, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Fail(w http.ResponseWriter, status int, code, message, requestID string) {
	WriteJSON(w, status, Envelope{Success: false, Error: &Error{Code: code, Message: message}, RequestID: requestID})
}

func FailWithDetails(w http.ResponseWriter, status int, code, message string, details any, requestID string) {
	WriteJSON(w, status, Envelope{
		Success:   false,
		Error:     &Error{Code: code, Message: message, Details: details},
		RequestID: requestID,
	})
}

// FromError maps a store-layer error onto the wire contract.
func FromError(w http.ResponseWriter, err error, requestID string) {
	var verr *store.ValidationError
	switch {
	case errors.As(err, &verr):
		FailWithDetails(w, http.StatusBadRequest, "validation_error", "payload validation failed",
			map[string]any{"fields": verr.Issues}, requestID)
	case errors.Is(err, store.ErrNotFound):
		Fail(w, http.StatusNotFound, "not_found", "record not found", requestID)
	case errors.Is(err, store.ErrDuplicateKey):
		Fail(w, http.StatusConflict, "duplicate_key", err.Error(), requestID)
	case errors.Is(err, store.ErrReference):
		Fail(w, http.StatusUnprocessableEntity, "reference_error", err.Error(), requestID)
	case errors.Is(err, store.ErrConcurrencyConflict):
		Fail(w, http.StatusPreconditionFailed, "concurrency_conflict", "record modified concurrently", requestID)
	case errors.Is(err, store.ErrStorageUnavailable):
		Fail(w, http.StatusServiceUnavailable, "storage_unavailable", "storage unavailable", requestID)
	default:
		slog.Error("request failed", "err", err, "requestId", requestID)
		Fail(w, http.StatusInternalServerError, "internal_error", "internal error", requestID)
	}
}

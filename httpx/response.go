// Package httpx holds the JSON response helpers shared by every handler.
// All bodies use the stable {success, message, data?, errors?} shape.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/diewo77/jobboard/internal/lifecycle"
)

// Response is the envelope every endpoint returns.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// JSON writes an arbitrary payload with the given status.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	body, err := json.Marshal(payload)
	if err != nil {
		// best-effort error response; avoid writing partial JSON
		http.Error(w, `{"success":false,"message":"encode error"}`, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		_ = err
	}
}

// OK writes a success envelope.
func OK(w http.ResponseWriter, status int, message string, data any) {
	JSON(w, status, Response{Success: true, Message: message, Data: data})
}

// Error writes a failure envelope.
func Error(w http.ResponseWriter, status int, message string, errs any) {
	JSON(w, status, Response{Success: false, Message: message, Errors: errs})
}

// DomainError maps a lifecycle error onto the HTTP taxonomy:
// validation 400, forbidden 403, not found 404, conflicts 409,
// notifier outage 502, anything else 500.
func DomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, lifecycle.ErrInvalidStatus):
		Error(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, lifecycle.ErrForbidden):
		Error(w, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, lifecycle.ErrNotFound),
		errors.Is(err, lifecycle.ErrJobNotFound),
		errors.Is(err, lifecycle.ErrNotSaved):
		Error(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, lifecycle.ErrAlreadyApplied),
		errors.Is(err, lifecycle.ErrAlreadySaved),
		errors.Is(err, lifecycle.ErrJobClosed),
		errors.Is(err, lifecycle.ErrInvalidTransition),
		errors.Is(err, lifecycle.ErrWithdrawLocked):
		Error(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, lifecycle.ErrNotificationFailed):
		Error(w, http.StatusBadGateway, err.Error(), nil)
	default:
		Error(w, http.StatusInternalServerError, "internal error", nil)
	}
}

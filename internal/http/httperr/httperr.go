package httperr

import (
	"encoding/json"
	"net/http"
)

// Error is an API-level failure with an HTTP status, a user-facing message
// and, for validation failures, a field→message map. It satisfies the error
// interface so guards and handlers can return it directly.
type Error struct {
	Status  int               `json:"-"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
	Detail  string            `json:"detail,omitempty"`
}

func (e *Error) Error() string { return e.Message }

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

func Conflict(message string) *Error {
	return New(http.StatusConflict, message)
}

func UnsupportedMediaType(message string) *Error {
	return New(http.StatusUnsupportedMediaType, message)
}

func RequestEntityTooLarge(message string) *Error {
	return New(http.StatusRequestEntityTooLarge, message)
}

func TooManyRequests(message string) *Error {
	return New(http.StatusTooManyRequests, message)
}

// Unprocessable carries the aggregated field errors of a failed validation.
func Unprocessable(message string, fields map[string]string) *Error {
	return &Error{Status: http.StatusUnprocessableEntity, Message: message, Errors: fields}
}

// UnprocessableEntityField reports a single invalid field.
func UnprocessableEntityField(field, message string) *Error {
	return Unprocessable("Error de validación en los datos enviados", map[string]string{field: message})
}

// Internal is the catch-all for unexpected failures. The cause is logged at
// the call site and never exposed to the client.
func Internal() *Error {
	return New(http.StatusInternalServerError, "Error interno del servidor")
}

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
	Detail  string            `json:"detail,omitempty"`
}

// Write renders the error envelope. Unauthorized responses also carry the
// WWW-Authenticate challenge.
func Write(w http.ResponseWriter, e *Error) {
	w.Header().Set("Content-Type", "application/json")
	if e.Status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	w.WriteHeader(e.Status)
	_ = json.NewEncoder(w).Encode(envelope{
		Message: e.Message,
		Errors:  e.Errors,
		Detail:  e.Detail,
	})
}

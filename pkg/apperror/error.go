package apperror

import "net/http"

// Kind classifies an error for callers that need more than an HTTP code.
type Kind string

const (
	KindNotFound           Kind = "not_found"
	KindInvalidInput       Kind = "invalid_input"
	KindInvalidState       Kind = "invalid_state"
	KindPersistenceTimeout Kind = "persistence_timeout"
	KindPersistenceFailure Kind = "persistence_failure"
)

type AppError struct {
	Kind    Kind   `json:"kind"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind Kind, code int, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NotFound(message string) *AppError {
	return New(KindNotFound, http.StatusNotFound, message, nil)
}

func InvalidInput(message string) *AppError {
	return New(KindInvalidInput, http.StatusBadRequest, message, nil)
}

func InvalidState(message string) *AppError {
	return New(KindInvalidState, http.StatusConflict, message, nil)
}

func PersistenceTimeout(message string, err error) *AppError {
	return New(KindPersistenceTimeout, http.StatusServiceUnavailable, message, err)
}

func PersistenceFailure(err error) *AppError {
	return New(KindPersistenceFailure, http.StatusInternalServerError, "Storage operation failed", err)
}

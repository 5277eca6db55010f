package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the error type every layer of the service returns. The Code
// doubles as the HTTP status the router responds with.
type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
	Op      string `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// InvalidInput marks a client mistake: unparseable URL, missing or
// out-of-range parameter.
func InvalidInput(op string, err error, message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

// NotAvailable marks a video that has no transcript (captions disabled or
// none published).
func NotAvailable(op string, err error, message string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

// Upstream marks a failure of an external collaborator: the transcript
// source or the completion provider.
func Upstream(op string, err error, message string) *AppError {
	return &AppError{
		Code:    http.StatusBadGateway,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

func Internal(op string, err error, message string) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

func IsNotAvailable(err error) bool {
	return codeOf(err) == http.StatusNotFound
}

func IsInvalidInput(err error) bool {
	return codeOf(err) == http.StatusBadRequest
}

func IsUpstream(err error) bool {
	return codeOf(err) == http.StatusBadGateway
}

func codeOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return 0
}

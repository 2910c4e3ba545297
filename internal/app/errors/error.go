package errors

import (
	"net/http"
	"reflect"

	"github.com/sirupsen/logrus"
)

type AppError struct {
	StatusCode int
	Message    string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(statusCode int, message string) *AppError {
	return &AppError{
		StatusCode: statusCode,
		Message:    message,
	}
}

func NewBadRequestError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message)
}

func NewUnauthorizedError(message ...string) *AppError {
	if len(message) > 0 {
		return NewAppError(http.StatusUnauthorized, message[0])
	}
	return NewAppError(http.StatusUnauthorized, "Unauthorized")
}

func NewForbiddenError(message ...string) *AppError {
	if len(message) > 0 {
		return NewAppError(http.StatusForbidden, message[0])
	}
	return NewAppError(http.StatusForbidden, "Insufficient permissions")
}

func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message)
}

func NewConflictError(message string) *AppError {
	return NewAppError(http.StatusConflict, message)
}

func NewTooManyRequestsError(message string) *AppError {
	return NewAppError(http.StatusTooManyRequests, message)
}

// NewServiceUnavailableError covers external provider failures after retries
// and fallbacks are exhausted. The provider error is logged, never returned.
func NewServiceUnavailableError(originalError error, message string) *AppError {
	if originalError != nil {
		logrus.Errorf("[%s] %s", reflect.TypeOf(originalError).String(), originalError)
	}
	return NewAppError(http.StatusServiceUnavailable, message)
}

func NewInternalServerError(originalError error, message string) *AppError {
	logrus.Errorf("[%s] %s", reflect.TypeOf(originalError).String(), originalError)
	return NewAppError(http.StatusInternalServerError, message)
}

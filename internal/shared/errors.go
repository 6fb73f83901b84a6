package shared

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorEnvelope is the body of every failed rooms request.
type ErrorEnvelope struct {
	Message string `json:"message" example:"Unable to get room with sid=RM00000000000000000000000000000000"`
	Error   any    `json:"error,omitempty" swaggertype:"object"`
}

func NewErrorEnvelope(message string, cause any) *ErrorEnvelope {
	return &ErrorEnvelope{
		Message: message,
		Error:   cause,
	}
}

func (e *ErrorEnvelope) ToHTTP(status int) *echo.HTTPError {
	return echo.NewHTTPError(status, e)
}

func BadRequest(message string, cause any) *echo.HTTPError {
	return NewErrorEnvelope(message, cause).ToHTTP(http.StatusBadRequest)
}

func InternalError(message string, cause any) *echo.HTTPError {
	return NewErrorEnvelope(message, cause).ToHTTP(http.StatusInternalServerError)
}

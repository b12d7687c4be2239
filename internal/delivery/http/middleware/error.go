package middleware

import (
	"errors"
	"log"

	"jobboard/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// ErrorMiddleware turns any error or panic that escapes a handler into the
// semantic response envelope. Causes behind 5xx errors are logged here and
// never reach the client.
type ErrorMiddleware struct {
	logger *log.Logger
}

func NewErrorMiddleware(logger *log.Logger) *ErrorMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &ErrorMiddleware{logger: logger}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Printf("panic recovered | method=%s path=%s err=%v", c.Method(), c.Path(), r)
				err = response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		status, msg, data := m.toEnvelope(err)
		if status >= 500 {
			m.logger.Printf("request failed | method=%s path=%s err=%v", c.Method(), c.Path(), err)
		}
		return response.Error(c, status, msg, data)
	}
}

func (m *ErrorMiddleware) toEnvelope(err error) (int, string, interface{}) {
	status, msg, data := classify(err)
	if status < 100 {
		status = fiber.StatusInternalServerError
	}
	if status >= 500 {
		return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
	}
	if msg == "" {
		msg = response.DefaultMessageForStatus(status)
	}
	return status, msg, data
}

func classify(err error) (int, string, interface{}) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode, appErr.Message, appErr.Data
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message, nil
	}
	return fiber.StatusInternalServerError, "", nil
}

// AppError carries an HTTP status and client-facing message alongside the
// underlying cause. Handlers return it so the middleware above picks the
// right envelope.
type AppError struct {
	StatusCode int
	Message    string
	Data       interface{}
	Cause      error
}

func NewAppError(statusCode int, message string, data interface{}, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Data: data, Cause: cause}
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

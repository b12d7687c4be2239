package response

import "github.com/gofiber/fiber/v3"

// SemanticResponse is the envelope every JSON endpoint returns. Status
// mirrors the HTTP code so clients reading the body alone see the outcome.
type SemanticResponse struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

const (
	MessageOK                  = "ok"
	MessageBadRequest          = "bad request"
	MessageUnauthorized        = "unauthorized"
	MessageForbidden           = "forbidden"
	MessageNotFound            = "not found"
	MessageConflict            = "conflict"
	MessageUnprocessableEntity = "unprocessable entity"
	MessageInternalServerError = "internal server error"
	MessageError               = "error"
)

var statusMessages = map[int]string{
	fiber.StatusOK:                  MessageOK,
	fiber.StatusBadRequest:          MessageBadRequest,
	fiber.StatusUnauthorized:        MessageUnauthorized,
	fiber.StatusForbidden:           MessageForbidden,
	fiber.StatusNotFound:            MessageNotFound,
	fiber.StatusConflict:            MessageConflict,
	fiber.StatusUnprocessableEntity: MessageUnprocessableEntity,
}

func Success(c fiber.Ctx, status int, message string, data interface{}) error {
	return write(c, status, message, data)
}

// Error shares the same envelope shape as Success so clients parse one
// structure everywhere.
func Error(c fiber.Ctx, status int, message string, data interface{}) error {
	return write(c, status, message, data)
}

func write(c fiber.Ctx, status int, message string, data interface{}) error {
	if status < 100 || status > 599 {
		status = fiber.StatusInternalServerError
	}
	if message == "" {
		message = DefaultMessageForStatus(status)
	}
	return c.Status(status).JSON(SemanticResponse{Status: status, Message: message, Data: data})
}

// DefaultMessageForStatus maps an HTTP status to its canonical envelope
// message, used when the caller does not supply one.
func DefaultMessageForStatus(status int) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	if status >= 500 {
		return MessageInternalServerError
	}
	return MessageError
}

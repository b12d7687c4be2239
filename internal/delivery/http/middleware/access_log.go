package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// AccessLogMiddleware tags every request with an ID and writes one line per
// request once the handler chain finishes.
type AccessLogMiddleware struct {
	logger *log.Logger
}

func NewAccessLogMiddleware(logger *log.Logger) *AccessLogMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &AccessLogMiddleware{logger: logger}
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		rid := requestID(c)

		err := c.Next()

		m.logger.Printf(
			"HTTP access | rid=%s method=%s path=%s status=%d latency=%s ip=%s bytes_in=%d bytes_out=%d ua=%q",
			rid,
			c.Method(),
			c.OriginalURL(),
			c.Response().StatusCode(),
			time.Since(start).Round(time.Microsecond),
			c.IP(),
			c.Request().Header.ContentLength(),
			c.Response().Header.ContentLength(),
			c.Get("User-Agent"),
		)
		return err
	}
}

// requestID reuses a caller-provided X-Request-ID so lines correlate across
// services, minting one otherwise. The ID is echoed on the response either
// way and stored in locals for handlers that log.
func requestID(c fiber.Ctx) string {
	rid := c.Get(requestIDHeader)
	if rid == "" {
		rid = uuid.NewString()
	}
	c.Set(requestIDHeader, rid)
	c.Locals("request_id", rid)
	return rid
}

package ws

import (
	"log"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Handler upgrades HTTP requests into hub subscriptions. gorilla/websocket
// needs net/http semantics, so the fiber route goes through the adaptor.
type Handler struct {
	hub      *Hub
	logger   *log.Logger
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub, logger *log.Logger) *Handler {
	return &Handler{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// HandleExtractionWS subscribes the client to skill-extraction events. A
// company_id query param narrows delivery to that company's events; without
// it the client receives all of them.
func (h *Handler) HandleExtractionWS(c fiber.Ctx) error {
	if h == nil || h.hub == nil {
		return fiber.ErrServiceUnavailable
	}

	topic, err := topicFromQuery(c)
	if err != nil {
		return fiber.ErrBadRequest
	}

	return adaptor.HTTPHandlerFunc(h.subscribe(topic))(c)
}

func topicFromQuery(c fiber.Ctx) (string, error) {
	raw := fiber.Query[string](c, "company_id")
	if raw == "" {
		return "", nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", err
	}
	return CompanyTopic(id), nil
}

func (h *Handler) subscribe(topic string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			if h.logger != nil {
				h.logger.Printf("websocket upgrade failed | err=%v", err)
			}
			return
		}

		client := NewClient(h.hub, conn, topic)
		h.hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	}
}

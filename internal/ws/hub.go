package ws

import (
	"log"
	"sync"
)

// Hub fans extraction events out to connected dashboard clients. Every
// client subscribes to one topic; a client with an empty topic receives
// every event.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan envelope
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once
	mutex      sync.RWMutex
	logger     *log.Logger
}

type envelope struct {
	topic   string
	payload []byte
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan envelope, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.mutex.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.mutex.Unlock()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mutex.Unlock()
			if h.logger != nil {
				h.logger.Printf("WS connected | topic=%s total_clients=%d", client.topic, total)
			}

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			total := len(h.clients)
			h.mutex.Unlock()
			if h.logger != nil {
				h.logger.Printf("WS disconnected | total_clients=%d", total)
			}

		case env := <-h.broadcast:
			h.mutex.RLock()
			receivers := make([]*Client, 0, len(h.clients))
			for c := range h.clients {
				if c.topic == "" || c.topic == env.topic {
					receivers = append(receivers, c)
				}
			}
			h.mutex.RUnlock()

			for _, client := range receivers {
				select {
				case client.send <- env.payload:
				default:
					h.unregister <- client
				}
			}
		}
	}
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

// Broadcast queues a payload for every subscriber of topic plus the
// firehose clients. Delivery is best effort: a full hub buffer drops the
// event rather than stalling the caller.
func (h *Hub) Broadcast(topic string, payload []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- envelope{topic: topic, payload: payload}:
	default:
		if h.logger != nil {
			h.logger.Printf("WS broadcast dropped | topic=%s reason=buffer_full", topic)
		}
	}
}

// Stop shuts the hub loop down and disconnects every client.
func (h *Hub) Stop() {
	if h == nil {
		return
	}
	h.stopOnce.Do(func() {
		close(h.done)
	})
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	EventJobPosted            = "job_posted"
	EventApplicationCreated   = "application_created"
	EventApplicationDecided   = "application_decided"
	EventAppointmentConfirmed = "appointment_confirmed"
)

// Event is the frame pushed to subscribers.
type Event struct {
	Type      string `json:"type"`
	Topic     string `json:"topic"`
	Data      any    `json:"data,omitempty"`
	Timestamp string `json:"timestamp"`
}

type message struct {
	topic   string
	payload []byte
}

type Hub struct {
	clients    map[*Client]bool
	broadcast  chan message
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	logger     *zap.Logger
	now        func() time.Time
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan message, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		logger:     logger.With(zap.String("component", "ws_hub")),
		now:        time.Now,
	}
}

// Run dispatches messages until ctx is done, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
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
			h.logger.Debug("ws connected", zap.String("topic", client.topic), zap.Int("total_clients", total))

		case client := <-h.unregister:
			h.remove(client)

		case msg := <-h.broadcast:
			h.mutex.RLock()
			targets := make([]*Client, 0, len(h.clients))
			for c := range h.clients {
				if c.topic == msg.topic {
					targets = append(targets, c)
				}
			}
			h.mutex.RUnlock()

			for _, client := range targets {
				select {
				case client.send <- msg.payload:
				default:
					h.remove(client)
				}
			}
			h.logger.Debug("ws broadcast", zap.String("topic", msg.topic), zap.Int("clients", len(targets)))
		}
	}
}

func (h *Hub) remove(client *Client) {
	if client == nil {
		return
	}
	h.mutex.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	total := len(h.clients)
	h.mutex.Unlock()
	h.logger.Debug("ws disconnected", zap.String("topic", client.topic), zap.Int("total_clients", total))
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

// Publish sends an event to the subscribers of topic. It never blocks; events
// are dropped when the hub is saturated.
func (h *Hub) Publish(topic, eventType string, data any) {
	if h == nil || topic == "" {
		return
	}
	b, err := json.Marshal(Event{
		Type:      eventType,
		Topic:     topic,
		Data:      data,
		Timestamp: h.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		h.logger.Warn("ws event encode failed", zap.String("type", eventType), zap.Error(err))
		return
	}
	select {
	case h.broadcast <- message{topic: topic, payload: b}:
	default:
		h.logger.Warn("ws broadcast dropped", zap.String("reason", "buffer_full"), zap.String("topic", topic))
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

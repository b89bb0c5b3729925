package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Message is the envelope of every frame in both directions.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Hub keeps the send queues of live connections and implements the game notifier.
type Hub struct {
	logger *slog.Logger

	mutex   sync.RWMutex
	clients map[string]*client
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger.With("component", "hub"),
		clients: make(map[string]*client),
	}
}

// Send queues one event for a connection. A full queue drops the event
// so that a slow reader never stalls a room.
func (that *Hub) Send(connID, action string, payload any) {
	log := that.logger.With("method", "Send", "connID", connID, "action", action)

	data, err := encode(action, payload)
	if err != nil {
		log.Error("failed to encode event", "error", err)
		return
	}

	that.mutex.RLock()
	defer that.mutex.RUnlock()

	c, ok := that.clients[connID]
	if !ok {
		log.Debug("connection is gone")
		return
	}

	select {
	case c.send <- data:
	default:
		log.Warn("send queue is full, event dropped")
	}
}

func (that *Hub) register(c *client) {
	that.mutex.Lock()
	defer that.mutex.Unlock()

	that.clients[c.id] = c
}

// unregister closes the send queue, which stops the write pump.
func (that *Hub) unregister(connID string) {
	that.mutex.Lock()
	defer that.mutex.Unlock()

	c, ok := that.clients[connID]
	if !ok {
		return
	}

	delete(that.clients, connID)
	close(c.send)
}

func encode(action string, payload any) ([]byte, error) {
	message := Message{Action: action}

	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		message.Payload = raw
	}

	return json.Marshal(message)
}

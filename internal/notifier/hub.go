package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/archerylive/shootlive/internal/models"
)

// defaultWriteTimeout bounds how long a single subscriber write may block
const defaultWriteTimeout = 5 * time.Second

// HubConfig holds configuration for the websocket hub
type HubConfig struct {
	// Logger for dropped-subscriber events; defaults to a no-op logger
	Logger *zap.Logger

	// WriteTimeout per subscriber write; defaults to 5s
	WriteTimeout time.Duration
}

// subscriber pairs a connection with the lock serializing writes to it.
// gorilla/websocket connections support only one concurrent writer.
type subscriber struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// Hub is the real-time Notifier adapter. It fans published notifications out
// to websocket connections subscribed to a shoot code. A subscriber that
// cannot be written to is dropped; delivery is at-most-once.
type Hub struct {
	mu           sync.RWMutex
	subscribers  map[string]map[*websocket.Conn]*subscriber
	logger       *zap.Logger
	writeTimeout time.Duration
}

// NewHub creates a new websocket notification hub
func NewHub(cfg *HubConfig) *Hub {
	logger := zap.NewNop()
	writeTimeout := defaultWriteTimeout

	if cfg != nil {
		if cfg.Logger != nil {
			logger = cfg.Logger
		}
		if cfg.WriteTimeout > 0 {
			writeTimeout = cfg.WriteTimeout
		}
	}

	return &Hub{
		subscribers:  make(map[string]map[*websocket.Conn]*subscriber),
		logger:       logger,
		writeTimeout: writeTimeout,
	}
}

// Subscribe registers a connection for a shoot code
func (h *Hub) Subscribe(code string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subscribers[code] == nil {
		h.subscribers[code] = make(map[*websocket.Conn]*subscriber)
	}
	h.subscribers[code][conn] = &subscriber{conn: conn}
}

// Unsubscribe removes a connection from a shoot code
func (h *Hub) Unsubscribe(code string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.subscribers[code]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.subscribers, code)
		}
	}
}

// SubscriberCount returns how many connections are listening on a code
func (h *Hub) SubscriberCount(code string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subscribers[code])
}

// Publish pushes the notification to every subscriber of the code. Write
// failures drop the subscriber but never surface to the publisher.
func (h *Hub) Publish(ctx context.Context, code string, notification *models.Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	h.mu.RLock()
	subs := make([]*subscriber, 0, len(h.subscribers[code]))
	for _, sub := range h.subscribers[code] {
		subs = append(subs, sub)
	}
	h.mu.RUnlock()

	for _, sub := range subs {
		if err := sub.write(payload, h.writeTimeout); err != nil {
			h.logger.Warn("dropping unresponsive shoot subscriber",
				zap.String("code", code),
				zap.String("type", string(notification.Type)),
				zap.Error(err))
			h.Unsubscribe(code, sub.conn)
			_ = sub.conn.Close()
		}
	}

	return nil
}

// write pushes one frame to the subscriber. The lock keeps concurrent
// publishes from interleaving writes on the shared connection.
func (s *subscriber) write(payload []byte, timeout time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.conn.SetWriteDeadline(time.Now().Add(timeout))
	return s.conn.WriteMessage(websocket.TextMessage, payload)
}

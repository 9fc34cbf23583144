package notifier

import (
	"context"
	"sync"

	"github.com/archerylive/shootlive/internal/models"
)

// Memory is the in-memory Notifier adapter. It records every published
// notification per shoot code so tests can assert on emission order and
// payloads.
type Memory struct {
	mu     sync.Mutex
	events map[string][]*models.Notification
}

// NewMemory creates a new in-memory notifier
func NewMemory() *Memory {
	return &Memory{
		events: make(map[string][]*models.Notification),
	}
}

// Publish records the notification under the shoot code
func (m *Memory) Publish(ctx context.Context, code string, notification *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events[code] = append(m.events[code], notification)
	return nil
}

// Events returns the notifications published for a code, in emission order
func (m *Memory) Events(code string) []*models.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()

	events := make([]*models.Notification, len(m.events[code]))
	copy(events, m.events[code])
	return events
}

// Reset drops all recorded notifications
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = make(map[string][]*models.Notification)
}

// Package notifier delivers shoot notifications to subscribers of a shoot
// code. Delivery is fire-and-forget: publishing to a code nobody listens on
// is not an error, and no adapter guarantees delivery.
package notifier

//go:generate mockgen -package=mocks -destination=mocks/mock_notifier.go github.com/archerylive/shootlive/internal/notifier Notifier

import (
	"context"

	"github.com/archerylive/shootlive/internal/models"
)

// Notifier is the fan-out contract the shoot service publishes through
type Notifier interface {
	// Publish delivers a notification to subscribers of the shoot code
	Publish(ctx context.Context, code string, notification *models.Notification) error
}

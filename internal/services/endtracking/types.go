package endtracking

import (
	"go.uber.org/zap"

	"github.com/archerylive/shootlive/internal/common/clock"
	"github.com/archerylive/shootlive/internal/notifier"
	shootRepo "github.com/archerylive/shootlive/internal/repositories/shoot"
)

// Config holds dependencies and settings for the end tracking service
type Config struct {
	// ShootRepo reads the current standings for notification payloads
	ShootRepo shootRepo.Repository

	// Notifier delivers END_COMPLETE events
	Notifier notifier.Notifier

	// Clock provides notification timestamps; defaults to the system clock
	Clock clock.Clock

	// Logger for best-effort failures; defaults to a no-op logger
	Logger *zap.Logger

	// EndsPerNotification is how many tracked ends trigger one notification;
	// defaults to 2
	EndsPerNotification int
}

type TrackEndCompletionInput struct {
	Code       string
	ArcherName string
}

type TrackEndCompletionOutput struct {
	// EndsCompleted is the archer's running count for this process
	EndsCompleted int

	// Notified reports whether this call emitted an END_COMPLETE event
	Notified bool
}

type ClearShootTrackingInput struct {
	Code string
}

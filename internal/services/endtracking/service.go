package endtracking

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/archerylive/shootlive/internal/common/clock"
	"github.com/archerylive/shootlive/internal/models"
	"github.com/archerylive/shootlive/internal/notifier"
	shootRepo "github.com/archerylive/shootlive/internal/repositories/shoot"
)

const defaultEndsPerNotification = 2

// Define errors
var (
	ErrNilConfig    = errors.New("config cannot be nil")
	ErrNilShootRepo = errors.New("shoot repository cannot be nil")
	ErrNilNotifier  = errors.New("notifier cannot be nil")
)

// service implements the Service interface
type service struct {
	shootRepo           shootRepo.Repository
	notifier            notifier.Notifier
	clock               clock.Clock
	logger              *zap.Logger
	endsPerNotification int

	mu sync.Mutex
	// counts is keyed by shoot code, then archer name
	counts map[string]map[string]int
}

// New creates a new end tracking service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.ShootRepo == nil {
		return nil, ErrNilShootRepo
	}
	if cfg.Notifier == nil {
		return nil, ErrNilNotifier
	}

	s := &service{
		shootRepo:           cfg.ShootRepo,
		notifier:            cfg.Notifier,
		clock:               cfg.Clock,
		logger:              cfg.Logger,
		endsPerNotification: cfg.EndsPerNotification,
		counts:              make(map[string]map[string]int),
	}

	if s.clock == nil {
		s.clock = &clock.DefaultClock{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.endsPerNotification <= 0 {
		s.endsPerNotification = defaultEndsPerNotification
	}

	return s, nil
}

// TrackEndCompletion records one completed end for an archer. Every
// endsPerNotification-th call emits an END_COMPLETE notification carrying
// the archer's current position and, when a previous position is known, the
// signed delta (positive means the archer moved up).
func (s *service) TrackEndCompletion(ctx context.Context, input *TrackEndCompletionInput) (*TrackEndCompletionOutput, error) {
	if input == nil || input.Code == "" || input.ArcherName == "" {
		return nil, errors.New("input, code and archer name cannot be empty")
	}

	s.mu.Lock()
	if s.counts[input.Code] == nil {
		s.counts[input.Code] = make(map[string]int)
	}
	s.counts[input.Code][input.ArcherName]++
	count := s.counts[input.Code][input.ArcherName]
	s.mu.Unlock()

	if count%s.endsPerNotification != 0 {
		return &TrackEndCompletionOutput{EndsCompleted: count}, nil
	}

	notified := s.notifyEndComplete(ctx, input.Code, input.ArcherName)

	return &TrackEndCompletionOutput{
		EndsCompleted: count,
		Notified:      notified,
	}, nil
}

// ClearShootTracking drops all counters for a shoot code
func (s *service) ClearShootTracking(ctx context.Context, input *ClearShootTrackingInput) error {
	if input == nil || input.Code == "" {
		return errors.New("input and code cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.counts, input.Code)
	return nil
}

// notifyEndComplete looks up the archer's standing and publishes the event.
// Everything here is best effort: a vanished shoot or archer just skips the
// notification.
func (s *service) notifyEndComplete(ctx context.Context, code, archerName string) bool {
	liveShoot, err := s.shootRepo.GetShootByCode(ctx, &shootRepo.GetShootByCodeInput{Code: code})
	if err != nil {
		if !errors.Is(err, shootRepo.ErrShootNotFound) {
			s.logger.Warn("failed to load shoot for end notification",
				zap.String("code", code),
				zap.Error(err))
		}
		return false
	}

	participant := liveShoot.ParticipantByName(archerName)
	if participant == nil {
		return false
	}

	notification := &models.Notification{
		Type:              models.NotificationEndComplete,
		Code:              code,
		ArcherName:        archerName,
		Position:          participant.CurrentPosition,
		TotalParticipants: len(liveShoot.Participants),
		Timestamp:         s.clock.Now(),
	}

	if participant.PreviousPosition > 0 {
		delta := participant.PreviousPosition - participant.CurrentPosition
		notification.PreviousPosition = participant.PreviousPosition
		notification.PositionDelta = &delta
	}

	if err := s.notifier.Publish(ctx, code, notification); err != nil {
		s.logger.Warn("failed to publish end notification",
			zap.String("code", code),
			zap.String("archer", archerName),
			zap.Error(err))
		return false
	}

	return true
}

package shoot

import (
	"context"
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/archerylive/shootlive/internal/common/clock"
	"github.com/archerylive/shootlive/internal/common/random"
	commonUUID "github.com/archerylive/shootlive/internal/common/uuid"
	"github.com/archerylive/shootlive/internal/models"
	"github.com/archerylive/shootlive/internal/notifier"
	shootRepo "github.com/archerylive/shootlive/internal/repositories/shoot"
	"github.com/archerylive/shootlive/internal/shootcode"
)

const defaultMaxTitleLength = 100

// service implements the Service interface
type service struct {
	shootRepo      shootRepo.Repository
	notifier       notifier.Notifier
	clock          clock.Clock
	uuidGenerator  commonUUID.UUID
	random         random.Source
	logger         *zap.Logger
	maxTitleLength int
}

// New creates a new shoot service
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
		shootRepo:      cfg.ShootRepo,
		notifier:       cfg.Notifier,
		clock:          cfg.Clock,
		uuidGenerator:  cfg.UUIDGenerator,
		random:         cfg.Random,
		logger:         cfg.Logger,
		maxTitleLength: cfg.MaxTitleLength,
	}

	if s.clock == nil {
		s.clock = &clock.DefaultClock{}
	}
	if s.uuidGenerator == nil {
		s.uuidGenerator = commonUUID.New()
	}
	if s.random == nil {
		s.random = random.New()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.maxTitleLength <= 0 {
		s.maxTitleLength = defaultMaxTitleLength
	}

	return s, nil
}

// CreateShoot starts a new shoot with a freshly generated join code
func (s *service) CreateShoot(ctx context.Context, input *CreateShootInput) (*CreateShootOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if input.CreatorName == "" {
		return nil, ErrEmptyCreatorName
	}

	// Generate until the code is free. The space is 10k codes; keeping it
	// from filling up is an operational concern, not handled here.
	var code string
	for {
		code = shootcode.Generate(s.random)
		exists, err := s.shootRepo.CodeExists(ctx, &shootRepo.CodeExistsInput{Code: code})
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
	}

	now := s.clock.Now()

	title := strings.TrimSpace(input.Title)
	if runes := []rune(title); len(runes) > s.maxTitleLength {
		title = string(runes[:s.maxTitleLength])
	}

	newShoot := &models.Shoot{
		ID:           s.uuidGenerator.NewUUID(),
		Code:         code,
		CreatorName:  input.CreatorName,
		Title:        title,
		CreatedAt:    now,
		ExpiresAt:    shootcode.ExpirationTime(now),
		LastUpdated:  now,
		Participants: []*models.ShootParticipant{},
	}

	if err := s.shootRepo.SaveShoot(ctx, &shootRepo.SaveShootInput{Shoot: newShoot}); err != nil {
		return nil, err
	}

	return &CreateShootOutput{
		Code:  code,
		Shoot: newShoot,
	}, nil
}

// JoinShoot adds an archer to a shoot. Joining under a name that is already
// in the shoot coalesces into that participant instead of duplicating it.
func (s *service) JoinShoot(ctx context.Context, input *JoinShootInput) (*JoinShootOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if input.ArcherName == "" {
		return nil, ErrEmptyArcherName
	}

	liveShoot, err := s.getLiveShoot(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if liveShoot == nil {
		return &JoinShootOutput{Success: false}, nil
	}

	now := s.clock.Now()

	participant := liveShoot.ParticipantByName(input.ArcherName)
	if participant != nil {
		if participant.RoundName != input.RoundName {
			participant.RoundName = input.RoundName
		}
		participant.LastUpdated = now
	} else {
		participant = &models.ShootParticipant{
			ID:          s.uuidGenerator.NewUUID(),
			ArcherName:  input.ArcherName,
			RoundName:   input.RoundName,
			TotalScore:  0,
			ArrowsShot:  0,
			Finished:    false,
			LastUpdated: now,
		}
		liveShoot.Participants = append(liveShoot.Participants, participant)
	}

	liveShoot.LastUpdated = now
	recomputePositions(liveShoot)

	if err := s.shootRepo.SaveShoot(ctx, &shootRepo.SaveShootInput{Shoot: liveShoot}); err != nil {
		return nil, err
	}

	s.publish(ctx, &models.Notification{
		Type:       models.NotificationJoinedShoot,
		Code:       liveShoot.Code,
		ArcherName: input.ArcherName,
		Shoot:      liveShoot.Clone(),
		Timestamp:  now,
	})

	return &JoinShootOutput{
		Success: true,
		Shoot:   liveShoot,
	}, nil
}

// UpdateScore records an archer's running score
func (s *service) UpdateScore(ctx context.Context, input *UpdateScoreInput) (*UpdateScoreOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	success, updated, err := s.applyScore(ctx, input, false)
	if err != nil {
		return nil, err
	}

	return &UpdateScoreOutput{
		Success: success,
		Shoot:   updated,
	}, nil
}

// FinishShoot records an archer's final score and locks the participant.
// A second finish call goes through the same path and does not resurrect
// mutability for plain updates.
func (s *service) FinishShoot(ctx context.Context, input *FinishShootInput) (*FinishShootOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	success, updated, err := s.applyScore(ctx, (*UpdateScoreInput)(input), true)
	if err != nil {
		return nil, err
	}

	return &FinishShootOutput{
		Success: success,
		Shoot:   updated,
	}, nil
}

// applyScore is the shared update/finish path. It returns success=false for
// an unknown shoot, an unknown archer, or an update against a finished
// participant; storage failures surface as errors.
func (s *service) applyScore(ctx context.Context, input *UpdateScoreInput, finish bool) (bool, *models.Shoot, error) {
	if input.ArcherName == "" {
		return false, nil, ErrEmptyArcherName
	}

	liveShoot, err := s.getLiveShoot(ctx, input.Code)
	if err != nil {
		return false, nil, err
	}
	if liveShoot == nil {
		return false, nil, nil
	}

	participant := liveShoot.ParticipantByName(input.ArcherName)
	if participant == nil {
		return false, nil, nil
	}

	// A finished score is final; only the finish path may touch it again
	if participant.Finished && !finish {
		return false, nil, nil
	}

	now := s.clock.Now()

	participant.TotalScore = input.TotalScore
	participant.ArrowsShot = input.ArrowsShot
	participant.RoundName = input.RoundName
	participant.CurrentClassification = input.Classification
	if input.Scores != nil {
		participant.Scores = make([]models.ArrowValue, len(input.Scores))
		copy(participant.Scores, input.Scores)
	}
	if finish {
		participant.Finished = true
	}
	participant.LastUpdated = now
	liveShoot.LastUpdated = now

	previousRank := participant.CurrentPosition
	recomputePositions(liveShoot)

	if err := s.shootRepo.SaveShoot(ctx, &shootRepo.SaveShootInput{Shoot: liveShoot}); err != nil {
		return false, nil, err
	}

	snapshot := liveShoot.Clone()

	s.publish(ctx, &models.Notification{
		Type:       models.NotificationScoreUpdate,
		Code:       liveShoot.Code,
		ArcherName: input.ArcherName,
		Shoot:      snapshot,
		Timestamp:  now,
	})

	if participant.CurrentPosition != previousRank {
		s.publish(ctx, &models.Notification{
			Type:             models.NotificationPositionChange,
			Code:             liveShoot.Code,
			ArcherName:       input.ArcherName,
			Shoot:            snapshot,
			Position:         participant.CurrentPosition,
			PreviousPosition: previousRank,
			Timestamp:        now,
		})
	}

	if finish {
		s.publish(ctx, &models.Notification{
			Type:       models.NotificationArcherFinished,
			Code:       liveShoot.Code,
			ArcherName: input.ArcherName,
			Shoot:      snapshot,
			Timestamp:  now,
		})
	}

	return true, liveShoot, nil
}

// LeaveShoot removes an archer from a shoot
func (s *service) LeaveShoot(ctx context.Context, input *LeaveShootInput) (*LeaveShootOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if input.ArcherName == "" {
		return nil, ErrEmptyArcherName
	}

	liveShoot, err := s.getLiveShoot(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if liveShoot == nil {
		return &LeaveShootOutput{Success: false}, nil
	}

	leaving := liveShoot.ParticipantByName(input.ArcherName)
	if leaving == nil {
		return &LeaveShootOutput{Success: false}, nil
	}

	remaining := make([]*models.ShootParticipant, 0, len(liveShoot.Participants)-1)
	for _, p := range liveShoot.Participants {
		if p.ID != leaving.ID {
			remaining = append(remaining, p)
		}
	}
	liveShoot.Participants = remaining

	now := s.clock.Now()
	liveShoot.LastUpdated = now
	recomputePositions(liveShoot)

	if err := s.shootRepo.SaveShoot(ctx, &shootRepo.SaveShootInput{Shoot: liveShoot}); err != nil {
		return nil, err
	}

	s.publish(ctx, &models.Notification{
		Type:       models.NotificationLeftShoot,
		Code:       liveShoot.Code,
		ArcherName: input.ArcherName,
		Shoot:      liveShoot.Clone(),
		Timestamp:  now,
	})

	return &LeaveShootOutput{Success: true}, nil
}

// GetShoot retrieves a shoot by join code; absent or expired shoots come
// back as a nil Shoot, not an error
func (s *service) GetShoot(ctx context.Context, input *GetShootInput) (*GetShootOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	liveShoot, err := s.getLiveShoot(ctx, input.Code)
	if err != nil {
		return nil, err
	}

	return &GetShootOutput{Shoot: liveShoot}, nil
}

// ShootExists reports whether a shoot exists for the code
func (s *service) ShootExists(ctx context.Context, input *ShootExistsInput) (bool, error) {
	if input == nil {
		return false, errors.New("input cannot be nil")
	}

	return s.shootRepo.CodeExists(ctx, &shootRepo.CodeExistsInput{Code: input.Code})
}

// getLiveShoot maps the repository's not-found sentinel to a nil shoot so
// callers can turn it into a {Success: false} result
func (s *service) getLiveShoot(ctx context.Context, code string) (*models.Shoot, error) {
	liveShoot, err := s.shootRepo.GetShootByCode(ctx, &shootRepo.GetShootByCodeInput{Code: code})
	if err != nil {
		if errors.Is(err, shootRepo.ErrShootNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return liveShoot, nil
}

// publish is fire-and-forget: a delivery failure is logged and swallowed,
// never failing the mutation that triggered it
func (s *service) publish(ctx context.Context, notification *models.Notification) {
	if err := s.notifier.Publish(ctx, notification.Code, notification); err != nil {
		s.logger.Warn("failed to publish shoot notification",
			zap.String("code", notification.Code),
			zap.String("type", string(notification.Type)),
			zap.Error(err))
	}
}

// recomputePositions ranks participants 1..N by descending total score. The
// sort is stable, so equal scores keep their prior relative order; the
// tie-break is join order as mutated over time, not a deterministic
// secondary key.
func recomputePositions(liveShoot *models.Shoot) {
	ranked := make([]*models.ShootParticipant, len(liveShoot.Participants))
	copy(ranked, liveShoot.Participants)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalScore > ranked[j].TotalScore
	})

	for i, p := range ranked {
		p.PreviousPosition = p.CurrentPosition
		p.CurrentPosition = i + 1
	}
}

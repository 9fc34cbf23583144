package shoot

import (
	"go.uber.org/zap"

	"github.com/archerylive/shootlive/internal/common/clock"
	"github.com/archerylive/shootlive/internal/common/random"
	"github.com/archerylive/shootlive/internal/common/uuid"
	"github.com/archerylive/shootlive/internal/models"
	"github.com/archerylive/shootlive/internal/notifier"
	shootRepo "github.com/archerylive/shootlive/internal/repositories/shoot"
)

// Config holds dependencies and settings for the shoot service
type Config struct {
	// ShootRepo persists shoot aggregates
	ShootRepo shootRepo.Repository

	// Notifier fans events out to shoot subscribers
	Notifier notifier.Notifier

	// Clock provides the current time; defaults to the system clock
	Clock clock.Clock

	// UUIDGenerator produces shoot and participant IDs
	UUIDGenerator uuid.UUID

	// Random feeds join code generation; injectable so tests can force
	// collisions
	Random random.Source

	// Logger for fire-and-forget publish failures; defaults to a no-op logger
	Logger *zap.Logger

	// MaxTitleLength caps shoot titles at creation; defaults to 100
	MaxTitleLength int
}

type CreateShootInput struct {
	CreatorName string
	Title       string
}

type CreateShootOutput struct {
	Code  string
	Shoot *models.Shoot
}

type JoinShootInput struct {
	Code       string
	ArcherName string
	RoundName  string
}

type JoinShootOutput struct {
	Success bool
	Shoot   *models.Shoot
}

type UpdateScoreInput struct {
	Code           string
	ArcherName     string
	TotalScore     int
	RoundName      string
	ArrowsShot     int
	Classification string
	Scores         []models.ArrowValue
}

type UpdateScoreOutput struct {
	Success bool
	Shoot   *models.Shoot
}

// FinishShootInput mirrors UpdateScoreInput; a finish is a score update that
// additionally locks the participant.
type FinishShootInput struct {
	Code           string
	ArcherName     string
	TotalScore     int
	RoundName      string
	ArrowsShot     int
	Classification string
	Scores         []models.ArrowValue
}

type FinishShootOutput struct {
	Success bool
	Shoot   *models.Shoot
}

type LeaveShootInput struct {
	Code       string
	ArcherName string
}

type LeaveShootOutput struct {
	Success bool
}

type GetShootInput struct {
	Code string
}

type GetShootOutput struct {
	Shoot *models.Shoot
}

type ShootExistsInput struct {
	Code string
}

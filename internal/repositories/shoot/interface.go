package shoot

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/archerylive/shootlive/internal/repositories/shoot Repository

import (
	"context"
	"errors"

	"github.com/archerylive/shootlive/internal/models"
)

// ErrShootNotFound is returned when a shoot is absent or expired
var ErrShootNotFound = errors.New("shoot not found")

// Repository defines the interface for shoot persistence.
//
// SaveShoot is safe to call concurrently from callers holding divergent
// in-memory snapshots of the same shoot: implementations must reconcile the
// incoming copy against the stored one with MergeShoots rather than blindly
// overwriting it.
type Repository interface {
	// SaveShoot persists a shoot, merging with any stored copy for the same code
	SaveShoot(ctx context.Context, input *SaveShootInput) error

	// GetShootByCode retrieves a deep copy of a shoot by its join code.
	// An expired shoot is deleted and reported as not found.
	GetShootByCode(ctx context.Context, input *GetShootByCodeInput) (*models.Shoot, error)

	// GetShootsByCodes retrieves several shoots at once, silently omitting
	// codes that are absent or expired
	GetShootsByCodes(ctx context.Context, input *GetShootsByCodesInput) (*GetShootsByCodesOutput, error)

	// DeleteShoot removes a shoot; deleting an absent code is not an error
	DeleteShoot(ctx context.Context, input *DeleteShootInput) error

	// CodeExists reports whether a code is already taken by a stored shoot
	CodeExists(ctx context.Context, input *CodeExistsInput) (bool, error)

	// Clear wipes all stored shoots. Testing only.
	Clear(ctx context.Context) error
}

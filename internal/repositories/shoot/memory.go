package shoot

import (
	"context"
	"errors"
	"sync"

	"github.com/archerylive/shootlive/internal/common/clock"
	"github.com/archerylive/shootlive/internal/models"
)

// MemoryConfig holds configuration for the in-memory shoot repository
type MemoryConfig struct {
	// Clock used for expiry checks; defaults to the system clock
	Clock clock.Clock
}

// memoryRepository implements the Repository interface with a mutex-guarded
// map. It shares MergeShoots with the Redis backend; the mutex stands in for
// the storage-level CAS, which is sufficient because this backend is only
// ever process-local.
type memoryRepository struct {
	mu     sync.RWMutex
	shoots map[string]*models.Shoot
	clock  clock.Clock
}

// NewMemory creates a new in-memory shoot repository
func NewMemory(cfg *MemoryConfig) *memoryRepository {
	repoClock := clock.Clock(&clock.DefaultClock{})
	if cfg != nil && cfg.Clock != nil {
		repoClock = cfg.Clock
	}

	return &memoryRepository{
		shoots: make(map[string]*models.Shoot),
		clock:  repoClock,
	}
}

// SaveShoot stores a deep copy of the shoot, merging with any existing record
func (m *memoryRepository) SaveShoot(ctx context.Context, input *SaveShootInput) error {
	if input == nil || input.Shoot == nil {
		return errors.New("input and shoot cannot be nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// An expired record is not a merge target: its code may have been
	// handed out again for a brand new shoot
	existing, ok := m.shoots[input.Shoot.Code]
	if !ok || existing.Expired(m.clock.Now()) {
		m.shoots[input.Shoot.Code] = input.Shoot.Clone()
		return nil
	}

	MergeShoots(existing, input.Shoot.Clone())
	return nil
}

// GetShootByCode retrieves a deep copy of a shoot, deleting it if expired
func (m *memoryRepository) GetShootByCode(ctx context.Context, input *GetShootByCodeInput) (*models.Shoot, error) {
	if input == nil || input.Code == "" {
		return nil, errors.New("input and code cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	shoot, ok := m.shoots[input.Code]
	if !ok {
		return nil, ErrShootNotFound
	}

	if shoot.Expired(m.clock.Now()) {
		delete(m.shoots, input.Code)
		return nil, ErrShootNotFound
	}

	return shoot.Clone(), nil
}

// GetShootsByCodes retrieves deep copies of several shoots, omitting codes
// that are absent or expired and cleaning up the expired ones
func (m *memoryRepository) GetShootsByCodes(ctx context.Context, input *GetShootsByCodesInput) (*GetShootsByCodesOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	output := &GetShootsByCodesOutput{
		Shoots: make(map[string]*models.Shoot, len(input.Codes)),
	}

	for _, code := range input.Codes {
		shoot, ok := m.shoots[code]
		if !ok {
			continue
		}
		if shoot.Expired(now) {
			delete(m.shoots, code)
			continue
		}
		output.Shoots[code] = shoot.Clone()
	}

	return output, nil
}

// DeleteShoot removes a shoot; deleting an absent code is a no-op
func (m *memoryRepository) DeleteShoot(ctx context.Context, input *DeleteShootInput) error {
	if input == nil || input.Code == "" {
		return errors.New("input and code cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.shoots, input.Code)
	return nil
}

// CodeExists reports whether an unexpired shoot is stored under the code
func (m *memoryRepository) CodeExists(ctx context.Context, input *CodeExistsInput) (bool, error) {
	if input == nil || input.Code == "" {
		return false, errors.New("input and code cannot be empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	shoot, ok := m.shoots[input.Code]
	if !ok {
		return false, nil
	}

	return !shoot.Expired(m.clock.Now()), nil
}

// Clear wipes all stored shoots. Testing only.
func (m *memoryRepository) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.shoots = make(map[string]*models.Shoot)
	return nil
}

package shoot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/archerylive/shootlive/internal/common/clock"
	"github.com/archerylive/shootlive/internal/models"
)

const (
	// Key layout in Redis
	shootKeyPrefix  = "shoots:"
	activeShootsKey = "shoots:active"

	// saveRetries bounds the optimistic retry loop when a concurrent writer
	// touches the key between our read and our write
	saveRetries = 5

	// minExpiry keeps a just-expired shoot from being written with a
	// non-positive TTL; the store reaps it almost immediately instead
	minExpiry = time.Second
)

// Config holds configuration for the Redis shoot repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// Clock used for expiry checks; defaults to the system clock
	Clock clock.Clock

	// Logger for skip-and-log recovery; defaults to a no-op logger
	Logger *zap.Logger
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
	clock  clock.Clock
	logger *zap.Logger
}

// NewRedis creates a new Redis-backed shoot repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	repoClock := cfg.Clock
	if repoClock == nil {
		repoClock = &clock.DefaultClock{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &redisRepository{
		client: cfg.RedisClient,
		clock:  repoClock,
		logger: logger,
	}, nil
}

func shootKey(code string) string {
	return fmt.Sprintf("%s%s", shootKeyPrefix, code)
}

// SaveShoot persists a shoot to Redis. When a record already exists for the
// code, the stored copy is read under WATCH, merged with the incoming copy,
// and written back inside a MULTI/EXEC block, so two concurrent saves of
// divergent snapshots both land.
func (r *redisRepository) SaveShoot(ctx context.Context, input *SaveShootInput) error {
	if input == nil || input.Shoot == nil {
		return errors.New("input and shoot cannot be nil")
	}

	key := shootKey(input.Shoot.Code)

	for attempt := 0; attempt < saveRetries; attempt++ {
		err := r.client.Watch(ctx, func(tx *redis.Tx) error {
			merged := input.Shoot.Clone()

			stored, err := tx.Get(ctx, key).Result()
			switch {
			case err == nil:
				var current models.Shoot
				switch uerr := json.Unmarshal([]byte(stored), &current); {
				case uerr != nil:
					// Corrupt record: the incoming copy replaces it outright
					r.logger.Warn("discarding unreadable shoot record",
						zap.String("code", input.Shoot.Code),
						zap.Error(uerr))
				case current.Expired(r.clock.Now()):
					// An expired record is not a merge target: its code may
					// have been handed out again for a brand new shoot
				default:
					MergeShoots(&current, merged)
					merged = &current
				}
			case errors.Is(err, redis.Nil):
				// First write for this code
			default:
				return fmt.Errorf("failed to read current shoot: %w", err)
			}

			payload, err := json.Marshal(merged)
			if err != nil {
				return fmt.Errorf("failed to marshal shoot: %w", err)
			}

			// Align the key TTL with the shoot expiry so Redis physically
			// reaps stale records independent of lazy expiry on read
			ttl := merged.ExpiresAt.Sub(r.clock.Now())
			if ttl <= 0 {
				ttl = minExpiry
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, payload, ttl)
				pipe.SAdd(ctx, activeShootsKey, merged.Code)
				return nil
			})
			return err
		}, key)

		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			// Another writer got in first; merge against the new base
			continue
		}
		return fmt.Errorf("failed to save shoot: %w", err)
	}

	return fmt.Errorf("failed to save shoot %s after %d attempts: %w", input.Shoot.Code, saveRetries, redis.TxFailedErr)
}

// GetShootByCode retrieves a shoot by join code from Redis
func (r *redisRepository) GetShootByCode(ctx context.Context, input *GetShootByCodeInput) (*models.Shoot, error) {
	if input == nil || input.Code == "" {
		return nil, errors.New("input and code cannot be empty")
	}

	stored, err := r.client.Get(ctx, shootKey(input.Code)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrShootNotFound
		}
		return nil, fmt.Errorf("failed to get shoot: %w", err)
	}

	var shoot models.Shoot
	if err := json.Unmarshal([]byte(stored), &shoot); err != nil {
		r.logger.Warn("treating unreadable shoot record as not found",
			zap.String("code", input.Code),
			zap.Error(err))
		return nil, ErrShootNotFound
	}

	// Lazy expiry: a shoot past its ExpiresAt is deleted on access
	if shoot.Expired(r.clock.Now()) {
		if err := r.DeleteShoot(ctx, &DeleteShootInput{Code: input.Code}); err != nil {
			return nil, err
		}
		return nil, ErrShootNotFound
	}

	return &shoot, nil
}

// GetShootsByCodes retrieves several shoots in one round trip. Codes that are
// absent, expired, or unreadable are omitted from the result; expired records
// are cleaned up as a side effect.
func (r *redisRepository) GetShootsByCodes(ctx context.Context, input *GetShootsByCodesInput) (*GetShootsByCodesOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	output := &GetShootsByCodesOutput{
		Shoots: make(map[string]*models.Shoot, len(input.Codes)),
	}

	if len(input.Codes) == 0 {
		return output, nil
	}

	pipe := r.client.Pipeline()
	commands := make(map[string]*redis.StringCmd, len(input.Codes))
	for _, code := range input.Codes {
		commands[code] = pipe.Get(ctx, shootKey(code))
	}

	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get shoots: %w", err)
	}

	now := r.clock.Now()
	for code, cmd := range commands {
		stored, err := cmd.Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, fmt.Errorf("failed to get shoot %s: %w", code, err)
		}

		var shoot models.Shoot
		if err := json.Unmarshal([]byte(stored), &shoot); err != nil {
			// A single bad record never fails the batch
			r.logger.Warn("skipping unreadable shoot record",
				zap.String("code", code),
				zap.Error(err))
			continue
		}

		if shoot.Expired(now) {
			if err := r.DeleteShoot(ctx, &DeleteShootInput{Code: code}); err != nil {
				return nil, err
			}
			continue
		}

		output.Shoots[code] = &shoot
	}

	return output, nil
}

// DeleteShoot removes a shoot from Redis
func (r *redisRepository) DeleteShoot(ctx context.Context, input *DeleteShootInput) error {
	if input == nil || input.Code == "" {
		return errors.New("input and code cannot be empty")
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, shootKey(input.Code))
	pipe.SRem(ctx, activeShootsKey, input.Code)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete shoot: %w", err)
	}

	return nil
}

// CodeExists reports whether a record exists for the code. The per-key TTL
// keeps this conservative check honest: physically expired records are gone.
func (r *redisRepository) CodeExists(ctx context.Context, input *CodeExistsInput) (bool, error) {
	if input == nil || input.Code == "" {
		return false, errors.New("input and code cannot be empty")
	}

	count, err := r.client.Exists(ctx, shootKey(input.Code)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check code: %w", err)
	}

	return count > 0, nil
}

// Clear wipes all stored shoots. Testing only.
func (r *redisRepository) Clear(ctx context.Context) error {
	codes, err := r.client.SMembers(ctx, activeShootsKey).Result()
	if err != nil {
		return fmt.Errorf("failed to list active shoots: %w", err)
	}

	pipe := r.client.Pipeline()
	for _, code := range codes {
		pipe.Del(ctx, shootKey(code))
	}
	pipe.Del(ctx, activeShootsKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to clear shoots: %w", err)
	}

	return nil
}

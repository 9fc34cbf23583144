package shoot

import "context"

// Service defines the interface for shoot operations. It is the sole legal
// mutation path for shoot state; the transport layer never talks to the
// repository directly.
type Service interface {
	// CreateShoot starts a new shoot with a freshly generated join code
	CreateShoot(ctx context.Context, input *CreateShootInput) (*CreateShootOutput, error)

	// JoinShoot adds an archer to a shoot, or coalesces into the existing
	// participant when the name is already taken
	JoinShoot(ctx context.Context, input *JoinShootInput) (*JoinShootOutput, error)

	// UpdateScore records an archer's running score
	UpdateScore(ctx context.Context, input *UpdateScoreInput) (*UpdateScoreOutput, error)

	// FinishShoot records an archer's final score and locks it
	FinishShoot(ctx context.Context, input *FinishShootInput) (*FinishShootOutput, error)

	// LeaveShoot removes an archer from a shoot
	LeaveShoot(ctx context.Context, input *LeaveShootInput) (*LeaveShootOutput, error)

	// GetShoot retrieves a shoot by join code
	GetShoot(ctx context.Context, input *GetShootInput) (*GetShootOutput, error)

	// ShootExists reports whether a shoot exists for the code
	ShootExists(ctx context.Context, input *ShootExistsInput) (bool, error)
}

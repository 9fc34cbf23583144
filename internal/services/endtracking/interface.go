package endtracking

import "context"

// Service counts completed ends per archer and turns the cadence into
// END_COMPLETE notifications. Counts live in process memory only: they are a
// best-effort signal for subscribers, not a scoring record, and do not
// survive a restart.
type Service interface {
	// TrackEndCompletion records one end for an archer, emitting an
	// END_COMPLETE notification on every second call
	TrackEndCompletion(ctx context.Context, input *TrackEndCompletionInput) (*TrackEndCompletionOutput, error)

	// ClearShootTracking drops all counters for a shoot code
	ClearShootTracking(ctx context.Context, input *ClearShootTrackingInput) error
}

package models

import (
	"time"
)

// ShootParticipant represents one archer's entry within a shoot
type ShootParticipant struct {
	// ID is unique within the shoot, generated at join time, stable across edits
	ID string `json:"id"`

	// ArcherName is the archer's display name, unique per shoot
	ArcherName string `json:"archerName"`

	// RoundName is the round the archer is shooting
	RoundName string `json:"roundName"`

	// TotalScore is the authoritative running or final score
	TotalScore int `json:"totalScore"`

	// ArrowsShot is how many arrows contribute to TotalScore
	ArrowsShot int `json:"arrowsShot"`

	// Scores holds individual arrow values once detailed scoring is submitted
	Scores []ArrowValue `json:"scores,omitempty"`

	// CurrentClassification is an optional classification snapshot
	CurrentClassification string `json:"currentClassification,omitempty"`

	// Finished marks the archer's score as final; further updates are rejected
	Finished bool `json:"finished"`

	// CurrentPosition is the 1-based rank by descending total score.
	// Zero means the participant has not been ranked yet.
	CurrentPosition int `json:"currentPosition,omitempty"`

	// PreviousPosition is the rank held before the latest recompute.
	// Zero until at least two recomputes have run.
	PreviousPosition int `json:"previousPosition,omitempty"`

	// LastUpdated is the per-participant merge tie-breaker
	LastUpdated time.Time `json:"lastUpdated"`
}

// Clone returns a deep copy of the participant.
func (p *ShootParticipant) Clone() *ShootParticipant {
	if p == nil {
		return nil
	}

	cloned := *p
	if p.Scores != nil {
		cloned.Scores = make([]ArrowValue, len(p.Scores))
		copy(cloned.Scores, p.Scores)
	}

	return &cloned
}

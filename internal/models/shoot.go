package models

import (
	"time"
)

// Shoot represents a live scoring session that archers join with a shared code
type Shoot struct {
	// ID is the opaque identifier assigned when the shoot is created
	ID string `json:"id"`

	// Code is the 4-digit join code and the primary lookup key
	Code string `json:"code"`

	// CreatorName is the display name of whoever started the shoot
	CreatorName string `json:"creatorName"`

	// Title is an optional session title, trimmed and capped at creation
	Title string `json:"title,omitempty"`

	// CreatedAt is when the shoot was created
	CreatedAt time.Time `json:"createdAt"`

	// ExpiresAt is when the shoot stops being served; any read past this deletes it
	ExpiresAt time.Time `json:"expiresAt"`

	// LastUpdated advances on every mutation and is the merge tie-breaker
	LastUpdated time.Time `json:"lastUpdated"`

	// Participants holds every archer currently in the shoot
	Participants []*ShootParticipant `json:"participants"`
}

// Clone returns a deep copy of the shoot, including its participants.
func (s *Shoot) Clone() *Shoot {
	if s == nil {
		return nil
	}

	cloned := *s
	cloned.Participants = make([]*ShootParticipant, 0, len(s.Participants))
	for _, p := range s.Participants {
		cloned.Participants = append(cloned.Participants, p.Clone())
	}

	return &cloned
}

// Participant returns the participant with the given ID, or nil.
func (s *Shoot) Participant(id string) *ShootParticipant {
	for _, p := range s.Participants {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// ParticipantByName returns the participant with the given archer name, or nil.
func (s *Shoot) ParticipantByName(archerName string) *ShootParticipant {
	for _, p := range s.Participants {
		if p.ArcherName == archerName {
			return p
		}
	}
	return nil
}

// Expired reports whether the shoot is past its expiry at the given time.
func (s *Shoot) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

package models

import (
	"time"
)

// NotificationType represents the kind of event delivered to shoot subscribers
type NotificationType string

const (
	// NotificationJoinedShoot indicates an archer joined the shoot
	NotificationJoinedShoot NotificationType = "JOINED_SHOOT"

	// NotificationLeftShoot indicates an archer left the shoot
	NotificationLeftShoot NotificationType = "LEFT_SHOOT"

	// NotificationScoreUpdate indicates an archer's score changed
	NotificationScoreUpdate NotificationType = "SCORE_UPDATE"

	// NotificationPositionChange indicates an archer's rank changed
	NotificationPositionChange NotificationType = "POSITION_CHANGE"

	// NotificationEndComplete indicates an archer completed an end
	NotificationEndComplete NotificationType = "END_COMPLETE"

	// NotificationArcherFinished indicates an archer submitted a final score
	NotificationArcherFinished NotificationType = "ARCHER_FINISHED"
)

// Notification is a typed event published to subscribers of a shoot code.
// Where a full shoot snapshot is attached, subscribers can reconcile their
// local state without a follow-up fetch.
type Notification struct {
	// Type is the event kind
	Type NotificationType `json:"type"`

	// Code is the shoot the event belongs to
	Code string `json:"code"`

	// ArcherName is the archer the event is about
	ArcherName string `json:"archerName,omitempty"`

	// Shoot is the full updated shoot snapshot, when applicable
	Shoot *Shoot `json:"shoot,omitempty"`

	// Position is the archer's current 1-based rank
	Position int `json:"position,omitempty"`

	// PreviousPosition is the archer's rank before the latest change
	PreviousPosition int `json:"previousPosition,omitempty"`

	// PositionDelta is previousPosition - position; positive means the archer
	// moved up the leaderboard. Only set when a previous position is known.
	PositionDelta *int `json:"positionDelta,omitempty"`

	// TotalParticipants is the participant count at emission time
	TotalParticipants int `json:"totalParticipants,omitempty"`

	// Timestamp is when the event was emitted
	Timestamp time.Time `json:"timestamp"`
}

// Package outbox persists domain events alongside the rows that caused them
// and delivers them to subscribers after commit.
package outbox

import (
	"encoding/json"
	"time"
)

// Topic is the single topic notification events are published on.
const Topic = "notification_events"

// Event is a pending outbox row.
type Event struct {
	ID        int64
	Type      string
	Topic     string
	Payload   json.RawMessage
	CreatedAt time.Time
}

// Event type names written by the repositories.
const (
	TypeUserCreated      = "user.created"
	TypeActivityCreated  = "activity.created"
	TypeChallengeCreated = "challenge.created"
	TypeGoalCompleted    = "goal.completed"
	TypeInjuryRecorded   = "injury.recorded"
)

// UserCreated is emitted when a user registers.
type UserCreated struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

// ActivityCreated is emitted when a workout is recorded.
type ActivityCreated struct {
	ActivityID   int64  `json:"activity_id"`
	UserID       int64  `json:"user_id"`
	ActivityType string `json:"activity_type"`
}

// ChallengeCreated is emitted when a community challenge opens.
type ChallengeCreated struct {
	ChallengeID int64  `json:"challenge_id"`
	Name        string `json:"name"`
}

// GoalCompleted is emitted when a goal participation reaches its target.
type GoalCompleted struct {
	ParticipationID int64  `json:"participation_id"`
	UserID          int64  `json:"user_id"`
	GoalKind        string `json:"goal_kind"`
	GoalID          int64  `json:"goal_id"`
}

// InjuryRecorded is emitted when an injury recovery record is created.
type InjuryRecorded struct {
	InjuryID int64 `json:"injury_id"`
	UserID   int64 `json:"user_id"`
}

// Envelope is the wire shape delivered to Kafka and websocket subscribers.
type Envelope struct {
	Type       string          `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	OccurredAt time.Time       `json:"occurred_at"`
}

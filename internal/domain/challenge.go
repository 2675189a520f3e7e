package domain

import (
	"context"
	"time"
)

// InteractionType enumerates the supported user interactions.
type InteractionType string

const (
	InteractionLike    InteractionType = "like"
	InteractionComment InteractionType = "comment"
)

// ValidInteractionType reports whether t is a known interaction kind.
func ValidInteractionType(t InteractionType) bool {
	return t == InteractionLike || t == InteractionComment
}

// CommunityChallenge is a time-boxed challenge users can join.
// EndsAt must be strictly after StartsAt; Progress, when set, is in [0,1].
type CommunityChallenge struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description,omitempty"`
	StartsAt        time.Time `json:"starts_at"`
	EndsAt          time.Time `json:"ends_at"`
	MaxParticipants int       `json:"max_participants"`
	Reward          *string   `json:"reward,omitempty"`
	Icon            *string   `json:"icon,omitempty"`
	Progress        *float64  `json:"progress,omitempty"`
}

// ChallengeParticipant links a user to a challenge, unique per pair.
type ChallengeParticipant struct {
	ChallengeID int64     `json:"challenge_id"`
	UserID      int64     `json:"user_id"`
	JoinedAt    time.Time `json:"joined_at"`
}

// ChallengeProgress is a timestamped progress record for a participant.
type ChallengeProgress struct {
	ID          int64     `json:"id"`
	ChallengeID int64     `json:"challenge_id"`
	UserID      int64     `json:"user_id"`
	Progress    float64   `json:"progress"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// Interaction is a like or comment, optionally tied to a challenge.
type Interaction struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Type        InteractionType `json:"interaction_type"`
	ChallengeID *int64          `json:"challenge_id,omitempty"`
	Comment     *string         `json:"comment,omitempty"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

type ChallengeRepository interface {
	Create(ctx context.Context, challenge *CommunityChallenge) error
	Get(ctx context.Context, id int64) (*CommunityChallenge, error)
	List(ctx context.Context) ([]CommunityChallenge, error)
	Update(ctx context.Context, challenge *CommunityChallenge) error
	Delete(ctx context.Context, id int64) error

	AddParticipant(ctx context.Context, challengeID, userID int64) (*ChallengeParticipant, error)
	ListParticipants(ctx context.Context, challengeID int64) ([]ChallengeParticipant, error)
	RemoveParticipant(ctx context.Context, challengeID, userID int64) error

	AddProgress(ctx context.Context, progress *ChallengeProgress) error
	ListProgress(ctx context.Context, challengeID int64) ([]ChallengeProgress, error)
}

type InteractionRepository interface {
	Create(ctx context.Context, interaction *Interaction) error
	Get(ctx context.Context, id int64) (*Interaction, error)
	List(ctx context.Context) ([]Interaction, error)
	ListByChallenge(ctx context.Context, challengeID int64) ([]Interaction, error)
	Update(ctx context.Context, interaction *Interaction) error
	Delete(ctx context.Context, id int64) error
}

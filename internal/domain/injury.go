package domain

import (
	"context"
	"encoding/json"
	"time"
)

// InjuryRecovery tracks a user's injury and its recovery status.
type InjuryRecovery struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	InjuryType string    `json:"injury_type"`
	InjuredAt  time.Time `json:"injured_at"`
	Severity   int       `json:"severity"`
	Status     int       `json:"status"`
}

// TrainingRecommendation is a generated training plan persisted verbatim.
type TrainingRecommendation struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	SportGoalID *int64          `json:"sport_goal_id,omitempty"`
	Description string          `json:"description"`
	Difficulty  int             `json:"difficulty"`
	Schedule    json.RawMessage `json:"schedule,omitempty"`
	Exercises   json.RawMessage `json:"exercises,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// RecoveryRecommendation is advice attached to an injury.
type RecoveryRecommendation struct {
	ID          int64  `json:"id"`
	InjuryID    int64  `json:"injury_id"`
	Description string `json:"description"`
}

// Benefit is a catalog entry shown in the app.
type Benefit struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type InjuryRepository interface {
	Create(ctx context.Context, injury *InjuryRecovery) error
	Get(ctx context.Context, id int64) (*InjuryRecovery, error)
	List(ctx context.Context) ([]InjuryRecovery, error)
	ListByUser(ctx context.Context, userID int64) ([]InjuryRecovery, error)
	Update(ctx context.Context, injury *InjuryRecovery) error
	Delete(ctx context.Context, id int64) error
}

type TrainingRecommendationRepository interface {
	Create(ctx context.Context, rec *TrainingRecommendation) error
	Get(ctx context.Context, id int64) (*TrainingRecommendation, error)
	ListByUser(ctx context.Context, userID int64) ([]TrainingRecommendation, error)
	Delete(ctx context.Context, id int64) error
}

type RecoveryRecommendationRepository interface {
	Create(ctx context.Context, rec *RecoveryRecommendation) error
	Get(ctx context.Context, id int64) (*RecoveryRecommendation, error)
	ListByInjury(ctx context.Context, injuryID int64) ([]RecoveryRecommendation, error)
	Delete(ctx context.Context, id int64) error
}

type BenefitRepository interface {
	Create(ctx context.Context, benefit *Benefit) error
	Get(ctx context.Context, id int64) (*Benefit, error)
	List(ctx context.Context) ([]Benefit, error)
	Update(ctx context.Context, benefit *Benefit) error
	Delete(ctx context.Context, id int64) error
}

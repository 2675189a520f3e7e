package domain

import (
	"context"
	"time"
)

// GoalKind discriminates the four goal catalogs.
type GoalKind string

const (
	GoalKindSport     GoalKind = "sport"
	GoalKindHydration GoalKind = "hydration"
	GoalKindNutrition GoalKind = "nutrition"
	GoalKindSleep     GoalKind = "sleep"
)

// ValidGoalKind reports whether k names a known goal catalog.
func ValidGoalKind(k GoalKind) bool {
	switch k {
	case GoalKindSport, GoalKindHydration, GoalKindNutrition, GoalKindSleep:
		return true
	}
	return false
}

// ParticipationStatus enumerates the states of a goal participation.
type ParticipationStatus string

const (
	ParticipationInProgress ParticipationStatus = "in_progress"
	ParticipationCompleted  ParticipationStatus = "completed"
)

// SportGoal is a target definition for sport performance.
type SportGoal struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	TargetValue float64    `json:"target_value"`
	Unit        string     `json:"unit"`
}

// HydrationGoal is a daily-glasses target definition.
type HydrationGoal struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Icon            string `json:"icon"`
	Description     string `json:"description"`
	RequiredGlasses int    `json:"required_glasses"`
}

// NutritionGoal is a meals-per-day target definition.
type NutritionGoal struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Icon          string `json:"icon"`
	Description   string `json:"description"`
	RequiredMeals int    `json:"required_meals"`
}

// SleepGoal is an hours-of-sleep target definition.
type SleepGoal struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Icon          string  `json:"icon"`
	Description   string  `json:"description"`
	RequiredHours int     `json:"required_hours"`
	QualityGoal   *int    `json:"quality_goal,omitempty"`
	SportType     *string `json:"sport_type,omitempty"`
}

// GoalParticipation is the join row tracking a user pursuing a goal.
// At most one row per (user, kind) may have IsActive set; the schema
// enforces this with a partial unique index.
type GoalParticipation struct {
	ID       int64               `json:"id"`
	UserID   int64               `json:"user_id"`
	Kind     GoalKind            `json:"goal_kind"`
	GoalID   int64               `json:"goal_id"`
	Progress float64             `json:"progress"`
	Status   ParticipationStatus `json:"status"`
	IsActive bool                `json:"is_active"`
}

// GoalProgress ties a sport goal to the activity that advanced it.
type GoalProgress struct {
	ID          int64   `json:"id"`
	SportGoalID int64   `json:"sport_goal_id"`
	ActivityID  int64   `json:"activity_id"`
	Progression float64 `json:"progression"`
}

type SportGoalRepository interface {
	Create(ctx context.Context, goal *SportGoal) error
	Get(ctx context.Context, id int64) (*SportGoal, error)
	List(ctx context.Context) ([]SportGoal, error)
	Update(ctx context.Context, goal *SportGoal) error
	Delete(ctx context.Context, id int64) error
}

type HydrationGoalRepository interface {
	Create(ctx context.Context, goal *HydrationGoal) error
	Get(ctx context.Context, id int64) (*HydrationGoal, error)
	List(ctx context.Context) ([]HydrationGoal, error)
	Update(ctx context.Context, goal *HydrationGoal) error
	Delete(ctx context.Context, id int64) error
}

type NutritionGoalRepository interface {
	Create(ctx context.Context, goal *NutritionGoal) error
	Get(ctx context.Context, id int64) (*NutritionGoal, error)
	List(ctx context.Context) ([]NutritionGoal, error)
	Update(ctx context.Context, goal *NutritionGoal) error
	Delete(ctx context.Context, id int64) error
}

type SleepGoalRepository interface {
	Create(ctx context.Context, goal *SleepGoal) error
	Get(ctx context.Context, id int64) (*SleepGoal, error)
	List(ctx context.Context) ([]SleepGoal, error)
	Update(ctx context.Context, goal *SleepGoal) error
	Delete(ctx context.Context, id int64) error
}

type GoalProgressRepository interface {
	Create(ctx context.Context, progress *GoalProgress) error
	Get(ctx context.Context, id int64) (*GoalProgress, error)
	ListBySportGoal(ctx context.Context, sportGoalID int64) ([]GoalProgress, error)
	Delete(ctx context.Context, id int64) error
}

// ParticipationRepository captures persistence for goal participations.
type ParticipationRepository interface {
	Create(ctx context.Context, p *GoalParticipation) error
	Get(ctx context.Context, id int64) (*GoalParticipation, error)
	FindActive(ctx context.Context, userID int64, kind GoalKind) (*GoalParticipation, error)
	ListByUser(ctx context.Context, userID int64, kind GoalKind, activeOnly bool) ([]GoalParticipation, error)
	Update(ctx context.Context, p *GoalParticipation) error
	Delete(ctx context.Context, id int64) error
}

// GoalCatalog resolves the required quantity a participation of the given
// kind must reach to complete.
type GoalCatalog interface {
	RequiredQuantity(ctx context.Context, kind GoalKind, goalID int64) (float64, error)
}

// ParticipationService implements the goal-progress state machine.
type ParticipationService struct {
	repo    ParticipationRepository
	catalog GoalCatalog
	users   UserRepository
}

// NewParticipationService constructs a ParticipationService.
func NewParticipationService(repo ParticipationRepository, catalog GoalCatalog, users UserRepository) *ParticipationService {
	return &ParticipationService{repo: repo, catalog: catalog, users: users}
}

// JoinGoalInput captures the payload for joining a goal.
type JoinGoalInput struct {
	UserID int64
	Kind   GoalKind
	GoalID int64
}

// Join enrolls a user in a goal. It rejects unknown users and goals, and
// returns ErrActiveParticipationExists when the user already pursues a goal
// of the same kind. The pre-check keeps the common case friendly; the
// partial unique index closes the race between concurrent joins.
func (s *ParticipationService) Join(ctx context.Context, input JoinGoalInput) (*GoalParticipation, error) {
	if _, err := s.users.Get(ctx, input.UserID); err != nil {
		return nil, err
	}
	if _, err := s.catalog.RequiredQuantity(ctx, input.Kind, input.GoalID); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindActive(ctx, input.UserID, input.Kind)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrActiveParticipationExists
	}

	p := &GoalParticipation{
		UserID:   input.UserID,
		Kind:     input.Kind,
		GoalID:   input.GoalID,
		Progress: 0,
		Status:   ParticipationInProgress,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateProgress records a new progress value. Reaching the goal's required
// quantity completes the participation and deactivates it. Updates on an
// already completed row are rejected.
func (s *ParticipationService) UpdateProgress(ctx context.Context, id int64, progress float64) (*GoalParticipation, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status == ParticipationCompleted {
		return nil, ErrParticipationCompleted
	}

	required, err := s.catalog.RequiredQuantity(ctx, p.Kind, p.GoalID)
	if err != nil {
		return nil, err
	}

	p.Progress = progress
	if progress >= required {
		p.Status = ParticipationCompleted
		p.IsActive = false
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Complete marks a participation finished regardless of progress.
func (s *ParticipationService) Complete(ctx context.Context, id int64) (*GoalParticipation, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status == ParticipationCompleted {
		return nil, ErrParticipationCompleted
	}

	p.Status = ParticipationCompleted
	p.IsActive = false
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

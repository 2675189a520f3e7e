package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Ahmed-Chaabane/backend-gorun/internal/domain"
)

// SportGoalStore is an in-memory domain.SportGoalRepository.
type SportGoalStore struct {
	mu    sync.RWMutex
	seq   seq
	goals map[int64]domain.SportGoal
}

func NewSportGoalStore() *SportGoalStore {
	return &SportGoalStore{goals: make(map[int64]domain.SportGoal)}
}

func (s *SportGoalStore) Create(_ context.Context, goal *domain.SportGoal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	goal.ID = s.seq.id()
	s.goals[goal.ID] = *goal
	return nil
}

func (s *SportGoalStore) Get(_ context.Context, id int64) (*domain.SportGoal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.goals[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &g, nil
}

func (s *SportGoalStore) List(_ context.Context) ([]domain.SportGoal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.SportGoal, 0, len(s.goals))
	for _, g := range s.goals {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *SportGoalStore) Update(_ context.Context, goal *domain.SportGoal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.goals[goal.ID]; !ok {
		return domain.ErrNotFound
	}
	s.goals[goal.ID] = *goal
	return nil
}

func (s *SportGoalStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.goals[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.goals, id)
	return nil
}

// HydrationGoalStore is an in-memory domain.HydrationGoalRepository.
type HydrationGoalStore struct {
	mu    sync.RWMutex
	seq   seq
	goals map[int64]domain.HydrationGoal
}

func NewHydrationGoalStore() *HydrationGoalStore {
	return &HydrationGoalStore{goals: make(map[int64]domain.HydrationGoal)}
}

func (s *HydrationGoalStore) Create(_ context.Context, goal *domain.HydrationGoal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	goal.ID = s.seq.id()
	s.goals[goal.ID] = *goal
	return nil
}

func (s *HydrationGoalStore) Get(_ context.Context, id int64) (*domain.HydrationGoal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.goals[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &g, nil
}

func (s *HydrationGoalStore) List(_ context.Context) ([]domain.HydrationGoal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.HydrationGoal, 0, len(s.goals))
	for _, g := range s.goals {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *HydrationGoalStore) Update(_ context.Context, goal *domain.HydrationGoal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.goals[goal.ID]; !ok {
		return domain.ErrNotFound
	}
	s.goals[goal.ID] = *goal
	return nil
}

func (s *HydrationGoalStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.goals[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.goals, id)
	return nil
}

// NutritionGoalStore is an in-memory domain.NutritionGoalRepository.
type NutritionGoalStore struct {
	mu    sync.RWMutex
	seq   seq
	goals map[int64]domain.NutritionGoal
}

func NewNutritionGoalStore() *NutritionGoalStore {
	return &NutritionGoalStore{goals: make(map[int64]domain.NutritionGoal)}
}

func (s *NutritionGoalStore) Create(_ context.Context, goal *domain.NutritionGoal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	goal.ID = s.seq.id()
	s.goals[goal.ID] = *goal
	return nil
}

func (s *NutritionGoalStore) Get(_ context.Context, id int64) (*domain.NutritionGoal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.goals[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &g, nil
}

func (s *NutritionGoalStore) List(_ context.Context) ([]domain.NutritionGoal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.NutritionGoal, 0, len(s.goals))
	for _, g := range s.goals {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *NutritionGoalStore) Update(_ context.Context, goal *domain.NutritionGoal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.goals[goal.ID]; !ok {
		return domain.ErrNotFound
	}
	s.goals[goal.ID] = *goal
	return nil
}

func (s *NutritionGoalStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.goals[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.goals, id)
	return nil
}

// SleepGoalStore is an in-memory domain.SleepGoalRepository.
type SleepGoalStore struct {
	mu    sync.RWMutex
	seq   seq
	goals map[int64]domain.SleepGoal
}

func NewSleepGoalStore() *SleepGoalStore {
	return &SleepGoalStore{goals: make(map[int64]domain.SleepGoal)}
}

func (s *SleepGoalStore) Create(_ context.Context, goal *domain.SleepGoal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	goal.ID = s.seq.id()
	s.goals[goal.ID] = *goal
	return nil
}

func (s *SleepGoalStore) Get(_ context.Context, id int64) (*domain.SleepGoal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.goals[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &g, nil
}

func (s *SleepGoalStore) List(_ context.Context) ([]domain.SleepGoal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.SleepGoal, 0, len(s.goals))
	for _, g := range s.goals {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *SleepGoalStore) Update(_ context.Context, goal *domain.SleepGoal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.goals[goal.ID]; !ok {
		return domain.ErrNotFound
	}
	s.goals[goal.ID] = *goal
	return nil
}

func (s *SleepGoalStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.goals[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.goals, id)
	return nil
}

// Catalog resolves required quantities across the four goal stores.
type Catalog struct {
	Sport     *SportGoalStore
	Hydration *HydrationGoalStore
	Nutrition *NutritionGoalStore
	Sleep     *SleepGoalStore
}

// NewCatalog builds a Catalog over fresh stores.
func NewCatalog() *Catalog {
	return &Catalog{
		Sport:     NewSportGoalStore(),
		Hydration: NewHydrationGoalStore(),
		Nutrition: NewNutritionGoalStore(),
		Sleep:     NewSleepGoalStore(),
	}
}

func (c *Catalog) RequiredQuantity(ctx context.Context, kind domain.GoalKind, goalID int64) (float64, error) {
	switch kind {
	case domain.GoalKindSport:
		g, err := c.Sport.Get(ctx, goalID)
		if err != nil {
			return 0, err
		}
		return g.TargetValue, nil
	case domain.GoalKindHydration:
		g, err := c.Hydration.Get(ctx, goalID)
		if err != nil {
			return 0, err
		}
		return float64(g.RequiredGlasses), nil
	case domain.GoalKindNutrition:
		g, err := c.Nutrition.Get(ctx, goalID)
		if err != nil {
			return 0, err
		}
		return float64(g.RequiredMeals), nil
	case domain.GoalKindSleep:
		g, err := c.Sleep.Get(ctx, goalID)
		if err != nil {
			return 0, err
		}
		return float64(g.RequiredHours), nil
	}
	return 0, domain.ErrNotFound
}

// ParticipationStore is an in-memory domain.ParticipationRepository. Create
// enforces the one-active-per-kind rule the schema's partial index provides.
type ParticipationStore struct {
	mu             sync.RWMutex
	seq            seq
	participations map[int64]domain.GoalParticipation
}

func NewParticipationStore() *ParticipationStore {
	return &ParticipationStore{participations: make(map[int64]domain.GoalParticipation)}
}

func (s *ParticipationStore) Create(_ context.Context, p *domain.GoalParticipation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.IsActive {
		for _, existing := range s.participations {
			if existing.UserID == p.UserID && existing.Kind == p.Kind && existing.IsActive {
				return domain.ErrActiveParticipationExists
			}
		}
	}
	p.ID = s.seq.id()
	s.participations[p.ID] = *p
	return nil
}

func (s *ParticipationStore) Get(_ context.Context, id int64) (*domain.GoalParticipation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.participations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (s *ParticipationStore) FindActive(_ context.Context, userID int64, kind domain.GoalKind) (*domain.GoalParticipation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.participations {
		if p.UserID == userID && p.Kind == kind && p.IsActive {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (s *ParticipationStore) ListByUser(_ context.Context, userID int64, kind domain.GoalKind, activeOnly bool) ([]domain.GoalParticipation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.GoalParticipation, 0)
	for _, p := range s.participations {
		if p.UserID != userID {
			continue
		}
		if kind != "" && p.Kind != kind {
			continue
		}
		if activeOnly && !p.IsActive {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *ParticipationStore) Update(_ context.Context, p *domain.GoalParticipation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.participations[p.ID]; !ok {
		return domain.ErrNotFound
	}
	s.participations[p.ID] = *p
	return nil
}

// DeleteByUser drops every participation owned by userID.
func (s *ParticipationStore) DeleteByUser(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range s.participations {
		if p.UserID == userID {
			delete(s.participations, id)
		}
	}
}

func (s *ParticipationStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.participations[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.participations, id)
	return nil
}

// GoalProgressStore is an in-memory domain.GoalProgressRepository.
type GoalProgressStore struct {
	mu      sync.RWMutex
	seq     seq
	entries map[int64]domain.GoalProgress
}

func NewGoalProgressStore() *GoalProgressStore {
	return &GoalProgressStore{entries: make(map[int64]domain.GoalProgress)}
}

func (s *GoalProgressStore) Create(_ context.Context, progress *domain.GoalProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	progress.ID = s.seq.id()
	s.entries[progress.ID] = *progress
	return nil
}

func (s *GoalProgressStore) Get(_ context.Context, id int64) (*domain.GoalProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.entries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (s *GoalProgressStore) ListBySportGoal(_ context.Context, sportGoalID int64) ([]domain.GoalProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.GoalProgress, 0)
	for _, p := range s.entries {
		if p.SportGoalID == sportGoalID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *GoalProgressStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

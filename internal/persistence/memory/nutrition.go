package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Ahmed-Chaabane/backend-gorun/internal/domain"
)

// FoodStore is an in-memory domain.FoodRepository.
type FoodStore struct {
	mu    sync.RWMutex
	seq   seq
	foods map[int64]domain.Food
}

func NewFoodStore() *FoodStore {
	return &FoodStore{foods: make(map[int64]domain.Food)}
}

func (s *FoodStore) Create(_ context.Context, food *domain.Food) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	food.ID = s.seq.id()
	s.foods[food.ID] = *food
	return nil
}

func (s *FoodStore) Get(_ context.Context, id int64) (*domain.Food, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.foods[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &f, nil
}

func (s *FoodStore) List(_ context.Context) ([]domain.Food, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Food, 0, len(s.foods))
	for _, f := range s.foods {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *FoodStore) Update(_ context.Context, food *domain.Food) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.foods[food.ID]; !ok {
		return domain.ErrNotFound
	}
	s.foods[food.ID] = *food
	return nil
}

func (s *FoodStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.foods[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.foods, id)
	return nil
}

// EatingHabitStore is an in-memory domain.EatingHabitRepository.
type EatingHabitStore struct {
	mu     sync.RWMutex
	seq    seq
	habits map[int64]domain.EatingHabit
}

func NewEatingHabitStore() *EatingHabitStore {
	return &EatingHabitStore{habits: make(map[int64]domain.EatingHabit)}
}

func (s *EatingHabitStore) Create(_ context.Context, habit *domain.EatingHabit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	habit.ID = s.seq.id()
	s.habits[habit.ID] = *habit
	return nil
}

func (s *EatingHabitStore) Get(_ context.Context, id int64) (*domain.EatingHabit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.habits[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &h, nil
}

func (s *EatingHabitStore) List(_ context.Context) ([]domain.EatingHabit, error) {
	return s.list(func(domain.EatingHabit) bool { return true }), nil
}

func (s *EatingHabitStore) ListByUser(_ context.Context, userID int64) ([]domain.EatingHabit, error) {
	return s.list(func(h domain.EatingHabit) bool { return h.UserID == userID }), nil
}

func (s *EatingHabitStore) list(keep func(domain.EatingHabit) bool) []domain.EatingHabit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.EatingHabit, 0)
	for _, h := range s.habits {
		if keep(h) {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EatenAt.After(out[j].EatenAt) })
	return out
}

func (s *EatingHabitStore) Update(_ context.Context, habit *domain.EatingHabit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.habits[habit.ID]; !ok {
		return domain.ErrNotFound
	}
	s.habits[habit.ID] = *habit
	return nil
}

// DeleteByUser drops every habit owned by userID.
func (s *EatingHabitStore) DeleteByUser(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, h := range s.habits {
		if h.UserID == userID {
			delete(s.habits, id)
		}
	}
}

func (s *EatingHabitStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.habits[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.habits, id)
	return nil
}

package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Ahmed-Chaabane/backend-gorun/internal/domain"
)

// ActivityStore is an in-memory domain.ActivityRepository.
type ActivityStore struct {
	mu         sync.RWMutex
	seq        seq
	activities map[int64]domain.SportActivity
}

func NewActivityStore() *ActivityStore {
	return &ActivityStore{activities: make(map[int64]domain.SportActivity)}
}

func (s *ActivityStore) Create(_ context.Context, activity *domain.SportActivity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	activity.ID = s.seq.id()
	s.activities[activity.ID] = *activity
	return nil
}

func (s *ActivityStore) Get(_ context.Context, id int64) (*domain.SportActivity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.activities[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (s *ActivityStore) List(_ context.Context) ([]domain.SportActivity, error) {
	return s.list(func(domain.SportActivity) bool { return true }), nil
}

func (s *ActivityStore) ListByUser(_ context.Context, userID int64) ([]domain.SportActivity, error) {
	return s.list(func(a domain.SportActivity) bool { return a.UserID == userID }), nil
}

func (s *ActivityStore) list(keep func(domain.SportActivity) bool) []domain.SportActivity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.SportActivity, 0)
	for _, a := range s.activities {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ActivityDate.After(out[j].ActivityDate) })
	return out
}

func (s *ActivityStore) Update(_ context.Context, activity *domain.SportActivity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.activities[activity.ID]; !ok {
		return domain.ErrNotFound
	}
	s.activities[activity.ID] = *activity
	return nil
}

// DeleteByUser drops every activity owned by userID.
func (s *ActivityStore) DeleteByUser(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, a := range s.activities {
		if a.UserID == userID {
			delete(s.activities, id)
		}
	}
}

func (s *ActivityStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.activities[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.activities, id)
	return nil
}

// ActivityDetailStore is an in-memory domain.ActivityDetailRepository.
type ActivityDetailStore struct {
	mu      sync.RWMutex
	seq     seq
	details map[int64]domain.ActivityDetail
}

func NewActivityDetailStore() *ActivityDetailStore {
	return &ActivityDetailStore{details: make(map[int64]domain.ActivityDetail)}
}

func (s *ActivityDetailStore) Create(_ context.Context, detail *domain.ActivityDetail) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	detail.ID = s.seq.id()
	s.details[detail.ID] = *detail
	return nil
}

func (s *ActivityDetailStore) Get(_ context.Context, id int64) (*domain.ActivityDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.details[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &d, nil
}

func (s *ActivityDetailStore) ListByActivity(_ context.Context, activityID int64) ([]domain.ActivityDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ActivityDetail, 0)
	for _, d := range s.details {
		if d.ActivityID == activityID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Moment.Before(out[j].Moment) })
	return out, nil
}

func (s *ActivityDetailStore) Update(_ context.Context, detail *domain.ActivityDetail) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.details[detail.ID]; !ok {
		return domain.ErrNotFound
	}
	s.details[detail.ID] = *detail
	return nil
}

func (s *ActivityDetailStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.details[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.details, id)
	return nil
}

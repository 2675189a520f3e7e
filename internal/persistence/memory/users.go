package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Ahmed-Chaabane/backend-gorun/internal/domain"
)

// UserStore is an in-memory domain.UserRepository.
type UserStore struct {
	mu    sync.RWMutex
	seq   seq
	users map[int64]domain.User
	owned []UserOwned
}

// NewUserStore returns an empty UserStore.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[int64]domain.User)}
}

// Cascade registers stores whose rows Delete removes alongside the user.
func (s *UserStore) Cascade(stores ...UserOwned) {
	s.owned = append(s.owned, stores...)
}

func (s *UserStore) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email || u.AuthUID == user.AuthUID {
			return domain.ErrConflict
		}
	}
	user.ID = s.seq.id()
	s.users[user.ID] = *user
	return nil
}

func (s *UserStore) Get(_ context.Context, id int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (s *UserStore) GetByAuthUID(_ context.Context, authUID string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.AuthUID == authUID {
			u := u
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *UserStore) List(_ context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *UserStore) Update(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, u := range s.users {
		if id != user.ID && (u.Email == user.Email || u.AuthUID == user.AuthUID) {
			return domain.ErrConflict
		}
	}
	s.users[user.ID] = *user
	return nil
}

func (s *UserStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	if _, ok := s.users[id]; !ok {
		s.mu.Unlock()
		return domain.ErrNotFound
	}
	delete(s.users, id)
	s.mu.Unlock()

	for _, store := range s.owned {
		store.DeleteByUser(id)
	}
	return nil
}

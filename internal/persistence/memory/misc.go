package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Ahmed-Chaabane/backend-gorun/internal/domain"
)

// EventStore is an in-memory domain.EventRepository.
type EventStore struct {
	mu     sync.RWMutex
	seq    seq
	events map[int64]domain.Event
}

func NewEventStore() *EventStore {
	return &EventStore{events: make(map[int64]domain.Event)}
}

func (s *EventStore) Create(_ context.Context, event *domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	event.ID = s.seq.id()
	s.events[event.ID] = *event
	return nil
}

func (s *EventStore) Get(_ context.Context, id int64) (*domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

func (s *EventStore) List(_ context.Context) ([]domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Event, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *EventStore) Update(_ context.Context, event *domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[event.ID]; !ok {
		return domain.ErrNotFound
	}
	s.events[event.ID] = *event
	return nil
}

func (s *EventStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.events, id)
	return nil
}

// InjuryStore is an in-memory domain.InjuryRepository.
type InjuryStore struct {
	mu       sync.RWMutex
	seq      seq
	injuries map[int64]domain.InjuryRecovery
}

func NewInjuryStore() *InjuryStore {
	return &InjuryStore{injuries: make(map[int64]domain.InjuryRecovery)}
}

func (s *InjuryStore) Create(_ context.Context, injury *domain.InjuryRecovery) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	injury.ID = s.seq.id()
	s.injuries[injury.ID] = *injury
	return nil
}

func (s *InjuryStore) Get(_ context.Context, id int64) (*domain.InjuryRecovery, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	in, ok := s.injuries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &in, nil
}

func (s *InjuryStore) List(_ context.Context) ([]domain.InjuryRecovery, error) {
	return s.list(func(domain.InjuryRecovery) bool { return true }), nil
}

func (s *InjuryStore) ListByUser(_ context.Context, userID int64) ([]domain.InjuryRecovery, error) {
	return s.list(func(in domain.InjuryRecovery) bool { return in.UserID == userID }), nil
}

func (s *InjuryStore) list(keep func(domain.InjuryRecovery) bool) []domain.InjuryRecovery {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.InjuryRecovery, 0)
	for _, in := range s.injuries {
		if keep(in) {
			out = append(out, in)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// DeleteByUser drops every injury record owned by userID.
func (s *InjuryStore) DeleteByUser(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, in := range s.injuries {
		if in.UserID == userID {
			delete(s.injuries, id)
		}
	}
}

func (s *InjuryStore) Update(_ context.Context, injury *domain.InjuryRecovery) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.injuries[injury.ID]; !ok {
		return domain.ErrNotFound
	}
	s.injuries[injury.ID] = *injury
	return nil
}

func (s *InjuryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.injuries[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.injuries, id)
	return nil
}

// TrainingRecommendationStore is an in-memory domain.TrainingRecommendationRepository.
type TrainingRecommendationStore struct {
	mu   sync.RWMutex
	seq  seq
	recs map[int64]domain.TrainingRecommendation
}

func NewTrainingRecommendationStore() *TrainingRecommendationStore {
	return &TrainingRecommendationStore{recs: make(map[int64]domain.TrainingRecommendation)}
}

func (s *TrainingRecommendationStore) Create(_ context.Context, rec *domain.TrainingRecommendation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = s.seq.id()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	s.recs[rec.ID] = *rec
	return nil
}

func (s *TrainingRecommendationStore) Get(_ context.Context, id int64) (*domain.TrainingRecommendation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.recs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &r, nil
}

func (s *TrainingRecommendationStore) ListByUser(_ context.Context, userID int64) ([]domain.TrainingRecommendation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.TrainingRecommendation, 0)
	for _, r := range s.recs {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// DeleteByUser drops every recommendation owned by userID.
func (s *TrainingRecommendationStore) DeleteByUser(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, r := range s.recs {
		if r.UserID == userID {
			delete(s.recs, id)
		}
	}
}

func (s *TrainingRecommendationStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.recs, id)
	return nil
}

// RecoveryRecommendationStore is an in-memory domain.RecoveryRecommendationRepository.
type RecoveryRecommendationStore struct {
	mu   sync.RWMutex
	seq  seq
	recs map[int64]domain.RecoveryRecommendation
}

func NewRecoveryRecommendationStore() *RecoveryRecommendationStore {
	return &RecoveryRecommendationStore{recs: make(map[int64]domain.RecoveryRecommendation)}
}

func (s *RecoveryRecommendationStore) Create(_ context.Context, rec *domain.RecoveryRecommendation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = s.seq.id()
	s.recs[rec.ID] = *rec
	return nil
}

func (s *RecoveryRecommendationStore) Get(_ context.Context, id int64) (*domain.RecoveryRecommendation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.recs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &r, nil
}

func (s *RecoveryRecommendationStore) ListByInjury(_ context.Context, injuryID int64) ([]domain.RecoveryRecommendation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.RecoveryRecommendation, 0)
	for _, r := range s.recs {
		if r.InjuryID == injuryID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *RecoveryRecommendationStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.recs, id)
	return nil
}

// BenefitStore is an in-memory domain.BenefitRepository.
type BenefitStore struct {
	mu       sync.RWMutex
	seq      seq
	benefits map[int64]domain.Benefit
}

func NewBenefitStore() *BenefitStore {
	return &BenefitStore{benefits: make(map[int64]domain.Benefit)}
}

func (s *BenefitStore) Create(_ context.Context, benefit *domain.Benefit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	benefit.ID = s.seq.id()
	s.benefits[benefit.ID] = *benefit
	return nil
}

func (s *BenefitStore) Get(_ context.Context, id int64) (*domain.Benefit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.benefits[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

func (s *BenefitStore) List(_ context.Context) ([]domain.Benefit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Benefit, 0, len(s.benefits))
	for _, b := range s.benefits {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *BenefitStore) Update(_ context.Context, benefit *domain.Benefit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.benefits[benefit.ID]; !ok {
		return domain.ErrNotFound
	}
	s.benefits[benefit.ID] = *benefit
	return nil
}

func (s *BenefitStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.benefits[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.benefits, id)
	return nil
}

// MusicAccountStore is an in-memory domain.MusicAccountRepository.
type MusicAccountStore struct {
	mu       sync.RWMutex
	accounts map[int64]domain.MusicAccount
}

func NewMusicAccountStore() *MusicAccountStore {
	return &MusicAccountStore{accounts: make(map[int64]domain.MusicAccount)}
}

func (s *MusicAccountStore) Upsert(_ context.Context, account *domain.MusicAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	account.UpdatedAt = time.Now().UTC()
	s.accounts[account.UserID] = *account
	return nil
}

// DeleteByUser drops the user's linked account.
func (s *MusicAccountStore) DeleteByUser(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.accounts, userID)
}

func (s *MusicAccountStore) GetByUser(_ context.Context, userID int64) (*domain.MusicAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

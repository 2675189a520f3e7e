package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Ahmed-Chaabane/backend-gorun/internal/domain"
)

type participantKey struct {
	challengeID int64
	userID      int64
}

// ChallengeStore is an in-memory domain.ChallengeRepository.
type ChallengeStore struct {
	mu           sync.RWMutex
	seq          seq
	progressSeq  seq
	challenges   map[int64]domain.CommunityChallenge
	participants map[participantKey]domain.ChallengeParticipant
	progress     map[int64]domain.ChallengeProgress
}

func NewChallengeStore() *ChallengeStore {
	return &ChallengeStore{
		challenges:   make(map[int64]domain.CommunityChallenge),
		participants: make(map[participantKey]domain.ChallengeParticipant),
		progress:     make(map[int64]domain.ChallengeProgress),
	}
}

func (s *ChallengeStore) Create(_ context.Context, challenge *domain.CommunityChallenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	challenge.ID = s.seq.id()
	s.challenges[challenge.ID] = *challenge
	return nil
}

func (s *ChallengeStore) Get(_ context.Context, id int64) (*domain.CommunityChallenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.challenges[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (s *ChallengeStore) List(_ context.Context) ([]domain.CommunityChallenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.CommunityChallenge, 0, len(s.challenges))
	for _, c := range s.challenges {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *ChallengeStore) Update(_ context.Context, challenge *domain.CommunityChallenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.challenges[challenge.ID]; !ok {
		return domain.ErrNotFound
	}
	s.challenges[challenge.ID] = *challenge
	return nil
}

func (s *ChallengeStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.challenges[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.challenges, id)
	for key := range s.participants {
		if key.challengeID == id {
			delete(s.participants, key)
		}
	}
	return nil
}

func (s *ChallengeStore) AddParticipant(_ context.Context, challengeID, userID int64) (*domain.ChallengeParticipant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.challenges[challengeID]; !ok {
		return nil, domain.ErrInvalidReference
	}
	key := participantKey{challengeID: challengeID, userID: userID}
	if _, ok := s.participants[key]; ok {
		return nil, domain.ErrConflict
	}
	p := domain.ChallengeParticipant{ChallengeID: challengeID, UserID: userID, JoinedAt: time.Now().UTC()}
	s.participants[key] = p
	return &p, nil
}

func (s *ChallengeStore) ListParticipants(_ context.Context, challengeID int64) ([]domain.ChallengeParticipant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ChallengeParticipant, 0)
	for key, p := range s.participants {
		if key.challengeID == challengeID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (s *ChallengeStore) RemoveParticipant(_ context.Context, challengeID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := participantKey{challengeID: challengeID, userID: userID}
	if _, ok := s.participants[key]; !ok {
		return domain.ErrNotFound
	}
	delete(s.participants, key)
	return nil
}

// DeleteByUser drops the user's participant and progress rows.
func (s *ChallengeStore) DeleteByUser(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.participants {
		if key.userID == userID {
			delete(s.participants, key)
		}
	}
	for id, p := range s.progress {
		if p.UserID == userID {
			delete(s.progress, id)
		}
	}
}

func (s *ChallengeStore) AddProgress(_ context.Context, progress *domain.ChallengeProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.challenges[progress.ChallengeID]; !ok {
		return domain.ErrInvalidReference
	}
	progress.ID = s.progressSeq.id()
	s.progress[progress.ID] = *progress
	return nil
}

func (s *ChallengeStore) ListProgress(_ context.Context, challengeID int64) ([]domain.ChallengeProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ChallengeProgress, 0)
	for _, p := range s.progress {
		if p.ChallengeID == challengeID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// InteractionStore is an in-memory domain.InteractionRepository.
type InteractionStore struct {
	mu           sync.RWMutex
	seq          seq
	interactions map[int64]domain.Interaction
}

func NewInteractionStore() *InteractionStore {
	return &InteractionStore{interactions: make(map[int64]domain.Interaction)}
}

func (s *InteractionStore) Create(_ context.Context, interaction *domain.Interaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	interaction.ID = s.seq.id()
	if interaction.OccurredAt.IsZero() {
		interaction.OccurredAt = time.Now().UTC()
	}
	s.interactions[interaction.ID] = *interaction
	return nil
}

func (s *InteractionStore) Get(_ context.Context, id int64) (*domain.Interaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	in, ok := s.interactions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &in, nil
}

func (s *InteractionStore) List(_ context.Context) ([]domain.Interaction, error) {
	return s.list(func(domain.Interaction) bool { return true }), nil
}

func (s *InteractionStore) ListByChallenge(_ context.Context, challengeID int64) ([]domain.Interaction, error) {
	return s.list(func(in domain.Interaction) bool {
		return in.ChallengeID != nil && *in.ChallengeID == challengeID
	}), nil
}

func (s *InteractionStore) list(keep func(domain.Interaction) bool) []domain.Interaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Interaction, 0)
	for _, in := range s.interactions {
		if keep(in) {
			out = append(out, in)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *InteractionStore) Update(_ context.Context, interaction *domain.Interaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.interactions[interaction.ID]; !ok {
		return domain.ErrNotFound
	}
	s.interactions[interaction.ID] = *interaction
	return nil
}

// DeleteByUser drops every interaction owned by userID.
func (s *InteractionStore) DeleteByUser(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, in := range s.interactions {
		if in.UserID == userID {
			delete(s.interactions, id)
		}
	}
}

func (s *InteractionStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.interactions[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.interactions, id)
	return nil
}

package domain_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahmed-Chaabane/backend-gorun/internal/domain"
	"github.com/Ahmed-Chaabane/backend-gorun/internal/persistence/memory"
)

func newServiceFixture(t *testing.T) (*domain.ParticipationService, *memory.Catalog, *memory.UserStore) {
	t.Helper()
	catalog := memory.NewCatalog()
	users := memory.NewUserStore()
	repo := memory.NewParticipationStore()
	return domain.NewParticipationService(repo, catalog, users), catalog, users
}

func seedUser(t *testing.T, users *memory.UserStore) *domain.User {
	t.Helper()
	user := &domain.User{
		FirstName: "Nora",
		LastName:  "Haddad",
		Email:     "nora@example.com",
		AuthUID:   "uid-nora",
		Status:    domain.UserStatusActive,
	}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func seedHydrationGoal(t *testing.T, catalog *memory.Catalog, glasses int) *domain.HydrationGoal {
	t.Helper()
	goal := &domain.HydrationGoal{
		Name:            "Daily water",
		Icon:            "drop",
		Description:     "Drink up",
		RequiredGlasses: glasses,
	}
	require.NoError(t, catalog.Hydration.Create(context.Background(), goal))
	return goal
}

func TestJoinCreatesActiveParticipation(t *testing.T) {
	svc, catalog, users := newServiceFixture(t)
	user := seedUser(t, users)
	goal := seedHydrationGoal(t, catalog, 8)

	p, err := svc.Join(context.Background(), domain.JoinGoalInput{
		UserID: user.ID,
		Kind:   domain.GoalKindHydration,
		GoalID: goal.ID,
	})
	require.NoError(t, err)

	assert.True(t, p.IsActive)
	assert.Equal(t, domain.ParticipationInProgress, p.Status)
	assert.Zero(t, p.Progress)
}

func TestJoinRejectsSecondActiveGoalOfSameKind(t *testing.T) {
	svc, catalog, users := newServiceFixture(t)
	user := seedUser(t, users)
	first := seedHydrationGoal(t, catalog, 8)
	second := seedHydrationGoal(t, catalog, 10)

	_, err := svc.Join(context.Background(), domain.JoinGoalInput{
		UserID: user.ID, Kind: domain.GoalKindHydration, GoalID: first.ID,
	})
	require.NoError(t, err)

	_, err = svc.Join(context.Background(), domain.JoinGoalInput{
		UserID: user.ID, Kind: domain.GoalKindHydration, GoalID: second.ID,
	})
	assert.ErrorIs(t, err, domain.ErrActiveParticipationExists)
}

func TestJoinAllowsDifferentKindsConcurrently(t *testing.T) {
	svc, catalog, users := newServiceFixture(t)
	user := seedUser(t, users)
	hydration := seedHydrationGoal(t, catalog, 8)

	sleep := &domain.SleepGoal{Name: "Full night", Icon: "moon", Description: "Sleep well", RequiredHours: 8}
	require.NoError(t, catalog.Sleep.Create(context.Background(), sleep))

	_, err := svc.Join(context.Background(), domain.JoinGoalInput{
		UserID: user.ID, Kind: domain.GoalKindHydration, GoalID: hydration.ID,
	})
	require.NoError(t, err)

	_, err = svc.Join(context.Background(), domain.JoinGoalInput{
		UserID: user.ID, Kind: domain.GoalKindSleep, GoalID: sleep.ID,
	})
	assert.NoError(t, err)
}

func TestJoinUnknownUserOrGoal(t *testing.T) {
	svc, catalog, users := newServiceFixture(t)
	user := seedUser(t, users)
	goal := seedHydrationGoal(t, catalog, 8)

	_, err := svc.Join(context.Background(), domain.JoinGoalInput{
		UserID: user.ID + 99, Kind: domain.GoalKindHydration, GoalID: goal.ID,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Join(context.Background(), domain.JoinGoalInput{
		UserID: user.ID, Kind: domain.GoalKindHydration, GoalID: goal.ID + 99,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateProgressBelowTargetStaysInProgress(t *testing.T) {
	svc, catalog, users := newServiceFixture(t)
	user := seedUser(t, users)
	goal := seedHydrationGoal(t, catalog, 8)

	p, err := svc.Join(context.Background(), domain.JoinGoalInput{
		UserID: user.ID, Kind: domain.GoalKindHydration, GoalID: goal.ID,
	})
	require.NoError(t, err)

	p, err = svc.UpdateProgress(context.Background(), p.ID, 5)
	require.NoError(t, err)

	assert.Equal(t, domain.ParticipationInProgress, p.Status)
	assert.True(t, p.IsActive)
	assert.Equal(t, 5.0, p.Progress)
}

func TestUpdateProgressReachingTargetCompletes(t *testing.T) {
	svc, catalog, users := newServiceFixture(t)
	user := seedUser(t, users)
	goal := seedHydrationGoal(t, catalog, 8)

	p, err := svc.Join(context.Background(), domain.JoinGoalInput{
		UserID: user.ID, Kind: domain.GoalKindHydration, GoalID: goal.ID,
	})
	require.NoError(t, err)

	p, err = svc.UpdateProgress(context.Background(), p.ID, 8)
	require.NoError(t, err)

	assert.Equal(t, domain.ParticipationCompleted, p.Status)
	assert.False(t, p.IsActive)
}

func TestUpdateProgressRejectedAfterCompletion(t *testing.T) {
	svc, catalog, users := newServiceFixture(t)
	user := seedUser(t, users)
	goal := seedHydrationGoal(t, catalog, 8)

	p, err := svc.Join(context.Background(), domain.JoinGoalInput{
		UserID: user.ID, Kind: domain.GoalKindHydration, GoalID: goal.ID,
	})
	require.NoError(t, err)

	_, err = svc.UpdateProgress(context.Background(), p.ID, 9)
	require.NoError(t, err)

	_, err = svc.UpdateProgress(context.Background(), p.ID, 10)
	assert.ErrorIs(t, err, domain.ErrParticipationCompleted)
}

func TestCompletionFreesSlotForNewJoin(t *testing.T) {
	svc, catalog, users := newServiceFixture(t)
	user := seedUser(t, users)
	goal := seedHydrationGoal(t, catalog, 8)

	p, err := svc.Join(context.Background(), domain.JoinGoalInput{
		UserID: user.ID, Kind: domain.GoalKindHydration, GoalID: goal.ID,
	})
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), p.ID)
	require.NoError(t, err)

	_, err = svc.Join(context.Background(), domain.JoinGoalInput{
		UserID: user.ID, Kind: domain.GoalKindHydration, GoalID: goal.ID,
	})
	assert.NoError(t, err)
}

func TestCompleteIsNotIdempotent(t *testing.T) {
	svc, catalog, users := newServiceFixture(t)
	user := seedUser(t, users)
	goal := seedHydrationGoal(t, catalog, 8)

	p, err := svc.Join(context.Background(), domain.JoinGoalInput{
		UserID: user.ID, Kind: domain.GoalKindHydration, GoalID: goal.ID,
	})
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), p.ID)
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), p.ID)
	assert.ErrorIs(t, err, domain.ErrParticipationCompleted)
}

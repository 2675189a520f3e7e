package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahmed-Chaabane/backend-gorun/internal/domain"
)

func seedHydration(t *testing.T, f *fixture, glasses int) *domain.HydrationGoal {
	t.Helper()
	goal := &domain.HydrationGoal{
		Name:            "Drink water",
		Icon:            "drop",
		Description:     "Glasses per day",
		RequiredGlasses: glasses,
	}
	require.NoError(t, f.catalog.Hydration.Create(context.Background(), goal))
	return goal
}

func TestJoinGoalCreatesParticipation(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, "g@example.com", "uid-g")
	goal := seedHydration(t, f, 8)

	rec := f.do(t, http.MethodPost, "/api/goal-participations", map[string]any{
		"user_id":   user.ID,
		"goal_kind": "hydration",
		"goal_id":   goal.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var p domain.GoalParticipation
	decodeBody(t, rec, &p)
	assert.True(t, p.IsActive)
	assert.Equal(t, domain.ParticipationInProgress, p.Status)
}

func TestJoinGoalSecondActiveSameKindConflicts(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, "g@example.com", "uid-g")
	goal := seedHydration(t, f, 8)

	body := map[string]any{"user_id": user.ID, "goal_kind": "hydration", "goal_id": goal.ID}
	rec := f.do(t, http.MethodPost, "/api/goal-participations", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/goal-participations", body)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "active_goal_exists")
}

func TestJoinGoalRejectsUnknownKind(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, "g@example.com", "uid-g")

	rec := f.do(t, http.MethodPost, "/api/goal-participations", map[string]any{
		"user_id":   user.ID,
		"goal_kind": "meditation",
		"goal_id":   1,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProgressReachingTargetCompletesParticipation(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, "g@example.com", "uid-g")
	goal := seedHydration(t, f, 8)

	rec := f.do(t, http.MethodPost, "/api/goal-participations", map[string]any{
		"user_id": user.ID, "goal_kind": "hydration", "goal_id": goal.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, http.MethodPut, "/api/goal-participations/1/progress", map[string]any{"progress": 8})
	require.Equal(t, http.StatusOK, rec.Code)

	var p domain.GoalParticipation
	decodeBody(t, rec, &p)
	assert.Equal(t, domain.ParticipationCompleted, p.Status)
	assert.False(t, p.IsActive)
}

func TestProgressOnCompletedParticipationConflicts(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, "g@example.com", "uid-g")
	goal := seedHydration(t, f, 8)

	rec := f.do(t, http.MethodPost, "/api/goal-participations", map[string]any{
		"user_id": user.ID, "goal_kind": "hydration", "goal_id": goal.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, http.MethodPut, "/api/goal-participations/1/progress", map[string]any{"progress": 8})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPut, "/api/goal-participations/1/progress", map[string]any{"progress": 9})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "participation_completed")
}

func TestListUserParticipationsFiltersByKindAndActive(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, "g@example.com", "uid-g")
	goal := seedHydration(t, f, 8)

	sleep := &domain.SleepGoal{Name: "Rest", Icon: "moon", Description: "Hours", RequiredHours: 8}
	require.NoError(t, f.catalog.Sleep.Create(context.Background(), sleep))

	rec := f.do(t, http.MethodPost, "/api/goal-participations", map[string]any{
		"user_id": user.ID, "goal_kind": "hydration", "goal_id": goal.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = f.do(t, http.MethodPost, "/api/goal-participations", map[string]any{
		"user_id": user.ID, "goal_kind": "sleep", "goal_id": sleep.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Complete the hydration participation, then filter on active only.
	rec = f.do(t, http.MethodPost, "/api/goal-participations/1/complete", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/users/1/goal-participations?active=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var active []domain.GoalParticipation
	decodeBody(t, rec, &active)
	require.Len(t, active, 1)
	assert.Equal(t, domain.GoalKindSleep, active[0].Kind)

	rec = f.do(t, http.MethodGet, "/api/users/1/goal-participations?kind=hydration", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var hydration []domain.GoalParticipation
	decodeBody(t, rec, &hydration)
	require.Len(t, hydration, 1)
	assert.Equal(t, domain.ParticipationCompleted, hydration[0].Status)
}

func TestSportGoalCRUD(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/sport-goals", map[string]any{
		"name":         "Monthly distance",
		"target_value": 100,
		"unit":         "km",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, http.MethodPatch, "/api/sport-goals/1", map[string]any{"target_value": 120})
	require.Equal(t, http.StatusOK, rec.Code)

	var goal domain.SportGoal
	decodeBody(t, rec, &goal)
	assert.Equal(t, 120.0, goal.TargetValue)

	rec = f.do(t, http.MethodDelete, "/api/sport-goals/1", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/sport-goals/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

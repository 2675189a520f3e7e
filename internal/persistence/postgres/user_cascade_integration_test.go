//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Ahmed-Chaabane/backend-gorun/internal/domain"
)

func TestDeleteUserCascadesToOwnedRows(t *testing.T) {
	ctx := context.Background()
	pool := startDatabase(t, ctx)
	userID, goalID := seedUserAndGoal(t, ctx, pool)

	activities := NewActivityRepository(pool)
	require.NoError(t, activities.Create(ctx, &domain.SportActivity{
		UserID:          userID,
		Type:            domain.ActivityRunning,
		ActivityDate:    time.Now().Add(-2 * time.Hour),
		DurationSeconds: 2400,
	}))

	foods := NewFoodRepository(pool)
	food := &domain.Food{Name: "Oatmeal", Calories: 150}
	require.NoError(t, foods.Create(ctx, food))

	habits := NewEatingHabitRepository(pool)
	require.NoError(t, habits.Create(ctx, &domain.EatingHabit{
		UserID:   userID,
		FoodID:   food.ID,
		FoodType: "breakfast",
		Quantity: 1,
		EatenAt:  time.Now(),
	}))

	participations := NewParticipationRepository(pool)
	require.NoError(t, participations.Create(ctx, &domain.GoalParticipation{
		UserID: userID, Kind: domain.GoalKindHydration, GoalID: goalID,
		Status: domain.ParticipationInProgress, IsActive: true,
	}))

	users := NewUserRepository(pool)
	require.NoError(t, users.Delete(ctx, userID))

	for _, table := range []string{"sport_activities", "eating_habits", "goal_participations"} {
		var count int
		err := pool.QueryRow(ctx,
			`SELECT count(*) FROM `+table+` WHERE user_id = $1`, userID,
		).Scan(&count)
		require.NoError(t, err)
		require.Zero(t, count, "%s rows survived the user delete", table)
	}

	// Rows the user does not own stay behind.
	_, err := foods.Get(ctx, food.ID)
	require.NoError(t, err)
}

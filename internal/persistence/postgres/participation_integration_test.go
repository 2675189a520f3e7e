//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/Ahmed-Chaabane/backend-gorun/internal/domain"
)

func startDatabase(t *testing.T, ctx context.Context) *pgxpool.Pool {
	t.Helper()

	pg, err := postgrescontainer.RunContainer(ctx,
		postgrescontainer.WithDatabase("gorun"),
		postgrescontainer.WithUsername("gorun"),
		postgrescontainer.WithPassword("gorun"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	deadline := time.Now().Add(time.Minute)
	for {
		if err := pool.Ping(ctx); err == nil {
			break
		}
		require.True(t, time.Now().Before(deadline), "database did not come up")
		time.Sleep(500 * time.Millisecond)
	}

	schema, err := migrationFiles.ReadFile("migrations/0001_init.up.sql")
	require.NoError(t, err)
	_, err = pool.Exec(ctx, string(schema))
	require.NoError(t, err)

	return pool
}

func seedUserAndGoal(t *testing.T, ctx context.Context, pool *pgxpool.Pool) (int64, int64) {
	t.Helper()

	users := NewUserRepository(pool)
	user := &domain.User{
		FirstName: "Integration",
		LastName:  "Runner",
		Email:     "integration@example.com",
		AuthUID:   "uid-integration",
		Status:    domain.UserStatusActive,
	}
	require.NoError(t, users.Create(ctx, user))

	goals := NewHydrationGoalRepository(pool)
	goal := &domain.HydrationGoal{
		Name:            "Eight glasses",
		Icon:            "drop",
		Description:     "Daily hydration",
		RequiredGlasses: 8,
	}
	require.NoError(t, goals.Create(ctx, goal))

	return user.ID, goal.ID
}

func TestActiveParticipationUniqueIndexClosesJoinRace(t *testing.T) {
	ctx := context.Background()
	pool := startDatabase(t, ctx)
	userID, goalID := seedUserAndGoal(t, ctx, pool)

	repo := NewParticipationRepository(pool)

	first := &domain.GoalParticipation{
		UserID: userID, Kind: domain.GoalKindHydration, GoalID: goalID,
		Status: domain.ParticipationInProgress, IsActive: true,
	}
	require.NoError(t, repo.Create(ctx, first))

	// A second active row of the same kind must be rejected by the schema
	// even without the service-level pre-check.
	second := &domain.GoalParticipation{
		UserID: userID, Kind: domain.GoalKindHydration, GoalID: goalID,
		Status: domain.ParticipationInProgress, IsActive: true,
	}
	err := repo.Create(ctx, second)
	require.ErrorIs(t, err, domain.ErrActiveParticipationExists)

	// Deactivating the first row frees the slot.
	first.Status = domain.ParticipationCompleted
	first.IsActive = false
	first.Progress = 8
	require.NoError(t, repo.Update(ctx, first))

	require.NoError(t, repo.Create(ctx, second))
}

func TestCompletionWritesOutboxEvent(t *testing.T) {
	ctx := context.Background()
	pool := startDatabase(t, ctx)
	userID, goalID := seedUserAndGoal(t, ctx, pool)

	repo := NewParticipationRepository(pool)
	p := &domain.GoalParticipation{
		UserID: userID, Kind: domain.GoalKindHydration, GoalID: goalID,
		Status: domain.ParticipationInProgress, IsActive: true,
	}
	require.NoError(t, repo.Create(ctx, p))

	p.Progress = 8
	p.Status = domain.ParticipationCompleted
	p.IsActive = false
	require.NoError(t, repo.Update(ctx, p))

	var count int
	err := pool.QueryRow(ctx,
		`SELECT count(*) FROM outbox WHERE event_type = 'goal.completed' AND published_at IS NULL`,
	).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

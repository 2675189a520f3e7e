package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ahmed-Chaabane/backend-gorun/internal/domain"
	"github.com/Ahmed-Chaabane/backend-gorun/internal/outbox"
)

// SportGoalRepository is the pgx implementation of domain.SportGoalRepository.
type SportGoalRepository struct {
	pool *pgxpool.Pool
}

func NewSportGoalRepository(pool *pgxpool.Pool) *SportGoalRepository {
	return &SportGoalRepository{pool: pool}
}

func (r *SportGoalRepository) Create(ctx context.Context, g *domain.SportGoal) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO sport_goals (name, starts_at, ends_at, target_value, unit)
         VALUES ($1,$2,$3,$4,$5) RETURNING id`,
		g.Name, g.StartsAt, g.EndsAt, g.TargetValue, g.Unit,
	).Scan(&g.ID)
	return translateErr(err)
}

func (r *SportGoalRepository) Get(ctx context.Context, id int64) (*domain.SportGoal, error) {
	var g domain.SportGoal
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, starts_at, ends_at, target_value, unit FROM sport_goals WHERE id=$1`, id,
	).Scan(&g.ID, &g.Name, &g.StartsAt, &g.EndsAt, &g.TargetValue, &g.Unit)
	if err != nil {
		return nil, translateErr(err)
	}
	return &g, nil
}

func (r *SportGoalRepository) List(ctx context.Context) ([]domain.SportGoal, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, starts_at, ends_at, target_value, unit FROM sport_goals ORDER BY id`)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var out []domain.SportGoal
	for rows.Next() {
		var g domain.SportGoal
		if err := rows.Scan(&g.ID, &g.Name, &g.StartsAt, &g.EndsAt, &g.TargetValue, &g.Unit); err != nil {
			return nil, translateErr(err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *SportGoalRepository) Update(ctx context.Context, g *domain.SportGoal) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE sport_goals SET name=$2, starts_at=$3, ends_at=$4, target_value=$5, unit=$6 WHERE id=$1`,
		g.ID, g.Name, g.StartsAt, g.EndsAt, g.TargetValue, g.Unit)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SportGoalRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sport_goals WHERE id=$1`, id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// HydrationGoalRepository is the pgx implementation of domain.HydrationGoalRepository.
type HydrationGoalRepository struct {
	pool *pgxpool.Pool
}

func NewHydrationGoalRepository(pool *pgxpool.Pool) *HydrationGoalRepository {
	return &HydrationGoalRepository{pool: pool}
}

func (r *HydrationGoalRepository) Create(ctx context.Context, g *domain.HydrationGoal) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO hydration_goals (name, icon, description, required_glasses)
         VALUES ($1,$2,$3,$4) RETURNING id`,
		g.Name, g.Icon, g.Description, g.RequiredGlasses,
	).Scan(&g.ID)
	return translateErr(err)
}

func (r *HydrationGoalRepository) Get(ctx context.Context, id int64) (*domain.HydrationGoal, error) {
	var g domain.HydrationGoal
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, icon, description, required_glasses FROM hydration_goals WHERE id=$1`, id,
	).Scan(&g.ID, &g.Name, &g.Icon, &g.Description, &g.RequiredGlasses)
	if err != nil {
		return nil, translateErr(err)
	}
	return &g, nil
}

func (r *HydrationGoalRepository) List(ctx context.Context) ([]domain.HydrationGoal, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, icon, description, required_glasses FROM hydration_goals ORDER BY id`)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var out []domain.HydrationGoal
	for rows.Next() {
		var g domain.HydrationGoal
		if err := rows.Scan(&g.ID, &g.Name, &g.Icon, &g.Description, &g.RequiredGlasses); err != nil {
			return nil, translateErr(err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *HydrationGoalRepository) Update(ctx context.Context, g *domain.HydrationGoal) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE hydration_goals SET name=$2, icon=$3, description=$4, required_glasses=$5 WHERE id=$1`,
		g.ID, g.Name, g.Icon, g.Description, g.RequiredGlasses)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *HydrationGoalRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM hydration_goals WHERE id=$1`, id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// NutritionGoalRepository is the pgx implementation of domain.NutritionGoalRepository.
type NutritionGoalRepository struct {
	pool *pgxpool.Pool
}

func NewNutritionGoalRepository(pool *pgxpool.Pool) *NutritionGoalRepository {
	return &NutritionGoalRepository{pool: pool}
}

func (r *NutritionGoalRepository) Create(ctx context.Context, g *domain.NutritionGoal) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO nutrition_goals (name, icon, description, required_meals)
         VALUES ($1,$2,$3,$4) RETURNING id`,
		g.Name, g.Icon, g.Description, g.RequiredMeals,
	).Scan(&g.ID)
	return translateErr(err)
}

func (r *NutritionGoalRepository) Get(ctx context.Context, id int64) (*domain.NutritionGoal, error) {
	var g domain.NutritionGoal
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, icon, description, required_meals FROM nutrition_goals WHERE id=$1`, id,
	).Scan(&g.ID, &g.Name, &g.Icon, &g.Description, &g.RequiredMeals)
	if err != nil {
		return nil, translateErr(err)
	}
	return &g, nil
}

func (r *NutritionGoalRepository) List(ctx context.Context) ([]domain.NutritionGoal, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, icon, description, required_meals FROM nutrition_goals ORDER BY id`)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var out []domain.NutritionGoal
	for rows.Next() {
		var g domain.NutritionGoal
		if err := rows.Scan(&g.ID, &g.Name, &g.Icon, &g.Description, &g.RequiredMeals); err != nil {
			return nil, translateErr(err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *NutritionGoalRepository) Update(ctx context.Context, g *domain.NutritionGoal) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE nutrition_goals SET name=$2, icon=$3, description=$4, required_meals=$5 WHERE id=$1`,
		g.ID, g.Name, g.Icon, g.Description, g.RequiredMeals)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *NutritionGoalRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM nutrition_goals WHERE id=$1`, id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SleepGoalRepository is the pgx implementation of domain.SleepGoalRepository.
type SleepGoalRepository struct {
	pool *pgxpool.Pool
}

func NewSleepGoalRepository(pool *pgxpool.Pool) *SleepGoalRepository {
	return &SleepGoalRepository{pool: pool}
}

func (r *SleepGoalRepository) Create(ctx context.Context, g *domain.SleepGoal) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO sleep_goals (name, icon, description, required_hours, quality_goal, sport_type)
         VALUES ($1,$2,$3,$4,$5,$6) RETURNING id`,
		g.Name, g.Icon, g.Description, g.RequiredHours, g.QualityGoal, g.SportType,
	).Scan(&g.ID)
	return translateErr(err)
}

func (r *SleepGoalRepository) Get(ctx context.Context, id int64) (*domain.SleepGoal, error) {
	var g domain.SleepGoal
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, icon, description, required_hours, quality_goal, sport_type
         FROM sleep_goals WHERE id=$1`, id,
	).Scan(&g.ID, &g.Name, &g.Icon, &g.Description, &g.RequiredHours, &g.QualityGoal, &g.SportType)
	if err != nil {
		return nil, translateErr(err)
	}
	return &g, nil
}

func (r *SleepGoalRepository) List(ctx context.Context) ([]domain.SleepGoal, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, icon, description, required_hours, quality_goal, sport_type FROM sleep_goals ORDER BY id`)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var out []domain.SleepGoal
	for rows.Next() {
		var g domain.SleepGoal
		if err := rows.Scan(&g.ID, &g.Name, &g.Icon, &g.Description, &g.RequiredHours, &g.QualityGoal, &g.SportType); err != nil {
			return nil, translateErr(err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *SleepGoalRepository) Update(ctx context.Context, g *domain.SleepGoal) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE sleep_goals SET name=$2, icon=$3, description=$4, required_hours=$5, quality_goal=$6, sport_type=$7 WHERE id=$1`,
		g.ID, g.Name, g.Icon, g.Description, g.RequiredHours, g.QualityGoal, g.SportType)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SleepGoalRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sleep_goals WHERE id=$1`, id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GoalCatalog resolves required quantities across the four catalog tables.
type GoalCatalog struct {
	pool *pgxpool.Pool
}

// NewGoalCatalog constructs a GoalCatalog.
func NewGoalCatalog(pool *pgxpool.Pool) *GoalCatalog {
	return &GoalCatalog{pool: pool}
}

// RequiredQuantity returns the completion threshold for a goal of the given kind.
func (c *GoalCatalog) RequiredQuantity(ctx context.Context, kind domain.GoalKind, goalID int64) (float64, error) {
	var query string
	switch kind {
	case domain.GoalKindSport:
		query = `SELECT target_value FROM sport_goals WHERE id=$1`
	case domain.GoalKindHydration:
		query = `SELECT required_glasses FROM hydration_goals WHERE id=$1`
	case domain.GoalKindNutrition:
		query = `SELECT required_meals FROM nutrition_goals WHERE id=$1`
	case domain.GoalKindSleep:
		query = `SELECT required_hours FROM sleep_goals WHERE id=$1`
	default:
		return 0, fmt.Errorf("unknown goal kind: %s", kind)
	}

	var required float64
	if err := c.pool.QueryRow(ctx, query, goalID).Scan(&required); err != nil {
		return 0, translateErr(err)
	}
	return required, nil
}

// ParticipationRepository is the pgx implementation of domain.ParticipationRepository.
type ParticipationRepository struct {
	pool *pgxpool.Pool
}

// NewParticipationRepository constructs a ParticipationRepository.
func NewParticipationRepository(pool *pgxpool.Pool) *ParticipationRepository {
	return &ParticipationRepository{pool: pool}
}

const participationColumns = `id, user_id, goal_kind, goal_id, progress, status, is_active`

func scanParticipation(row pgx.Row) (*domain.GoalParticipation, error) {
	var p domain.GoalParticipation
	err := row.Scan(&p.ID, &p.UserID, &p.Kind, &p.GoalID, &p.Progress, &p.Status, &p.IsActive)
	if err != nil {
		return nil, translateErr(err)
	}
	return &p, nil
}

// Create inserts the participation. The partial unique index on
// (user_id, goal_kind) WHERE is_active surfaces concurrent joins as
// domain.ErrActiveParticipationExists.
func (r *ParticipationRepository) Create(ctx context.Context, p *domain.GoalParticipation) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO goal_participations (user_id, goal_kind, goal_id, progress, status, is_active)
         VALUES ($1,$2,$3,$4,$5,$6) RETURNING id`,
		p.UserID, p.Kind, p.GoalID, p.Progress, p.Status, p.IsActive,
	).Scan(&p.ID)
	return translateErr(err)
}

func (r *ParticipationRepository) Get(ctx context.Context, id int64) (*domain.GoalParticipation, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+participationColumns+` FROM goal_participations WHERE id=$1`, id)
	return scanParticipation(row)
}

// FindActive returns the user's active participation of the given kind, or
// nil when there is none.
func (r *ParticipationRepository) FindActive(ctx context.Context, userID int64, kind domain.GoalKind) (*domain.GoalParticipation, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+participationColumns+` FROM goal_participations
         WHERE user_id=$1 AND goal_kind=$2 AND is_active`, userID, kind)
	p, err := scanParticipation(row)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (r *ParticipationRepository) ListByUser(ctx context.Context, userID int64, kind domain.GoalKind, activeOnly bool) ([]domain.GoalParticipation, error) {
	query := `SELECT ` + participationColumns + ` FROM goal_participations WHERE user_id=$1`
	args := []any{userID}
	if kind != "" {
		args = append(args, kind)
		query += fmt.Sprintf(` AND goal_kind=$%d`, len(args))
	}
	if activeOnly {
		query += ` AND is_active`
	}
	query += ` ORDER BY id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var out []domain.GoalParticipation
	for rows.Next() {
		p, err := scanParticipation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// Update rewrites the row and, when the participation has just completed,
// records a goal.completed event in the same transaction.
func (r *ParticipationRepository) Update(ctx context.Context, p *domain.GoalParticipation) error {
	return inTx(ctx, r.pool, func(tx pgx.Tx) error {
		var wasCompleted bool
		err := tx.QueryRow(ctx,
			`SELECT status = 'completed' FROM goal_participations WHERE id=$1 FOR UPDATE`, p.ID,
		).Scan(&wasCompleted)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`UPDATE goal_participations SET progress=$2, status=$3, is_active=$4 WHERE id=$1`,
			p.ID, p.Progress, p.Status, p.IsActive)
		if err != nil {
			return err
		}

		if p.Status == domain.ParticipationCompleted && !wasCompleted {
			return insertEvent(ctx, tx, outbox.Topic, outbox.TypeGoalCompleted, outbox.GoalCompleted{
				ParticipationID: p.ID,
				UserID:          p.UserID,
				GoalKind:        string(p.Kind),
				GoalID:          p.GoalID,
			})
		}
		return nil
	})
}

func (r *ParticipationRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM goal_participations WHERE id=$1`, id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GoalProgressRepository is the pgx implementation of domain.GoalProgressRepository.
type GoalProgressRepository struct {
	pool *pgxpool.Pool
}

// NewGoalProgressRepository constructs a GoalProgressRepository.
func NewGoalProgressRepository(pool *pgxpool.Pool) *GoalProgressRepository {
	return &GoalProgressRepository{pool: pool}
}

func (r *GoalProgressRepository) Create(ctx context.Context, gp *domain.GoalProgress) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO goal_progress (sport_goal_id, activity_id, progression)
         VALUES ($1,$2,$3) RETURNING id`,
		gp.SportGoalID, gp.ActivityID, gp.Progression,
	).Scan(&gp.ID)
	return translateErr(err)
}

func (r *GoalProgressRepository) Get(ctx context.Context, id int64) (*domain.GoalProgress, error) {
	var gp domain.GoalProgress
	err := r.pool.QueryRow(ctx,
		`SELECT id, sport_goal_id, activity_id, progression FROM goal_progress WHERE id=$1`, id,
	).Scan(&gp.ID, &gp.SportGoalID, &gp.ActivityID, &gp.Progression)
	if err != nil {
		return nil, translateErr(err)
	}
	return &gp, nil
}

func (r *GoalProgressRepository) ListBySportGoal(ctx context.Context, sportGoalID int64) ([]domain.GoalProgress, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, sport_goal_id, activity_id, progression FROM goal_progress
         WHERE sport_goal_id=$1 ORDER BY id`, sportGoalID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var out []domain.GoalProgress
	for rows.Next() {
		var gp domain.GoalProgress
		if err := rows.Scan(&gp.ID, &gp.SportGoalID, &gp.ActivityID, &gp.Progression); err != nil {
			return nil, translateErr(err)
		}
		out = append(out, gp)
	}
	return out, rows.Err()
}

func (r *GoalProgressRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM goal_progress WHERE id=$1`, id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ahmed-Chaabane/backend-gorun/internal/domain"
	"github.com/Ahmed-Chaabane/backend-gorun/internal/observability"
	"github.com/Ahmed-Chaabane/backend-gorun/internal/outbox"
)

// ActivityRepository is the pgx implementation of domain.ActivityRepository.
type ActivityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository constructs an ActivityRepository.
func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

const activityColumns = `id, user_id, activity_type, activity_date, duration_seconds,
        distance_km, calories_burned, avg_heart_rate, avg_speed_kmh,
        max_altitude_m, elevation_gain_m, route, extra, recorded_at,
        created_at, updated_at`

func scanActivity(row pgx.Row) (*domain.SportActivity, error) {
	var a domain.SportActivity
	err := row.Scan(&a.ID, &a.UserID, &a.Type, &a.ActivityDate, &a.DurationSeconds,
		&a.DistanceKm, &a.CaloriesBurned, &a.AvgHeartRate, &a.AvgSpeedKmh,
		&a.MaxAltitudeM, &a.ElevationGainM, &a.Route, &a.Extra, &a.RecordedAt,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return &a, nil
}

// Create inserts the activity and an activity.created event transactionally.
func (r *ActivityRepository) Create(ctx context.Context, a *domain.SportActivity) error {
	err := inTx(ctx, r.pool, func(tx pgx.Tx) error {
		const stmt = `INSERT INTO sport_activities (user_id, activity_type, activity_date,
                duration_seconds, distance_km, calories_burned, avg_heart_rate,
                avg_speed_kmh, max_altitude_m, elevation_gain_m, route, extra, recorded_at)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
            RETURNING id, created_at, updated_at`

		err := tx.QueryRow(ctx, stmt,
			a.UserID, a.Type, a.ActivityDate, a.DurationSeconds, a.DistanceKm,
			a.CaloriesBurned, a.AvgHeartRate, a.AvgSpeedKmh, a.MaxAltitudeM,
			a.ElevationGainM, a.Route, a.Extra, a.RecordedAt,
		).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return err
		}

		return insertEvent(ctx, tx, outbox.Topic, outbox.TypeActivityCreated, outbox.ActivityCreated{
			ActivityID:   a.ID,
			UserID:       a.UserID,
			ActivityType: string(a.Type),
		})
	})
	if err != nil {
		return err
	}
	observability.RecordRowPersisted("sport_activities")
	return nil
}

// Get fetches an activity by id.
func (r *ActivityRepository) Get(ctx context.Context, id int64) (*domain.SportActivity, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+activityColumns+` FROM sport_activities WHERE id=$1`, id)
	return scanActivity(row)
}

// List returns all activities ordered by date, newest first.
func (r *ActivityRepository) List(ctx context.Context) ([]domain.SportActivity, error) {
	return r.list(ctx, `SELECT `+activityColumns+` FROM sport_activities ORDER BY activity_date DESC, id DESC`)
}

// ListByUser returns a user's activities ordered by date, newest first.
func (r *ActivityRepository) ListByUser(ctx context.Context, userID int64) ([]domain.SportActivity, error) {
	return r.list(ctx, `SELECT `+activityColumns+` FROM sport_activities WHERE user_id=$1 ORDER BY activity_date DESC, id DESC`, userID)
}

func (r *ActivityRepository) list(ctx context.Context, query string, args ...any) ([]domain.SportActivity, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var out []domain.SportActivity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// Update rewrites every mutable column.
func (r *ActivityRepository) Update(ctx context.Context, a *domain.SportActivity) error {
	const stmt = `UPDATE sport_activities SET activity_type=$2, activity_date=$3,
            duration_seconds=$4, distance_km=$5, calories_burned=$6, avg_heart_rate=$7,
            avg_speed_kmh=$8, max_altitude_m=$9, elevation_gain_m=$10, route=$11,
            extra=$12, recorded_at=$13, updated_at=now()
        WHERE id=$1`

	tag, err := r.pool.Exec(ctx, stmt, a.ID, a.Type, a.ActivityDate, a.DurationSeconds,
		a.DistanceKm, a.CaloriesBurned, a.AvgHeartRate, a.AvgSpeedKmh,
		a.MaxAltitudeM, a.ElevationGainM, a.Route, a.Extra, a.RecordedAt)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the activity; detail samples cascade.
func (r *ActivityRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sport_activities WHERE id=$1`, id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ActivityDetailRepository is the pgx implementation of domain.ActivityDetailRepository.
type ActivityDetailRepository struct {
	pool *pgxpool.Pool
}

// NewActivityDetailRepository constructs an ActivityDetailRepository.
func NewActivityDetailRepository(pool *pgxpool.Pool) *ActivityDetailRepository {
	return &ActivityDetailRepository{pool: pool}
}

func (r *ActivityDetailRepository) Create(ctx context.Context, d *domain.ActivityDetail) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO activity_details (activity_id, moment, intensity, location)
         VALUES ($1,$2,$3,$4) RETURNING id`,
		d.ActivityID, d.Moment, d.Intensity, d.Location,
	).Scan(&d.ID)
	return translateErr(err)
}

func (r *ActivityDetailRepository) Get(ctx context.Context, id int64) (*domain.ActivityDetail, error) {
	var d domain.ActivityDetail
	err := r.pool.QueryRow(ctx,
		`SELECT id, activity_id, moment, intensity, location FROM activity_details WHERE id=$1`, id,
	).Scan(&d.ID, &d.ActivityID, &d.Moment, &d.Intensity, &d.Location)
	if err != nil {
		return nil, translateErr(err)
	}
	return &d, nil
}

func (r *ActivityDetailRepository) ListByActivity(ctx context.Context, activityID int64) ([]domain.ActivityDetail, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, activity_id, moment, intensity, location
         FROM activity_details WHERE activity_id=$1 ORDER BY moment`, activityID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var out []domain.ActivityDetail
	for rows.Next() {
		var d domain.ActivityDetail
		if err := rows.Scan(&d.ID, &d.ActivityID, &d.Moment, &d.Intensity, &d.Location); err != nil {
			return nil, translateErr(err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *ActivityDetailRepository) Update(ctx context.Context, d *domain.ActivityDetail) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE activity_details SET moment=$2, intensity=$3, location=$4 WHERE id=$1`,
		d.ID, d.Moment, d.Intensity, d.Location)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ActivityDetailRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM activity_details WHERE id=$1`, id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ahmed-Chaabane/backend-gorun/internal/domain"
	"github.com/Ahmed-Chaabane/backend-gorun/internal/outbox"
)

// EventRepository is the pgx implementation of domain.EventRepository.
type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO events (name, description, starts_at, ends_at, creator_id)
         VALUES ($1,$2,$3,$4,$5) RETURNING id`,
		e.Name, e.Description, e.StartsAt, e.EndsAt, e.CreatorID,
	).Scan(&e.ID)
	return translateErr(err)
}

func (r *EventRepository) Get(ctx context.Context, id int64) (*domain.Event, error) {
	var e domain.Event
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, description, starts_at, ends_at, creator_id FROM events WHERE id=$1`, id,
	).Scan(&e.ID, &e.Name, &e.Description, &e.StartsAt, &e.EndsAt, &e.CreatorID)
	if err != nil {
		return nil, translateErr(err)
	}
	return &e, nil
}

func (r *EventRepository) List(ctx context.Context) ([]domain.Event, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description, starts_at, ends_at, creator_id FROM events ORDER BY starts_at`)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var out []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.StartsAt, &e.EndsAt, &e.CreatorID); err != nil {
			return nil, translateErr(err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EventRepository) Update(ctx context.Context, e *domain.Event) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE events SET name=$2, description=$3, starts_at=$4, ends_at=$5 WHERE id=$1`,
		e.ID, e.Name, e.Description, e.StartsAt, e.EndsAt)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id=$1`, id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// InjuryRepository is the pgx implementation of domain.InjuryRepository.
type InjuryRepository struct {
	pool *pgxpool.Pool
}

func NewInjuryRepository(pool *pgxpool.Pool) *InjuryRepository {
	return &InjuryRepository{pool: pool}
}

// Create inserts the injury and an injury.recorded event transactionally.
func (r *InjuryRepository) Create(ctx context.Context, inj *domain.InjuryRecovery) error {
	return inTx(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO injury_recoveries (user_id, injury_type, injured_at, severity, status)
             VALUES ($1,$2,$3,$4,$5) RETURNING id`,
			inj.UserID, inj.InjuryType, inj.InjuredAt, inj.Severity, inj.Status,
		).Scan(&inj.ID)
		if err != nil {
			return err
		}

		return insertEvent(ctx, tx, outbox.Topic, outbox.TypeInjuryRecorded, outbox.InjuryRecorded{
			InjuryID: inj.ID,
			UserID:   inj.UserID,
		})
	})
}

func (r *InjuryRepository) Get(ctx context.Context, id int64) (*domain.InjuryRecovery, error) {
	var inj domain.InjuryRecovery
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, injury_type, injured_at, severity, status FROM injury_recoveries WHERE id=$1`, id,
	).Scan(&inj.ID, &inj.UserID, &inj.InjuryType, &inj.InjuredAt, &inj.Severity, &inj.Status)
	if err != nil {
		return nil, translateErr(err)
	}
	return &inj, nil
}

func (r *InjuryRepository) List(ctx context.Context) ([]domain.InjuryRecovery, error) {
	return r.list(ctx, `SELECT id, user_id, injury_type, injured_at, severity, status FROM injury_recoveries ORDER BY injured_at DESC`)
}

func (r *InjuryRepository) ListByUser(ctx context.Context, userID int64) ([]domain.InjuryRecovery, error) {
	return r.list(ctx, `SELECT id, user_id, injury_type, injured_at, severity, status FROM injury_recoveries WHERE user_id=$1 ORDER BY injured_at DESC`, userID)
}

func (r *InjuryRepository) list(ctx context.Context, query string, args ...any) ([]domain.InjuryRecovery, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var out []domain.InjuryRecovery
	for rows.Next() {
		var inj domain.InjuryRecovery
		if err := rows.Scan(&inj.ID, &inj.UserID, &inj.InjuryType, &inj.InjuredAt, &inj.Severity, &inj.Status); err != nil {
			return nil, translateErr(err)
		}
		out = append(out, inj)
	}
	return out, rows.Err()
}

func (r *InjuryRepository) Update(ctx context.Context, inj *domain.InjuryRecovery) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE injury_recoveries SET injury_type=$2, injured_at=$3, severity=$4, status=$5 WHERE id=$1`,
		inj.ID, inj.InjuryType, inj.InjuredAt, inj.Severity, inj.Status)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InjuryRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM injury_recoveries WHERE id=$1`, id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// TrainingRecommendationRepository stores generated training plans.
type TrainingRecommendationRepository struct {
	pool *pgxpool.Pool
}

func NewTrainingRecommendationRepository(pool *pgxpool.Pool) *TrainingRecommendationRepository {
	return &TrainingRecommendationRepository{pool: pool}
}

func (r *TrainingRecommendationRepository) Create(ctx context.Context, rec *domain.TrainingRecommendation) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO training_recommendations (user_id, sport_goal_id, description, difficulty, schedule, exercises)
         VALUES ($1,$2,$3,$4,$5,$6) RETURNING id, created_at`,
		rec.UserID, rec.SportGoalID, rec.Description, rec.Difficulty, rec.Schedule, rec.Exercises,
	).Scan(&rec.ID, &rec.CreatedAt)
	return translateErr(err)
}

func (r *TrainingRecommendationRepository) Get(ctx context.Context, id int64) (*domain.TrainingRecommendation, error) {
	var rec domain.TrainingRecommendation
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, sport_goal_id, description, difficulty, schedule, exercises, created_at
         FROM training_recommendations WHERE id=$1`, id,
	).Scan(&rec.ID, &rec.UserID, &rec.SportGoalID, &rec.Description, &rec.Difficulty,
		&rec.Schedule, &rec.Exercises, &rec.CreatedAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return &rec, nil
}

func (r *TrainingRecommendationRepository) ListByUser(ctx context.Context, userID int64) ([]domain.TrainingRecommendation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, sport_goal_id, description, difficulty, schedule, exercises, created_at
         FROM training_recommendations WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var out []domain.TrainingRecommendation
	for rows.Next() {
		var rec domain.TrainingRecommendation
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.SportGoalID, &rec.Description,
			&rec.Difficulty, &rec.Schedule, &rec.Exercises, &rec.CreatedAt); err != nil {
			return nil, translateErr(err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *TrainingRecommendationRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM training_recommendations WHERE id=$1`, id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RecoveryRecommendationRepository stores recovery advice per injury.
type RecoveryRecommendationRepository struct {
	pool *pgxpool.Pool
}

func NewRecoveryRecommendationRepository(pool *pgxpool.Pool) *RecoveryRecommendationRepository {
	return &RecoveryRecommendationRepository{pool: pool}
}

func (r *RecoveryRecommendationRepository) Create(ctx context.Context, rec *domain.RecoveryRecommendation) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO recovery_recommendations (injury_id, description) VALUES ($1,$2) RETURNING id`,
		rec.InjuryID, rec.Description,
	).Scan(&rec.ID)
	return translateErr(err)
}

func (r *RecoveryRecommendationRepository) Get(ctx context.Context, id int64) (*domain.RecoveryRecommendation, error) {
	var rec domain.RecoveryRecommendation
	err := r.pool.QueryRow(ctx,
		`SELECT id, injury_id, description FROM recovery_recommendations WHERE id=$1`, id,
	).Scan(&rec.ID, &rec.InjuryID, &rec.Description)
	if err != nil {
		return nil, translateErr(err)
	}
	return &rec, nil
}

func (r *RecoveryRecommendationRepository) ListByInjury(ctx context.Context, injuryID int64) ([]domain.RecoveryRecommendation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, injury_id, description FROM recovery_recommendations WHERE injury_id=$1 ORDER BY id`, injuryID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var out []domain.RecoveryRecommendation
	for rows.Next() {
		var rec domain.RecoveryRecommendation
		if err := rows.Scan(&rec.ID, &rec.InjuryID, &rec.Description); err != nil {
			return nil, translateErr(err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *RecoveryRecommendationRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM recovery_recommendations WHERE id=$1`, id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// BenefitRepository is the pgx implementation of domain.BenefitRepository.
type BenefitRepository struct {
	pool *pgxpool.Pool
}

func NewBenefitRepository(pool *pgxpool.Pool) *BenefitRepository {
	return &BenefitRepository{pool: pool}
}

func (r *BenefitRepository) Create(ctx context.Context, b *domain.Benefit) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO benefits (name, icon) VALUES ($1,$2) RETURNING id`,
		b.Name, b.Icon,
	).Scan(&b.ID)
	return translateErr(err)
}

func (r *BenefitRepository) Get(ctx context.Context, id int64) (*domain.Benefit, error) {
	var b domain.Benefit
	err := r.pool.QueryRow(ctx, `SELECT id, name, icon FROM benefits WHERE id=$1`, id).
		Scan(&b.ID, &b.Name, &b.Icon)
	if err != nil {
		return nil, translateErr(err)
	}
	return &b, nil
}

func (r *BenefitRepository) List(ctx context.Context) ([]domain.Benefit, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, icon FROM benefits ORDER BY id`)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var out []domain.Benefit
	for rows.Next() {
		var b domain.Benefit
		if err := rows.Scan(&b.ID, &b.Name, &b.Icon); err != nil {
			return nil, translateErr(err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BenefitRepository) Update(ctx context.Context, b *domain.Benefit) error {
	tag, err := r.pool.Exec(ctx, `UPDATE benefits SET name=$2, icon=$3 WHERE id=$1`, b.ID, b.Name, b.Icon)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BenefitRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM benefits WHERE id=$1`, id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MusicAccountRepository stores music-service token pairs.
type MusicAccountRepository struct {
	pool *pgxpool.Pool
}

func NewMusicAccountRepository(pool *pgxpool.Pool) *MusicAccountRepository {
	return &MusicAccountRepository{pool: pool}
}

// Upsert stores or replaces the token pair for a user.
func (r *MusicAccountRepository) Upsert(ctx context.Context, account *domain.MusicAccount) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO music_accounts (user_id, access_token, refresh_token, updated_at)
         VALUES ($1,$2,$3,now())
         ON CONFLICT (user_id) DO UPDATE
            SET access_token=EXCLUDED.access_token,
                refresh_token=EXCLUDED.refresh_token,
                updated_at=now()
         RETURNING updated_at`,
		account.UserID, account.AccessToken, account.RefreshToken,
	).Scan(&account.UpdatedAt)
	return translateErr(err)
}

func (r *MusicAccountRepository) GetByUser(ctx context.Context, userID int64) (*domain.MusicAccount, error) {
	var a domain.MusicAccount
	err := r.pool.QueryRow(ctx,
		`SELECT user_id, access_token, refresh_token, updated_at FROM music_accounts WHERE user_id=$1`, userID,
	).Scan(&a.UserID, &a.AccessToken, &a.RefreshToken, &a.UpdatedAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return &a, nil
}

package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ahmed-Chaabane/backend-gorun/internal/domain"
	"github.com/Ahmed-Chaabane/backend-gorun/internal/outbox"
)

// ChallengeRepository is the pgx implementation of domain.ChallengeRepository.
type ChallengeRepository struct {
	pool *pgxpool.Pool
}

// NewChallengeRepository constructs a ChallengeRepository.
func NewChallengeRepository(pool *pgxpool.Pool) *ChallengeRepository {
	return &ChallengeRepository{pool: pool}
}

const challengeColumns = `id, name, description, starts_at, ends_at, max_participants, reward, icon, progress`

func scanChallenge(row pgx.Row) (*domain.CommunityChallenge, error) {
	var c domain.CommunityChallenge
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.StartsAt, &c.EndsAt,
		&c.MaxParticipants, &c.Reward, &c.Icon, &c.Progress)
	if err != nil {
		return nil, translateErr(err)
	}
	return &c, nil
}

// Create inserts the challenge and a challenge.created event transactionally.
func (r *ChallengeRepository) Create(ctx context.Context, c *domain.CommunityChallenge) error {
	return inTx(ctx, r.pool, func(tx pgx.Tx) error {
		const stmt = `INSERT INTO community_challenges (name, description, starts_at, ends_at,
                max_participants, reward, icon, progress)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8) RETURNING id`

		err := tx.QueryRow(ctx, stmt, c.Name, c.Description, c.StartsAt, c.EndsAt,
			c.MaxParticipants, c.Reward, c.Icon, c.Progress).Scan(&c.ID)
		if err != nil {
			return err
		}

		return insertEvent(ctx, tx, outbox.Topic, outbox.TypeChallengeCreated, outbox.ChallengeCreated{
			ChallengeID: c.ID,
			Name:        c.Name,
		})
	})
}

func (r *ChallengeRepository) Get(ctx context.Context, id int64) (*domain.CommunityChallenge, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+challengeColumns+` FROM community_challenges WHERE id=$1`, id)
	return scanChallenge(row)
}

func (r *ChallengeRepository) List(ctx context.Context) ([]domain.CommunityChallenge, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+challengeColumns+` FROM community_challenges ORDER BY starts_at DESC, id DESC`)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var out []domain.CommunityChallenge
	for rows.Next() {
		c, err := scanChallenge(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *ChallengeRepository) Update(ctx context.Context, c *domain.CommunityChallenge) error {
	const stmt = `UPDATE community_challenges SET name=$2, description=$3, starts_at=$4,
            ends_at=$5, max_participants=$6, reward=$7, icon=$8, progress=$9
        WHERE id=$1`

	tag, err := r.pool.Exec(ctx, stmt, c.ID, c.Name, c.Description, c.StartsAt,
		c.EndsAt, c.MaxParticipants, c.Reward, c.Icon, c.Progress)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ChallengeRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM community_challenges WHERE id=$1`, id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddParticipant links a user to a challenge. The composite primary key
// turns a duplicate join into domain.ErrConflict.
func (r *ChallengeRepository) AddParticipant(ctx context.Context, challengeID, userID int64) (*domain.ChallengeParticipant, error) {
	var p domain.ChallengeParticipant
	err := r.pool.QueryRow(ctx,
		`INSERT INTO challenge_participants (challenge_id, user_id)
         VALUES ($1,$2) RETURNING challenge_id, user_id, joined_at`,
		challengeID, userID,
	).Scan(&p.ChallengeID, &p.UserID, &p.JoinedAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return &p, nil
}

func (r *ChallengeRepository) ListParticipants(ctx context.Context, challengeID int64) ([]domain.ChallengeParticipant, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT challenge_id, user_id, joined_at FROM challenge_participants
         WHERE challenge_id=$1 ORDER BY joined_at`, challengeID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var out []domain.ChallengeParticipant
	for rows.Next() {
		var p domain.ChallengeParticipant
		if err := rows.Scan(&p.ChallengeID, &p.UserID, &p.JoinedAt); err != nil {
			return nil, translateErr(err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ChallengeRepository) RemoveParticipant(ctx context.Context, challengeID, userID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM challenge_participants WHERE challenge_id=$1 AND user_id=$2`,
		challengeID, userID)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ChallengeRepository) AddProgress(ctx context.Context, progress *domain.ChallengeProgress) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO challenge_progress (challenge_id, user_id, progress, recorded_at)
         VALUES ($1,$2,$3,$4) RETURNING id`,
		progress.ChallengeID, progress.UserID, progress.Progress, progress.RecordedAt,
	).Scan(&progress.ID)
	return translateErr(err)
}

func (r *ChallengeRepository) ListProgress(ctx context.Context, challengeID int64) ([]domain.ChallengeProgress, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, challenge_id, user_id, progress, recorded_at FROM challenge_progress
         WHERE challenge_id=$1 ORDER BY recorded_at`, challengeID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var out []domain.ChallengeProgress
	for rows.Next() {
		var p domain.ChallengeProgress
		if err := rows.Scan(&p.ID, &p.ChallengeID, &p.UserID, &p.Progress, &p.RecordedAt); err != nil {
			return nil, translateErr(err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// InteractionRepository is the pgx implementation of domain.InteractionRepository.
type InteractionRepository struct {
	pool *pgxpool.Pool
}

// NewInteractionRepository constructs an InteractionRepository.
func NewInteractionRepository(pool *pgxpool.Pool) *InteractionRepository {
	return &InteractionRepository{pool: pool}
}

func (r *InteractionRepository) Create(ctx context.Context, i *domain.Interaction) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO interactions (user_id, interaction_type, challenge_id, comment)
         VALUES ($1,$2,$3,$4) RETURNING id, occurred_at`,
		i.UserID, i.Type, i.ChallengeID, i.Comment,
	).Scan(&i.ID, &i.OccurredAt)
	return translateErr(err)
}

func (r *InteractionRepository) Get(ctx context.Context, id int64) (*domain.Interaction, error) {
	var i domain.Interaction
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, interaction_type, challenge_id, comment, occurred_at
         FROM interactions WHERE id=$1`, id,
	).Scan(&i.ID, &i.UserID, &i.Type, &i.ChallengeID, &i.Comment, &i.OccurredAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return &i, nil
}

func (r *InteractionRepository) List(ctx context.Context) ([]domain.Interaction, error) {
	return r.list(ctx, `SELECT id, user_id, interaction_type, challenge_id, comment, occurred_at FROM interactions ORDER BY occurred_at DESC`)
}

func (r *InteractionRepository) ListByChallenge(ctx context.Context, challengeID int64) ([]domain.Interaction, error) {
	return r.list(ctx, `SELECT id, user_id, interaction_type, challenge_id, comment, occurred_at FROM interactions WHERE challenge_id=$1 ORDER BY occurred_at DESC`, challengeID)
}

func (r *InteractionRepository) list(ctx context.Context, query string, args ...any) ([]domain.Interaction, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var out []domain.Interaction
	for rows.Next() {
		var i domain.Interaction
		if err := rows.Scan(&i.ID, &i.UserID, &i.Type, &i.ChallengeID, &i.Comment, &i.OccurredAt); err != nil {
			return nil, translateErr(err)
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

func (r *InteractionRepository) Update(ctx context.Context, i *domain.Interaction) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE interactions SET interaction_type=$2, challenge_id=$3, comment=$4 WHERE id=$1`,
		i.ID, i.Type, i.ChallengeID, i.Comment)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InteractionRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM interactions WHERE id=$1`, id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

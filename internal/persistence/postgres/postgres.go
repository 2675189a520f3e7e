// Package postgres provides pgx-backed repositories for every aggregate.
package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ahmed-Chaabane/backend-gorun/internal/domain"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// translateErr maps driver errors onto domain sentinels so handlers never
// see pgx types.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			if pgErr.ConstraintName == "ux_goal_participations_active" {
				return domain.ErrActiveParticipationExists
			}
			return domain.ErrConflict
		case codeForeignKeyViolation:
			return domain.ErrInvalidReference
		}
	}
	return err
}

// insertEvent records an outbox row inside the caller's transaction so the
// event is only visible once the row change commits.
func insertEvent(ctx context.Context, tx pgx.Tx, topic, eventType string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO outbox (event_type, topic, payload) VALUES ($1, $2, $3)`,
		eventType, topic, body)
	return err
}

// inTx runs fn inside a transaction on pool.
func inTx(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return translateErr(err)
	}
	return tx.Commit(ctx)
}

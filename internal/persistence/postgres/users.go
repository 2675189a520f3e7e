package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ahmed-Chaabane/backend-gorun/internal/domain"
	"github.com/Ahmed-Chaabane/backend-gorun/internal/outbox"
)

// UserRepository is the pgx implementation of domain.UserRepository.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository constructs a UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, first_name, last_name, email, auth_uid, status,
        height_cm, weight_kg, age, birth_date, phone, sex, role,
        selected_sports, sport_preferences, training_locations,
        health_conditions, improvement_targets, training_frequency, diet,
        registered_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.AuthUID, &u.Status,
		&u.HeightCm, &u.WeightKg, &u.Age, &u.BirthDate, &u.Phone, &u.Sex, &u.Role,
		&u.SelectedSports, &u.SportPreferences, &u.TrainingLocations,
		&u.HealthConditions, &u.ImprovementTargets, &u.TrainingFrequency, &u.Diet,
		&u.RegisteredAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return &u, nil
}

// Create inserts the user and records a user.created event in the same
// transaction. The generated id and registration timestamp are written back.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return inTx(ctx, r.pool, func(tx pgx.Tx) error {
		const stmt = `INSERT INTO users (first_name, last_name, email, auth_uid, status,
                height_cm, weight_kg, age, birth_date, phone, sex, role,
                selected_sports, sport_preferences, training_locations,
                health_conditions, improvement_targets, training_frequency, diet)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
            RETURNING id, registered_at`

		err := tx.QueryRow(ctx, stmt,
			user.FirstName, user.LastName, user.Email, user.AuthUID, user.Status,
			user.HeightCm, user.WeightKg, user.Age, user.BirthDate, user.Phone,
			user.Sex, user.Role, user.SelectedSports, user.SportPreferences,
			user.TrainingLocations, user.HealthConditions, user.ImprovementTargets,
			user.TrainingFrequency, user.Diet,
		).Scan(&user.ID, &user.RegisteredAt)
		if err != nil {
			return err
		}

		return insertEvent(ctx, tx, outbox.Topic, outbox.TypeUserCreated, outbox.UserCreated{
			UserID: user.ID,
			Email:  user.Email,
		})
	})
}

// Get fetches a user by id.
func (r *UserRepository) Get(ctx context.Context, id int64) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
	return scanUser(row)
}

// GetByAuthUID fetches a user by the external auth-provider subject id.
func (r *UserRepository) GetByAuthUID(ctx context.Context, authUID string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE auth_uid=$1`, authUID)
	return scanUser(row)
}

// GetByEmail fetches a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email)
	return scanUser(row)
}

// List returns all users ordered by registration.
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// Update rewrites every mutable column; callers merge partial input first.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	const stmt = `UPDATE users SET first_name=$2, last_name=$3, email=$4, auth_uid=$5,
            status=$6, height_cm=$7, weight_kg=$8, age=$9, birth_date=$10, phone=$11,
            sex=$12, role=$13, selected_sports=$14, sport_preferences=$15,
            training_locations=$16, health_conditions=$17, improvement_targets=$18,
            training_frequency=$19, diet=$20
        WHERE id=$1`

	tag, err := r.pool.Exec(ctx, stmt, user.ID,
		user.FirstName, user.LastName, user.Email, user.AuthUID, user.Status,
		user.HeightCm, user.WeightKg, user.Age, user.BirthDate, user.Phone,
		user.Sex, user.Role, user.SelectedSports, user.SportPreferences,
		user.TrainingLocations, user.HealthConditions, user.ImprovementTargets,
		user.TrainingFrequency, user.Diet)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the user; dependent rows go with it via ON DELETE CASCADE.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

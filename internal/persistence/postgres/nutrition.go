package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ahmed-Chaabane/backend-gorun/internal/domain"
)

// FoodRepository is the pgx implementation of domain.FoodRepository.
type FoodRepository struct {
	pool *pgxpool.Pool
}

func NewFoodRepository(pool *pgxpool.Pool) *FoodRepository {
	return &FoodRepository{pool: pool}
}

func (r *FoodRepository) Create(ctx context.Context, f *domain.Food) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO foods (name, calories, protein_g, carbs_g, fat_g)
         VALUES ($1,$2,$3,$4,$5) RETURNING id`,
		f.Name, f.Calories, f.ProteinG, f.CarbsG, f.FatG,
	).Scan(&f.ID)
	return translateErr(err)
}

func (r *FoodRepository) Get(ctx context.Context, id int64) (*domain.Food, error) {
	var f domain.Food
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, calories, protein_g, carbs_g, fat_g FROM foods WHERE id=$1`, id,
	).Scan(&f.ID, &f.Name, &f.Calories, &f.ProteinG, &f.CarbsG, &f.FatG)
	if err != nil {
		return nil, translateErr(err)
	}
	return &f, nil
}

func (r *FoodRepository) List(ctx context.Context) ([]domain.Food, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, calories, protein_g, carbs_g, fat_g FROM foods ORDER BY id`)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var out []domain.Food
	for rows.Next() {
		var f domain.Food
		if err := rows.Scan(&f.ID, &f.Name, &f.Calories, &f.ProteinG, &f.CarbsG, &f.FatG); err != nil {
			return nil, translateErr(err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *FoodRepository) Update(ctx context.Context, f *domain.Food) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE foods SET name=$2, calories=$3, protein_g=$4, carbs_g=$5, fat_g=$6 WHERE id=$1`,
		f.ID, f.Name, f.Calories, f.ProteinG, f.CarbsG, f.FatG)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *FoodRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM foods WHERE id=$1`, id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// EatingHabitRepository is the pgx implementation of domain.EatingHabitRepository.
type EatingHabitRepository struct {
	pool *pgxpool.Pool
}

func NewEatingHabitRepository(pool *pgxpool.Pool) *EatingHabitRepository {
	return &EatingHabitRepository{pool: pool}
}

func (r *EatingHabitRepository) Create(ctx context.Context, h *domain.EatingHabit) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO eating_habits (user_id, food_id, food_type, quantity, eaten_at)
         VALUES ($1,$2,$3,$4,$5) RETURNING id`,
		h.UserID, h.FoodID, h.FoodType, h.Quantity, h.EatenAt,
	).Scan(&h.ID)
	return translateErr(err)
}

func (r *EatingHabitRepository) Get(ctx context.Context, id int64) (*domain.EatingHabit, error) {
	var h domain.EatingHabit
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, food_id, food_type, quantity, eaten_at FROM eating_habits WHERE id=$1`, id,
	).Scan(&h.ID, &h.UserID, &h.FoodID, &h.FoodType, &h.Quantity, &h.EatenAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return &h, nil
}

func (r *EatingHabitRepository) List(ctx context.Context) ([]domain.EatingHabit, error) {
	return r.list(ctx, `SELECT id, user_id, food_id, food_type, quantity, eaten_at FROM eating_habits ORDER BY eaten_at DESC`)
}

func (r *EatingHabitRepository) ListByUser(ctx context.Context, userID int64) ([]domain.EatingHabit, error) {
	return r.list(ctx, `SELECT id, user_id, food_id, food_type, quantity, eaten_at FROM eating_habits WHERE user_id=$1 ORDER BY eaten_at DESC`, userID)
}

func (r *EatingHabitRepository) list(ctx context.Context, query string, args ...any) ([]domain.EatingHabit, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var out []domain.EatingHabit
	for rows.Next() {
		var h domain.EatingHabit
		if err := rows.Scan(&h.ID, &h.UserID, &h.FoodID, &h.FoodType, &h.Quantity, &h.EatenAt); err != nil {
			return nil, translateErr(err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *EatingHabitRepository) Update(ctx context.Context, h *domain.EatingHabit) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE eating_habits SET food_id=$2, food_type=$3, quantity=$4, eaten_at=$5 WHERE id=$1`,
		h.ID, h.FoodID, h.FoodType, h.Quantity, h.EatenAt)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *EatingHabitRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM eating_habits WHERE id=$1`, id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

package domain

import (
	"context"
	"time"
)

// Food is a catalog entry with macro nutrient values per serving.
type Food struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// EatingHabit records a user consuming a food at some point in time.
type EatingHabit struct {
	ID       int64     `json:"id"`
	UserID   int64     `json:"user_id"`
	FoodID   int64     `json:"food_id"`
	FoodType string    `json:"food_type"`
	Quantity float64   `json:"quantity"`
	EatenAt  time.Time `json:"eaten_at"`
}

type FoodRepository interface {
	Create(ctx context.Context, food *Food) error
	Get(ctx context.Context, id int64) (*Food, error)
	List(ctx context.Context) ([]Food, error)
	Update(ctx context.Context, food *Food) error
	Delete(ctx context.Context, id int64) error
}

type EatingHabitRepository interface {
	Create(ctx context.Context, habit *EatingHabit) error
	Get(ctx context.Context, id int64) (*EatingHabit, error)
	List(ctx context.Context) ([]EatingHabit, error)
	ListByUser(ctx context.Context, userID int64) ([]EatingHabit, error)
	Update(ctx context.Context, habit *EatingHabit) error
	Delete(ctx context.Context, id int64) error
}

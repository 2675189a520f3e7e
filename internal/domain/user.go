// Package domain defines the persisted entities and business rules of the backend.
package domain

import (
	"context"
	"time"
)

// UserStatus enumerates account states.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// User is the identity record every other entity hangs off.
type User struct {
	ID                 int64      `json:"id"`
	FirstName          string     `json:"first_name"`
	LastName           string     `json:"last_name"`
	Email              string     `json:"email"`
	AuthUID            string     `json:"auth_uid"`
	Status             UserStatus `json:"status"`
	HeightCm           *int       `json:"height_cm,omitempty"`
	WeightKg           *int       `json:"weight_kg,omitempty"`
	Age                *int       `json:"age,omitempty"`
	BirthDate          *time.Time `json:"birth_date,omitempty"`
	Phone              *string    `json:"phone,omitempty"`
	Sex                *string    `json:"sex,omitempty"`
	Role               *string    `json:"role,omitempty"`
	SelectedSports     []string   `json:"selected_sports,omitempty"`
	SportPreferences   []string   `json:"sport_preferences,omitempty"`
	TrainingLocations  []string   `json:"training_locations,omitempty"`
	HealthConditions   []string   `json:"health_conditions,omitempty"`
	ImprovementTargets []string   `json:"improvement_targets,omitempty"`
	TrainingFrequency  *string    `json:"training_frequency,omitempty"`
	Diet               *string    `json:"diet,omitempty"`
	RegisteredAt       time.Time  `json:"registered_at"`
}

// UserRepository captures persistence operations for users.
// Delete cascades to every user-owned row (activities, habits,
// participations, interactions, injuries) at the schema level.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	Get(ctx context.Context, id int64) (*User, error)
	GetByAuthUID(ctx context.Context, authUID string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id int64) error
}

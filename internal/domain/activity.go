package domain

import (
	"context"
	"encoding/json"
	"time"
)

// ActivityType enumerates the supported sport activity kinds.
type ActivityType string

const (
	ActivityRunning ActivityType = "running"
	ActivityCycling ActivityType = "cycling"
)

// ValidActivityType reports whether t is a known activity kind.
func ValidActivityType(t ActivityType) bool {
	return t == ActivityRunning || t == ActivityCycling
}

// SportActivity is a single recorded workout owned by a user.
type SportActivity struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"user_id"`
	Type            ActivityType    `json:"activity_type"`
	ActivityDate    time.Time       `json:"activity_date"`
	DurationSeconds int             `json:"duration_seconds"`
	DistanceKm      *float64        `json:"distance_km,omitempty"`
	CaloriesBurned  *int            `json:"calories_burned,omitempty"`
	AvgHeartRate    *int            `json:"avg_heart_rate,omitempty"`
	AvgSpeedKmh     *float64        `json:"avg_speed_kmh,omitempty"`
	MaxAltitudeM    *float64        `json:"max_altitude_m,omitempty"`
	ElevationGainM  *float64        `json:"elevation_gain_m,omitempty"`
	Route           json.RawMessage `json:"route,omitempty"`
	Extra           json.RawMessage `json:"extra,omitempty"`
	RecordedAt      time.Time       `json:"recorded_at"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ActivityDetail is a fine-grained sample attached to an activity.
type ActivityDetail struct {
	ID         int64           `json:"id"`
	ActivityID int64           `json:"activity_id"`
	Moment     time.Time       `json:"moment"`
	Intensity  float64         `json:"intensity"`
	Location   json.RawMessage `json:"location,omitempty"`
}

// ActivityRepository captures persistence operations for activities.
type ActivityRepository interface {
	Create(ctx context.Context, activity *SportActivity) error
	Get(ctx context.Context, id int64) (*SportActivity, error)
	List(ctx context.Context) ([]SportActivity, error)
	ListByUser(ctx context.Context, userID int64) ([]SportActivity, error)
	Update(ctx context.Context, activity *SportActivity) error
	Delete(ctx context.Context, id int64) error
}

// ActivityDetailRepository captures persistence operations for detail samples.
type ActivityDetailRepository interface {
	Create(ctx context.Context, detail *ActivityDetail) error
	Get(ctx context.Context, id int64) (*ActivityDetail, error)
	ListByActivity(ctx context.Context, activityID int64) ([]ActivityDetail, error)
	Update(ctx context.Context, detail *ActivityDetail) error
	Delete(ctx context.Context, id int64) error
}

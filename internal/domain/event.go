package domain

import (
	"context"
	"time"
)

// Event is a calendar entry created by a user.
type Event struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	CreatorID   int64     `json:"creator_id"`
}

type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	Get(ctx context.Context, id int64) (*Event, error)
	List(ctx context.Context) ([]Event, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id int64) error
}

package domain

import (
	"context"
	"time"
)

// MusicAccount stores the token pair linking a user to the music service.
type MusicAccount struct {
	UserID       int64     `json:"user_id"`
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type MusicAccountRepository interface {
	Upsert(ctx context.Context, account *MusicAccount) error
	GetByUser(ctx context.Context, userID int64) (*MusicAccount, error)
}

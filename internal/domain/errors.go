package domain

import "errors"

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict indicates a uniqueness constraint violation.
	ErrConflict = errors.New("record already exists")
	// ErrInvalidReference indicates a foreign key points at a missing record.
	ErrInvalidReference = errors.New("referenced record not found")
	// ErrParticipationCompleted rejects progress updates on a finished participation.
	ErrParticipationCompleted = errors.New("participation already completed")
	// ErrActiveParticipationExists rejects a second concurrent active goal of the same kind.
	ErrActiveParticipationExists = errors.New("user already has an active goal of this kind")
)

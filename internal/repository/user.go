package repository

import (
	"context"
	"errors"

	"notes-server/internal/domain"
)

var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrUserExists is returned by Create when the username is already taken.
	ErrUserExists = errors.New("user already exists")
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	// Create inserts the user unless a user with the same username exists.
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByToken(ctx context.Context, token string) (*domain.User, error)
}

package service

import (
	"context"
	"errors"
	"fmt"

	"notes-server/internal/domain"
	"notes-server/internal/repository"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserAlreadyExists is returned when attempting to register with an existing username.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrMissingCredentials is returned by Register when username or password is empty.
	ErrMissingCredentials = errors.New("username and password are required")
	// ErrUnknownToken is returned by ResolveToken when no user owns the token.
	ErrUnknownToken = errors.New("unknown token")
)

// UserService describes user lifecycle operations.
type UserService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	ResolveToken(ctx context.Context, token string) (*domain.User, error)
}

type userService struct {
	users  repository.UserRepository
	hasher PasswordHasher
}

func NewUserService(users repository.UserRepository, hasher PasswordHasher) UserService {
	if hasher == nil {
		hasher = NewBcryptHasher(DefaultBcryptCost)
	}
	return &userService{
		users:  users,
		hasher: hasher,
	}
}

func (s *userService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	id, err := newID(userIDLength)
	if err != nil {
		return nil, fmt.Errorf("generate user id: %w", err)
	}
	token, err := newID(tokenLength)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	user := &domain.User{
		ID:           id,
		Username:     username,
		PasswordHash: hash,
		Token:        token,
	}

	// Create re-checks the username, closing the window left by the lookup above.
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return sanitizeUser(user), nil
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

func (s *userService) ResolveToken(ctx context.Context, token string) (*domain.User, error) {
	user, err := s.users.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnknownToken
		}
		return nil, fmt.Errorf("lookup token: %w", err)
	}
	return sanitizeUser(user), nil
}

// sanitizeUser drops the password hash; the token stays since callers need it.
func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:       user.ID,
		Username: user.Username,
		Token:    user.Token,
	}
}

package jsondb

import (
	"context"

	"notes-server/internal/domain"
	"notes-server/internal/repository"
)

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) repository.UserRepository {
	return &UserRepository{db: db}
}

// Init is a no-op; Open already guarantees the users collection.
func (r *UserRepository) Init(context.Context) error {
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.update(ctx, func(doc *document) error {
		for _, u := range doc.Users {
			if u.Username == user.Username {
				return repository.ErrUserExists
			}
		}
		doc.Users = append(doc.Users, userRecord{
			ID:       user.ID,
			Username: user.Username,
			Password: user.PasswordHash,
			Token:    user.Token,
		})
		return nil
	})
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u userRecord) bool { return u.Username == username })
}

func (r *UserRepository) GetByToken(_ context.Context, token string) (*domain.User, error) {
	return r.find(func(u userRecord) bool { return u.Token == token })
}

func (r *UserRepository) find(match func(userRecord) bool) (*domain.User, error) {
	var found *domain.User
	err := r.db.view(func(doc *document) error {
		for _, u := range doc.Users {
			if match(u) {
				found = &domain.User{
					ID:           u.ID,
					Username:     u.Username,
					PasswordHash: u.Password,
					Token:        u.Token,
				}
				return nil
			}
		}
		return repository.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

package repository

import (
	"context"
	"time"

	"notes-server/internal/domain"
)

// NoteRepository exposes persistence operations for notes. Every lookup and
// mutation is scoped to an author.
type NoteRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, note *domain.Note) error
	ListByAuthor(ctx context.Context, authorID string) ([]domain.Note, error)
	GetByAuthor(ctx context.Context, authorID, id string) (*domain.Note, error)
	UpdateByAuthor(ctx context.Context, authorID, id, title, content string, updatedAt time.Time) (*domain.Note, error)
	DeleteByAuthor(ctx context.Context, authorID, id string) error
}

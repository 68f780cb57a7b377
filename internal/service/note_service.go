package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"notes-server/internal/domain"
	"notes-server/internal/repository"
)

// ErrNoteNotFound is returned when the note does not exist or belongs to
// another user. The two cases are deliberately indistinguishable.
var ErrNoteNotFound = errors.New("note not found")

// NoteService implements CRUD over the notes owned by a single user.
type NoteService interface {
	ListNotes(ctx context.Context, userID string) ([]domain.Note, error)
	GetNote(ctx context.Context, userID, id string) (*domain.Note, error)
	CreateNote(ctx context.Context, userID, title, content string) (*domain.Note, error)
	UpdateNote(ctx context.Context, userID, id, title, content string) (*domain.Note, error)
	DeleteNote(ctx context.Context, userID, id string) error
}

type noteService struct {
	notes repository.NoteRepository
	now   func() time.Time
}

func NewNoteService(notes repository.NoteRepository) NoteService {
	return &noteService{
		notes: notes,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *noteService) ListNotes(ctx context.Context, userID string) ([]domain.Note, error) {
	notes, err := s.notes.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

func (s *noteService) GetNote(ctx context.Context, userID, id string) (*domain.Note, error) {
	note, err := s.notes.GetByAuthor(ctx, userID, id)
	if err != nil {
		return nil, mapNoteErr("get note", err)
	}
	return note, nil
}

func (s *noteService) CreateNote(ctx context.Context, userID, title, content string) (*domain.Note, error) {
	id, err := newID(noteIDLength)
	if err != nil {
		return nil, fmt.Errorf("generate note id: %w", err)
	}

	now := s.now()
	note := &domain.Note{
		ID:        id,
		AuthorID:  userID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return note, nil
}

// UpdateNote overwrites title and content. The returned note carries the new
// title, content and updatedAt; id, author and createdAt come from the stored note.
func (s *noteService) UpdateNote(ctx context.Context, userID, id, title, content string) (*domain.Note, error) {
	note, err := s.notes.UpdateByAuthor(ctx, userID, id, title, content, s.now())
	if err != nil {
		return nil, mapNoteErr("update note", err)
	}
	return note, nil
}

func (s *noteService) DeleteNote(ctx context.Context, userID, id string) error {
	if err := s.notes.DeleteByAuthor(ctx, userID, id); err != nil {
		return mapNoteErr("delete note", err)
	}
	return nil
}

func mapNoteErr(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNoteNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

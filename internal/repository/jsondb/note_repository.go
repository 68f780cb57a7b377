package jsondb

import (
	"context"
	"time"

	"notes-server/internal/domain"
	"notes-server/internal/repository"
)

type NoteRepository struct {
	db *DB
}

func NewNoteRepository(db *DB) repository.NoteRepository {
	return &NoteRepository{db: db}
}

// Init is a no-op; Open already guarantees the notes collection.
func (r *NoteRepository) Init(context.Context) error {
	return nil
}

func (r *NoteRepository) Create(ctx context.Context, note *domain.Note) error {
	return r.db.update(ctx, func(doc *document) error {
		doc.Notes = append(doc.Notes, toRecord(note))
		return nil
	})
}

func (r *NoteRepository) ListByAuthor(_ context.Context, authorID string) ([]domain.Note, error) {
	notes := []domain.Note{}
	err := r.db.view(func(doc *document) error {
		for i := range doc.Notes {
			if doc.Notes[i].Author == authorID {
				notes = append(notes, fromRecord(doc.Notes[i]))
			}
		}
		return nil
	})
	return notes, err
}

func (r *NoteRepository) GetByAuthor(_ context.Context, authorID, id string) (*domain.Note, error) {
	var found *domain.Note
	err := r.db.view(func(doc *document) error {
		idx := indexOf(doc.Notes, authorID, id)
		if idx < 0 {
			return repository.ErrNotFound
		}
		note := fromRecord(doc.Notes[idx])
		found = &note
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *NoteRepository) UpdateByAuthor(ctx context.Context, authorID, id, title, content string, updatedAt time.Time) (*domain.Note, error) {
	var updated *domain.Note
	err := r.db.update(ctx, func(doc *document) error {
		idx := indexOf(doc.Notes, authorID, id)
		if idx < 0 {
			return repository.ErrNotFound
		}
		doc.Notes[idx].Title = title
		doc.Notes[idx].Content = content
		doc.Notes[idx].UpdatedAt = updatedAt
		note := fromRecord(doc.Notes[idx])
		updated = &note
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *NoteRepository) DeleteByAuthor(ctx context.Context, authorID, id string) error {
	return r.db.update(ctx, func(doc *document) error {
		idx := indexOf(doc.Notes, authorID, id)
		if idx < 0 {
			return repository.ErrNotFound
		}
		doc.Notes = append(doc.Notes[:idx], doc.Notes[idx+1:]...)
		return nil
	})
}

func indexOf(notes []noteRecord, authorID, id string) int {
	for i := range notes {
		if notes[i].Author == authorID && notes[i].ID == id {
			return i
		}
	}
	return -1
}

func toRecord(note *domain.Note) noteRecord {
	return noteRecord{
		ID:        note.ID,
		Author:    note.AuthorID,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

func fromRecord(rec noteRecord) domain.Note {
	return domain.Note{
		ID:        rec.ID,
		AuthorID:  rec.Author,
		Title:     rec.Title,
		Content:   rec.Content,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

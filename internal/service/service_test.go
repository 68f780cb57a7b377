package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"notes-server/internal/repository"
	"notes-server/internal/repository/jsondb"
	"notes-server/internal/storage"
)

type failingHasher struct{}

func (failingHasher) Hash(string) (string, error)  { return "", errors.New("hash failure") }
func (failingHasher) Compare(string, string) error { return errors.New("compare failure") }

func newTestRepos(t *testing.T) (repository.UserRepository, repository.NoteRepository) {
	t.Helper()
	db, err := jsondb.Open(context.Background(), storage.NewMemoryStore())
	require.NoError(t, err)
	return jsondb.NewUserRepository(db), jsondb.NewNoteRepository(db)
}

// tickingClock returns a clock that advances by one second on every call.
func tickingClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		now := current
		current = current.Add(time.Second)
		return now
	}
}

package storage

import (
	"context"
	"errors"
)

// ErrNotExist is returned by Read when no document has been written yet.
var ErrNotExist = errors.New("document does not exist")

// DocumentStore persists a single opaque document.
type DocumentStore interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

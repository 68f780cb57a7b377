// Package jsondb implements the repositories over a single JSON document with
// a "users" and a "notes" collection. The document is loaded once and written
// back to its DocumentStore after every mutation.
package jsondb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"notes-server/internal/storage"
)

type userRecord struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Token    string `json:"token"`
}

type noteRecord struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type document struct {
	Users []userRecord `json:"users"`
	Notes []noteRecord `json:"notes"`
}

func (d document) clone() document {
	return document{
		Users: append(make([]userRecord, 0, len(d.Users)), d.Users...),
		Notes: append(make([]noteRecord, 0, len(d.Notes)), d.Notes...),
	}
}

// DB serialises all access to the document, so each repository call runs as
// one atomic find-then-write step.
type DB struct {
	mu    sync.Mutex
	store storage.DocumentStore
	doc   document
}

// Open loads the document from store, creating it with empty collections when
// it does not exist yet.
func Open(ctx context.Context, store storage.DocumentStore) (*DB, error) {
	db := &DB{store: store}

	data, err := store.Read(ctx)
	switch {
	case errors.Is(err, storage.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("load document: %w", err)
	default:
		if err := json.Unmarshal(data, &db.doc); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
	}

	if db.doc.Users == nil {
		db.doc.Users = []userRecord{}
	}
	if db.doc.Notes == nil {
		db.doc.Notes = []noteRecord{}
	}
	if err := db.flush(ctx, db.doc); err != nil {
		return nil, err
	}
	return db, nil
}

func (db *DB) view(fn func(doc *document) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return fn(&db.doc)
}

// update applies fn to a copy of the document and swaps it in only after the
// copy was written to the store.
func (db *DB) update(ctx context.Context, fn func(doc *document) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	next := db.doc.clone()
	if err := fn(&next); err != nil {
		return err
	}
	if err := db.flush(ctx, next); err != nil {
		return err
	}
	db.doc = next
	return nil
}

func (db *DB) flush(ctx context.Context, doc document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := db.store.Write(ctx, data); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

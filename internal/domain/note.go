package domain

import "time"

// Note is a short text note owned by the user whose ID equals AuthorID.
type Note struct {
	ID        string
	AuthorID  string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

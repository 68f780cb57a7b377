package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"notes-server/internal/domain"
	"notes-server/internal/service"
)

type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NoteResponse is a list entry; Author is the owner's id.
type NoteResponse struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type AuthorResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// NoteDetailResponse is returned for a single note with the author expanded.
type NoteDetailResponse struct {
	ID        string         `json:"id"`
	Author    AuthorResponse `json:"author"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type CreatedNoteResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (h *Handler) listNotes(c *gin.Context) {
	user := currentUser(c)
	notes, err := h.notes.ListNotes(c.Request.Context(), user.ID)
	if err != nil {
		h.internalError(c, "failed to list notes", err)
		return
	}

	resp := make([]NoteResponse, len(notes))
	for i := range notes {
		resp[i] = NoteResponse{
			ID:        notes[i].ID,
			Author:    notes[i].AuthorID,
			Title:     notes[i].Title,
			Content:   notes[i].Content,
			CreatedAt: notes[i].CreatedAt,
			UpdatedAt: notes[i].UpdatedAt,
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getNote(c *gin.Context) {
	user := currentUser(c)
	note, err := h.notes.GetNote(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		h.noteError(c, "failed to get note", err)
		return
	}
	c.JSON(http.StatusOK, noteToDetail(note, user))
}

func (h *Handler) createNote(c *gin.Context) {
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	note, err := h.notes.CreateNote(c.Request.Context(), currentUser(c).ID, req.Title, req.Content)
	if err != nil {
		h.internalError(c, "failed to create note", err)
		return
	}

	c.JSON(http.StatusOK, CreatedNoteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	})
}

func (h *Handler) updateNote(c *gin.Context) {
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user := currentUser(c)
	note, err := h.notes.UpdateNote(c.Request.Context(), user.ID, c.Param("id"), req.Title, req.Content)
	if err != nil {
		h.noteError(c, "failed to update note", err)
		return
	}
	c.JSON(http.StatusOK, noteToDetail(note, user))
}

func (h *Handler) deleteNote(c *gin.Context) {
	if err := h.notes.DeleteNote(c.Request.Context(), currentUser(c).ID, c.Param("id")); err != nil {
		h.noteError(c, "failed to delete note", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func (h *Handler) noteError(c *gin.Context, message string, err error) {
	if errors.Is(err, service.ErrNoteNotFound) {
		writeError(c, http.StatusNotFound, "the note does not exist")
		return
	}
	h.internalError(c, message, err)
}

// noteToDetail expands the author from the already resolved caller.
func noteToDetail(note *domain.Note, author *domain.User) NoteDetailResponse {
	return NoteDetailResponse{
		ID: note.ID,
		Author: AuthorResponse{
			ID:       author.ID,
			Username: author.Username,
		},
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

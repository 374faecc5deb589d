package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/repairshop/technotes-api/internal/api/metrics"
	"github.com/repairshop/technotes-api/internal/core/domain"
	"github.com/repairshop/technotes-api/internal/core/ports"
)

// NoteHandler handles the protected /techNotes CRUD and /sync.
type NoteHandler struct {
	noteService ports.NoteService
}

func NewNoteHandler(noteService ports.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// List returns every note joined with its owner's name and email.
//
// @Summary      List notes
// @Tags         notes
// @Produce      json
// @Param        x-auth-token  header  string  true  "Bearer token"
// @Success      200  {array}   domain.NoteWithOwner
// @Failure      400  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Router       /techNotes [get]
func (h *NoteHandler) List(c echo.Context) error {
	notes, err := h.noteService.List(c.Request().Context())
	if err != nil {
		if errors.Is(err, domain.ErrNoNotes) {
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "No notes found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, notes)
}

// Create stores a new note for a user. Titles are unique per owner.
//
// @Summary      Create a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        x-auth-token  header  string             true  "Bearer token"
// @Param        body          body    createNoteRequest  true  "New note"
// @Success      201  {object}  domain.Note
// @Failure      400  {object}  messageResponse
// @Failure      409  {object}  messageResponse
// @Router       /techNotes [post]
func (h *NoteHandler) Create(c echo.Context) error {
	var req createNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "All fields are required"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "All fields are required"})
	}

	note, err := h.noteService.Create(c.Request().Context(), ports.CreateNoteInput{
		UserID:  req.UserID,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "All fields are required"})
		case errors.Is(err, domain.ErrDuplicateTitle):
			return c.JSON(http.StatusConflict, messageResponse{Message: "Duplicate title"})
		case errors.Is(err, domain.ErrUserNotFound):
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid note data received"})
		}
		return err
	}

	metrics.NoteMutationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, note)
}

// Update overwrites every field of a note. completed must be a strict
// boolean here; the 0/1 tolerance belongs to sync alone.
//
// @Summary      Update a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        x-auth-token  header  string             true  "Bearer token"
// @Param        body          body    updateNoteRequest  true  "Full note"
// @Success      200  {string}  string  "confirmation sentence"
// @Failure      400  {object}  messageResponse
// @Failure      409  {object}  messageResponse
// @Router       /techNotes [put]
func (h *NoteHandler) Update(c echo.Context) error {
	var req updateNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "All fields are required"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "All fields are required"})
	}

	note, err := h.noteService.Update(c.Request().Context(), ports.UpdateNoteInput{
		ID:        req.ID,
		UserID:    req.UserID,
		Title:     req.Title,
		Content:   req.Content,
		Completed: *req.Completed,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "All fields are required"})
		case errors.Is(err, domain.ErrNoteNotFound):
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "Note not found"})
		case errors.Is(err, domain.ErrDuplicateTitle):
			return c.JSON(http.StatusConflict, messageResponse{Message: "Duplicate title"})
		}
		return err
	}

	metrics.NoteMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, fmt.Sprintf("'%s' updated", note.Title))
}

// Delete removes a note by id.
//
// @Summary      Delete a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        x-auth-token  header  string             true  "Bearer token"
// @Param        body          body    deleteNoteRequest  true  "Target id"
// @Success      200  {string}  string  "confirmation sentence"
// @Failure      400  {object}  messageResponse
// @Router       /techNotes [delete]
func (h *NoteHandler) Delete(c echo.Context) error {
	var req deleteNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "All fields are required"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "All fields are required"})
	}

	note, err := h.noteService.Delete(c.Request().Context(), req.ID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "All fields are required"})
		case errors.Is(err, domain.ErrNoteNotFound):
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "Note not found"})
		}
		return err
	}

	metrics.NoteMutationsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, fmt.Sprintf("Note '%s' with ID %s deleted", note.Title, note.ID))
}

// Sync reconciles a batch of client-held notes against server state.
//
// @Summary      Sync offline notes
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        x-auth-token  header  string             true  "Bearer token"
// @Param        body          body    []syncNoteRequest  true  "Client-held notes"
// @Success      201  {array}   domain.Note
// @Success      200  {object}  messageResponse  "empty batch"
// @Failure      400  {object}  messageResponse
// @Router       /sync [post]
func (h *NoteHandler) Sync(c echo.Context) error {
	var reqs []syncNoteRequest
	if err := c.Bind(&reqs); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid sync payload"})
	}

	if len(reqs) == 0 {
		return c.JSON(http.StatusOK, messageResponse{Message: "No tasks to sync"})
	}

	batch := make([]domain.SyncNote, 0, len(reqs))
	for _, r := range reqs {
		batch = append(batch, r.toDomain())
	}

	synced, err := h.noteService.Sync(c.Request().Context(), batch)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "All fields are required"})
		case errors.Is(err, domain.ErrUserNotFound):
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid note data received"})
		}
		return err
	}

	metrics.NotesSyncedTotal.Add(float64(len(synced)))
	return c.JSON(http.StatusCreated, synced)
}

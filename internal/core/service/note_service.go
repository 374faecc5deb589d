package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/repairshop/technotes-api/internal/core/domain"
	"github.com/repairshop/technotes-api/internal/core/ports"
)

// NoteService implements tech-note CRUD and the offline batch sync.
// Duplicate titles are rejected per owner: two users may both hold a
// "cracked screen" note, one user may not hold it twice.
type NoteService struct {
	notes ports.NoteRepository
	log   zerolog.Logger
}

func NewNoteService(notes ports.NoteRepository, log zerolog.Logger) *NoteService {
	return &NoteService{notes: notes, log: log}
}

func (s *NoteService) List(ctx context.Context) ([]domain.NoteWithOwner, error) {
	notes, err := s.notes.ListWithOwners(ctx)
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, domain.ErrNoNotes
	}
	return notes, nil
}

func (s *NoteService) Create(ctx context.Context, in ports.CreateNoteInput) (*domain.Note, error) {
	if in.UserID == "" || in.Title == "" || in.Content == "" {
		return nil, domain.ErrInvalidInput
	}

	dup, err := s.notes.FindByOwnerAndTitle(ctx, in.UserID, in.Title)
	if err != nil && !errors.Is(err, domain.ErrNoteNotFound) {
		return nil, err
	}
	if dup != nil {
		return nil, domain.ErrDuplicateTitle
	}

	note := &domain.Note{
		ID:      uuid.NewString(),
		UserID:  in.UserID,
		Title:   in.Title,
		Content: in.Content,
	}

	created, err := s.notes.Create(ctx, note)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("note_id", created.ID).Str("user_id", created.UserID).Msg("note created")
	return created, nil
}

func (s *NoteService) Update(ctx context.Context, in ports.UpdateNoteInput) (*domain.Note, error) {
	if in.ID == "" || in.UserID == "" || in.Title == "" || in.Content == "" {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.notes.FindByID(ctx, in.ID); err != nil {
		return nil, err
	}

	dup, err := s.notes.FindByOwnerAndTitle(ctx, in.UserID, in.Title)
	if err != nil && !errors.Is(err, domain.ErrNoteNotFound) {
		return nil, err
	}
	if dup != nil && dup.ID != in.ID {
		return nil, domain.ErrDuplicateTitle
	}

	updated, err := s.notes.Update(ctx, &domain.Note{
		ID:        in.ID,
		UserID:    in.UserID,
		Title:     in.Title,
		Content:   in.Content,
		Completed: in.Completed,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("note_id", updated.ID).Msg("note updated")
	return updated, nil
}

func (s *NoteService) Delete(ctx context.Context, id string) (*domain.Note, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}

	deleted, err := s.notes.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("note_id", deleted.ID).Str("title", deleted.Title).Msg("note deleted")
	return deleted, nil
}

// Sync reconciles a client-held batch against server state in one upsert.
// An empty batch is a no-op, not an error. Notes created fully offline may
// arrive without an id; those get one here so the upsert can key on it.
func (s *NoteService) Sync(ctx context.Context, notes []domain.SyncNote) ([]domain.Note, error) {
	if len(notes) == 0 {
		return nil, nil
	}

	for i := range notes {
		if notes[i].UserID == "" || notes[i].Title == "" || notes[i].Content == "" {
			return nil, domain.ErrInvalidInput
		}
		if notes[i].ID == "" {
			notes[i].ID = uuid.NewString()
		}
	}

	synced, err := s.notes.Upsert(ctx, notes)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int("count", len(synced)).Msg("notes synced")
	return synced, nil
}

package ports

import (
	"context"

	"github.com/repairshop/technotes-api/internal/core/domain"
)

type CreateNoteInput struct {
	UserID  string
	Title   string
	Content string
}

type UpdateNoteInput struct {
	ID        string
	UserID    string
	Title     string
	Content   string
	Completed bool
}

type NoteService interface {
	List(ctx context.Context) ([]domain.NoteWithOwner, error)
	Create(ctx context.Context, in CreateNoteInput) (*domain.Note, error)
	Update(ctx context.Context, in UpdateNoteInput) (*domain.Note, error)
	Delete(ctx context.Context, id string) (*domain.Note, error)
	Sync(ctx context.Context, notes []domain.SyncNote) ([]domain.Note, error)
}

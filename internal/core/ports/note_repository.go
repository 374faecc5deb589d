package ports

import (
	"context"

	"github.com/repairshop/technotes-api/internal/core/domain"
)

// NoteRepository defines persistence for tech notes.
type NoteRepository interface {
	ListWithOwners(ctx context.Context) ([]domain.NoteWithOwner, error)
	FindByID(ctx context.Context, id string) (*domain.Note, error)
	// FindByOwnerAndTitle locates a note with the given title owned by
	// userID. Title uniqueness is scoped per owner.
	FindByOwnerAndTitle(ctx context.Context, userID, title string) (*domain.Note, error)
	CountByOwner(ctx context.Context, userID string) (int, error)
	Create(ctx context.Context, note *domain.Note) (*domain.Note, error)
	Update(ctx context.Context, note *domain.Note) (*domain.Note, error)
	Delete(ctx context.Context, id string) (*domain.Note, error)
	// Upsert reconciles a client batch in one statement keyed on id:
	// unknown ids insert, known ids overwrite userId/title/content/completed
	// keeping created_at and stamping updated_at with server time.
	Upsert(ctx context.Context, notes []domain.SyncNote) ([]domain.Note, error)
}

package ports

import (
	"context"

	"github.com/repairshop/technotes-api/internal/core/domain"
)

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByNameFold performs a case-insensitive name lookup, skipping
	// excludeID so a user can keep their own name on update.
	FindByNameFold(ctx context.Context, name, excludeID string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) (*domain.User, error)
}

package ports

import (
	"context"

	"github.com/repairshop/technotes-api/internal/core/domain"
)

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Roles    []string
}

// UpdateUserInput is a partial update. Nil pointers mean "not provided".
// Email doubles as the existence check key, so callers must send the
// id/email pair of the same row.
type UpdateUserInput struct {
	ID       string
	Name     *string
	Email    *string
	Password *string
	Roles    []string
}

type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, in UpdateUserInput) (*domain.User, error)
	// Delete returns the removed user so the handler can word the
	// confirmation sentence.
	Delete(ctx context.Context, id string) (*domain.User, error)
}

package ports

import (
	"context"

	"github.com/repairshop/technotes-api/internal/core/domain"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// VerifyToken reports whether the token is valid AND resolves to a live
	// user. Expiry is surfaced as domain.ErrTokenExpired rather than false.
	VerifyToken(ctx context.Context, token string) (bool, error)
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}

package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/repairshop/technotes-api/internal/core/domain"
	"github.com/repairshop/technotes-api/internal/core/ports"
)

// UserService implements user management CRUD with the duplicate checks and
// partial-update semantics the clients rely on.
type UserService struct {
	users ports.UserRepository
	notes ports.NoteRepository
	// allowDeleteWithNotes restores the permissive legacy behavior where a
	// user owning notes is still deleted (the FK cascade then removes the
	// notes). Off by default.
	allowDeleteWithNotes bool
	log                  zerolog.Logger
}

func NewUserService(users ports.UserRepository, notes ports.NoteRepository, allowDeleteWithNotes bool, log zerolog.Logger) *UserService {
	return &UserService{
		users:                users,
		notes:                notes,
		allowDeleteWithNotes: allowDeleteWithNotes,
		log:                  log,
	}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, domain.ErrNoUsers
	}
	return users, nil
}

func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" || len(in.Roles) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, r := range in.Roles {
		if !domain.ValidRole(r) {
			return nil, domain.ErrInvalidInput
		}
	}

	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Roles:        in.Roles,
		Active:       true,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Strs("roles", created.Roles).Msg("user created")
	return created, nil
}

// Update confirms existence by email while the write itself is keyed by id,
// so the caller must send the id/email pair of the same row. The patch is
// sparse: absent fields stay untouched, a provided password is re-hashed,
// and a patch that would only refresh the timestamp short-circuits with
// domain.ErrNoUpdateData.
func (s *UserService) Update(ctx context.Context, in ports.UpdateUserInput) (*domain.User, error) {
	if in.ID == "" {
		return nil, domain.ErrInvalidInput
	}

	email := ""
	if in.Email != nil {
		email = *in.Email
	}
	if _, err := s.users.FindByEmail(ctx, email); err != nil {
		return nil, err
	}

	if in.Name != nil {
		dup, err := s.users.FindByNameFold(ctx, *in.Name, in.ID)
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		if dup != nil {
			return nil, domain.ErrDuplicateName
		}
	}

	patch := domain.UserPatch{Name: in.Name, Email: in.Email}
	if len(in.Roles) > 0 {
		for _, r := range in.Roles {
			if !domain.ValidRole(r) {
				return nil, domain.ErrInvalidInput
			}
		}
		patch.Roles = in.Roles
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hashed := string(hash)
		patch.PasswordHash = &hashed
	}

	if patch.Empty() {
		return nil, domain.ErrNoUpdateData
	}

	updated, err := s.users.Update(ctx, in.ID, patch)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", updated.ID).Msg("user updated")
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}

	owned, err := s.notes.CountByOwner(ctx, id)
	if err != nil {
		return nil, err
	}
	if owned > 0 {
		if !s.allowDeleteWithNotes {
			return nil, domain.ErrUserHasNotes
		}
		s.log.Warn().Str("user_id", id).Int("notes", owned).Msg("deleting user with assigned notes, cascade will remove them")
	}

	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", deleted.ID).Str("name", deleted.Name).Msg("user deleted")
	return deleted, nil
}

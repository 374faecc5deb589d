package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/repairshop/technotes-api/internal/core/domain"
)

// In-memory repositories shared by the service tests.

type memUserRepo struct {
	users map[string]*domain.User
	seq   int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]string(nil), u.Roles...)
	return &clone
}

func (r *memUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *cloneUser(u))
	}
	return out, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindByNameFold(_ context.Context, name, excludeID string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID != excludeID && strings.EqualFold(u.Name, name) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	copy := cloneUser(user)
	if copy.ID == "" {
		r.seq++
		copy.ID = fmt.Sprintf("user-%d", r.seq)
	}
	now := time.Now()
	copy.CreatedAt = now
	copy.UpdatedAt = now
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *memUserRepo) Update(_ context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if len(patch.Roles) > 0 {
		u.Roles = append([]string(nil), patch.Roles...)
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	u.UpdatedAt = time.Now()
	return cloneUser(u), nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	delete(r.users, id)
	return cloneUser(u), nil
}

type memNoteRepo struct {
	notes map[string]*domain.Note
}

func newMemNoteRepo() *memNoteRepo {
	return &memNoteRepo{notes: make(map[string]*domain.Note)}
}

func cloneNote(n *domain.Note) *domain.Note {
	if n == nil {
		return nil
	}
	clone := *n
	return &clone
}

func (r *memNoteRepo) ListWithOwners(_ context.Context) ([]domain.NoteWithOwner, error) {
	out := make([]domain.NoteWithOwner, 0, len(r.notes))
	for _, n := range r.notes {
		out = append(out, domain.NoteWithOwner{
			Note:     *cloneNote(n),
			UserName: "owner of " + n.UserID,
		})
	}
	return out, nil
}

func (r *memNoteRepo) FindByID(_ context.Context, id string) (*domain.Note, error) {
	n, ok := r.notes[id]
	if !ok {
		return nil, domain.ErrNoteNotFound
	}
	return cloneNote(n), nil
}

func (r *memNoteRepo) FindByOwnerAndTitle(_ context.Context, userID, title string) (*domain.Note, error) {
	for _, n := range r.notes {
		if n.UserID == userID && n.Title == title {
			return cloneNote(n), nil
		}
	}
	return nil, domain.ErrNoteNotFound
}

func (r *memNoteRepo) CountByOwner(_ context.Context, userID string) (int, error) {
	count := 0
	for _, n := range r.notes {
		if n.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *memNoteRepo) Create(_ context.Context, note *domain.Note) (*domain.Note, error) {
	copy := cloneNote(note)
	now := time.Now()
	copy.CreatedAt = now
	copy.UpdatedAt = now
	r.notes[copy.ID] = cloneNote(copy)
	return copy, nil
}

func (r *memNoteRepo) Update(_ context.Context, note *domain.Note) (*domain.Note, error) {
	existing, ok := r.notes[note.ID]
	if !ok {
		return nil, domain.ErrNoteNotFound
	}
	copy := cloneNote(note)
	copy.CreatedAt = existing.CreatedAt
	copy.UpdatedAt = time.Now()
	r.notes[copy.ID] = cloneNote(copy)
	return copy, nil
}

func (r *memNoteRepo) Delete(_ context.Context, id string) (*domain.Note, error) {
	n, ok := r.notes[id]
	if !ok {
		return nil, domain.ErrNoteNotFound
	}
	delete(r.notes, id)
	return cloneNote(n), nil
}

func (r *memNoteRepo) Upsert(_ context.Context, notes []domain.SyncNote) ([]domain.Note, error) {
	now := time.Now()
	out := make([]domain.Note, 0, len(notes))
	for _, sn := range notes {
		n := &domain.Note{
			ID:        sn.ID,
			UserID:    sn.UserID,
			Title:     sn.Title,
			Content:   sn.Content,
			Completed: sn.Completed,
			UpdatedAt: now,
		}
		if existing, ok := r.notes[sn.ID]; ok {
			n.CreatedAt = existing.CreatedAt
		} else if sn.CreatedAt != nil {
			n.CreatedAt = *sn.CreatedAt
		} else {
			n.CreatedAt = now
		}
		r.notes[n.ID] = cloneNote(n)
		out = append(out, *cloneNote(n))
	}
	return out, nil
}

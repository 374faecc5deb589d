package handler

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/repairshop/technotes-api/internal/core/domain"
)

// messageResponse is the envelope used by all 4xx bodies and informational
// replies. Success bodies are the raw record, an array, or a confirmation
// sentence, depending on the endpoint; clients rely on those shapes.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type signupRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// loginRequest is deliberately unvalidated: a missing email reads as an
// unknown account, matching the endpoint's error contract.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// --- Users ---

type createUserRequest struct {
	Name     string   `json:"name"     validate:"required"`
	Email    string   `json:"email"    validate:"required"`
	Password string   `json:"password" validate:"required"`
	Roles    []string `json:"roles"    validate:"required,min=1,dive,oneof=employee admin manager"`
}

// updateUserRequest carries a sparse patch; nil means "leave untouched".
// The id names the row, the email is what the existence check runs on.
type updateUserRequest struct {
	ID       string   `json:"id" validate:"required"`
	Name     *string  `json:"name"`
	Email    *string  `json:"email"`
	Password *string  `json:"password"`
	Roles    []string `json:"roles" validate:"omitempty,dive,oneof=employee admin manager"`
}

type deleteUserRequest struct {
	ID string `json:"id" validate:"required"`
}

// --- Notes ---

type createNoteRequest struct {
	UserID  string `json:"userId"  validate:"required"`
	Title   string `json:"title"   validate:"required"`
	Content string `json:"content" validate:"required"`
}

// updateNoteRequest requires a strictly boolean completed flag: a 0/1
// number must bind-fail here, unlike the tolerant sync payload.
type updateNoteRequest struct {
	ID        string `json:"id"      validate:"required"`
	UserID    string `json:"userId"  validate:"required"`
	Title     string `json:"title"   validate:"required"`
	Content   string `json:"content" validate:"required"`
	Completed *bool  `json:"completed" validate:"required"`
}

type deleteNoteRequest struct {
	ID string `json:"id" validate:"required"`
}

// syncNoteRequest is one row of the offline batch. Ids are client-generated,
// completed may arrive as 0/1, and timestamps may arrive as RFC3339 text,
// unix milliseconds, or not at all.
type syncNoteRequest struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Completed IntBool   `json:"completed"`
	CreatedAt *FlexTime `json:"createdAt"`
	UpdatedAt *FlexTime `json:"updatedAt"`
}

func (r syncNoteRequest) toDomain() domain.SyncNote {
	n := domain.SyncNote{
		ID:        r.ID,
		UserID:    r.UserID,
		Title:     r.Title,
		Content:   r.Content,
		Completed: bool(r.Completed),
	}
	if r.CreatedAt != nil {
		t := r.CreatedAt.Time
		n.CreatedAt = &t
	}
	if r.UpdatedAt != nil {
		t := r.UpdatedAt.Time
		n.UpdatedAt = &t
	}
	return n
}

// IntBool decodes a JSON boolean or a 0/1 number. Offline clients persist
// completed in an integer column and ship it as-is.
type IntBool bool

func (b *IntBool) UnmarshalJSON(data []byte) error {
	switch s := strings.TrimSpace(string(data)); s {
	case "true":
		*b = true
		return nil
	case "false", "null":
		*b = false
		return nil
	default:
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("completed must be a boolean or 0/1, got %s", s)
		}
		*b = n == 1
		return nil
	}
}

// FlexTime decodes an RFC3339 string or a unix-milliseconds number.
type FlexTime struct {
	time.Time
}

func (t *FlexTime) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		return json.Unmarshal(data, &t.Time)
	}
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid timestamp %s", s)
	}
	t.Time = time.UnixMilli(ms).UTC()
	return nil
}

package domain

import "errors"

var (
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailNotFound is login's pre-password existence check. It is kept
	// separate from ErrUserNotFound because the login endpoint reports it
	// with its own message.
	ErrEmailNotFound   = errors.New("user with this email doesn't exist")
	ErrInvalidPassword = errors.New("invalid password")
	ErrNoUsers         = errors.New("no users found")
	ErrDuplicateName   = errors.New("duplicate username")
	ErrUserHasNotes    = errors.New("user has assigned notes")
	// ErrNoUpdateData short-circuits an update whose patch would contain
	// nothing but the refreshed timestamp. Handlers report it as a 200.
	ErrNoUpdateData = errors.New("no data provided for update")

	ErrNoteNotFound   = errors.New("note not found")
	ErrDuplicateTitle = errors.New("duplicate title")
	ErrNoNotes        = errors.New("no notes found")

	ErrTokenInvalid = errors.New("token is not valid")
	ErrTokenExpired = errors.New("token expired")

	ErrInvalidInput = errors.New("all fields are required")
)

package domain

import "time"

// Note is a tech note attached to a repair ticket, owned by exactly one user.
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NoteWithOwner is the listing projection: a note joined with its owner.
type NoteWithOwner struct {
	Note
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}

// SyncNote is one row of a client-held batch. Offline clients generate
// their own ids and may omit either timestamp; an absent timestamp stays
// NULL server-side rather than being defaulted to now.
type SyncNote struct {
	ID        string
	UserID    string
	Title     string
	Content   string
	Completed bool
	CreatedAt *time.Time
	UpdatedAt *time.Time
}

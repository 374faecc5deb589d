package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/repairshop/technotes-api/internal/core/domain"
	"github.com/repairshop/technotes-api/internal/core/ports"
)

// pgForeignKeyViolation is the SQLSTATE for foreign key violations.
const pgForeignKeyViolation = "23503"

var _ ports.NoteRepository = (*NoteRepository)(nil)

const noteColumns = `id::text, user_id::text, title, content, completed, created_at, updated_at`

type NoteRepository struct {
	db  *pgxpool.Pool
	log zerolog.Logger
}

func NewNoteRepository(db *pgxpool.Pool, log zerolog.Logger) *NoteRepository {
	return &NoteRepository{db: db, log: log}
}

type noteRow struct {
	ID        string     `db:"id"`
	UserID    string     `db:"user_id"`
	Title     string     `db:"title"`
	Content   string     `db:"content"`
	Completed bool       `db:"completed"`
	CreatedAt *time.Time `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`
}

func (r noteRow) toDomain() *domain.Note {
	n := &domain.Note{
		ID:        r.ID,
		UserID:    r.UserID,
		Title:     r.Title,
		Content:   r.Content,
		Completed: r.Completed,
	}
	if r.CreatedAt != nil {
		n.CreatedAt = *r.CreatedAt
	}
	if r.UpdatedAt != nil {
		n.UpdatedAt = *r.UpdatedAt
	}
	return n
}

type noteOwnerRow struct {
	noteRow
	UserName  string `db:"user_name"`
	UserEmail string `db:"user_email"`
}

func (r *NoteRepository) ListWithOwners(ctx context.Context) ([]domain.NoteWithOwner, error) {
	query := `
		SELECT n.id::text, n.user_id::text, n.title, n.content, n.completed,
		       n.created_at, n.updated_at,
		       u.name AS user_name, u.email AS user_email
		FROM tech_notes n
		INNER JOIN users u ON u.id = n.user_id
		ORDER BY n.created_at`

	var rows []noteOwnerRow
	if err := pgxscan.Select(ctx, r.db, &rows, query); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	notes := make([]domain.NoteWithOwner, 0, len(rows))
	for _, row := range rows {
		notes = append(notes, domain.NoteWithOwner{
			Note:      *row.noteRow.toDomain(),
			UserName:  row.UserName,
			UserEmail: row.UserEmail,
		})
	}
	return notes, nil
}

func (r *NoteRepository) FindByID(ctx context.Context, id string) (*domain.Note, error) {
	return r.findOne(ctx, `SELECT `+noteColumns+` FROM tech_notes WHERE id = $1`, id)
}

func (r *NoteRepository) FindByOwnerAndTitle(ctx context.Context, userID, title string) (*domain.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM tech_notes WHERE user_id = $1 AND title = $2 LIMIT 1`
	return r.findOne(ctx, query, userID, title)
}

func (r *NoteRepository) findOne(ctx context.Context, query string, args ...any) (*domain.Note, error) {
	var row noteRow
	if err := pgxscan.Get(ctx, r.db, &row, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("find note: %w", err)
	}
	return row.toDomain(), nil
}

func (r *NoteRepository) CountByOwner(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM tech_notes WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count notes: %w", err)
	}
	return count, nil
}

func (r *NoteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	query := `
		INSERT INTO tech_notes (id, user_id, title, content)
		VALUES ($1::uuid, $2::uuid, $3, $4)
		RETURNING ` + noteColumns

	var row noteRow
	err := pgxscan.Get(ctx, r.db, &row, query, note.ID, note.UserID, note.Title, note.Content)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("insert note: %w", err)
	}
	return row.toDomain(), nil
}

func (r *NoteRepository) Update(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	query := `
		UPDATE tech_notes
		SET user_id = $2::uuid, title = $3, content = $4, completed = $5, updated_at = now()
		WHERE id = $1::uuid
		RETURNING ` + noteColumns

	var row noteRow
	err := pgxscan.Get(ctx, r.db, &row, query, note.ID, note.UserID, note.Title, note.Content, note.Completed)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, domain.ErrNoteNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update note: %w", err)
	}
	return row.toDomain(), nil
}

func (r *NoteRepository) Delete(ctx context.Context, id string) (*domain.Note, error) {
	query := `DELETE FROM tech_notes WHERE id = $1 RETURNING ` + noteColumns

	var row noteRow
	if err := pgxscan.Get(ctx, r.db, &row, query, id); err != nil {
		if pgxscan.NotFound(err) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("delete note: %w", err)
	}
	return row.toDomain(), nil
}

// Upsert runs the whole batch as one multi-row INSERT ... ON CONFLICT.
// Conflicting rows keep their created_at and get updated_at from the
// server clock; everything else is overwritten with the incoming values.
func (r *NoteRepository) Upsert(ctx context.Context, notes []domain.SyncNote) ([]domain.Note, error) {
	values := make([]string, 0, len(notes))
	args := make([]any, 0, len(notes)*7)
	for i, n := range notes {
		base := i * 7
		values = append(values, fmt.Sprintf("($%d::uuid, $%d::uuid, $%d, $%d, $%d, $%d::timestamptz, $%d::timestamptz)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7))
		args = append(args, n.ID, n.UserID, n.Title, n.Content, n.Completed, n.CreatedAt, n.UpdatedAt)
	}

	query := fmt.Sprintf(`
		INSERT INTO tech_notes (id, user_id, title, content, completed, created_at, updated_at)
		VALUES %s
		ON CONFLICT (id) DO UPDATE SET
			user_id   = excluded.user_id,
			title     = excluded.title,
			content   = excluded.content,
			completed = excluded.completed,
			updated_at = now()
		RETURNING %s`, strings.Join(values, ", "), noteColumns)

	var rows []noteRow
	if err := pgxscan.Select(ctx, r.db, &rows, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("sync notes: %w", err)
	}

	synced := make([]domain.Note, 0, len(rows))
	for _, row := range rows {
		synced = append(synced, *row.toDomain())
	}
	return synced, nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/derin/notehub/internal/app/models"
)

// LiveNoteRepository handles database operations for collaborative live notes
type LiveNoteRepository struct {
	db *pgxpool.Pool
}

// NewLiveNoteRepository creates a new live note repository
func NewLiveNoteRepository(db *pgxpool.Pool) *LiveNoteRepository {
	return &LiveNoteRepository{
		db: db,
	}
}

const liveNoteColumns = `
	id, title, slug, content, unit_id, active_editors, view_count, created_at, updated_at
`

func scanLiveNote(row pgx.Row) (*models.LiveNote, error) {
	var ln models.LiveNote
	err := row.Scan(
		&ln.ID, &ln.Title, &ln.Slug, &ln.Content, &ln.UnitID,
		&ln.ActiveEditors, &ln.ViewCount, &ln.CreatedAt, &ln.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &ln, nil
}

// Create inserts a new live note
func (r *LiveNoteRepository) Create(ctx context.Context, note *models.LiveNote) error {
	query := `
		INSERT INTO live_notes (title, slug, content, unit_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		note.Title, note.Slug, note.Content, note.UnitID,
	).Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating live note: %w", err)
	}
	return nil
}

// GetBySlug retrieves a live note by slug; nil when not found
func (r *LiveNoteRepository) GetBySlug(ctx context.Context, slug string) (*models.LiveNote, error) {
	query := `SELECT ` + liveNoteColumns + ` FROM live_notes WHERE slug = $1`
	return scanLiveNote(r.db.QueryRow(ctx, query, slug))
}

// GetBySlugAndIncrementView atomically bumps view_count and returns the
// updated live note; nil when not found.
func (r *LiveNoteRepository) GetBySlugAndIncrementView(ctx context.Context, slug string) (*models.LiveNote, error) {
	query := `
		UPDATE live_notes SET view_count = view_count + 1
		WHERE slug = $1
		RETURNING ` + liveNoteColumns
	return scanLiveNote(r.db.QueryRow(ctx, query, slug))
}

// GetAll retrieves all live notes, most recently edited first
func (r *LiveNoteRepository) GetAll(ctx context.Context) ([]*models.LiveNote, error) {
	query := `SELECT ` + liveNoteColumns + ` FROM live_notes ORDER BY updated_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*models.LiveNote
	for rows.Next() {
		ln, err := scanLiveNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, ln)
	}

	return notes, rows.Err()
}

// SlugExists checks whether a live note already uses the given slug
func (r *LiveNoteRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM live_notes WHERE slug = $1)`, slug).Scan(&exists)
	return exists, err
}

// Update applies the provided title and content changes and refreshes
// updated_at; nil when not found.
func (r *LiveNoteRepository) Update(ctx context.Context, slug string, title, content *string) (*models.LiveNote, error) {
	query := `
		UPDATE live_notes SET
			title = COALESCE($2, title),
			content = COALESCE($3, content),
			updated_at = NOW()
		WHERE slug = $1
		RETURNING ` + liveNoteColumns
	return scanLiveNote(r.db.QueryRow(ctx, query, slug, title, content))
}

// SetContent persists editor content and refreshes updated_at
func (r *LiveNoteRepository) SetContent(ctx context.Context, slug, content string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE live_notes SET content = $2, updated_at = NOW() WHERE slug = $1`,
		slug, content)
	if err != nil {
		return fmt.Errorf("error persisting live note content: %w", err)
	}
	return nil
}

// SetActiveEditors records the current number of connected editors
func (r *LiveNoteRepository) SetActiveEditors(ctx context.Context, slug string, count int) error {
	_, err := r.db.Exec(ctx,
		`UPDATE live_notes SET active_editors = $2 WHERE slug = $1`,
		slug, count)
	if err != nil {
		return fmt.Errorf("error updating active editors: %w", err)
	}
	return nil
}

// Delete removes a live note
func (r *LiveNoteRepository) Delete(ctx context.Context, slug string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM live_notes WHERE slug = $1`, slug)
	if err != nil {
		return fmt.Errorf("error deleting live note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

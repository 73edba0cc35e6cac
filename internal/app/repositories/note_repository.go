package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/derin/notehub/internal/app/models"
)

// NoteRepository handles database operations for uploaded notes
type NoteRepository struct {
	db *pgxpool.Pool
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(db *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{
		db: db,
	}
}

const noteColumns = `
	n.id, n.title, n.slug, n.description, n.filename, n.stored_filename,
	n.file_type, n.file_size, n.thumbnail, n.unit_id, n.view_count,
	n.download_count, n.uploaded_at
`

func scanNote(row pgx.Row) (*models.Note, error) {
	var n models.Note
	err := row.Scan(
		&n.ID, &n.Title, &n.Slug, &n.Description, &n.Filename, &n.StoredFilename,
		&n.FileType, &n.FileSize, &n.Thumbnail, &n.UnitID, &n.ViewCount,
		&n.DownloadCount, &n.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}

// breadcrumbJoin extends a notes query with ancestor names.
const breadcrumbJoin = `
	JOIN units u ON u.id = n.unit_id
	JOIN subjects sub ON sub.id = u.subject_id
	JOIN semesters sem ON sem.id = sub.semester_id
	JOIN departments d ON d.id = sem.department_id
`

const breadcrumbColumns = noteColumns + `,
	u.name AS unit_name, sub.name AS subject_name, sub.slug AS subject_slug,
	sem.number AS semester_number, d.name AS department_name, d.slug AS department_slug
`

func scanNoteWithBreadcrumb(row pgx.Row) (*models.NoteWithBreadcrumb, error) {
	var n models.NoteWithBreadcrumb
	err := row.Scan(
		&n.ID, &n.Title, &n.Slug, &n.Description, &n.Filename, &n.StoredFilename,
		&n.FileType, &n.FileSize, &n.Thumbnail, &n.UnitID, &n.ViewCount,
		&n.DownloadCount, &n.UploadedAt,
		&n.UnitName, &n.SubjectName, &n.SubjectSlug,
		&n.SemesterNumber, &n.DepartmentName, &n.DepartmentSlug,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}

func (r *NoteRepository) queryBreadcrumbs(ctx context.Context, sql string, args ...interface{}) ([]*models.NoteWithBreadcrumb, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*models.NoteWithBreadcrumb
	for rows.Next() {
		n, err := scanNoteWithBreadcrumb(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}

	return notes, rows.Err()
}

// Create inserts a new note record
func (r *NoteRepository) Create(ctx context.Context, note *models.Note) error {
	query := `
		INSERT INTO notes (title, slug, description, filename, stored_filename,
			file_type, file_size, thumbnail, unit_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, uploaded_at
	`
	err := r.db.QueryRow(ctx, query,
		note.Title, note.Slug, note.Description, note.Filename, note.StoredFilename,
		note.FileType, note.FileSize, note.Thumbnail, note.UnitID,
	).Scan(&note.ID, &note.UploadedAt)
	if err != nil {
		return fmt.Errorf("error creating note: %w", err)
	}
	return nil
}

// GetByID retrieves a note without touching its counters; nil when not found
func (r *NoteRepository) GetByID(ctx context.Context, id int64) (*models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes n WHERE n.id = $1`
	return scanNote(r.db.QueryRow(ctx, query, id))
}

// GetByIDAndIncrementView atomically bumps view_count and returns the
// updated note; nil when not found.
func (r *NoteRepository) GetByIDAndIncrementView(ctx context.Context, id int64) (*models.Note, error) {
	query := `
		UPDATE notes n SET view_count = view_count + 1
		WHERE n.id = $1
		RETURNING ` + noteColumns
	return scanNote(r.db.QueryRow(ctx, query, id))
}

// IncrementDownloadCount atomically bumps download_count and returns the
// updated note; nil when not found.
func (r *NoteRepository) IncrementDownloadCount(ctx context.Context, id int64) (*models.Note, error) {
	query := `
		UPDATE notes n SET download_count = download_count + 1
		WHERE n.id = $1
		RETURNING ` + noteColumns
	return scanNote(r.db.QueryRow(ctx, query, id))
}

// GetByUnitID retrieves a unit's notes, newest upload first
func (r *NoteRepository) GetByUnitID(ctx context.Context, unitID int64) ([]*models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes n WHERE n.unit_id = $1 ORDER BY n.uploaded_at DESC`

	rows, err := r.db.Query(ctx, query, unitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}

	return notes, rows.Err()
}

// GetRecent retrieves the most recently uploaded notes with breadcrumbs
func (r *NoteRepository) GetRecent(ctx context.Context, limit int) ([]*models.NoteWithBreadcrumb, error) {
	query := `SELECT ` + breadcrumbColumns + ` FROM notes n ` + breadcrumbJoin + `
		ORDER BY n.uploaded_at DESC LIMIT $1`
	return r.queryBreadcrumbs(ctx, query, limit)
}

// GetPopular retrieves the most viewed notes with breadcrumbs
func (r *NoteRepository) GetPopular(ctx context.Context, limit int) ([]*models.NoteWithBreadcrumb, error) {
	query := `SELECT ` + breadcrumbColumns + ` FROM notes n ` + breadcrumbJoin + `
		ORDER BY n.view_count DESC LIMIT $1`
	return r.queryBreadcrumbs(ctx, query, limit)
}

// Search retrieves notes matching the query in title or description,
// optionally narrowed to parts of the hierarchy, most viewed first,
// capped at limit.
func (r *NoteRepository) Search(ctx context.Context, query string, departmentID, semesterID, subjectID int64, limit int) ([]*models.NoteWithBreadcrumb, error) {
	sql := `SELECT ` + breadcrumbColumns + ` FROM notes n ` + breadcrumbJoin + `
		WHERE ($1 = '' OR n.title ILIKE '%' || $1 || '%' OR n.description ILIKE '%' || $1 || '%')
		  AND ($2 = 0 OR d.id = $2)
		  AND ($3 = 0 OR sem.id = $3)
		  AND ($4 = 0 OR sub.id = $4)
		ORDER BY n.view_count DESC
		LIMIT $5`
	return r.queryBreadcrumbs(ctx, sql, query, departmentID, semesterID, subjectID, limit)
}

// Delete removes a note row
func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/derin/notehub/internal/app/models"
	"github.com/derin/notehub/internal/db"
)

// SubjectRepository handles database operations for subjects
type SubjectRepository struct {
	db *pgxpool.Pool
}

// NewSubjectRepository creates a new subject repository
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{
		db: db,
	}
}

const subjectColumns = `
	sub.id, sub.name, sub.slug, sub.code, sub.description, sub.semester_id, sub.created_at,
	(SELECT COUNT(*) FROM units u WHERE u.subject_id = sub.id) AS unit_count
`

func scanSubject(row pgx.Row) (*models.Subject, error) {
	var s models.Subject
	err := row.Scan(&s.ID, &s.Name, &s.Slug, &s.Code, &s.Description, &s.SemesterID, &s.CreatedAt, &s.UnitCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// Create inserts a new subject
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	query := `
		INSERT INTO subjects (name, slug, code, description, semester_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		subject.Name, subject.Slug, subject.Code, subject.Description, subject.SemesterID,
	).Scan(&subject.ID, &subject.CreatedAt)
	if err != nil {
		return err
	}
	return nil
}

// GetByID retrieves a subject by ID; nil when not found
func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	query := `SELECT ` + subjectColumns + ` FROM subjects sub WHERE sub.id = $1`
	return scanSubject(r.db.QueryRow(ctx, query, id))
}

// GetBySlugAndSemester retrieves a subject by slug within one semester;
// nil when not found.
func (r *SubjectRepository) GetBySlugAndSemester(ctx context.Context, slug string, semesterID int64) (*models.Subject, error) {
	query := `SELECT ` + subjectColumns + ` FROM subjects sub WHERE sub.slug = $1 AND sub.semester_id = $2`
	return scanSubject(r.db.QueryRow(ctx, query, slug, semesterID))
}

// GetBySemesterID retrieves a semester's subjects ordered by name
func (r *SubjectRepository) GetBySemesterID(ctx context.Context, semesterID int64) ([]*models.Subject, error) {
	query := `SELECT ` + subjectColumns + ` FROM subjects sub WHERE sub.semester_id = $1 ORDER BY sub.name`

	rows, err := r.db.Query(ctx, query, semesterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []*models.Subject
	for rows.Next() {
		s, err := scanSubject(rows)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}

	return subjects, rows.Err()
}

// SlugExistsInSemester reports whether the slug is taken within one
// semester; the same slug in another semester does not count.
func (r *SubjectRepository) SlugExistsInSemester(ctx context.Context, slug string, semesterID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM subjects WHERE slug = $1 AND semester_id = $2)`,
		slug, semesterID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking subject slug: %w", err)
	}
	return exists, nil
}

// Search retrieves subjects whose name or code matches the query
func (r *SubjectRepository) Search(ctx context.Context, query string) ([]*models.Subject, error) {
	sql := `SELECT ` + subjectColumns + ` FROM subjects sub
		WHERE sub.name ILIKE $1 OR sub.code ILIKE $1
		ORDER BY sub.name`

	rows, err := r.db.Query(ctx, sql, "%"+query+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []*models.Subject
	for rows.Next() {
		s, err := scanSubject(rows)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}

	return subjects, rows.Err()
}

// CollectNoteFiles returns the filenames of every note underneath the subject
func (r *SubjectRepository) CollectNoteFiles(ctx context.Context, subjectID int64) ([]NoteFile, error) {
	query := `
		SELECT n.stored_filename, n.thumbnail
		FROM notes n
		JOIN units u ON u.id = n.unit_id
		WHERE u.subject_id = $1
	`
	return collectNoteFiles(ctx, r.db, query, subjectID)
}

// DeleteCascade removes the subject and its units and notes, deepest first,
// inside one transaction.
func (r *SubjectRepository) DeleteCascade(ctx context.Context, subjectID int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		statements := []string{
			`DELETE FROM notes WHERE unit_id IN (SELECT id FROM units WHERE subject_id = $1)`,
			`DELETE FROM units WHERE subject_id = $1`,
			`DELETE FROM subjects WHERE id = $1`,
		}
		for _, stmt := range statements {
			if _, err := tx.Exec(ctx, stmt, subjectID); err != nil {
				return fmt.Errorf("error cascading subject delete: %w", err)
			}
		}
		return nil
	})
}

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

// UnitRepository handles database operations for units
type UnitRepository struct {
	db *pgxpool.Pool
}

// NewUnitRepository creates a new unit repository
func NewUnitRepository(db *pgxpool.Pool) *UnitRepository {
	return &UnitRepository{
		db: db,
	}
}

const unitColumns = `
	u.id, u.name, u.slug, u.number, u.description, u.subject_id, u.created_at,
	(SELECT COUNT(*) FROM notes n WHERE n.unit_id = u.id) AS note_count
`

func scanUnit(row pgx.Row) (*models.Unit, error) {
	var u models.Unit
	err := row.Scan(&u.ID, &u.Name, &u.Slug, &u.Number, &u.Description, &u.SubjectID, &u.CreatedAt, &u.NoteCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts a new unit
func (r *UnitRepository) Create(ctx context.Context, unit *models.Unit) error {
	query := `
		INSERT INTO units (name, slug, number, description, subject_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		unit.Name, unit.Slug, unit.Number, unit.Description, unit.SubjectID,
	).Scan(&unit.ID, &unit.CreatedAt)
	if err != nil {
		return err
	}
	return nil
}

// GetByID retrieves a unit by ID; nil when not found
func (r *UnitRepository) GetByID(ctx context.Context, id int64) (*models.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units u WHERE u.id = $1`
	return scanUnit(r.db.QueryRow(ctx, query, id))
}

// GetBySlugAndSubject retrieves a unit by slug within one subject; nil
// when not found.
func (r *UnitRepository) GetBySlugAndSubject(ctx context.Context, slug string, subjectID int64) (*models.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units u WHERE u.slug = $1 AND u.subject_id = $2`
	return scanUnit(r.db.QueryRow(ctx, query, slug, subjectID))
}

// GetBySubjectID retrieves a subject's units ordered by number
func (r *UnitRepository) GetBySubjectID(ctx context.Context, subjectID int64) ([]*models.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units u WHERE u.subject_id = $1 ORDER BY u.number`

	rows, err := r.db.Query(ctx, query, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var units []*models.Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}

	return units, rows.Err()
}

// NextNumber returns one past the highest unit number within the subject,
// or 1 when the subject has no units yet.
func (r *UnitRepository) NextNumber(ctx context.Context, subjectID int64) (int, error) {
	var next int
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(MAX(number), 0) + 1 FROM units WHERE subject_id = $1`, subjectID,
	).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("error computing next unit number: %w", err)
	}
	return next, nil
}

// SlugExistsInSubject reports whether the slug is taken within one subject
func (r *UnitRepository) SlugExistsInSubject(ctx context.Context, slug string, subjectID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM units WHERE slug = $1 AND subject_id = $2)`,
		slug, subjectID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking unit slug: %w", err)
	}
	return exists, nil
}

// CollectNoteFiles returns the filenames of every note in the unit
func (r *UnitRepository) CollectNoteFiles(ctx context.Context, unitID int64) ([]NoteFile, error) {
	query := `SELECT stored_filename, thumbnail FROM notes WHERE unit_id = $1`
	return collectNoteFiles(ctx, r.db, query, unitID)
}

// DeleteCascade removes the unit and its notes inside one transaction
func (r *UnitRepository) DeleteCascade(ctx context.Context, unitID int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM notes WHERE unit_id = $1`, unitID); err != nil {
			return fmt.Errorf("error deleting unit notes: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM units WHERE id = $1`, unitID); err != nil {
			return fmt.Errorf("error deleting unit: %w", err)
		}
		return nil
	})
}

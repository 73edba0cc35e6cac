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

// DepartmentRepository handles database operations for departments
type DepartmentRepository struct {
	db *pgxpool.Pool
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{
		db: db,
	}
}

const departmentColumns = `
	d.id, d.name, d.slug, d.description, d.icon, d.created_at,
	(SELECT COUNT(*) FROM semesters s WHERE s.department_id = d.id) AS semester_count
`

func scanDepartment(row pgx.Row) (*models.Department, error) {
	var d models.Department
	err := row.Scan(&d.ID, &d.Name, &d.Slug, &d.Description, &d.Icon, &d.CreatedAt, &d.SemesterCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

// CreateWithSemesters inserts a department together with its 8 semesters
// in one transaction; a partial failure leaves nothing behind.
func (r *DepartmentRepository) CreateWithSemesters(ctx context.Context, department *models.Department) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO departments (name, slug, description, icon)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		`
		err := tx.QueryRow(ctx, query,
			department.Name, department.Slug, department.Description, department.Icon,
		).Scan(&department.ID, &department.CreatedAt)
		if err != nil {
			return err
		}

		for n := 1; n <= models.SemestersPerDepartment; n++ {
			_, err := tx.Exec(ctx,
				`INSERT INTO semesters (number, name, department_id) VALUES ($1, $2, $3)`,
				n, fmt.Sprintf("Semester %d", n), department.ID,
			)
			if err != nil {
				return fmt.Errorf("error creating semester %d: %w", n, err)
			}
		}

		department.SemesterCount = models.SemestersPerDepartment
		return nil
	})
}

// GetBySlug retrieves a department by slug; nil when not found
func (r *DepartmentRepository) GetBySlug(ctx context.Context, slug string) (*models.Department, error) {
	query := `SELECT ` + departmentColumns + ` FROM departments d WHERE d.slug = $1`
	return scanDepartment(r.db.QueryRow(ctx, query, slug))
}

// GetAll retrieves all departments ordered by name
func (r *DepartmentRepository) GetAll(ctx context.Context) ([]*models.Department, error) {
	query := `SELECT ` + departmentColumns + ` FROM departments d ORDER BY d.name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []*models.Department
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return departments, nil
}

// Search retrieves departments whose name matches the query
func (r *DepartmentRepository) Search(ctx context.Context, query string) ([]*models.Department, error) {
	sql := `SELECT ` + departmentColumns + ` FROM departments d
		WHERE d.name ILIKE '%' || $1 || '%' ORDER BY d.name`

	rows, err := r.db.Query(ctx, sql, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []*models.Department
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}

	return departments, rows.Err()
}

// SlugExists reports whether any department carries the slug
func (r *DepartmentRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM departments WHERE slug = $1)`, slug,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking department slug: %w", err)
	}
	return exists, nil
}

// CollectNoteFiles returns the stored/thumbnail filenames of every note
// underneath the department, for storage cleanup before deletion.
func (r *DepartmentRepository) CollectNoteFiles(ctx context.Context, departmentID int64) ([]NoteFile, error) {
	query := `
		SELECT n.stored_filename, n.thumbnail
		FROM notes n
		JOIN units u ON u.id = n.unit_id
		JOIN subjects sub ON sub.id = u.subject_id
		JOIN semesters sem ON sem.id = sub.semester_id
		WHERE sem.department_id = $1
	`
	return collectNoteFiles(ctx, r.db, query, departmentID)
}

// DeleteCascade removes the department and every descendant row, deepest
// first, inside one transaction. File cleanup happens before this call.
func (r *DepartmentRepository) DeleteCascade(ctx context.Context, departmentID int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		statements := []string{
			`DELETE FROM notes WHERE unit_id IN (
				SELECT u.id FROM units u
				JOIN subjects sub ON sub.id = u.subject_id
				JOIN semesters sem ON sem.id = sub.semester_id
				WHERE sem.department_id = $1)`,
			`DELETE FROM units WHERE subject_id IN (
				SELECT sub.id FROM subjects sub
				JOIN semesters sem ON sem.id = sub.semester_id
				WHERE sem.department_id = $1)`,
			`DELETE FROM subjects WHERE semester_id IN (
				SELECT id FROM semesters WHERE department_id = $1)`,
			`DELETE FROM semesters WHERE department_id = $1`,
			`DELETE FROM departments WHERE id = $1`,
		}
		for _, stmt := range statements {
			if _, err := tx.Exec(ctx, stmt, departmentID); err != nil {
				return fmt.Errorf("error cascading department delete: %w", err)
			}
		}
		return nil
	})
}

// collectNoteFiles runs a two-column filename query and gathers the rows.
func collectNoteFiles(ctx context.Context, pool *pgxpool.Pool, query string, args ...interface{}) ([]NoteFile, error) {
	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error collecting note files: %w", err)
	}
	defer rows.Close()

	var files []NoteFile
	for rows.Next() {
		var f NoteFile
		if err := rows.Scan(&f.StoredFilename, &f.Thumbnail); err != nil {
			return nil, err
		}
		files = append(files, f)
	}

	return files, rows.Err()
}

package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/derin/notehub/internal/app/models"
)

// SemesterRepository handles database operations for semesters
type SemesterRepository struct {
	db *pgxpool.Pool
}

// NewSemesterRepository creates a new semester repository
func NewSemesterRepository(db *pgxpool.Pool) *SemesterRepository {
	return &SemesterRepository{
		db: db,
	}
}

const semesterColumns = `
	s.id, s.number, s.name, s.department_id, s.created_at,
	(SELECT COUNT(*) FROM subjects sub WHERE sub.semester_id = s.id) AS subject_count
`

func scanSemester(row pgx.Row) (*models.Semester, error) {
	var s models.Semester
	err := row.Scan(&s.ID, &s.Number, &s.Name, &s.DepartmentID, &s.CreatedAt, &s.SubjectCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// GetByID retrieves a semester by ID; nil when not found
func (r *SemesterRepository) GetByID(ctx context.Context, id int64) (*models.Semester, error) {
	query := `SELECT ` + semesterColumns + ` FROM semesters s WHERE s.id = $1`
	return scanSemester(r.db.QueryRow(ctx, query, id))
}

// GetByDepartmentAndNumber retrieves one of a department's semesters by
// its number; nil when not found.
func (r *SemesterRepository) GetByDepartmentAndNumber(ctx context.Context, departmentID int64, number int) (*models.Semester, error) {
	query := `SELECT ` + semesterColumns + ` FROM semesters s WHERE s.department_id = $1 AND s.number = $2`
	return scanSemester(r.db.QueryRow(ctx, query, departmentID, number))
}

// GetByDepartmentID retrieves a department's semesters ordered by number
func (r *SemesterRepository) GetByDepartmentID(ctx context.Context, departmentID int64) ([]*models.Semester, error) {
	query := `SELECT ` + semesterColumns + ` FROM semesters s WHERE s.department_id = $1 ORDER BY s.number`

	rows, err := r.db.Query(ctx, query, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var semesters []*models.Semester
	for rows.Next() {
		s, err := scanSemester(rows)
		if err != nil {
			return nil, err
		}
		semesters = append(semesters, s)
	}

	return semesters, rows.Err()
}

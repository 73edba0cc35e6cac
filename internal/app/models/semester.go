package models

import (
	"fmt"
	"time"
)

// Semester belongs to a department. Semesters are never created on their
// own: exactly 8 are inserted with their department and removed with it.
type Semester struct {
	ID           int64     `json:"id"`
	Number       int       `json:"number"`
	Name         string    `json:"name"`
	DepartmentID int64     `json:"department_id"`
	SubjectCount int       `json:"subject_count"`
	CreatedAt    time.Time `json:"-"`
}

// DisplayName returns the semester name, falling back to "Semester {n}".
func (s *Semester) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("Semester %d", s.Number)
}

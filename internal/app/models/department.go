package models

import "time"

// DefaultDepartmentIcon is used when a department is created without one.
const DefaultDepartmentIcon = "📚"

// SemestersPerDepartment is the fixed number of semesters every department
// owns; they are created together with the department.
const SemestersPerDepartment = 8

// Department is the top level of the content hierarchy
type Department struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	Icon          string    `json:"icon"`
	SemesterCount int       `json:"semester_count"`
	CreatedAt     time.Time `json:"-"`
}

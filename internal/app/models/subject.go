package models

import "time"

// Subject belongs to a semester. Its slug is unique within the semester,
// not globally.
type Subject struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	SemesterID  int64     `json:"semester_id"`
	UnitCount   int       `json:"unit_count"`
	CreatedAt   time.Time `json:"-"`
}

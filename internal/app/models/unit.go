package models

import "time"

// Unit belongs to a subject. Its slug is unique within the subject and its
// number defaults to one past the highest sibling number.
type Unit struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Number      int       `json:"number"`
	Description string    `json:"description"`
	SubjectID   int64     `json:"subject_id"`
	NoteCount   int       `json:"note_count"`
	CreatedAt   time.Time `json:"-"`
}

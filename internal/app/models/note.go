package models

import "time"

// Note is an uploaded study material (PDF or image) attached to a unit.
// StoredFilename is the collision-free name on disk; Filename keeps the
// original upload name for downloads.
type Note struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Slug           string    `json:"slug"`
	Description    string    `json:"description"`
	Filename       string    `json:"filename"`
	StoredFilename string    `json:"stored_filename"`
	FileType       string    `json:"file_type"`
	FileSize       int64     `json:"file_size"`
	Thumbnail      string    `json:"thumbnail,omitempty"`
	UnitID         int64     `json:"unit_id"`
	ViewCount      int64     `json:"view_count"`
	DownloadCount  int64     `json:"download_count"`
	UploadedAt     time.Time `json:"uploaded_at"`
}

// NoteWithBreadcrumb carries a note together with the names of its
// ancestors, for listings that link back into the hierarchy.
type NoteWithBreadcrumb struct {
	Note
	UnitName       string `json:"unit_name"`
	SubjectName    string `json:"subject_name"`
	SubjectSlug    string `json:"subject_slug"`
	SemesterNumber int    `json:"semester_number"`
	DepartmentName string `json:"department_name"`
	DepartmentSlug string `json:"department_slug"`
}

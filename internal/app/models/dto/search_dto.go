package dto

import "github.com/derin/notehub/internal/app/models"

// SearchFilters narrow a search to parts of the hierarchy. All fields are
// optional; a search with neither query nor filters returns empty results.
type SearchFilters struct {
	Query        string `form:"q"`
	DepartmentID int64  `form:"department"`
	SemesterID   int64  `form:"semester"`
	SubjectID    int64  `form:"subject"`
}

// SearchResults groups matches by entity type. Notes are capped at 20,
// most-viewed first.
type SearchResults struct {
	Notes       []*models.NoteWithBreadcrumb `json:"notes"`
	Subjects    []*models.Subject            `json:"subjects"`
	Departments []*models.Department         `json:"departments"`
}

// Stats carries platform-wide totals
type Stats struct {
	TotalDepartments int64 `json:"total_departments"`
	TotalSubjects    int64 `json:"total_subjects"`
	TotalUnits       int64 `json:"total_units"`
	TotalNotes       int64 `json:"total_notes"`
	TotalLiveNotes   int64 `json:"total_live_notes"`
	TotalViews       int64 `json:"total_views"`
	TotalDownloads   int64 `json:"total_downloads"`
}

// LoginResponse carries the admin session token
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
	Username  string `json:"username"`
}

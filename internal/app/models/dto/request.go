package dto

// CreateDepartmentRequest carries data for a new department
type CreateDepartmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// CreateSubjectRequest carries data for a new subject within a semester
type CreateSubjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

// CreateUnitRequest carries data for a new unit within a subject. Number
// is optional; when zero the next free number is assigned.
type CreateUnitRequest struct {
	Name        string `json:"name" binding:"required"`
	Number      int    `json:"number"`
	Description string `json:"description"`
}

// UploadNoteRequest carries the multipart form fields accompanying an
// uploaded file. Title defaults to the original filename when empty.
type UploadNoteRequest struct {
	Title       string `form:"title"`
	Description string `form:"description"`
}

// CreateLiveNoteRequest carries data for a new live note
type CreateLiveNoteRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
	UnitID  *int64 `json:"unit_id"`
}

// UpdateLiveNoteRequest carries a partial live note update; only non-nil
// fields are applied.
type UpdateLiveNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// LoginRequest carries admin credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/derin/notehub/internal/app/models/dto"
	"github.com/derin/notehub/internal/app/services"
	"github.com/derin/notehub/internal/middleware"
	"github.com/derin/notehub/internal/pkg/filestorage"
)

// NoteController handles uploaded note endpoints
type NoteController struct {
	noteService *services.NoteService
	storage     filestorage.Storage
}

// NewNoteController creates a new NoteController
func NewNoteController(noteService *services.NoteService, storage filestorage.Storage) *NoteController {
	return &NoteController{
		noteService: noteService,
		storage:     storage,
	}
}

// noteID parses the note ID path parameter. A response has already been
// written when ok is false.
func noteID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid note ID")
		errorDetail = errorDetail.WithDetails("Note ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// listLimit parses the optional limit query parameter. Missing or
// unusable values fall back to zero, letting the service apply its
// default.
func listLimit(ctx *gin.Context) int {
	limit, err := strconv.Atoi(ctx.Query("limit"))
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

// UploadNote handles a note file upload into a unit
// @Summary Upload a note
// @Description Uploads a PDF, PNG, JPG or JPEG file into the unit. A thumbnail is generated from the first PDF page or the image itself. The title defaults to the original filename.
// @Tags notes
// @Accept multipart/form-data
// @Produce json
// @Param departmentSlug path string true "Department slug"
// @Param semesterNumber path int true "Semester number (1-8)"
// @Param subjectSlug path string true "Subject slug"
// @Param unitSlug path string true "Unit slug"
// @Param file formData file true "Note file"
// @Param title formData string false "Note title"
// @Param description formData string false "Note description"
// @Success 201 {object} dto.APIResponse{data=models.Note} "Note uploaded successfully"
// @Failure 400 {object} dto.ErrorResponse "Missing file or invalid file type"
// @Failure 404 {object} dto.ErrorResponse "Unit not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments/{departmentSlug}/semesters/{semesterNumber}/subjects/{subjectSlug}/units/{unitSlug}/notes [post]
func (c *NoteController) UploadNote(ctx *gin.Context) {
	number, ok := semesterNumber(ctx)
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "No file uploaded")
		errorDetail = errorDetail.WithDetails("A file form field is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UploadNoteRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid note data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	note, err := c.noteService.UploadNote(ctx, ctx.Param("departmentSlug"), number, ctx.Param("subjectSlug"), ctx.Param("unitSlug"), fileHeader, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(note))
}

// GetNotes lists a unit's notes
// @Summary List a unit's notes
// @Description Retrieves the unit's notes, newest upload first
// @Tags notes
// @Produce json
// @Param departmentSlug path string true "Department slug"
// @Param semesterNumber path int true "Semester number (1-8)"
// @Param subjectSlug path string true "Subject slug"
// @Param unitSlug path string true "Unit slug"
// @Success 200 {object} dto.APIResponse{data=[]models.Note} "Notes retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Unit not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments/{departmentSlug}/semesters/{semesterNumber}/subjects/{subjectSlug}/units/{unitSlug}/notes [get]
func (c *NoteController) GetNotes(ctx *gin.Context) {
	number, ok := semesterNumber(ctx)
	if !ok {
		return
	}

	notes, err := c.noteService.GetNotes(ctx, ctx.Param("departmentSlug"), number, ctx.Param("subjectSlug"), ctx.Param("unitSlug"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(notes))
}

// ViewNote retrieves a note and counts the view
// @Summary Get note by ID
// @Description Retrieves a note and increments its view counter
// @Tags notes
// @Produce json
// @Param id path int true "Note ID"
// @Success 200 {object} dto.APIResponse{data=models.Note} "Note retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid note ID"
// @Failure 404 {object} dto.ErrorResponse "Note not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /notes/{id} [get]
func (c *NoteController) ViewNote(ctx *gin.Context) {
	id, ok := noteID(ctx)
	if !ok {
		return
	}

	note, err := c.noteService.ViewNote(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(note))
}

// DownloadNote serves the note file under its original name
// @Summary Download a note file
// @Description Streams the stored file under its original upload name and increments the download counter
// @Tags notes
// @Produce octet-stream
// @Param id path int true "Note ID"
// @Success 200 {file} file "Note file"
// @Failure 400 {object} dto.ErrorResponse "Invalid note ID"
// @Failure 404 {object} dto.ErrorResponse "Note not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /notes/{id}/download [get]
func (c *NoteController) DownloadNote(ctx *gin.Context) {
	id, ok := noteID(ctx)
	if !ok {
		return
	}

	note, err := c.noteService.DownloadNote(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.FileAttachment(c.storage.FilePath(note.StoredFilename), note.Filename)
}

// GetRecentNotes lists the latest uploads
// @Summary List recent notes
// @Description Retrieves the most recently uploaded notes with hierarchy breadcrumbs
// @Tags notes
// @Produce json
// @Param limit query int false "Maximum notes to return" default(8)
// @Success 200 {object} dto.APIResponse{data=[]models.NoteWithBreadcrumb} "Notes retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /notes/recent [get]
func (c *NoteController) GetRecentNotes(ctx *gin.Context) {
	notes, err := c.noteService.GetRecentNotes(ctx, listLimit(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(notes))
}

// GetPopularNotes lists the most viewed uploads
// @Summary List popular notes
// @Description Retrieves the most viewed notes with hierarchy breadcrumbs
// @Tags notes
// @Produce json
// @Param limit query int false "Maximum notes to return" default(8)
// @Success 200 {object} dto.APIResponse{data=[]models.NoteWithBreadcrumb} "Notes retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /notes/popular [get]
func (c *NoteController) GetPopularNotes(ctx *gin.Context) {
	notes, err := c.noteService.GetPopularNotes(ctx, listLimit(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(notes))
}

// DeleteNote removes a note
// @Summary Delete a note
// @Description Deletes the note row together with its stored file and thumbnail
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Note ID"
// @Success 200 {object} dto.APIResponse "Note deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid note ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Note not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /notes/{id} [delete]
func (c *NoteController) DeleteNote(ctx *gin.Context) {
	id, ok := noteID(ctx)
	if !ok {
		return
	}

	if err := c.noteService.DeleteNote(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Note deleted"))
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/derin/notehub/internal/app/models/dto"
	"github.com/derin/notehub/internal/app/services"
	"github.com/derin/notehub/internal/middleware"
)

// LiveNoteController handles collaborative live note endpoints
type LiveNoteController struct {
	liveNoteService *services.LiveNoteService
}

// NewLiveNoteController creates a new LiveNoteController
func NewLiveNoteController(liveNoteService *services.LiveNoteService) *LiveNoteController {
	return &LiveNoteController{
		liveNoteService: liveNoteService,
	}
}

// CreateLiveNote handles live note creation
// @Summary Create a live note
// @Description Creates a collaboratively editable note, optionally tied to a unit. The slug comes from the title, suffixed when taken.
// @Tags live-notes
// @Accept json
// @Produce json
// @Param request body dto.CreateLiveNoteRequest true "Live note information"
// @Success 201 {object} dto.APIResponse{data=models.LiveNote} "Live note created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Unit not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /live-notes [post]
func (c *LiveNoteController) CreateLiveNote(ctx *gin.Context) {
	var req dto.CreateLiveNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid live note data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	note, err := c.liveNoteService.CreateLiveNote(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(note))
}

// GetLiveNotes lists all live notes
// @Summary List live notes
// @Description Retrieves all live notes, most recently edited first
// @Tags live-notes
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.LiveNote} "Live notes retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /live-notes [get]
func (c *LiveNoteController) GetLiveNotes(ctx *gin.Context) {
	notes, err := c.liveNoteService.GetLiveNotes(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(notes))
}

// GetLiveNote retrieves a live note by slug
// @Summary Get live note by slug
// @Description Retrieves a live note and increments its view counter
// @Tags live-notes
// @Produce json
// @Param slug path string true "Live note slug"
// @Success 200 {object} dto.APIResponse{data=models.LiveNote} "Live note retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Live note not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /live-notes/{slug} [get]
func (c *LiveNoteController) GetLiveNote(ctx *gin.Context) {
	note, err := c.liveNoteService.GetLiveNote(ctx, ctx.Param("slug"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(note))
}

// UpdateLiveNote applies a partial live note update
// @Summary Update a live note
// @Description Updates the title and/or content; omitted fields stay unchanged
// @Tags live-notes
// @Accept json
// @Produce json
// @Param slug path string true "Live note slug"
// @Param request body dto.UpdateLiveNoteRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.LiveNote} "Live note updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Live note not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /live-notes/{slug} [put]
func (c *LiveNoteController) UpdateLiveNote(ctx *gin.Context) {
	var req dto.UpdateLiveNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid live note data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	note, err := c.liveNoteService.UpdateLiveNote(ctx, ctx.Param("slug"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(note))
}

// DeleteLiveNote removes a live note
// @Summary Delete a live note
// @Tags live-notes
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Live note slug"
// @Success 200 {object} dto.APIResponse "Live note deleted successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Live note not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /live-notes/{slug} [delete]
func (c *LiveNoteController) DeleteLiveNote(ctx *gin.Context) {
	if err := c.liveNoteService.DeleteLiveNote(ctx, ctx.Param("slug")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Live note deleted"))
}

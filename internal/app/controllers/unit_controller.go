package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/derin/notehub/internal/app/models/dto"
	"github.com/derin/notehub/internal/app/services"
	"github.com/derin/notehub/internal/middleware"
)

// UnitController handles unit endpoints within a subject
type UnitController struct {
	unitService *services.UnitService
}

// NewUnitController creates a new UnitController
func NewUnitController(unitService *services.UnitService) *UnitController {
	return &UnitController{
		unitService: unitService,
	}
}

// CreateUnit handles unit creation within a subject
// @Summary Create a new unit
// @Description Creates a unit in the given subject. When the number is omitted the unit takes the next free number.
// @Tags units
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param departmentSlug path string true "Department slug"
// @Param semesterNumber path int true "Semester number (1-8)"
// @Param subjectSlug path string true "Subject slug"
// @Param request body dto.CreateUnitRequest true "Unit information"
// @Success 201 {object} dto.APIResponse{data=models.Unit} "Unit created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or unit already exists in this subject"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments/{departmentSlug}/semesters/{semesterNumber}/subjects/{subjectSlug}/units [post]
func (c *UnitController) CreateUnit(ctx *gin.Context) {
	number, ok := semesterNumber(ctx)
	if !ok {
		return
	}

	var req dto.CreateUnitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid unit data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	unit, err := c.unitService.CreateUnit(ctx, ctx.Param("departmentSlug"), number, ctx.Param("subjectSlug"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(unit))
}

// GetUnits lists a subject's units
// @Summary List a subject's units
// @Tags units
// @Produce json
// @Param departmentSlug path string true "Department slug"
// @Param semesterNumber path int true "Semester number (1-8)"
// @Param subjectSlug path string true "Subject slug"
// @Success 200 {object} dto.APIResponse{data=[]models.Unit} "Units retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments/{departmentSlug}/semesters/{semesterNumber}/subjects/{subjectSlug}/units [get]
func (c *UnitController) GetUnits(ctx *gin.Context) {
	number, ok := semesterNumber(ctx)
	if !ok {
		return
	}

	units, err := c.unitService.GetUnits(ctx, ctx.Param("departmentSlug"), number, ctx.Param("subjectSlug"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(units))
}

// GetUnit retrieves a unit by slug
// @Summary Get unit by slug
// @Tags units
// @Produce json
// @Param departmentSlug path string true "Department slug"
// @Param semesterNumber path int true "Semester number (1-8)"
// @Param subjectSlug path string true "Subject slug"
// @Param unitSlug path string true "Unit slug"
// @Success 200 {object} dto.APIResponse{data=models.Unit} "Unit retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Unit not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments/{departmentSlug}/semesters/{semesterNumber}/subjects/{subjectSlug}/units/{unitSlug} [get]
func (c *UnitController) GetUnit(ctx *gin.Context) {
	number, ok := semesterNumber(ctx)
	if !ok {
		return
	}

	unit, err := c.unitService.GetUnit(ctx, ctx.Param("departmentSlug"), number, ctx.Param("subjectSlug"), ctx.Param("unitSlug"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(unit))
}

// DeleteUnit removes a unit and its notes
// @Summary Delete a unit
// @Description Deletes the unit with all notes. Uploaded files and thumbnails are removed from storage.
// @Tags units
// @Produce json
// @Security BearerAuth
// @Param departmentSlug path string true "Department slug"
// @Param semesterNumber path int true "Semester number (1-8)"
// @Param subjectSlug path string true "Subject slug"
// @Param unitSlug path string true "Unit slug"
// @Success 200 {object} dto.APIResponse "Unit deleted successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Unit not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments/{departmentSlug}/semesters/{semesterNumber}/subjects/{subjectSlug}/units/{unitSlug} [delete]
func (c *UnitController) DeleteUnit(ctx *gin.Context) {
	number, ok := semesterNumber(ctx)
	if !ok {
		return
	}

	if err := c.unitService.DeleteUnit(ctx, ctx.Param("departmentSlug"), number, ctx.Param("subjectSlug"), ctx.Param("unitSlug")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Unit deleted"))
}

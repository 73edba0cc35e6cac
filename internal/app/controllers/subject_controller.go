package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/derin/notehub/internal/app/models/dto"
	"github.com/derin/notehub/internal/app/services"
	"github.com/derin/notehub/internal/middleware"
)

// SubjectController handles subject endpoints within a semester
type SubjectController struct {
	subjectService *services.SubjectService
}

// NewSubjectController creates a new SubjectController
func NewSubjectController(subjectService *services.SubjectService) *SubjectController {
	return &SubjectController{
		subjectService: subjectService,
	}
}

// semesterNumber parses the semester number path parameter. A response
// has already been written when ok is false.
func semesterNumber(ctx *gin.Context) (int, bool) {
	number, err := strconv.Atoi(ctx.Param("semesterNumber"))
	if err != nil || number < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid semester number")
		errorDetail = errorDetail.WithDetails("Semester number must be a positive integer")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return number, true
}

// CreateSubject handles subject creation within a semester
// @Summary Create a new subject
// @Description Creates a subject in the given semester. The slug derived from the name must be unique within the semester.
// @Tags subjects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param departmentSlug path string true "Department slug"
// @Param semesterNumber path int true "Semester number (1-8)"
// @Param request body dto.CreateSubjectRequest true "Subject information"
// @Success 201 {object} dto.APIResponse{data=models.Subject} "Subject created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or subject already exists in this semester"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Department or semester not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments/{departmentSlug}/semesters/{semesterNumber}/subjects [post]
func (c *SubjectController) CreateSubject(ctx *gin.Context) {
	number, ok := semesterNumber(ctx)
	if !ok {
		return
	}

	var req dto.CreateSubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid subject data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	subject, err := c.subjectService.CreateSubject(ctx, ctx.Param("departmentSlug"), number, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(subject))
}

// GetSubjects lists a semester's subjects
// @Summary List a semester's subjects
// @Tags subjects
// @Produce json
// @Param departmentSlug path string true "Department slug"
// @Param semesterNumber path int true "Semester number (1-8)"
// @Success 200 {object} dto.APIResponse{data=[]models.Subject} "Subjects retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Department or semester not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments/{departmentSlug}/semesters/{semesterNumber}/subjects [get]
func (c *SubjectController) GetSubjects(ctx *gin.Context) {
	number, ok := semesterNumber(ctx)
	if !ok {
		return
	}

	subjects, err := c.subjectService.GetSubjects(ctx, ctx.Param("departmentSlug"), number)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(subjects))
}

// GetSubject retrieves a subject by slug
// @Summary Get subject by slug
// @Tags subjects
// @Produce json
// @Param departmentSlug path string true "Department slug"
// @Param semesterNumber path int true "Semester number (1-8)"
// @Param subjectSlug path string true "Subject slug"
// @Success 200 {object} dto.APIResponse{data=models.Subject} "Subject retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments/{departmentSlug}/semesters/{semesterNumber}/subjects/{subjectSlug} [get]
func (c *SubjectController) GetSubject(ctx *gin.Context) {
	number, ok := semesterNumber(ctx)
	if !ok {
		return
	}

	subject, err := c.subjectService.GetSubject(ctx, ctx.Param("departmentSlug"), number, ctx.Param("subjectSlug"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(subject))
}

// DeleteSubject removes a subject with its units and notes
// @Summary Delete a subject
// @Description Deletes the subject with all units and notes. Uploaded files and thumbnails are removed from storage.
// @Tags subjects
// @Produce json
// @Security BearerAuth
// @Param departmentSlug path string true "Department slug"
// @Param semesterNumber path int true "Semester number (1-8)"
// @Param subjectSlug path string true "Subject slug"
// @Success 200 {object} dto.APIResponse "Subject deleted successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments/{departmentSlug}/semesters/{semesterNumber}/subjects/{subjectSlug} [delete]
func (c *SubjectController) DeleteSubject(ctx *gin.Context) {
	number, ok := semesterNumber(ctx)
	if !ok {
		return
	}

	if err := c.subjectService.DeleteSubject(ctx, ctx.Param("departmentSlug"), number, ctx.Param("subjectSlug")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Subject deleted"))
}

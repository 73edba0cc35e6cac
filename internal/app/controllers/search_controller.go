package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/derin/notehub/internal/app/models/dto"
	"github.com/derin/notehub/internal/app/services"
	"github.com/derin/notehub/internal/middleware"
)

// SearchController handles search and platform stats endpoints
type SearchController struct {
	searchService *services.SearchService
}

// NewSearchController creates a new SearchController
func NewSearchController(searchService *services.SearchService) *SearchController {
	return &SearchController{
		searchService: searchService,
	}
}

// Search matches notes, subjects and departments
// @Summary Search the platform
// @Description Matches notes by title and description, subjects and departments by name. Note matches honor the hierarchy filters and come back most viewed first, capped at 20.
// @Tags search
// @Produce json
// @Param q query string false "Search query"
// @Param department query int false "Department ID filter"
// @Param semester query int false "Semester ID filter"
// @Param subject query int false "Subject ID filter"
// @Success 200 {object} dto.APIResponse{data=dto.SearchResults} "Search results"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter values"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /search [get]
func (c *SearchController) Search(ctx *gin.Context) {
	var filters dto.SearchFilters
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid search filters")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	results, err := c.searchService.Search(ctx, &filters)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(results))
}

// GetStats returns platform-wide totals
// @Summary Get platform stats
// @Description Returns counts of departments, subjects, units, notes and live notes plus total views and downloads
// @Tags search
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.Stats} "Platform stats"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /stats [get]
func (c *SearchController) GetStats(ctx *gin.Context) {
	stats, err := c.searchService.GetStats(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats))
}

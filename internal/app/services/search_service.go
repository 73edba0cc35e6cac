package services

import (
	"context"
	"strings"

	"github.com/derin/notehub/internal/app/models"
	"github.com/derin/notehub/internal/app/models/dto"
	"github.com/derin/notehub/internal/app/repositories"
)

// searchNoteLimit caps note matches per search.
const searchNoteLimit = 20

// SearchService implements cross-hierarchy search and platform stats
type SearchService struct {
	departmentRepo *repositories.DepartmentRepository
	subjectRepo    *repositories.SubjectRepository
	noteRepo       *repositories.NoteRepository
	statsRepo      *repositories.StatsRepository
}

// NewSearchService creates a new search service
func NewSearchService(
	departmentRepo *repositories.DepartmentRepository,
	subjectRepo *repositories.SubjectRepository,
	noteRepo *repositories.NoteRepository,
	statsRepo *repositories.StatsRepository,
) *SearchService {
	return &SearchService{
		departmentRepo: departmentRepo,
		subjectRepo:    subjectRepo,
		noteRepo:       noteRepo,
		statsRepo:      statsRepo,
	}
}

// Search matches notes, subjects and departments against the query.
// Notes honor the hierarchy filters and come back most-viewed first,
// capped at 20. An empty query with no filters returns empty results.
func (s *SearchService) Search(ctx context.Context, filters *dto.SearchFilters) (*dto.SearchResults, error) {
	query := strings.TrimSpace(filters.Query)
	results := &dto.SearchResults{
		Notes:       []*models.NoteWithBreadcrumb{},
		Subjects:    []*models.Subject{},
		Departments: []*models.Department{},
	}

	hasFilters := filters.DepartmentID != 0 || filters.SemesterID != 0 || filters.SubjectID != 0
	if query == "" && !hasFilters {
		return results, nil
	}

	notes, err := s.noteRepo.Search(ctx, query, filters.DepartmentID, filters.SemesterID, filters.SubjectID, searchNoteLimit)
	if err != nil {
		return nil, err
	}
	if notes != nil {
		results.Notes = notes
	}

	// Name matches only make sense with a query.
	if query != "" {
		subjects, err := s.subjectRepo.Search(ctx, query)
		if err != nil {
			return nil, err
		}
		if subjects != nil {
			results.Subjects = subjects
		}

		departments, err := s.departmentRepo.Search(ctx, query)
		if err != nil {
			return nil, err
		}
		if departments != nil {
			results.Departments = departments
		}
	}

	return results, nil
}

// GetStats returns platform-wide totals
func (s *SearchService) GetStats(ctx context.Context) (*dto.Stats, error) {
	return s.statsRepo.GetStats(ctx)
}

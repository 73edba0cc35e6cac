package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/derin/notehub/internal/app/models"
	"github.com/derin/notehub/internal/app/models/dto"
	"github.com/derin/notehub/internal/app/repositories"
	"github.com/derin/notehub/internal/pkg/apperrors"
	"github.com/derin/notehub/internal/pkg/dberrors"
	"github.com/derin/notehub/internal/pkg/filestorage"
	"github.com/derin/notehub/internal/pkg/slug"
)

// DepartmentService implements department and semester operations
type DepartmentService struct {
	departmentRepo *repositories.DepartmentRepository
	semesterRepo   *repositories.SemesterRepository
	storage        filestorage.Storage
}

// NewDepartmentService creates a new department service
func NewDepartmentService(
	departmentRepo *repositories.DepartmentRepository,
	semesterRepo *repositories.SemesterRepository,
	storage filestorage.Storage,
) *DepartmentService {
	return &DepartmentService{
		departmentRepo: departmentRepo,
		semesterRepo:   semesterRepo,
		storage:        storage,
	}
}

// CreateDepartment creates a department together with its 8 semesters
func (s *DepartmentService) CreateDepartment(ctx context.Context, req *dto.CreateDepartmentRequest) (*models.Department, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("department name is required")
	}

	departmentSlug := slug.Make(name)
	if departmentSlug == "" {
		return nil, apperrors.NewValidationError("department name must contain letters or digits")
	}

	exists, err := s.departmentRepo.SlugExists(ctx, departmentSlug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrDepartmentAlreadyExists
	}

	icon := strings.TrimSpace(req.Icon)
	if icon == "" {
		icon = models.DefaultDepartmentIcon
	}

	department := &models.Department{
		Name:          name,
		Slug:          departmentSlug,
		Description:   strings.TrimSpace(req.Description),
		Icon:          icon,
		SemesterCount: models.SemestersPerDepartment,
	}

	if err := s.departmentRepo.CreateWithSemesters(ctx, department); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrDepartmentAlreadyExists
		}
		return nil, err
	}

	log.Info().Str("slug", department.Slug).Msg("Department created")
	return department, nil
}

// GetDepartments lists all departments ordered by name
func (s *DepartmentService) GetDepartments(ctx context.Context) ([]*models.Department, error) {
	return s.departmentRepo.GetAll(ctx)
}

// GetDepartment retrieves one department by slug
func (s *DepartmentService) GetDepartment(ctx context.Context, departmentSlug string) (*models.Department, error) {
	department, err := s.departmentRepo.GetBySlug(ctx, departmentSlug)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, apperrors.ErrDepartmentNotFound
	}
	return department, nil
}

// GetSemesters lists a department's semesters ordered by number
func (s *DepartmentService) GetSemesters(ctx context.Context, departmentSlug string) ([]*models.Semester, error) {
	department, err := s.GetDepartment(ctx, departmentSlug)
	if err != nil {
		return nil, err
	}
	return s.semesterRepo.GetByDepartmentID(ctx, department.ID)
}

// DeleteDepartment removes a department with everything underneath it.
// Uploaded files and thumbnails are removed from storage first; the rows
// go in a single transaction afterwards.
func (s *DepartmentService) DeleteDepartment(ctx context.Context, departmentSlug string) error {
	department, err := s.GetDepartment(ctx, departmentSlug)
	if err != nil {
		return err
	}

	files, err := s.departmentRepo.CollectNoteFiles(ctx, department.ID)
	if err != nil {
		return err
	}
	removeNoteFiles(s.storage, files)

	if err := s.departmentRepo.DeleteCascade(ctx, department.ID); err != nil {
		return err
	}

	log.Info().Str("slug", departmentSlug).Int("files_removed", len(files)).Msg("Department deleted")
	return nil
}

// removeNoteFiles clears stored files and thumbnails from disk. Best
// effort: storage logs failures and the cascade proceeds regardless.
func removeNoteFiles(storage filestorage.Storage, files []repositories.NoteFile) {
	for _, f := range files {
		storage.Remove(f.StoredFilename)
		if f.Thumbnail != "" {
			storage.RemoveThumbnail(f.Thumbnail)
		}
	}
}

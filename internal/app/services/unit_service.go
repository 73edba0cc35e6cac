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

// UnitService implements unit operations within a subject
type UnitService struct {
	subjectService *SubjectService
	unitRepo       *repositories.UnitRepository
	storage        filestorage.Storage
}

// NewUnitService creates a new unit service
func NewUnitService(
	subjectService *SubjectService,
	unitRepo *repositories.UnitRepository,
	storage filestorage.Storage,
) *UnitService {
	return &UnitService{
		subjectService: subjectService,
		unitRepo:       unitRepo,
		storage:        storage,
	}
}

// CreateUnit creates a unit within a subject. When the request leaves the
// number at zero, the unit takes the next free number among its siblings.
func (s *UnitService) CreateUnit(ctx context.Context, departmentSlug string, semesterNumber int, subjectSlug string, req *dto.CreateUnitRequest) (*models.Unit, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("unit name is required")
	}

	unitSlug := slug.Make(name)
	if unitSlug == "" {
		return nil, apperrors.NewValidationError("unit name must contain letters or digits")
	}

	subject, err := s.subjectService.GetSubject(ctx, departmentSlug, semesterNumber, subjectSlug)
	if err != nil {
		return nil, err
	}

	exists, err := s.unitRepo.SlugExistsInSubject(ctx, unitSlug, subject.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrUnitAlreadyExists
	}

	number := req.Number
	if number <= 0 {
		number, err = s.unitRepo.NextNumber(ctx, subject.ID)
		if err != nil {
			return nil, err
		}
	}

	unit := &models.Unit{
		Name:        name,
		Slug:        unitSlug,
		Number:      number,
		Description: strings.TrimSpace(req.Description),
		SubjectID:   subject.ID,
	}

	if err := s.unitRepo.Create(ctx, unit); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrUnitAlreadyExists
		}
		return nil, err
	}

	log.Info().Str("slug", unit.Slug).Int64("subject_id", subject.ID).Msg("Unit created")
	return unit, nil
}

// GetUnits lists a subject's units ordered by number
func (s *UnitService) GetUnits(ctx context.Context, departmentSlug string, semesterNumber int, subjectSlug string) ([]*models.Unit, error) {
	subject, err := s.subjectService.GetSubject(ctx, departmentSlug, semesterNumber, subjectSlug)
	if err != nil {
		return nil, err
	}
	return s.unitRepo.GetBySubjectID(ctx, subject.ID)
}

// GetUnit retrieves one unit by slug within its subject
func (s *UnitService) GetUnit(ctx context.Context, departmentSlug string, semesterNumber int, subjectSlug, unitSlug string) (*models.Unit, error) {
	subject, err := s.subjectService.GetSubject(ctx, departmentSlug, semesterNumber, subjectSlug)
	if err != nil {
		return nil, err
	}

	unit, err := s.unitRepo.GetBySlugAndSubject(ctx, unitSlug, subject.ID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, apperrors.ErrUnitNotFound
	}
	return unit, nil
}

// DeleteUnit removes a unit and its notes, clearing uploaded files first
func (s *UnitService) DeleteUnit(ctx context.Context, departmentSlug string, semesterNumber int, subjectSlug, unitSlug string) error {
	unit, err := s.GetUnit(ctx, departmentSlug, semesterNumber, subjectSlug, unitSlug)
	if err != nil {
		return err
	}

	files, err := s.unitRepo.CollectNoteFiles(ctx, unit.ID)
	if err != nil {
		return err
	}
	removeNoteFiles(s.storage, files)

	if err := s.unitRepo.DeleteCascade(ctx, unit.ID); err != nil {
		return err
	}

	log.Info().Str("slug", unitSlug).Int("files_removed", len(files)).Msg("Unit deleted")
	return nil
}

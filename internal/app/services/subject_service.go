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

// SubjectService implements subject operations within a semester
type SubjectService struct {
	departmentRepo *repositories.DepartmentRepository
	semesterRepo   *repositories.SemesterRepository
	subjectRepo    *repositories.SubjectRepository
	storage        filestorage.Storage
}

// NewSubjectService creates a new subject service
func NewSubjectService(
	departmentRepo *repositories.DepartmentRepository,
	semesterRepo *repositories.SemesterRepository,
	subjectRepo *repositories.SubjectRepository,
	storage filestorage.Storage,
) *SubjectService {
	return &SubjectService{
		departmentRepo: departmentRepo,
		semesterRepo:   semesterRepo,
		subjectRepo:    subjectRepo,
		storage:        storage,
	}
}

// resolveSemester walks department slug and semester number down to the
// semester row.
func (s *SubjectService) resolveSemester(ctx context.Context, departmentSlug string, semesterNumber int) (*models.Semester, error) {
	department, err := s.departmentRepo.GetBySlug(ctx, departmentSlug)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, apperrors.ErrDepartmentNotFound
	}

	semester, err := s.semesterRepo.GetByDepartmentAndNumber(ctx, department.ID, semesterNumber)
	if err != nil {
		return nil, err
	}
	if semester == nil {
		return nil, apperrors.ErrSemesterNotFound
	}
	return semester, nil
}

// CreateSubject creates a subject within a semester. The slug only has to
// be unique among the semester's subjects.
func (s *SubjectService) CreateSubject(ctx context.Context, departmentSlug string, semesterNumber int, req *dto.CreateSubjectRequest) (*models.Subject, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("subject name is required")
	}

	subjectSlug := slug.Make(name)
	if subjectSlug == "" {
		return nil, apperrors.NewValidationError("subject name must contain letters or digits")
	}

	semester, err := s.resolveSemester(ctx, departmentSlug, semesterNumber)
	if err != nil {
		return nil, err
	}

	exists, err := s.subjectRepo.SlugExistsInSemester(ctx, subjectSlug, semester.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrSubjectAlreadyExists
	}

	subject := &models.Subject{
		Name:        name,
		Slug:        subjectSlug,
		Code:        strings.TrimSpace(req.Code),
		Description: strings.TrimSpace(req.Description),
		SemesterID:  semester.ID,
	}

	if err := s.subjectRepo.Create(ctx, subject); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrSubjectAlreadyExists
		}
		return nil, err
	}

	log.Info().Str("slug", subject.Slug).Int64("semester_id", semester.ID).Msg("Subject created")
	return subject, nil
}

// GetSubjects lists a semester's subjects ordered by name
func (s *SubjectService) GetSubjects(ctx context.Context, departmentSlug string, semesterNumber int) ([]*models.Subject, error) {
	semester, err := s.resolveSemester(ctx, departmentSlug, semesterNumber)
	if err != nil {
		return nil, err
	}
	return s.subjectRepo.GetBySemesterID(ctx, semester.ID)
}

// GetSubject retrieves one subject by slug within its semester
func (s *SubjectService) GetSubject(ctx context.Context, departmentSlug string, semesterNumber int, subjectSlug string) (*models.Subject, error) {
	semester, err := s.resolveSemester(ctx, departmentSlug, semesterNumber)
	if err != nil {
		return nil, err
	}

	subject, err := s.subjectRepo.GetBySlugAndSemester(ctx, subjectSlug, semester.ID)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, apperrors.ErrSubjectNotFound
	}
	return subject, nil
}

// DeleteSubject removes a subject with its units and notes. Files leave
// storage before the rows leave the database.
func (s *SubjectService) DeleteSubject(ctx context.Context, departmentSlug string, semesterNumber int, subjectSlug string) error {
	subject, err := s.GetSubject(ctx, departmentSlug, semesterNumber, subjectSlug)
	if err != nil {
		return err
	}

	files, err := s.subjectRepo.CollectNoteFiles(ctx, subject.ID)
	if err != nil {
		return err
	}
	removeNoteFiles(s.storage, files)

	if err := s.subjectRepo.DeleteCascade(ctx, subject.ID); err != nil {
		return err
	}

	log.Info().Str("slug", subjectSlug).Int("files_removed", len(files)).Msg("Subject deleted")
	return nil
}

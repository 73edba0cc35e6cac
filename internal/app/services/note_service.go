package services

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/derin/notehub/internal/app/models"
	"github.com/derin/notehub/internal/app/models/dto"
	"github.com/derin/notehub/internal/app/repositories"
	"github.com/derin/notehub/internal/pkg/apperrors"
	"github.com/derin/notehub/internal/pkg/filestorage"
	"github.com/derin/notehub/internal/pkg/slug"
)

// defaultListLimit is used for the recent and popular listings when the
// caller does not ask for a specific count.
const defaultListLimit = 8

// NoteService implements uploaded note operations
type NoteService struct {
	unitService *UnitService
	noteRepo    *repositories.NoteRepository
	storage     filestorage.Storage
}

// NewNoteService creates a new note service
func NewNoteService(
	unitService *UnitService,
	noteRepo *repositories.NoteRepository,
	storage filestorage.Storage,
) *NoteService {
	return &NoteService{
		unitService: unitService,
		noteRepo:    noteRepo,
		storage:     storage,
	}
}

// UploadNote validates and stores an uploaded file, derives a thumbnail,
// and records the note under its unit. When the database insert fails the
// stored file and thumbnail are removed again.
func (s *NoteService) UploadNote(ctx context.Context, departmentSlug string, semesterNumber int, subjectSlug, unitSlug string, fileHeader *multipart.FileHeader, req *dto.UploadNoteRequest) (*models.Note, error) {
	unit, err := s.unitService.GetUnit(ctx, departmentSlug, semesterNumber, subjectSlug, unitSlug)
	if err != nil {
		return nil, err
	}

	stored, err := s.storage.Save(fileHeader)
	if err != nil {
		return nil, err
	}

	fileType := filestorage.FileExtension(fileHeader.Filename)

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = strings.TrimSuffix(fileHeader.Filename, "."+fileType)
	}

	thumbnail := s.storage.CreateThumbnail(stored.StoredName, fileType)

	note := &models.Note{
		Title:          title,
		Slug:           slug.Make(title),
		Description:    strings.TrimSpace(req.Description),
		Filename:       fileHeader.Filename,
		StoredFilename: stored.StoredName,
		FileType:       fileType,
		FileSize:       stored.Size,
		Thumbnail:      thumbnail,
		UnitID:         unit.ID,
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		s.storage.Remove(stored.StoredName)
		if thumbnail != "" {
			s.storage.RemoveThumbnail(thumbnail)
		}
		return nil, err
	}

	log.Info().
		Int64("note_id", note.ID).
		Str("file_type", fileType).
		Int64("size", note.FileSize).
		Msg("Note uploaded")
	return note, nil
}

// GetNotes lists a unit's notes, newest first
func (s *NoteService) GetNotes(ctx context.Context, departmentSlug string, semesterNumber int, subjectSlug, unitSlug string) ([]*models.Note, error) {
	unit, err := s.unitService.GetUnit(ctx, departmentSlug, semesterNumber, subjectSlug, unitSlug)
	if err != nil {
		return nil, err
	}
	return s.noteRepo.GetByUnitID(ctx, unit.ID)
}

// ViewNote retrieves a note and counts the view
func (s *NoteService) ViewNote(ctx context.Context, id int64) (*models.Note, error) {
	note, err := s.noteRepo.GetByIDAndIncrementView(ctx, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperrors.ErrNoteNotFound
	}
	return note, nil
}

// DownloadNote retrieves a note for file serving and counts the download
func (s *NoteService) DownloadNote(ctx context.Context, id int64) (*models.Note, error) {
	note, err := s.noteRepo.IncrementDownloadCount(ctx, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperrors.ErrNoteNotFound
	}
	return note, nil
}

// GetRecentNotes lists the latest uploads with breadcrumbs
func (s *NoteService) GetRecentNotes(ctx context.Context, limit int) ([]*models.NoteWithBreadcrumb, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.noteRepo.GetRecent(ctx, limit)
}

// GetPopularNotes lists the most viewed uploads with breadcrumbs
func (s *NoteService) GetPopularNotes(ctx context.Context, limit int) ([]*models.NoteWithBreadcrumb, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.noteRepo.GetPopular(ctx, limit)
}

// DeleteNote removes a note row along with its stored file and thumbnail
func (s *NoteService) DeleteNote(ctx context.Context, id int64) error {
	note, err := s.noteRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if note == nil {
		return apperrors.ErrNoteNotFound
	}

	s.storage.Remove(note.StoredFilename)
	if note.Thumbnail != "" {
		s.storage.RemoveThumbnail(note.Thumbnail)
	}

	if err := s.noteRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Info().Int64("note_id", id).Msg("Note deleted")
	return nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/derin/notehub/internal/app/models"
	"github.com/derin/notehub/internal/app/models/dto"
	"github.com/derin/notehub/internal/app/repositories"
	"github.com/derin/notehub/internal/pkg/apperrors"
	"github.com/derin/notehub/internal/pkg/dberrors"
	"github.com/derin/notehub/internal/pkg/slug"
)

// LiveNoteService implements collaborative live note operations
type LiveNoteService struct {
	liveNoteRepo *repositories.LiveNoteRepository
	unitRepo     *repositories.UnitRepository
}

// NewLiveNoteService creates a new live note service
func NewLiveNoteService(
	liveNoteRepo *repositories.LiveNoteRepository,
	unitRepo *repositories.UnitRepository,
) *LiveNoteService {
	return &LiveNoteService{
		liveNoteRepo: liveNoteRepo,
		unitRepo:     unitRepo,
	}
}

// uniqueSlug derives a slug from the title, suffixing -1, -2, ... until
// no existing live note uses it.
func (s *LiveNoteService) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := slug.Make(title)
	if base == "" {
		return "", apperrors.NewValidationError("live note title must contain letters or digits")
	}

	candidate := base
	for i := 1; ; i++ {
		exists, err := s.liveNoteRepo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// CreateLiveNote creates a live note, optionally tied to a unit
func (s *LiveNoteService) CreateLiveNote(ctx context.Context, req *dto.CreateLiveNoteRequest) (*models.LiveNote, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("live note title is required")
	}

	if req.UnitID != nil {
		unit, err := s.unitRepo.GetByID(ctx, *req.UnitID)
		if err != nil {
			return nil, err
		}
		if unit == nil {
			return nil, apperrors.ErrUnitNotFound
		}
	}

	noteSlug, err := s.uniqueSlug(ctx, title)
	if err != nil {
		return nil, err
	}

	note := &models.LiveNote{
		Title:   title,
		Slug:    noteSlug,
		Content: req.Content,
		UnitID:  req.UnitID,
	}

	if err := s.liveNoteRepo.Create(ctx, note); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflictError("live note slug already taken")
		}
		return nil, err
	}

	log.Info().Str("slug", note.Slug).Msg("Live note created")
	return note, nil
}

// GetLiveNotes lists all live notes, most recently edited first
func (s *LiveNoteService) GetLiveNotes(ctx context.Context) ([]*models.LiveNote, error) {
	return s.liveNoteRepo.GetAll(ctx)
}

// GetLiveNote retrieves a live note by slug and counts the view
func (s *LiveNoteService) GetLiveNote(ctx context.Context, noteSlug string) (*models.LiveNote, error) {
	note, err := s.liveNoteRepo.GetBySlugAndIncrementView(ctx, noteSlug)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperrors.ErrLiveNoteNotFound
	}
	return note, nil
}

// UpdateLiveNote applies a partial title/content update
func (s *LiveNoteService) UpdateLiveNote(ctx context.Context, noteSlug string, req *dto.UpdateLiveNoteRequest) (*models.LiveNote, error) {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, apperrors.NewValidationError("live note title cannot be empty")
	}

	note, err := s.liveNoteRepo.Update(ctx, noteSlug, req.Title, req.Content)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperrors.ErrLiveNoteNotFound
	}
	return note, nil
}

// DeleteLiveNote removes a live note
func (s *LiveNoteService) DeleteLiveNote(ctx context.Context, noteSlug string) error {
	if err := s.liveNoteRepo.Delete(ctx, noteSlug); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrLiveNoteNotFound
		}
		return err
	}

	log.Info().Str("slug", noteSlug).Msg("Live note deleted")
	return nil
}

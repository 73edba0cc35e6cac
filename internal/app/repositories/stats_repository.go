package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/derin/notehub/internal/app/models/dto"
)

// StatsRepository aggregates platform-wide counts
type StatsRepository struct {
	db *pgxpool.Pool
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{
		db: db,
	}
}

// GetStats returns totals across the whole platform in a single query
func (r *StatsRepository) GetStats(ctx context.Context) (*dto.Stats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM departments),
			(SELECT COUNT(*) FROM subjects),
			(SELECT COUNT(*) FROM units),
			(SELECT COUNT(*) FROM notes),
			(SELECT COUNT(*) FROM live_notes),
			(SELECT COALESCE(SUM(view_count), 0) FROM notes),
			(SELECT COALESCE(SUM(download_count), 0) FROM notes)
	`
	var s dto.Stats
	err := r.db.QueryRow(ctx, query).Scan(
		&s.TotalDepartments, &s.TotalSubjects, &s.TotalUnits, &s.TotalNotes,
		&s.TotalLiveNotes, &s.TotalViews, &s.TotalDownloads,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// NoteFile pairs the on-disk names belonging to one note, collected before
// cascade deletions so storage cleanup can run first.
type NoteFile struct {
	StoredFilename string
	Thumbnail      string
}

// Repositories holds all the repository instances
type Repositories struct {
	AdminRepository      *AdminRepository
	DepartmentRepository *DepartmentRepository
	SemesterRepository   *SemesterRepository
	SubjectRepository    *SubjectRepository
	UnitRepository       *UnitRepository
	NoteRepository       *NoteRepository
	LiveNoteRepository   *LiveNoteRepository
	StatsRepository      *StatsRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		AdminRepository:      NewAdminRepository(db),
		DepartmentRepository: NewDepartmentRepository(db),
		SemesterRepository:   NewSemesterRepository(db),
		SubjectRepository:    NewSubjectRepository(db),
		UnitRepository:       NewUnitRepository(db),
		NoteRepository:       NewNoteRepository(db),
		LiveNoteRepository:   NewLiveNoteRepository(db),
		StatsRepository:      NewStatsRepository(db),
	}
}

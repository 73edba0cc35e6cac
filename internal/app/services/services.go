// Package services holds the business logic between HTTP controllers and
// repositories: hierarchy management with cascading deletes, upload and
// thumbnail orchestration, live note lifecycle, search and admin auth.
package services

import (
	"github.com/derin/notehub/internal/app/repositories"
	"github.com/derin/notehub/internal/pkg/auth"
	"github.com/derin/notehub/internal/pkg/filestorage"
)

// Services holds all the service instances
type Services struct {
	AuthService       *AuthService
	DepartmentService *DepartmentService
	SubjectService    *SubjectService
	UnitService       *UnitService
	NoteService       *NoteService
	LiveNoteService   *LiveNoteService
	SearchService     *SearchService
}

// NewServices initializes all services
func NewServices(repos *repositories.Repositories, storage filestorage.Storage, jwtService *auth.JWTService) *Services {
	departmentService := NewDepartmentService(repos.DepartmentRepository, repos.SemesterRepository, storage)
	subjectService := NewSubjectService(repos.DepartmentRepository, repos.SemesterRepository, repos.SubjectRepository, storage)
	unitService := NewUnitService(subjectService, repos.UnitRepository, storage)
	noteService := NewNoteService(unitService, repos.NoteRepository, storage)

	return &Services{
		AuthService:       NewAuthService(repos.AdminRepository, jwtService),
		DepartmentService: departmentService,
		SubjectService:    subjectService,
		UnitService:       unitService,
		NoteService:       noteService,
		LiveNoteService:   NewLiveNoteService(repos.LiveNoteRepository, repos.UnitRepository),
		SearchService:     NewSearchService(repos.DepartmentRepository, repos.SubjectRepository, repos.NoteRepository, repos.StatsRepository),
	}
}

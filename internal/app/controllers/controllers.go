// Package controllers maps HTTP requests onto the service layer and
// renders the standard response envelope.
package controllers

import (
	"github.com/derin/notehub/internal/app/services"
	"github.com/derin/notehub/internal/pkg/filestorage"
)

// Controllers holds all the controller instances
type Controllers struct {
	AuthController       *AuthController
	DepartmentController *DepartmentController
	SubjectController    *SubjectController
	UnitController       *UnitController
	NoteController       *NoteController
	LiveNoteController   *LiveNoteController
	SearchController     *SearchController
}

// NewControllers initializes all controllers
func NewControllers(svc *services.Services, storage filestorage.Storage) *Controllers {
	return &Controllers{
		AuthController:       NewAuthController(svc.AuthService),
		DepartmentController: NewDepartmentController(svc.DepartmentService),
		SubjectController:    NewSubjectController(svc.SubjectService),
		UnitController:       NewUnitController(svc.UnitService),
		NoteController:       NewNoteController(svc.NoteService, storage),
		LiveNoteController:   NewLiveNoteController(svc.LiveNoteService),
		SearchController:     NewSearchController(svc.SearchService),
	}
}

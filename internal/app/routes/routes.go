package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/derin/notehub/internal/app/controllers"
	"github.com/derin/notehub/internal/middleware"
	"github.com/derin/notehub/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrl *controllers.Controllers,
	wsHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", ctrl.AuthController.Login)
	}

	// --- Public read routes over the hierarchy ---
	departments := v1.Group("/departments")
	{
		departments.GET("", ctrl.DepartmentController.GetDepartments)
		departments.GET("/:departmentSlug", ctrl.DepartmentController.GetDepartment)
		departments.GET("/:departmentSlug/semesters", ctrl.DepartmentController.GetSemesters)

		semester := departments.Group("/:departmentSlug/semesters/:semesterNumber")
		{
			semester.GET("/subjects", ctrl.SubjectController.GetSubjects)
			semester.GET("/subjects/:subjectSlug", ctrl.SubjectController.GetSubject)
			semester.GET("/subjects/:subjectSlug/units", ctrl.UnitController.GetUnits)
			semester.GET("/subjects/:subjectSlug/units/:unitSlug", ctrl.UnitController.GetUnit)
			semester.GET("/subjects/:subjectSlug/units/:unitSlug/notes", ctrl.NoteController.GetNotes)

			// Uploads stay public; only hierarchy management needs the admin token.
			semester.POST("/subjects/:subjectSlug/units/:unitSlug/notes", ctrl.NoteController.UploadNote)
		}
	}

	// --- Note routes ---
	notes := v1.Group("/notes")
	{
		notes.GET("/recent", ctrl.NoteController.GetRecentNotes)
		notes.GET("/popular", ctrl.NoteController.GetPopularNotes)
		notes.GET("/:id", ctrl.NoteController.ViewNote)
		notes.GET("/:id/download", ctrl.NoteController.DownloadNote)
	}

	// --- Live note routes ---
	liveNotes := v1.Group("/live-notes")
	{
		liveNotes.POST("", ctrl.LiveNoteController.CreateLiveNote)
		liveNotes.GET("", ctrl.LiveNoteController.GetLiveNotes)
		liveNotes.GET("/:slug", ctrl.LiveNoteController.GetLiveNote)
		liveNotes.PUT("/:slug", ctrl.LiveNoteController.UpdateLiveNote)
	}

	// --- Search and stats ---
	v1.GET("/search", ctrl.SearchController.Search)
	v1.GET("/stats", ctrl.SearchController.GetStats)

	// --- Admin-only management routes ---
	admin := v1.Group("")
	admin.Use(authMiddleware.AdminAuth())
	{
		admin.POST("/departments", ctrl.DepartmentController.CreateDepartment)
		admin.DELETE("/departments/:departmentSlug", ctrl.DepartmentController.DeleteDepartment)

		adminSemester := admin.Group("/departments/:departmentSlug/semesters/:semesterNumber")
		{
			adminSemester.POST("/subjects", ctrl.SubjectController.CreateSubject)
			adminSemester.DELETE("/subjects/:subjectSlug", ctrl.SubjectController.DeleteSubject)
			adminSemester.POST("/subjects/:subjectSlug/units", ctrl.UnitController.CreateUnit)
			adminSemester.DELETE("/subjects/:subjectSlug/units/:unitSlug", ctrl.UnitController.DeleteUnit)
		}

		admin.DELETE("/notes/:id", ctrl.NoteController.DeleteNote)
		admin.DELETE("/live-notes/:slug", ctrl.LiveNoteController.DeleteLiveNote)
	}

	// --- Realtime editing ---
	router.GET("/ws/live-notes", wsHandler.HandleConnection)
}

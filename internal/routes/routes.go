package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskway/internal/handlers"
	"taskway/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	jwtSecret []byte,
	serviceKey string,
	taskHandler *handlers.TaskHandler,
	subtaskHandler *handlers.SubtaskHandler,
	profileHandler *handlers.ProfileHandler,
	exportHandler *handlers.ExportHandler,
	reminderHandler *handlers.ReminderHandler,
) *gin.Engine {

	// ---- public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ---- scheduler-only
	reminders := r.Group("/reminders", middleware.ServiceKeyMiddleware(serviceKey))
	{
		reminders.POST("/run", reminderHandler.Run)
	}

	// ---- user-authenticated
	auth := r.Group("/", middleware.AuthMiddleware(jwtSecret))

	tasks := auth.Group("/tasks")
	{
		tasks.POST("", taskHandler.Create)
		tasks.GET("", taskHandler.GetAll)
		tasks.GET("/:id", taskHandler.GetByID)
		tasks.PUT("/:id", taskHandler.Update)
		tasks.DELETE("/:id", taskHandler.Delete)

		tasks.POST("/:id/subtasks", subtaskHandler.Create)
		tasks.GET("/:id/subtasks", subtaskHandler.ListByTask)
	}

	subtasks := auth.Group("/subtasks")
	{
		subtasks.PUT("/:id", subtaskHandler.Update)
		subtasks.DELETE("/:id", subtaskHandler.Delete)
	}

	profile := auth.Group("/profile")
	{
		profile.GET("", profileHandler.Get)
		profile.PUT("", profileHandler.Update)
	}

	export := auth.Group("/export")
	{
		export.GET("/tasks.csv", exportHandler.CSV)
		export.GET("/tasks.pdf", exportHandler.PDF)
	}

	return r
}

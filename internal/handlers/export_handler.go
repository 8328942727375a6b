package handlers

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskway/internal/models"
	"taskway/internal/services"
)

type ExportHandler struct {
	tasks    services.TaskService
	profiles services.ProfileService
	export   services.ExportService
}

func NewExportHandler(tasks services.TaskService, profiles services.ProfileService, export services.ExportService) *ExportHandler {
	return &ExportHandler{tasks: tasks, profiles: profiles, export: export}
}

// filter query params mirror the task list endpoint so a filtered view can be
// exported as-is.
func exportFilter(c *gin.Context, userID string) models.TaskFilter {
	filter := models.TaskFilter{UserID: userID, Search: c.Query("search")}
	if v, ok := c.GetQuery("status"); ok {
		st := models.TaskStatus(v)
		filter.Status = &st
	}
	if v, ok := c.GetQuery("priority"); ok {
		p := models.TaskPriority(v)
		filter.Priority = &p
	}
	if v, ok := c.GetQuery("category"); ok {
		cat := v
		filter.Category = &cat
	}
	return filter
}

// GET /export/tasks.csv
func (h *ExportHandler) CSV(c *gin.Context) {
	userID := getUserID(c)

	tasks, err := h.tasks.GetAll(c.Request.Context(), exportFilter(c, userID))
	if err != nil {
		log.Printf("[export][csv][err] user=%s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve tasks"})
		return
	}

	var buf bytes.Buffer
	if err := h.export.WriteCSV(&buf, tasks); err != nil {
		log.Printf("[export][csv][err] render: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export tasks"})
		return
	}

	filename := fmt.Sprintf("tasks_export_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// GET /export/tasks.pdf
func (h *ExportHandler) PDF(c *gin.Context) {
	userID := getUserID(c)

	tasks, err := h.tasks.GetAll(c.Request.Context(), exportFilter(c, userID))
	if err != nil {
		log.Printf("[export][pdf][err] user=%s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve tasks"})
		return
	}

	owner := ""
	if profile, err := h.profiles.Get(c.Request.Context(), userID); err == nil && profile.FullName != nil {
		owner = *profile.FullName
	}

	var buf bytes.Buffer
	if err := h.export.WritePDF(&buf, owner, tasks, time.Now()); err != nil {
		log.Printf("[export][pdf][err] render: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export tasks"})
		return
	}

	filename := fmt.Sprintf("tasks_export_%s.pdf", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskway/internal/services"
)

// ReminderHandler exposes the dispatcher to the external scheduler. The run
// takes no caller parameters: it always evaluates against the invocation
// time.
type ReminderHandler struct {
	service services.ReminderService
}

func NewReminderHandler(service services.ReminderService) *ReminderHandler {
	return &ReminderHandler{service: service}
}

// POST /reminders/run
func (h *ReminderHandler) Run(c *gin.Context) {
	run, err := h.service.Run(c.Request.Context(), time.Now())
	if err != nil {
		log.Printf("[reminder][http][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"tasksProcessed": run.TasksProcessed,
		"emailResults":   run.Outcomes,
	})
}

package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskway/internal/models"
	"taskway/internal/services"
)

type SubtaskHandler struct {
	service services.SubtaskService
}

func NewSubtaskHandler(service services.SubtaskService) *SubtaskHandler {
	return &SubtaskHandler{service: service}
}

// POST /tasks/:id/subtasks
func (h *SubtaskHandler) Create(c *gin.Context) {
	userID := getUserID(c)
	taskID := c.Param("id")

	var req struct {
		Title string `json:"title" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, err := h.service.Add(c.Request.Context(), userID, taskID, req.Title)
	if err != nil {
		log.Printf("[subtask][create][err] task=%s: %v", taskID, err)
		respondRepoErr(c, err, "failed to add subtask")
		return
	}
	log.Printf("[subtask][create][ok] id=%s task=%s", sub.ID, taskID)
	c.JSON(http.StatusCreated, sub)
}

// GET /tasks/:id/subtasks
func (h *SubtaskHandler) ListByTask(c *gin.Context) {
	userID := getUserID(c)
	taskID := c.Param("id")

	subs, err := h.service.ListByTask(c.Request.Context(), userID, taskID)
	if err != nil {
		log.Printf("[subtask][list][err] task=%s: %v", taskID, err)
		respondRepoErr(c, err, "failed to list subtasks")
		return
	}
	c.JSON(http.StatusOK, subs)
}

// PUT /subtasks/:id
func (h *SubtaskHandler) Update(c *gin.Context) {
	userID := getUserID(c)
	id := c.Param("id")

	var req struct {
		Title     string `json:"title" binding:"required"`
		Completed bool   `json:"completed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub := &models.Subtask{ID: id, Title: req.Title, Completed: req.Completed}
	updated, err := h.service.Update(c.Request.Context(), userID, sub)
	if err != nil {
		log.Printf("[subtask][update][err] id=%s: %v", id, err)
		respondRepoErr(c, err, "failed to update subtask")
		return
	}
	log.Printf("[subtask][update][ok] id=%s completed=%v", id, req.Completed)
	c.JSON(http.StatusOK, updated)
}

// DELETE /subtasks/:id
func (h *SubtaskHandler) Delete(c *gin.Context) {
	userID := getUserID(c)
	id := c.Param("id")

	if err := h.service.Delete(c.Request.Context(), userID, id); err != nil {
		log.Printf("[subtask][delete][err] id=%s: %v", id, err)
		respondRepoErr(c, err, "failed to delete subtask")
		return
	}
	log.Printf("[subtask][delete][ok] id=%s", id)
	c.Status(http.StatusNoContent)
}

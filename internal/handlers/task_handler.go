package handlers

import (
	"html"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskway/internal/models"
	"taskway/internal/repositories"
	"taskway/internal/services"
	"taskway/internal/urgency"
)

type TaskHandler struct {
	service services.TaskService
	loc     *time.Location

	// optional Telegram notifications
	tg       *services.TelegramService
	profiles repositories.ProfileRepository
}

func NewTaskHandler(service services.TaskService, loc *time.Location, tg *services.TelegramService, profiles repositories.ProfileRepository) *TaskHandler {
	return &TaskHandler{service: service, loc: loc, tg: tg, profiles: profiles}
}

// taskView decorates a task with its urgency bucket so clients render the
// due-date badge without re-deriving it.
type taskView struct {
	models.Task
	Urgency      urgency.Kind `json:"urgency"`
	UrgencyLabel string       `json:"urgency_label,omitempty"`
}

func (h *TaskHandler) view(t models.Task, now time.Time) taskView {
	b := urgency.Classify(t.DueDate, t.Status, now, h.loc)
	return taskView{Task: t, Urgency: b.Kind, UrgencyLabel: b.Label()}
}

// POST /tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req struct {
		Title       string              `json:"title" binding:"required"`
		Description *string             `json:"description"`
		Status      models.TaskStatus   `json:"status"`   // pending|in_progress|completed
		Priority    models.TaskPriority `json:"priority"` // low|medium|high
		Category    string              `json:"category"`
		DueDate     string              `json:"due_date"` // RFC3339
	}

	userID := getUserID(c)
	log.Printf("[task][create] call by user=%s", userID)

	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Status != "" && !models.IsValidTaskStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}
	if req.Priority != "" && !models.IsValidTaskPriority(req.Priority) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority"})
		return
	}

	var due *time.Time
	if req.DueDate != "" {
		t, err := time.Parse(time.RFC3339, req.DueDate)
		if err != nil {
			log.Printf("[task][create][err] invalid due_date=%q: %v", req.DueDate, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due_date (RFC3339)"})
			return
		}
		due = &t
	}

	task := &models.Task{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Category:    req.Category,
		DueDate:     due,
	}

	created, err := h.service.Create(c.Request.Context(), task)
	if err != nil {
		log.Printf("[task][create][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create task"})
		return
	}
	log.Printf("[task][create][ok] id=%s title=%q", created.ID, created.Title)
	c.JSON(http.StatusCreated, h.view(*created, time.Now()))

	h.notifyOwner(c, created, "📌 New task")
}

// GET /tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	userID := getUserID(c)
	id := c.Param("id")

	task, err := h.service.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		log.Printf("[task][getByID][err] id=%s: %v", id, err)
		respondRepoErr(c, err, "failed to get task")
		return
	}
	c.JSON(http.StatusOK, h.view(*task, time.Now()))
}

// GET /tasks?status=&priority=&category=&search=
func (h *TaskHandler) GetAll(c *gin.Context) {
	userID := getUserID(c)
	log.Printf("[task][list] call by user=%s q=%v", userID, c.Request.URL.RawQuery)

	filter := models.TaskFilter{UserID: userID}
	if v, ok := c.GetQuery("status"); ok {
		st := models.TaskStatus(v)
		if !models.IsValidTaskStatus(st) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		filter.Status = &st
	}
	if v, ok := c.GetQuery("priority"); ok {
		p := models.TaskPriority(v)
		if !models.IsValidTaskPriority(p) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority"})
			return
		}
		filter.Priority = &p
	}
	if v, ok := c.GetQuery("category"); ok {
		cat := v
		filter.Category = &cat
	}
	filter.Search = c.Query("search")

	tasks, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		log.Printf("[task][list][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve tasks"})
		return
	}
	log.Printf("[task][list][ok] count=%d", len(tasks))

	now := time.Now()
	views := make([]taskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, h.view(t, now))
	}
	c.JSON(http.StatusOK, views)
}

// PUT /tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	userID := getUserID(c)
	id := c.Param("id")
	log.Printf("[task][update] call by user=%s id=%s", userID, id)

	current, err := h.service.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		log.Printf("[task][update][err] get current id=%s: %v", id, err)
		respondRepoErr(c, err, "failed to get task")
		return
	}

	var req struct {
		Title       *string              `json:"title"`
		Description *string              `json:"description"`
		Status      *models.TaskStatus   `json:"status"`
		Priority    *models.TaskPriority `json:"priority"`
		Category    *string              `json:"category"`
		DueDate     *string              `json:"due_date"` // RFC3339, "" clears
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][update][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := *current
	if req.Title != nil {
		update.Title = *req.Title
	}
	if req.Description != nil {
		update.Description = req.Description
	}
	if req.Status != nil {
		if !models.IsValidTaskStatus(*req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		update.Status = *req.Status
	}
	if req.Priority != nil {
		if !models.IsValidTaskPriority(*req.Priority) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority"})
			return
		}
		update.Priority = *req.Priority
	}
	if req.Category != nil {
		update.Category = *req.Category
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			update.DueDate = nil
		} else {
			t, err := time.Parse(time.RFC3339, *req.DueDate)
			if err != nil {
				log.Printf("[task][update][err] invalid due_date=%q: %v", *req.DueDate, err)
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due_date"})
				return
			}
			update.DueDate = &t
		}
	}

	updated, err := h.service.Update(c.Request.Context(), userID, id, &update)
	if err != nil {
		log.Printf("[task][update][err] save id=%s: %v", id, err)
		respondRepoErr(c, err, "failed to update task")
		return
	}
	log.Printf("[task][update][ok] id=%s", id)
	c.JSON(http.StatusOK, h.view(*updated, time.Now()))

	h.notifyOwner(c, updated, "✏️ Task updated")
}

// DELETE /tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	userID := getUserID(c)
	id := c.Param("id")
	log.Printf("[task][delete] call by user=%s id=%s", userID, id)

	current, err := h.service.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		log.Printf("[task][delete][err] get current id=%s: %v", id, err)
		respondRepoErr(c, err, "failed to get task")
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, id); err != nil {
		log.Printf("[task][delete][err] id=%s: %v", id, err)
		respondRepoErr(c, err, "failed to delete task")
		return
	}
	log.Printf("[task][delete][ok] id=%s", id)

	h.notifyOwner(c, current, "🗑️ Task deleted")

	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) notifyOwner(c *gin.Context, t *models.Task, prefix string) {
	if h.tg == nil || h.profiles == nil || t == nil {
		return
	}
	chatID, allow, err := h.profiles.GetTelegramSettings(c.Request.Context(), t.UserID)
	if err != nil {
		log.Printf("[task][notify] get telegram settings failed: user=%s err=%v", t.UserID, err)
		return
	}
	if !allow || chatID == 0 {
		return
	}
	due := "—"
	if t.DueDate != nil {
		due = t.DueDate.Format("2006-01-02 15:04")
	}
	msg := prefix + "\n" +
		"• <b>" + html.EscapeString(t.Title) + "</b>\n" +
		"• Status: <code>" + string(t.Status) + "</code>\n" +
		"• Priority: <code>" + string(t.Priority) + "</code>\n" +
		"• Due: <code>" + due + "</code>"
	_ = h.tg.SendMessage(chatID, msg)
}

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"taskway/internal/models"
	"taskway/internal/repositories"
)

type fakeTaskService struct {
	created   *models.Task
	gotFilter models.TaskFilter
	findErr   error
}

func (f *fakeTaskService) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	task.ID = "generated-id"
	f.created = task
	return task, nil
}

func (f *fakeTaskService) GetByID(ctx context.Context, userID, id string) (*models.Task, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return &models.Task{ID: id, UserID: userID, Title: "existing"}, nil
}

func (f *fakeTaskService) GetAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	f.gotFilter = filter
	return []models.Task{}, nil
}

func (f *fakeTaskService) Update(ctx context.Context, userID, id string, updateData *models.Task) (*models.Task, error) {
	return updateData, nil
}

func (f *fakeTaskService) Delete(ctx context.Context, userID, id string) error { return nil }

func newTaskRouter(svc *fakeTaskService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// stands in for the auth middleware
	r.Use(func(c *gin.Context) { c.Set("user_id", "user-1") })
	h := NewTaskHandler(svc, time.UTC, nil, nil)
	r.POST("/tasks", h.Create)
	r.GET("/tasks", h.GetAll)
	r.GET("/tasks/:id", h.GetByID)
	return r
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestTaskCreate(t *testing.T) {
	svc := &fakeTaskService{}
	router := newTaskRouter(svc)

	w := doJSON(router, http.MethodPost, "/tasks",
		`{"title":"Write report","priority":"high","due_date":"2025-03-12T18:00:00Z"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body=%s", w.Code, w.Body.String())
	}
	if svc.created == nil || svc.created.UserID != "user-1" {
		t.Fatalf("task not created for the authenticated user: %+v", svc.created)
	}
	if svc.created.DueDate == nil {
		t.Error("due date was not parsed")
	}
}

func TestTaskCreateValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"priority":"high"}`},
		{"bad due date", `{"title":"x","due_date":"next tuesday"}`},
		{"bad status", `{"title":"x","status":"someday"}`},
		{"bad priority", `{"title":"x","priority":"critical"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTaskRouter(&fakeTaskService{})
			w := doJSON(router, http.MethodPost, "/tasks", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400; body=%s", w.Code, w.Body.String())
			}
		})
	}
}

func TestTaskListFilterParams(t *testing.T) {
	svc := &fakeTaskService{}
	router := newTaskRouter(svc)

	w := doJSON(router, http.MethodGet, "/tasks?status=pending&priority=low&category=work&search=report", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	f := svc.gotFilter
	if f.UserID != "user-1" {
		t.Errorf("filter not scoped to user: %q", f.UserID)
	}
	if f.Status == nil || *f.Status != models.StatusPending {
		t.Errorf("status filter = %v", f.Status)
	}
	if f.Priority == nil || *f.Priority != models.PriorityLow {
		t.Errorf("priority filter = %v", f.Priority)
	}
	if f.Category == nil || *f.Category != "work" {
		t.Errorf("category filter = %v", f.Category)
	}
	if f.Search != "report" {
		t.Errorf("search filter = %q", f.Search)
	}
}

func TestTaskListRejectsBadFilter(t *testing.T) {
	router := newTaskRouter(&fakeTaskService{})
	w := doJSON(router, http.MethodGet, "/tasks?status=bogus", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestTaskResponseCarriesUrgency(t *testing.T) {
	svc := &fakeTaskService{}
	router := newTaskRouter(svc)

	w := doJSON(router, http.MethodGet, "/tasks/abc", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"urgency":"none"`) {
		t.Errorf("response missing urgency field: %s", w.Body.String())
	}
}

func TestTaskGetByIDNotFound(t *testing.T) {
	svc := &fakeTaskService{findErr: repositories.ErrNotFound}
	router := newTaskRouter(svc)

	w := doJSON(router, http.MethodGet, "/tasks/nope", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404; body=%s", w.Code, w.Body.String())
	}
}

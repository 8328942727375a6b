package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"taskway/internal/models"
	"taskway/internal/urgency"
)

type fakeTaskRepo struct {
	candidates []models.TaskWithOwner
	err        error
	gotWindow  urgency.Window
}

func (f *fakeTaskRepo) Store(ctx context.Context, task *models.Task) error { return nil }
func (f *fakeTaskRepo) FindByID(ctx context.Context, userID, id string) (*models.Task, error) {
	return nil, nil
}
func (f *fakeTaskRepo) FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	return nil, nil
}
func (f *fakeTaskRepo) Update(ctx context.Context, task *models.Task) error { return nil }
func (f *fakeTaskRepo) Delete(ctx context.Context, userID, id string) error { return nil }

func (f *fakeTaskRepo) ListDueWithOwner(ctx context.Context, w urgency.Window) ([]models.TaskWithOwner, error) {
	f.gotWindow = w
	if f.err != nil {
		return nil, f.err
	}
	return f.candidates, nil
}

// fakeSender records sends and fails for addresses listed in failFor. Safe
// for concurrent use, deliveries are issued from multiple goroutines.
type fakeSender struct {
	mu      sync.Mutex
	sent    []string
	failFor map[string]error
}

func (f *fakeSender) SendDueSoonReminder(email, fullName, taskTitle string, due time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failFor[email]; ok {
		return err
	}
	f.sent = append(f.sent, email)
	return nil
}

func strPtr(s string) *string { return &s }

func TestRunMixedOutcomes(t *testing.T) {
	now := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	due := now.Add(6 * time.Hour)

	repo := &fakeTaskRepo{candidates: []models.TaskWithOwner{
		{ID: "a", Title: "Task A", DueDate: due, OwnerEmail: strPtr("a@example.com"), OwnerName: strPtr("Alice")},
		{ID: "b", Title: "Task B", DueDate: due, OwnerEmail: strPtr("")},
		{ID: "c", Title: "Task C", DueDate: due, OwnerEmail: strPtr("c@example.com")},
	}}
	sender := &fakeSender{failFor: map[string]error{
		"c@example.com": errors.New("smtp: connection refused"),
	}}

	run, err := NewReminderService(repo, sender, time.UTC).Run(context.Background(), now)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if run.TasksProcessed != 3 {
		t.Errorf("TasksProcessed = %d, want 3", run.TasksProcessed)
	}
	if len(run.Outcomes) != 3 {
		t.Fatalf("outcomes = %d, want 3", len(run.Outcomes))
	}

	// Outcomes keep candidate order regardless of delivery concurrency.
	if run.Outcomes[0].Status != models.DeliverySent || run.Outcomes[0].TaskID != "a" {
		t.Errorf("outcome[0] = %+v, want sent for task a", run.Outcomes[0])
	}
	if run.Outcomes[1].Status != models.DeliverySkipped || run.Outcomes[1].TaskID != "b" {
		t.Errorf("outcome[1] = %+v, want skipped_no_recipient for task b", run.Outcomes[1])
	}
	if run.Outcomes[2].Status != models.DeliveryFailed || run.Outcomes[2].TaskID != "c" {
		t.Errorf("outcome[2] = %+v, want failed for task c", run.Outcomes[2])
	}
	if !strings.Contains(run.Outcomes[2].Error, "connection refused") {
		t.Errorf("failed outcome must carry the underlying reason, got %q", run.Outcomes[2].Error)
	}

	if len(sender.sent) != 1 || sender.sent[0] != "a@example.com" {
		t.Errorf("sent = %v, want exactly one delivery to a@example.com", sender.sent)
	}
}

func TestRunQueryFailureAbortsWithoutOutcomes(t *testing.T) {
	repo := &fakeTaskRepo{err: errors.New("connection reset by peer")}
	sender := &fakeSender{}

	run, err := NewReminderService(repo, sender, time.UTC).Run(context.Background(), time.Now())
	if err == nil {
		t.Fatal("expected a run-level error")
	}
	if run != nil {
		t.Fatalf("expected no partial run, got %+v", run)
	}
	if len(sender.sent) != 0 {
		t.Errorf("no deliveries must be attempted after a query failure, got %v", sender.sent)
	}
}

func TestRunEmptyWindow(t *testing.T) {
	repo := &fakeTaskRepo{}
	sender := &fakeSender{}

	run, err := NewReminderService(repo, sender, time.UTC).Run(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if run.TasksProcessed != 0 || len(run.Outcomes) != 0 {
		t.Errorf("expected empty run, got %+v", run)
	}
}

func TestRunComputesWindowFromNow(t *testing.T) {
	now := time.Date(2025, time.March, 10, 14, 30, 0, 0, time.UTC)
	repo := &fakeTaskRepo{}

	if _, err := NewReminderService(repo, &fakeSender{}, time.UTC).Run(context.Background(), now); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	wantStart := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	if !repo.gotWindow.Start.Equal(wantStart) {
		t.Errorf("window start = %v, want %v", repo.gotWindow.Start, wantStart)
	}
	if !repo.gotWindow.End.Equal(now.Add(24 * time.Hour)) {
		t.Errorf("window end = %v, want now+24h", repo.gotWindow.End)
	}
}

func TestRunMissingOwnerName(t *testing.T) {
	now := time.Now()
	repo := &fakeTaskRepo{candidates: []models.TaskWithOwner{
		{ID: "a", Title: "Task A", DueDate: now, OwnerEmail: strPtr("a@example.com"), OwnerName: nil},
	}}
	sender := &fakeSender{}

	run, err := NewReminderService(repo, sender, time.UTC).Run(context.Background(), now)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if run.Outcomes[0].Status != models.DeliverySent {
		t.Errorf("missing display name must not block delivery, got %+v", run.Outcomes[0])
	}
}

package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"taskway/internal/models"
	"taskway/internal/repositories"
	"taskway/internal/urgency"
)

// ReminderService runs one dispatch pass over tasks due within the lookahead
// window and emails each owner. Per-task failures are collected, never raised;
// only a store query failure fails the whole run.
type ReminderService interface {
	Run(ctx context.Context, now time.Time) (*models.ReminderRun, error)
}

type reminderService struct {
	tasks repositories.TaskRepository
	email EmailService
	loc   *time.Location
}

func NewReminderService(tasks repositories.TaskRepository, email EmailService, loc *time.Location) ReminderService {
	return &reminderService{tasks: tasks, email: email, loc: loc}
}

func (s *reminderService) Run(ctx context.Context, now time.Time) (*models.ReminderRun, error) {
	window := urgency.WindowFrom(now, s.loc)
	log.Printf("[reminder][run] window start=%s end=%s",
		window.Start.Format(time.RFC3339), window.End.Format(time.RFC3339))

	candidates, err := s.tasks.ListDueWithOwner(ctx, window)
	if err != nil {
		log.Printf("[reminder][run][err] query candidates: %v", err)
		return nil, fmt.Errorf("list due tasks: %w", err)
	}
	log.Printf("[reminder][run] candidates=%d", len(candidates))

	// One slot per candidate keeps outcome order stable and makes the
	// concurrent writes race-free without a lock.
	outcomes := make([]models.DeliveryOutcome, len(candidates))
	var wg sync.WaitGroup
	for i, c := range candidates {
		wg.Add(1)
		go func(i int, c models.TaskWithOwner) {
			defer wg.Done()
			outcomes[i] = s.deliver(c)
		}(i, c)
	}
	wg.Wait()

	return &models.ReminderRun{
		TasksProcessed: len(candidates),
		Outcomes:       outcomes,
	}, nil
}

func (s *reminderService) deliver(c models.TaskWithOwner) models.DeliveryOutcome {
	if c.OwnerEmail == nil || *c.OwnerEmail == "" {
		log.Printf("[reminder][skip] task=%s no recipient email", c.ID)
		return models.DeliveryOutcome{TaskID: c.ID, Status: models.DeliverySkipped}
	}
	email := *c.OwnerEmail

	name := ""
	if c.OwnerName != nil {
		name = *c.OwnerName
	}

	if err := s.email.SendDueSoonReminder(email, name, c.Title, c.DueDate); err != nil {
		log.Printf("[reminder][fail] task=%s to=%s: %v", c.ID, email, err)
		return models.DeliveryOutcome{
			TaskID: c.ID,
			Email:  email,
			Status: models.DeliveryFailed,
			Error:  err.Error(),
		}
	}

	log.Printf("[reminder][sent] task=%s to=%s", c.ID, email)
	return models.DeliveryOutcome{TaskID: c.ID, Email: email, Status: models.DeliverySent}
}

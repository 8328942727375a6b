package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"taskway/internal/models"
	"taskway/internal/repositories"
)

type SubtaskService interface {
	Add(ctx context.Context, userID, taskID, title string) (*models.Subtask, error)
	ListByTask(ctx context.Context, userID, taskID string) ([]models.Subtask, error)
	Update(ctx context.Context, userID string, sub *models.Subtask) (*models.Subtask, error)
	Delete(ctx context.Context, userID, id string) error
}

type subtaskService struct {
	repo repositories.SubtaskRepository
}

func NewSubtaskService(repo repositories.SubtaskRepository) SubtaskService {
	return &subtaskService{repo: repo}
}

func (s *subtaskService) Add(ctx context.Context, userID, taskID, title string) (*models.Subtask, error) {
	existing, err := s.repo.ListByTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	sub := &models.Subtask{
		ID:        uuid.NewString(),
		TaskID:    taskID,
		Title:     title,
		Position:  len(existing), // appended at the end of the checklist
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Store(ctx, userID, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *subtaskService) ListByTask(ctx context.Context, userID, taskID string) ([]models.Subtask, error) {
	return s.repo.ListByTask(ctx, userID, taskID)
}

func (s *subtaskService) Update(ctx context.Context, userID string, sub *models.Subtask) (*models.Subtask, error) {
	sub.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, userID, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *subtaskService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}

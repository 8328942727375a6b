package services

import (
	"context"
	"time"

	"taskway/internal/models"
	"taskway/internal/repositories"
)

type ProfileService interface {
	Get(ctx context.Context, userID string) (*models.Profile, error)
	Update(ctx context.Context, userID string, fullName, avatarURL *string) (*models.Profile, error)
}

type profileService struct {
	repo repositories.ProfileRepository
}

func NewProfileService(repo repositories.ProfileRepository) ProfileService {
	return &profileService{repo: repo}
}

func (s *profileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *profileService) Update(ctx context.Context, userID string, fullName, avatarURL *string) (*models.Profile, error) {
	profile, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if fullName != nil {
		profile.FullName = fullName
	}
	if avatarURL != nil {
		profile.AvatarURL = avatarURL
	}
	profile.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

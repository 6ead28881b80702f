package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/asklynk/qa-platform/internal/core/domain"
	"github.com/asklynk/qa-platform/internal/core/ports"
)

const defaultLeaderboardSize = 10

type userService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

// NewUserService returns a UserService implementation.
func NewUserService(users ports.UserRepository, log zerolog.Logger) ports.UserService {
	return &userService{users: users, log: log}
}

func (s *userService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, update ports.ProfileUpdate) (*domain.User, error) {
	user, err := s.users.UpdateProfile(ctx, userID, update)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", userID).Msg("profile updated")
	return user, nil
}

func (s *userService) TopUsers(ctx context.Context, limit int) ([]*domain.User, error) {
	if limit < 1 {
		limit = defaultLeaderboardSize
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return s.users.TopByReputation(ctx, limit)
}

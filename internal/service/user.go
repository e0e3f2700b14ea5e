package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/nc-news/internal/model"
	"github.com/sakif/nc-news/internal/repository"
)

// UserService serves the read-only users table.
type UserService struct {
	repo   repository.UserRepository
	logger *slog.Logger
}

// NewUserService creates a UserService backed by repo.
func NewUserService(repo repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		logFailure(s.logger, "failed to list users", err)
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// GetByUsername returns ErrNotFound with "User '<name>' does not exist!".
func (s *UserService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		logFailure(s.logger, "failed to get user", err, slog.String("username", username))
		return nil, err
	}
	return user, nil
}

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/nc-news/internal/model"
	"github.com/sakif/nc-news/internal/repository"
)

// TopicService serves the read-only topics table.
type TopicService struct {
	repo   repository.TopicRepository
	logger *slog.Logger
}

// NewTopicService creates a TopicService backed by repo.
func NewTopicService(repo repository.TopicRepository, logger *slog.Logger) *TopicService {
	return &TopicService{repo: repo, logger: logger}
}

// List returns every topic ordered by slug.
func (s *TopicService) List(ctx context.Context) ([]model.Topic, error) {
	topics, err := s.repo.List(ctx)
	if err != nil {
		logFailure(s.logger, "failed to list topics", err)
		return nil, fmt.Errorf("listing topics: %w", err)
	}
	return topics, nil
}

func (s *TopicService) GetBySlug(ctx context.Context, slug string) (*model.Topic, error) {
	topic, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		logFailure(s.logger, "failed to get topic", err, slog.String("slug", slug))
		return nil, err
	}
	return topic, nil
}

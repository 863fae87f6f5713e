package service

import (
	"context"
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"

	storieserrors "explorebd/internal/stories/errors"
	"explorebd/internal/stories/repository"
	"explorebd/pkg/config"
	mongodb "explorebd/pkg/db/mongo"
	apperrors "explorebd/pkg/errors"
	"explorebd/pkg/model"
)

type StoryService interface {
	Create(ctx context.Context, story *model.Story, authorEmail string) error
	GetByID(ctx context.Context, id string) (*model.Story, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Story, int64, error)
	GetRandom(ctx context.Context) ([]*model.Story, error)
}

type storyService struct {
	repo     repository.StoryRepository
	validate *validator.Validate
	cfg      *config.Config
}

func NewStoryService(repo repository.StoryRepository, cfg *config.Config) StoryService {
	return &storyService{
		repo:     repo,
		validate: validator.New(),
		cfg:      cfg,
	}
}

// Create stores a story attributed to the authenticated caller; the
// body's author field is ignored.
func (s *storyService) Create(ctx context.Context, story *model.Story, authorEmail string) error {
	story.AuthorEmail = authorEmail

	if err := s.validate.Struct(story); err != nil {
		s.cfg.Log.Warn("Story validation failed", "error", err)
		return apperrors.Validation("Invalid story", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, story); err != nil {
		s.cfg.Log.Error("Failed to create story", "error", err)
		return mongodb.StoreError("Failed to create story", err)
	}

	s.cfg.Log.Info("Story created", "id", story.ID, "author", story.AuthorEmail)
	return nil
}

func (s *storyService) GetByID(ctx context.Context, id string) (*model.Story, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Story ID cannot be empty")
	}

	story, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, storieserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Story", id)
		}
		if errors.Is(err, storieserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid story ID format")
		}
		return nil, mongodb.StoreError("Failed to retrieve story", err)
	}

	return story, nil
}

func (s *storyService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Story, int64, error) {
	var count int64
	var stories []*model.Story
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count stories", "error", errCount)
			errCount = mongodb.StoreError("Failed to count stories", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		stories, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list stories", "error", errFind)
			errFind = mongodb.StoreError("Failed to retrieve stories", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return stories, count, nil
}

func (s *storyService) GetRandom(ctx context.Context) ([]*model.Story, error) {
	stories, err := s.repo.Sample(ctx, config.RandomStorySample)
	if err != nil {
		s.cfg.Log.Error("Failed to sample stories", "error", err)
		return nil, mongodb.StoreError("Failed to retrieve random stories", err)
	}
	return stories, nil
}

package service

import (
	"context"
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"

	userserrors "explorebd/internal/users/errors"
	"explorebd/internal/users/repository"
	"explorebd/pkg/config"
	mongodb "explorebd/pkg/db/mongo"
	apperrors "explorebd/pkg/errors"
	"explorebd/pkg/model"
)

type UserService interface {
	SignIn(ctx context.Context, user *model.User) (bool, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.User, int64, error)
	RoleByEmail(ctx context.Context, email string) (string, error)
	SetRole(ctx context.Context, email string, role string) error
}

type userService struct {
	repo     repository.UserRepository
	validate *validator.Validate
	cfg      *config.Config
}

func NewUserService(repo repository.UserRepository, cfg *config.Config) UserService {
	return &userService{
		repo:     repo,
		validate: validator.New(),
		cfg:      cfg,
	}
}

func (s *userService) SignIn(ctx context.Context, user *model.User) (bool, error) {
	if user.Email == "" {
		return false, apperrors.InvalidInput("Email cannot be empty")
	}
	if err := s.validate.Var(user.Email, "email"); err != nil {
		return false, apperrors.InvalidInput("Invalid email format")
	}

	created, err := s.repo.Upsert(ctx, user)
	if err != nil {
		return false, mongodb.StoreError("Failed to record sign-in", err)
	}

	if created {
		s.cfg.Log.Info("New user created on first sign-in", "email", user.Email)
	}
	return created, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if email == "" {
		return nil, apperrors.InvalidInput("Email cannot be empty")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.NotFound("User")
		}
		return nil, mongodb.StoreError("Failed to retrieve user", err)
	}

	return user, nil
}

func (s *userService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.User, int64, error) {
	var count int64
	var users []*model.User
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count users", "error", errCount)
			errCount = mongodb.StoreError("Failed to count users", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		users, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list users", "error", errFind)
			errFind = mongodb.StoreError("Failed to retrieve users", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return users, count, nil
}

// RoleByEmail implements the access gate's role lookup.
func (s *userService) RoleByEmail(ctx context.Context, email string) (string, error) {
	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

func (s *userService) SetRole(ctx context.Context, email string, role string) error {
	if email == "" {
		return apperrors.InvalidInput("Email cannot be empty")
	}
	if err := s.validate.Var(role, "oneof=user guide admin"); err != nil {
		return apperrors.Validation("Invalid role", map[string]any{"role": role})
	}

	if err := s.repo.UpdateRole(ctx, email, role); err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return apperrors.NotFound("User")
		}
		return mongodb.StoreError("Failed to update user role", err)
	}

	s.cfg.Log.Info("User role updated", "email", email, "role", role)
	return nil
}

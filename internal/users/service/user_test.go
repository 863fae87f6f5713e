package service

import (
	"context"
	"testing"
	"time"

	userserrors "explorebd/internal/users/errors"
	"explorebd/pkg/config"
	apperrors "explorebd/pkg/errors"
	"explorebd/pkg/logger"
	"explorebd/pkg/model"
)

// Mock repository for testing
type mockUserRepository struct {
	upsertFunc      func(ctx context.Context, user *model.User) (bool, error)
	findByEmailFunc func(ctx context.Context, email string) (*model.User, error)
	findAllFunc     func(ctx context.Context, limit int, offset int64) ([]*model.User, error)
	countFunc       func(ctx context.Context) (int64, error)
	updateRoleFunc  func(ctx context.Context, email string, role string) error
}

func (m *mockUserRepository) Upsert(ctx context.Context, user *model.User) (bool, error) {
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, user)
	}
	return false, nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, userserrors.ErrNotFound
}

func (m *mockUserRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.User, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.User{}, nil
}

func (m *mockUserRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockUserRepository) UpdateRole(ctx context.Context, email string, role string) error {
	if m.updateRoleFunc != nil {
		return m.updateRoleFunc(ctx, email, role)
	}
	return nil
}

func newTestService(repo *mockUserRepository) UserService {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	cfg := &config.Config{
		Log:          log,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	return NewUserService(repo, cfg)
}

func TestSignIn_CreatesNewUser(t *testing.T) {
	repo := &mockUserRepository{
		upsertFunc: func(_ context.Context, _ *model.User) (bool, error) {
			return true, nil
		},
	}
	service := newTestService(repo)

	created, err := service.SignIn(context.Background(), &model.User{Email: "a@x.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("expected created=true on first sign-in")
	}
}

func TestSignIn_InvalidEmail(t *testing.T) {
	service := newTestService(&mockUserRepository{})

	for _, email := range []string{"", "not-an-email"} {
		if _, err := service.SignIn(context.Background(), &model.User{Email: email}); err == nil {
			t.Errorf("email %q: expected error", email)
		}
	}
}

func TestRoleByEmail(t *testing.T) {
	repo := &mockUserRepository{
		findByEmailFunc: func(_ context.Context, email string) (*model.User, error) {
			if email == "root@x.com" {
				return &model.User{Email: email, Role: model.RoleAdmin}, nil
			}
			return nil, userserrors.ErrNotFound
		},
	}
	service := newTestService(repo)

	role, err := service.RoleByEmail(context.Background(), "root@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role != model.RoleAdmin {
		t.Errorf("expected admin, got %s", role)
	}

	_, err = service.RoleByEmail(context.Background(), "ghost@x.com")
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected %s, got %s", apperrors.CodeNotFound, appErr.Code)
	}
}

func TestSetRole_Validation(t *testing.T) {
	service := newTestService(&mockUserRepository{})

	if err := service.SetRole(context.Background(), "a@x.com", "superuser"); err == nil {
		t.Error("unknown role must be rejected")
	}
	if err := service.SetRole(context.Background(), "", model.RoleGuide); err == nil {
		t.Error("empty email must be rejected")
	}
	if err := service.SetRole(context.Background(), "a@x.com", model.RoleGuide); err != nil {
		t.Errorf("valid role update should pass: %v", err)
	}
}

func TestSetRole_NotFound(t *testing.T) {
	repo := &mockUserRepository{
		updateRoleFunc: func(_ context.Context, _ string, _ string) error {
			return userserrors.ErrNotFound
		},
	}
	service := newTestService(repo)

	err := service.SetRole(context.Background(), "ghost@x.com", model.RoleGuide)
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected %s, got %s", apperrors.CodeNotFound, appErr.Code)
	}
}

func TestGetAll_ParallelCountAndFind(t *testing.T) {
	repo := &mockUserRepository{
		countFunc: func(_ context.Context) (int64, error) {
			time.Sleep(5 * time.Millisecond)
			return 7, nil
		},
		findAllFunc: func(_ context.Context, _ int, _ int64) ([]*model.User, error) {
			time.Sleep(5 * time.Millisecond)
			return []*model.User{{Email: "a@x.com"}}, nil
		},
	}
	service := newTestService(repo)

	for i := 0; i < 10; i++ {
		users, count, err := service.GetAll(context.Background(), 10, 0)
		if err != nil {
			t.Fatalf("iteration %d: unexpected error: %v", i, err)
		}
		if count != 7 || len(users) != 1 {
			t.Errorf("iteration %d: got count=%d users=%d", i, count, len(users))
		}
	}
}

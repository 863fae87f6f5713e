package service

import (
	"context"
	"errors"
	"testing"
	"time"

	guideserrors "explorebd/internal/guides/errors"
	"explorebd/pkg/config"
	apperrors "explorebd/pkg/errors"
	"explorebd/pkg/logger"
	"explorebd/pkg/model"
)

// Mock repository for testing
type mockGuideRepository struct {
	createFunc       func(ctx context.Context, application *model.GuideApplication) error
	findByIDFunc     func(ctx context.Context, id string) (*model.GuideApplication, error)
	findByStatusFunc func(ctx context.Context, status string, limit int, offset int64) ([]*model.GuideApplication, error)
	findAllFunc      func(ctx context.Context, limit int, offset int64) ([]*model.GuideApplication, error)
	countFunc        func(ctx context.Context, status string) (int64, error)
	sampleFunc       func(ctx context.Context, size int) ([]*model.GuideApplication, error)
	decideFunc       func(ctx context.Context, id string, status string) error
}

func (m *mockGuideRepository) Create(ctx context.Context, application *model.GuideApplication) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, application)
	}
	return nil
}

func (m *mockGuideRepository) FindByID(ctx context.Context, id string) (*model.GuideApplication, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, guideserrors.ErrNotFound
}

func (m *mockGuideRepository) FindByStatus(ctx context.Context, status string, limit int, offset int64) ([]*model.GuideApplication, error) {
	if m.findByStatusFunc != nil {
		return m.findByStatusFunc(ctx, status, limit, offset)
	}
	return []*model.GuideApplication{}, nil
}

func (m *mockGuideRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.GuideApplication, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.GuideApplication{}, nil
}

func (m *mockGuideRepository) Count(ctx context.Context, status string) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, status)
	}
	return 0, nil
}

func (m *mockGuideRepository) Sample(ctx context.Context, size int) ([]*model.GuideApplication, error) {
	if m.sampleFunc != nil {
		return m.sampleFunc(ctx, size)
	}
	return []*model.GuideApplication{}, nil
}

func (m *mockGuideRepository) Decide(ctx context.Context, id string, status string) error {
	if m.decideFunc != nil {
		return m.decideFunc(ctx, id, status)
	}
	return nil
}

type mockRoleUpdater struct {
	calls map[string]string
	err   error
}

func (m *mockRoleUpdater) SetRole(_ context.Context, email string, role string) error {
	if m.err != nil {
		return m.err
	}
	if m.calls == nil {
		m.calls = map[string]string{}
	}
	m.calls[email] = role
	return nil
}

const testApplicationID = "507f1f77bcf86cd799439033"

// pendingApplicationRepo serves a stored pending application for g@x.com.
func pendingApplicationRepo() *mockGuideRepository {
	return &mockGuideRepository{
		findByIDFunc: func(_ context.Context, _ string) (*model.GuideApplication, error) {
			return &model.GuideApplication{
				ID:     testApplicationID,
				Email:  "g@x.com",
				Status: model.ApplicationPending,
			}, nil
		},
	}
}

func newTestService(repo *mockGuideRepository, roles *mockRoleUpdater) GuideService {
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
	return NewGuideService(repo, roles, cfg)
}

func TestApply_SetsPendingStatus(t *testing.T) {
	var stored *model.GuideApplication
	repo := &mockGuideRepository{
		createFunc: func(_ context.Context, application *model.GuideApplication) error {
			stored = application
			return nil
		},
	}
	service := newTestService(repo, &mockRoleUpdater{})

	application := &model.GuideApplication{
		Email:  "g@x.com",
		Name:   "Guide One",
		Status: model.ApplicationActive, // must be ignored
	}
	if err := service.Apply(context.Background(), application); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stored.Status != model.ApplicationPending {
		t.Errorf("expected pending, got %s", stored.Status)
	}
}

func TestDecide_ApprovalPromotesRole(t *testing.T) {
	roles := &mockRoleUpdater{}
	service := newTestService(pendingApplicationRepo(), roles)

	result, err := service.Decide(context.Background(), testApplicationID, &model.GuideDecision{
		Status: model.ApplicationActive,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Warning != "" {
		t.Errorf("unexpected warning: %s", result.Warning)
	}
	if roles.calls["g@x.com"] != model.RoleGuide {
		t.Errorf("expected promotion of the stored applicant, got %v", roles.calls)
	}
}

// A decision body naming someone other than the stored applicant is
// rejected; it must never redirect the promotion.
func TestDecide_MismatchedEmailRejected(t *testing.T) {
	roles := &mockRoleUpdater{}
	service := newTestService(pendingApplicationRepo(), roles)

	_, err := service.Decide(context.Background(), testApplicationID, &model.GuideDecision{
		Status: model.ApplicationActive,
		Email:  "someone-else@x.com",
	})
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected %s, got %s", apperrors.CodeInvalidInput, appErr.Code)
	}
	if len(roles.calls) != 0 {
		t.Errorf("no role may be granted on a mismatched decision, got %v", roles.calls)
	}
}

func TestDecide_RejectionSkipsRoleUpdate(t *testing.T) {
	roles := &mockRoleUpdater{}
	service := newTestService(pendingApplicationRepo(), roles)

	result, err := service.Decide(context.Background(), testApplicationID, &model.GuideDecision{
		Status: model.ApplicationRejected,
		Email:  "g@x.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(roles.calls) != 0 {
		t.Errorf("rejection must not touch user roles, got %v", roles.calls)
	}
	if result.Status != model.ApplicationRejected {
		t.Errorf("expected rejected, got %s", result.Status)
	}
}

// Approval succeeded but the role write failed: the decision stands and
// the failure surfaces as a warning instead of being swallowed.
func TestDecide_RoleUpdateFailureSurfacesWarning(t *testing.T) {
	roles := &mockRoleUpdater{err: errors.New("user store down")}
	service := newTestService(pendingApplicationRepo(), roles)

	result, err := service.Decide(context.Background(), testApplicationID, &model.GuideDecision{
		Status: model.ApplicationActive,
	})
	if err != nil {
		t.Fatalf("decision itself must not fail: %v", err)
	}

	if result.Warning == "" {
		t.Error("expected a warning about the failed role update")
	}
	if result.Status != model.ApplicationActive {
		t.Errorf("expected active, got %s", result.Status)
	}
}

func TestDecide_AlreadyDecided(t *testing.T) {
	repo := &mockGuideRepository{
		decideFunc: func(_ context.Context, _ string, _ string) error {
			return guideserrors.ErrAlreadyDecided
		},
		findByIDFunc: func(_ context.Context, _ string) (*model.GuideApplication, error) {
			return &model.GuideApplication{ID: testApplicationID, Email: "g@x.com", Status: model.ApplicationRejected}, nil
		},
	}
	service := newTestService(repo, &mockRoleUpdater{})

	_, err := service.Decide(context.Background(), testApplicationID, &model.GuideDecision{
		Status: model.ApplicationActive,
		Email:  "g@x.com",
	})
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInvalidTransition {
		t.Errorf("expected %s, got %s", apperrors.CodeInvalidTransition, appErr.Code)
	}
}

func TestDecide_NotFound(t *testing.T) {
	service := newTestService(&mockGuideRepository{}, &mockRoleUpdater{})

	_, err := service.Decide(context.Background(), testApplicationID, &model.GuideDecision{
		Status: model.ApplicationActive,
	})
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected %s, got %s", apperrors.CodeNotFound, appErr.Code)
	}
}

func TestApprove_ResolvesEmailFromApplication(t *testing.T) {
	repo := &mockGuideRepository{
		findByIDFunc: func(_ context.Context, _ string) (*model.GuideApplication, error) {
			return &model.GuideApplication{
				ID:     testApplicationID,
				Email:  "g@x.com",
				Status: model.ApplicationPending,
			}, nil
		},
	}
	roles := &mockRoleUpdater{}
	service := newTestService(repo, roles)

	result, err := service.Approve(context.Background(), testApplicationID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Status != model.ApplicationActive {
		t.Errorf("expected active, got %s", result.Status)
	}
	if roles.calls["g@x.com"] != model.RoleGuide {
		t.Errorf("expected promotion of the stored applicant, got %v", roles.calls)
	}
}

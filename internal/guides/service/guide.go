package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	guideserrors "explorebd/internal/guides/errors"
	"explorebd/internal/guides/repository"
	"explorebd/pkg/config"
	mongodb "explorebd/pkg/db/mongo"
	apperrors "explorebd/pkg/errors"
	"explorebd/pkg/model"
)

// RoleUpdater is the slice of the user service the guide-approval side
// effect needs.
type RoleUpdater interface {
	SetRole(ctx context.Context, email string, role string) error
}

// DecisionResult reports the outcome of an admin decision. Warning is
// non-empty when the application update succeeded but the user-role
// side effect failed; the caller must see this rather than a silent drop.
type DecisionResult struct {
	Status  string `json:"status"`
	Warning string `json:"warning,omitempty"`
}

type GuideService interface {
	Apply(ctx context.Context, application *model.GuideApplication) error
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.GuideApplication, int64, error)
	GetByStatus(ctx context.Context, status string, limit int, offset int64) ([]*model.GuideApplication, int64, error)
	GetRandom(ctx context.Context) ([]*model.GuideApplication, error)
	Decide(ctx context.Context, id string, decision *model.GuideDecision) (*DecisionResult, error)
	Approve(ctx context.Context, id string) (*DecisionResult, error)
}

type guideService struct {
	repo     repository.GuideRepository
	roles    RoleUpdater
	validate *validator.Validate
	cfg      *config.Config
}

func NewGuideService(repo repository.GuideRepository, roles RoleUpdater, cfg *config.Config) GuideService {
	return &guideService{
		repo:     repo,
		roles:    roles,
		validate: validator.New(),
		cfg:      cfg,
	}
}

func (s *guideService) Apply(ctx context.Context, application *model.GuideApplication) error {
	application.Status = model.ApplicationPending

	if err := s.validate.Struct(application); err != nil {
		s.cfg.Log.Warn("Guide application validation failed", "error", err)
		return apperrors.Validation("Invalid guide application", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, application); err != nil {
		s.cfg.Log.Error("Failed to create guide application", "error", err)
		return mongodb.StoreError("Failed to submit guide application", err)
	}

	s.cfg.Log.Info("Guide application submitted", "id", application.ID, "email", application.Email)
	return nil
}

func (s *guideService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.GuideApplication, int64, error) {
	return s.list(ctx, "", limit, offset)
}

func (s *guideService) GetByStatus(ctx context.Context, status string, limit int, offset int64) ([]*model.GuideApplication, int64, error) {
	if err := s.validate.Var(status, "oneof=pending active rejected"); err != nil {
		return nil, 0, apperrors.InvalidInput("Invalid application status: " + status)
	}
	return s.list(ctx, status, limit, offset)
}

func (s *guideService) list(ctx context.Context, status string, limit int, offset int64) ([]*model.GuideApplication, int64, error) {
	count, err := s.repo.Count(ctx, status)
	if err != nil {
		s.cfg.Log.Error("Failed to count guide applications", "error", err)
		return nil, 0, mongodb.StoreError("Failed to count guide applications", err)
	}

	var applications []*model.GuideApplication
	if status == "" {
		applications, err = s.repo.FindAll(ctx, limit, offset)
	} else {
		applications, err = s.repo.FindByStatus(ctx, status, limit, offset)
	}
	if err != nil {
		s.cfg.Log.Error("Failed to list guide applications", "status", status, "error", err)
		return nil, 0, mongodb.StoreError("Failed to retrieve guide applications", err)
	}

	return applications, count, nil
}

func (s *guideService) GetRandom(ctx context.Context) ([]*model.GuideApplication, error) {
	applications, err := s.repo.Sample(ctx, config.RandomGuideSample)
	if err != nil {
		s.cfg.Log.Error("Failed to sample guide applications", "error", err)
		return nil, mongodb.StoreError("Failed to retrieve random guides", err)
	}
	return applications, nil
}

// Decide moves a pending application to active or rejected. Approval
// additionally promotes the applicant's user record to the guide role;
// a failure of that second write is surfaced as a warning, not hidden.
// The promotion target is always the stored applicant, never the
// request body.
func (s *guideService) Decide(ctx context.Context, id string, decision *model.GuideDecision) (*DecisionResult, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Application ID cannot be empty")
	}
	if err := s.validate.Struct(decision); err != nil {
		return nil, apperrors.Validation("Invalid decision", map[string]any{"error": err.Error()})
	}

	application, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, guideserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Guide application", id)
		}
		if errors.Is(err, guideserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid application ID format")
		}
		return nil, mongodb.StoreError("Failed to load guide application", err)
	}

	if decision.Email != "" && decision.Email != application.Email {
		return nil, apperrors.InvalidInput("decision email does not match the stored applicant")
	}

	if err := s.repo.Decide(ctx, id, decision.Status); err != nil {
		return nil, s.mapDecideError(ctx, id, err)
	}

	result := &DecisionResult{Status: decision.Status}

	if decision.Status == model.ApplicationActive {
		if err := s.roles.SetRole(ctx, application.Email, model.RoleGuide); err != nil {
			s.cfg.Log.Error("Guide approved but user role update failed",
				"id", id,
				"email", application.Email,
				"error", err,
			)
			result.Warning = fmt.Sprintf("application approved but role update for %s failed; retry via user role endpoint", application.Email)
			return result, nil
		}
	}

	s.cfg.Log.Info("Guide application decided", "id", id, "status", decision.Status)
	return result, nil
}

// Approve is the shorthand approval path.
func (s *guideService) Approve(ctx context.Context, id string) (*DecisionResult, error) {
	return s.Decide(ctx, id, &model.GuideDecision{Status: model.ApplicationActive})
}

func (s *guideService) mapDecideError(ctx context.Context, id string, err error) error {
	if errors.Is(err, guideserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid application ID format")
	}
	if errors.Is(err, guideserrors.ErrAlreadyDecided) {
		// No pending record matched: either it does not exist or it
		// already reached a terminal status.
		if _, findErr := s.repo.FindByID(ctx, id); findErr != nil {
			if errors.Is(findErr, guideserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Guide application", id)
			}
			return mongodb.StoreError("Failed to check guide application", findErr)
		}
		return apperrors.InvalidTransition("guide application already decided")
	}

	s.cfg.Log.Error("Failed to decide guide application", "id", id, "error", err)
	return mongodb.StoreError("Failed to decide guide application", err)
}

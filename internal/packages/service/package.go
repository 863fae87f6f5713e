package service

import (
	"context"
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"

	packageserrors "explorebd/internal/packages/errors"
	"explorebd/internal/packages/repository"
	"explorebd/pkg/config"
	mongodb "explorebd/pkg/db/mongo"
	apperrors "explorebd/pkg/errors"
	"explorebd/pkg/model"
)

type PackageService interface {
	Create(ctx context.Context, pkg *model.Package) error
	GetByID(ctx context.Context, id string) (*model.Package, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Package, int64, error)
	GetRandom(ctx context.Context) ([]*model.Package, error)
	Update(ctx context.Context, id string, pkg *model.Package) error
	Delete(ctx context.Context, id string) error
}

type packageService struct {
	repo     repository.PackageRepository
	validate *validator.Validate
	cfg      *config.Config
}

func NewPackageService(repo repository.PackageRepository, cfg *config.Config) PackageService {
	return &packageService{
		repo:     repo,
		validate: validator.New(),
		cfg:      cfg,
	}
}

func (s *packageService) Create(ctx context.Context, pkg *model.Package) error {
	if err := s.validate.Struct(pkg); err != nil {
		s.cfg.Log.Warn("Package validation failed", "error", err)
		return apperrors.Validation("Invalid package", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, pkg); err != nil {
		s.cfg.Log.Error("Failed to create package", "error", err)
		return mongodb.StoreError("Failed to create package", err)
	}

	s.cfg.Log.Info("Package created", "id", pkg.ID, "title", pkg.Title)
	return nil
}

func (s *packageService) GetByID(ctx context.Context, id string) (*model.Package, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Package ID cannot be empty")
	}

	pkg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, packageserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Package", id)
		}
		if errors.Is(err, packageserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid package ID format")
		}
		return nil, mongodb.StoreError("Failed to retrieve package", err)
	}

	return pkg, nil
}

func (s *packageService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Package, int64, error) {
	var count int64
	var packages []*model.Package
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count packages", "error", errCount)
			errCount = mongodb.StoreError("Failed to count packages", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		packages, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list packages", "error", errFind)
			errFind = mongodb.StoreError("Failed to retrieve packages", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return packages, count, nil
}

func (s *packageService) GetRandom(ctx context.Context) ([]*model.Package, error) {
	packages, err := s.repo.Sample(ctx, config.RandomPackageSample)
	if err != nil {
		s.cfg.Log.Error("Failed to sample packages", "error", err)
		return nil, mongodb.StoreError("Failed to retrieve random packages", err)
	}
	return packages, nil
}

func (s *packageService) Update(ctx context.Context, id string, pkg *model.Package) error {
	if id == "" {
		return apperrors.InvalidInput("Package ID cannot be empty")
	}
	if err := s.validate.Struct(pkg); err != nil {
		return apperrors.Validation("Invalid package", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Update(ctx, id, pkg); err != nil {
		if errors.Is(err, packageserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Package", id)
		}
		if errors.Is(err, packageserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid package ID format")
		}
		s.cfg.Log.Error("Failed to update package", "id", id, "error", err)
		return mongodb.StoreError("Failed to update package", err)
	}

	s.cfg.Log.Info("Package updated", "id", id)
	return nil
}

func (s *packageService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Package ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, packageserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Package", id)
		}
		if errors.Is(err, packageserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid package ID format")
		}
		s.cfg.Log.Error("Failed to delete package", "id", id, "error", err)
		return mongodb.StoreError("Failed to delete package", err)
	}

	s.cfg.Log.Info("Package deleted", "id", id)
	return nil
}

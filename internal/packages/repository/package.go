package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	packageserrors "explorebd/internal/packages/errors"
	"explorebd/pkg/config"
	mongodb "explorebd/pkg/db/mongo"
	"explorebd/pkg/model"
)

const (
	CollectionName = "packages"
)

type PackageRepository interface {
	Create(ctx context.Context, pkg *model.Package) error
	FindByID(ctx context.Context, id string) (*model.Package, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Package, error)
	Count(ctx context.Context) (int64, error)
	Sample(ctx context.Context, size int) ([]*model.Package, error)
	Update(ctx context.Context, id string, pkg *model.Package) error
	Delete(ctx context.Context, id string) error
}

type mongoPackageRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoPackageRepository(cfg *config.Config) PackageRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoPackageRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoPackageRepository) Create(ctx context.Context, pkg *model.Package) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	pkg.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	result, err := r.collection.InsertOne(ctx, pkg)
	if err != nil {
		return fmt.Errorf("failed to create package: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		pkg.ID = oid.Hex()
	}
	return nil
}

func (r *mongoPackageRepository) FindByID(ctx context.Context, id string) (*model.Package, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", packageserrors.ErrInvalidID, id)
	}

	var pkg model.Package
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&pkg)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, packageserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find package: %w", err)
	}

	return &pkg, nil
}

func (r *mongoPackageRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Package, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find packages: %w", err)
	}
	defer cursor.Close(ctx)

	var packages []*model.Package
	if err = cursor.All(ctx, &packages); err != nil {
		return nil, fmt.Errorf("failed to decode packages: %w", err)
	}

	return packages, nil
}

func (r *mongoPackageRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count packages: %w", err)
	}

	return count, nil
}

func (r *mongoPackageRepository) Sample(ctx context.Context, size int) ([]*model.Package, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	return mongodb.Sample[model.Package](ctx, r.collection, size)
}

func (r *mongoPackageRepository) Update(ctx context.Context, id string, pkg *model.Package) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", packageserrors.ErrInvalidID, id)
	}

	update := bson.M{"$set": bson.M{
		"title":       pkg.Title,
		"location":    pkg.Location,
		"price":       pkg.Price,
		"duration":    pkg.Duration,
		"description": pkg.Description,
		"images":      pkg.Images,
		"plan":        pkg.Plan,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update package: %w", err)
	}

	if result.MatchedCount == 0 {
		return packageserrors.ErrNotFound
	}
	return nil
}

func (r *mongoPackageRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", packageserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete package: %w", err)
	}

	if result.DeletedCount == 0 {
		return packageserrors.ErrNotFound
	}
	return nil
}

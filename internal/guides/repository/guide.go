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

	guideserrors "explorebd/internal/guides/errors"
	"explorebd/pkg/config"
	mongodb "explorebd/pkg/db/mongo"
	"explorebd/pkg/model"
)

const (
	CollectionName = "guides"
)

type GuideRepository interface {
	Create(ctx context.Context, application *model.GuideApplication) error
	FindByID(ctx context.Context, id string) (*model.GuideApplication, error)
	FindByStatus(ctx context.Context, status string, limit int, offset int64) ([]*model.GuideApplication, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.GuideApplication, error)
	Count(ctx context.Context, status string) (int64, error)
	Sample(ctx context.Context, size int) ([]*model.GuideApplication, error)
	Decide(ctx context.Context, id string, status string) error
}

type mongoGuideRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoGuideRepository(cfg *config.Config) GuideRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoGuideRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoGuideRepository) Create(ctx context.Context, application *model.GuideApplication) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	application.AppliedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, application)
	if err != nil {
		return fmt.Errorf("failed to create guide application: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		application.ID = oid.Hex()
	}
	return nil
}

func (r *mongoGuideRepository) FindByID(ctx context.Context, id string) (*model.GuideApplication, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", guideserrors.ErrInvalidID, id)
	}

	var application model.GuideApplication
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&application)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, guideserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find guide application: %w", err)
	}

	return &application, nil
}

func (r *mongoGuideRepository) FindByStatus(ctx context.Context, status string, limit int, offset int64) ([]*model.GuideApplication, error) {
	return r.find(ctx, bson.M{"status": status}, limit, offset)
}

func (r *mongoGuideRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.GuideApplication, error) {
	return r.find(ctx, bson.M{}, limit, offset)
}

func (r *mongoGuideRepository) find(ctx context.Context, filter bson.M, limit int, offset int64) ([]*model.GuideApplication, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "applied_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find guide applications: %w", err)
	}
	defer cursor.Close(ctx)

	var applications []*model.GuideApplication
	if err = cursor.All(ctx, &applications); err != nil {
		return nil, fmt.Errorf("failed to decode guide applications: %w", err)
	}

	return applications, nil
}

func (r *mongoGuideRepository) Count(ctx context.Context, status string) (int64, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count guide applications: %w", err)
	}

	return count, nil
}

func (r *mongoGuideRepository) Sample(ctx context.Context, size int) ([]*model.GuideApplication, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	return mongodb.Sample[model.GuideApplication](ctx, r.collection, size)
}

// Decide moves a pending application to a terminal status. The filter
// matches only pending records so concurrent decisions race safely: the
// loser observes no match.
func (r *mongoGuideRepository) Decide(ctx context.Context, id string, status string) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", guideserrors.ErrInvalidID, id)
	}

	filter := bson.M{
		"_id":    objectID,
		"status": model.ApplicationPending,
	}
	update := bson.M{
		"$set": bson.M{
			"status":     status,
			"decided_at": time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to decide guide application: %w", err)
	}

	if result.MatchedCount == 0 {
		return guideserrors.ErrAlreadyDecided
	}

	return nil
}

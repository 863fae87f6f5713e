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

	storieserrors "explorebd/internal/stories/errors"
	"explorebd/pkg/config"
	mongodb "explorebd/pkg/db/mongo"
	"explorebd/pkg/model"
)

const (
	CollectionName = "stories"
)

type StoryRepository interface {
	Create(ctx context.Context, story *model.Story) error
	FindByID(ctx context.Context, id string) (*model.Story, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Story, error)
	Count(ctx context.Context) (int64, error)
	Sample(ctx context.Context, size int) ([]*model.Story, error)
}

type mongoStoryRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoStoryRepository(cfg *config.Config) StoryRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoStoryRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoStoryRepository) Create(ctx context.Context, story *model.Story) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	story.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	result, err := r.collection.InsertOne(ctx, story)
	if err != nil {
		return fmt.Errorf("failed to create story: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		story.ID = oid.Hex()
	}
	return nil
}

func (r *mongoStoryRepository) FindByID(ctx context.Context, id string) (*model.Story, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", storieserrors.ErrInvalidID, id)
	}

	var story model.Story
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&story)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, storieserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find story: %w", err)
	}

	return &story, nil
}

func (r *mongoStoryRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Story, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find stories: %w", err)
	}
	defer cursor.Close(ctx)

	var stories []*model.Story
	if err = cursor.All(ctx, &stories); err != nil {
		return nil, fmt.Errorf("failed to decode stories: %w", err)
	}

	return stories, nil
}

func (r *mongoStoryRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count stories: %w", err)
	}

	return count, nil
}

func (r *mongoStoryRepository) Sample(ctx context.Context, size int) ([]*model.Story, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	return mongodb.Sample[model.Story](ctx, r.collection, size)
}

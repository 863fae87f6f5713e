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

	bookingserrors "explorebd/internal/bookings/errors"
	"explorebd/pkg/config"
	mongodb "explorebd/pkg/db/mongo"
	"explorebd/pkg/model"
)

const (
	CollectionName = "bookings"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	FindByCreator(ctx context.Context, email string, limit int, offset int64) ([]*model.Booking, error)
	CountByCreator(ctx context.Context, email string) (int64, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, error)
	Count(ctx context.Context) (int64, error)
	MarkInReview(ctx context.Context, id string) error
	AssignGuide(ctx context.Context, id string, guideEmail string) error
	DecideByGuide(ctx context.Context, id string, guideEmail string, status string) error
	ConfirmPayment(ctx context.Context, id string, createdBy string, payment *model.Payment) error
	Delete(ctx context.Context, id string, createdBy string) error
}

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	booking.CreatedAt = now
	booking.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid.Hex()
	}
	return nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	var booking model.Booking
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return &booking, nil
}

func (r *mongoBookingRepository) FindByCreator(ctx context.Context, email string, limit int, offset int64) ([]*model.Booking, error) {
	return r.find(ctx, bson.M{"created_by": email}, limit, offset)
}

func (r *mongoBookingRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
	return r.find(ctx, bson.M{}, limit, offset)
}

func (r *mongoBookingRepository) find(ctx context.Context, filter bson.M, limit int, offset int64) ([]*model.Booking, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

func (r *mongoBookingRepository) CountByCreator(ctx context.Context, email string) (int64, error) {
	return r.count(ctx, bson.M{"created_by": email})
}

func (r *mongoBookingRepository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx, bson.M{})
}

func (r *mongoBookingRepository) count(ctx context.Context, filter bson.M) (int64, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	return count, nil
}

// Every transition below is a single conditional update: the filter
// matches the legal source state (and owner where required), so two
// concurrent attempts race safely at the storage layer. At most one
// matches; the loser gets ErrPreconditionFailed and no partial write.

func (r *mongoBookingRepository) MarkInReview(ctx context.Context, id string) error {
	return r.transition(ctx, id,
		bson.M{"booking_status": model.BookingPending},
		bson.M{"booking_status": model.BookingInReview},
	)
}

func (r *mongoBookingRepository) AssignGuide(ctx context.Context, id string, guideEmail string) error {
	return r.transition(ctx, id,
		bson.M{"booking_status": model.BookingInReview},
		bson.M{
			"booking_status": model.BookingGuideAssigned,
			"guide_email":    guideEmail,
		},
	)
}

func (r *mongoBookingRepository) DecideByGuide(ctx context.Context, id string, guideEmail string, status string) error {
	return r.transition(ctx, id,
		bson.M{
			"booking_status": bson.M{"$in": []string{model.BookingInReview, model.BookingGuideAssigned}},
			"guide_email":    guideEmail,
		},
		bson.M{"booking_status": status},
	)
}

// ConfirmPayment flips unpaid to paid and embeds the payment sub-record
// in the same update, keeping the paid-iff-payment-present invariant.
// An empty createdBy skips the ownership match (admin path).
func (r *mongoBookingRepository) ConfirmPayment(ctx context.Context, id string, createdBy string, payment *model.Payment) error {
	match := bson.M{"payment_status": model.PaymentUnpaid}
	if createdBy != "" {
		match["created_by"] = createdBy
	}

	return r.transition(ctx, id, match, bson.M{
		"payment_status": model.PaymentPaid,
		"payment":        payment,
	})
}

func (r *mongoBookingRepository) transition(ctx context.Context, id string, match bson.M, set bson.M) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID}
	for key, value := range match {
		filter[key] = value
	}

	set["updated_at"] = time.Now().UTC().Truncate(time.Millisecond)

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to apply booking transition: %w", err)
	}

	if result.MatchedCount == 0 {
		return bookingserrors.ErrPreconditionFailed
	}

	return nil
}

func (r *mongoBookingRepository) Delete(ctx context.Context, id string, createdBy string) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID}
	if createdBy != "" {
		filter["created_by"] = createdBy
	}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	if result.DeletedCount == 0 {
		return bookingserrors.ErrPreconditionFailed
	}

	return nil
}

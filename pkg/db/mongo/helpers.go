package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	apperrors "explorebd/pkg/errors"
)

// WithTimeout bounds a storage call by the tighter of the caller's
// deadline and the repository's own timeout, so no operation can block
// past the inbound request's lifetime.
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

// StoreError classifies a failed storage call. Timeouts and network
// errors are transient and surface as retryable upstream failures;
// anything else is an internal error.
func StoreError(message string, err error) *apperrors.AppError {
	if errors.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return apperrors.Upstream("document store", err)
	}
	return apperrors.Internal(message, err)
}

// Sample decodes a uniform random sample of size documents from the
// collection using the $sample aggregation stage.
func Sample[T any](ctx context.Context, collection *mongo.Collection, size int) ([]*T, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sample", Value: bson.M{"size": size}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to sample documents: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*T
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode sampled documents: %w", err)
	}

	return docs, nil
}

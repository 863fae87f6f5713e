package mongo

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	apperrors "explorebd/pkg/errors"
)

func TestWithTimeout_NoCallerDeadline(t *testing.T) {
	ctx, cancel := WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("expected a deadline to be set")
	}
	if remaining := time.Until(deadline); remaining > 5*time.Second {
		t.Errorf("deadline exceeds the repository timeout: %v", remaining)
	}
}

func TestWithTimeout_TighterCallerDeadlineWins(t *testing.T) {
	parent, parentCancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer parentCancel()

	ctx, cancel := WithTimeout(parent, 5*time.Second)
	defer cancel()

	deadline, _ := ctx.Deadline()
	if remaining := time.Until(deadline); remaining > 1*time.Second {
		t.Errorf("caller deadline must bound the call, got %v", remaining)
	}
}

func TestStoreError_Classification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{
			"wrapped deadline",
			fmt.Errorf("find bookings: %w", context.DeadlineExceeded),
			apperrors.CodeUpstream,
		},
		{
			"network error label",
			mongo.CommandError{Labels: []string{"NetworkError"}},
			apperrors.CodeUpstream,
		},
		{
			"decode failure",
			errors.New("error decoding key payment.amount"),
			apperrors.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := StoreError("storage call failed", tt.err)
			if appErr.Code != tt.code {
				t.Errorf("expected %s, got %s", tt.code, appErr.Code)
			}
		})
	}
}

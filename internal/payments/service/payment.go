package service

import (
	"context"

	"explorebd/pkg/client"
	"explorebd/pkg/config"
	apperrors "explorebd/pkg/errors"
)

// IntentRequest is what the frontend sends to open a charge.
type IntentRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type PaymentService interface {
	CreateIntent(ctx context.Context, req *IntentRequest) (*client.PaymentIntent, error)
}

type paymentService struct {
	gateway client.PaymentGateway
	cfg     *config.Config
}

func NewPaymentService(gateway client.PaymentGateway, cfg *config.Config) PaymentService {
	return &paymentService{
		gateway: gateway,
		cfg:     cfg,
	}
}

func (s *paymentService) CreateIntent(ctx context.Context, req *IntentRequest) (*client.PaymentIntent, error) {
	if req.Amount <= 0 {
		return nil, apperrors.InvalidInput("Amount must be positive")
	}
	if req.Currency == "" {
		req.Currency = s.cfg.PaymentCurrency
	}

	intent, err := s.gateway.CreateIntent(ctx, req.Amount, req.Currency)
	if err != nil {
		s.cfg.Log.Error("Failed to create payment intent", "amount", req.Amount, "error", err)
		return nil, err
	}

	s.cfg.Log.Info("Payment intent created",
		"transaction_id", intent.TransactionID,
		"amount", intent.Amount,
		"currency", intent.Currency,
	)
	return intent, nil
}

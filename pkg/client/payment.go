package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "explorebd/pkg/errors"
)

// PaymentIntent is the gateway's client-side confirmation token for a
// pending charge. The ClientSecret is handed to the frontend; the
// TransactionID comes back on the confirmation call.
type PaymentIntent struct {
	TransactionID string  `json:"transaction_id"`
	ClientSecret  string  `json:"client_secret"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
}

// PaymentGateway is the narrow contract this service consumes. The
// gateway's internals are out of scope; failures surface as retryable
// upstream errors.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount float64, currency string) (*PaymentIntent, error)
}

type httpPaymentGateway struct {
	baseURL    string
	httpClient *http.Client
}

func NewPaymentGateway(baseURL string, timeout time.Duration) PaymentGateway {
	return &httpPaymentGateway{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (g *httpPaymentGateway) CreateIntent(ctx context.Context, amount float64, currency string) (*PaymentIntent, error) {
	payload, err := json.Marshal(map[string]any{
		"amount":   amount,
		"currency": currency,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal intent request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/payment-intents", bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create intent request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Upstream("payment gateway", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Upstream("payment gateway", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.Upstream("payment gateway",
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body)))
	}

	var intent PaymentIntent
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, apperrors.Upstream("payment gateway", fmt.Errorf("malformed intent response: %w", err))
	}

	return &intent, nil
}

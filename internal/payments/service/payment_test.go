package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"explorebd/pkg/client"
	"explorebd/pkg/config"
	apperrors "explorebd/pkg/errors"
	"explorebd/pkg/logger"
)

func newTestConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:     "error",
			Format:    logger.JSON,
			AddSource: false,
			Service:   "test",
		}),
		PaymentCurrency: "BDT",
	}
}

func TestCreateIntent_HappyPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/payment-intents" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if body["currency"] != "BDT" {
			t.Errorf("expected default currency BDT, got %v", body["currency"])
		}

		json.NewEncoder(w).Encode(client.PaymentIntent{
			TransactionID: "T1",
			ClientSecret:  "secret_abc",
			Amount:        100,
			Currency:      "BDT",
		})
	}))
	defer server.Close()

	gateway := client.NewPaymentGateway(server.URL, 2*time.Second)
	service := NewPaymentService(gateway, newTestConfig())

	intent, err := service.CreateIntent(context.Background(), &IntentRequest{Amount: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if intent.TransactionID != "T1" || intent.ClientSecret != "secret_abc" {
		t.Errorf("unexpected intent: %+v", intent)
	}
}

func TestCreateIntent_InvalidAmount(t *testing.T) {
	service := NewPaymentService(nil, newTestConfig())

	for _, amount := range []float64{0, -10} {
		_, err := service.CreateIntent(context.Background(), &IntentRequest{Amount: amount})
		if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInvalidInput {
			t.Errorf("amount %v: expected %s, got %s", amount, apperrors.CodeInvalidInput, appErr.Code)
		}
	}
}

func TestCreateIntent_GatewayDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	gateway := client.NewPaymentGateway(server.URL, 2*time.Second)
	service := NewPaymentService(gateway, newTestConfig())

	_, err := service.CreateIntent(context.Background(), &IntentRequest{Amount: 100})
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeUpstream {
		t.Errorf("expected %s, got %s", apperrors.CodeUpstream, appErr.Code)
	}
}

func TestCreateIntent_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	gateway := client.NewPaymentGateway(server.URL, 2*time.Second)
	service := NewPaymentService(gateway, newTestConfig())

	_, err := service.CreateIntent(context.Background(), &IntentRequest{Amount: 100})
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeUpstream {
		t.Errorf("expected %s, got %s", apperrors.CodeUpstream, appErr.Code)
	}
}

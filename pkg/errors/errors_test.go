package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code string
		want int
	}{
		{"not found", NotFound("Booking"), CodeNotFound, http.StatusNotFound},
		{"validation", Validation("bad", nil), CodeValidation, http.StatusBadRequest},
		{"invalid input", InvalidInput("bad"), CodeInvalidInput, http.StatusBadRequest},
		{"unauthenticated", Unauthenticated("no token"), CodeUnauthenticated, http.StatusUnauthorized},
		{"forbidden", Forbidden("no role"), CodeForbidden, http.StatusForbidden},
		{"conflict", Conflict("taken"), CodeConflict, http.StatusConflict},
		{"invalid transition", InvalidTransition("already paid"), CodeInvalidTransition, http.StatusConflict},
		{"internal", Internal("boom", nil), CodeInternal, http.StatusInternalServerError},
		{"timeout", Timeout("slow"), CodeTimeout, http.StatusGatewayTimeout},
		{"upstream", Upstream("payment gateway", nil), CodeUpstream, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, tt.err.Code)
			}
			if tt.err.StatusCode() != tt.want {
				t.Errorf("expected status %d, got %d", tt.want, tt.err.StatusCode())
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Upstream("payment gateway", cause)

	if !errors.Is(err, cause) {
		t.Error("expected the cause to be reachable via errors.Is")
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFound("Booking")
	if AsAppError(appErr) != appErr {
		t.Error("AsAppError must return the original AppError")
	}

	wrapped := AsAppError(errors.New("plain"))
	if wrapped.Code != CodeInternal {
		t.Errorf("plain errors must map to %s, got %s", CodeInternal, wrapped.Code)
	}
	if wrapped.StatusCode() != http.StatusInternalServerError {
		t.Errorf("plain errors must map to 500, got %d", wrapped.StatusCode())
	}
}

func TestNotFoundWithID_Details(t *testing.T) {
	err := NotFoundWithID("Booking", "abc123")
	if err.Details["id"] != "abc123" || err.Details["resource"] != "Booking" {
		t.Errorf("unexpected details: %v", err.Details)
	}
}

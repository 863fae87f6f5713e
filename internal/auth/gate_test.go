package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"

	apperrors "explorebd/pkg/errors"
	"explorebd/pkg/logger"
	"explorebd/pkg/model"
)

type stubVerifier struct {
	claims *Claims
	err    error
}

func (s *stubVerifier) Verify(_ context.Context, _ string) (*Claims, error) {
	return s.claims, s.err
}

type stubRoleResolver struct {
	roles map[string]string
}

func (s *stubRoleResolver) RoleByEmail(_ context.Context, email string) (string, error) {
	if role, ok := s.roles[email]; ok {
		return role, nil
	}
	return "", apperrors.NotFound("User")
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
}

func okHandler(called *bool) httprouter.Handle {
	return func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		*called = true
		w.WriteHeader(http.StatusOK)
	}
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	gate := NewGate(&stubVerifier{claims: &Claims{Email: "a@x.com"}}, &stubRoleResolver{}, testLogger())

	var called bool
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	gate.Authenticate(okHandler(&called))(rec, req, nil)

	if called {
		t.Error("handler must not run without a credential")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	gate := NewGate(&stubVerifier{claims: &Claims{Email: "a@x.com"}}, &stubRoleResolver{}, testLogger())

	for _, header := range []string{"Basic abc", "Bearer", "Bearer ", "token"} {
		var called bool
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)

		gate.Authenticate(okHandler(&called))(rec, req, nil)

		if called || rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected rejection, got called=%v status=%d", header, called, rec.Code)
		}
	}
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	gate := NewGate(&stubVerifier{err: apperrors.Unauthenticated("invalid or expired credential")}, &stubRoleResolver{}, testLogger())

	var called bool
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bad-token")

	gate.Authenticate(okHandler(&called))(rec, req, nil)

	if called || rec.Code != http.StatusUnauthorized {
		t.Errorf("expected rejection, got called=%v status=%d", called, rec.Code)
	}
}

func TestAuthenticate_StoresClaims(t *testing.T) {
	gate := NewGate(&stubVerifier{claims: &Claims{Email: "a@x.com"}}, &stubRoleResolver{}, testLogger())

	var gotEmail string
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")

	gate.Authenticate(func(_ http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		if claims, ok := ClaimsFromContext(r.Context()); ok {
			gotEmail = claims.Email
		}
	})(rec, req, nil)

	if gotEmail != "a@x.com" {
		t.Errorf("expected claims on context, got %q", gotEmail)
	}
}

func TestRequire_RoleChecks(t *testing.T) {
	resolver := &stubRoleResolver{roles: map[string]string{
		"user@x.com":  model.RoleUser,
		"guide@x.com": model.RoleGuide,
		"root@x.com":  model.RoleAdmin,
	}}
	gate := NewGate(&stubVerifier{}, resolver, testLogger())

	tests := []struct {
		name       string
		email      string
		allowed    []string
		wantStatus int
	}{
		{"user denied admin route", "user@x.com", []string{model.RoleAdmin}, http.StatusForbidden},
		{"guide allowed guide route", "guide@x.com", []string{model.RoleGuide}, http.StatusOK},
		{"user denied guide route", "user@x.com", []string{model.RoleGuide}, http.StatusForbidden},
		// Admin passes every role check regardless of the allowed set.
		{"admin bypasses guide route", "root@x.com", []string{model.RoleGuide}, http.StatusOK},
		{"admin bypasses user route", "root@x.com", []string{model.RoleUser}, http.StatusOK},
		{"unknown caller rejected", "ghost@x.com", []string{model.RoleUser}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			ctx := ContextWithClaims(req.Context(), &Claims{Email: tt.email})

			gate.Require(tt.allowed...)(okHandler(&called))(rec, req.WithContext(ctx), nil)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			if (rec.Code == http.StatusOK) != called {
				t.Errorf("handler called=%v with status %d", called, rec.Code)
			}
		})
	}
}

func TestRequire_NoClaims(t *testing.T) {
	gate := NewGate(&stubVerifier{}, &stubRoleResolver{}, testLogger())

	var called bool
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	gate.Require(model.RoleUser)(okHandler(&called))(rec, req, nil)

	if called || rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without claims, got called=%v status=%d", called, rec.Code)
	}
}

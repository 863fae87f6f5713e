package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-signing-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestVerify_ValidToken(t *testing.T) {
	verifier := NewJWTVerifier(testSecret, 0)

	token := signToken(t, testSecret, jwt.MapClaims{
		"email": "a@x.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	claims, err := verifier.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Email != "a@x.com" {
		t.Errorf("expected a@x.com, got %s", claims.Email)
	}
}

func TestVerify_ExpiredToken(t *testing.T) {
	verifier := NewJWTVerifier(testSecret, 0)

	token := signToken(t, testSecret, jwt.MapClaims{
		"email": "a@x.com",
		"exp":   time.Now().Add(-time.Hour).Unix(),
	})

	if _, err := verifier.Verify(context.Background(), token); err == nil {
		t.Error("expired token must be rejected")
	}
}

func TestVerify_ExpiredWithinLeeway(t *testing.T) {
	verifier := NewJWTVerifier(testSecret, 2*time.Minute)

	token := signToken(t, testSecret, jwt.MapClaims{
		"email": "a@x.com",
		"exp":   time.Now().Add(-time.Minute).Unix(),
	})

	if _, err := verifier.Verify(context.Background(), token); err != nil {
		t.Errorf("token within leeway should pass: %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	verifier := NewJWTVerifier(testSecret, 0)

	token := signToken(t, "other-secret", jwt.MapClaims{
		"email": "a@x.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	if _, err := verifier.Verify(context.Background(), token); err == nil {
		t.Error("token signed with a different secret must be rejected")
	}
}

func TestVerify_MissingEmail(t *testing.T) {
	verifier := NewJWTVerifier(testSecret, 0)

	token := signToken(t, testSecret, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	if _, err := verifier.Verify(context.Background(), token); err == nil {
		t.Error("token without an email claim must be rejected")
	}
}

func TestVerify_Garbage(t *testing.T) {
	verifier := NewJWTVerifier(testSecret, 0)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := verifier.Verify(context.Background(), token); err == nil {
			t.Errorf("garbage token %q must be rejected", token)
		}
	}
}

package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	apperrors "explorebd/pkg/errors"
	httputil "explorebd/pkg/http"
	"explorebd/pkg/logger"
	"explorebd/pkg/model"
)

// RoleResolver looks up the caller's stored role by email. The user
// store implements it; a missing record surfaces as a not-found error.
type RoleResolver interface {
	RoleByEmail(ctx context.Context, email string) (string, error)
}

// Gate admits or rejects a request based on identity and role.
// Authenticate always precedes Require on any route composing both.
type Gate struct {
	verifier TokenVerifier
	roles    RoleResolver
	log      *logger.Logger
}

func NewGate(verifier TokenVerifier, roles RoleResolver, log *logger.Logger) *Gate {
	return &Gate{
		verifier: verifier,
		roles:    roles,
		log:      log,
	}
}

// Authenticate verifies the bearer credential and stores the claims on
// the request context for downstream handlers.
func (g *Gate) Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		token, err := extractBearerToken(r)
		if err != nil {
			g.writeError(w, r, err)
			return
		}

		claims, err := g.verifier.Verify(r.Context(), token)
		if err != nil {
			g.writeError(w, r, err)
			return
		}

		ctx := ContextWithClaims(r.Context(), claims)
		next(w, r.WithContext(ctx), ps)
	}
}

// Require admits the caller when their stored role is admin or a member
// of the allowed set. Compose after Authenticate.
func (g *Gate) Require(allowed ...string) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				g.writeError(w, r, apperrors.Unauthenticated("missing credential"))
				return
			}

			role, err := g.roles.RoleByEmail(r.Context(), claims.Email)
			if err != nil {
				g.writeError(w, r, err)
				return
			}

			if role != model.RoleAdmin && !contains(allowed, role) {
				g.writeError(w, r, apperrors.Forbidden("insufficient role"))
				return
			}

			next(w, r, ps)
		}
	}
}

func (g *Gate) writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperrors.AsAppError(err)
	g.log.Warn("Request rejected by access gate",
		"path", r.URL.Path,
		"method", r.Method,
		"code", appErr.Code,
	)
	if writeErr := httputil.WriteError(w, appErr); writeErr != nil {
		g.log.Error("failed to write error response", "handler", "Gate", "error", writeErr)
	}
}

func extractBearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", apperrors.Unauthenticated("missing Authorization header")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", apperrors.Unauthenticated("malformed Authorization header")
	}

	return parts[1], nil
}

func contains(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

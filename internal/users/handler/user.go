package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"explorebd/internal/auth"
	"explorebd/internal/users/service"
	apperrors "explorebd/pkg/errors"
	httputil "explorebd/pkg/http"
	"explorebd/pkg/logger"
	"explorebd/pkg/model"
)

type UserHandler struct {
	service service.UserService
	gate    *auth.Gate
	log     *logger.Logger
}

func NewUserHandler(service service.UserService, gate *auth.Gate, log *logger.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		gate:    gate,
		log:     log,
	}
}

// SignIn records a sign-in observation: first sight creates the user,
// later sights refresh last_login.
func (h *UserHandler) SignIn(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var user model.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		h.writeError(w, "SignIn", apperrors.InvalidInput("Invalid request body"))
		return
	}

	created, err := h.service.SignIn(r.Context(), &user)
	if err != nil {
		h.writeError(w, "SignIn", err)
		return
	}

	if created {
		if err := httputil.WriteCreated(w, user); err != nil {
			h.log.Error("failed to write created response", "handler", "SignIn", "error", err)
		}
		return
	}

	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "SignIn", "error", err)
	}
}

func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	users, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WritePaginated(w, users, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "error", err)
	}
}

// GetRole returns the stored role for an email. Callers may read their
// own role; only admins may read someone else's.
func (h *UserHandler) GetRole(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	email := ps.ByName("email")

	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		h.writeError(w, "GetRole", apperrors.Unauthenticated("missing credential"))
		return
	}

	if claims.Email != email {
		callerRole, err := h.service.RoleByEmail(r.Context(), claims.Email)
		if err != nil {
			h.writeError(w, "GetRole", err)
			return
		}
		if callerRole != model.RoleAdmin {
			h.writeError(w, "GetRole", apperrors.Forbidden("cannot read another user's role"))
			return
		}
	}

	role, err := h.service.RoleByEmail(r.Context(), email)
	if err != nil {
		h.writeError(w, "GetRole", err)
		return
	}

	if err := httputil.WriteSuccess(w, map[string]string{"email": email, "role": role}); err != nil {
		h.log.Error("failed to write success response", "handler", "GetRole", "error", err)
	}
}

func (h *UserHandler) SetRole(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	email := ps.ByName("email")

	var body struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, "SetRole", apperrors.InvalidInput("Invalid request body"))
		return
	}

	if err := h.service.SetRole(r.Context(), email, body.Role); err != nil {
		h.writeError(w, "SetRole", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *UserHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}

func (h *UserHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/users", h.SignIn)
	router.GET("/api/v1/users", h.gate.Authenticate(h.gate.Require(model.RoleAdmin)(h.GetAll)))
	router.GET("/api/v1/users/role/:email", h.gate.Authenticate(h.GetRole))
	router.PATCH("/api/v1/users/role/:email", h.gate.Authenticate(h.gate.Require(model.RoleAdmin)(h.SetRole)))
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"explorebd/internal/auth"
	"explorebd/internal/guides/service"
	apperrors "explorebd/pkg/errors"
	httputil "explorebd/pkg/http"
	"explorebd/pkg/logger"
	"explorebd/pkg/model"
)

type GuideHandler struct {
	service service.GuideService
	gate    *auth.Gate
	log     *logger.Logger
}

func NewGuideHandler(service service.GuideService, gate *auth.Gate, log *logger.Logger) *GuideHandler {
	return &GuideHandler{
		service: service,
		gate:    gate,
		log:     log,
	}
}

func (h *GuideHandler) Apply(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var application model.GuideApplication
	if err := json.NewDecoder(r.Body).Decode(&application); err != nil {
		h.writeError(w, "Apply", apperrors.InvalidInput("Invalid request body"))
		return
	}

	// The applicant is whoever authenticated, not whoever the body claims.
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		application.Email = claims.Email
	}

	if err := h.service.Apply(r.Context(), &application); err != nil {
		h.writeError(w, "Apply", err)
		return
	}

	if err := httputil.WriteCreated(w, application); err != nil {
		h.log.Error("failed to write created response", "handler", "Apply", "error", err)
	}
}

func (h *GuideHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.list(w, r, "", "GetAll")
}

func (h *GuideHandler) GetPending(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.list(w, r, model.ApplicationPending, "GetPending")
}

func (h *GuideHandler) GetApproved(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.list(w, r, model.ApplicationActive, "GetApproved")
}

func (h *GuideHandler) list(w http.ResponseWriter, r *http.Request, status string, handlerName string) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	var applications []*model.GuideApplication
	var total int64
	if status == "" {
		applications, total, err = h.service.GetAll(r.Context(), limit, offset)
	} else {
		applications, total, err = h.service.GetByStatus(r.Context(), status, limit, offset)
	}
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	if err := httputil.WritePaginated(w, applications, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", handlerName, "error", err)
	}
}

func (h *GuideHandler) GetRandom(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	applications, err := h.service.GetRandom(r.Context())
	if err != nil {
		h.writeError(w, "GetRandom", err)
		return
	}

	if err := httputil.WriteSuccess(w, applications); err != nil {
		h.log.Error("failed to write success response", "handler", "GetRandom", "error", err)
	}
}

func (h *GuideHandler) Decide(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var decision model.GuideDecision
	if err := json.NewDecoder(r.Body).Decode(&decision); err != nil {
		h.writeError(w, "Decide", apperrors.InvalidInput("Invalid request body"))
		return
	}

	result, err := h.service.Decide(r.Context(), id, &decision)
	if err != nil {
		h.writeError(w, "Decide", err)
		return
	}

	h.writeDecision(w, "Decide", result)
}

func (h *GuideHandler) Approve(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	result, err := h.service.Approve(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "Approve", err)
		return
	}

	h.writeDecision(w, "Approve", result)
}

func (h *GuideHandler) writeDecision(w http.ResponseWriter, handlerName string, result *service.DecisionResult) {
	response := httputil.SuccessResponse{Data: result, Warning: result.Warning}
	if err := httputil.WriteJSON(w, http.StatusOK, response); err != nil {
		h.log.Error("failed to write success response", "handler", handlerName, "error", err)
	}
}

func (h *GuideHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}

func (h *GuideHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/guides", h.gate.Authenticate(h.Apply))
	router.GET("/api/v1/guides", h.GetAll)
	router.GET("/api/v1/guides/pending", h.gate.Authenticate(h.gate.Require(model.RoleAdmin)(h.GetPending)))
	router.GET("/api/v1/guides/approved", h.GetApproved)
	router.GET("/api/v1/guides/random", h.GetRandom)
	router.PATCH("/api/v1/guides/id/:id/status", h.gate.Authenticate(h.gate.Require(model.RoleAdmin)(h.Decide)))
	router.PATCH("/api/v1/guides/approve/:id", h.gate.Authenticate(h.gate.Require(model.RoleAdmin)(h.Approve)))
}

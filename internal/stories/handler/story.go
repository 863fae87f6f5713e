package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"explorebd/internal/auth"
	"explorebd/internal/stories/service"
	apperrors "explorebd/pkg/errors"
	httputil "explorebd/pkg/http"
	"explorebd/pkg/logger"
	"explorebd/pkg/model"
)

type StoryHandler struct {
	service service.StoryService
	gate    *auth.Gate
	log     *logger.Logger
}

func NewStoryHandler(service service.StoryService, gate *auth.Gate, log *logger.Logger) *StoryHandler {
	return &StoryHandler{
		service: service,
		gate:    gate,
		log:     log,
	}
}

func (h *StoryHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		h.writeError(w, "Create", apperrors.Unauthenticated("missing credential"))
		return
	}

	var story model.Story
	if err := json.NewDecoder(r.Body).Decode(&story); err != nil {
		h.writeError(w, "Create", apperrors.InvalidInput("Invalid request body"))
		return
	}

	if err := h.service.Create(r.Context(), &story, claims.Email); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, story); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *StoryHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	stories, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WritePaginated(w, stories, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "error", err)
	}
}

func (h *StoryHandler) GetRandom(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	stories, err := h.service.GetRandom(r.Context())
	if err != nil {
		h.writeError(w, "GetRandom", err)
		return
	}

	if err := httputil.WriteSuccess(w, stories); err != nil {
		h.log.Error("failed to write success response", "handler", "GetRandom", "error", err)
	}
}

func (h *StoryHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	story, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, story); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *StoryHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}

func (h *StoryHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/stories", h.gate.Authenticate(h.Create))
	router.GET("/api/v1/stories", h.GetAll)
	router.GET("/api/v1/stories/random", h.GetRandom)
	router.GET("/api/v1/stories/id/:id", h.GetByID)
}

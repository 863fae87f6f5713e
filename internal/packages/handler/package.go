package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"explorebd/internal/auth"
	"explorebd/internal/packages/service"
	apperrors "explorebd/pkg/errors"
	httputil "explorebd/pkg/http"
	"explorebd/pkg/logger"
	"explorebd/pkg/model"
)

type PackageHandler struct {
	service service.PackageService
	gate    *auth.Gate
	log     *logger.Logger
}

func NewPackageHandler(service service.PackageService, gate *auth.Gate, log *logger.Logger) *PackageHandler {
	return &PackageHandler{
		service: service,
		gate:    gate,
		log:     log,
	}
}

func (h *PackageHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var pkg model.Package
	if err := json.NewDecoder(r.Body).Decode(&pkg); err != nil {
		h.writeError(w, "Create", apperrors.InvalidInput("Invalid request body"))
		return
	}

	if err := h.service.Create(r.Context(), &pkg); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, pkg); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *PackageHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	packages, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WritePaginated(w, packages, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "error", err)
	}
}

func (h *PackageHandler) GetRandom(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	packages, err := h.service.GetRandom(r.Context())
	if err != nil {
		h.writeError(w, "GetRandom", err)
		return
	}

	if err := httputil.WriteSuccess(w, packages); err != nil {
		h.log.Error("failed to write success response", "handler", "GetRandom", "error", err)
	}
}

func (h *PackageHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	pkg, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, pkg); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *PackageHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var pkg model.Package
	if err := json.NewDecoder(r.Body).Decode(&pkg); err != nil {
		h.writeError(w, "Update", apperrors.InvalidInput("Invalid request body"))
		return
	}

	id := ps.ByName("id")
	if err := h.service.Update(r.Context(), id, &pkg); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	pkg.ID = id
	if err := httputil.WriteSuccess(w, pkg); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "error", err)
	}
}

func (h *PackageHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *PackageHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}

func (h *PackageHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/packages", h.gate.Authenticate(h.gate.Require(model.RoleAdmin)(h.Create)))
	router.GET("/api/v1/packages", h.GetAll)
	router.GET("/api/v1/packages/random", h.GetRandom)
	router.GET("/api/v1/packages/id/:id", h.gate.Authenticate(h.GetByID))
	router.PUT("/api/v1/packages/id/:id", h.gate.Authenticate(h.gate.Require(model.RoleAdmin)(h.Update)))
	router.DELETE("/api/v1/packages/id/:id", h.gate.Authenticate(h.gate.Require(model.RoleAdmin)(h.Delete)))
}

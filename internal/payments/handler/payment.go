package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"explorebd/internal/auth"
	"explorebd/internal/payments/service"
	apperrors "explorebd/pkg/errors"
	httputil "explorebd/pkg/http"
	"explorebd/pkg/logger"
)

type PaymentHandler struct {
	service service.PaymentService
	gate    *auth.Gate
	log     *logger.Logger
}

func NewPaymentHandler(service service.PaymentService, gate *auth.Gate, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		gate:    gate,
		log:     log,
	}
}

func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req service.IntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "CreateIntent", apperrors.InvalidInput("Invalid request body"))
		return
	}

	intent, err := h.service.CreateIntent(r.Context(), &req)
	if err != nil {
		h.writeError(w, "CreateIntent", err)
		return
	}

	if err := httputil.WriteCreated(w, intent); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateIntent", "error", err)
	}
}

func (h *PaymentHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}

func (h *PaymentHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/payments/intent", h.gate.Authenticate(h.CreateIntent))
}

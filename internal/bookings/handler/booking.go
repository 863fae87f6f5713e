package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"explorebd/internal/auth"
	"explorebd/internal/bookings/service"
	apperrors "explorebd/pkg/errors"
	httputil "explorebd/pkg/http"
	"explorebd/pkg/logger"
	"explorebd/pkg/model"
)

type BookingHandler struct {
	service service.BookingService
	gate    *auth.Gate
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, gate *auth.Gate, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		gate:    gate,
		log:     log,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		h.writeError(w, "Create", apperrors.Unauthenticated("missing credential"))
		return
	}

	var booking model.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		h.writeError(w, "Create", apperrors.InvalidInput("Invalid request body"))
		return
	}

	if err := h.service.Create(r.Context(), &booking, claims.Email); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		h.writeError(w, "GetByID", apperrors.Unauthenticated("missing credential"))
		return
	}

	booking, err := h.service.GetByID(r.Context(), ps.ByName("id"), claims.Email)
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *BookingHandler) GetByUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		h.writeError(w, "GetByUser", apperrors.Unauthenticated("missing credential"))
		return
	}

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetByUser", err)
		return
	}

	bookings, total, err := h.service.GetByCreator(r.Context(), ps.ByName("email"), claims.Email, limit, offset)
	if err != nil {
		h.writeError(w, "GetByUser", err)
		return
	}

	if err := httputil.WritePaginated(w, bookings, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetByUser", "error", err)
	}
}

func (h *BookingHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	bookings, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WritePaginated(w, bookings, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "error", err)
	}
}

func (h *BookingHandler) MarkInReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if err := h.service.MarkInReview(r.Context(), id); err != nil {
		h.writeError(w, "MarkInReview", err)
		return
	}

	h.writeStatus(w, "MarkInReview", id, model.BookingInReview)
}

func (h *BookingHandler) AssignGuide(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		GuideEmail string `json:"guide_email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, "AssignGuide", apperrors.InvalidInput("Invalid request body"))
		return
	}

	id := ps.ByName("id")
	if err := h.service.AssignGuide(r.Context(), id, body.GuideEmail); err != nil {
		h.writeError(w, "AssignGuide", err)
		return
	}

	h.writeStatus(w, "AssignGuide", id, model.BookingGuideAssigned)
}

func (h *BookingHandler) Decide(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		h.writeError(w, "Decide", apperrors.Unauthenticated("missing credential"))
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, "Decide", apperrors.InvalidInput("Invalid request body"))
		return
	}

	id := ps.ByName("id")
	if err := h.service.Decide(r.Context(), id, claims.Email, body.Status); err != nil {
		h.writeError(w, "Decide", err)
		return
	}

	h.writeStatus(w, "Decide", id, body.Status)
}

func (h *BookingHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		h.writeError(w, "ConfirmPayment", apperrors.Unauthenticated("missing credential"))
		return
	}

	var payment model.Payment
	if err := json.NewDecoder(r.Body).Decode(&payment); err != nil {
		h.writeError(w, "ConfirmPayment", apperrors.InvalidInput("Invalid request body"))
		return
	}

	id := ps.ByName("id")
	if err := h.service.ConfirmPayment(r.Context(), id, claims.Email, &payment); err != nil {
		h.writeError(w, "ConfirmPayment", err)
		return
	}

	response := map[string]string{
		"id":             id,
		"payment_status": model.PaymentPaid,
		"transaction_id": payment.TransactionID,
	}
	if err := httputil.WriteSuccess(w, response); err != nil {
		h.log.Error("failed to write success response", "handler", "ConfirmPayment", "error", err)
	}
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		h.writeError(w, "Delete", apperrors.Unauthenticated("missing credential"))
		return
	}

	if err := h.service.Delete(r.Context(), ps.ByName("id"), claims.Email); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *BookingHandler) writeStatus(w http.ResponseWriter, handlerName string, id string, status string) {
	response := map[string]string{
		"id":             id,
		"booking_status": status,
	}
	if err := httputil.WriteSuccess(w, response); err != nil {
		h.log.Error("failed to write success response", "handler", handlerName, "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", h.gate.Authenticate(h.Create))
	router.GET("/api/v1/bookings", h.gate.Authenticate(h.gate.Require(model.RoleAdmin)(h.GetAll)))
	router.GET("/api/v1/bookings/user/:email", h.gate.Authenticate(h.GetByUser))
	router.GET("/api/v1/bookings/id/:id", h.gate.Authenticate(h.GetByID))
	router.PATCH("/api/v1/bookings/id/:id/review", h.gate.Authenticate(h.gate.Require(model.RoleAdmin)(h.MarkInReview)))
	router.PATCH("/api/v1/bookings/id/:id/assign", h.gate.Authenticate(h.gate.Require(model.RoleAdmin)(h.AssignGuide)))
	router.PATCH("/api/v1/bookings/assigned/:id/status", h.gate.Authenticate(h.gate.Require(model.RoleGuide)(h.Decide)))
	router.PATCH("/api/v1/bookings/id/:id", h.gate.Authenticate(h.ConfirmPayment))
	router.DELETE("/api/v1/bookings/id/:id", h.gate.Authenticate(h.Delete))
}

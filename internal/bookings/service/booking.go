package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	bookingserrors "explorebd/internal/bookings/errors"
	"explorebd/internal/bookings/lifecycle"
	"explorebd/internal/bookings/repository"
	"explorebd/internal/bookings/validator"
	"explorebd/pkg/config"
	mongodb "explorebd/pkg/db/mongo"
	apperrors "explorebd/pkg/errors"
	"explorebd/pkg/model"
)

// Event types published on the booking stream.
const (
	EventBookingCreated   = "booking.created"
	EventStatusChanged    = "booking.status_changed"
	EventPaymentConfirmed = "booking.payment_confirmed"
)

// RoleResolver is the slice of the user service needed for ownership
// and admin checks.
type RoleResolver interface {
	RoleByEmail(ctx context.Context, email string) (string, error)
}

// EventPublisher receives a notification after every successful
// transition. Publishing is best-effort: failures are logged, never
// propagated to the caller.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, booking *model.Booking) error
}

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking, createdBy string) error
	GetByID(ctx context.Context, id string, callerEmail string) (*model.Booking, error)
	GetByCreator(ctx context.Context, email string, callerEmail string, limit int, offset int64) ([]*model.Booking, int64, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	MarkInReview(ctx context.Context, id string) error
	AssignGuide(ctx context.Context, id string, guideEmail string) error
	Decide(ctx context.Context, id string, callerEmail string, targetStatus string) error
	ConfirmPayment(ctx context.Context, id string, callerEmail string, payment *model.Payment) error
	Delete(ctx context.Context, id string, callerEmail string) error
}

type bookingService struct {
	repo      repository.BookingRepository
	roles     RoleResolver
	events    EventPublisher
	validator *validator.BookingValidator
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	roles RoleResolver,
	events EventPublisher,
	bookingValidator *validator.BookingValidator,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		roles:     roles,
		events:    events,
		validator: bookingValidator,
		cfg:       cfg,
	}
}

// Create opens a booking in the initial lifecycle state. The creator
// comes from the verified identity, never from the request body.
func (s *bookingService) Create(ctx context.Context, booking *model.Booking, createdBy string) error {
	booking.CreatedBy = createdBy
	booking.GuideEmail = ""
	booking.BookingStatus = model.BookingPending
	booking.PaymentStatus = model.PaymentUnpaid
	booking.Payment = nil

	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return mongodb.StoreError("Failed to create booking", err)
	}

	s.cfg.Log.Info("Booking created",
		"id", booking.ID,
		"package_id", booking.PackageID,
		"created_by", booking.CreatedBy,
	)
	s.publish(ctx, EventBookingCreated, booking)
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string, callerEmail string) (*model.Booking, error) {
	booking, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.CreatedBy != callerEmail && booking.GuideEmail != callerEmail {
		if err := s.requireAdmin(ctx, callerEmail); err != nil {
			return nil, err
		}
	}

	return booking, nil
}

func (s *bookingService) GetByCreator(ctx context.Context, email string, callerEmail string, limit int, offset int64) ([]*model.Booking, int64, error) {
	if email == "" {
		return nil, 0, apperrors.InvalidInput("Email cannot be empty")
	}
	if email != callerEmail {
		if err := s.requireAdmin(ctx, callerEmail); err != nil {
			return nil, 0, err
		}
	}

	count, err := s.repo.CountByCreator(ctx, email)
	if err != nil {
		s.cfg.Log.Error("Failed to count bookings by creator", "email", email, "error", err)
		return nil, 0, mongodb.StoreError("Failed to count bookings", err)
	}

	bookings, err := s.repo.FindByCreator(ctx, email, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings by creator", "email", email, "error", err)
		return nil, 0, mongodb.StoreError("Failed to retrieve bookings", err)
	}

	return bookings, count, nil
}

func (s *bookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = mongodb.StoreError("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = mongodb.StoreError("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

func (s *bookingService) MarkInReview(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	if err := s.repo.MarkInReview(ctx, id); err != nil {
		return s.mapTransitionError(ctx, id, lifecycle.ActionReview, "", err)
	}

	s.cfg.Log.Info("Booking moved to review", "id", id)
	s.publishByID(ctx, EventStatusChanged, id)
	return nil
}

func (s *bookingService) AssignGuide(ctx context.Context, id string, guideEmail string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}
	if guideEmail == "" {
		return apperrors.InvalidInput("Guide email cannot be empty")
	}

	role, err := s.roles.RoleByEmail(ctx, guideEmail)
	if err != nil {
		return err
	}
	if role != model.RoleGuide {
		return apperrors.InvalidInput(fmt.Sprintf("%s is not an active guide", guideEmail))
	}

	if err := s.repo.AssignGuide(ctx, id, guideEmail); err != nil {
		return s.mapTransitionError(ctx, id, lifecycle.ActionAssign, "", err)
	}

	s.cfg.Log.Info("Guide assigned to booking", "id", id, "guide_email", guideEmail)
	s.publishByID(ctx, EventStatusChanged, id)
	return nil
}

// Decide applies a guide's accept/reject verdict. The conditional
// update matches on both the legal source states and the assigned
// guide, so an unassigned guide can never flip the record.
func (s *bookingService) Decide(ctx context.Context, id string, callerEmail string, targetStatus string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	action, ok := lifecycle.ParseGuideDecision(targetStatus)
	if !ok {
		return apperrors.InvalidInput(fmt.Sprintf("status must be %q or %q", model.BookingAccepted, model.BookingRejected))
	}
	status, _ := lifecycle.Result(action)

	if err := s.repo.DecideByGuide(ctx, id, callerEmail, status); err != nil {
		return s.mapTransitionError(ctx, id, action, callerEmail, err)
	}

	s.cfg.Log.Info("Booking decided by guide", "id", id, "guide_email", callerEmail, "status", status)
	s.publishByID(ctx, EventStatusChanged, id)
	return nil
}

// ConfirmPayment flips the booking to paid exactly once, embedding the
// payment sub-record atomically with the status change.
func (s *bookingService) ConfirmPayment(ctx context.Context, id string, callerEmail string, payment *model.Payment) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	if payment.Currency == "" {
		payment.Currency = s.cfg.PaymentCurrency
	}
	if payment.PaidAt.IsZero() {
		payment.PaidAt = time.Now().UTC().Truncate(time.Millisecond)
	}
	if err := s.validator.ValidatePayment(payment); err != nil {
		s.cfg.Log.Warn("Payment validation failed", "id", id, "error", err)
		return apperrors.Validation("Payment validation failed", map[string]any{"error": err.Error()})
	}

	createdBy := callerEmail
	if role, err := s.roles.RoleByEmail(ctx, callerEmail); err == nil && role == model.RoleAdmin {
		createdBy = ""
	}

	if err := s.repo.ConfirmPayment(ctx, id, createdBy, payment); err != nil {
		return s.mapPaymentError(ctx, id, callerEmail, createdBy, err)
	}

	s.cfg.Log.Info("Booking payment confirmed",
		"id", id,
		"transaction_id", payment.TransactionID,
		"amount", payment.Amount,
	)
	s.publishByID(ctx, EventPaymentConfirmed, id)
	return nil
}

func (s *bookingService) Delete(ctx context.Context, id string, callerEmail string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	createdBy := callerEmail
	if role, err := s.roles.RoleByEmail(ctx, callerEmail); err == nil && role == model.RoleAdmin {
		createdBy = ""
	}

	if err := s.repo.Delete(ctx, id, createdBy); err != nil {
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid booking ID format")
		}
		if errors.Is(err, bookingserrors.ErrPreconditionFailed) {
			booking, findErr := s.repo.FindByID(ctx, id)
			if findErr != nil {
				return apperrors.NotFoundWithID("Booking", id)
			}
			if booking.CreatedBy != callerEmail {
				return apperrors.Forbidden("only the booking owner or an admin may delete it")
			}
			return mongodb.StoreError("Failed to delete booking", err)
		}
		return mongodb.StoreError("Failed to delete booking", err)
	}

	s.cfg.Log.Info("Booking deleted", "id", id, "deleted_by", callerEmail)
	return nil
}

// --- Helpers ---

func (s *bookingService) findByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, mongodb.StoreError("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) requireAdmin(ctx context.Context, email string) error {
	role, err := s.roles.RoleByEmail(ctx, email)
	if err != nil {
		return err
	}
	if role != model.RoleAdmin {
		return apperrors.Forbidden("admin role required")
	}
	return nil
}

// mapTransitionError turns a failed conditional update into the precise
// caller-facing error by re-reading the record. The write already
// happened (or didn't); this is diagnosis only.
func (s *bookingService) mapTransitionError(ctx context.Context, id string, action lifecycle.Action, guideEmail string, err error) error {
	if errors.Is(err, bookingserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid booking ID format")
	}
	if !errors.Is(err, bookingserrors.ErrPreconditionFailed) {
		s.cfg.Log.Error("Booking transition failed", "id", id, "action", action, "error", err)
		return mongodb.StoreError("Failed to apply booking transition", err)
	}

	booking, findErr := s.repo.FindByID(ctx, id)
	if findErr != nil {
		if errors.Is(findErr, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		return mongodb.StoreError("Failed to check booking", findErr)
	}

	if lifecycle.RequiresAssignedGuide(action) && booking.GuideEmail != guideEmail {
		return apperrors.Forbidden("booking is not assigned to this guide")
	}

	if !lifecycle.CanApply(action, booking.BookingStatus) {
		from, _ := lifecycle.Preconditions(action)
		return apperrors.InvalidTransition(fmt.Sprintf(
			"cannot %s a booking in status %q (requires %v)",
			action, booking.BookingStatus, from,
		))
	}

	// Preconditions held on the re-read: a concurrent writer won the
	// race between our update and this check.
	return apperrors.InvalidTransition(fmt.Sprintf(
		"booking changed concurrently; cannot %s from status %q", action, booking.BookingStatus,
	))
}

func (s *bookingService) mapPaymentError(ctx context.Context, id string, callerEmail string, createdBy string, err error) error {
	if errors.Is(err, bookingserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid booking ID format")
	}
	if !errors.Is(err, bookingserrors.ErrPreconditionFailed) {
		s.cfg.Log.Error("Payment confirmation failed", "id", id, "error", err)
		return mongodb.StoreError("Failed to confirm payment", err)
	}

	booking, findErr := s.repo.FindByID(ctx, id)
	if findErr != nil {
		if errors.Is(findErr, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		return mongodb.StoreError("Failed to check booking", findErr)
	}

	if createdBy != "" && booking.CreatedBy != callerEmail {
		return apperrors.Forbidden("only the booking owner may confirm its payment")
	}
	if booking.PaymentStatus == model.PaymentPaid {
		return apperrors.InvalidTransition("booking is already paid")
	}

	return apperrors.InvalidTransition("booking changed concurrently; payment not applied")
}

func (s *bookingService) publish(ctx context.Context, eventType string, booking *model.Booking) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, eventType, booking); err != nil {
		s.cfg.Log.Warn("Failed to publish booking event",
			"event_type", eventType,
			"id", booking.ID,
			"error", err,
		)
	}
}

func (s *bookingService) publishByID(ctx context.Context, eventType string, id string) {
	if s.events == nil {
		return
	}
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.cfg.Log.Warn("Failed to load booking for event", "event_type", eventType, "id", id, "error", err)
		return
	}
	s.publish(ctx, eventType, booking)
}

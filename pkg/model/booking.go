package model

import "time"

const (
	BookingPending       = "pending"
	BookingInReview      = "in-review"
	BookingAccepted      = "accepted"
	BookingRejected      = "rejected"
	BookingGuideAssigned = "guide_assigned"

	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

// Booking tracks a customer's request through its status lifecycle.
// BookingStatus and PaymentStatus advance independently; the Payment
// sub-record exists if and only if PaymentStatus is paid.
type Booking struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	PackageID     string    `json:"package_id" bson:"package_id" validate:"required,mongodb"`
	CreatedBy     string    `json:"created_by" bson:"created_by" validate:"required,email"`
	GuideEmail    string    `json:"guide_email,omitempty" bson:"guide_email,omitempty" validate:"omitempty,email"`
	TourDate      time.Time `json:"tour_date" bson:"tour_date" validate:"required"`
	Guests        int       `json:"guests" bson:"guests" validate:"required,min=1,max=50"`
	BookingStatus string    `json:"booking_status" bson:"booking_status" validate:"required,oneof=pending in-review accepted rejected guide_assigned"`
	PaymentStatus string    `json:"payment_status" bson:"payment_status" validate:"required,oneof=unpaid paid"`
	Payment       *Payment  `json:"payment,omitempty" bson:"payment,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

// Payment is populated atomically with the unpaid -> paid status change.
type Payment struct {
	TransactionID string    `json:"transaction_id" bson:"transaction_id" validate:"required,min=1"`
	Method        string    `json:"method,omitempty" bson:"method,omitempty" validate:"omitempty,min=2,max=40"`
	Amount        float64   `json:"amount" bson:"amount" validate:"required,gt=0"`
	Currency      string    `json:"currency,omitempty" bson:"currency,omitempty" validate:"omitempty,len=3"`
	PaidAt        time.Time `json:"paid_at" bson:"paid_at" validate:"omitempty"`
}

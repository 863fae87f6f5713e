package model

import "time"

const (
	ApplicationPending  = "pending"
	ApplicationActive   = "active"
	ApplicationRejected = "rejected"
)

// GuideApplication is submitted by a user and decided by an admin.
// Active and rejected are terminal.
type GuideApplication struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Email      string    `json:"email" bson:"email" validate:"required,email"`
	Name       string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Experience string    `json:"experience,omitempty" bson:"experience,omitempty" validate:"omitempty,max=2000"`
	Languages  []string  `json:"languages,omitempty" bson:"languages,omitempty" validate:"omitempty,dive,min=2,max=40"`
	Status     string    `json:"status" bson:"status" validate:"required,oneof=pending active rejected"`
	AppliedAt  time.Time `json:"applied_at" bson:"applied_at" validate:"omitempty"`
	DecidedAt  time.Time `json:"decided_at,omitempty" bson:"decided_at,omitempty" validate:"omitempty"`
}

// GuideDecision is the admin's verdict on a pending application. Email
// is optional; when present it must match the stored applicant.
type GuideDecision struct {
	Status string `json:"status" validate:"required,oneof=active rejected"`
	Email  string `json:"email,omitempty" validate:"omitempty,email"`
}

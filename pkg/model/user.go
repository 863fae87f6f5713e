package model

import "time"

const (
	RoleUser  = "user"
	RoleGuide = "guide"
	RoleAdmin = "admin"
)

// User is created on first sign-in observation and never deleted.
// Role is mutated only by an admin action or by the guide-approval side effect.
type User struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Email     string    `json:"email" bson:"email" validate:"required,email"`
	Name      string    `json:"name,omitempty" bson:"name,omitempty" validate:"omitempty,max=100"`
	PhotoURL  string    `json:"photo_url,omitempty" bson:"photo_url,omitempty" validate:"omitempty,url"`
	Role      string    `json:"role" bson:"role" validate:"required,oneof=user guide admin"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	LastLogin time.Time `json:"last_login" bson:"last_login" validate:"omitempty"`
}

package model

import "time"

// Story is a traveller's shared trip report. Straight CRUD, no lifecycle.
type Story struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Title       string    `json:"title" bson:"title" validate:"required,min=2,max=150"`
	AuthorEmail string    `json:"author_email" bson:"author_email" validate:"required,email"`
	Body        string    `json:"body" bson:"body" validate:"required,min=10,max=10000"`
	Images      []string  `json:"images,omitempty" bson:"images,omitempty" validate:"omitempty,dive,url"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

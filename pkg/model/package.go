package model

import "time"

// Package is a tour offering. Straight CRUD, no lifecycle.
type Package struct {
	ID          string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Title       string     `json:"title" bson:"title" validate:"required,min=2,max=150"`
	Location    string     `json:"location" bson:"location" validate:"required,min=2,max=100"`
	Price       float64    `json:"price" bson:"price" validate:"required,gt=0"`
	Duration    string     `json:"duration,omitempty" bson:"duration,omitempty" validate:"omitempty,max=60"`
	Description string     `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=5000"`
	Images      []string   `json:"images,omitempty" bson:"images,omitempty" validate:"omitempty,dive,url"`
	Plan        []PlanStep `json:"plan,omitempty" bson:"plan,omitempty" validate:"omitempty,dive"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type PlanStep struct {
	Day      int    `json:"day" bson:"day" validate:"required,min=1"`
	Headline string `json:"headline" bson:"headline" validate:"required,max=150"`
	Details  string `json:"details,omitempty" bson:"details,omitempty" validate:"omitempty,max=2000"`
}

package model

import "time"

type Enquiry struct {
	ID              string    `bson:"_id,omitempty" json:"id" validate:"omitempty,mongodb"`
	Name            string    `bson:"name" json:"name" validate:"required,min=2,max=100"`
	Email           string    `bson:"email" json:"email" validate:"required,email"`
	Phone           string    `bson:"phone" json:"phone" validate:"omitempty,e164"`
	DestinationSlug string    `bson:"destination_slug" json:"destination_slug" validate:"omitempty,max=200"`
	Message         string    `bson:"message" json:"message" validate:"required,max=2000"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
}

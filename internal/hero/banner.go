// Package hero manages the landing-page carousel.
package hero

import "time"

type Banner struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	ImageURL   string    `json:"imageUrl" bson:"imageUrl"`
	Title      string    `json:"title,omitempty" bson:"title,omitempty"`
	Subtitle   string    `json:"subtitle,omitempty" bson:"subtitle,omitempty"`
	ButtonText string    `json:"buttonText,omitempty" bson:"buttonText,omitempty"`
	ButtonLink string    `json:"buttonLink,omitempty" bson:"buttonLink,omitempty"`
	Order      int       `json:"order" bson:"order"`
	IsActive   bool      `json:"isActive" bson:"isActive"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updatedAt"`
}

type Input struct {
	ImageURL   string `json:"imageUrl"`
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	ButtonText string `json:"buttonText"`
	ButtonLink string `json:"buttonLink"`
	Order      *int   `json:"order"`
	IsActive   *bool  `json:"isActive"`
}

type Patch struct {
	ImageURL   *string `json:"imageUrl"`
	Title      *string `json:"title"`
	Subtitle   *string `json:"subtitle"`
	ButtonText *string `json:"buttonText"`
	ButtonLink *string `json:"buttonLink"`
	Order      *int    `json:"order"`
}

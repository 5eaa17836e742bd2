package categories

import "time"

// Category groups listings (e.g. "Sweet Shops", "Gyms").
type Category struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Slug        string    `json:"slug" bson:"slug"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Icon        string    `json:"icon,omitempty" bson:"icon,omitempty"`
	Image       string    `json:"image,omitempty" bson:"image,omitempty"`
	ParentID    string    `json:"parentId,omitempty" bson:"parentId,omitempty"`
	Order       int       `json:"order" bson:"order"`
	IsActive    bool      `json:"isActive" bson:"isActive"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

type Input struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon" yaml:"icon"`
	Image       string `json:"image" yaml:"image"`
	ParentID    string `json:"parentId" yaml:"parentId"`
	Order       int    `json:"order" yaml:"order"`
	IsActive    *bool  `json:"isActive" yaml:"isActive"`
}

type Patch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Image       *string `json:"image"`
	ParentID    *string `json:"parentId"`
	Order       *int    `json:"order"`
}

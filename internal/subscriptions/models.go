package subscriptions

import "time"

const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
	StatusExpired   = "expired"
)

// Plan is a paid tier. Price is in paise; MaxBusinesses 0 means unlimited.
type Plan struct {
	ID              string    `json:"id" bson:"_id,omitempty"`
	Name            string    `json:"name" bson:"name"`
	Slug            string    `json:"slug" bson:"slug"`
	Description     string    `json:"description,omitempty" bson:"description,omitempty"`
	Price           int64     `json:"price" bson:"price"`
	DurationDays    int       `json:"durationDays" bson:"durationDays"`
	MaxBusinesses   int       `json:"maxBusinesses" bson:"maxBusinesses"`
	Features        []string  `json:"features" bson:"features"`
	FeaturedListing bool      `json:"featuredListing" bson:"featuredListing"`
	IsActive        bool      `json:"isActive" bson:"isActive"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt" bson:"updatedAt"`
}

type PlanInput struct {
	Name            string   `json:"name" yaml:"name"`
	Description     string   `json:"description" yaml:"description"`
	Price           int64    `json:"price" yaml:"price"`
	DurationDays    int      `json:"durationDays" yaml:"durationDays"`
	MaxBusinesses   int      `json:"maxBusinesses" yaml:"maxBusinesses"`
	Features        []string `json:"features" yaml:"features"`
	FeaturedListing bool     `json:"featuredListing" yaml:"featuredListing"`
	IsActive        *bool    `json:"isActive" yaml:"isActive"`
}

type PlanPatch struct {
	Name            *string   `json:"name"`
	Description     *string   `json:"description"`
	Price           *int64    `json:"price"`
	DurationDays    *int      `json:"durationDays"`
	MaxBusinesses   *int      `json:"maxBusinesses"`
	Features        *[]string `json:"features"`
	FeaturedListing *bool     `json:"featuredListing"`
}

type Subscription struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	VendorID   string    `json:"vendorId" bson:"vendorId"`
	PlanID     string    `json:"planId" bson:"planId"`
	StartsAt   time.Time `json:"startsAt" bson:"startsAt"`
	EndsAt     time.Time `json:"endsAt" bson:"endsAt"`
	Status     string    `json:"status" bson:"status"`
	PaymentRef string    `json:"paymentRef,omitempty" bson:"paymentRef,omitempty"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Current reports whether s is active and not past its end at now.
func (s *Subscription) Current(now time.Time) bool {
	return s != nil && s.Status == StatusActive && now.Before(s.EndsAt)
}

package ads

import "time"

const (
	PlacementHome     = "home"
	PlacementSidebar  = "sidebar"
	PlacementCategory = "category"
	PlacementListing  = "listing"
)

func ValidPlacement(p string) bool {
	switch p {
	case PlacementHome, PlacementSidebar, PlacementCategory, PlacementListing:
		return true
	}
	return false
}

type Ad struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	Title       string     `json:"title" bson:"title"`
	ImageURL    string     `json:"imageUrl" bson:"imageUrl"`
	LinkURL     string     `json:"linkUrl,omitempty" bson:"linkUrl,omitempty"`
	Placement   string     `json:"placement" bson:"placement"`
	CategoryID  string     `json:"categoryId,omitempty" bson:"categoryId,omitempty"`
	StartsAt    *time.Time `json:"startsAt,omitempty" bson:"startsAt,omitempty"`
	EndsAt      *time.Time `json:"endsAt,omitempty" bson:"endsAt,omitempty"`
	Order       int        `json:"order" bson:"order"`
	IsActive    bool       `json:"isActive" bson:"isActive"`
	Clicks      int64      `json:"clicks" bson:"clicks"`
	Impressions int64      `json:"impressions" bson:"impressions"`
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// Live reports whether the ad is active and inside its date window at now.
func (a Ad) Live(now time.Time) bool {
	if !a.IsActive {
		return false
	}
	if a.StartsAt != nil && now.Before(*a.StartsAt) {
		return false
	}
	return a.EndsAt == nil || now.Before(*a.EndsAt)
}

type Input struct {
	Title      string     `json:"title"`
	ImageURL   string     `json:"imageUrl"`
	LinkURL    string     `json:"linkUrl"`
	Placement  string     `json:"placement"`
	CategoryID string     `json:"categoryId"`
	StartsAt   *time.Time `json:"startsAt"`
	EndsAt     *time.Time `json:"endsAt"`
	Order      int        `json:"order"`
	IsActive   *bool      `json:"isActive"`
}

type Patch struct {
	Title      *string    `json:"title"`
	ImageURL   *string    `json:"imageUrl"`
	LinkURL    *string    `json:"linkUrl"`
	Placement  *string    `json:"placement"`
	CategoryID *string    `json:"categoryId"`
	StartsAt   *time.Time `json:"startsAt"`
	EndsAt     *time.Time `json:"endsAt"`
	Order      *int       `json:"order"`
}

// Query selects live ads. An empty CategoryID matches ads of any category.
type Query struct {
	Placement  string
	CategoryID string
	Now        time.Time
}

func (q Query) match(a Ad) bool {
	if q.Placement != "" && a.Placement != q.Placement {
		return false
	}
	if q.CategoryID != "" && a.CategoryID != "" && a.CategoryID != q.CategoryID {
		return false
	}
	return a.Live(q.Now)
}

package business

import (
	"strings"
	"time"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/models"
)

// Listing statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

type Contact struct {
	Phone    string `json:"phone" bson:"phone"`
	AltPhone string `json:"altPhone,omitempty" bson:"altPhone,omitempty"`
	Email    string `json:"email,omitempty" bson:"email,omitempty"`
	Website  string `json:"website,omitempty" bson:"website,omitempty"`
	WhatsApp string `json:"whatsapp,omitempty" bson:"whatsapp,omitempty"`
}

type Address struct {
	Line1   string `json:"line1,omitempty" bson:"line1,omitempty"`
	Line2   string `json:"line2,omitempty" bson:"line2,omitempty"`
	Area    string `json:"area,omitempty" bson:"area,omitempty"`
	City    string `json:"city" bson:"city"`
	State   string `json:"state,omitempty" bson:"state,omitempty"`
	Pincode string `json:"pincode,omitempty" bson:"pincode,omitempty"`
	Country string `json:"country" bson:"country"`
}

type Rating struct {
	Average float64 `json:"average" bson:"average"`
	Count   int     `json:"count" bson:"count"`
}

type OpeningHours struct {
	Day    string `json:"day" bson:"day"`
	Open   string `json:"open,omitempty" bson:"open,omitempty"`
	Close  string `json:"close,omitempty" bson:"close,omitempty"`
	Closed bool   `json:"closed" bson:"closed"`
}

// Business is a directory listing.
type Business struct {
	ID           string           `json:"id" bson:"_id,omitempty"`
	Name         string           `json:"name" bson:"name"`
	Slug         string           `json:"slug" bson:"slug"`
	Description  string           `json:"description,omitempty" bson:"description,omitempty"`
	CategoryID   string           `json:"categoryId" bson:"categoryId"`
	VendorID     string           `json:"vendorId" bson:"vendorId"`
	Contact      Contact          `json:"contact" bson:"contact"`
	Address      Address          `json:"address" bson:"address"`
	Location     *models.GeoPoint `json:"location,omitempty" bson:"location,omitempty"`
	Rating       Rating           `json:"rating" bson:"rating"`
	Logo         string           `json:"logo,omitempty" bson:"logo,omitempty"`
	Images       []string         `json:"images" bson:"images"`
	Tags         []string         `json:"tags" bson:"tags"`
	OpeningHours []OpeningHours   `json:"openingHours,omitempty" bson:"openingHours,omitempty"`
	Status       string           `json:"status" bson:"status"`
	IsActive     bool             `json:"isActive" bson:"isActive"`
	IsFeatured   bool             `json:"isFeatured" bson:"isFeatured"`
	Views        int64            `json:"views" bson:"views"`
	CreatedAt    time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt" bson:"updatedAt"`
}

// Public reports whether visitors may see the listing.
func (b *Business) Public() bool {
	return b.Status == StatusApproved && b.IsActive
}

// Matches applies f to b the way the Mongo filter does.
func (b *Business) Matches(f Filter) bool {
	if f.CategoryID != "" && b.CategoryID != f.CategoryID {
		return false
	}
	if f.VendorID != "" && b.VendorID != f.VendorID {
		return false
	}
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	if f.City != "" && !strings.EqualFold(b.Address.City, f.City) {
		return false
	}
	if f.Active != nil && b.IsActive != *f.Active {
		return false
	}
	if f.Featured != nil && b.IsFeatured != *f.Featured {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		hit := strings.Contains(strings.ToLower(b.Name), q) || strings.Contains(strings.ToLower(b.Description), q)
		for _, t := range b.Tags {
			if hit {
				break
			}
			hit = strings.Contains(strings.ToLower(t), q)
		}
		if !hit {
			return false
		}
	}
	return true
}

// Filter narrows listing queries. Zero values do not filter.
type Filter struct {
	CategoryID string
	City       string
	Query      string
	Status     string
	VendorID   string
	Featured   *bool
	Active     *bool
}

// NearbyQuery searches public listings around a point.
type NearbyQuery struct {
	Lat        float64
	Lng        float64
	RadiusKm   float64
	Limit      int
	CategoryID string
}

const (
	DefaultRadiusKm = 10
	MaxRadiusKm     = 100
)

// Normalize applies the radius and limit bounds.
func (q NearbyQuery) Normalize() NearbyQuery {
	if q.RadiusKm <= 0 {
		q.RadiusKm = DefaultRadiusKm
	}
	if q.RadiusKm > MaxRadiusKm {
		q.RadiusKm = MaxRadiusKm
	}
	if q.Limit <= 0 {
		q.Limit = models.DefaultPageLimit
	}
	if q.Limit > models.MaxPageLimit {
		q.Limit = models.MaxPageLimit
	}
	return q
}

// Nearby is a listing with its distance from the query point.
type Nearby struct {
	Business
	DistanceKm float64 `json:"distanceKm"`
}

// Input is the create payload.
type Input struct {
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	CategoryID   string         `json:"categoryId"`
	VendorID     string         `json:"vendorId"` // honoured for admins only
	Contact      Contact        `json:"contact"`
	Address      Address        `json:"address"`
	Latitude     *float64       `json:"latitude"`
	Longitude    *float64       `json:"longitude"`
	Logo         string         `json:"logo"`
	Images       []string       `json:"images"`
	Tags         []string       `json:"tags"`
	OpeningHours []OpeningHours `json:"openingHours"`
}

// Patch is the update payload; nil fields are left unchanged.
type Patch struct {
	Name         *string         `json:"name"`
	Description  *string         `json:"description"`
	CategoryID   *string         `json:"categoryId"`
	Contact      *Contact        `json:"contact"`
	Address      *Address        `json:"address"`
	Latitude     *float64        `json:"latitude"`
	Longitude    *float64        `json:"longitude"`
	Logo         *string         `json:"logo"`
	Images       *[]string       `json:"images"`
	Tags         *[]string       `json:"tags"`
	OpeningHours *[]OpeningHours `json:"openingHours"`
}

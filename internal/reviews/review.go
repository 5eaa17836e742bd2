package reviews

import "time"

type Review struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	BusinessID string    `json:"businessId" bson:"businessId"`
	Name       string    `json:"name" bson:"name"`
	Email      string    `json:"email,omitempty" bson:"email,omitempty"`
	Rating     int       `json:"rating" bson:"rating"`
	Comment    string    `json:"comment,omitempty" bson:"comment,omitempty"`
	IsVisible  bool      `json:"isVisible" bson:"isVisible"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updatedAt"`
}

type Input struct {
	BusinessID string `json:"businessId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

// Filter narrows admin listings; zero values match everything.
type Filter struct {
	BusinessID string
	Visible    *bool
}

func (f Filter) match(r Review) bool {
	if f.BusinessID != "" && r.BusinessID != f.BusinessID {
		return false
	}
	return f.Visible == nil || r.IsVisible == *f.Visible
}

package inquiries

import "time"

const (
	StatusNew       = "new"
	StatusRead      = "read"
	StatusResponded = "responded"
	StatusClosed    = "closed"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusRead, StatusResponded, StatusClosed:
		return true
	}
	return false
}

// Inquiry is a customer message addressed to a business.
type Inquiry struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	BusinessID string    `json:"businessId" bson:"businessId"`
	VendorID   string    `json:"vendorId" bson:"vendorId"`
	Name       string    `json:"name" bson:"name"`
	Email      string    `json:"email,omitempty" bson:"email,omitempty"`
	Phone      string    `json:"phone" bson:"phone"`
	Message    string    `json:"message" bson:"message"`
	Status     string    `json:"status" bson:"status"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updatedAt"`
}

type Input struct {
	BusinessID string `json:"businessId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Message    string `json:"message"`
}

type Filter struct {
	VendorID   string
	BusinessID string
	Status     string
}

func (f Filter) match(i Inquiry) bool {
	return (f.VendorID == "" || i.VendorID == f.VendorID) &&
		(f.BusinessID == "" || i.BusinessID == f.BusinessID) &&
		(f.Status == "" || i.Status == f.Status)
}

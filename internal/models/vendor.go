package models

import "time"

const (
	RoleVendor = "vendor"
	RoleAdmin  = "admin"
)

// Vendor is a business owner (or admin) account.
type Vendor struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Sub          string    `bson:"sub,omitempty" json:"-"` // OIDC subject when signed in via a provider
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	Phone        string    `bson:"phone,omitempty" json:"phone,omitempty"`
	PasswordHash string    `bson:"passwordHash,omitempty" json:"-"`
	Role         string    `bson:"role" json:"role"`
	IsActive     bool      `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (v *Vendor) IsAdmin() bool { return v != nil && v.Role == RoleAdmin }

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role classifies an account at the authorization boundary.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

// Account represents a registered user or administrator.
type Account struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"_id,omitempty"`
	Email             string               `bson:"email" json:"email"`
	Username          string               `bson:"username" json:"username"`
	Password          string               `bson:"password" json:"-"`
	FirstName         string               `bson:"firstName" json:"firstName"`
	LastName          string               `bson:"lastName" json:"lastName"`
	Avatar            string               `bson:"avatar" json:"avatar"`
	Role              Role                 `bson:"role" json:"role"`
	ShippingAddresses []primitive.ObjectID `bson:"shippingAddresses" json:"shippingAddresses"`
	OTP               string               `bson:"otp,omitempty" json:"-"`
	OTPExpiresAt      *time.Time           `bson:"otpExpiresAt,omitempty" json:"-"`
	ResetToken        string               `bson:"resetToken,omitempty" json:"-"`
	ResetExpiresAt    *time.Time           `bson:"resetExpiresAt,omitempty" json:"-"`
	CreatedAt         time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time            `bson:"updatedAt" json:"updatedAt"`
}

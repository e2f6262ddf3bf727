package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order is an immutable snapshot of a cart taken at checkout.
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	AccountID primitive.ObjectID `bson:"accountId" json:"accountId"`
	Carts     []CartItem         `bson:"carts" json:"carts"`
	Total     float64            `bson:"total" json:"total"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is one line of a cart. A line is identified by product id
// plus size, so two sizes of the same shoe occupy two lines.
type CartItem struct {
	ProductID primitive.ObjectID `bson:"_id" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Size      string             `bson:"size" json:"size"`
	Image     string             `bson:"image" json:"image"`
	Price     float64            `bson:"price" json:"price"`
	BuyAmount int                `bson:"buyAmount" json:"buyAmount"`
}

// Cart is the single cart of an account.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	AccountID primitive.ObjectID `bson:"accountId" json:"accountId"`
	Products  []CartItem         `bson:"products" json:"products"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

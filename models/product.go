package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductSize is a single size variant of a product.
type ProductSize struct {
	Size   string `bson:"size" json:"size"`
	Enable bool   `bson:"enable" json:"enable"`
}

// Product represents a catalog item.
type Product struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"_id,omitempty"`
	Name          string               `bson:"name" json:"name"`
	SubTitle      string               `bson:"subTitle" json:"subTitle"`
	Description   string               `bson:"description" json:"description"`
	Sizes         []ProductSize        `bson:"sizes" json:"sizes"`
	Image         string               `bson:"image" json:"image"`
	Thumbnail     string               `bson:"thumbnail" json:"thumbnail"`
	Price         float64              `bson:"price" json:"price"`
	OriginalPrice float64              `bson:"originalPrice" json:"originalPrice"`
	Slug          string               `bson:"slug" json:"slug"`
	Categories    []primitive.ObjectID `bson:"categories" json:"categories"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt" json:"updatedAt"`
}

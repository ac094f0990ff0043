package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Party identifies the customer or seller attached to a record.
type Party struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Image string `bson:"image" json:"image"`
}

type Plant struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name" validate:"required"`
	Category    string             `bson:"category" json:"category" validate:"required"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price" validate:"gte=0"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	Image       string             `bson:"image" json:"image"`
	Seller      Party              `bson:"seller" json:"seller"`
}

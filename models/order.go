package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusInProgress OrderStatus = "In Progress"
	OrderStatusDelivered  OrderStatus = "Delivered"
)

// Valid reports whether s is one of the three lifecycle statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusDelivered:
		return true
	}
	return false
}

type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	PlantID       string             `bson:"plantId" json:"plantId" validate:"required"`
	Customer      Party              `bson:"customer" json:"customer"`
	Seller        string             `bson:"seller" json:"seller" validate:"required"`
	Price         float64            `bson:"price" json:"price" validate:"gte=0"`
	Quantity      int                `bson:"quantity" json:"quantity" validate:"gt=0"`
	Address       string             `bson:"address" json:"address"`
	Status        OrderStatus        `bson:"status" json:"status"`
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
}

// OrderView is an order joined with the name, image and category of its plant.
type OrderView struct {
	Order    `bson:",inline"`
	Name     string `bson:"name" json:"name"`
	Image    string `bson:"image" json:"image"`
	Category string `bson:"category" json:"category"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Fulfillment statuses. Any status may move to any other status: the
// dashboard is allowed to re-open a Completed order.
const (
	StatusPending        = "Pending"
	StatusPreparing      = "Preparing"
	StatusReadyToDeliver = "Ready to Deliver"
	StatusCompleted      = "Completed"
)

var ValidStatuses = []string{StatusPending, StatusPreparing, StatusReadyToDeliver, StatusCompleted}

// DefaultProductImage is used when an order comes in without a snapshot image.
const DefaultProductImage = "/images/classic-orange.png"

// Order snapshots the product name, image and price at placement time, so
// later catalog edits never alter historical orders.
type Order struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID      string             `bson:"orderId" json:"orderId"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Product      string             `bson:"product" json:"product"`
	Quantity     int                `bson:"quantity" json:"quantity"`
	Address      string             `bson:"address" json:"address"`
	Status       string             `bson:"status" json:"status"`
	ProductImage string             `bson:"productImage" json:"productImage"`
	Price        float64            `bson:"price" json:"price"`
	TotalPrice   float64            `bson:"totalPrice" json:"totalPrice"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

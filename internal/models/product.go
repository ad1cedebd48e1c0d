package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product categories (fixed set, "Juices" kept for legacy catalog entries)
const (
	CategoryJuice        = "Juice"
	CategoryJuices       = "Juices"
	CategoryCoconutWater = "Coconut Water"
	CategoryCombos       = "Combos"
)

var ValidCategories = []string{CategoryJuice, CategoryJuices, CategoryCoconutWater, CategoryCombos}

// Product is a catalog entry. Read-only from the order flow's perspective:
// customer-facing operations never mutate it.
type Product struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	ImageURL       string             `bson:"imageURL" json:"imageURL"`
	Category       string             `bson:"category" json:"category"`
	Size           string             `bson:"size" json:"size"`
	Weight         string             `bson:"weight,omitempty" json:"weight,omitempty"`
	Price          float64            `bson:"price" json:"price"`
	Discount       int                `bson:"discount" json:"discount"`
	OriginalPrice  float64            `bson:"originalPrice,omitempty" json:"originalPrice,omitempty"`
	Description    string             `bson:"description" json:"description"`
	AvailableSizes []string           `bson:"availableSizes" json:"availableSizes"`
	Stock          int                `bson:"stock" json:"stock"`
	Featured       bool               `bson:"featured" json:"featured"`
	BestSelling    bool               `bson:"bestSelling" json:"bestSelling"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func IsValidCategory(category string) bool {
	for _, c := range ValidCategories {
		if c == category {
			return true
		}
	}
	return false
}

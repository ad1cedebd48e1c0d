// Command seed wipes and reseeds the juice catalog, then pushes it into the
// Elasticsearch index when one is configured.
package main

import (
	"context"
	"log"
	"time"

	"freshsip_back_end/internal/config"
	"freshsip_back_end/internal/database"
	"freshsip_back_end/internal/models"
	"freshsip_back_end/internal/services"

	"go.mongodb.org/mongo-driver/bson"
)

func main() {
	config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	database.ConnectDatabases()
	defer database.CloseMongo(ctx)

	col := database.Mongo.Collection("products")

	if _, err := col.DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("❌ Failed to clear products: %v", err)
	}
	log.Println("🧹 Cleared existing products")

	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(sampleProducts))
	for i := range sampleProducts {
		p := sampleProducts[i]
		// Stagger creation times so newest/featured sorts are deterministic
		p.CreatedAt = now.Add(time.Duration(i) * time.Second)
		p.UpdatedAt = p.CreatedAt
		docs = append(docs, p)
	}

	res, err := col.InsertMany(ctx, docs)
	if err != nil {
		log.Fatalf("❌ Failed to insert products: %v", err)
	}
	log.Printf("✅ Inserted %d products", len(res.InsertedIDs))

	if database.Elastic != nil {
		cursor, err := col.Find(ctx, bson.M{})
		if err != nil {
			log.Fatalf("❌ Failed to read back products: %v", err)
		}
		var inserted []models.Product
		if err := cursor.All(ctx, &inserted); err != nil {
			log.Fatalf("❌ Failed to decode products: %v", err)
		}
		for _, p := range inserted {
			services.IndexProduct(p)
		}
		log.Printf("✅ Indexed %d products into Elasticsearch", len(inserted))
	}

	log.Println("🌱 Seeding completed")
}

var sampleProducts = []models.Product{
	{
		Name:           "The Golden Squeeze Orange Juice",
		ImageURL:       "/images/orange-juice-home.png",
		Category:       models.CategoryJuice,
		Size:           "500ml",
		Weight:         "Pack of 6",
		Price:          24.99,
		Discount:       15,
		OriginalPrice:  29.99,
		Description:    "Freshly squeezed orange juice made from premium oranges. No additives, just pure natural goodness.",
		AvailableSizes: []string{"250ml", "500ml", "1L"},
		Stock:          50,
		Featured:       true,
		BestSelling:    true,
	},
	{
		Name:           "Ginger Zest Juice",
		ImageURL:       "/images/ginger-zest-juice.png",
		Category:       models.CategoryJuice,
		Size:           "350ml",
		Weight:         "Pack of 4",
		Price:          18.99,
		Description:    "Refreshing blend of orange juice with a zesty kick of ginger. Perfect for a healthy morning boost.",
		AvailableSizes: []string{"250ml", "350ml"},
		Stock:          30,
		Featured:       true,
	},
	{
		Name:           "Mango Tango Fresh Blend",
		ImageURL:       "/images/mango-tango-juice.png",
		Category:       models.CategoryJuice,
		Size:           "400ml",
		Weight:         "Pack of 6",
		Price:          22.99,
		Discount:       20,
		OriginalPrice:  28.99,
		Description:    "Tropical mango juice blended to perfection. Sweet, smooth, and naturally delicious.",
		AvailableSizes: []string{"250ml", "400ml", "750ml"},
		Stock:          40,
		BestSelling:    true,
	},
	{
		Name:           "Pineapple Sunrise",
		ImageURL:       "/images/pineapple-sunrise-juice.png",
		Category:       models.CategoryJuice,
		Size:           "450ml",
		Weight:         "Pack of 4",
		Price:          20.99,
		Discount:       10,
		OriginalPrice:  23.99,
		Description:    "Bright and tangy pineapple juice that brings sunshine to your day. Pure tropical goodness.",
		AvailableSizes: []string{"300ml", "450ml"},
		Stock:          35,
	},
	{
		Name:           "Classic Orange Juice",
		ImageURL:       "/images/classic-orange.png",
		Category:       models.CategoryJuice,
		Size:           "250ml",
		Weight:         "Pack of 12",
		Price:          16.99,
		Description:    "Traditional orange juice made from hand-picked oranges. Classic taste you'll love.",
		AvailableSizes: []string{"250ml", "500ml"},
		Stock:          60,
		BestSelling:    true,
	},
	{
		Name:           "Mixed Fruit Combo",
		ImageURL:       "/images/mixed-fruit-combo.png",
		Category:       models.CategoryCombos,
		Size:           "Variety Pack",
		Weight:         "Pack of 8",
		Price:          35.99,
		Discount:       25,
		OriginalPrice:  47.99,
		Description:    "Perfect variety pack with our best-selling juices. Great value for the whole family.",
		AvailableSizes: []string{"Variety Pack"},
		Stock:          25,
		Featured:       true,
		BestSelling:    true,
	},
	{
		Name:           "Pure Coconut Water",
		ImageURL:       "/images/coconut-water.png",
		Category:       models.CategoryCoconutWater,
		Size:           "330ml",
		Weight:         "Pack of 6",
		Price:          19.99,
		Description:    "100% pure coconut water, naturally refreshing and hydrating. Straight from young coconuts.",
		AvailableSizes: []string{"250ml", "330ml", "500ml"},
		Stock:          45,
	},
	{
		Name:           "Premium Orange Deluxe",
		ImageURL:       "/images/orange-juice-home.png",
		Category:       models.CategoryJuices,
		Size:           "1L",
		Weight:         "Pack of 2",
		Price:          32.99,
		Description:    "Premium grade orange juice with pulp. Made from the finest oranges for an authentic taste.",
		AvailableSizes: []string{"500ml", "1L"},
		Stock:          20,
		Featured:       true,
	},
}

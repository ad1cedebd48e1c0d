package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"freshsip_back_end/internal/config"
	"freshsip_back_end/internal/database"
	"freshsip_back_end/internal/middleware"
	"freshsip_back_end/internal/routes"
	"freshsip_back_end/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.Load()

	database.ConnectDatabases()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := store.EnsureIndexes(ctx, database.Mongo); err != nil {
		log.Fatalf("❌ Index bootstrap failed: %v", err)
	}
	log.Println("✅ MongoDB indexes ensured")

	stores := store.NewMongoStores(database.Mongo)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(cors.New(corsConfig()))

	routes.RegisterRoutes(r, stores)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 FreshSip API listening on port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Server stopped: %v", err)
	}
}

// corsConfig allows the configured frontend origins in release mode and
// everything during development.
func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Content-Type", "Authorization"}
	cfg.AllowCredentials = true

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowOrigins = strings.Split(origins, ",")
	} else {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	}
	return cfg
}

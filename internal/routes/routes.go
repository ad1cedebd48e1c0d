package routes

import (
	"net/http"
	"time"

	"freshsip_back_end/internal/handlers/auth"
	"freshsip_back_end/internal/handlers/order"
	"freshsip_back_end/internal/handlers/product"
	"freshsip_back_end/internal/middleware"
	"freshsip_back_end/internal/store"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the full API surface onto the engine.
func RegisterRoutes(r *gin.Engine, stores store.Stores) {
	authHandler := auth.NewHandler(stores.Users)
	productHandler := product.NewHandler(stores.Products)
	orderHandler := order.NewHandler(stores.Orders)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "FreshSip API", "time": time.Now().UTC()})
	})

	api := r.Group("/api")

	// Auth
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", middleware.LoginRateLimit(), authHandler.Login)
	api.GET("/auth/profile", middleware.AuthRequired(), authHandler.Profile)

	// Catalog (read-only surface)
	api.GET("/products", productHandler.ListProducts)
	api.GET("/products/search", productHandler.SearchProducts)
	api.GET("/products/:id", productHandler.GetProduct)

	// Orders
	api.POST("/orders", orderHandler.CreateOrder)
	api.GET("/orders", middleware.AuthRequired(), middleware.RequireAdmin, orderHandler.GetAllOrders)
	api.GET("/orders/:email", orderHandler.GetOrdersByEmail)
	api.PUT("/orders/:id/status", middleware.AuthRequired(), middleware.RequireAdmin, orderHandler.UpdateOrderStatus)
}

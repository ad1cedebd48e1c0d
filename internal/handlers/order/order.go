package order

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strings"
	"time"

	"freshsip_back_end/internal/models"
	"freshsip_back_end/internal/services"
	"freshsip_back_end/internal/store"
	"freshsip_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Collisions on the generated order id are expected to be exceedingly rare;
// retry with a fresh id instead of surfacing them to the caller.
const maxOrderIDAttempts = 3

const storeTimeout = 10 * time.Second

var validate = validator.New()

type Handler struct {
	orders store.OrderStore
}

func NewHandler(orders store.OrderStore) *Handler {
	return &Handler{orders: orders}
}

type createOrderRequest struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Product      string   `json:"product"`
	Quantity     *float64 `json:"quantity"`
	Address      string   `json:"address"`
	ProductID    string   `json:"productId"`
	ProductImage string   `json:"productImage"`
	Price        *float64 `json:"price"`
	TotalPrice   *float64 `json:"totalPrice"`
}

// CreateOrder places a new order. Status is always Pending at creation, any
// caller-supplied status is ignored.
func (h *Handler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	product := strings.TrimSpace(req.Product)
	address := strings.TrimSpace(req.Address)

	if name == "" || email == "" || product == "" || address == "" || req.Quantity == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Missing required fields: name, email, product, quantity, and address are required",
		})
		return
	}

	if err := validate.Var(email, "required,email"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email format"})
		return
	}

	quantity := *req.Quantity
	if quantity < 1 || quantity != math.Trunc(quantity) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Quantity must be a positive integer"})
		return
	}

	price := 0.0
	if req.Price != nil {
		price = *req.Price
	}

	// Snapshot pricing: the stored total never changes when the catalog does
	totalPrice := price * quantity
	if req.TotalPrice != nil && *req.TotalPrice > 0 {
		totalPrice = *req.TotalPrice
	}

	productImage := strings.TrimSpace(req.ProductImage)
	if productImage == "" {
		productImage = models.DefaultProductImage
	}

	now := time.Now().UTC()
	order := models.Order{
		Name:         name,
		Email:        email,
		Product:      product,
		Quantity:     int(quantity),
		Address:      address,
		Status:       models.StatusPending,
		ProductImage: productImage,
		Price:        price,
		TotalPrice:   totalPrice,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	var err error
	for attempt := 0; attempt < maxOrderIDAttempts; attempt++ {
		order.OrderID = utils.GenerateOrderID()
		err = h.orders.Insert(ctx, &order)
		if !errors.Is(err, store.ErrDuplicateOrderID) {
			break
		}
	}
	if err != nil {
		serverError(c, "Failed to place order. Please try again.", err)
		return
	}

	go services.SendOrderConfirmation(order)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"orderId": order.OrderID,
		"order":   order,
	})
}

// GetAllOrders returns every order, newest first. Admin only (enforced by
// middleware on the route).
func (h *Handler) GetAllOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	orders, err := h.orders.FindAll(ctx)
	if err != nil {
		serverError(c, "Failed to fetch orders. Please try again.", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrdersByEmail returns the order history for one email, newest first.
// Deliberately unauthenticated: the email is the tracking capability.
func (h *Handler) GetOrdersByEmail(c *gin.Context) {
	email := strings.ToLower(strings.TrimSpace(c.Param("email")))
	if err := validate.Var(email, "required,email"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email format"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	orders, err := h.orders.FindByEmail(ctx, email)
	if err != nil {
		serverError(c, "Failed to fetch orders. Please try again.", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus moves an order to any of the four fulfillment statuses.
// Transitions are unconstrained: Completed orders may be reassigned.
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	if !models.IsValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid status. Valid statuses are: " + strings.Join(models.ValidStatuses, ", "),
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	updated, err := h.orders.UpdateStatus(ctx, c.Param("id"), req.Status)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}
	if err != nil {
		serverError(c, "Failed to update order status. Please try again.", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully",
		"order":   updated,
	})
}

// serverError reports a store failure with a generic message; the underlying
// error detail is only echoed outside release mode.
func serverError(c *gin.Context, message string, err error) {
	body := gin.H{"message": message}
	if gin.Mode() != gin.ReleaseMode && err != nil {
		body["error"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}

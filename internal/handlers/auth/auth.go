package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"freshsip_back_end/internal/models"
	"freshsip_back_end/internal/store"
	"freshsip_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const storeTimeout = 10 * time.Second

var validate = validator.New()

type Handler struct {
	users store.UserStore
}

func NewHandler(users store.UserStore) *Handler {
	return &Handler{users: users}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func userPayload(user models.User) gin.H {
	return gin.H{
		"id":    user.ID.Hex(),
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	}
}

// Signup creates an account and issues a token. Duplicate emails are a 409.
func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" || email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}

	if err := validate.Var(email, "required,email"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email format"})
		return
	}

	// Only an explicit "admin" is honored, anything else is a customer
	role := models.RoleUser
	if req.Role == models.RoleAdmin {
		role = models.RoleAdmin
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		serverError(c, "Server error", err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	now := time.Now().UTC()
	user := models.User{
		Name:      name,
		Email:     email,
		Password:  hash,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// The unique index is the real guard; a pre-check just gives the common
	// case a clean answer without relying on error mapping.
	if _, err := h.users.FindByEmail(ctx, email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"message": "Email already in use"})
		return
	}

	if err := h.users.Insert(ctx, &user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{"message": "Email already in use"})
			return
		}
		serverError(c, "Server error", err)
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		serverError(c, "Server error", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  userPayload(user),
	})
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	user, err := h.users.FindByEmail(ctx, email)
	if err != nil || !utils.VerifyPassword(user.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateJWT(*user)
	if err != nil {
		serverError(c, "Server error", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  userPayload(*user),
	})
}

// Profile returns the authenticated user, password hash excluded.
func (h *Handler) Profile(c *gin.Context) {
	userID := c.GetString("user_id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	user, err := h.users.FindByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
		return
	}
	if err != nil {
		serverError(c, "Server error", err)
		return
	}

	c.JSON(http.StatusOK, userPayload(*user))
}

func serverError(c *gin.Context, message string, err error) {
	body := gin.H{"message": message}
	if gin.Mode() != gin.ReleaseMode && err != nil {
		body["error"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}

package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"freshsip_back_end/internal/models"
	"freshsip_back_end/internal/store"
	"freshsip_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memUserStore struct {
	mu    sync.Mutex
	users []models.User
}

func (m *memUserStore) Insert(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return store.ErrDuplicateEmail
		}
	}
	user.ID = primitive.NewObjectID()
	m.users = append(m.users, *user)
	return nil
}

func (m *memUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			match := u
			return &match, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memUserStore) FindByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID.Hex() == id {
			match := u
			return &match, nil
		}
	}
	return nil, store.ErrNotFound
}

func newRouter(users store.UserStore) *gin.Engine {
	h := NewHandler(users)
	r := gin.New()
	r.POST("/api/auth/signup", h.Signup)
	r.POST("/api/auth/login", h.Login)
	r.GET("/api/auth/profile", func(c *gin.Context) {
		// Stand-in for AuthRequired: decode the token directly
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		claims, err := utils.ParseJWT(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}
		c.Set("user_id", claims.UserID)
		h.Profile(c)
	})
	return r
}

func postJSON(r *gin.Engine, path string, body map[string]string) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
}

func TestSignup(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	users := &memUserStore{}
	r := newRouter(users)

	w := postJSON(r, "/api/auth/signup", map[string]string{
		"name": "Asha", "email": "Asha@Example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp authResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "asha@example.com", resp.User.Email)
	assert.Equal(t, models.RoleUser, resp.User.Role)

	// Stored credential is hashed, never plaintext
	require.Len(t, users.users, 1)
	assert.NotEqual(t, "secret123", users.users[0].Password)
	assert.True(t, utils.VerifyPassword(users.users[0].Password, "secret123"))

	// The response body never exposes the credential
	assert.NotContains(t, w.Body.String(), "password")
}

func TestSignup_DuplicateEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	users := &memUserStore{}
	r := newRouter(users)

	first := postJSON(r, "/api/auth/signup", map[string]string{
		"name": "Asha", "email": "asha@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, first.Code)

	second := postJSON(r, "/api/auth/signup", map[string]string{
		"name": "Imposter", "email": "asha@example.com", "password": "other456",
	})
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Contains(t, second.Body.String(), "Email already in use")
	assert.Len(t, users.users, 1, "conflict must not create a second record")
}

func TestSignup_MissingFields(t *testing.T) {
	r := newRouter(&memUserStore{})

	for _, body := range []map[string]string{
		{"email": "a@b.com", "password": "x"},
		{"name": "A", "password": "x"},
		{"name": "A", "email": "a@b.com"},
	} {
		w := postJSON(r, "/api/auth/signup", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Missing required fields")
	}
}

func TestSignup_InvalidEmail(t *testing.T) {
	r := newRouter(&memUserStore{})

	w := postJSON(r, "/api/auth/signup", map[string]string{
		"name": "A", "email": "not-an-email", "password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email format")
}

func TestSignup_RoleOnlyHonoredForAdmin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	r := newRouter(&memUserStore{})

	admin := postJSON(r, "/api/auth/signup", map[string]string{
		"name": "Root", "email": "root@example.com", "password": "x", "role": "admin",
	})
	var adminResp authResponse
	require.NoError(t, json.Unmarshal(admin.Body.Bytes(), &adminResp))
	assert.Equal(t, models.RoleAdmin, adminResp.User.Role)

	other := postJSON(r, "/api/auth/signup", map[string]string{
		"name": "Sneaky", "email": "sneaky@example.com", "password": "x", "role": "superuser",
	})
	var otherResp authResponse
	require.NoError(t, json.Unmarshal(other.Body.Bytes(), &otherResp))
	assert.Equal(t, models.RoleUser, otherResp.User.Role)
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	users := &memUserStore{}
	r := newRouter(users)

	postJSON(r, "/api/auth/signup", map[string]string{
		"name": "Asha", "email": "asha@example.com", "password": "secret123",
	})

	w := postJSON(r, "/api/auth/login", map[string]string{
		"email": "Asha@Example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp authResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "asha@example.com", resp.User.Email)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	users := &memUserStore{}
	r := newRouter(users)

	postJSON(r, "/api/auth/signup", map[string]string{
		"name": "Asha", "email": "asha@example.com", "password": "secret123",
	})

	// Wrong password and unknown email produce the same answer
	wrongPassword := postJSON(r, "/api/auth/login", map[string]string{
		"email": "asha@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Contains(t, wrongPassword.Body.String(), "Invalid credentials")

	unknownEmail := postJSON(r, "/api/auth/login", map[string]string{
		"email": "nobody@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Contains(t, unknownEmail.Body.String(), "Invalid credentials")
}

func TestProfile(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	users := &memUserStore{}
	r := newRouter(users)

	signup := postJSON(r, "/api/auth/signup", map[string]string{
		"name": "Asha", "email": "asha@example.com", "password": "secret123",
	})
	var signupResp authResponse
	require.NoError(t, json.Unmarshal(signup.Body.Bytes(), &signupResp))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+signupResp.Token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "asha@example.com")
	assert.NotContains(t, w.Body.String(), "password")
}

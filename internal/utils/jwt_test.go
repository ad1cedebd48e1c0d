package utils

import (
	"testing"
	"time"

	"freshsip_back_end/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestJWTRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")

	user := models.User{
		ID:    primitive.NewObjectID(),
		Name:  "Asha",
		Email: "asha@example.com",
		Role:  models.RoleAdmin,
	}

	token, err := GenerateJWT(user)
	require.NoError(t, err)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, "asha@example.com", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "Asha", claims.Name)
}

func TestJWTCarriesSevenDayValidity(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")

	token, err := GenerateJWT(models.User{ID: primitive.NewObjectID(), Email: "a@b.com", Role: models.RoleUser})
	require.NoError(t, err)

	claims, err := ParseJWT(token)
	require.NoError(t, err)

	remaining := time.Until(claims.ExpiresAt.Time)
	assert.InDelta(t, TokenValidity.Seconds(), remaining.Seconds(), 60)
}

func TestParseJWT_GarbageToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")

	_, err := ParseJWT("definitely.not.ajwt")
	assert.Error(t, err)
}

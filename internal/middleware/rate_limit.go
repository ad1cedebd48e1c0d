package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"freshsip_back_end/internal/database"

	"github.com/gin-gonic/gin"
)

const (
	LoginMaxAttempts = 5
	LoginCooldown    = 15 * time.Minute
	loginAttemptTTL  = 15 * time.Minute
)

// LoginRateLimit counts failed-looking login bursts per email in Redis and
// blocks further attempts during the cooldown. A no-op when Redis is not
// configured.
func LoginRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if database.Redis == nil {
			c.Next()
			return
		}

		// Peek at the body without consuming it
		bodyBytes, _ := io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		var input struct {
			Email string `json:"email"`
		}
		if err := json.Unmarshal(bodyBytes, &input); err != nil || input.Email == "" {
			c.Next()
			return
		}
		email := strings.ToLower(strings.TrimSpace(input.Email))

		ctx := context.Background()
		cooldownKey := "login_cooldown:" + email
		if database.Redis.Exists(ctx, cooldownKey).Val() > 0 {
			ttl := database.Redis.TTL(ctx, cooldownKey).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"message":     fmt.Sprintf("Too many login attempts. Try again in %d minutes", int(ttl.Minutes())+1),
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		attemptKey := "login_attempts:" + email
		attempts, _ := database.Redis.Get(ctx, attemptKey).Int()
		if attempts >= LoginMaxAttempts {
			database.Redis.Set(ctx, cooldownKey, "1", LoginCooldown)
			database.Redis.Del(ctx, attemptKey)
			c.JSON(http.StatusTooManyRequests, gin.H{
				"message":     fmt.Sprintf("Too many login attempts. Blocked for %d minutes", int(LoginCooldown.Minutes())),
				"retry_after": int(LoginCooldown.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()

		// Only failed logins count towards the limit
		if c.Writer.Status() == http.StatusUnauthorized {
			database.Redis.Incr(ctx, attemptKey)
			database.Redis.Expire(ctx, attemptKey, loginAttemptTTL)
		} else if c.Writer.Status() == http.StatusOK {
			database.Redis.Del(ctx, attemptKey)
		}
	}
}

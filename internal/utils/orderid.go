package utils

import (
	"crypto/rand"
	"fmt"
	"time"
)

const orderIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateOrderID builds a human-readable order identifier: an "FS" prefix,
// the current unix-millisecond timestamp, and a 4-character random suffix so
// two orders placed in the same millisecond never collide. The store's unique
// index is the final guarantee; callers retry on a duplicate-key error.
func GenerateOrderID() string {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		// crypto/rand failing means the process is in serious trouble;
		// fall back to the timestamp alone and let the unique index catch
		// the (already unlikely) collision.
		return fmt.Sprintf("FS%d", time.Now().UnixMilli())
	}
	for i, b := range suffix {
		suffix[i] = orderIDAlphabet[int(b)%len(orderIDAlphabet)]
	}
	return fmt.Sprintf("FS%d%s", time.Now().UnixMilli(), suffix)
}

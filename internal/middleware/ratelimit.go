package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/aliwaqas-commits/QuickScribe-AI/internal/ratelimit"
	"github.com/gin-gonic/gin"
)

// fallbackClientKey buckets every request that arrives without a forwarded
// address. Direct callers therefore share one counter.
const fallbackClientKey = "127.0.0.1"

// RateLimit counts the request against the caller's bucket and rejects once
// the window's threshold is exceeded. The increment happens before the check,
// so the first request over the threshold is itself counted.
func RateLimit(store *ratelimit.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := clientKey(c)
		c.Set("client_key", key)

		count := store.Increment(key)

		remaining := store.Limit() - count
		if remaining < 0 {
			remaining = 0
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(store.Limit()))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if count > store.Limit() {
			c.Header("Retry-After", strconv.Itoa(int(store.Window().Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": fmt.Sprintf("Too many requests. Please try again in %d minutes.",
					int(store.Window().Minutes())),
			})
			return
		}

		c.Next()
	}
}

func clientKey(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		if first, _, found := strings.Cut(xff, ","); found {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(xff)
	}
	return fallbackClientKey
}

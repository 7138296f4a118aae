package ratelimit

import (
	"fmt"
	"net/http"
	"strings"

	"taxibe/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

// Middleware enforces the per-tier rate limits on every route.
func Middleware(rateLimiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		limitType := getRateLimitType(c.FullPath())

		result, err := rateLimiter.IsAllowed(c.Request.Context(), clientIP, limitType)
		if err != nil {
			// Redis trouble must not block traffic.
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", result.ResetTime))

		if !result.Allowed {
			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded", map[string]interface{}{
				"limit":      result.Limit,
				"reset_time": result.ResetTime,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// getRateLimitType maps a route to its budget tier.
func getRateLimitType(path string) RateLimitType {
	switch {
	case path == "/health" || path == "/ping" || strings.HasSuffix(path, "/status"):
		return RateLimitTypeHealth
	case strings.Contains(path, "/auth/"):
		return RateLimitTypeAuth
	case strings.Contains(path, "/bookings") || strings.Contains(path, "/reservations"):
		return RateLimitTypeBooking
	case strings.Contains(path, "/admin/"):
		return RateLimitTypeAdmin
	case strings.Contains(path, "/trips") || strings.Contains(path, "/cooperatives") || strings.Contains(path, "/vehicles"):
		return RateLimitTypePublic
	default:
		return RateLimitTypeDefault
	}
}

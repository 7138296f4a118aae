package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RateLimitType string

const (
	RateLimitTypeDefault RateLimitType = "default"
	RateLimitTypePublic  RateLimitType = "public"
	RateLimitTypeAuth    RateLimitType = "auth"
	RateLimitTypeBooking RateLimitType = "booking"
	RateLimitTypeAdmin   RateLimitType = "admin"
	RateLimitTypeHealth  RateLimitType = "health"
)

// Config holds per-tier request budgets
type Config struct {
	Enabled         bool          `json:"enabled"`
	WindowDuration  time.Duration `json:"window_duration"`
	DefaultRequests int           `json:"default_requests"`
	PublicRequests  int           `json:"public_requests"`
	AuthRequests    int           `json:"auth_requests"`
	BookingRequests int           `json:"booking_requests"`
	AdminRequests   int           `json:"admin_requests"`
	HealthRequests  int           `json:"health_requests"`
	WhitelistedIPs  []string      `json:"whitelisted_ips"`
}

// Result represents rate limit check result
type Result struct {
	Allowed   bool  `json:"allowed"`
	Limit     int   `json:"limit"`
	Remaining int   `json:"remaining"`
	ResetTime int64 `json:"reset_time"`
}

// RateLimiter handles rate limiting using Redis
type RateLimiter struct {
	client *redis.Client
	config *Config
}

func NewRateLimiter(client *redis.Client, config *Config) *RateLimiter {
	return &RateLimiter{
		client: client,
		config: config,
	}
}

// IsAllowed checks the fixed-window counter for the client and tier.
func (rl *RateLimiter) IsAllowed(ctx context.Context, clientIP string, limitType RateLimitType) (*Result, error) {
	limit := rl.limitFor(limitType)

	if rl.isWhitelisted(clientIP) {
		return &Result{Allowed: true, Limit: limit, Remaining: limit}, nil
	}

	window := rl.config.WindowDuration
	windowStart := time.Now().Truncate(window)
	key := fmt.Sprintf("ratelimit:%s:%s:%d", limitType, clientIP, windowStart.Unix())

	count, err := rl.client.Incr(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("rate limit incr: %w", err)
	}
	if count == 1 {
		// First hit in this window owns the expiry.
		if err := rl.client.Expire(ctx, key, window).Err(); err != nil {
			return nil, fmt.Errorf("rate limit expire: %w", err)
		}
	}

	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return &Result{
		Allowed:   int(count) <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetTime: windowStart.Add(window).Unix(),
	}, nil
}

func (rl *RateLimiter) limitFor(limitType RateLimitType) int {
	switch limitType {
	case RateLimitTypePublic:
		return rl.config.PublicRequests
	case RateLimitTypeAuth:
		return rl.config.AuthRequests
	case RateLimitTypeBooking:
		return rl.config.BookingRequests
	case RateLimitTypeAdmin:
		return rl.config.AdminRequests
	case RateLimitTypeHealth:
		return rl.config.HealthRequests
	default:
		return rl.config.DefaultRequests
	}
}

func (rl *RateLimiter) isWhitelisted(clientIP string) bool {
	for _, ip := range rl.config.WhitelistedIPs {
		if ip == clientIP {
			return true
		}
	}
	return false
}

package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// RateLimiter allows each client IP r requests per second with bursts of b.
func RateLimiter(r rate.Limit, b int) fiber.Handler {
	var (
		visitors = make(map[string]*rate.Limiter)
		mu       sync.Mutex
	)

	getVisitor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		limiter, exists := visitors[ip]
		if !exists {
			limiter = rate.NewLimiter(r, b)
			visitors[ip] = limiter
		}
		return limiter
	}

	return func(c *fiber.Ctx) error {
		if !getVisitor(c.IP()).Allow() {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfterSeconds(r)))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "rate limit exceeded",
			})
		}
		return c.Next()
	}
}

// PerMinute converts a requests-per-minute budget into a rate.Limit.
func PerMinute(n int) rate.Limit {
	return rate.Every(time.Minute / time.Duration(n))
}

func retryAfterSeconds(r rate.Limit) int {
	if r <= 0 {
		return 60
	}
	seconds := int(1 / float64(r))
	if seconds < 1 {
		return 1
	}
	return seconds
}

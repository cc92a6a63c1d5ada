package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"quicknotes/internal/api"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

var timeNow = time.Now

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter 依來源 IP 限制請求頻率，用於登入與註冊
type RateLimiter struct {
	rate  rate.Limit
	burst int
	// idle 超過此時間未出現的 IP 會在下一次清理時移除
	idle time.Duration

	mu        sync.Mutex
	clients   map[string]*clientLimiter
	lastSweep time.Time
}

// NewRateLimiter 每分鐘允許 perMinute 次，突發上限同為 perMinute
func NewRateLimiter(perMinute int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	return &RateLimiter{
		rate:      rate.Limit(float64(perMinute) / 60.0),
		burst:     perMinute,
		idle:      10 * time.Minute,
		clients:   make(map[string]*clientLimiter),
		lastSweep: timeNow(),
	}
}

// Middleware 超出頻率時回傳 429 並附上 Retry-After
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !rl.limiterFor(c.RealIP()).AllowN(timeNow(), 1) {
				retryAfter := int(math.Ceil(1.0 / float64(rl.rate)))
				if retryAfter < 1 {
					retryAfter = 1
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
				return c.JSON(http.StatusTooManyRequests, api.ErrorResponse{Message: "too many requests, try again later"})
			}
			return next(c)
		}
	}
}

// Len 目前追蹤中的 IP 數量
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

func (rl *RateLimiter) limiterFor(ip string) *rate.Limiter {
	now := timeNow()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastSweep) > rl.idle {
		for k, cl := range rl.clients {
			if now.Sub(cl.lastAccess) > rl.idle {
				delete(rl.clients, k)
			}
		}
		rl.lastSweep = now
	}

	cl, ok := rl.clients[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.clients[ip] = cl
	}
	cl.lastAccess = now
	return cl.limiter
}

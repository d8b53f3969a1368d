package middleware

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/iliyamo/fyyur/internal/config"
)

// limiterScript is a token bucket kept in a Redis hash so every server
// instance shares the same budget per key.
var limiterScript = redis.NewScript(`
    local key = KEYS[1]
    local now_ms = tonumber(ARGV[1])
    local capacity = tonumber(ARGV[2])
    local refill_tokens = tonumber(ARGV[3])
    local interval_ms = tonumber(ARGV[4])
    local ttl_seconds = tonumber(ARGV[5])

    local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
    local tokens = tonumber(state[1])
    local last_refill = tonumber(state[2])

    if tokens == nil or last_refill == nil then
        tokens = capacity
        last_refill = now_ms
    end

    if interval_ms > 0 and refill_tokens > 0 then
        local elapsed = math.max(0, now_ms - last_refill)
        local intervals = math.floor(elapsed / interval_ms)
        if intervals > 0 then
            tokens = math.min(capacity, tokens + (intervals * refill_tokens))
            last_refill = last_refill + (intervals * interval_ms)
        end
    end

    local allowed = 0
    local retry_after_ms = 0
    if tokens > 0 then
        allowed = 1
        tokens = tokens - 1
    else
        local until_next = interval_ms - (now_ms - last_refill)
        if until_next < 0 then until_next = 0 end
        retry_after_ms = until_next
    end

    redis.call('HMSET', key, 'tokens', tokens, 'last_refill_ms', last_refill, 'capacity', capacity)
    redis.call('EXPIRE', key, ttl_seconds)

    return { allowed, tokens, retry_after_ms }
`)

var errNoRedis = errors.New("redis client not configured")

// decision is the outcome of one bucket check.
type decision struct {
	allowed   bool
	remaining int64
	retry     time.Duration
}

// NewTokenBucket limits requests per key (see buildRateKey).  Buckets live
// in Redis when a client is available; without Redis, or when a script
// call fails, an in-process golang.org/x/time/rate bucket with the same
// capacity and refill rate is used instead.
func NewTokenBucket(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	local := newLocalLimiter(cfg)
	parser := newTokenParser()

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Runs before any route-level JWTAuth, so resolve the subject here.
			if cfg.TokenSecret != "" && c.Get(ctxSubject) == nil {
				if raw, ok := bearerToken(c); ok {
					if claims, err := verifyToken(parser, cfg.TokenSecret, raw); err == nil {
						sub, _ := claims.GetSubject()
						c.Set(ctxSubject, sub)
					}
				}
			}
			key := buildRateKey(cfg, c)
			now := time.Now()

			d, err := redisDecision(c, cfg, rdb, key, now)
			if err != nil {
				if rdb != nil && cfg.Debug {
					c.Logger().Warnf("[ratelimit] redis unavailable for key=%s: %v", key, err)
				}
				d = local.allow(key, now)
			}

			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(d.remaining, 10))

			if !d.allowed {
				secs := int(math.Ceil(d.retry.Seconds()))
				if secs < 0 {
					secs = 0
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(secs))
				if cfg.Debug {
					c.Logger().Infof("[ratelimit] block key=%s remaining=%d retry=%s", key, d.remaining, d.retry)
				}
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}

			if cfg.Debug {
				c.Response().Header().Set("X-RateLimit-Key", key)
			}
			return next(c)
		}
	}
}

func redisDecision(c echo.Context, cfg config.RateLimitConfig, rdb *redis.Client, key string, now time.Time) (decision, error) {
	if rdb == nil {
		return decision{}, errNoRedis
	}
	args := []interface{}{
		now.UnixMilli(),
		cfg.Capacity,
		cfg.RefillTokens,
		cfg.RefillInterval.Milliseconds(),
		int64(cfg.TTL / time.Second),
	}
	vals, err := limiterScript.Run(c.Request().Context(), rdb, []string{key}, args...).Result()
	if err != nil {
		return decision{}, err
	}
	arr, ok := vals.([]interface{})
	if !ok || len(arr) != 3 {
		return decision{}, fmt.Errorf("unexpected script result %#v", vals)
	}
	return decision{
		allowed:   asInt64(arr[0]) == 1,
		remaining: asInt64(arr[1]),
		retry:     time.Duration(asInt64(arr[2])) * time.Millisecond,
	}, nil
}

func asInt64(v interface{}) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int32:
		return int64(t)
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n
		}
	}
	return 0
}

// buildRateKey composes the bucket key from the client IP, the token
// subject and the route according to cfg.KeyStrategy.
func buildRateKey(cfg config.RateLimitConfig, c echo.Context) string {
	parts := []string{cfg.Prefix}
	ip := c.RealIP()
	if ip == "" {
		ip = "unknown"
	}
	uid := subject(c)
	route := c.Request().Method + " " + c.Path()

	switch strings.ToLower(cfg.KeyStrategy) {
	case "ip":
		parts = append(parts, "ip", ip)
	case "user":
		parts = append(parts, "user", uid)
	case "route":
		parts = append(parts, "route", route)
	case "ip_user":
		parts = append(parts, "ip", ip, "user", uid)
	case "ip_route":
		parts = append(parts, "ip", ip, "route", route)
	case "user_route":
		parts = append(parts, "user", uid, "route", route)
	default:
		parts = append(parts, "ip", ip, "user", uid, "route", route)
	}
	return strings.Join(parts, ":")
}

// localLimiter holds one rate.Limiter per key.  Buckets idle for longer
// than the configured TTL are swept on the next sweep tick.
type localLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*localBucket
	limit     rate.Limit
	burst     int
	interval  time.Duration
	ttl       time.Duration
	lastSweep time.Time
}

type localBucket struct {
	lim  *rate.Limiter
	seen time.Time
}

func newLocalLimiter(cfg config.RateLimitConfig) *localLimiter {
	per := cfg.RefillInterval / time.Duration(cfg.RefillTokens)
	return &localLimiter{
		buckets:  map[string]*localBucket{},
		limit:    rate.Every(per),
		burst:    cfg.Capacity,
		interval: cfg.RefillInterval,
		ttl:      cfg.TTL,
	}
}

func (l *localLimiter) allow(key string, now time.Time) decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > l.ttl {
		for k, b := range l.buckets {
			if now.Sub(b.seen) > l.ttl {
				delete(l.buckets, k)
			}
		}
		l.lastSweep = now
	}

	b, ok := l.buckets[key]
	if !ok {
		b = &localBucket{lim: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.seen = now

	if b.lim.AllowN(now, 1) {
		return decision{allowed: true, remaining: int64(b.lim.TokensAt(now))}
	}
	r := b.lim.ReserveN(now, 1)
	retry := r.DelayFrom(now)
	r.CancelAt(now)
	if retry <= 0 || retry > l.interval {
		retry = l.interval
	}
	return decision{allowed: false, remaining: 0, retry: retry}
}

package middleware

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/gentlify/pacify/internal/adapters/http/dto"
	"github.com/gentlify/pacify/internal/adapters/http/encoding"
	"github.com/gentlify/pacify/internal/adapters/metrics"
)

// WindowCounter counts hits per key within fixed windows.
type WindowCounter interface {
	// Incr adds one hit for key in the current window and returns the new count.
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisCounter keeps one INCR key per client and window in Redis so the
// limit holds across replicas.
type RedisCounter struct {
	rdb    *goredis.Client
	prefix string
}

// NewRedisCounter connects to url (redis://...) and pings it.
func NewRedisCounter(ctx context.Context, url string) (*RedisCounter, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second

	rdb := goredis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisCounter{rdb: rdb, prefix: "pacify:ratelimit:"}, nil
}

func (c *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	bucket := time.Now().UnixNano() / int64(window)
	k := c.prefix + key + ":" + strconv.FormatInt(bucket, 10)

	pipe := c.rdb.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func (c *RedisCounter) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *RedisCounter) Close() error {
	return c.rdb.Close()
}

// RateLimit allows limit requests per window and client. Clients are keyed
// by user ID, or by remote IP when anonymous. Counter failures let the
// request through.
func RateLimit(counter WindowCounter, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if counter == nil || limit <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)
			count, err := counter.Incr(r.Context(), key, window)
			if err != nil {
				log.Printf("Rate limiter unavailable, allowing %s: %v", key, err)
				next.ServeHTTP(w, r)
				return
			}

			remaining := max(int64(limit)-count, 0)
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(limit) {
				metrics.RateLimitedTotal.Inc()
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				encoding.Write(w, r, http.StatusTooManyRequests, dto.NewErrorResponse(
					"rate_limited",
					"Zu viele Anfragen. Bitte versuche es in einem Moment erneut.",
					http.StatusTooManyRequests,
				))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if userID := GetUserID(r.Context()); userID != "" {
		return "user:" + userID
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

package middleware

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"
	"todo_api/internal/common"

	"github.com/redis/go-redis/v9"
)

// RateLimitStore counts requests per key within a rolling window. A shared
// store keeps the bound meaningful across instances.
type RateLimitStore interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

type redisRateLimitStore struct {
	rdb *redis.Client
}

func NewRedisRateLimitStore(rdb *redis.Client) RateLimitStore {
	return &redisRateLimitStore{rdb: rdb}
}

func (s *redisRateLimitStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := s.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// RateLimit bounds requests per client IP. Counting is best-effort: a store
// failure lets the request through rather than failing closed.
func RateLimit(store RateLimitStore, max int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := r.RemoteAddr
			if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
				ip = host
			}

			count, err := store.Incr(r.Context(), "ratelimit:"+ip, window)
			if err != nil {
				log.Printf("Rate limit store error for %s: %v", ip, err)
				next.ServeHTTP(w, r)
				return
			}
			if count > int64(max) {
				common.RespondWithError(w, http.StatusTooManyRequests,
					"Too many requests from this IP, please try again after 15 minutes")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

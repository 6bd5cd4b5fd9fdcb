package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// Idempotency guards state-changing requests carrying an Idempotency-Key
// header. A key already seen within the retention window short-circuits with
// 409 instead of re-running the allocation.
func Idempotency(redisClient *redis.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost && r.Method != http.MethodPut && r.Method != http.MethodPatch {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get("Idempotency-Key")
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			idemKey := fmt.Sprintf("idempotency:%s", key)
			ctx := r.Context()

			_, err := redisClient.Get(ctx, idemKey).Result()
			if err == nil {
				w.Header().Set("X-Idempotency-Hit", "true")
				w.WriteHeader(http.StatusConflict)
				w.Write([]byte(`{"error": "request already processed"}`))
				return
			} else if err != redis.Nil {
				// Redis unavailable: let the request through, the seat
				// constraint still protects against double allocation.
				next.ServeHTTP(w, r)
				return
			}

			// SETNX with a short TTL so a crash mid-request cannot hold the
			// key forever.
			acquired, err := redisClient.SetNX(ctx, idemKey, "PROCESSING", 10*time.Second).Result()
			if err != nil || !acquired {
				w.WriteHeader(http.StatusConflict)
				w.Write([]byte(`{"error": "concurrent request"}`))
				return
			}

			next.ServeHTTP(w, r)

			redisClient.Set(ctx, idemKey, "COMPLETED", 24*time.Hour)
		})
	}
}

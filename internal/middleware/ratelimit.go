package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/office-master/internal/httperr"
)

// scriptRunner é o que redis.Script.Run exige; *redis.Client satisfaz.
type scriptRunner interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
	EvalSha(ctx context.Context, sha1 string, keys []string, args ...interface{}) *redis.Cmd
	ScriptExists(ctx context.Context, hashes ...string) *redis.BoolSliceCmd
	ScriptLoad(ctx context.Context, script string) *redis.StringCmd
}

// RateLimiter é uma janela fixa no Redis, compartilhada entre instâncias.
type RateLimiter struct {
	rdb    scriptRunner
	limit  int
	window time.Duration
	prefix string
}

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

func NewRateLimiter(rdb scriptRunner, limit int, window time.Duration, prefix string) *RateLimiter {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "rl"
	}
	return &RateLimiter{rdb: rdb, limit: limit, window: window, prefix: prefix}
}

// Middleware limita por IP. Com failOpen, falhas do Redis deixam passar.
func (rl *RateLimiter) Middleware(logger *slog.Logger, failOpen bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rl.key(c.ClientIP())

		count, err := rl.incr(c.Request.Context(), key)
		if err != nil {
			logger.Warn("redis rate limiter error", "err", err)
			if failOpen {
				c.Next()
				return
			}
			httperr.Abort(c, http.StatusServiceUnavailable, "rate_limiter_unavailable", "Tente novamente em instantes.")
			return
		}

		if count > int64(rl.limit) {
			c.Header("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			httperr.Abort(c, http.StatusTooManyRequests, "too_many_attempts", "Muitas tentativas. Aguarde e tente novamente.")
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) key(ip string) string {
	return rl.prefix + ":" + ip
}

func (rl *RateLimiter) incr(ctx context.Context, key string) (int64, error) {
	ms := rl.window.Milliseconds()
	res, err := fixedWindowScript.Run(ctx, rl.rdb, []string{key}, ms).Result()
	if err != nil {
		return 0, err
	}

	switch v := res.(type) {
	case int64:
		return v, nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected redis script result type %T", res)
	}
}

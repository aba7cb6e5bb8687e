package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barberin/internal/httpresp"
	"github.com/BruksfildServices01/barberin/internal/metrics"
)

// INCR and set the window on first hit, atomically.
var incrWindow = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("PTTL", KEYS[1])}
`)

// Scripter is the part of a Redis client needed to run the limiter script.
type Scripter interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
	EvalSha(ctx context.Context, sha1 string, keys []string, args ...interface{}) *redis.Cmd
	ScriptExists(ctx context.Context, hashes ...string) *redis.BoolSliceCmd
	ScriptLoad(ctx context.Context, script string) *redis.StringCmd
}

// RateLimit allows max requests per window for each client IP and route.
// A nil client disables limiting; Redis failures let the request through.
func RateLimit(rdb Scripter, max int, window time.Duration, log *zap.Logger) gin.HandlerFunc {
	if rdb == nil || max <= 0 || window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		key := "rl:" + route + ":" + c.ClientIP()

		res, err := incrWindow.Run(c.Request.Context(), rdb, []string{key}, window.Milliseconds()).Slice()
		if err != nil || len(res) != 2 {
			log.Warn("rate limit unavailable", zap.Error(err))
			c.Next()
			return
		}
		count, _ := res[0].(int64)
		ttl, _ := res[1].(int64)
		reset := int((time.Duration(ttl) * time.Millisecond).Round(time.Second).Seconds())

		remaining := max - int(count)
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.Itoa(reset))

		if int(count) > max {
			metrics.RateLimited.Inc()
			if reset > 0 {
				c.Header("Retry-After", strconv.Itoa(reset))
			}
			httpresp.Error(c, http.StatusTooManyRequests, "Too many requests, try again later")
			return
		}
		c.Next()
	}
}

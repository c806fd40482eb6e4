package middleware

import (
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/juice-reservations/internal/api/handlers"
	"github.com/m04kA/juice-reservations/internal/config"
)

const (
	msgTooManyRequests = "trop de requêtes, veuillez réessayer plus tard"

	keyPrefix = "juice:rl"
)

// tokenBucket KEYS[1] ключ корзины; ARGV: now_ms, capacity, interval_ms (один токен за интервал), ttl_s
// Возвращает {allowed, remaining, retry_after_ms}
var tokenBucket = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local interval_ms = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])

local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])
if tokens == nil or last_refill == nil then
	tokens = capacity
	last_refill = now_ms
end

if interval_ms > 0 then
	local intervals = math.floor(math.max(0, now_ms - last_refill) / interval_ms)
	if intervals > 0 then
		tokens = math.min(capacity, tokens + intervals)
		last_refill = last_refill + intervals * interval_ms
	end
end

local allowed = 0
local retry_after = 0
if tokens > 0 then
	allowed = 1
	tokens = tokens - 1
else
	retry_after = math.max(0, interval_ms - (now_ms - last_refill))
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
redis.call('EXPIRE', key, ttl)
return {allowed, tokens, retry_after}
`)

// Policy именованный лимит: не более Limit.Requests запросов за Limit.Window() с одного IP
type Policy struct {
	Name  string
	Limit config.LimitConfig
}

// RateLimiter ограничение частоты запросов на Redis
// Без клиента (Redis не настроен) пропускает всё; ошибки Redis тоже пропускают запрос
type RateLimiter struct {
	client         *redis.Client
	trustedProxies int
	now            func() time.Time
	logger         Logger
}

// NewRateLimiter создает ограничитель. client может быть nil.
// trustedProxies - сколько прокси перед сервисом дописывают X-Forwarded-For (0 - заголовок не читается)
func NewRateLimiter(client *redis.Client, trustedProxies int, logger Logger) *RateLimiter {
	if trustedProxies < 0 {
		trustedProxies = 0
	}
	return &RateLimiter{client: client, trustedProxies: trustedProxies, now: time.Now, logger: logger}
}

// Limit middleware для политики p
func (l *RateLimiter) Limit(p Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if l == nil || l.client == nil || p.Limit.Requests <= 0 || p.Limit.WindowSeconds <= 0 {
			return next
		}

		interval := p.Limit.Window() / time.Duration(p.Limit.Requests)
		ttl := int64(math.Ceil(p.Limit.Window().Seconds())) + 1

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := fmt.Sprintf("%s:%s:%s", keyPrefix, p.Name, clientIP(r, l.trustedProxies))

			res, err := tokenBucket.Run(r.Context(), l.client, []string{key},
				l.now().UnixMilli(), p.Limit.Requests, interval.Milliseconds(), ttl).Int64Slice()
			if err != nil || len(res) != 3 {
				l.logger.Warn("RateLimit %s - redis unavailable, request allowed: %v", p.Name, err)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(p.Limit.Requests))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(res[1], 10))

			if res[0] != 1 {
				retry := int(math.Ceil(float64(res[2]) / 1000))
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				l.logger.Warn("RateLimit %s - blocked key=%s, retry in %ds", p.Name, key, retry)
				handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP адрес клиента для ключа лимита
// Цепочка = X-Forwarded-For + RemoteAddr. Последние trustedProxies звеньев добавлены нашими прокси,
// адрес перед ними - клиент. Всё левее пишет сам клиент, поэтому не учитывается.
func clientIP(r *http.Request, trustedProxies int) string {
	remote := r.RemoteAddr
	if host, _, err := net.SplitHostPort(remote); err == nil {
		remote = host
	}

	chain := make([]string, 0, 4)
	if trustedProxies > 0 {
		for _, part := range strings.Split(r.Header.Get("X-Forwarded-For"), ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				chain = append(chain, ip)
			}
		}
	}
	if remote != "" {
		chain = append(chain, remote)
	}
	if len(chain) == 0 {
		return "unknown"
	}

	idx := len(chain) - 1 - trustedProxies
	if idx < 0 {
		idx = 0
	}
	return chain[idx]
}

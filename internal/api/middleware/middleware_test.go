package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/juice-reservations/internal/config"
	"github.com/m04kA/juice-reservations/pkg/logger"
	"github.com/m04kA/juice-reservations/pkg/metrics"
)

type verifierStub struct{ valid string }

func (v verifierStub) Verify(_ context.Context, token string) error {
	if token != v.valid {
		return errors.New("bad token")
	}
	return nil
}

func okHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestRequireAdmin(t *testing.T) {
	cookie := SessionCookie{Name: "admin_session"}
	var sawAdmin bool
	h := RequireAdmin(verifierStub{valid: "good"}, cookie, logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawAdmin = IsAdmin(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		cookie *http.Cookie
		want   int
	}{
		{"no cookie", nil, http.StatusUnauthorized},
		{"forged", &http.Cookie{Name: "admin_session", Value: "forged"}, http.StatusUnauthorized},
		{"valid", &http.Cookie{Name: "admin_session", Value: "good"}, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
	assert.True(t, sawAdmin)
}

func TestSessionCookie_SetAndClear(t *testing.T) {
	c := SessionCookie{Name: "admin_session", Secure: true}

	rec := httptest.NewRecorder()
	c.Set(rec, "tok", time.Now().Add(time.Hour))
	set := rec.Result().Cookies()
	require.Len(t, set, 1)
	assert.Equal(t, "tok", set[0].Value)
	assert.True(t, set[0].HttpOnly)
	assert.True(t, set[0].Secure)
	assert.Equal(t, http.SameSiteLaxMode, set[0].SameSite)

	rec = httptest.NewRecorder()
	c.Clear(rec)
	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := metrics.New("test")
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.Handle("/api/v1/reservations/{token}", okHandler(t)).Methods(http.MethodGet)

	for _, token := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reservations/"+token, nil))
		require.Equal(t, http.StatusNoContent, rec.Code)
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/reservations/{token}", "204")))
}

func TestMetricsMiddleware_NilIsPassThrough(t *testing.T) {
	h := MetricsMiddleware(nil)(okHandler(t))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeaders(okHandler(t)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"https://jus.example.be"})(okHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/slots", nil)
	req.Header.Set("Origin", "https://jus.example.be")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "https://jus.example.be", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/slots", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimiter_WithoutRedisPassesThrough(t *testing.T) {
	policy := Policy{Name: "login", Limit: config.LimitConfig{Requests: 1, WindowSeconds: 60}}
	h := NewRateLimiter(nil, 0, logger.Nop()).Limit(policy)(okHandler(t))

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/admin/login", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	defer client.Close()

	policy := Policy{Name: "general", Limit: config.LimitConfig{Requests: 1, WindowSeconds: 60}}
	h := NewRateLimiter(client, 0, logger.Nop()).Limit(policy)(okHandler(t))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestClientIP_IgnoresForwardedForWithoutProxy(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.9:5555"
	assert.Equal(t, "203.0.113.9", clientIP(req, 0))

	req.Header.Set("X-Forwarded-For", "10.0.0.1")
	assert.Equal(t, "203.0.113.9", clientIP(req, 0))
}

func TestClientIP_TrustedProxy(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.254:443"

	// без заголовка клиентом считается сам прокси
	assert.Equal(t, "10.0.0.254", clientIP(req, 1))

	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	assert.Equal(t, "203.0.113.9", clientIP(req, 1))

	// подставленные клиентом адреса левее не меняют ключ
	req.Header.Set("X-Forwarded-For", "10.0.0.1, 203.0.113.9")
	assert.Equal(t, "203.0.113.9", clientIP(req, 1))
	req.Header.Set("X-Forwarded-For", "10.0.0.2, 10.0.0.3, 203.0.113.9")
	assert.Equal(t, "203.0.113.9", clientIP(req, 1))
}

func TestClientIP_TwoProxies(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.254:443"
	req.Header.Set("X-Forwarded-For", "1.2.3.4, 203.0.113.9, 172.16.0.1")

	assert.Equal(t, "203.0.113.9", clientIP(req, 2))
	assert.Equal(t, "1.2.3.4", clientIP(req, 5), "short chain falls back to the left-most address")
}

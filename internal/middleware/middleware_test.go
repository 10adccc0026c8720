package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"printpay/config"
	"printpay/internal/auth"
	"printpay/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var signer = auth.NewSigner(&config.JWTConfig{AccessSecret: "mw-secret", AccessExpiry: time.Minute, Issuer: "printpay"})

func adminEngine() *gin.Engine {
	r := gin.New()
	r.GET("/payments", Authenticate(signer), RequireScope(domain.ScopePaymentsRead), func(c *gin.Context) {
		c.String(http.StatusOK, ClaimsFrom(c).Subject)
	})
	return r
}

func getPayments(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/payments", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	r := adminEngine()

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"empty token", "Bearer  "},
		{"garbage token", "Bearer not-a-jwt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, getPayments(r, tc.header).Code)
		})
	}
}

func TestAuthenticate_SchemeIsCaseInsensitive(t *testing.T) {
	token, err := signer.Issue("staff-1", domain.RoleAdmin, auth.ScopeAll)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, getPayments(adminEngine(), "bearer "+token).Code)
}

func TestRequireScope(t *testing.T) {
	r := adminEngine()

	cases := []struct {
		name   string
		role   string
		scopes []string
		code   int
	}{
		{"non-admin role", "CUSTOMER", []string{auth.ScopeAll}, http.StatusForbidden},
		{"admin without scopes", domain.RoleAdmin, nil, http.StatusForbidden},
		{"admin with other scope", domain.RoleAdmin, []string{domain.ScopeUnmatchedRead}, http.StatusForbidden},
		{"admin with route scope", domain.RoleAdmin, []string{domain.ScopePaymentsRead}, http.StatusOK},
		{"admin with wildcard", domain.RoleAdmin, []string{auth.ScopeAll}, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := signer.Issue("staff-1", tc.role, tc.scopes...)
			require.NoError(t, err)
			w := getPayments(r, "Bearer "+token)
			assert.Equal(t, tc.code, w.Code)
			if tc.code == http.StatusOK {
				assert.Equal(t, "staff-1", w.Body.String())
			}
		})
	}
}

func TestRequireScope_WithoutAuthenticate(t *testing.T) {
	r := gin.New()
	r.GET("/x", RequireScope(domain.ScopePaymentsRead), func(c *gin.Context) { c.Status(http.StatusOK) })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.POST("/hook", RateLimit(NewInMemoryRateLimiter(2, time.Minute)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/hook", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodPost, "/hook", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiter_SweepsIdleKeys(t *testing.T) {
	clock := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	l := NewInMemoryRateLimiter(1, time.Minute)
	l.now = func() time.Time { return clock }
	l.lastSweep = clock

	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))

	clock = clock.Add(2 * time.Minute)
	assert.True(t, l.Allow("b"))

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.NotContains(t, l.limiters, "a")
	assert.Contains(t, l.limiters, "b")
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://admin.example.com"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://admin.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://admin.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLogger_EchoesRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)
}

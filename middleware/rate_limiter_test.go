package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func limiterTestRouter(maxPerMinute int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(NewIPRateLimiter(maxPerMinute).Middleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func get(r *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Real-IP", ip)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIPRateLimiterAllowsWithinBurst(t *testing.T) {
	r := limiterTestRouter(3)
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, get(r, "10.0.0.1").Code)
	}
}

func TestIPRateLimiterRejectsBeyondBurst(t *testing.T) {
	r := limiterTestRouter(2)
	assert.Equal(t, http.StatusOK, get(r, "10.0.0.2").Code)
	assert.Equal(t, http.StatusOK, get(r, "10.0.0.2").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, "10.0.0.2").Code)
}

func TestIPRateLimiterIsPerIP(t *testing.T) {
	r := limiterTestRouter(1)
	assert.Equal(t, http.StatusOK, get(r, "10.0.0.3").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, "10.0.0.3").Code)
	// A different caller has its own budget.
	assert.Equal(t, http.StatusOK, get(r, "10.0.0.4").Code)
}

func TestClientIPHeaderPrecedence(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"forwarded-for wins", map[string]string{
			"X-Forwarded-For": "203.0.113.7, 10.0.0.1",
			"X-Real-IP":       "198.51.100.2",
		}, "203.0.113.7"},
		{"real-ip fallback", map[string]string{"X-Real-IP": "198.51.100.2"}, "198.51.100.2"},
		{"cloudflare fallback", map[string]string{"CF-Connecting-IP": "192.0.2.9"}, "192.0.2.9"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tc.headers {
				c.Request.Header.Set(k, v)
			}
			assert.Equal(t, tc.want, ClientIP(c))
		})
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"project-assistant/pkg/log"
)

func newEngine(mw Middleware) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw.RequestID())
	r.POST("/conversations/:conversation_id/messages", mw.RateLimit(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/ping", mw.RateLimit(), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return r
}

func TestRateLimit(t *testing.T) {
	// 10/min gives a burst of one request.
	r := newEngine(New(log.NewNop(), Config{RateLimitEnabled: true, RequestsPerMinute: 10}))

	var last *httptest.ResponseRecorder
	do := func(path string) int {
		last = httptest.NewRecorder()
		method := http.MethodPost
		if path == "/ping" {
			method = http.MethodGet
		}
		r.ServeHTTP(last, httptest.NewRequest(method, path, nil))
		return last.Code
	}

	if got := do("/conversations/a/messages"); got != http.StatusOK {
		t.Fatalf("first request = %d", got)
	}
	if got := do("/conversations/a/messages"); got != http.StatusTooManyRequests {
		t.Errorf("second request = %d, want 429", got)
	}
	// One token every 6s.
	if got := last.Header().Get("Retry-After"); got != "6" {
		t.Errorf("Retry-After = %q, want 6", got)
	}
	if got := do("/conversations/b/messages"); got != http.StatusOK {
		t.Errorf("other conversation = %d, want 200", got)
	}
	if got := do("/ping"); got != http.StatusOK {
		t.Errorf("ip-keyed request = %d, want 200", got)
	}
}

func TestRateLimitDisabled(t *testing.T) {
	r := newEngine(New(log.NewNop(), Config{RequestsPerMinute: 1}))
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/conversations/a/messages", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d = %d", i, w.Code)
		}
	}
}

func TestRequestID(t *testing.T) {
	r := newEngine(New(log.NewNop(), Config{}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "req-1")
	r.ServeHTTP(w, req)
	if got := w.Header().Get(HeaderRequestID); got != "req-1" {
		t.Errorf("echoed id = %q", got)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Header().Get(HeaderRequestID) == "" {
		t.Error("generated id missing")
	}
}

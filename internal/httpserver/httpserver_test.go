package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"project-assistant/internal/document"
	"project-assistant/internal/orchestrator"
	"project-assistant/pkg/log"
)

type stubAssistant struct{}

func (stubAssistant) Handle(context.Context, orchestrator.Input) (orchestrator.Output, error) {
	return orchestrator.Output{Branch: orchestrator.BranchChat}, nil
}

func (stubAssistant) Commit(context.Context, orchestrator.CommitInput) (document.MaterializeResult, error) {
	return document.MaterializeResult{}, nil
}

func (stubAssistant) CancelPending(context.Context, string) bool { return false }

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "valid", cfg: Config{Port: 8080, Mode: "test", AssistantUseCase: stubAssistant{}}},
		{name: "missing port", cfg: Config{Mode: "test", AssistantUseCase: stubAssistant{}}, wantErr: true},
		{name: "missing use case", cfg: Config{Port: 8080, Mode: "test"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(log.NewNop(), tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRoutes(t *testing.T) {
	srv, err := New(log.NewNop(), Config{Port: 8080, Mode: "test", Environment: "production", AssistantUseCase: stubAssistant{}})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/ready", http.StatusOK},
		{http.MethodGet, "/live", http.StatusOK},
		{http.MethodDelete, "/api/v1/conversations/c1/session", http.StatusNotFound},
		{http.MethodGet, "/api/v1/unknown", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			srv.gin.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
			if w.Header().Get("X-Request-ID") == "" {
				t.Error("request id header missing")
			}
		})
	}
}

func TestReadiness(t *testing.T) {
	tests := []struct {
		name  string
		ready bool
		want  int
	}{
		{"provider configured", true, http.StatusOK},
		{"no provider", false, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, err := New(log.NewNop(), Config{
				Port:             8080,
				Mode:             "test",
				AssistantUseCase: stubAssistant{},
				Readiness:        func() bool { return tt.ready },
			})
			if err != nil {
				t.Fatal(err)
			}

			w := httptest.NewRecorder()
			srv.gin.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}

			live := httptest.NewRecorder()
			srv.gin.ServeHTTP(live, httptest.NewRequest(http.MethodGet, "/live", nil))
			if live.Code != http.StatusOK {
				t.Errorf("live status = %d, want 200", live.Code)
			}
		})
	}
}

func TestTrustedProxies(t *testing.T) {
	tests := []struct {
		name    string
		proxies []string
		want    string
	}{
		{"forwarding headers ignored by default", nil, "10.0.0.2"},
		{"trusted proxy forwards client", []string{"10.0.0.0/8"}, "203.0.113.7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, err := New(log.NewNop(), Config{
				Port:             8080,
				Mode:             "test",
				AssistantUseCase: stubAssistant{},
				TrustedProxies:   tt.proxies,
			})
			if err != nil {
				t.Fatal(err)
			}
			var got string
			srv.gin.GET("/client-ip", func(c *gin.Context) { got = c.ClientIP() })

			req := httptest.NewRequest(http.MethodGet, "/client-ip", nil)
			req.RemoteAddr = "10.0.0.2:5000"
			req.Header.Set("X-Forwarded-For", "203.0.113.7")
			srv.gin.ServeHTTP(httptest.NewRecorder(), req)
			if got != tt.want {
				t.Errorf("ClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewRejectsInvalidTrustedProxy(t *testing.T) {
	_, err := New(log.NewNop(), Config{Port: 8080, Mode: "test", AssistantUseCase: stubAssistant{}, TrustedProxies: []string{"not-an-ip"}})
	if err == nil {
		t.Error("expected error for an invalid trusted proxy")
	}
}

func TestRunShutdown(t *testing.T) {
	srv, err := New(log.NewNop(), Config{Port: 18089, Mode: "test", AssistantUseCase: stubAssistant{}})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := srv.Run(ctx); err != nil {
		t.Errorf("Run after cancel = %v", err)
	}
}

package httpserver

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"project-assistant/internal/assistant"
	tgDelivery "project-assistant/internal/assistant/delivery/telegram"
	"project-assistant/internal/middleware"
	"project-assistant/internal/sync"
	"project-assistant/pkg/log"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Assistant domain
	assistantUC   assistant.UseCase
	middleware    middleware.Config
	maxUploadSize int64
	readiness     func() bool

	// Channels and notifications, optional
	telegramHandler tgDelivery.Handler
	syncHandler     sync.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	// Assistant domain
	AssistantUseCase assistant.UseCase
	Middleware       middleware.Config
	MaxUploadSize    int64
	// TrustedProxies are the proxies whose forwarding headers set ClientIP.
	TrustedProxies []string
	// Readiness reports whether /ready should answer 200. Nil means always.
	Readiness func() bool

	// Channels and notifications, optional
	TelegramHandler tgDelivery.Handler
	SyncHandler     sync.Handler
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		assistantUC:     cfg.AssistantUseCase,
		middleware:      cfg.Middleware,
		maxUploadSize:   cfg.MaxUploadSize,
		readiness:       cfg.Readiness,
		telegramHandler: cfg.TelegramHandler,
		syncHandler:     cfg.SyncHandler,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	// gin trusts every proxy until told otherwise.
	if err := srv.gin.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.assistantUC == nil {
		return errors.New("assistant use case is required")
	}
	return nil
}

package telegram

import (
	"context"
	"io"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"project-assistant/internal/assistant"
	"project-assistant/internal/model"
	"project-assistant/pkg/log"
	pkgTelegram "project-assistant/pkg/telegram"
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

// Bot is the subset of the Telegram client the handler uses.
type Bot interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	GetFile(ctx context.Context, fileID string) (pkgTelegram.File, error)
	Download(ctx context.Context, filePath string) (io.ReadCloser, error)
}

// Config configures the Telegram channel.
type Config struct {
	// SecretToken must match the header Telegram sends when set.
	SecretToken      string
	DefaultProjectID string
	MaxUploadSize    int64
}

// chatState is what a chat remembers between messages.
type chatState struct {
	project          model.ProjectContext
	candidates       []model.CandidateItem
	sourceArtifactID string
}

type handler struct {
	l     log.Logger
	uc    assistant.UseCase
	bot   Bot
	cfg   Config
	spawn func(func())

	// mu serializes read-modify-write of chat states.
	mu    sync.Mutex
	chats *expirable.LRU[int64, chatState]
}

// New creates a new Telegram delivery handler.
func New(l log.Logger, uc assistant.UseCase, bot Bot, cfg Config) Handler {
	if cfg.MaxUploadSize <= 0 || cfg.MaxUploadSize > pkgTelegram.MaxDownloadSize {
		cfg.MaxUploadSize = pkgTelegram.MaxDownloadSize
	}
	return &handler{
		l:     l,
		uc:    uc,
		bot:   bot,
		cfg:   cfg,
		chats: expirable.NewLRU[int64, chatState](chatStateCapacity, nil, chatStateTTL),
		spawn: func(f func()) { go f() },
	}
}

package http

import (
	"project-assistant/internal/assistant"
	"project-assistant/pkg/log"
)

// DefaultMaxUploadSize applies when the config leaves it unset.
const DefaultMaxUploadSize int64 = 20 << 20

type handler struct {
	l             log.Logger
	uc            assistant.UseCase
	maxUploadSize int64
}

// New creates the HTTP handler for the assistant.
func New(l log.Logger, uc assistant.UseCase, maxUploadSize int64) *handler {
	if maxUploadSize <= 0 {
		maxUploadSize = DefaultMaxUploadSize
	}
	return &handler{
		l:             l,
		uc:            uc,
		maxUploadSize: maxUploadSize,
	}
}

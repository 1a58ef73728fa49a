package http

import (
	"errors"
	"net/http"

	"project-assistant/internal/assistant"
	"project-assistant/internal/orchestrator"
	pkgErrors "project-assistant/pkg/errors"
)

var (
	errMissingConversation = pkgErrors.NewHTTPErrorCode(http.StatusBadRequest, 40001, "conversation_id is required")
	errEmptyMessage        = pkgErrors.NewHTTPErrorCode(http.StatusBadRequest, 40002, "text or file is required")
	errNothingToCommit     = pkgErrors.NewHTTPErrorCode(http.StatusBadRequest, 40003, "items are required")
	errFileTooLarge        = pkgErrors.NewHTTPErrorCode(http.StatusRequestEntityTooLarge, 41301, "file exceeds the upload limit")
	errUnsupportedFile     = pkgErrors.NewHTTPErrorCode(http.StatusUnsupportedMediaType, 41501, "file type is not supported")
	errNoPendingSession    = pkgErrors.NewHTTPErrorCode(http.StatusNotFound, 40401, "no pending document for this conversation")
)

// mapError translates domain errors into HTTP errors. Unknown errors are
// internal.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, orchestrator.ErrMissingConversation):
		return errMissingConversation
	case errors.Is(err, orchestrator.ErrEmptyInput):
		return errEmptyMessage
	case errors.Is(err, orchestrator.ErrNothingToCommit):
		return errNothingToCommit
	case errors.Is(err, assistant.ErrFileTooLarge):
		return errFileTooLarge
	case errors.Is(err, assistant.ErrUnsupportedFile):
		return errUnsupportedFile
	case errors.Is(err, assistant.ErrNoPendingSession):
		return errNoPendingSession
	default:
		return pkgErrors.ErrInternalServerError
	}
}

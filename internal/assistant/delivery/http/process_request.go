package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"project-assistant/internal/assistant"
	"project-assistant/internal/parser"
)

// processSendMessageReq binds the multipart form and opens the optional
// file. The caller closes the returned file.
func (h *handler) processSendMessageReq(c *gin.Context) (sendMessageReq, *uploadedFile, error) {
	var req sendMessageReq
	if err := c.ShouldBind(&req); err != nil {
		return req, nil, err
	}
	req.ConversationID = c.Param("conversation_id")
	if err := req.validate(); err != nil {
		return req, nil, err
	}

	fh, err := c.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return req, nil, nil
	}
	if err != nil {
		return req, nil, err
	}
	if fh.Size > h.maxUploadSize {
		return req, nil, h.mapError(assistant.ErrFileTooLarge)
	}
	if !parser.IsSupported(fh.Filename) {
		return req, nil, h.mapError(assistant.ErrUnsupportedFile)
	}

	body, err := fh.Open()
	if err != nil {
		return req, nil, err
	}
	return req, &uploadedFile{
		name:     fh.Filename,
		size:     fh.Size,
		mimeType: fh.Header.Get("Content-Type"),
		body:     body,
	}, nil
}

// processCommitReq binds the commit body and the project URI param.
func (h *handler) processCommitReq(c *gin.Context) (commitReq, error) {
	var req commitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	req.ProjectID = c.Param("project_id")
	return req, req.validate()
}

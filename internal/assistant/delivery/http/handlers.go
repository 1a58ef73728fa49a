package http

import (
	"github.com/gin-gonic/gin"

	"project-assistant/internal/assistant"
	"project-assistant/pkg/response"
)

// SendMessage godoc
// @Summary     Send a message to the assistant
// @Description Accepts text, a document, or both. Documents without text open a pending session that
// @Description later messages can act on; everything else is classified and answered.
// @Tags        Assistant
// @Accept      multipart/form-data
// @Produce     json
// @Param       conversation_id path     string true  "Conversation ID"
// @Param       text            formData string false "Message text"
// @Param       file            formData file   false "Document (pdf, docx, md, txt, csv, html)"
// @Param       project_id      formData string false "Active project ID"
// @Param       project_name    formData string false "Active project name"
// @Param       team            formData string false "Comma separated team members"
// @Success     200 {object} messageResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     413 {object} response.Resp "File too large"
// @Failure     415 {object} response.Resp "Unsupported file type"
// @Failure     429 {object} response.Resp "Too Many Requests"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/conversations/{conversation_id}/messages [POST]
func (h *handler) SendMessage(c *gin.Context) {
	ctx := c.Request.Context()

	req, file, err := h.processSendMessageReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	if file != nil {
		defer file.body.Close()
	}

	output, err := h.uc.Handle(ctx, req.toInput(file.toFileUpload()))
	if err != nil {
		h.l.Errorf(ctx, "uc.Handle: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newMessageResp(output))
}

// CancelSession godoc
// @Summary     Discard the pending document
// @Description Drops the pending document session of a conversation, if any.
// @Tags        Assistant
// @Produce     json
// @Param       conversation_id path string true "Conversation ID"
// @Success     200 {object} response.Resp
// @Failure     404 {object} response.Resp "No pending document"
// @Router      /api/v1/conversations/{conversation_id}/session [DELETE]
func (h *handler) CancelSession(c *gin.Context) {
	ctx := c.Request.Context()

	convID := c.Param("conversation_id")
	if !h.uc.CancelPending(ctx, convID) {
		response.Error(c, h.mapError(assistant.ErrNoPendingSession), nil)
		return
	}

	response.OK(c, nil)
}

// CommitItems godoc
// @Summary     Create confirmed candidate items
// @Description Persists candidates previously returned by SendMessage. Items are created independently;
// @Description failures are reported per item and nothing is rolled back.
// @Tags        Assistant
// @Accept      json
// @Produce     json
// @Param       project_id path string    true "Project ID"
// @Param       body       body commitReq true "Confirmed candidates"
// @Success     200 {object} commitResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/projects/{project_id}/items [POST]
func (h *handler) CommitItems(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processCommitReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Commit(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Commit: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newCommitResp(output))
}

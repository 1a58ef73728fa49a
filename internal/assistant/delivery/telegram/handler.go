package telegram

import (
	"context"
	"crypto/subtle"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"project-assistant/internal/orchestrator"
	"project-assistant/internal/parser"
	pkgErrors "project-assistant/pkg/errors"
	"project-assistant/pkg/log"
	pkgResponse "project-assistant/pkg/response"
	pkgTelegram "project-assistant/pkg/telegram"
)

var errInvalidSecret = pkgErrors.NewHTTPError(http.StatusUnauthorized, "invalid secret token")

// HandleWebhook acknowledges the update right away and processes it in the
// background, since Telegram retries webhooks that take too long.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	if h.cfg.SecretToken != "" {
		got := c.GetHeader(pkgTelegram.HeaderSecretToken)
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.cfg.SecretToken)) != 1 {
			pkgResponse.Error(c, errInvalidSecret, nil)
			return
		}
	}

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	if update.Message == nil || update.Message.Chat == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	msg := update.Message
	h.spawn(func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), processTimeout)
		defer cancel()
		bgCtx = log.WithConversationID(bgCtx, conversationID(msg.Chat.ID))

		if err := h.processMessage(bgCtx, msg); err != nil {
			h.l.Errorf(bgCtx, "telegram handler: processMessage failed: %v", err)
			_ = h.bot.SendMessage(bgCtx, msg.Chat.ID, msgFailed)
		}
	})

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)
	if msg.Document != nil {
		text = strings.TrimSpace(msg.Caption)
	}

	if msg.Document == nil {
		if handled, err := h.handleCommand(ctx, chatID, text); handled {
			return err
		}
		if text == "" {
			return nil
		}
	}

	project := h.state(chatID).project
	in := orchestrator.Input{
		ConversationID: conversationID(chatID),
		Text:           text,
		Project:        project,
	}

	if msg.Document != nil {
		file, reply, err := h.openDocument(ctx, msg.Document)
		if err != nil {
			return err
		}
		if reply != "" {
			return h.bot.SendMessage(ctx, chatID, reply)
		}
		defer file.Close()
		in.File = &orchestrator.FileUpload{
			Name:     msg.Document.FileName,
			Size:     msg.Document.FileSize,
			MimeType: msg.Document.MimeType,
			Reader:   file,
		}
	}

	if err := h.bot.SendMessage(ctx, chatID, msgProcessing); err != nil {
		h.l.Warnf(ctx, "telegram handler: failed to send ack message: %v", err)
	}

	out, err := h.uc.Handle(ctx, in)
	if err != nil {
		return fmt.Errorf("uc.Handle: %w", err)
	}

	// Handle can take minutes. Only the candidates are written back, and
	// only if the chat did not switch project meanwhile.
	if len(out.CandidateItems) > 0 {
		h.update(chatID, func(s *chatState) {
			if s.project.ID != project.ID {
				h.l.Infof(ctx, "telegram handler: project changed during extraction, dropping %d candidates", len(out.CandidateItems))
				return
			}
			s.candidates = out.CandidateItems
			s.sourceArtifactID = out.SourceArtifactID
		})
	}

	return h.bot.SendMessage(ctx, chatID, formatOutput(out))
}

// handleCommand runs slash commands. It reports false for anything else.
func (h *handler) handleCommand(ctx context.Context, chatID int64, text string) (bool, error) {
	cmd, args, _ := strings.Cut(text, " ")
	// "/help@my_bot" in group chats.
	cmd, _, _ = strings.Cut(cmd, "@")

	switch cmd {
	case cmdStart, cmdHelp:
		return true, h.bot.SendMessage(ctx, chatID, msgHelp)

	case cmdCancel:
		reply := msgNothingToCancel
		if h.uc.CancelPending(ctx, conversationID(chatID)) {
			reply = msgCancelled
		}
		return true, h.bot.SendMessage(ctx, chatID, reply)

	case cmdProject:
		id, name, _ := strings.Cut(strings.TrimSpace(args), " ")
		if id == "" {
			return true, h.bot.SendMessage(ctx, chatID, msgProjectUsage)
		}
		state := h.update(chatID, func(s *chatState) {
			s.project.ID = id
			s.project.Name = strings.TrimSpace(name)
			s.candidates = nil
			s.sourceArtifactID = ""
		})
		label := id
		if state.project.Name != "" {
			label = state.project.Name
		}
		return true, h.bot.SendMessage(ctx, chatID, fmt.Sprintf(msgProjectSet, label))

	case cmdConfirm:
		return true, h.confirm(ctx, chatID)
	}
	return false, nil
}

// confirm takes the candidates out of the chat state before committing,
// so two /confirm messages cannot persist the same batch twice.
func (h *handler) confirm(ctx context.Context, chatID int64) error {
	var taken chatState
	h.update(chatID, func(s *chatState) {
		taken = *s
		s.candidates = nil
		s.sourceArtifactID = ""
	})
	if len(taken.candidates) == 0 {
		return h.bot.SendMessage(ctx, chatID, msgNothingToConfirm)
	}

	res, err := h.uc.Commit(ctx, orchestrator.CommitInput{
		ConversationID:   conversationID(chatID),
		ProjectID:        taken.project.ID,
		SourceArtifactID: taken.sourceArtifactID,
		Items:            taken.candidates,
	})
	if err != nil {
		// Put them back so the user can retry, unless something replaced them.
		h.update(chatID, func(s *chatState) {
			if len(s.candidates) == 0 && s.project.ID == taken.project.ID {
				s.candidates = taken.candidates
				s.sourceArtifactID = taken.sourceArtifactID
			}
		})
		return fmt.Errorf("uc.Commit: %w", err)
	}

	return h.bot.SendMessage(ctx, chatID, formatCommit(res))
}

// openDocument downloads an attachment. A non-empty reply means the file
// was rejected and the user should be told why.
func (h *handler) openDocument(ctx context.Context, doc *pkgTelegram.Document) (file io.ReadCloser, reply string, err error) {
	if doc.FileSize > h.cfg.MaxUploadSize {
		return nil, fmt.Sprintf(msgFileTooLarge, h.cfg.MaxUploadSize>>20), nil
	}
	if !parser.IsSupported(doc.FileName) {
		return nil, msgUnsupportedFile, nil
	}

	f, err := h.bot.GetFile(ctx, doc.FileID)
	if err != nil {
		return nil, "", fmt.Errorf("bot.GetFile: %w", err)
	}
	body, err := h.bot.Download(ctx, f.FilePath)
	if err != nil {
		return nil, "", fmt.Errorf("bot.Download: %w", err)
	}
	return body, "", nil
}

// update applies fn to the chat state under the handler lock and stores
// the result.
func (h *handler) update(chatID int64, fn func(*chatState)) chatState {
	h.mu.Lock()
	defer h.mu.Unlock()
	state := h.state(chatID)
	fn(&state)
	h.chats.Add(chatID, state)
	return state
}

func (h *handler) state(chatID int64) chatState {
	state, ok := h.chats.Get(chatID)
	if !ok && h.cfg.DefaultProjectID != "" {
		state.project.ID = h.cfg.DefaultProjectID
	}
	return state
}

func conversationID(chatID int64) string {
	return conversationPrefix + strconv.FormatInt(chatID, 10)
}

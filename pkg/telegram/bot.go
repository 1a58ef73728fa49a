package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const (
	defaultAPIBase = "https://api.telegram.org"

	// MaxMessageRunes is the sendMessage text limit.
	MaxMessageRunes = 4096
	// MaxDownloadSize is the largest file getFile will serve.
	MaxDownloadSize = 20 << 20
)

// HeaderSecretToken carries the secret registered with SetWebhook.
const HeaderSecretToken = "X-Telegram-Bot-Api-Secret-Token"

// Bot is the Telegram Bot API client.
type Bot struct {
	token      string
	apiBase    string
	httpClient *http.Client
}

// NewBot creates a new Telegram Bot client with the given token.
func NewBot(token string) *Bot {
	return &Bot{
		token:      token,
		apiBase:    defaultAPIBase,
		httpClient: &http.Client{},
	}
}

// SetAPIURL overrides the API base URL for tests and local Bot API servers.
func (b *Bot) SetAPIURL(base string) {
	b.apiBase = base
}

func (b *Bot) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", b.apiBase, b.token, method)
}

// SetWebhook registers the webhook URL with Telegram.
func (b *Bot) SetWebhook(ctx context.Context, webhookURL, secretToken string) error {
	var ok bool
	return b.call(ctx, "setWebhook", SetWebhookRequest{URL: webhookURL, SecretToken: secretToken}, &ok)
}

// SendMessage sends a plain text message to a Telegram chat.
func (b *Bot) SendMessage(ctx context.Context, chatID int64, text string) error {
	return b.SendMessageWithMode(ctx, chatID, text, "")
}

// SendMessageWithMode sends a message with optional parse mode (e.g. "Markdown").
func (b *Bot) SendMessageWithMode(ctx context.Context, chatID int64, text, parseMode string) error {
	var msg Message
	return b.call(ctx, "sendMessage", SendMessageRequest{ChatID: chatID, Text: text, ParseMode: parseMode}, &msg)
}

// GetFile resolves a file id to a downloadable path.
func (b *Bot) GetFile(ctx context.Context, fileID string) (File, error) {
	var f File
	err := b.call(ctx, "getFile", map[string]string{"file_id": fileID}, &f)
	return f, err
}

// Download opens the file at filePath. The caller closes the body.
func (b *Bot) Download(ctx context.Context, filePath string) (io.ReadCloser, error) {
	u := fmt.Sprintf("%s/file/bot%s/%s", b.apiBase, b.token, (&url.URL{Path: filePath}).EscapedPath())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("telegram file download error %d", resp.StatusCode)
	}
	return resp.Body, nil
}

func (b *Bot) call(ctx context.Context, method string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.methodURL(method), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram %s: %w", method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("telegram %s: read body: %w", method, err)
	}

	apiResp := APIResponse[json.RawMessage]{}
	if err := json.Unmarshal(raw, &apiResp); err != nil {
		return fmt.Errorf("telegram %s API error %d: %s", method, resp.StatusCode, string(raw))
	}
	if !apiResp.OK {
		return fmt.Errorf("telegram %s failed: %s", method, apiResp.Description)
	}
	if out != nil && len(apiResp.Result) > 0 {
		if err := json.Unmarshal(apiResp.Result, out); err != nil {
			return fmt.Errorf("telegram %s: decode result: %w", method, err)
		}
	}
	return nil
}

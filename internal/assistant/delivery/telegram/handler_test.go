package telegram

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"project-assistant/internal/document"
	"project-assistant/internal/model"
	"project-assistant/internal/orchestrator"
	"project-assistant/pkg/log"
	pkgTelegram "project-assistant/pkg/telegram"
)

type mockBot struct {
	sent     []string
	files    map[string]string
	getErr   error
	download int
}

func (m *mockBot) SendMessage(_ context.Context, _ int64, text string) error {
	m.sent = append(m.sent, text)
	return nil
}

func (m *mockBot) GetFile(_ context.Context, fileID string) (pkgTelegram.File, error) {
	if m.getErr != nil {
		return pkgTelegram.File{}, m.getErr
	}
	return pkgTelegram.File{FileID: fileID, FilePath: "documents/" + fileID}, nil
}

func (m *mockBot) Download(_ context.Context, filePath string) (io.ReadCloser, error) {
	m.download++
	return io.NopCloser(strings.NewReader(m.files[filePath])), nil
}

func (m *mockBot) last() string {
	if len(m.sent) == 0 {
		return ""
	}
	return m.sent[len(m.sent)-1]
}

type mockUseCase struct {
	inputs    []orchestrator.Input
	gotBody   string
	out       orchestrator.Output
	err       error
	commits   []orchestrator.CommitInput
	commitRes document.MaterializeResult
	commitErr error
	cancelled bool
	// during runs inside Handle, standing in for messages that arrive
	// while a slow extraction is in flight.
	during func()
}

func (m *mockUseCase) Handle(_ context.Context, in orchestrator.Input) (orchestrator.Output, error) {
	m.inputs = append(m.inputs, in)
	if in.File != nil {
		b, _ := io.ReadAll(in.File.Reader)
		m.gotBody = string(b)
	}
	if m.during != nil {
		m.during()
	}
	return m.out, m.err
}

func (m *mockUseCase) Commit(_ context.Context, in orchestrator.CommitInput) (document.MaterializeResult, error) {
	m.commits = append(m.commits, in)
	return m.commitRes, m.commitErr
}

func (m *mockUseCase) CancelPending(context.Context, string) bool { return m.cancelled }

func newTestHandler(uc *mockUseCase, bot *mockBot, cfg Config) *handler {
	h := New(log.NewNop(), uc, bot, cfg).(*handler)
	h.spawn = func(f func()) { f() }
	return h
}

func send(h *handler, body string, secret string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/webhook/telegram", h.HandleWebhook)

	req := httptest.NewRequest(http.MethodPost, "/webhook/telegram", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set(pkgTelegram.HeaderSecretToken, secret)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func textUpdate(text string) string {
	return `{"update_id":1,"message":{"message_id":1,"chat":{"id":42,"type":"private"},"text":"` + text + `"}}`
}

func TestHandleWebhookText(t *testing.T) {
	uc := &mockUseCase{out: orchestrator.Output{Branch: orchestrator.BranchChat, ReplyText: "你好！"}}
	bot := &mockBot{}
	h := newTestHandler(uc, bot, Config{DefaultProjectID: "p0"})

	w := send(h, textUpdate("hello"), "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if len(uc.inputs) != 1 {
		t.Fatalf("Handle calls = %d", len(uc.inputs))
	}
	in := uc.inputs[0]
	if in.ConversationID != "telegram_42" || in.Text != "hello" || in.Project.ID != "p0" {
		t.Errorf("input = %+v", in)
	}
	if bot.last() != "你好！" {
		t.Errorf("reply = %q", bot.last())
	}
}

func TestHandleWebhookSecret(t *testing.T) {
	h := newTestHandler(&mockUseCase{}, &mockBot{}, Config{SecretToken: "s"})
	if w := send(h, textUpdate("hi"), "wrong"); w.Code != http.StatusUnauthorized {
		t.Errorf("wrong secret status = %d", w.Code)
	}
	if w := send(h, textUpdate("hi"), "s"); w.Code != http.StatusOK {
		t.Errorf("right secret status = %d", w.Code)
	}
}

func TestHandleWebhookIgnoresNonMessages(t *testing.T) {
	uc := &mockUseCase{}
	h := newTestHandler(uc, &mockBot{}, Config{})
	if w := send(h, `{"update_id":1}`, ""); w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if len(uc.inputs) != 0 {
		t.Error("Handle should not be called")
	}
}

func TestHandleWebhookDocument(t *testing.T) {
	doc := func(name string, size int64) string {
		return `{"update_id":1,"message":{"message_id":1,"chat":{"id":42,"type":"private"},"caption":"列出待辦",` +
			`"document":{"file_id":"f1","file_name":"` + name + `","file_size":` + strconv.FormatInt(size, 10) + `}}}`
	}

	t.Run("downloads and forwards", func(t *testing.T) {
		uc := &mockUseCase{out: orchestrator.Output{
			ReplyText:      "找到 1 個項目",
			CandidateItems: []model.CandidateItem{{Title: "Write SSO", Type: model.ItemTask, Priority: model.PriorityHigh}},
		}}
		bot := &mockBot{files: map[string]string{"documents/f1": "# Notes"}}
		h := newTestHandler(uc, bot, Config{})

		send(h, doc("notes.md", 7), "")
		if len(uc.inputs) != 1 || uc.inputs[0].File == nil {
			t.Fatalf("inputs = %+v", uc.inputs)
		}
		if uc.inputs[0].Text != "列出待辦" || uc.gotBody != "# Notes" {
			t.Errorf("text = %q body = %q", uc.inputs[0].Text, uc.gotBody)
		}
		if !strings.Contains(bot.last(), "1. Write SSO [task/high]") || !strings.Contains(bot.last(), "/confirm") {
			t.Errorf("reply = %q", bot.last())
		}
	})

	t.Run("too large", func(t *testing.T) {
		uc := &mockUseCase{}
		bot := &mockBot{}
		h := newTestHandler(uc, bot, Config{MaxUploadSize: 10})
		send(h, doc("notes.md", 100), "")
		if len(uc.inputs) != 0 || bot.download != 0 {
			t.Error("oversized file should be rejected before download")
		}
		if !strings.Contains(bot.last(), "檔案太大") {
			t.Errorf("reply = %q", bot.last())
		}
	})

	t.Run("unsupported", func(t *testing.T) {
		uc := &mockUseCase{}
		bot := &mockBot{}
		h := newTestHandler(uc, bot, Config{})
		send(h, doc("photo.png", 1), "")
		if len(uc.inputs) != 0 || bot.last() != msgUnsupportedFile {
			t.Errorf("reply = %q", bot.last())
		}
	})

	t.Run("download failure", func(t *testing.T) {
		uc := &mockUseCase{}
		bot := &mockBot{getErr: errors.New("telegram down")}
		h := newTestHandler(uc, bot, Config{})
		send(h, doc("notes.md", 1), "")
		if bot.last() != msgFailed {
			t.Errorf("reply = %q", bot.last())
		}
	})
}

func TestCommands(t *testing.T) {
	t.Run("help", func(t *testing.T) {
		bot := &mockBot{}
		h := newTestHandler(&mockUseCase{}, bot, Config{})
		send(h, textUpdate("/help@assistant_bot"), "")
		if bot.last() != msgHelp {
			t.Errorf("reply = %q", bot.last())
		}
	})

	t.Run("cancel", func(t *testing.T) {
		bot := &mockBot{}
		h := newTestHandler(&mockUseCase{cancelled: true}, bot, Config{})
		send(h, textUpdate("/cancel"), "")
		if bot.last() != msgCancelled {
			t.Errorf("reply = %q", bot.last())
		}

		h = newTestHandler(&mockUseCase{}, bot, Config{})
		send(h, textUpdate("/cancel"), "")
		if bot.last() != msgNothingToCancel {
			t.Errorf("reply = %q", bot.last())
		}
	})

	t.Run("project then message", func(t *testing.T) {
		uc := &mockUseCase{out: orchestrator.Output{ReplyText: "ok"}}
		bot := &mockBot{}
		h := newTestHandler(uc, bot, Config{DefaultProjectID: "p0"})

		send(h, textUpdate("/project p9 Apollo Web"), "")
		if !strings.Contains(bot.last(), "Apollo Web") {
			t.Errorf("reply = %q", bot.last())
		}
		send(h, textUpdate("hello"), "")
		if got := uc.inputs[0].Project; got.ID != "p9" || got.Name != "Apollo Web" {
			t.Errorf("project = %+v", got)
		}
	})

	t.Run("project usage", func(t *testing.T) {
		bot := &mockBot{}
		h := newTestHandler(&mockUseCase{}, bot, Config{})
		send(h, textUpdate("/project"), "")
		if bot.last() != msgProjectUsage {
			t.Errorf("reply = %q", bot.last())
		}
	})

	t.Run("confirm", func(t *testing.T) {
		uc := &mockUseCase{
			out: orchestrator.Output{
				ReplyText:        "候選",
				SourceArtifactID: "a1",
				CandidateItems:   []model.CandidateItem{{Title: "A", Type: model.ItemTask}},
			},
			commitRes: document.MaterializeResult{Created: []model.Item{{ID: "i1", Title: "A", URL: "http://memos/m/1"}}},
		}
		bot := &mockBot{}
		h := newTestHandler(uc, bot, Config{DefaultProjectID: "p1"})

		send(h, textUpdate("/confirm"), "")
		if bot.last() != msgNothingToConfirm {
			t.Errorf("reply = %q", bot.last())
		}

		send(h, textUpdate("整理會議紀錄"), "")
		send(h, textUpdate("/confirm"), "")
		if len(uc.commits) != 1 {
			t.Fatalf("commits = %d", len(uc.commits))
		}
		c := uc.commits[0]
		if c.ProjectID != "p1" || c.SourceArtifactID != "a1" || len(c.Items) != 1 || c.ConversationID != "telegram_42" {
			t.Errorf("commit = %+v", c)
		}
		if !strings.Contains(bot.last(), "http://memos/m/1") {
			t.Errorf("reply = %q", bot.last())
		}

		send(h, textUpdate("/confirm"), "")
		if len(uc.commits) != 1 {
			t.Error("candidates must be consumed by the first confirm")
		}
	})
}

func TestProjectSwitchDuringExtraction(t *testing.T) {
	uc := &mockUseCase{
		out: orchestrator.Output{
			ReplyText:        "候選",
			SourceArtifactID: "a1",
			CandidateItems:   []model.CandidateItem{{Title: "A", Type: model.ItemTask}},
		},
	}
	bot := &mockBot{}
	h := newTestHandler(uc, bot, Config{DefaultProjectID: "p1"})

	uc.during = func() {
		uc.during = nil
		send(h, textUpdate("/project p2"), "")
	}
	send(h, textUpdate("整理會議紀錄"), "")

	state := h.state(42)
	if state.project.ID != "p2" {
		t.Errorf("project switch lost: got %q, want p2", state.project.ID)
	}
	if len(state.candidates) != 0 {
		t.Errorf("candidates of p1 kept after switching to p2: %+v", state.candidates)
	}

	send(h, textUpdate("/confirm"), "")
	if len(uc.commits) != 0 {
		t.Errorf("committed %+v into the new project", uc.commits)
	}
	if bot.last() != msgNothingToConfirm {
		t.Errorf("reply = %q", bot.last())
	}
}

func TestConfirmFailureKeepsCandidates(t *testing.T) {
	uc := &mockUseCase{
		out: orchestrator.Output{
			SourceArtifactID: "a1",
			CandidateItems:   []model.CandidateItem{{Title: "A", Type: model.ItemTask}},
		},
		commitErr: errors.New("memos down"),
	}
	bot := &mockBot{}
	h := newTestHandler(uc, bot, Config{DefaultProjectID: "p1"})

	send(h, textUpdate("整理會議紀錄"), "")
	send(h, textUpdate("/confirm"), "")
	if bot.last() != msgFailed {
		t.Errorf("reply = %q", bot.last())
	}

	uc.commitErr = nil
	send(h, textUpdate("/confirm"), "")
	if len(uc.commits) != 2 || uc.commits[1].SourceArtifactID != "a1" {
		t.Errorf("retry did not commit the same batch: %+v", uc.commits)
	}
}

func TestFormatOutputClips(t *testing.T) {
	out := orchestrator.Output{ReplyText: strings.Repeat("字", pkgTelegram.MaxMessageRunes+10)}
	got := []rune(formatOutput(out))
	if len(got) != pkgTelegram.MaxMessageRunes {
		t.Errorf("len = %d", len(got))
	}
}

package memos_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"project-assistant/internal/item"
	"project-assistant/internal/item/repository/memos"
	"project-assistant/internal/model"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

// fakeMemos is an in-memory Memos server.
type fakeMemos struct {
	mu    sync.Mutex
	memos map[string]memos.Memo
	next  int
}

func (f *fakeMemos) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/memos", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()

		switch r.Method {
		case http.MethodPost:
			var req memos.CreateMemoRequest
			json.NewDecoder(r.Body).Decode(&req)
			if strings.Contains(req.Content, "cause_500") {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			f.next++
			uid := "uid-" + string(rune('0'+f.next))
			m := memos.Memo{Name: "memos/" + uid, Content: req.Content, Visibility: req.Visibility, CreateTime: "2024-05-01T10:00:00Z"}
			f.memos[m.Name] = m
			json.NewEncoder(w).Encode(m)
		case http.MethodGet:
			filter := r.URL.Query().Get("filter")
			var out []memos.Memo
			for _, m := range f.memos {
				tag := strings.TrimSuffix(strings.TrimPrefix(filter, `tag in ["`), `"]`)
				if strings.Contains(m.Content, "#"+tag) {
					out = append(out, m)
				}
			}
			json.NewEncoder(w).Encode(memos.ListMemosResponse{Memos: out})
		}
	})
	mux.HandleFunc("/api/v1/memos/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		name := strings.TrimPrefix(r.URL.Path, "/api/v1/")
		m, ok := f.memos[name]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"memo not found"}`))
			return
		}
		if r.Method == http.MethodPatch {
			if r.URL.Query().Get("updateMask") != "content" {
				t.Errorf("expected updateMask=content")
			}
			var req memos.UpdateMemoRequest
			json.NewDecoder(r.Body).Decode(&req)
			m.Content = req.Content
			f.memos[name] = m
		}
		json.NewEncoder(w).Encode(m)
	})
	return mux
}

func newRepo(t *testing.T) (item.Store, *fakeMemos) {
	fake := &fakeMemos{memos: map[string]memos.Memo{}}
	ts := httptest.NewServer(fake.handler(t))
	t.Cleanup(ts.Close)
	return memos.New(memos.NewClient(ts.URL, "test-token"), "http://memos.local", &mockLogger{}), fake
}

func TestCreateAndGetItem(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	due := time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)
	parent := "memos/uid-9"
	created, err := repo.CreateItem(ctx, item.CreateOptions{
		ProjectID:          "p-1",
		Title:              "Login API",
		Description:        "Implement SSO login\nwith refresh tokens",
		Type:               model.ItemTask,
		Priority:           model.PriorityHigh,
		DueDate:            &due,
		ParentID:           &parent,
		RequirementSnippet: "Users sign in with SSO",
		SourceArtifactID:   "art-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "memos/uid-1" || created.URL != "http://memos.local/m/uid-1" {
		t.Errorf("unexpected identity %+v", created)
	}

	got, err := repo.GetItemByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "Login API" || got.Type != model.ItemTask || got.Priority != model.PriorityHigh {
		t.Errorf("unexpected item %+v", got)
	}
	if got.Description != "Implement SSO login\nwith refresh tokens" {
		t.Errorf("unexpected description %q", got.Description)
	}
	if got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Errorf("expected due date %v, got %v", due, got.DueDate)
	}
	if got.ParentID == nil || *got.ParentID != parent {
		t.Errorf("expected parent %s, got %v", parent, got.ParentID)
	}
	if got.ProjectID != "p-1" {
		t.Errorf("expected project p-1, got %q", got.ProjectID)
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected CreatedAt parsed")
	}
}

func TestCreateItem_Errors(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	if _, err := repo.CreateItem(ctx, item.CreateOptions{Title: "", Type: model.ItemTask}); !errors.Is(err, item.ErrInvalidItem) {
		t.Errorf("expected ErrInvalidItem, got %v", err)
	}
	if _, err := repo.CreateItem(ctx, item.CreateOptions{Title: "cause_500", Type: model.ItemTask}); err == nil {
		t.Error("expected error from 500 response")
	}
}

func TestUpdateItem(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	created, _ := repo.CreateItem(ctx, item.CreateOptions{ProjectID: "p1", Title: "Report", Type: model.ItemTask, Priority: model.PriorityLow})

	link := "https://calendar/e1"
	updated, err := repo.UpdateItem(ctx, created.ID, item.UpdateOptions{CalendarURL: &link})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.CalendarURL != link || updated.Title != "Report" || updated.Priority != model.PriorityLow {
		t.Errorf("expected calendar link added and other fields kept, got %+v", updated)
	}

	if _, err := repo.UpdateItem(ctx, "memos/missing", item.UpdateOptions{CalendarURL: &link}); !errors.Is(err, item.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestHierarchy(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	mod, _ := repo.CreateItem(ctx, item.CreateOptions{ProjectID: "p1", Title: "會員系統", Type: model.ItemFeatureModule})
	repo.CreateItem(ctx, item.CreateOptions{ProjectID: "p1", Title: "登入", Type: model.ItemWorkPackage, ParentID: &mod.ID})
	repo.CreateItem(ctx, item.CreateOptions{ProjectID: "p1", Title: "Write docs", Type: model.ItemTask})
	repo.CreateItem(ctx, item.CreateOptions{ProjectID: "p2", Title: "Other", Type: model.ItemFeatureModule})

	nodes, err := repo.Hierarchy(ctx, "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected 2 hierarchy nodes, got %d: %+v", len(nodes), nodes)
	}
	for _, n := range nodes {
		if n.Kind == model.NodeWorkPackage && (n.ParentID == nil || *n.ParentID != mod.ID) {
			t.Errorf("expected work package linked to %s, got %+v", mod.ID, n)
		}
	}
}

func TestHierarchyKeepsRawProjectID(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	created, err := repo.CreateItem(ctx, item.CreateOptions{ProjectID: "acme.web", Title: "Billing", Type: model.ItemFeatureModule})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ProjectID != "acme.web" {
		t.Errorf("created project id = %q, want acme.web", created.ProjectID)
	}
	repo.CreateItem(ctx, item.CreateOptions{ProjectID: "acme_web", Title: "Other", Type: model.ItemFeatureModule})

	nodes, err := repo.Hierarchy(ctx, "acme.web")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 1 || nodes[0].Title != "Billing" {
		t.Errorf("expected only the acme.web module, got %+v", nodes)
	}
}

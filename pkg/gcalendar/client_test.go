package gcalendar_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"google.golang.org/api/calendar/v3"

	"project-assistant/pkg/gcalendar"
)

type rewriteTransport struct {
	Transport http.RoundTripper
	Host      string
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = "http"
	req.URL.Host = t.Host
	return t.Transport.RoundTrip(req)
}

const installedCreds = `{
	"installed": {
		"client_id": "test-client-id.apps.googleusercontent.com",
		"project_id": "test-project",
		"auth_uri": "https://accounts.google.com/o/oauth2/auth",
		"token_uri": "https://oauth2.googleapis.com/token",
		"client_secret": "test-secret",
		"redirect_uris": ["http://localhost"]
	}
}`

func TestNewClient(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
		return path
	}

	creds := write("creds.json", installedCreds)
	broken := write("broken.json", `{"broken":true}`)
	goodToken := write("token.json", `{"access_token": "dummy", "token_type": "Bearer", "expiry": "2030-01-01T00:00:00Z"}`)
	badToken := write("bad-token.json", `{"broken": true`)

	tests := []struct {
		name    string
		opt     gcalendar.Options
		wantErr string
	}{
		{name: "installed app with token", opt: gcalendar.Options{CredentialsPath: creds, TokenPath: goodToken}},
		{name: "installed app, token missing", opt: gcalendar.Options{CredentialsPath: creds, TokenPath: filepath.Join(dir, "none.json")}, wantErr: "run scripts/gcal-auth"},
		{name: "installed app, token corrupt", opt: gcalendar.Options{CredentialsPath: creds, TokenPath: badToken}, wantErr: "parse"},
		{name: "unsupported credentials", opt: gcalendar.Options{CredentialsPath: broken}, wantErr: "unsupported credentials"},
		{name: "missing credentials file", opt: gcalendar.Options{CredentialsPath: filepath.Join(dir, "nope.json")}, wantErr: "read credentials"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gcalendar.NewClient(context.Background(), tt.opt)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestCreateEvent(t *testing.T) {
	t.Run("Create Event E2E", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/calendar/v3/calendars/primary/events" && r.Method == http.MethodPost {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(`{
					"id": "event-123",
					"htmlLink": "https://calendar.google.com/event-uri",
					"status": "confirmed"
				}`))
				return
			}
			w.WriteHeader(http.StatusNotFound)
		}))
		defer ts.Close()

		tsClient := ts.Client()
		tsClient.Transport = &rewriteTransport{
			Transport: tsClient.Transport,
			Host:      strings.TrimPrefix(ts.URL, "http://"),
		}

		client, err := gcalendar.NewClientFromHTTP(context.Background(), tsClient)
		if err != nil {
			t.Fatalf("unexpected error creating client: %v", err)
		}

		event, err := client.CreateEvent(context.Background(), gcalendar.CreateEventRequest{
			CalendarID:  "primary",
			Summary:     "Title",
			Description: "Desc",
			StartTime:   time.Now(),
			EndTime:     time.Now().Add(time.Hour),
		})
		if err != nil {
			t.Fatalf("failed to create event: %v", err)
		}
		if event.HtmlLink != "https://calendar.google.com/event-uri" {
			t.Errorf("unexpected link: %s", event.HtmlLink)
		}
	})

	t.Run("Create All Day Event", func(t *testing.T) {
		var got calendar.Event
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewDecoder(r.Body).Decode(&got)
			w.Write([]byte(`{"id":"event-456","htmlLink":"https://calendar.google.com/e456"}`))
		}))
		defer ts.Close()

		tsClient := ts.Client()
		tsClient.Transport = &rewriteTransport{
			Transport: tsClient.Transport,
			Host:      strings.TrimPrefix(ts.URL, "http://"),
		}
		client, _ := gcalendar.NewClientFromHTTP(context.Background(), tsClient)

		due := time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)
		_, err := client.CreateEvent(context.Background(), gcalendar.CreateEventRequest{
			Summary:    "Login API",
			StartTime:  due,
			EndTime:    due.AddDate(0, 0, 1),
			AllDay:     true,
			Timezone:   "Asia/Taipei",
			Source:     &gcalendar.EventSource{Title: "Login API", URL: "http://memos/m/1"},
			Properties: map[string]string{"item_id": "memos/1"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Start == nil || got.Start.Date != "2024-05-03" || got.Start.DateTime != "" {
			t.Errorf("expected all-day start date, got %+v", got.Start)
		}
		if got.End == nil || got.End.Date != "2024-05-04" {
			t.Errorf("expected exclusive end date, got %+v", got.End)
		}
		if got.Source == nil || got.Source.Url != "http://memos/m/1" {
			t.Errorf("expected event source link, got %+v", got.Source)
		}
		if got.ExtendedProperties == nil || got.ExtendedProperties.Private["item_id"] != "memos/1" {
			t.Errorf("expected item id property, got %+v", got.ExtendedProperties)
		}
	})

	t.Run("Create Event Error E2E", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/calendar/v3/calendars/primary/events" {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
		}))
		defer ts.Close()

		tsClient := ts.Client()
		tsClient.Transport = &rewriteTransport{
			Transport: tsClient.Transport,
			Host:      strings.TrimPrefix(ts.URL, "http://"),
		}

		client, _ := gcalendar.NewClientFromHTTP(context.Background(), tsClient)
		_, err := client.CreateEvent(context.Background(), gcalendar.CreateEventRequest{
			CalendarID: "primary",
		})
		if err == nil {
			t.Fatalf("expected create event error")
		}
	})
}

// Authorizes Google Calendar access for the item calendar sink when a
// service account is not available. Writes the token.json that
// pkg/gcalendar falls back to for OAuth desktop credentials.
//
// Usage:
//
//	go run scripts/gcal-auth/main.go [credentials.json] [token.json]
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

const (
	defaultCredentialsPath = "google-credentials.json"
	defaultTokenPath       = "token.json"
)

func main() {
	credsPath, tokenPath := defaultCredentialsPath, defaultTokenPath
	if len(os.Args) > 1 {
		credsPath = os.Args[1]
	}
	if len(os.Args) > 2 {
		tokenPath = os.Args[2]
	}

	data, err := os.ReadFile(credsPath)
	if err != nil {
		log.Fatalf("read credentials %q: %v", credsPath, err)
	}

	config, err := google.ConfigFromJSON(data, calendar.CalendarScope)
	if err != nil {
		log.Fatalf("parse credentials: %v (expected an OAuth desktop app file)", err)
	}

	fmt.Println("1. Open this URL and sign in with the calendar owner account:")
	fmt.Println()
	fmt.Println(config.AuthCodeURL("project-assistant", oauth2.AccessTypeOffline))
	fmt.Println()
	fmt.Print("2. Paste the authorization code: ")

	code, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		log.Fatalf("read authorization code: %v", err)
	}

	tok, err := config.Exchange(context.Background(), strings.TrimSpace(code))
	if err != nil {
		log.Fatalf("exchange authorization code: %v", err)
	}

	if err := saveToken(tokenPath, tok); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("\nSaved %s. Set google_calendar.enabled=true and restart the API.\n", tokenPath)
}

func saveToken(path string, tok *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(tok); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

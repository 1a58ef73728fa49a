// Indexes existing project material into the knowledge store so chat
// replies can cite it before any upload happens.
//
// Usage:
//
//	go run scripts/backfill-knowledge/main.go <project_id> [file ...]
//
// The project's feature modules and work packages are always indexed;
// files are parsed with the same parsers as uploads.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"project-assistant/config"
	memosRepo "project-assistant/internal/item/repository/memos"
	"project-assistant/internal/model"
	"project-assistant/internal/parser"
	"project-assistant/internal/retrieval"
	qdrantRepo "project-assistant/internal/retrieval/repository/qdrant"
	"project-assistant/pkg/log"
	pkgQdrant "project-assistant/pkg/qdrant"
	"project-assistant/pkg/voyage"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run scripts/backfill-knowledge/main.go <project_id> [file ...]")
		os.Exit(1)
	}
	projectID := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := log.Init(log.ZapConfig{
		Level:        "info",
		Mode:         "development",
		Encoding:     "console",
		ColorEnabled: true,
	})
	ctx := context.Background()

	embedder, err := voyage.New(cfg.Voyage.APIKey)
	if err != nil {
		logger.Fatalf(ctx, "voyage: %v", err)
	}
	embedder.WithModel(cfg.Voyage.Model, cfg.Qdrant.VectorSize)

	qdrantClient := pkgQdrant.NewClient(cfg.Qdrant.URL).WithAPIKey(cfg.Qdrant.APIKey)
	store := qdrantRepo.New(qdrantClient, embedder, cfg.Qdrant.CollectionName, logger)
	if setup, ok := store.(qdrantRepo.Setup); ok {
		if err := setup.EnsureCollection(ctx); err != nil {
			logger.Fatalf(ctx, "qdrant collection: %v", err)
		}
	}

	items := memosRepo.New(memosRepo.NewClient(cfg.Memos.URL, cfg.Memos.AccessToken), cfg.Memos.ExternalURL, logger)

	total := 0

	nodes, err := items.Hierarchy(ctx, projectID)
	if err != nil {
		logger.Warnf(ctx, "hierarchy of %s not available: %v", projectID, err)
	}
	if len(nodes) > 0 {
		n, err := store.Index(ctx, retrieval.Document{
			ID:        "hierarchy/" + projectID,
			ProjectID: projectID,
			Source:    "hierarchy",
			Text:      hierarchyText(nodes),
		})
		if err != nil {
			logger.Errorf(ctx, "index hierarchy: %v", err)
		}
		total += n
	}

	for _, path := range os.Args[2:] {
		n, err := indexFile(ctx, store, projectID, path)
		if err != nil {
			logger.Errorf(ctx, "index %s: %v", path, err)
			continue
		}
		logger.Infof(ctx, "indexed %s (%d chunks)", path, n)
		total += n
	}

	logger.Infof(ctx, "Backfill complete: %d chunks for project %s", total, projectID)
}

func indexFile(ctx context.Context, store retrieval.Store, projectID, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	name := filepath.Base(path)
	doc, err := parser.Auto{}.Parse(name, f)
	if err != nil {
		return 0, err
	}
	return store.Index(ctx, retrieval.Document{
		ID:        "file/" + projectID + "/" + name,
		ProjectID: projectID,
		Source:    name,
		Text:      doc.Text,
	})
}

func hierarchyText(nodes []model.HierarchyNode) string {
	var b strings.Builder
	for _, n := range nodes {
		fmt.Fprintf(&b, "%s: %s\n", n.Kind, n.Title)
	}
	return b.String()
}

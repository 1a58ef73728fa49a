package memos

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"project-assistant/internal/item"
	"project-assistant/internal/model"
	"project-assistant/pkg/log"
)

const (
	visibilityPrivate = "PRIVATE"
	hierarchyPageSize = 200
	maxHierarchyPages = 10
)

type implRepository struct {
	client      *Client
	memoBaseURL string // for deep links, e.g. http://localhost:5230
	l           log.Logger
}

// New creates a Memos backed item store.
func New(client *Client, memoBaseURL string, l log.Logger) item.Store {
	return &implRepository{
		client:      client,
		memoBaseURL: strings.TrimRight(memoBaseURL, "/"),
		l:           l,
	}
}

func (r *implRepository) CreateItem(ctx context.Context, opt item.CreateOptions) (model.Item, error) {
	if strings.TrimSpace(opt.Title) == "" || !opt.Type.Valid() {
		return model.Item{}, fmt.Errorf("%w: title and a known type are required", item.ErrInvalidItem)
	}

	memo, err := r.client.CreateMemo(ctx, CreateMemoRequest{
		Content:    newBody(opt).render(),
		Visibility: visibilityPrivate,
	})
	if err != nil {
		r.l.Errorf(ctx, "memos repository: failed to create %s %q: %v", opt.Type, opt.Title, err)
		return model.Item{}, err
	}
	return r.memoToItem(memo), nil
}

func (r *implRepository) UpdateItem(ctx context.Context, id string, opt item.UpdateOptions) (model.Item, error) {
	memo, err := r.client.GetMemo(ctx, id)
	if err != nil {
		return model.Item{}, r.mapError(err)
	}

	b := parseBody(memo.Content)
	if opt.Title != nil {
		b.Title = *opt.Title
	}
	if opt.Description != nil {
		b.Description = *opt.Description
	}
	if opt.ParentID != nil {
		b.Meta[metaParent] = *opt.ParentID
	}
	if opt.CalendarURL != nil {
		b.Meta[metaCalendar] = *opt.CalendarURL
	}

	updated, err := r.client.UpdateMemoContent(ctx, id, b.render())
	if err != nil {
		r.l.Errorf(ctx, "memos repository: failed to update %s: %v", id, err)
		return model.Item{}, r.mapError(err)
	}
	return r.memoToItem(updated), nil
}

func (r *implRepository) GetItemByID(ctx context.Context, id string) (model.Item, error) {
	memo, err := r.client.GetMemo(ctx, id)
	if err != nil {
		return model.Item{}, r.mapError(err)
	}
	return r.memoToItem(memo), nil
}

// Hierarchy lists the feature modules and work packages of a project.
func (r *implRepository) Hierarchy(ctx context.Context, projectID string) ([]model.HierarchyNode, error) {
	var nodes []model.HierarchyNode
	token := ""
	for page := 0; page < maxHierarchyPages; page++ {
		resp, err := r.client.ListMemos(ctx, projectTag(projectID), hierarchyPageSize, token)
		if err != nil {
			return nil, err
		}
		for i := range resp.Memos {
			it := r.memoToItem(&resp.Memos[i])
			// The tag folds ids like "acme.web" and "acme_web" together.
			if !it.Type.Hierarchical() || it.ProjectID != projectID {
				continue
			}
			nodes = append(nodes, model.HierarchyNode{
				ID:       it.ID,
				Title:    it.Title,
				ParentID: it.ParentID,
				Kind:     model.NodeKind(it.Type),
			})
		}
		if resp.NextPageToken == "" {
			break
		}
		token = resp.NextPageToken
	}
	return nodes, nil
}

func (r *implRepository) mapError(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %v", item.ErrNotFound, err)
	}
	return err
}

// memoToItem converts a Memos API memo to model.Item.
func (r *implRepository) memoToItem(m *Memo) model.Item {
	uid := m.UID
	// Name format is "memos/{uid}" in the v1 API
	if uid == "" {
		if _, after, ok := strings.Cut(m.Name, "/"); ok {
			uid = after
		}
	}

	memoURL := ""
	if uid != "" && r.memoBaseURL != "" {
		memoURL = fmt.Sprintf("%s/m/%s", r.memoBaseURL, uid)
	}

	it := parseBody(m.Content).toItem(m.Name, memoURL)
	if t, err := time.Parse(time.RFC3339, m.CreateTime); err == nil {
		it.CreatedAt = t
	}
	return it
}

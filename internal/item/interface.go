package item

import (
	"context"

	"project-assistant/internal/model"
)

// Store persists work items and exposes the project hierarchy.
type Store interface {
	CreateItem(ctx context.Context, opt CreateOptions) (model.Item, error)
	UpdateItem(ctx context.Context, id string, opt UpdateOptions) (model.Item, error)
	GetItemByID(ctx context.Context, id string) (model.Item, error)
	Hierarchy(ctx context.Context, projectID string) ([]model.HierarchyNode, error)
}

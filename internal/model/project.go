package model

// ProjectContext is the project the conversation is currently scoped to.
type ProjectContext struct {
	ID        string
	Name      string
	Team      []string
	Hierarchy []HierarchyNode
}

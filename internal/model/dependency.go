package model

// DependencyType categorizes the relationship between two items.
type DependencyType string

const (
	// DepBlocking means the item cannot be ready until the target is closed.
	DepBlocking DependencyType = "blocking"
	// DepParentChild expresses grouping only and never affects readiness.
	DepParentChild DependencyType = "parent-child"
)

// IsValid checks whether the dependency type is a known value.
func (d DependencyType) IsValid() bool {
	switch d {
	case DepBlocking, DepParentChild:
		return true
	}
	return false
}

// Dependency is a directional edge from the item that carries it to the
// item named by DependsOnID.
type Dependency struct {
	DependsOnID string         `json:"depends_on_id"`
	Type        DependencyType `json:"type"`
}

package model

// Tier ranks a source for ordering purposes: the root project is tier 0,
// any discovered sub-project is tier 1.
const (
	TierRoot = 0
	TierSub  = 1
)

// Source is one independent collection of work items. Item ids are unique
// within a source but may collide across sources; (source, id) is the true
// global key.
type Source struct {
	Name     string `json:"name"`
	RootPath string `json:"root_path"`
	Tier     int    `json:"tier"`
}

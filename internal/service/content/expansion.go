package content

import (
	"sort"

	models "learnhub/internal/domain/models/content"
)

// ExpandedSet holds the ids of expanded tree nodes.
// It is plain view state and not safe for concurrent use.
type ExpandedSet struct {
	ids map[string]struct{}
}

// NewExpandedSet creates a set containing ids
func NewExpandedSet(ids ...string) *ExpandedSet {
	s := &ExpandedSet{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// ExpandAll returns a set containing every grouping node of the tree
func ExpandAll(roots []*models.TreeNode) *ExpandedSet {
	s := NewExpandedSet()
	Walk(roots, func(node *models.TreeNode, _ int) bool {
		if !node.IsLeaf() {
			s.Expand(node.ID)
		}
		return true
	})
	return s
}

// Expand marks id as expanded
func (s *ExpandedSet) Expand(id string) {
	s.ids[id] = struct{}{}
}

// Collapse marks id as collapsed
func (s *ExpandedSet) Collapse(id string) {
	delete(s.ids, id)
}

// Toggle flips id and returns its new state
func (s *ExpandedSet) Toggle(id string) bool {
	if s.IsExpanded(id) {
		s.Collapse(id)
		return false
	}
	s.Expand(id)
	return true
}

// IsExpanded reports whether id is expanded
func (s *ExpandedSet) IsExpanded(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of expanded ids
func (s *ExpandedSet) Len() int {
	return len(s.ids)
}

// IDs returns the expanded ids sorted, never nil
func (s *ExpandedSet) IDs() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Prune drops ids that do not name a grouping node of the tree and
// returns how many were removed
func (s *ExpandedSet) Prune(roots []*models.TreeNode) int {
	live := make(map[string]struct{})
	Walk(roots, func(node *models.TreeNode, _ int) bool {
		if !node.IsLeaf() {
			live[node.ID] = struct{}{}
		}
		return true
	})

	removed := 0
	for id := range s.ids {
		if _, ok := live[id]; !ok {
			delete(s.ids, id)
			removed++
		}
	}
	return removed
}

// VisibleRow is one line of the rendered tree
type VisibleRow struct {
	Node     *models.TreeNode
	Depth    int
	IsLast   bool // Last child of its parent
	Expanded bool
}

// VisibleRows flattens the tree into the rows a view draws: roots are always
// shown and a node's children only when the node is expanded
func VisibleRows(roots []*models.TreeNode, expanded *ExpandedSet) []VisibleRow {
	rows := make([]VisibleRow, 0, len(roots))

	var visit func(nodes []*models.TreeNode, depth int)
	visit = func(nodes []*models.TreeNode, depth int) {
		for i, node := range nodes {
			open := !node.IsLeaf() && expanded.IsExpanded(node.ID)
			rows = append(rows, VisibleRow{
				Node:     node,
				Depth:    depth,
				IsLast:   i == len(nodes)-1,
				Expanded: open,
			})
			if open {
				visit(node.Children, depth+1)
			}
		}
	}
	visit(roots, 0)

	return rows
}

package content

import (
	"strings"

	models "learnhub/internal/domain/models/content"
)

// NodeIDSeparator joins path segments into tree node ids
const NodeIDSeparator = "-"

// groupingLevels is the fixed order of the grouping levels above content leaves
var groupingLevels = [...]models.NodeKind{
	models.NodeKindInstitute,
	models.NodeKindSubject,
	models.NodeKindChapter,
	models.NodeKindTopic,
}

// pathKey identifies a grouping node by its level and the raw path segments
// leading to it. Segments are compared as-is, so names containing the id
// separator never merge into the wrong node.
type pathKey struct {
	depth    int
	segments [len(groupingLevels)]string
}

// BuildHierarchy folds a flat list of content items into institute trees.
//
// Children keep the order in which their name first occurs in items, each
// grouping node's ItemCount is the number of leaves beneath it, and every
// leaf points at its element of items. The result is never nil.
func BuildHierarchy(items []models.ContentItem) []*models.TreeNode {
	roots := make([]*models.TreeNode, 0)
	lookup := make(map[pathKey]*models.TreeNode)

	for i := range items {
		item := &items[i]
		segments := [len(groupingLevels)]string{item.Institute, item.Subject, item.Chapter, item.Topic}

		var parent *models.TreeNode
		for depth, kind := range groupingLevels {
			key := pathKey{depth: depth}
			copy(key.segments[:depth+1], segments[:depth+1])

			node, exists := lookup[key]
			if !exists {
				node = &models.TreeNode{
					ID:       childID(parent, segments[depth]),
					Name:     segments[depth],
					Kind:     kind,
					Children: []*models.TreeNode{},
				}
				lookup[key] = node

				if parent == nil {
					roots = append(roots, node)
				} else {
					parent.Children = append(parent.Children, node)
				}
			}

			node.ItemCount++
			parent = node
		}

		parent.Children = append(parent.Children, &models.TreeNode{
			ID:      childID(parent, item.ID),
			Name:    item.Title,
			Kind:    models.NodeKindContent,
			Content: item,
		})
	}

	return roots
}

func childID(parent *models.TreeNode, segment string) string {
	if parent == nil {
		return segment
	}
	return parent.ID + NodeIDSeparator + segment
}

// TopicNodeID returns the id BuildHierarchy assigns to the topic node of path
func TopicNodeID(path models.TopicPath) string {
	return strings.Join([]string{path.Institute, path.Subject, path.Chapter, path.Topic}, NodeIDSeparator)
}

// CountItems returns the number of content leaves under the given roots
func CountItems(roots []*models.TreeNode) int {
	total := 0
	for _, root := range roots {
		total += root.ItemCount
	}
	return total
}

// Walk visits every node depth-first in child order.
// Returning false from fn skips the node's children.
func Walk(roots []*models.TreeNode, fn func(node *models.TreeNode, depth int) bool) {
	var visit func(nodes []*models.TreeNode, depth int)
	visit = func(nodes []*models.TreeNode, depth int) {
		for _, node := range nodes {
			if fn(node, depth) {
				visit(node.Children, depth+1)
			}
		}
	}
	visit(roots, 0)
}

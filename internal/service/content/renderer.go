package content

import (
	"fmt"
	"strings"
)

// TreeRenderer draws visible tree rows using box-drawing characters.
//
// Example output:
//
//	A (3 items)
//	├── Math (2 items)
//	│   └── Algebra (2 items)
//	└── Science (1 item)
type TreeRenderer struct {
	ShowCounts bool
}

// NewTreeRenderer creates a renderer that prints item counts
func NewTreeRenderer() *TreeRenderer {
	return &TreeRenderer{ShowCounts: true}
}

// Render converts rows produced by VisibleRows into text, one line per row
func (r *TreeRenderer) Render(rows []VisibleRow) string {
	if len(rows) == 0 {
		return ""
	}

	var out strings.Builder

	// Depths whose current node still has siblings below it
	continuations := make(map[int]bool)

	for i, row := range rows {
		out.WriteString(r.prefix(row, continuations))
		out.WriteString(r.label(row))
		if i < len(rows)-1 {
			out.WriteString("\n")
		}

		if row.IsLast {
			delete(continuations, row.Depth)
		} else {
			continuations[row.Depth] = true
		}
	}

	return out.String()
}

func (r *TreeRenderer) prefix(row VisibleRow, continuations map[int]bool) string {
	if row.Depth == 0 {
		return ""
	}

	var prefix strings.Builder
	for d := 1; d < row.Depth; d++ {
		if continuations[d] {
			prefix.WriteString("│   ")
		} else {
			prefix.WriteString("    ")
		}
	}

	if row.IsLast {
		prefix.WriteString("└── ")
	} else {
		prefix.WriteString("├── ")
	}
	return prefix.String()
}

func (r *TreeRenderer) label(row VisibleRow) string {
	node := row.Node
	if node.IsLeaf() {
		if node.Content != nil {
			return fmt.Sprintf("%s [%s]", node.Name, node.Content.Type)
		}
		return node.Name
	}

	if !r.ShowCounts {
		return node.Name
	}
	if node.ItemCount == 1 {
		return node.Name + " (1 item)"
	}
	return fmt.Sprintf("%s (%d items)", node.Name, node.ItemCount)
}

package content

// NodeKind tags the hierarchy level a TreeNode sits on
type NodeKind string

const (
	NodeKindInstitute NodeKind = "institute"
	NodeKindSubject   NodeKind = "subject"
	NodeKindChapter   NodeKind = "chapter"
	NodeKindTopic     NodeKind = "topic"
	NodeKindContent   NodeKind = "content"
)

// TreeNode is one entry of the content hierarchy.
// Grouping nodes carry Children and ItemCount; content leaves carry Content.
type TreeNode struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Kind      NodeKind     `json:"kind"`
	Children  []*TreeNode  `json:"children,omitempty"`
	ItemCount int          `json:"item_count,omitempty"`
	Content   *ContentItem `json:"content,omitempty"` // Points at the source item, never a copy
}

// IsLeaf reports whether the node represents a single content item
func (n *TreeNode) IsLeaf() bool {
	return n.Kind == NodeKindContent
}

// TreeResponse is the content tree plus the caller's persisted view state
type TreeResponse struct {
	Roots      []*TreeNode `json:"roots"`
	Expanded   []string    `json:"expanded"`
	ShowCounts bool        `json:"show_counts"`
	TotalItems int         `json:"total_items"`
}

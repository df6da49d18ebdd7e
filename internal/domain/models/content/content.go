package content

import (
	"strings"
	"time"
)

// ContentType is the kind of learning material an item holds
type ContentType string

const (
	ContentTypeVideo    ContentType = "video"
	ContentTypeDocument ContentType = "document"
	ContentTypeImage    ContentType = "image"
	ContentTypeIframe   ContentType = "iframe"
	ContentTypeText     ContentType = "text"
)

// ContentTypes lists every valid content type in display order
var ContentTypes = []ContentType{
	ContentTypeVideo,
	ContentTypeDocument,
	ContentTypeImage,
	ContentTypeIframe,
	ContentTypeText,
}

// IsValid reports whether t is one of the known content types
func (t ContentType) IsValid() bool {
	for _, known := range ContentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// RequiresURL reports whether items of this type point at an external resource
func (t ContentType) RequiresURL() bool {
	return t != ContentTypeText
}

// ContentItem is a single piece of learning material tagged with its curriculum path
type ContentItem struct {
	ID        string      `json:"id" db:"id"`
	Title     string      `json:"title" db:"title"`
	Institute string      `json:"institute" db:"institute"`
	Subject   string      `json:"subject" db:"subject"`
	Chapter   string      `json:"chapter" db:"chapter"`
	Topic     string      `json:"topic" db:"topic"`
	Type      ContentType `json:"type" db:"type"`
	URL       *string     `json:"url,omitempty" db:"url"`
	Body      *string     `json:"body,omitempty" db:"body"`
	Position  int         `json:"position" db:"position"` // Order within the topic
	CreatedBy string      `json:"created_by" db:"created_by"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time  `json:"deleted_at,omitempty" db:"deleted_at"`
}

// Path returns the topic path the item is filed under
func (c *ContentItem) Path() TopicPath {
	return TopicPath{
		Institute: c.Institute,
		Subject:   c.Subject,
		Chapter:   c.Chapter,
		Topic:     c.Topic,
	}
}

// TopicPath identifies a topic by its full curriculum path
type TopicPath struct {
	Institute string `json:"institute"`
	Subject   string `json:"subject"`
	Chapter   string `json:"chapter"`
	Topic     string `json:"topic"`
}

// Filter narrows a content listing. Zero-value fields match everything.
type Filter struct {
	Institute string
	Subject   string
	Type      ContentType
	Query     string // Case-insensitive title substring
}

// IsEmpty reports whether the filter matches every item
func (f Filter) IsEmpty() bool {
	return f.Institute == "" && f.Subject == "" && f.Type == "" && strings.TrimSpace(f.Query) == ""
}

// Matches reports whether item passes the filter
func (f Filter) Matches(item *ContentItem) bool {
	if f.Institute != "" && item.Institute != f.Institute {
		return false
	}
	if f.Subject != "" && item.Subject != f.Subject {
		return false
	}
	if f.Type != "" && item.Type != f.Type {
		return false
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		return strings.Contains(strings.ToLower(item.Title), strings.ToLower(q))
	}
	return true
}

// Apply returns the items that pass the filter, preserving order
func (f Filter) Apply(items []ContentItem) []ContentItem {
	if f.IsEmpty() {
		return items
	}

	filtered := make([]ContentItem, 0, len(items))
	for i := range items {
		if f.Matches(&items[i]) {
			filtered = append(filtered, items[i])
		}
	}
	return filtered
}

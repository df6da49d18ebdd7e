package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"learnhub/internal/domain/models"
	contentModels "learnhub/internal/domain/models/content"
	contentSvc "learnhub/internal/domain/services/content"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// CatalogItem is one content entry of a seed catalog
type CatalogItem struct {
	Title     string                    `yaml:"title"`
	Institute string                    `yaml:"institute"`
	Subject   string                    `yaml:"subject"`
	Chapter   string                    `yaml:"chapter"`
	Topic     string                    `yaml:"topic"`
	Type      contentModels.ContentType `yaml:"type"`
	URL       string                    `yaml:"url,omitempty"`
	Body      string                    `yaml:"body,omitempty"`
}

// Catalog is an ordered list of content to create
type Catalog struct {
	Items []CatalogItem `yaml:"items"`
}

// DefaultCatalog returns the embedded sample catalog
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// ParseCatalog decodes a YAML catalog, rejecting unknown keys
func ParseCatalog(data []byte) (*Catalog, error) {
	var catalog Catalog
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&catalog); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	for i, item := range catalog.Items {
		if !item.Type.IsValid() {
			return nil, fmt.Errorf("catalog item %d (%q): unknown type %q", i, item.Title, item.Type)
		}
	}

	return &catalog, nil
}

// itemKey identifies a catalog entry by its topic path and title, compared
// after trimming the way the content service stores them
type itemKey struct {
	path  contentModels.TopicPath
	title string
}

func newItemKey(institute, subject, chapter, topic, title string) itemKey {
	return itemKey{
		path: contentModels.TopicPath{
			Institute: strings.TrimSpace(institute),
			Subject:   strings.TrimSpace(subject),
			Chapter:   strings.TrimSpace(chapter),
			Topic:     strings.TrimSpace(topic),
		},
		title: strings.TrimSpace(title),
	}
}

// Missing returns the catalog entries with no item of the same topic and
// title in existing, so reseeding never duplicates content
func (c *Catalog) Missing(existing []contentModels.ContentItem) *Catalog {
	present := make(map[itemKey]struct{}, len(existing))
	for _, item := range existing {
		present[newItemKey(item.Institute, item.Subject, item.Chapter, item.Topic, item.Title)] = struct{}{}
	}

	missing := &Catalog{Items: make([]CatalogItem, 0, len(c.Items))}
	for _, item := range c.Items {
		key := newItemKey(item.Institute, item.Subject, item.Chapter, item.Topic, item.Title)
		if _, ok := present[key]; ok {
			continue
		}
		present[key] = struct{}{}
		missing.Items = append(missing.Items, item)
	}
	return missing
}

// Requests converts the catalog into create requests issued by actor
func (c *Catalog) Requests(actor models.Actor) []*contentSvc.CreateContentRequest {
	reqs := make([]*contentSvc.CreateContentRequest, 0, len(c.Items))
	for _, item := range c.Items {
		reqs = append(reqs, &contentSvc.CreateContentRequest{
			Actor:     actor,
			Title:     item.Title,
			Institute: item.Institute,
			Subject:   item.Subject,
			Chapter:   item.Chapter,
			Topic:     item.Topic,
			Type:      item.Type,
			URL:       optional(item.URL),
			Body:      optional(item.Body),
		})
	}
	return reqs
}

// ContentItems converts the catalog into content items without persisting them
func (c *Catalog) ContentItems() []contentModels.ContentItem {
	items := make([]contentModels.ContentItem, 0, len(c.Items))
	for i, item := range c.Items {
		items = append(items, contentModels.ContentItem{
			ID:        fmt.Sprintf("seed-%d", i+1),
			Title:     item.Title,
			Institute: item.Institute,
			Subject:   item.Subject,
			Chapter:   item.Chapter,
			Topic:     item.Topic,
			Type:      item.Type,
			URL:       optional(item.URL),
			Body:      optional(item.Body),
		})
	}
	return items
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

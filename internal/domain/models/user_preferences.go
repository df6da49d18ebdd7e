package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// JSONMap is a type alias for JSONB columns
type JSONMap map[string]interface{}

const (
	namespaceUI          = "ui"
	namespaceContentTree = "content_tree"
)

// UserPreferences represents user-specific settings and preferences
// All preferences are stored in a single JSONB column with namespaced structure
type UserPreferences struct {
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	Preferences JSONMap   `json:"preferences" db:"preferences"` // Namespaced JSONB: {ui, content_tree}
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// UIPreferences represents the ui namespace in preferences
type UIPreferences struct {
	Theme      string `json:"theme"`       // "light", "dark", "auto"
	ShowCounts *bool  `json:"show_counts"` // Show item counts next to tree nodes; nil means shown
}

// CountsVisible reports whether item counts are drawn next to grouping nodes
func (ui *UIPreferences) CountsVisible() bool {
	return ui.ShowCounts == nil || *ui.ShowCounts
}

// ContentTreePreferences represents the content_tree namespace: which tree nodes are expanded
type ContentTreePreferences struct {
	Expanded []string `json:"expanded"`
}

// GetUI extracts the ui namespace from preferences
func (up *UserPreferences) GetUI() (*UIPreferences, error) {
	ui := &UIPreferences{Theme: "light"}
	ok, err := up.decodeNamespace(namespaceUI, ui)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &UIPreferences{Theme: "light"}, nil
	}
	return ui, nil
}

// SetUI sets the ui namespace in preferences
func (up *UserPreferences) SetUI(ui *UIPreferences) error {
	return up.encodeNamespace(namespaceUI, ui)
}

// GetContentTree extracts the content_tree namespace from preferences
func (up *UserPreferences) GetContentTree() (*ContentTreePreferences, error) {
	tree := &ContentTreePreferences{}
	if _, err := up.decodeNamespace(namespaceContentTree, tree); err != nil {
		return nil, err
	}
	if tree.Expanded == nil {
		tree.Expanded = []string{}
	}
	return tree, nil
}

// SetContentTree sets the content_tree namespace in preferences
func (up *UserPreferences) SetContentTree(tree *ContentTreePreferences) error {
	return up.encodeNamespace(namespaceContentTree, tree)
}

// decodeNamespace re-marshals one namespace into dest for type safety.
// Returns false when the namespace is absent.
func (up *UserPreferences) decodeNamespace(name string, dest interface{}) (bool, error) {
	if up.Preferences == nil {
		return false, nil
	}

	raw, ok := up.Preferences[name]
	if !ok || raw == nil {
		return false, nil
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

// encodeNamespace converts value to a plain map and stores it under name
func (up *UserPreferences) encodeNamespace(name string, value interface{}) error {
	if up.Preferences == nil {
		up.Preferences = JSONMap{}
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}

	up.Preferences[name] = m
	return nil
}

// UpdatePreferencesRequest represents the request to update user preferences
// Supports partial updates via pointers - only provided namespaces are replaced
type UpdatePreferencesRequest struct {
	UI          *UIPreferences          `json:"ui"`
	ContentTree *ContentTreePreferences `json:"content_tree"`
}

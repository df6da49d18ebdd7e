package handler

import "net/http"

// Handlers groups every HTTP handler the server exposes
type Handlers struct {
	Health      *HealthHandler
	Content     *ContentHandler
	Tree        *TreeHandler
	Order       *OrderHandler
	Preferences *UserPreferencesHandler
}

// NewRouter registers all routes (Go 1.22+ method patterns)
func NewRouter(h *Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health.HealthCheck)

	// Tree and order routes must be registered next to {id}; literal
	// segments take precedence over wildcards
	mux.HandleFunc("GET /api/contents/tree", h.Tree.GetTree)
	mux.HandleFunc("PUT /api/contents/order", h.Order.Reorder)
	mux.HandleFunc("POST /api/contents/order/move", h.Order.Move)

	mux.HandleFunc("GET /api/contents", h.Content.ListContents)
	mux.HandleFunc("POST /api/contents", h.Content.CreateContent)
	mux.HandleFunc("GET /api/contents/{id}", h.Content.GetContent)
	mux.HandleFunc("PATCH /api/contents/{id}", h.Content.UpdateContent)
	mux.HandleFunc("DELETE /api/contents/{id}", h.Content.DeleteContent)

	mux.HandleFunc("GET /api/users/me/preferences", h.Preferences.GetPreferences)
	mux.HandleFunc("PATCH /api/users/me/preferences", h.Preferences.UpdatePreferences)
	mux.HandleFunc("POST /api/users/me/preferences/tree/toggle", h.Tree.ToggleNode)

	return mux
}

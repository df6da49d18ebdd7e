package handler

import (
	"log/slog"
	"net/http"

	contentSvc "learnhub/internal/domain/services/content"
	"learnhub/internal/httputil"
)

// ContentHandler handles HTTP requests for content items
type ContentHandler struct {
	contentService contentSvc.ContentService
	logger         *slog.Logger
}

// NewContentHandler creates a new content handler
func NewContentHandler(contentService contentSvc.ContentService, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
		logger:         logger,
	}
}

// ListContents returns the items matching the query filter
// GET /api/contents?institute=&subject=&type=&q=
func (h *ContentHandler) ListContents(w http.ResponseWriter, r *http.Request) {
	items, err := h.contentService.ListContents(r.Context(), parseFilter(r))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, items)
}

// CreateContent registers a new content item
// POST /api/contents
func (h *ContentHandler) CreateContent(w http.ResponseWriter, r *http.Request) {
	var req contentSvc.CreateContentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Actor = httputil.GetActor(r)

	item, err := h.contentService.CreateContent(r.Context(), &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, item)
}

// GetContent returns one item
// GET /api/contents/{id}
func (h *ContentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.contentID(w, r)
	if !ok {
		return
	}

	item, err := h.contentService.GetContent(r.Context(), id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, item)
}

// UpdateContent applies a partial update
// PATCH /api/contents/{id}
func (h *ContentHandler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.contentID(w, r)
	if !ok {
		return
	}

	var req contentSvc.UpdateContentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Actor = httputil.GetActor(r)

	item, err := h.contentService.UpdateContent(r.Context(), id, &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, item)
}

// DeleteContent soft-deletes an item and returns it
// DELETE /api/contents/{id}
func (h *ContentHandler) DeleteContent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.contentID(w, r)
	if !ok {
		return
	}

	item, err := h.contentService.DeleteContent(r.Context(), httputil.GetActor(r), id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, item)
}

// contentID validates the {id} path value, writing a 400 when it is malformed
func (h *ContentHandler) contentID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Content ID must be a UUID")
		return "", false
	}
	return id.String(), true
}

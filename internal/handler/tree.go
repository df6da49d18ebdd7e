package handler

import (
	"log/slog"
	"net/http"

	contentSvc "learnhub/internal/domain/services/content"
	"learnhub/internal/httputil"
	contentService "learnhub/internal/service/content"
)

// TreeHandler handles HTTP requests for the content tree
type TreeHandler struct {
	treeService contentSvc.TreeService
	logger      *slog.Logger
}

// NewTreeHandler creates a new tree handler
func NewTreeHandler(treeService contentSvc.TreeService, logger *slog.Logger) *TreeHandler {
	return &TreeHandler{
		treeService: treeService,
		logger:      logger,
	}
}

// GetTree returns the institute/subject/chapter/topic tree.
// format=text renders the visible rows as plain text, with item counts unless
// the user turned ui.show_counts off; expand=all renders every node open
// instead of the user's saved state.
// GET /api/contents/tree
func (h *TreeHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	format := httputil.QueryString(r, "format")
	if format != "" && format != "json" && format != "text" {
		httputil.RespondError(w, http.StatusBadRequest, "format must be json or text")
		return
	}

	tree, err := h.treeService.GetContentTree(r.Context(), httputil.GetUserID(r), parseFilter(r))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	if format != "text" {
		httputil.RespondJSON(w, http.StatusOK, tree)
		return
	}

	expanded := contentService.NewExpandedSet(tree.Expanded...)
	if httputil.QueryString(r, "expand") == "all" {
		expanded = contentService.ExpandAll(tree.Roots)
	}
	rows := contentService.VisibleRows(tree.Roots, expanded)
	renderer := &contentService.TreeRenderer{ShowCounts: tree.ShowCounts}
	httputil.RespondText(w, http.StatusOK, renderer.Render(rows))
}

type toggleNodeRequest struct {
	NodeID string `json:"node_id"`
}

// ToggleNode flips the expanded state of one tree node
// POST /api/users/me/preferences/tree/toggle
func (h *TreeHandler) ToggleNode(w http.ResponseWriter, r *http.Request) {
	var req toggleNodeRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.treeService.ToggleNode(r.Context(), httputil.GetUserID(r), req.NodeID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

package handler

import (
	"log/slog"
	"net/http"

	contentSvc "learnhub/internal/domain/services/content"
	"learnhub/internal/httputil"
)

// OrderHandler handles the content order table of a topic
type OrderHandler struct {
	orderService contentSvc.OrderService
	logger       *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService contentSvc.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// Reorder replaces the order of a topic's items
// PUT /api/contents/order
func (h *OrderHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req contentSvc.ReorderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Actor = httputil.GetActor(r)

	items, err := h.orderService.Reorder(r.Context(), &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, items)
}

// Move drags one row of a topic's order table to a new index
// POST /api/contents/order/move
func (h *OrderHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req contentSvc.MoveRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Actor = httputil.GetActor(r)

	items, err := h.orderService.Move(r.Context(), &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, items)
}

package http

import (
	"log/slog"
	"net/http"

	"github.com/sajathahamed/Unilifmobile/internal/domain"
	"github.com/sajathahamed/Unilifmobile/internal/service"
	"github.com/sajathahamed/Unilifmobile/pkg/httputil"
)

type LaundryHandler struct {
	laundry *service.LaundryService
	logger  *slog.Logger
}

// NewLaundryHandler creates a new laundry HTTP handler.
func NewLaundryHandler(laundry *service.LaundryService, logger *slog.Logger) *LaundryHandler {
	return &LaundryHandler{laundry: laundry, logger: logger}
}

// PlaceOrder handles POST /api/v1/laundry/orders
func (h *LaundryHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req service.PlaceLaundryOrderInput
	if !decode(w, r, maxBodyBytes, &req) {
		return
	}

	order, err := h.laundry.PlaceOrder(r.Context(), studentID(r), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusCreated, order)
}

// List handles GET /api/v1/laundry/orders
func (h *LaundryHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.laundry.List(r.Context(), studentID(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, orders)
}

// ActiveLaundryResponse wraps the active order so an absent one is an explicit null.
type ActiveLaundryResponse struct {
	Order *domain.LaundryOrder `json:"order"`
}

// Active handles GET /api/v1/laundry/orders/active
func (h *LaundryHandler) Active(w http.ResponseWriter, r *http.Request) {
	order, err := h.laundry.Active(r.Context(), studentID(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, ActiveLaundryResponse{Order: order})
}

// DetectItemsResponse lists the detected clothing counts.
type DetectItemsResponse struct {
	Items domain.Manifest `json:"items"`
	Total int             `json:"total"`
}

// DetectItems handles POST /api/v1/laundry/detect
func (h *LaundryHandler) DetectItems(w http.ResponseWriter, r *http.Request) {
	var req service.DetectItemsInput
	if !decode(w, r, maxImageBytes, &req) {
		return
	}

	items, err := h.laundry.DetectItems(r.Context(), studentID(r), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, DetectItemsResponse{Items: items, Total: items.Total()})
}

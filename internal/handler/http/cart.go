package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sajathahamed/Unilifmobile/internal/service"
	"github.com/sajathahamed/Unilifmobile/pkg/httputil"
)

// CartHandler serves the cart, checkout and sign-out.
type CartHandler struct {
	cart     *service.CartService
	checkout *service.CheckoutService
	logger   *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(cart *service.CartService, checkout *service.CheckoutService, logger *slog.Logger) *CartHandler {
	return &CartHandler{cart: cart, checkout: checkout, logger: logger}
}

// Get handles GET /api/v1/cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.cart.Get(studentID(r)))
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req service.AddItemInput
	if !decode(w, r, maxBodyBytes, &req) {
		return
	}

	snap, err := h.cart.AddItem(r.Context(), studentID(r), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, snap)
}

// UpdateQuantity handles PUT /api/v1/cart/items/{itemId}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	itemID, ok := httputil.ParseID(w, "item id", chi.URLParam(r, "itemId"))
	if !ok {
		return
	}
	var req service.UpdateQuantityInput
	if !decode(w, r, maxBodyBytes, &req) {
		return
	}
	httputil.WriteData(w, http.StatusOK, h.cart.UpdateQuantity(studentID(r), itemID, req))
}

// RemoveItem handles DELETE /api/v1/cart/items/{itemId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := httputil.ParseID(w, "item id", chi.URLParam(r, "itemId"))
	if !ok {
		return
	}
	httputil.WriteData(w, http.StatusOK, h.cart.RemoveItem(studentID(r), itemID))
}

// Clear handles DELETE /api/v1/cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.cart.Clear(studentID(r)))
}

// Checkout handles POST /api/v1/checkout
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	res, err := h.checkout.Checkout(r.Context(), studentID(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusCreated, res)
}

// EndSession handles DELETE /api/v1/session
func (h *CartHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	h.cart.EndSession(studentID(r))
	w.WriteHeader(http.StatusNoContent)
}

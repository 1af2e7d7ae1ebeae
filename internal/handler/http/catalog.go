package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sajathahamed/Unilifmobile/internal/service"
	"github.com/sajathahamed/Unilifmobile/pkg/httputil"
)

type CatalogHandler struct {
	catalog *service.CatalogService
	laundry *service.LaundryService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(catalog *service.CatalogService, laundry *service.LaundryService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, laundry: laundry, logger: logger}
}

// OpenVendors handles GET /api/v1/vendors
func (h *CatalogHandler) OpenVendors(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.catalog.OpenVendors(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, vendors)
}

// Menu handles GET /api/v1/vendors/{vendorId}/menu
func (h *CatalogHandler) Menu(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := httputil.ParseID(w, "vendor id", chi.URLParam(r, "vendorId"))
	if !ok {
		return
	}

	menu, err := h.catalog.Menu(r.Context(), vendorID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, menu)
}

// LaundryServices handles GET /api/v1/laundry/services
func (h *CatalogHandler) LaundryServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.catalog.LaundryServices(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, services)
}

// LaundryCategories handles GET /api/v1/laundry/categories
func (h *CatalogHandler) LaundryCategories(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.laundry.Categories())
}

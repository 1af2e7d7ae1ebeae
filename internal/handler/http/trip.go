package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sajathahamed/Unilifmobile/internal/service"
	"github.com/sajathahamed/Unilifmobile/pkg/httputil"
)

type TripHandler struct {
	planner *service.PlannerService
	logger  *slog.Logger
}

// NewTripHandler creates a new trip HTTP handler.
func NewTripHandler(planner *service.PlannerService, logger *slog.Logger) *TripHandler {
	return &TripHandler{planner: planner, logger: logger}
}

// List handles GET /api/v1/trips
func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	trips, err := h.planner.List(r.Context(), studentID(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, trips)
}

// Plan handles POST /api/v1/trips. The trip is created even when no
// itinerary could be generated; itinerary_error then explains why.
func (h *TripHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var req service.PlanTripInput
	if !decode(w, r, maxBodyBytes, &req) {
		return
	}

	planned, err := h.planner.PlanTrip(r.Context(), studentID(r), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusCreated, planned)
}

// RegenerateItinerary handles POST /api/v1/trips/{tripId}/itinerary
func (h *TripHandler) RegenerateItinerary(w http.ResponseWriter, r *http.Request) {
	tripID, ok := httputil.ParseID(w, "trip id", chi.URLParam(r, "tripId"))
	if !ok {
		return
	}

	trip, err := h.planner.RegenerateItinerary(r.Context(), studentID(r), tripID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, trip)
}

package http

import (
	"log/slog"
	"net/http"

	"github.com/sajathahamed/Unilifmobile/internal/service"
	"github.com/sajathahamed/Unilifmobile/pkg/httputil"
)

// HomeHandler serves the home dashboard and the timetable.
type HomeHandler struct {
	home      *service.HomeService
	timetable *service.TimetableService
	logger    *slog.Logger
}

// NewHomeHandler creates a new home HTTP handler.
func NewHomeHandler(home *service.HomeService, timetable *service.TimetableService, logger *slog.Logger) *HomeHandler {
	return &HomeHandler{home: home, timetable: timetable, logger: logger}
}

// Dashboard handles GET /api/v1/home. Sections that failed to load are listed
// in failed_sections; the request itself always succeeds.
func (h *HomeHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.home.Dashboard(r.Context(), studentID(r)))
}

// Timetable handles GET /api/v1/timetable?day=Monday
func (h *HomeHandler) Timetable(w http.ResponseWriter, r *http.Request) {
	day, err := h.timetable.ForDay(r.Context(), studentID(r), r.URL.Query().Get("day"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, day)
}

package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sajathahamed/Unilifmobile/internal/domain"
	"github.com/sajathahamed/Unilifmobile/internal/service"
	"github.com/sajathahamed/Unilifmobile/pkg/httputil"
)

const streamHeartbeat = 15 * time.Second

// OrderHandler serves food order reads and tracking.
type OrderHandler struct {
	orders *service.OrderService
	logger *slog.Logger
}

// NewOrderHandler creates a new order HTTP handler.
func NewOrderHandler(orders *service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, logger: logger}
}

// ActiveOrderResponse is the student's undelivered order, if any, with its progress.
type ActiveOrderResponse struct {
	Order    *domain.FoodOrder `json:"order"`
	Progress *domain.Progress  `json:"progress"`
}

// Active handles GET /api/v1/orders/active
func (h *OrderHandler) Active(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Active(r.Context(), studentID(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	resp := ActiveOrderResponse{Order: order}
	if order != nil {
		p := domain.NewProgress(order.ID, order.Status)
		resp.Progress = &p
	}
	httputil.WriteData(w, http.StatusOK, resp)
}

// Get handles GET /api/v1/orders/{orderId}
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, ok := httputil.ParseID(w, "order id", chi.URLParam(r, "orderId"))
	if !ok {
		return
	}

	order, err := h.orders.Get(r.Context(), studentID(r), orderID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, order)
}

// Tracking handles GET /api/v1/orders/{orderId}/tracking
func (h *OrderHandler) Tracking(w http.ResponseWriter, r *http.Request) {
	orderID, ok := httputil.ParseID(w, "order id", chi.URLParam(r, "orderId"))
	if !ok {
		return
	}

	progress, err := h.orders.Progress(r.Context(), studentID(r), orderID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, progress)
}

// StreamTracking handles GET /api/v1/orders/{orderId}/tracking/stream.
// It sends a "progress" server-sent event after every successful poll and
// ends with a "done" event once the order is delivered. Polling stops when
// the client disconnects.
func (h *OrderHandler) StreamTracking(w http.ResponseWriter, r *http.Request) {
	orderID, ok := httputil.ParseID(w, "order id", chi.URLParam(r, "orderId"))
	if !ok {
		return
	}

	// Holds only the newest progress; the poll goroutine is the sole sender.
	updates := make(chan domain.Progress, 1)
	poll, err := h.orders.Track(r.Context(), studentID(r), orderID, func(p domain.Progress) {
		select {
		case <-updates:
		default:
		}
		updates <- p
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	defer poll.Stop()

	rc := http.NewResponseController(w)
	_ = rc.SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		h.logger.WarnContext(r.Context(), "tracking stream cannot flush", slog.String("error", err.Error()))
		return
	}

	heartbeat := time.NewTicker(streamHeartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
		case p := <-updates:
			if err := writeEvent(w, "progress", p); err != nil {
				return
			}
			if p.Status == domain.FoodOrderDelivered {
				_ = writeEvent(w, "done", p)
				_ = rc.Flush()
				return
			}
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}
}

func writeEvent(w http.ResponseWriter, event string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	return err
}

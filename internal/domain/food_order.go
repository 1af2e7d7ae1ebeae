package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Food order statuses. Orders move strictly forward through these; the
// transitions are made by vendor tooling, never by this service.
const (
	FoodOrderPending   = "pending"
	FoodOrderConfirmed = "confirmed"
	FoodOrderPreparing = "preparing"
	FoodOrderReady     = "ready"
	FoodOrderDelivered = "delivered"
)

// FoodOrderProgression is the ordered list of statuses shown on the tracking screen.
var FoodOrderProgression = []string{
	FoodOrderPending,
	FoodOrderConfirmed,
	FoodOrderPreparing,
	FoodOrderReady,
	FoodOrderDelivered,
}

var progressLabels = map[string]string{
	FoodOrderPending:   "Order Placed",
	FoodOrderConfirmed: "Confirmed",
	FoodOrderPreparing: "Preparing",
	FoodOrderReady:     "Ready for Pickup",
	FoodOrderDelivered: "Delivered",
}

// FoodOrder is an order header. VendorName is filled on reads.
type FoodOrder struct {
	ID         int64           `json:"id"`
	StudentID  int64           `json:"student_id"`
	VendorID   int64           `json:"vendor_id"`
	VendorName string          `json:"vendor_name,omitempty"`
	Total      decimal.Decimal `json:"total"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}

// IsActive reports whether the order has not been delivered yet.
func (o *FoodOrder) IsActive() bool {
	return o.Status != FoodOrderDelivered
}

// FoodOrderLineItem is one line of an order with the unit price captured at checkout.
type FoodOrderLineItem struct {
	OrderID    int64           `json:"order_id"`
	FoodItemID int64           `json:"food_id"`
	Quantity   int             `json:"qty"`
	Price      decimal.Decimal `json:"price"`
}

// StatusIndex returns the position of status in FoodOrderProgression.
// Unknown statuses map to 0.
func StatusIndex(status string) int {
	for i, s := range FoodOrderProgression {
		if s == status {
			return i
		}
	}
	return 0
}

// ProgressStep is one row of the tracking indicator.
type ProgressStep struct {
	Status string `json:"status"`
	Label  string `json:"label"`
	Done   bool   `json:"done"`
	Active bool   `json:"active"`
}

// Progress is the tracking view of one order.
type Progress struct {
	OrderID     int64          `json:"order_id"`
	Status      string         `json:"status"`
	ActiveIndex int            `json:"active_index"`
	Steps       []ProgressStep `json:"steps"`
}

// NewProgress marks every step up to and including the current one as done
// and the current one as active.
func NewProgress(orderID int64, status string) Progress {
	current := StatusIndex(status)
	steps := make([]ProgressStep, len(FoodOrderProgression))
	for i, s := range FoodOrderProgression {
		steps[i] = ProgressStep{
			Status: s,
			Label:  progressLabels[s],
			Done:   i <= current,
			Active: i == current,
		}
	}
	return Progress{OrderID: orderID, Status: status, ActiveIndex: current, Steps: steps}
}

package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	LaundryPending    = "pending"
	LaundryProcessing = "processing"
	LaundryReady      = "ready"
	LaundryCompleted  = "completed"
	LaundryCancelled  = "cancelled"
)

// LaundryOrderTypePerKg is the only pricing mode offered.
const LaundryOrderTypePerKg = "per_kg"

var ErrInvalidWeight = errors.New("invalid laundry weight")

// ClothingCategories are the item names offered for manual entry and
// recognised in image captions.
var ClothingCategories = []string{
	"T-shirt", "Shirt", "Blouse", "Pants", "Jeans", "Shorts",
	"Dress", "Skirt", "Jacket", "Hoodie", "Sweater", "Coat",
	"Socks", "Underwear", "Towel", "Bedsheet", "Pillowcase",
}

// LaundryOrder is a placed laundry order. Service name and location are filled on reads.
type LaundryOrder struct {
	ID              int64           `json:"id"`
	StudentID       int64           `json:"student_id"`
	ServiceID       int64           `json:"laundry_service_id"`
	ServiceName     string          `json:"service_name,omitempty"`
	ServiceLocation string          `json:"service_location,omitempty"`
	OrderType       string          `json:"order_type"`
	Total           decimal.Decimal `json:"total_price"`
	Status          string          `json:"status"`
	Manifest        Manifest        `json:"items_json,omitempty"`
	ImageURL        string          `json:"image_url,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// IsActiveLaundryStatus reports whether status is pending, processing or ready.
func IsActiveLaundryStatus(status string) bool {
	switch status {
	case LaundryPending, LaundryProcessing, LaundryReady:
		return true
	}
	return false
}

// ActiveLaundryStatuses lists the non-terminal statuses.
func ActiveLaundryStatuses() []string {
	return []string{LaundryPending, LaundryProcessing, LaundryReady}
}

// PartitionLaundryOrders splits orders into active and history, keeping order.
func PartitionLaundryOrders(orders []LaundryOrder) (active, history []LaundryOrder) {
	active, history = []LaundryOrder{}, []LaundryOrder{}
	for _, o := range orders {
		if IsActiveLaundryStatus(o.Status) {
			active = append(active, o)
		} else {
			history = append(history, o)
		}
	}
	return active, history
}

// ParseWeight parses a weight in kilograms typed by the student. It must be a number above zero.
func ParseWeight(raw string) (decimal.Decimal, error) {
	w, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || !w.IsPositive() {
		return decimal.Zero, ErrInvalidWeight
	}
	return w, nil
}

// PerKgTotal is price per kg times weight.
func PerKgTotal(pricePerKg, weightKg decimal.Decimal) decimal.Decimal {
	return pricePerKg.Mul(weightKg)
}

// Manifest maps a clothing item name to its count.
type Manifest map[string]int

// Add merges count into name. A count below one adds a single item.
func (m Manifest) Add(name string, count int) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	if count < 1 {
		count = 1
	}
	m[name] += count
}

// Total is the number of pieces.
func (m Manifest) Total() int {
	n := 0
	for _, c := range m {
		n += c
	}
	return n
}

// ErrInvalidManifest is returned for blank item names or negative counts.
var ErrInvalidManifest = errors.New("invalid laundry manifest")

// Validate rejects blank item names and negative counts.
func (m Manifest) Validate() error {
	for name, c := range m {
		if strings.TrimSpace(name) == "" || c < 0 {
			return ErrInvalidManifest
		}
	}
	return nil
}

// Attachable returns the manifest to store with an order: names trimmed,
// zero counts dropped, nil when nothing is left.
func (m Manifest) Attachable() Manifest {
	out := Manifest{}
	for name, c := range m {
		if c > 0 {
			out[strings.TrimSpace(name)] += c
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

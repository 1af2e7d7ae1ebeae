package domain

import "github.com/shopspring/decimal"

type Vendor struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Location    string  `json:"location,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	Rating      float64 `json:"rating"`
	IsOpen      bool    `json:"is_open"`
}

type MenuItem struct {
	ID           int64           `json:"id"`
	VendorID     int64           `json:"vendor_id"`
	VendorName   string          `json:"vendor_name,omitempty"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	ImageURL     string          `json:"image_url,omitempty"`
	CategoryName string          `json:"category_name,omitempty"`
	IsAvailable  bool            `json:"is_available"`
}

// CartItem converts a menu entry into a cart candidate.
func (m MenuItem) CartItem() CartItem {
	return CartItem{
		ID:         m.ID,
		Name:       m.Name,
		Price:      m.Price,
		VendorID:   m.VendorID,
		VendorName: m.VendorName,
		ImageURL:   m.ImageURL,
	}
}

type LaundryService struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Location    string          `json:"location,omitempty"`
	Description string          `json:"description,omitempty"`
	PricePerKg  decimal.Decimal `json:"price_per_kg"`
}

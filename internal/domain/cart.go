package domain

import "github.com/shopspring/decimal"

// CartItem is one line of a student's cart. ID is the catalog food item id.
type CartItem struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	VendorID   int64           `json:"vendor_id"`
	VendorName string          `json:"vendor_name"`
	ImageURL   string          `json:"image_url,omitempty"`
}

// Subtotal is price times quantity.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

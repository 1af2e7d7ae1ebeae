// Package service holds the business logic behind the HTTP handlers.
package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/sajathahamed/Unilifmobile/internal/domain"
)

// EventPublisher announces placed orders. Publishing is best effort.
type EventPublisher interface {
	PublishFoodOrderPlaced(ctx context.Context, order *domain.FoodOrder, items []domain.FoodOrderLineItem) error
	PublishLaundryOrderPlaced(ctx context.Context, order *domain.LaundryOrder) error
}

// AIClient is the generative model used for item detection and trip plans.
type AIClient interface {
	DetectItems(ctx context.Context, imageBase64 string) (domain.Manifest, error)
	GenerateItinerary(ctx context.Context, destination string, days int, budget decimal.Decimal) (string, error)
}

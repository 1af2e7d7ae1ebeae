package event

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/sajathahamed/Unilifmobile/internal/domain"
	pkgkafka "github.com/sajathahamed/Unilifmobile/pkg/kafka"
	"github.com/sajathahamed/Unilifmobile/pkg/logger"
)

// Kafka topics for campus order events.
var (
	TopicFoodOrderPlaced    = pkgkafka.Topic("food_order", "placed")
	TopicLaundryOrderPlaced = pkgkafka.Topic("laundry_order", "placed")
)

const (
	AggregateTypeFoodOrder    = "food_order"
	AggregateTypeLaundryOrder = "laundry_order"
	SourceUnilife             = "unilife-api"
)

// FoodOrderPlacedData is the payload of a food_order.placed event.
type FoodOrderPlacedData struct {
	OrderID   int64               `json:"order_id"`
	StudentID int64               `json:"student_id"`
	VendorID  int64               `json:"vendor_id"`
	Total     decimal.Decimal     `json:"total"`
	Items     []FoodOrderItemData `json:"items"`
}

type FoodOrderItemData struct {
	FoodItemID int64           `json:"food_id"`
	Quantity   int             `json:"qty"`
	Price      decimal.Decimal `json:"price"`
}

// LaundryOrderPlacedData is the payload of a laundry_order.placed event.
type LaundryOrderPlacedData struct {
	OrderID   int64           `json:"order_id"`
	StudentID int64           `json:"student_id"`
	ServiceID int64           `json:"laundry_service_id"`
	Total     decimal.Decimal `json:"total_price"`
	Pieces    int             `json:"pieces"`
}

// Publisher writes an event to a topic. *pkgkafka.Producer implements it.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes campus order events. A nil publisher disables publishing.
type Producer struct {
	kafka  Publisher
	logger *slog.Logger
}

// NewProducer creates a domain event producer. kafka may be nil, in which
// case events are dropped.
func NewProducer(kafka Publisher, logger *slog.Logger) *Producer {
	return &Producer{kafka: kafka, logger: logger}
}

func (p *Producer) publish(ctx context.Context, topic, aggregateType string, id int64, data any) error {
	if p.kafka == nil {
		return nil
	}

	evt, err := pkgkafka.NewEvent(topic, strconv.FormatInt(id, 10), aggregateType, SourceUnilife, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}
	if cid := logger.CorrelationIDFromContext(ctx); cid != "" {
		evt.WithCorrelationID(cid)
	}

	if err := p.kafka.Publish(ctx, topic, evt); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published event",
		slog.String("topic", topic),
		slog.Int64("aggregate_id", id),
	)
	return nil
}

// PublishFoodOrderPlaced announces a completed checkout.
func (p *Producer) PublishFoodOrderPlaced(ctx context.Context, order *domain.FoodOrder, items []domain.FoodOrderLineItem) error {
	data := FoodOrderPlacedData{
		OrderID:   order.ID,
		StudentID: order.StudentID,
		VendorID:  order.VendorID,
		Total:     order.Total,
		Items:     make([]FoodOrderItemData, len(items)),
	}
	for i, it := range items {
		data.Items[i] = FoodOrderItemData{FoodItemID: it.FoodItemID, Quantity: it.Quantity, Price: it.Price}
	}
	return p.publish(ctx, TopicFoodOrderPlaced, AggregateTypeFoodOrder, order.ID, data)
}

// PublishLaundryOrderPlaced announces a new laundry order.
func (p *Producer) PublishLaundryOrderPlaced(ctx context.Context, order *domain.LaundryOrder) error {
	data := LaundryOrderPlacedData{
		OrderID:   order.ID,
		StudentID: order.StudentID,
		ServiceID: order.ServiceID,
		Total:     order.Total,
		Pieces:    order.Manifest.Total(),
	}
	return p.publish(ctx, TopicLaundryOrderPlaced, AggregateTypeLaundryOrder, order.ID, data)
}

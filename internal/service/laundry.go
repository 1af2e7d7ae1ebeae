package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sajathahamed/Unilifmobile/internal/ai"
	"github.com/sajathahamed/Unilifmobile/internal/domain"
	"github.com/sajathahamed/Unilifmobile/internal/repository"
	apperrors "github.com/sajathahamed/Unilifmobile/pkg/errors"
)

// LaundryService places laundry orders and runs item detection.
type LaundryService struct {
	catalog       repository.CatalogRepository
	orders        repository.LaundryOrderRepository
	notifications repository.NotificationRepository
	events        EventPublisher
	ai            AIClient
	quota         aiQuota
	logger        *slog.Logger
}

// NewLaundryService creates a new laundry service.
func NewLaundryService(
	catalog repository.CatalogRepository,
	orders repository.LaundryOrderRepository,
	notifications repository.NotificationRepository,
	events EventPublisher,
	aiClient AIClient,
	quota repository.QuotaStore,
	logger *slog.Logger,
) *LaundryService {
	return &LaundryService{
		catalog:       catalog,
		orders:        orders,
		notifications: notifications,
		events:        events,
		ai:            aiClient,
		quota:         aiQuota{store: quota, logger: logger},
		logger:        logger,
	}
}

// PlaceLaundryOrderInput is the body of a laundry order. WeightKg is the text
// typed by the student.
type PlaceLaundryOrderInput struct {
	ServiceID int64           `json:"laundry_service_id" validate:"required,gt=0"`
	WeightKg  string          `json:"weight_kg"`
	Items     domain.Manifest `json:"items"`
	ImageURL  string          `json:"image_url" validate:"omitempty,url"`
}

// DetectItemsInput carries a base64 image, with or without a data URL prefix.
type DetectItemsInput struct {
	Image string `json:"image" validate:"required"`
}

// LaundryOrders splits a student's orders into active and history.
type LaundryOrders struct {
	Active  []domain.LaundryOrder `json:"active"`
	History []domain.LaundryOrder `json:"history"`
}

// PlaceOrder prices the order per kg and writes it. The confirmation
// notification and the event are best effort.
func (s *LaundryService) PlaceOrder(ctx context.Context, studentID int64, in PlaceLaundryOrderInput) (*domain.LaundryOrder, error) {
	weight, err := domain.ParseWeight(in.WeightKg)
	if err != nil {
		return nil, apperrors.InvalidInputf(err, "Please enter a valid weight greater than 0.")
	}
	if err := in.Items.Validate(); err != nil {
		return nil, apperrors.InvalidInputf(err, "Item counts must be zero or more.")
	}

	svc, err := s.catalog.GetLaundryService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}

	order := &domain.LaundryOrder{
		StudentID:       studentID,
		ServiceID:       svc.ID,
		ServiceName:     svc.Name,
		ServiceLocation: svc.Location,
		OrderType:       domain.LaundryOrderTypePerKg,
		Total:           domain.PerKgTotal(svc.PricePerKg, weight).Round(2),
		Status:          domain.LaundryPending,
		Manifest:        in.Items.Attachable(),
		ImageURL:        in.ImageURL,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create laundry order: %w", err)
	}

	s.logger.InfoContext(ctx, "laundry order placed",
		slog.Int64("order_id", order.ID),
		slog.Int64("student_id", studentID),
		slog.Int64("laundry_service_id", svc.ID),
		slog.String("total", order.Total.StringFixed(2)),
	)

	s.notifyPlaced(ctx, order)

	if err := s.events.PublishLaundryOrderPlaced(ctx, order); err != nil {
		s.logger.WarnContext(ctx, "failed to publish laundry order placed event",
			slog.Int64("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}
	return order, nil
}

func (s *LaundryService) notifyPlaced(ctx context.Context, order *domain.LaundryOrder) {
	n := &domain.Notification{
		UserID: order.StudentID,
		Title:  "Laundry Order Placed",
		Message: fmt.Sprintf("Your laundry order (ID: %d) with %s has been placed. Total: %s.",
			order.ID, order.ServiceName, domain.MYR(order.Total)),
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		s.logger.WarnContext(ctx, "failed to create laundry notification",
			slog.Int64("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}
}

// List returns the student's orders split into active and history, newest first.
func (s *LaundryService) List(ctx context.Context, studentID int64) (*LaundryOrders, error) {
	orders, err := s.orders.List(ctx, repository.LaundryOrderFilter{StudentID: studentID})
	if err != nil {
		return nil, err
	}
	active, history := domain.PartitionLaundryOrders(orders)
	return &LaundryOrders{Active: active, History: history}, nil
}

// Active returns the newest order still pending, processing or ready, or nil.
func (s *LaundryService) Active(ctx context.Context, studentID int64) (*domain.LaundryOrder, error) {
	orders, err := s.orders.List(ctx, repository.LaundryOrderFilter{
		StudentID: studentID,
		Statuses:  domain.ActiveLaundryStatuses(),
		Limit:     1,
	})
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}
	return &orders[0], nil
}

// Categories lists the clothing names offered for manual entry.
func (s *LaundryService) Categories() []string {
	return domain.ClothingCategories
}

// DetectItems counts clothing in a photo. A used-up quota is reported with
// AI_QUOTA_EXCEEDED and blocks further calls for the lockout window; any other
// failure is AI_UNAVAILABLE. Both leave manual entry available.
func (s *LaundryService) DetectItems(ctx context.Context, studentID int64, in DetectItemsInput) (domain.Manifest, error) {
	if err := s.quota.check(ctx, studentID); err != nil {
		return nil, err
	}

	items, err := s.ai.DetectItems(ctx, in.Image)
	if err != nil {
		err = s.quota.observe(ctx, studentID, err)
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		s.logger.WarnContext(ctx, "laundry item detection failed",
			slog.Int64("student_id", studentID),
			slog.String("error", err.Error()),
		)
		return nil, apperrors.BadGateway("AI_UNAVAILABLE",
			fmt.Sprintf("Could not detect items: %s. Add manually.", aiReason(err)), err)
	}
	return items, nil
}

func aiReason(err error) string {
	return strings.TrimPrefix(err.Error(), ai.ErrUnavailable.Error()+": ")
}

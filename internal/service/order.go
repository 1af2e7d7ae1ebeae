package service

import (
	"context"

	"github.com/sajathahamed/Unilifmobile/internal/domain"
	"github.com/sajathahamed/Unilifmobile/internal/repository"
	"github.com/sajathahamed/Unilifmobile/internal/tracker"
)

// OrderService reads food orders and starts live tracking.
type OrderService struct {
	orders  repository.FoodOrderRepository
	tracker *tracker.Tracker
}

// NewOrderService creates a new order service.
func NewOrderService(orders repository.FoodOrderRepository, t *tracker.Tracker) *OrderService {
	return &OrderService{orders: orders, tracker: t}
}

func (s *OrderService) Get(ctx context.Context, studentID, orderID int64) (*domain.FoodOrder, error) {
	return s.orders.GetByID(ctx, studentID, orderID)
}

// Active returns the student's newest undelivered order, or nil.
func (s *OrderService) Active(ctx context.Context, studentID int64) (*domain.FoodOrder, error) {
	return s.orders.GetActiveForStudent(ctx, studentID)
}

// Progress returns a one-off tracking snapshot.
func (s *OrderService) Progress(ctx context.Context, studentID, orderID int64) (domain.Progress, error) {
	o, err := s.orders.GetByID(ctx, studentID, orderID)
	if err != nil {
		return domain.Progress{}, err
	}
	return domain.NewProgress(o.ID, o.Status), nil
}

// Track checks that the order belongs to the student and starts polling it.
// The caller must stop the returned poll or cancel ctx.
func (s *OrderService) Track(ctx context.Context, studentID, orderID int64, onUpdate func(domain.Progress)) (*tracker.Poll, error) {
	if _, err := s.orders.GetByID(ctx, studentID, orderID); err != nil {
		return nil, err
	}
	return s.tracker.Start(ctx, orderID, onUpdate), nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/sajathahamed/Unilifmobile/internal/cart"
	"github.com/sajathahamed/Unilifmobile/internal/domain"
	"github.com/sajathahamed/Unilifmobile/internal/repository"
	apperrors "github.com/sajathahamed/Unilifmobile/pkg/errors"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrMixedVendors         = errors.New("cart holds items from more than one vendor")
	ErrOrderHeaderFailed    = errors.New("create order header failed")
	ErrOrderLineItemsFailed = errors.New("create order line items failed")
)

// CheckoutService turns a cart into a food order in two steps: the order
// header, then its line items.
type CheckoutService struct {
	sessions *cart.Sessions
	orders   repository.FoodOrderRepository
	events   EventPublisher
	logger   *slog.Logger

	inFlight sync.Map
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(sessions *cart.Sessions, orders repository.FoodOrderRepository, events EventPublisher, logger *slog.Logger) *CheckoutService {
	return &CheckoutService{sessions: sessions, orders: orders, events: events, logger: logger}
}

// CheckoutResult is returned after a successful checkout.
type CheckoutResult struct {
	OrderID  int64             `json:"order_id"`
	Total    domain.Money      `json:"total"`
	Progress domain.Progress   `json:"progress"`
	Steps    []domain.SagaStep `json:"steps"`
}

// Checkout places the student's cart as one order. The cart must be non-empty
// and from a single vendor. If the line items cannot be written the header
// stays in place, the cart is left untouched and ORDER_ITEMS_FAILED is
// returned. On success the ordered lines leave the cart; anything added while
// the order was being written stays.
func (s *CheckoutService) Checkout(ctx context.Context, studentID int64) (*CheckoutResult, error) {
	if _, busy := s.inFlight.LoadOrStore(studentID, struct{}{}); busy {
		return nil, apperrors.Conflict("A checkout is already in progress.")
	}
	defer s.inFlight.Delete(studentID)

	store := s.sessions.Open(studentID)
	snap := store.Snapshot()

	if len(snap.Items) == 0 {
		return nil, apperrors.InvalidInputf(ErrEmptyCart, "Your cart is empty.")
	}
	vendors := snap.VendorIDs
	if len(vendors) > 1 {
		return nil, apperrors.InvalidInputf(ErrMixedVendors, "Please order from one vendor at a time.")
	}

	order := &domain.FoodOrder{
		StudentID: studentID,
		VendorID:  vendors[0],
		Total:     snap.TotalAmount.Amount,
		Status:    domain.FoodOrderPending,
	}
	var lines []domain.FoodOrderLineItem

	saga := &domain.Saga{}
	err := saga.Run(ctx, []domain.SagaAction{
		{
			Name: domain.SagaStepCreateOrderHeader,
			Execute: func(ctx context.Context) error {
				id, err := s.orders.CreateHeader(ctx, studentID, order.VendorID, order.Total)
				if err != nil {
					return err
				}
				order.ID = id
				return nil
			},
		},
		{
			Name: domain.SagaStepCreateLineItems,
			Execute: func(ctx context.Context) error {
				lines = make([]domain.FoodOrderLineItem, len(snap.Items))
				for i, it := range snap.Items {
					lines[i] = domain.FoodOrderLineItem{
						OrderID:    order.ID,
						FoodItemID: it.ID,
						Quantity:   it.Quantity,
						Price:      it.Price,
					}
				}
				return s.orders.CreateLineItems(ctx, lines)
			},
		},
	})
	if err != nil {
		return nil, s.checkoutError(ctx, studentID, order.ID, saga, err)
	}

	store.RemoveLines(snap.Items)

	if err := s.events.PublishFoodOrderPlaced(ctx, order, lines); err != nil {
		s.logger.WarnContext(ctx, "failed to publish food order placed event",
			slog.Int64("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "food order placed",
		slog.Int64("order_id", order.ID),
		slog.Int64("student_id", studentID),
		slog.Int64("vendor_id", order.VendorID),
		slog.String("total", order.Total.StringFixed(2)),
	)

	return &CheckoutResult{
		OrderID:  order.ID,
		Total:    domain.MYR(order.Total),
		Progress: domain.NewProgress(order.ID, domain.FoodOrderPending),
		Steps:    saga.Steps,
	}, nil
}

func (s *CheckoutService) checkoutError(ctx context.Context, studentID, orderID int64, saga *domain.Saga, err error) error {
	var sagaErr *domain.SagaError
	if !errors.As(err, &sagaErr) {
		return err
	}

	switch sagaErr.Step {
	case domain.SagaStepCreateOrderHeader:
		s.logger.ErrorContext(ctx, "checkout failed creating order header",
			slog.Int64("student_id", studentID),
			slog.String("error", sagaErr.Err.Error()),
		)
		return apperrors.BadGateway("CHECKOUT_FAILED", "Checkout Failed",
			fmt.Errorf("%w: %w", ErrOrderHeaderFailed, sagaErr.Err))
	default:
		s.logger.WarnContext(ctx, "orphaned order header",
			slog.Int64("order_id", orderID),
			slog.Int64("student_id", studentID),
			slog.Any("uncompensated", saga.Uncompensated()),
			slog.String("error", sagaErr.Err.Error()),
		)
		return apperrors.BadGateway("ORDER_ITEMS_FAILED", "Order Error",
			fmt.Errorf("%w: %w", ErrOrderLineItemsFailed, sagaErr.Err))
	}
}

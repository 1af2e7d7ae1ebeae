package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sajathahamed/Unilifmobile/internal/cart"
	"github.com/sajathahamed/Unilifmobile/internal/domain"
	apperrors "github.com/sajathahamed/Unilifmobile/pkg/errors"
)

func newCheckout(t *testing.T) (*CheckoutService, *cart.Sessions, *mockFoodOrderRepo, *mockEvents) {
	t.Helper()
	sessions := cart.NewSessions()
	repo := new(mockFoodOrderRepo)
	events := new(mockEvents)
	return NewCheckoutService(sessions, repo, events, newTestLogger()), sessions, repo, events
}

func fillCart(s *cart.Store) {
	s.AddItem(domain.CartItem{ID: 1, Name: "Roti Canai", Price: dec("1.50"), VendorID: 3})
	s.AddItem(domain.CartItem{ID: 1, Name: "Roti Canai", Price: dec("1.50"), VendorID: 3})
	s.AddItem(domain.CartItem{ID: 2, Name: "Teh Tarik", Price: dec("2.20"), VendorID: 3})
}

func appErr(t *testing.T, err error) *apperrors.AppError {
	t.Helper()
	var ae *apperrors.AppError
	require.ErrorAs(t, err, &ae)
	return ae
}

func TestCheckout_Success(t *testing.T) {
	svc, sessions, repo, events := newCheckout(t)
	fillCart(sessions.Open(7))

	repo.On("CreateHeader", mock.Anything, int64(7), int64(3), decEq("5.20")).Return(int64(101), nil).Once()
	repo.On("CreateLineItems", mock.Anything, mock.MatchedBy(func(items []domain.FoodOrderLineItem) bool {
		return len(items) == 2 &&
			items[0].OrderID == 101 && items[0].FoodItemID == 1 && items[0].Quantity == 2 && items[0].Price.Equal(dec("1.5")) &&
			items[1].OrderID == 101 && items[1].FoodItemID == 2 && items[1].Quantity == 1
	})).Return(nil).Once()
	events.On("PublishFoodOrderPlaced", mock.Anything, mock.AnythingOfType("*domain.FoodOrder"), mock.Anything).Return(nil).Once()

	res, err := svc.Checkout(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(101), res.OrderID)
	assert.Equal(t, "RM 5.20", res.Total.String())
	assert.Equal(t, 0, res.Progress.ActiveIndex)
	assert.Equal(t, domain.FoodOrderPending, res.Progress.Status)
	require.Len(t, res.Steps, 2)
	assert.Equal(t, domain.SagaStepCompleted, res.Steps[1].Status)

	assert.Zero(t, sessions.Open(7).TotalCount())
	repo.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestCheckout_EmptyCart(t *testing.T) {
	svc, _, repo, _ := newCheckout(t)

	_, err := svc.Checkout(context.Background(), 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Equal(t, http.StatusBadRequest, apperrors.HTTPStatus(err))
	repo.AssertNotCalled(t, "CreateHeader", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckout_MixedVendors(t *testing.T) {
	svc, sessions, repo, _ := newCheckout(t)
	s := sessions.Open(7)
	s.AddItem(domain.CartItem{ID: 1, Price: dec("1"), VendorID: 3})
	s.AddItem(domain.CartItem{ID: 9, Price: dec("1"), VendorID: 4})

	_, err := svc.Checkout(context.Background(), 7)
	assert.ErrorIs(t, err, ErrMixedVendors)
	assert.Equal(t, 2, s.TotalCount())
	repo.AssertNotCalled(t, "CreateHeader", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckout_HeaderFails(t *testing.T) {
	svc, sessions, repo, _ := newCheckout(t)
	fillCart(sessions.Open(7))

	repo.On("CreateHeader", mock.Anything, int64(7), int64(3), mock.Anything).
		Return(int64(0), errors.New("connection reset")).Once()

	_, err := svc.Checkout(context.Background(), 7)
	require.Error(t, err)

	ae := appErr(t, err)
	assert.Equal(t, "CHECKOUT_FAILED", ae.Code)
	assert.Equal(t, http.StatusBadGateway, ae.Status)
	assert.ErrorIs(t, err, ErrOrderHeaderFailed)
	assert.NotErrorIs(t, err, ErrOrderLineItemsFailed)

	assert.Equal(t, 3, sessions.Open(7).TotalCount())
	repo.AssertNotCalled(t, "CreateLineItems", mock.Anything, mock.Anything)
}

func TestCheckout_LineItemsFailKeepsCartAndHeader(t *testing.T) {
	svc, sessions, repo, events := newCheckout(t)
	fillCart(sessions.Open(7))

	repo.On("CreateHeader", mock.Anything, int64(7), int64(3), mock.Anything).Return(int64(101), nil).Once()
	repo.On("CreateLineItems", mock.Anything, mock.Anything).Return(errors.New("foreign key violation")).Once()

	_, err := svc.Checkout(context.Background(), 7)
	require.Error(t, err)

	ae := appErr(t, err)
	assert.Equal(t, "ORDER_ITEMS_FAILED", ae.Code)
	assert.Equal(t, "Order Error", ae.Message)
	assert.ErrorIs(t, err, ErrOrderLineItemsFailed)
	assert.Contains(t, err.Error(), "foreign key violation")

	snap := sessions.Open(7).Snapshot()
	assert.Len(t, snap.Items, 2)
	assert.Equal(t, "RM 5.20", snap.TotalAmount.String())

	events.AssertNotCalled(t, "PublishFoodOrderPlaced", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestCheckout_RetryAfterLineItemFailureCreatesNewHeader(t *testing.T) {
	svc, sessions, repo, events := newCheckout(t)
	fillCart(sessions.Open(7))

	repo.On("CreateHeader", mock.Anything, int64(7), int64(3), mock.Anything).Return(int64(101), nil).Once()
	repo.On("CreateLineItems", mock.Anything, mock.Anything).Return(errors.New("timeout")).Once()
	repo.On("CreateHeader", mock.Anything, int64(7), int64(3), mock.Anything).Return(int64(102), nil).Once()
	repo.On("CreateLineItems", mock.Anything, mock.Anything).Return(nil).Once()
	events.On("PublishFoodOrderPlaced", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Checkout(context.Background(), 7)
	require.Error(t, err)

	res, err := svc.Checkout(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(102), res.OrderID)
	repo.AssertNumberOfCalls(t, "CreateHeader", 2)
}

func TestCheckout_EventFailureDoesNotFailCheckout(t *testing.T) {
	svc, sessions, repo, events := newCheckout(t)
	fillCart(sessions.Open(7))

	repo.On("CreateHeader", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(int64(101), nil)
	repo.On("CreateLineItems", mock.Anything, mock.Anything).Return(nil)
	events.On("PublishFoodOrderPlaced", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))

	res, err := svc.Checkout(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(101), res.OrderID)
	assert.Zero(t, sessions.Open(7).TotalCount())
}

func TestCheckout_ConcurrentAttemptRejected(t *testing.T) {
	svc, sessions, repo, events := newCheckout(t)
	fillCart(sessions.Open(7))

	entered := make(chan struct{})
	release := make(chan struct{})
	repo.On("CreateHeader", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(int64(101), nil).Once()
	repo.On("CreateLineItems", mock.Anything, mock.Anything).Return(nil)
	events.On("PublishFoodOrderPlaced", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Checkout(context.Background(), 7)
		done <- err
	}()
	<-entered

	_, err := svc.Checkout(context.Background(), 7)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	close(release)
	require.NoError(t, <-done)
}

func TestCheckout_ItemsAddedDuringSubmitStayInCart(t *testing.T) {
	svc, sessions, repo, events := newCheckout(t)
	store := sessions.Open(7)
	fillCart(store)

	repo.On("CreateHeader", mock.Anything, int64(7), int64(3), decEq("5.20")).
		Run(func(mock.Arguments) {
			store.AddItem(domain.CartItem{ID: 9, Name: "Nasi Lemak", Price: dec("4.00"), VendorID: 3})
			store.AddItem(domain.CartItem{ID: 2, Name: "Teh Tarik", Price: dec("2.20"), VendorID: 3})
		}).
		Return(int64(101), nil).Once()
	repo.On("CreateLineItems", mock.Anything, mock.MatchedBy(func(items []domain.FoodOrderLineItem) bool {
		return len(items) == 2
	})).Return(nil).Once()
	events.On("PublishFoodOrderPlaced", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Checkout(context.Background(), 7)
	require.NoError(t, err)

	left := store.Items()
	require.Len(t, left, 2)
	assert.Equal(t, int64(2), left[0].ID)
	assert.Equal(t, 1, left[0].Quantity)
	assert.Equal(t, int64(9), left[1].ID)
	assert.Equal(t, 1, left[1].Quantity)
	repo.AssertExpectations(t)
}

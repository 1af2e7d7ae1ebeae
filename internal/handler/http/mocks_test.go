package http

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/sajathahamed/Unilifmobile/internal/domain"
	"github.com/sajathahamed/Unilifmobile/internal/repository"
)

// --- Mock Food Order Repository ---

type mockFoodOrderRepo struct {
	mock.Mock
}

func (m *mockFoodOrderRepo) CreateHeader(ctx context.Context, studentID, vendorID int64, total decimal.Decimal) (int64, error) {
	args := m.Called(ctx, studentID, vendorID, total)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockFoodOrderRepo) CreateLineItems(ctx context.Context, items []domain.FoodOrderLineItem) error {
	return m.Called(ctx, items).Error(0)
}

func (m *mockFoodOrderRepo) GetByID(ctx context.Context, studentID, orderID int64) (*domain.FoodOrder, error) {
	args := m.Called(ctx, studentID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FoodOrder), args.Error(1)
}

func (m *mockFoodOrderRepo) GetStatus(ctx context.Context, orderID int64) (string, error) {
	args := m.Called(ctx, orderID)
	return args.String(0), args.Error(1)
}

func (m *mockFoodOrderRepo) GetActiveForStudent(ctx context.Context, studentID int64) (*domain.FoodOrder, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FoodOrder), args.Error(1)
}

// --- Mock Laundry Order Repository ---

type mockLaundryOrderRepo struct {
	mock.Mock
}

func (m *mockLaundryOrderRepo) Create(ctx context.Context, order *domain.LaundryOrder) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockLaundryOrderRepo) List(ctx context.Context, filter repository.LaundryOrderFilter) ([]domain.LaundryOrder, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LaundryOrder), args.Error(1)
}

// --- Mock Catalog Repository ---

type mockCatalogRepo struct {
	mock.Mock
}

func (m *mockCatalogRepo) ListOpenVendors(ctx context.Context) ([]domain.Vendor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vendor), args.Error(1)
}

func (m *mockCatalogRepo) ListMenu(ctx context.Context, vendorID int64) ([]domain.MenuItem, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MenuItem), args.Error(1)
}

func (m *mockCatalogRepo) GetMenuItem(ctx context.Context, id int64) (*domain.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MenuItem), args.Error(1)
}

func (m *mockCatalogRepo) ListLaundryServices(ctx context.Context) ([]domain.LaundryService, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LaundryService), args.Error(1)
}

func (m *mockCatalogRepo) GetLaundryService(ctx context.Context, id int64) (*domain.LaundryService, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LaundryService), args.Error(1)
}

// --- Mock Notification Repository ---

type mockNotificationRepo struct {
	mock.Mock
}

func (m *mockNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *mockNotificationRepo) ListForUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Notification, int, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Notification), args.Int(1), args.Error(2)
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, userID, id int64) error {
	return m.Called(ctx, userID, id).Error(0)
}

// --- Mock Timetable Repository ---

type mockTimetableRepo struct {
	mock.Mock
}

func (m *mockTimetableRepo) ListForDay(ctx context.Context, studentID int64, day string) ([]domain.TimetableEntry, error) {
	args := m.Called(ctx, studentID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimetableEntry), args.Error(1)
}

// --- Mock Trip Repository ---

type mockTripRepo struct {
	mock.Mock
}

func (m *mockTripRepo) Create(ctx context.Context, trip *domain.Trip) error {
	return m.Called(ctx, trip).Error(0)
}

func (m *mockTripRepo) UpdateWithAI(ctx context.Context, tripID int64, suggestions string) error {
	return m.Called(ctx, tripID, suggestions).Error(0)
}

func (m *mockTripRepo) GetByID(ctx context.Context, createdBy, tripID int64) (*domain.Trip, error) {
	args := m.Called(ctx, createdBy, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trip), args.Error(1)
}

func (m *mockTripRepo) ListByCreator(ctx context.Context, createdBy int64) ([]domain.Trip, error) {
	args := m.Called(ctx, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Trip), args.Error(1)
}

// --- Mock Quota Store ---

type mockQuotaStore struct {
	mock.Mock
}

func (m *mockQuotaStore) Exhausted(ctx context.Context, studentID int64) (bool, error) {
	args := m.Called(ctx, studentID)
	return args.Bool(0), args.Error(1)
}

func (m *mockQuotaStore) MarkExhausted(ctx context.Context, studentID int64) error {
	return m.Called(ctx, studentID).Error(0)
}

// --- Mock Event Publisher ---

type mockEvents struct {
	mock.Mock
}

func (m *mockEvents) PublishFoodOrderPlaced(ctx context.Context, order *domain.FoodOrder, items []domain.FoodOrderLineItem) error {
	return m.Called(ctx, order, items).Error(0)
}

func (m *mockEvents) PublishLaundryOrderPlaced(ctx context.Context, order *domain.LaundryOrder) error {
	return m.Called(ctx, order).Error(0)
}

// --- Mock AI Client ---

type mockAI struct {
	mock.Mock
}

func (m *mockAI) DetectItems(ctx context.Context, imageBase64 string) (domain.Manifest, error) {
	args := m.Called(ctx, imageBase64)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Manifest), args.Error(1)
}

func (m *mockAI) GenerateItinerary(ctx context.Context, destination string, days int, budget decimal.Decimal) (string, error) {
	args := m.Called(ctx, destination, days, budget)
	return args.String(0), args.Error(1)
}

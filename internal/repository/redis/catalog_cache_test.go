package redis

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sajathahamed/Unilifmobile/internal/domain"
)

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) ListOpenVendors(ctx context.Context) ([]domain.Vendor, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]domain.Vendor)
	return v, args.Error(1)
}

func (m *mockCatalog) ListMenu(ctx context.Context, vendorID int64) ([]domain.MenuItem, error) {
	args := m.Called(ctx, vendorID)
	v, _ := args.Get(0).([]domain.MenuItem)
	return v, args.Error(1)
}

func (m *mockCatalog) GetMenuItem(ctx context.Context, id int64) (*domain.MenuItem, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*domain.MenuItem)
	return v, args.Error(1)
}

func (m *mockCatalog) ListLaundryServices(ctx context.Context) ([]domain.LaundryService, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]domain.LaundryService)
	return v, args.Error(1)
}

func (m *mockCatalog) GetLaundryService(ctx context.Context, id int64) (*domain.LaundryService, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*domain.LaundryService)
	return v, args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestCachedCatalog_ListOpenVendors_ReadThrough(t *testing.T) {
	client, mr := setupTestRedis(t)
	next := new(mockCatalog)
	cache := NewCachedCatalog(next, client, time.Minute, testLogger())
	ctx := context.Background()

	vendors := []domain.Vendor{{ID: 3, Name: "Mamak Corner", Rating: 4.5, IsOpen: true}}
	next.On("ListOpenVendors", mock.Anything).Return(vendors, nil).Once()

	first, err := cache.ListOpenVendors(ctx)
	require.NoError(t, err)
	second, err := cache.ListOpenVendors(ctx)
	require.NoError(t, err)

	assert.Equal(t, vendors, first)
	assert.Equal(t, vendors, second)
	assert.True(t, mr.Exists("catalog:vendors:open"))
	next.AssertExpectations(t)
}

func TestCachedCatalog_ListMenu_PerVendorKeys(t *testing.T) {
	client, mr := setupTestRedis(t)
	next := new(mockCatalog)
	cache := NewCachedCatalog(next, client, time.Minute, testLogger())

	menu := []domain.MenuItem{{ID: 1, VendorID: 3, Name: "Roti Canai", Price: decimal.RequireFromString("1.5"), IsAvailable: true}}
	next.On("ListMenu", mock.Anything, int64(3)).Return(menu, nil).Once()

	_, err := cache.ListMenu(context.Background(), 3)
	require.NoError(t, err)
	got, err := cache.ListMenu(context.Background(), 3)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.True(t, got[0].Price.Equal(decimal.RequireFromString("1.50")))
	assert.True(t, mr.Exists("catalog:menu:3"))
	next.AssertExpectations(t)
}

func TestCachedCatalog_ExpiredEntryReloads(t *testing.T) {
	client, mr := setupTestRedis(t)
	next := new(mockCatalog)
	cache := NewCachedCatalog(next, client, time.Minute, testLogger())

	next.On("ListLaundryServices", mock.Anything).Return([]domain.LaundryService{{ID: 2, Name: "Bubbles"}}, nil).Twice()

	_, err := cache.ListLaundryServices(context.Background())
	require.NoError(t, err)
	mr.FastForward(2 * time.Minute)
	_, err = cache.ListLaundryServices(context.Background())
	require.NoError(t, err)

	next.AssertExpectations(t)
}

func TestCachedCatalog_LoadErrorNotCached(t *testing.T) {
	client, mr := setupTestRedis(t)
	next := new(mockCatalog)
	cache := NewCachedCatalog(next, client, time.Minute, testLogger())

	next.On("ListOpenVendors", mock.Anything).Return(nil, errors.New("db down")).Once()

	_, err := cache.ListOpenVendors(context.Background())
	assert.Error(t, err)
	assert.False(t, mr.Exists("catalog:vendors:open"))
}

func TestCachedCatalog_RedisDownFallsThrough(t *testing.T) {
	client, mr := setupTestRedis(t)
	next := new(mockCatalog)
	cache := NewCachedCatalog(next, client, time.Minute, testLogger())
	mr.Close()

	vendors := []domain.Vendor{{ID: 3, Name: "Mamak Corner"}}
	next.On("ListOpenVendors", mock.Anything).Return(vendors, nil).Once()

	got, err := cache.ListOpenVendors(context.Background())
	require.NoError(t, err)
	assert.Equal(t, vendors, got)
}

func TestCachedCatalog_CorruptEntryReloads(t *testing.T) {
	client, mr := setupTestRedis(t)
	next := new(mockCatalog)
	cache := NewCachedCatalog(next, client, time.Minute, testLogger())

	require.NoError(t, mr.Set("catalog:vendors:open", "{not json"))
	next.On("ListOpenVendors", mock.Anything).Return([]domain.Vendor{}, nil).Once()

	_, err := cache.ListOpenVendors(context.Background())
	require.NoError(t, err)
	next.AssertExpectations(t)
}

func TestCachedCatalog_PassThroughAndInvalidate(t *testing.T) {
	client, mr := setupTestRedis(t)
	next := new(mockCatalog)
	cache := NewCachedCatalog(next, client, time.Minute, testLogger())
	ctx := context.Background()

	item := &domain.MenuItem{ID: 1, Name: "Roti Canai"}
	svc := &domain.LaundryService{ID: 2, Name: "Bubbles"}
	next.On("GetMenuItem", mock.Anything, int64(1)).Return(item, nil).Twice()
	next.On("GetLaundryService", mock.Anything, int64(2)).Return(svc, nil).Once()
	next.On("ListOpenVendors", mock.Anything).Return([]domain.Vendor{}, nil).Twice()

	_, _ = cache.GetMenuItem(ctx, 1)
	got, err := cache.GetMenuItem(ctx, 1)
	require.NoError(t, err)
	assert.Same(t, item, got)

	_, err = cache.GetLaundryService(ctx, 2)
	require.NoError(t, err)

	_, err = cache.ListOpenVendors(ctx)
	require.NoError(t, err)
	require.NoError(t, cache.Invalidate(ctx))
	assert.False(t, mr.Exists("catalog:vendors:open"))
	_, err = cache.ListOpenVendors(ctx)
	require.NoError(t, err)

	next.AssertExpectations(t)
}

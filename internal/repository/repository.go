package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/sajathahamed/Unilifmobile/internal/domain"
)

// FoodOrderRepository persists food orders. Header and line items are
// written by separate calls so checkout can report which step failed.
type FoodOrderRepository interface {
	// CreateHeader inserts a pending order and returns its id.
	CreateHeader(ctx context.Context, studentID, vendorID int64, total decimal.Decimal) (int64, error)

	// CreateLineItems inserts all lines of one order in a single statement.
	CreateLineItems(ctx context.Context, items []domain.FoodOrderLineItem) error

	// GetByID returns the order with its vendor name, scoped to the student.
	GetByID(ctx context.Context, studentID, orderID int64) (*domain.FoodOrder, error)

	// GetStatus returns the current status of an order.
	GetStatus(ctx context.Context, orderID int64) (string, error)

	// GetActiveForStudent returns the newest order that is not delivered, or nil.
	GetActiveForStudent(ctx context.Context, studentID int64) (*domain.FoodOrder, error)
}

// LaundryOrderFilter narrows a laundry order listing.
type LaundryOrderFilter struct {
	StudentID int64
	Statuses  []string
	Limit     uint64
}

type LaundryOrderRepository interface {
	// Create inserts the order and sets its id and created_at.
	Create(ctx context.Context, order *domain.LaundryOrder) error

	// List returns matching orders newest first, joined with the service.
	List(ctx context.Context, filter LaundryOrderFilter) ([]domain.LaundryOrder, error)
}

// CatalogRepository reads vendors, menus and laundry services.
type CatalogRepository interface {
	ListOpenVendors(ctx context.Context) ([]domain.Vendor, error)
	ListMenu(ctx context.Context, vendorID int64) ([]domain.MenuItem, error)
	GetMenuItem(ctx context.Context, id int64) (*domain.MenuItem, error)
	ListLaundryServices(ctx context.Context) ([]domain.LaundryService, error)
	GetLaundryService(ctx context.Context, id int64) (*domain.LaundryService, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error

	// ListForUser returns one page newest first and the total count.
	ListForUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Notification, int, error)

	MarkRead(ctx context.Context, userID, id int64) error
}

type TimetableRepository interface {
	// ListForDay returns the student's classes on day, matched case-insensitively,
	// ordered by start time.
	ListForDay(ctx context.Context, studentID int64, day string) ([]domain.TimetableEntry, error)
}

type TripRepository interface {
	Create(ctx context.Context, trip *domain.Trip) error
	UpdateWithAI(ctx context.Context, tripID int64, suggestions string) error
	GetByID(ctx context.Context, createdBy, tripID int64) (*domain.Trip, error)
	ListByCreator(ctx context.Context, createdBy int64) ([]domain.Trip, error)
}

// QuotaStore remembers students whose AI quota ran out.
type QuotaStore interface {
	Exhausted(ctx context.Context, studentID int64) (bool, error)
	MarkExhausted(ctx context.Context, studentID int64) error
}

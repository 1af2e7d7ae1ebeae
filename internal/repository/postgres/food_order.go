package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/sajathahamed/Unilifmobile/internal/domain"
	"github.com/sajathahamed/Unilifmobile/pkg/database"
	apperrors "github.com/sajathahamed/Unilifmobile/pkg/errors"
)

// FoodOrderRepository implements repository.FoodOrderRepository using PostgreSQL.
type FoodOrderRepository struct {
	pool database.DBTX
}

// NewFoodOrderRepository creates a new PostgreSQL-backed food order repository.
func NewFoodOrderRepository(pool database.DBTX) *FoodOrderRepository {
	return &FoodOrderRepository{pool: pool}
}

const foodOrderSelect = `
		SELECT o.id, o.student_id, o.vendor_id, COALESCE(v.name, ''), o.total, o.status, o.created_at
		FROM food_orders o
		LEFT JOIN vendors v ON v.id = o.vendor_id`

// CreateHeader inserts a pending order header.
func (r *FoodOrderRepository) CreateHeader(ctx context.Context, studentID, vendorID int64, total decimal.Decimal) (id int64, err error) {
	query := `
		INSERT INTO food_orders (student_id, vendor_id, total, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	ctx, end := database.TraceQuery(ctx, "CreateFoodOrderHeader", query)
	defer func() { end(err) }()

	err = r.pool.QueryRow(ctx, query, studentID, vendorID, total, domain.FoodOrderPending).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert food order: %w", err)
	}
	return id, nil
}

// CreateLineItems inserts every line in one multi-row statement.
func (r *FoodOrderRepository) CreateLineItems(ctx context.Context, items []domain.FoodOrderLineItem) (err error) {
	if len(items) == 0 {
		return nil
	}

	b := psql.Insert("food_order_items").Columns("order_id", "food_id", "qty", "price")
	for _, it := range items {
		b = b.Values(it.OrderID, it.FoodItemID, it.Quantity, it.Price)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build insert food order items: %w", err)
	}

	ctx, end := database.TraceQuery(ctx, "CreateFoodOrderItems", query)
	defer func() { end(err) }()

	if _, err = r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert food order items: %w", err)
	}
	return nil
}

// GetByID returns one of the student's orders.
func (r *FoodOrderRepository) GetByID(ctx context.Context, studentID, orderID int64) (o *domain.FoodOrder, err error) {
	query := foodOrderSelect + `
		WHERE o.id = $1 AND o.student_id = $2`

	ctx, end := database.TraceQuery(ctx, "GetFoodOrder", query)
	defer func() { end(err) }()

	o, err = scanFoodOrder(r.pool.QueryRow(ctx, query, orderID, studentID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("food order", orderID)
	}
	if err != nil {
		return nil, fmt.Errorf("get food order: %w", err)
	}
	return o, nil
}

// GetStatus returns the status column only; the tracker calls it every few seconds.
func (r *FoodOrderRepository) GetStatus(ctx context.Context, orderID int64) (status string, err error) {
	query := `SELECT status FROM food_orders WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "GetFoodOrderStatus", query)
	defer func() { end(err) }()

	err = r.pool.QueryRow(ctx, query, orderID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", apperrors.NotFound("food order", orderID)
	}
	if err != nil {
		return "", fmt.Errorf("get food order status: %w", err)
	}
	return status, nil
}

// GetActiveForStudent returns the newest undelivered order, or nil when there is none.
func (r *FoodOrderRepository) GetActiveForStudent(ctx context.Context, studentID int64) (o *domain.FoodOrder, err error) {
	query, args, err := psql.
		Select("o.id", "o.student_id", "o.vendor_id", "COALESCE(v.name, '')", "o.total", "o.status", "o.created_at").
		From("food_orders o").
		LeftJoin("vendors v ON v.id = o.vendor_id").
		Where(sq.Eq{"o.student_id": studentID}).
		Where(sq.NotEq{"o.status": domain.FoodOrderDelivered}).
		OrderBy("o.created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build active food order query: %w", err)
	}

	ctx, end := database.TraceQuery(ctx, "GetActiveFoodOrder", query)
	defer func() { end(err) }()

	o, err = scanFoodOrder(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get active food order: %w", err)
	}
	return o, nil
}

func scanFoodOrder(row pgx.Row) (*domain.FoodOrder, error) {
	var o domain.FoodOrder
	if err := row.Scan(&o.ID, &o.StudentID, &o.VendorID, &o.VendorName, &o.Total, &o.Status, &o.CreatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

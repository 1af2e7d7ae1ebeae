package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/sajathahamed/Unilifmobile/internal/domain"
	"github.com/sajathahamed/Unilifmobile/internal/repository"
	"github.com/sajathahamed/Unilifmobile/pkg/database"
)

// LaundryOrderRepository implements repository.LaundryOrderRepository using PostgreSQL.
type LaundryOrderRepository struct {
	pool database.DBTX
}

// NewLaundryOrderRepository creates a new PostgreSQL-backed laundry order repository.
func NewLaundryOrderRepository(pool database.DBTX) *LaundryOrderRepository {
	return &LaundryOrderRepository{pool: pool}
}

// Create inserts the order. A nil manifest is stored as NULL.
func (r *LaundryOrderRepository) Create(ctx context.Context, o *domain.LaundryOrder) (err error) {
	var manifestJSON []byte
	if o.Manifest != nil {
		manifestJSON, err = json.Marshal(o.Manifest)
		if err != nil {
			return fmt.Errorf("marshal laundry manifest: %w", err)
		}
	}

	var imageURL *string
	if o.ImageURL != "" {
		imageURL = &o.ImageURL
	}

	query := `
		INSERT INTO laundry_orders (student_id, laundry_service_id, order_type, total_price, status, items_json, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	ctx, end := database.TraceQuery(ctx, "CreateLaundryOrder", query)
	defer func() { end(err) }()

	err = r.pool.QueryRow(ctx, query,
		o.StudentID,
		o.ServiceID,
		o.OrderType,
		o.Total,
		o.Status,
		manifestJSON,
		imageURL,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert laundry order: %w", err)
	}
	return nil
}

// List returns the student's orders newest first.
func (r *LaundryOrderRepository) List(ctx context.Context, filter repository.LaundryOrderFilter) (orders []domain.LaundryOrder, err error) {
	b := psql.
		Select(
			"o.id", "o.student_id", "o.laundry_service_id",
			"COALESCE(s.name, '')", "COALESCE(s.location, '')",
			"o.order_type", "o.total_price", "o.status", "o.items_json",
			"COALESCE(o.image_url, '')", "o.created_at",
		).
		From("laundry_orders o").
		LeftJoin("laundry_services s ON s.id = o.laundry_service_id").
		Where(sq.Eq{"o.student_id": filter.StudentID}).
		OrderBy("o.created_at DESC")
	if len(filter.Statuses) > 0 {
		b = b.Where(sq.Eq{"o.status": filter.Statuses})
	}
	if filter.Limit > 0 {
		b = b.Limit(filter.Limit)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build laundry order query: %w", err)
	}

	ctx, end := database.TraceQuery(ctx, "ListLaundryOrders", query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list laundry orders: %w", err)
	}
	defer rows.Close()

	orders = []domain.LaundryOrder{}
	for rows.Next() {
		o, err := scanLaundryOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan laundry order: %w", err)
		}
		orders = append(orders, *o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate laundry orders: %w", err)
	}
	return orders, nil
}

func scanLaundryOrder(row pgx.Row) (*domain.LaundryOrder, error) {
	var (
		o            domain.LaundryOrder
		manifestJSON []byte
	)
	err := row.Scan(
		&o.ID, &o.StudentID, &o.ServiceID,
		&o.ServiceName, &o.ServiceLocation,
		&o.OrderType, &o.Total, &o.Status, &manifestJSON,
		&o.ImageURL, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(manifestJSON) > 0 {
		if err := json.Unmarshal(manifestJSON, &o.Manifest); err != nil {
			return nil, fmt.Errorf("unmarshal laundry manifest: %w", err)
		}
	}
	return &o, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sajathahamed/Unilifmobile/internal/domain"
	"github.com/sajathahamed/Unilifmobile/pkg/database"
	apperrors "github.com/sajathahamed/Unilifmobile/pkg/errors"
)

// CatalogRepository implements repository.CatalogRepository using PostgreSQL.
type CatalogRepository struct {
	pool database.DBTX
}

// NewCatalogRepository creates a new PostgreSQL-backed catalog repository.
func NewCatalogRepository(pool database.DBTX) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

// ListOpenVendors returns open vendors, best rated first.
func (r *CatalogRepository) ListOpenVendors(ctx context.Context) (vendors []domain.Vendor, err error) {
	query := `
		SELECT id, name, COALESCE(description, ''), COALESCE(location, ''),
			COALESCE(image_url, ''), COALESCE(rating, 0)::float8, is_open
		FROM vendors
		WHERE is_open = true
		ORDER BY rating DESC NULLS LAST, id`

	ctx, end := database.TraceQuery(ctx, "ListOpenVendors", query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()

	vendors = []domain.Vendor{}
	for rows.Next() {
		var v domain.Vendor
		if err = rows.Scan(&v.ID, &v.Name, &v.Description, &v.Location, &v.ImageURL, &v.Rating, &v.IsOpen); err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		vendors = append(vendors, v)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vendors: %w", err)
	}
	return vendors, nil
}

const menuItemSelect = `
		SELECT f.id, f.vendor_id, COALESCE(v.name, ''), f.name, COALESCE(f.description, ''),
			f.price, COALESCE(f.image_url, ''), COALESCE(c.name, ''), f.is_available
		FROM food_items f
		LEFT JOIN food_categories c ON c.id = f.category_id
		LEFT JOIN vendors v ON v.id = f.vendor_id`

// ListMenu returns the vendor's available items ordered by name.
func (r *CatalogRepository) ListMenu(ctx context.Context, vendorID int64) (items []domain.MenuItem, err error) {
	query := menuItemSelect + `
		WHERE f.vendor_id = $1 AND f.is_available = true
		ORDER BY f.name`

	ctx, end := database.TraceQuery(ctx, "ListMenu", query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}
	defer rows.Close()

	items = []domain.MenuItem{}
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		items = append(items, *m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate menu: %w", err)
	}
	return items, nil
}

// GetMenuItem returns one food item regardless of availability.
func (r *CatalogRepository) GetMenuItem(ctx context.Context, id int64) (m *domain.MenuItem, err error) {
	query := menuItemSelect + `
		WHERE f.id = $1`

	ctx, end := database.TraceQuery(ctx, "GetMenuItem", query)
	defer func() { end(err) }()

	m, err = scanMenuItem(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("food item", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get menu item: %w", err)
	}
	return m, nil
}

func scanMenuItem(row pgx.Row) (*domain.MenuItem, error) {
	var m domain.MenuItem
	err := row.Scan(&m.ID, &m.VendorID, &m.VendorName, &m.Name, &m.Description,
		&m.Price, &m.ImageURL, &m.CategoryName, &m.IsAvailable)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

const laundryServiceSelect = `
		SELECT id, name, COALESCE(location, ''), COALESCE(description, ''), price_per_kg
		FROM laundry_services`

func (r *CatalogRepository) ListLaundryServices(ctx context.Context) (services []domain.LaundryService, err error) {
	query := laundryServiceSelect + `
		ORDER BY name`

	ctx, end := database.TraceQuery(ctx, "ListLaundryServices", query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list laundry services: %w", err)
	}
	defer rows.Close()

	services = []domain.LaundryService{}
	for rows.Next() {
		var s domain.LaundryService
		if err = rows.Scan(&s.ID, &s.Name, &s.Location, &s.Description, &s.PricePerKg); err != nil {
			return nil, fmt.Errorf("scan laundry service: %w", err)
		}
		services = append(services, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate laundry services: %w", err)
	}
	return services, nil
}

func (r *CatalogRepository) GetLaundryService(ctx context.Context, id int64) (s *domain.LaundryService, err error) {
	query := laundryServiceSelect + `
		WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "GetLaundryService", query)
	defer func() { end(err) }()

	var svc domain.LaundryService
	err = r.pool.QueryRow(ctx, query, id).Scan(&svc.ID, &svc.Name, &svc.Location, &svc.Description, &svc.PricePerKg)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("laundry service", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get laundry service: %w", err)
	}
	return &svc, nil
}

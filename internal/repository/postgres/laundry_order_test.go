package postgres

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sajathahamed/Unilifmobile/internal/domain"
	"github.com/sajathahamed/Unilifmobile/internal/repository"
)

var laundryOrderColumns = []string{
	"id", "student_id", "laundry_service_id", "service_name", "service_location",
	"order_type", "total_price", "status", "items_json", "image_url", "created_at",
}

func TestLaundryOrderRepository_Create_WithManifest(t *testing.T) {
	mock := newMock(t)
	repo := NewLaundryOrderRepository(mock)

	o := &domain.LaundryOrder{
		StudentID: 7,
		ServiceID: 2,
		OrderType: domain.LaundryOrderTypePerKg,
		Total:     decimal.RequireFromString("14.85"),
		Status:    domain.LaundryPending,
		Manifest:  domain.Manifest{"Socks": 4},
	}

	mock.ExpectQuery("INSERT INTO laundry_orders").
		WithArgs(int64(7), int64(2), domain.LaundryOrderTypePerKg, dec("14.85"), domain.LaundryPending,
			[]byte(`{"Socks":4}`), (*string)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(55), fixedTime))

	require.NoError(t, repo.Create(context.Background(), o))
	assert.Equal(t, int64(55), o.ID)
	assert.Equal(t, fixedTime, o.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLaundryOrderRepository_Create_NilManifestIsNull(t *testing.T) {
	mock := newMock(t)
	repo := NewLaundryOrderRepository(mock)

	o := &domain.LaundryOrder{
		StudentID: 7, ServiceID: 2, OrderType: domain.LaundryOrderTypePerKg,
		Total: decimal.NewFromInt(9), Status: domain.LaundryPending,
		ImageURL: "https://cdn.example/laundry.jpg",
	}
	url := o.ImageURL

	mock.ExpectQuery("INSERT INTO laundry_orders").
		WithArgs(int64(7), int64(2), domain.LaundryOrderTypePerKg, dec("9"), domain.LaundryPending,
			[]byte(nil), &url).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(56), fixedTime))

	require.NoError(t, repo.Create(context.Background(), o))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLaundryOrderRepository_Create_Error(t *testing.T) {
	mock := newMock(t)
	repo := NewLaundryOrderRepository(mock)

	mock.ExpectQuery("INSERT INTO laundry_orders").WillReturnError(errors.New("disk full"))

	err := repo.Create(context.Background(), &domain.LaundryOrder{Total: decimal.NewFromInt(1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert laundry order")
}

func TestLaundryOrderRepository_List_ActiveStatuses(t *testing.T) {
	mock := newMock(t)
	repo := NewLaundryOrderRepository(mock)

	mock.ExpectQuery(`FROM laundry_orders o .+ WHERE o.student_id = \$1 AND o.status IN \(\$2,\$3,\$4\) ORDER BY o.created_at DESC LIMIT 1`).
		WithArgs(int64(7), domain.LaundryPending, domain.LaundryProcessing, domain.LaundryReady).
		WillReturnRows(pgxmock.NewRows(laundryOrderColumns).AddRow(
			int64(55), int64(7), int64(2), "Bubbles", "Block C",
			domain.LaundryOrderTypePerKg, "14.85", domain.LaundryProcessing,
			[]byte(`{"Socks":4,"Towel":1}`), "", fixedTime,
		))

	orders, err := repo.List(context.Background(), repository.LaundryOrderFilter{
		StudentID: 7,
		Statuses:  domain.ActiveLaundryStatuses(),
		Limit:     1,
	})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Bubbles", orders[0].ServiceName)
	assert.Equal(t, domain.Manifest{"Socks": 4, "Towel": 1}, orders[0].Manifest)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLaundryOrderRepository_List_AllStatuses(t *testing.T) {
	mock := newMock(t)
	repo := NewLaundryOrderRepository(mock)

	mock.ExpectQuery(`WHERE o.student_id = \$1 ORDER BY o.created_at DESC$`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows(laundryOrderColumns).
			AddRow(int64(2), int64(7), int64(2), "Bubbles", "Block C",
				domain.LaundryOrderTypePerKg, "5.00", domain.LaundryCompleted, nil, "", fixedTime).
			AddRow(int64(1), int64(7), int64(2), "Bubbles", "Block C",
				domain.LaundryOrderTypePerKg, "4.00", domain.LaundryPending, nil, "", fixedTime))

	orders, err := repo.List(context.Background(), repository.LaundryOrderFilter{StudentID: 7})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Nil(t, orders[0].Manifest)
}

func TestLaundryOrderRepository_List_Empty(t *testing.T) {
	mock := newMock(t)
	repo := NewLaundryOrderRepository(mock)

	mock.ExpectQuery("FROM laundry_orders").
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows(laundryOrderColumns))

	orders, err := repo.List(context.Background(), repository.LaundryOrderFilter{StudentID: 7})
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}

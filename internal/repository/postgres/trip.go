package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sajathahamed/Unilifmobile/internal/domain"
	"github.com/sajathahamed/Unilifmobile/pkg/database"
	apperrors "github.com/sajathahamed/Unilifmobile/pkg/errors"
)

// TripRepository implements repository.TripRepository using PostgreSQL.
type TripRepository struct {
	pool database.DBTX
}

// NewTripRepository creates a new PostgreSQL-backed trip repository.
func NewTripRepository(pool database.DBTX) *TripRepository {
	return &TripRepository{pool: pool}
}

// Create inserts the trip and sets its id and created_at.
func (r *TripRepository) Create(ctx context.Context, t *domain.Trip) (err error) {
	query := `
		INSERT INTO trips (destination, days, estimated_budget, created_by, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	ctx, end := database.TraceQuery(ctx, "CreateTrip", query)
	defer func() { end(err) }()

	err = r.pool.QueryRow(ctx, query, t.Destination, t.Days, t.EstimatedBudget, t.CreatedBy, t.Status).
		Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert trip: %w", err)
	}
	return nil
}

// UpdateWithAI stores the generated itinerary text.
func (r *TripRepository) UpdateWithAI(ctx context.Context, tripID int64, suggestions string) (err error) {
	query := `UPDATE trips SET ai_suggestions = $1 WHERE id = $2`

	ctx, end := database.TraceQuery(ctx, "UpdateTripWithAI", query)
	defer func() { end(err) }()

	tag, err := r.pool.Exec(ctx, query, suggestions, tripID)
	if err != nil {
		return fmt.Errorf("update trip suggestions: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("trip", tripID)
	}
	return nil
}

// tripSelect loads trips with their itinerary rows aggregated in one pass.
const tripSelect = `
		SELECT
			t.id, t.destination, t.days, t.estimated_budget, t.created_by, t.status,
			COALESCE(t.ai_suggestions, ''), t.created_at,
			COALESCE(
				JSONB_AGG(
					JSONB_BUILD_OBJECT(
						'id', i.id,
						'trip_id', i.trip_id,
						'day_number', i.day_number,
						'title', i.title,
						'details', COALESCE(i.details, '')
					) ORDER BY i.day_number, i.id
				) FILTER (WHERE i.id IS NOT NULL),
				'[]'::jsonb
			) AS itinerary
		FROM trips t
		LEFT JOIN trip_itinerary i ON i.trip_id = t.id`

const tripGroupBy = `
		GROUP BY t.id, t.destination, t.days, t.estimated_budget, t.created_by,
			t.status, t.ai_suggestions, t.created_at`

func (r *TripRepository) GetByID(ctx context.Context, createdBy, tripID int64) (t *domain.Trip, err error) {
	query := tripSelect + `
		WHERE t.id = $1 AND t.created_by = $2` + tripGroupBy

	ctx, end := database.TraceQuery(ctx, "GetTrip", query)
	defer func() { end(err) }()

	t, err = scanTrip(r.pool.QueryRow(ctx, query, tripID, createdBy))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("trip", tripID)
	}
	if err != nil {
		return nil, fmt.Errorf("get trip: %w", err)
	}
	return t, nil
}

// ListByCreator returns the student's trips newest first.
func (r *TripRepository) ListByCreator(ctx context.Context, createdBy int64) (trips []domain.Trip, err error) {
	query := tripSelect + `
		WHERE t.created_by = $1` + tripGroupBy + `
		ORDER BY t.created_at DESC`

	ctx, end := database.TraceQuery(ctx, "ListTrips", query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query, createdBy)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	defer rows.Close()

	trips = []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan trip: %w", err)
		}
		trips = append(trips, *t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trips: %w", err)
	}
	return trips, nil
}

func scanTrip(row pgx.Row) (*domain.Trip, error) {
	var (
		t             domain.Trip
		itineraryJSON []byte
	)
	err := row.Scan(&t.ID, &t.Destination, &t.Days, &t.EstimatedBudget, &t.CreatedBy,
		&t.Status, &t.AISuggestions, &t.CreatedAt, &itineraryJSON)
	if err != nil {
		return nil, err
	}
	t.Itinerary = []domain.ItineraryItem{}
	if len(itineraryJSON) > 0 {
		if err := json.Unmarshal(itineraryJSON, &t.Itinerary); err != nil {
			return nil, fmt.Errorf("unmarshal itinerary: %w", err)
		}
	}
	return &t, nil
}

package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

const TripStatusPlanning = "planning"

var ErrInvalidTrip = errors.New("invalid trip")

type Trip struct {
	ID              int64           `json:"id"`
	Destination     string          `json:"destination"`
	Days            int             `json:"days"`
	EstimatedBudget decimal.Decimal `json:"estimated_budget"`
	CreatedBy       int64           `json:"created_by"`
	Status          string          `json:"status"`
	AISuggestions   string          `json:"ai_suggestions,omitempty"`
	Itinerary       []ItineraryItem `json:"trip_itinerary"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ItineraryItem is a curated itinerary row attached to a trip.
type ItineraryItem struct {
	ID        int64  `json:"id"`
	TripID    int64  `json:"trip_id"`
	DayNumber int    `json:"day_number"`
	Title     string `json:"title"`
	Details   string `json:"details,omitempty"`
}

// NewTrip validates the planner form and returns a trip in planning status.
func NewTrip(destination string, days int, budget decimal.Decimal, createdBy int64) (*Trip, error) {
	if destination == "" || days < 1 || !budget.IsPositive() {
		return nil, ErrInvalidTrip
	}
	return &Trip{
		Destination:     destination,
		Days:            days,
		EstimatedBudget: budget,
		CreatedBy:       createdBy,
		Status:          TripStatusPlanning,
		Itinerary:       []ItineraryItem{},
	}, nil
}

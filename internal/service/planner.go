package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sajathahamed/Unilifmobile/internal/domain"
	"github.com/sajathahamed/Unilifmobile/internal/repository"
	apperrors "github.com/sajathahamed/Unilifmobile/pkg/errors"
)

// PlannerService creates trips and fills them with generated itineraries.
type PlannerService struct {
	trips  repository.TripRepository
	ai     AIClient
	quota  aiQuota
	logger *slog.Logger
}

// NewPlannerService creates a new trip planner service.
func NewPlannerService(trips repository.TripRepository, aiClient AIClient, quota repository.QuotaStore, logger *slog.Logger) *PlannerService {
	return &PlannerService{
		trips:  trips,
		ai:     aiClient,
		quota:  aiQuota{store: quota, logger: logger},
		logger: logger,
	}
}

// PlanTripInput holds the planner form as typed.
type PlanTripInput struct {
	Destination string `json:"destination" validate:"required,max=120"`
	Days        string `json:"days" validate:"required"`
	Budget      string `json:"budget" validate:"required"`
}

// PlannedTrip is a created trip. ItineraryError is set when the trip was
// saved but no itinerary could be generated.
type PlannedTrip struct {
	Trip           *domain.Trip `json:"trip"`
	ItineraryError string       `json:"itinerary_error,omitempty"`
}

// PlanTrip saves the trip, then asks the model for an itinerary. A failed
// generation keeps the trip.
func (s *PlannerService) PlanTrip(ctx context.Context, studentID int64, in PlanTripInput) (*PlannedTrip, error) {
	days, errDays := strconv.Atoi(strings.TrimSpace(in.Days))
	budget, errBudget := decimal.NewFromString(strings.TrimSpace(in.Budget))
	if errDays != nil || errBudget != nil {
		return nil, apperrors.InvalidInputf(domain.ErrInvalidTrip, "Days and budget must be numbers.")
	}

	trip, err := domain.NewTrip(strings.TrimSpace(in.Destination), days, budget, studentID)
	if err != nil {
		return nil, apperrors.InvalidInputf(err, "Enter a destination, at least one day and a budget above zero.")
	}
	if err := s.trips.Create(ctx, trip); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "trip created",
		slog.Int64("trip_id", trip.ID),
		slog.Int64("student_id", studentID),
	)

	if err := s.fillItinerary(ctx, studentID, trip); err != nil {
		var appErr *apperrors.AppError
		msg := "Could not generate an itinerary. You can try again later."
		if errors.As(err, &appErr) {
			msg = appErr.Message
		}
		return &PlannedTrip{Trip: trip, ItineraryError: msg}, nil
	}
	return &PlannedTrip{Trip: trip}, nil
}

// RegenerateItinerary replaces the itinerary of an existing trip.
func (s *PlannerService) RegenerateItinerary(ctx context.Context, studentID, tripID int64) (*domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, studentID, tripID)
	if err != nil {
		return nil, err
	}
	if err := s.fillItinerary(ctx, studentID, trip); err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperrors.BadGateway("AI_UNAVAILABLE", "Could not generate an itinerary. Please try again.", err)
	}
	return trip, nil
}

func (s *PlannerService) fillItinerary(ctx context.Context, studentID int64, trip *domain.Trip) error {
	if err := s.quota.check(ctx, studentID); err != nil {
		return err
	}

	text, err := s.ai.GenerateItinerary(ctx, trip.Destination, trip.Days, trip.EstimatedBudget)
	if err != nil {
		err = s.quota.observe(ctx, studentID, err)
		s.logger.WarnContext(ctx, "itinerary generation failed",
			slog.Int64("trip_id", trip.ID),
			slog.String("error", err.Error()),
		)
		return err
	}

	if err := s.trips.UpdateWithAI(ctx, trip.ID, text); err != nil {
		s.logger.ErrorContext(ctx, "failed to save itinerary",
			slog.Int64("trip_id", trip.ID),
			slog.String("error", err.Error()),
		)
		return err
	}
	trip.AISuggestions = text
	return nil
}

func (s *PlannerService) List(ctx context.Context, studentID int64) ([]domain.Trip, error) {
	return s.trips.ListByCreator(ctx, studentID)
}

package service

import (
	"context"
	"time"

	"github.com/sajathahamed/Unilifmobile/internal/domain"
	"github.com/sajathahamed/Unilifmobile/internal/repository"
)

type TimetableService struct {
	repo repository.TimetableRepository
	now  func() time.Time
}

// NewTimetableService creates a new timetable service.
func NewTimetableService(repo repository.TimetableRepository) *TimetableService {
	return &TimetableService{repo: repo, now: time.Now}
}

// Day is a student's classes on one weekday.
type Day struct {
	Day     string                  `json:"day"`
	Classes []domain.TimetableEntry `json:"classes"`
}

// ForDay returns the classes on day, or today when day is blank.
func (s *TimetableService) ForDay(ctx context.Context, studentID int64, day string) (*Day, error) {
	day = domain.DayOrToday(day, s.now())
	classes, err := s.repo.ListForDay(ctx, studentID, day)
	if err != nil {
		return nil, err
	}
	return &Day{Day: day, Classes: classes}, nil
}

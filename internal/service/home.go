package service

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sajathahamed/Unilifmobile/internal/domain"
	"github.com/sajathahamed/Unilifmobile/internal/repository"
)

// Dashboard sections, as listed in Dashboard.Failed.
const (
	SectionTimetable     = "timetable"
	SectionActiveOrder   = "active_order"
	SectionActiveLaundry = "active_laundry"
	SectionNotifications = "notifications"
)

const homeNotificationLimit = 3

// Dashboard is the home screen. A section that could not be loaded is empty
// and named in Failed.
type Dashboard struct {
	Day           string                  `json:"day"`
	Classes       []domain.TimetableEntry `json:"classes"`
	ActiveOrder   *domain.FoodOrder       `json:"active_order"`
	OrderProgress *domain.Progress        `json:"order_progress,omitempty"`
	ActiveLaundry *domain.LaundryOrder    `json:"active_laundry"`
	Notifications []domain.Notification   `json:"notifications"`
	Failed        []string                `json:"failed_sections"`
}

type HomeService struct {
	timetable     repository.TimetableRepository
	orders        repository.FoodOrderRepository
	laundry       repository.LaundryOrderRepository
	notifications repository.NotificationRepository
	logger        *slog.Logger
	now           func() time.Time
}

// NewHomeService creates a new home dashboard service.
func NewHomeService(
	timetable repository.TimetableRepository,
	orders repository.FoodOrderRepository,
	laundry repository.LaundryOrderRepository,
	notifications repository.NotificationRepository,
	logger *slog.Logger,
) *HomeService {
	return &HomeService{
		timetable:     timetable,
		orders:        orders,
		laundry:       laundry,
		notifications: notifications,
		logger:        logger,
		now:           time.Now,
	}
}

// Dashboard loads the four sections concurrently. It never fails as a whole.
func (s *HomeService) Dashboard(ctx context.Context, studentID int64) *Dashboard {
	d := &Dashboard{
		Day:           domain.DayOrToday("", s.now()),
		Classes:       []domain.TimetableEntry{},
		Notifications: []domain.Notification{},
		Failed:        []string{},
	}

	var mu sync.Mutex
	fail := func(section string, err error) {
		s.logger.WarnContext(ctx, "home section failed",
			slog.String("section", section),
			slog.Int64("student_id", studentID),
			slog.String("error", err.Error()),
		)
		mu.Lock()
		d.Failed = append(d.Failed, section)
		mu.Unlock()
	}

	var g errgroup.Group

	g.Go(func() error {
		classes, err := s.timetable.ListForDay(ctx, studentID, d.Day)
		if err != nil {
			fail(SectionTimetable, err)
			return nil
		}
		d.Classes = classes
		return nil
	})

	g.Go(func() error {
		order, err := s.orders.GetActiveForStudent(ctx, studentID)
		if err != nil {
			fail(SectionActiveOrder, err)
			return nil
		}
		if order != nil {
			p := domain.NewProgress(order.ID, order.Status)
			d.ActiveOrder, d.OrderProgress = order, &p
		}
		return nil
	})

	g.Go(func() error {
		orders, err := s.laundry.List(ctx, repository.LaundryOrderFilter{
			StudentID: studentID,
			Statuses:  domain.ActiveLaundryStatuses(),
			Limit:     1,
		})
		if err != nil {
			fail(SectionActiveLaundry, err)
			return nil
		}
		if len(orders) > 0 {
			d.ActiveLaundry = &orders[0]
		}
		return nil
	})

	g.Go(func() error {
		list, _, err := s.notifications.ListForUser(ctx, studentID, homeNotificationLimit, 0)
		if err != nil {
			fail(SectionNotifications, err)
			return nil
		}
		d.Notifications = list
		return nil
	})

	_ = g.Wait()
	sort.Strings(d.Failed)
	return d
}

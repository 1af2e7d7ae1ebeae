package service

import (
	"context"

	"github.com/sajathahamed/Unilifmobile/internal/domain"
	"github.com/sajathahamed/Unilifmobile/internal/repository"
	"github.com/sajathahamed/Unilifmobile/pkg/pagination"
)

type NotificationService struct {
	repo repository.NotificationRepository
}

// NewNotificationService creates a new notification service.
func NewNotificationService(repo repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// List returns one page of the student's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, studentID int64, p pagination.Params) (pagination.Result[domain.Notification], error) {
	list, total, err := s.repo.ListForUser(ctx, studentID, p.PerPage, p.Offset())
	if err != nil {
		return pagination.Result[domain.Notification]{}, err
	}
	return pagination.NewResult(list, total, p), nil
}

func (s *NotificationService) MarkRead(ctx context.Context, studentID, id int64) error {
	return s.repo.MarkRead(ctx, studentID, id)
}

package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/sajathahamed/Unilifmobile/internal/domain"
	"github.com/sajathahamed/Unilifmobile/pkg/database"
	apperrors "github.com/sajathahamed/Unilifmobile/pkg/errors"
)

// NotificationRepository implements repository.NotificationRepository using PostgreSQL.
type NotificationRepository struct {
	pool database.DBTX
}

// NewNotificationRepository creates a new PostgreSQL-backed notification repository.
func NewNotificationRepository(pool database.DBTX) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

// Create inserts an unread notification and sets its id and created_at.
func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) (err error) {
	query := `
		INSERT INTO notifications (user_id, title, message, is_read)
		VALUES ($1, $2, $3, false)
		RETURNING id, created_at`

	ctx, end := database.TraceQuery(ctx, "CreateNotification", query)
	defer func() { end(err) }()

	if err = r.pool.QueryRow(ctx, query, n.UserID, n.Title, n.Message).Scan(&n.ID, &n.CreatedAt); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	n.IsRead = false
	return nil
}

// ListForUser returns one page newest first. The total is read with a window
// function so a page costs one round trip.
func (r *NotificationRepository) ListForUser(ctx context.Context, userID int64, limit, offset int) (list []domain.Notification, total int, err error) {
	query, args, err := psql.
		Select("id", "user_id", "title", "message", "is_read", "created_at", "count(*) OVER() AS total").
		From("notifications").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build notification query: %w", err)
	}

	ctx, end := database.TraceQuery(ctx, "ListNotifications", query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	list = []domain.Notification{}
	for rows.Next() {
		var n domain.Notification
		if err = rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.IsRead, &n.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, n)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate notifications: %w", err)
	}
	return list, total, nil
}

// MarkRead flags the notification as read. It is a no-op when already read.
func (r *NotificationRepository) MarkRead(ctx context.Context, userID, id int64) (err error) {
	query := `UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`

	ctx, end := database.TraceQuery(ctx, "MarkNotificationRead", query)
	defer func() { end(err) }()

	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("notification", id)
	}
	return nil
}

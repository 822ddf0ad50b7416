package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mentron-app/mentron-api/internal/models"
)

// NotificationRepository persists per-user notifications. Every mutation is a
// single ownership-scoped statement, so there is no read-then-write window.
type NotificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository constructs a notification repository.
func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// ListByUser returns the newest notifications for a user, unread first, then
// read, newest first within each group, capped at limit rows.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `SELECT id, user_id, type, title, message, action_url, read, created_at
FROM notifications WHERE user_id = $1 ORDER BY read ASC, created_at DESC LIMIT $2`
	var notifications []models.Notification
	if err := r.db.SelectContext(ctx, &notifications, query, userID, limit); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

// CountUnread returns the exact unread total for a user, independent of any
// listing cap.
func (r *NotificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	const query = `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read = false`
	var count int
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead flips one notification to read, constrained to the owner. The
// returned row count is zero when the id does not exist or belongs to someone
// else; the two cases are indistinguishable on purpose.
func (r *NotificationRepository) MarkRead(ctx context.Context, userID, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return 0, fmt.Errorf("mark notification read: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("mark notification read: %w", err)
	}
	return affected, nil
}

// MarkAllRead flips every unread notification for the user in one statement.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = true WHERE user_id = $1 AND read = false`, userID); err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}

// InsertBatch stores a set of notifications produced by an announcement or
// event fan-out.
func (r *NotificationRepository) InsertBatch(ctx context.Context, notifications []models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range notifications {
		if notifications[i].ID == "" {
			notifications[i].ID = uuid.NewString()
		}
		if notifications[i].CreatedAt.IsZero() {
			notifications[i].CreatedAt = now
		}
	}
	const query = `INSERT INTO notifications (id, user_id, type, title, message, action_url, read, created_at)
VALUES (:id, :user_id, :type, :title, :message, :action_url, :read, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, notifications); err != nil {
		return fmt.Errorf("insert notifications: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// NotificationPrefs mirrors the mutable settings columns on admins.
type NotificationPrefs struct {
	EmailNotifications   bool `db:"email_notifications" json:"email_notifications"`
	DesktopNotifications bool `db:"desktop_notifications" json:"desktop_notifications"`
}

// AdminRepository manages the admins table beyond identity lookups.
type AdminRepository struct {
	db *sqlx.DB
}

// NewAdminRepository constructs an admin repository.
func NewAdminRepository(db *sqlx.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// GetNotificationPrefs reads the settings toggles for one admin.
func (r *AdminRepository) GetNotificationPrefs(ctx context.Context, id string) (*NotificationPrefs, error) {
	const query = `SELECT email_notifications, desktop_notifications FROM admins WHERE id = $1`
	var prefs NotificationPrefs
	if err := r.db.GetContext(ctx, &prefs, query, id); err != nil {
		return nil, err
	}
	return &prefs, nil
}

// UpdateNotificationPrefs stores the settings toggles for one admin.
func (r *AdminRepository) UpdateNotificationPrefs(ctx context.Context, id string, prefs NotificationPrefs) error {
	const query = `UPDATE admins SET email_notifications = $1, desktop_notifications = $2 WHERE id = $3`
	if _, err := r.db.ExecContext(ctx, query, prefs.EmailNotifications, prefs.DesktopNotifications, id); err != nil {
		return fmt.Errorf("update notification prefs: %w", err)
	}
	return nil
}

// ListIDs returns every admin id, used for announcement fan-out.
func (r *AdminRepository) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, `SELECT id FROM admins`); err != nil {
		return nil, fmt.Errorf("list admin ids: %w", err)
	}
	return ids, nil
}

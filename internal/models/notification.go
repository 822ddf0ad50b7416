package models

import "time"

// Notification represents a persisted per-user notification row. Only the
// Read flag is mutable after creation.
type Notification struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Type      string    `db:"type" json:"type"`
	Title     string    `db:"title" json:"title"`
	Message   string    `db:"message" json:"message"`
	ActionURL *string   `db:"action_url" json:"action_url,omitempty"`
	Read      bool      `db:"read" json:"read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// NotificationFeed is the notification list payload: a capped, ordered slice
// plus the exact unread total, counted independently of the cap.
type NotificationFeed struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unread_count"`
}

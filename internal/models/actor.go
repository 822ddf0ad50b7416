package models

import "time"

// Role identifies the closed set of actor roles in the dashboard hierarchy.
type Role string

const (
	RoleChairman Role = "chairman"
	RoleExecom   Role = "execom"
	RoleStudent  Role = "student"
)

// Admin represents a chairman or execom row in the admins table.
type Admin struct {
	ID                   string    `db:"id" json:"id"`
	Email                string    `db:"email" json:"email"`
	Role                 Role      `db:"role" json:"role"`
	Department           string    `db:"department" json:"department"`
	Position             string    `db:"position" json:"position"`
	IsActive             bool      `db:"is_active" json:"is_active"`
	EmailNotifications   bool      `db:"email_notifications" json:"email_notifications"`
	DesktopNotifications bool      `db:"desktop_notifications" json:"desktop_notifications"`
	CreatedAt            time.Time `db:"created_at" json:"created_at"`
}

// GroupMember represents a student row in the group_members table.
type GroupMember struct {
	ID         string    `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Email      string    `db:"email" json:"email"`
	RollNumber string    `db:"roll_number" json:"roll_number"`
	Department string    `db:"department" json:"department"`
	Year       int       `db:"year" json:"year"`
	GroupID    *string   `db:"group_id" json:"group_id,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Actor is the resolved identity used by every authorization decision. It is
// built once per request from exactly one role table and passed explicitly;
// no component performs its own session lookup.
type Actor struct {
	ID         string  `json:"id"`
	Role       Role    `json:"role"`
	Department string  `json:"department,omitempty"`
	Position   string  `json:"position,omitempty"`
	Year       int     `json:"year,omitempty"`
	GroupID    *string `json:"group_id,omitempty"`
}

// IsAdmin reports whether the actor holds an admin role record.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleChairman || a.Role == RoleExecom
}

package models

import "time"

// CalendarEvent represents an academic calendar entry. A NULL department
// marks a global event; a NULL year targets every year within its scope.
type CalendarEvent struct {
	ID          string     `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	EventType   string     `db:"event_type" json:"event_type"`
	EventDate   time.Time  `db:"event_date" json:"event_date"`
	EventTime   *time.Time `db:"event_time" json:"event_time,omitempty"`
	Department  *string    `db:"department" json:"department,omitempty"`
	Year        *int       `db:"year" json:"year,omitempty"`
	CreatedBy   string     `db:"created_by" json:"created_by"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

// CalendarScope narrows event listing to what an actor may see.
type CalendarScope struct {
	// AllDepartments lifts the department filter (chairman).
	AllDepartments bool
	// Department limits rows to a department plus global events.
	Department string
	// Year, when non-zero, additionally limits rows to a year plus
	// year-agnostic events (students).
	Year int
	// Month, when non-nil, limits rows to a calendar month.
	Month *time.Time
}

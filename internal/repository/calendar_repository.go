package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mentron-app/mentron-api/internal/models"
)

// CalendarRepository persists calendar events.
type CalendarRepository struct {
	db *sqlx.DB
}

// NewCalendarRepository constructs a calendar repository.
func NewCalendarRepository(db *sqlx.DB) *CalendarRepository {
	return &CalendarRepository{db: db}
}

// List returns events visible within the given scope, ascending by date.
// Global events (NULL department) are always included; year-agnostic events
// (NULL year) survive the year filter.
func (r *CalendarRepository) List(ctx context.Context, scope models.CalendarScope) ([]models.CalendarEvent, error) {
	where := []string{"1=1"}
	args := []interface{}{}

	if !scope.AllDepartments {
		where = append(where, fmt.Sprintf("(department IS NULL OR department = $%d)", len(args)+1))
		args = append(args, scope.Department)
	}
	if scope.Year != 0 {
		where = append(where, fmt.Sprintf("(year IS NULL OR year = $%d)", len(args)+1))
		args = append(args, scope.Year)
	}
	if scope.Month != nil {
		start := time.Date(scope.Month.Year(), scope.Month.Month(), 1, 0, 0, 0, 0, scope.Month.Location())
		where = append(where, fmt.Sprintf("event_date >= $%d", len(args)+1))
		args = append(args, start)
		where = append(where, fmt.Sprintf("event_date < $%d", len(args)+1))
		args = append(args, start.AddDate(0, 1, 0))
	}

	query := fmt.Sprintf(`SELECT id, title, description, event_type, event_date, event_time, department, year, created_by, created_at
FROM calendar_events WHERE %s ORDER BY event_date ASC, event_time ASC NULLS FIRST`, strings.Join(where, " AND "))

	var events []models.CalendarEvent
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, fmt.Errorf("list calendar events: %w", err)
	}
	return events, nil
}

// Create inserts a calendar event.
func (r *CalendarRepository) Create(ctx context.Context, event *models.CalendarEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO calendar_events (id, title, description, event_type, event_date, event_time, department, year, created_by, created_at)
VALUES (:id, :title, :description, :event_type, :event_date, :event_time, :department, :year, :created_by, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("create calendar event: %w", err)
	}
	return nil
}

// Delete removes an event and reports how many rows were hit, so the caller
// can distinguish a missing id from a successful delete.
func (r *CalendarRepository) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM calendar_events WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete calendar event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete calendar event: %w", err)
	}
	return affected, nil
}

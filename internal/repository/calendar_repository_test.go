package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentron-app/mentron-api/internal/models"
)

func TestCalendarListChairmanSeesAllDepartments(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCalendarRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "title", "description", "event_type", "event_date", "event_time", "department", "year", "created_by", "created_at"}).
		AddRow("e1", "Hackathon", "annual", "event", now, nil, "CS", nil, "adm-1", now).
		AddRow("e2", "Orientation", "", "event", now, nil, "EC", 1, "adm-1", now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, description, event_type, event_date, event_time, department, year, created_by, created_at\nFROM calendar_events WHERE 1=1 ORDER BY event_date ASC, event_time ASC NULLS FIRST")).
		WillReturnRows(rows)

	events, err := repo.List(context.Background(), models.CalendarScope{AllDepartments: true})
	require.NoError(t, err)
	assert.Len(t, events, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalendarListDepartmentScopeKeepsGlobalEvents(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCalendarRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "title", "description", "event_type", "event_date", "event_time", "department", "year", "created_by", "created_at"}).
		AddRow("e1", "College Day", "", "event", now, nil, nil, nil, "adm-1", now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, description, event_type, event_date, event_time, department, year, created_by, created_at\nFROM calendar_events WHERE 1=1 AND (department IS NULL OR department = $1) ORDER BY event_date ASC, event_time ASC NULLS FIRST")).
		WithArgs("EC").
		WillReturnRows(rows)

	events, err := repo.List(context.Background(), models.CalendarScope{Department: "EC"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Nil(t, events[0].Department)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalendarListStudentScopeAddsYearFilter(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCalendarRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM calendar_events WHERE 1=1 AND (department IS NULL OR department = $1) AND (year IS NULL OR year = $2)")).
		WithArgs("EC", 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "event_type", "event_date", "event_time", "department", "year", "created_by", "created_at"}))

	_, err := repo.List(context.Background(), models.CalendarScope{Department: "EC", Year: 2})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalendarDeleteReportsRowsAffected(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCalendarRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM calendar_events WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.Delete(context.Background(), "missing")
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalendarCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCalendarRepository(db)

	mock.ExpectExec("INSERT INTO calendar_events").WillReturnResult(sqlmock.NewResult(1, 1))

	event := &models.CalendarEvent{Title: "Tech Talk", EventType: "event", EventDate: time.Now(), CreatedBy: "adm-1"}
	require.NoError(t, repo.Create(context.Background(), event))
	assert.NotEmpty(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

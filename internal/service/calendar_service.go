package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mentron-app/mentron-api/internal/authz"
	"github.com/mentron-app/mentron-api/internal/models"
	appErrors "github.com/mentron-app/mentron-api/pkg/errors"
)

type calendarRepository interface {
	List(ctx context.Context, scope models.CalendarScope) ([]models.CalendarEvent, error)
	Create(ctx context.Context, event *models.CalendarEvent) error
	Delete(ctx context.Context, id string) (int64, error)
}

type eventNotifier interface {
	InsertBatch(ctx context.Context, notifications []models.Notification) error
}

// CalendarService gates calendar visibility and mutation by role. Deletion is
// a coarse admin privilege: the policy is consulted before any lookup, so a
// denied caller learns nothing about whether the id exists.
type CalendarService struct {
	repo      calendarRepository
	members   announceTargetRepository
	notifier  eventNotifier
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCalendarService constructs the service.
func NewCalendarService(repo calendarRepository, members announceTargetRepository, notifier eventNotifier, validate *validator.Validate, logger *zap.Logger) *CalendarService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalendarService{repo: repo, members: members, notifier: notifier, validator: validate, logger: logger}
}

// ListVisible returns the events the actor's role and department allow,
// optionally narrowed to one month.
func (s *CalendarService) ListVisible(ctx context.Context, actor models.Actor, month *time.Time) ([]models.CalendarEvent, error) {
	decision := authz.Authorize(actor, authz.ActionCalendarList, authz.ResourceRef{})
	if !decision.Allowed {
		return nil, appErrors.Clone(appErrors.ErrForbidden, decision.Reason)
	}

	scope := models.CalendarScope{Month: month}
	switch decision.Scope.Kind {
	case authz.ScopeAll:
		scope.AllDepartments = true
	case authz.ScopeDepartment:
		scope.Department = decision.Scope.Department
		scope.Year = decision.Scope.Year
	default:
		return nil, appErrors.Clone(appErrors.ErrForbidden, "no calendar scope")
	}

	events, err := s.repo.List(ctx, scope)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list calendar events")
	}
	if events == nil {
		events = []models.CalendarEvent{}
	}
	return events, nil
}

// CreateEventRequest describes a new calendar event. Department and Year left
// nil target everyone.
type CreateEventRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	EventType   string     `json:"event_type" validate:"required"`
	EventDate   time.Time  `json:"event_date" validate:"required"`
	EventTime   *time.Time `json:"event_time"`
	Department  *string    `json:"department"`
	Year        *int       `json:"year"`
}

// Create stores a new event and fans out a notification to every targeted
// group member. Fan-out failure does not roll back the event; the calendar
// row is authoritative and the notifications are best-effort.
func (s *CalendarService) Create(ctx context.Context, actor models.Actor, req CreateEventRequest) (*models.CalendarEvent, error) {
	decision := authz.Authorize(actor, authz.ActionCalendarCreate, authz.ResourceRef{})
	if !decision.Allowed {
		return nil, appErrors.Clone(appErrors.ErrForbidden, decision.Reason)
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}

	event := &models.CalendarEvent{
		Title:       req.Title,
		Description: req.Description,
		EventType:   req.EventType,
		EventDate:   req.EventDate,
		EventTime:   req.EventTime,
		Department:  req.Department,
		Year:        req.Year,
		CreatedBy:   actor.ID,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create calendar event")
	}

	s.notifyTargets(ctx, event)
	return event, nil
}

// Delete removes an event. The role check runs first: students are denied
// without a lookup, so a low-privilege caller cannot use delete responses to
// probe which event ids exist. Admins deleting a missing id get NotFound.
func (s *CalendarService) Delete(ctx context.Context, actor models.Actor, eventID string) error {
	decision := authz.Authorize(actor, authz.ActionCalendarDelete, authz.ResourceRef{})
	if !decision.Allowed {
		return appErrors.Clone(appErrors.ErrForbidden, decision.Reason)
	}
	if eventID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "event id is required")
	}

	affected, err := s.repo.Delete(ctx, eventID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete calendar event")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "calendar event not found")
	}
	return nil
}

func (s *CalendarService) notifyTargets(ctx context.Context, event *models.CalendarEvent) {
	targets, err := s.members.ListIDs(ctx, event.Department, event.Year)
	if err != nil {
		s.logger.Warn("event fan-out target lookup failed", zap.String("event_id", event.ID), zap.Error(err))
		return
	}
	if len(targets) == 0 {
		return
	}

	notifications := make([]models.Notification, 0, len(targets))
	for _, userID := range targets {
		notifications = append(notifications, models.Notification{
			UserID:  userID,
			Type:    "event",
			Title:   "New Event Scheduled",
			Message: fmt.Sprintf("Event Scheduled: %s on %s", event.Title, event.EventDate.Format("2006-01-02")),
		})
	}
	if err := s.notifier.InsertBatch(ctx, notifications); err != nil {
		s.logger.Warn("event fan-out failed", zap.String("event_id", event.ID), zap.Error(err))
	}
}

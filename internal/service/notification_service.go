package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mentron-app/mentron-api/internal/authz"
	"github.com/mentron-app/mentron-api/internal/models"
	appErrors "github.com/mentron-app/mentron-api/pkg/errors"
)

type notificationRepository interface {
	ListByUser(ctx context.Context, userID string, limit int) ([]models.Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, userID, id string) (int64, error)
	MarkAllRead(ctx context.Context, userID string) error
	InsertBatch(ctx context.Context, notifications []models.Notification) error
}

type announceTargetRepository interface {
	ListIDs(ctx context.Context, department *string, year *int) ([]string, error)
}

type adminIDLister interface {
	ListIDs(ctx context.Context) ([]string, error)
}

// NotificationService owns the notification lifecycle: listing, the
// unread→read transitions, and admin broadcast fan-out. Nothing else about a
// notification is mutable here.
type NotificationService struct {
	repo      notificationRepository
	members   announceTargetRepository
	admins    adminIDLister
	validator *validator.Validate
	logger    *zap.Logger
	listLimit int
}

// NewNotificationService constructs the service.
func NewNotificationService(repo notificationRepository, members announceTargetRepository, admins adminIDLister, validate *validator.Validate, logger *zap.Logger, listLimit int) *NotificationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if listLimit <= 0 {
		listLimit = 50
	}
	return &NotificationService{repo: repo, members: members, admins: admins, validator: validate, logger: logger, listLimit: listLimit}
}

// List returns the actor's notification feed: unread first, newest first,
// capped, with the exact unread count computed independently of the cap.
func (s *NotificationService) List(ctx context.Context, actor models.Actor) (*models.NotificationFeed, error) {
	decision := authz.Authorize(actor, authz.ActionNotificationsView, authz.ResourceRef{})
	if !decision.Allowed {
		return nil, appErrors.Clone(appErrors.ErrForbidden, decision.Reason)
	}

	notifications, err := s.repo.ListByUser(ctx, decision.Scope.OwnerID, s.listLimit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list notifications")
	}
	unread, err := s.repo.CountUnread(ctx, decision.Scope.OwnerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count unread notifications")
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return &models.NotificationFeed{Notifications: notifications, UnreadCount: unread}, nil
}

// MarkRead transitions one owned notification to read. Re-reading an already
// read notification is a no-op success. An id that is missing or owned by
// another actor yields NotFound either way, so callers cannot probe for the
// existence of other users' notifications.
func (s *NotificationService) MarkRead(ctx context.Context, actor models.Actor, notificationID string) error {
	decision := authz.Authorize(actor, authz.ActionNotificationsView, authz.ResourceRef{})
	if !decision.Allowed {
		return appErrors.Clone(appErrors.ErrForbidden, decision.Reason)
	}
	if notificationID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "notification id is required")
	}

	affected, err := s.repo.MarkRead(ctx, decision.Scope.OwnerID, notificationID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark notification read")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "notification not found")
	}
	return nil
}

// MarkAllRead transitions every unread notification owned by the actor in a
// single statement. Repeating the call has no further effect.
func (s *NotificationService) MarkAllRead(ctx context.Context, actor models.Actor) error {
	decision := authz.Authorize(actor, authz.ActionNotificationsView, authz.ResourceRef{})
	if !decision.Allowed {
		return appErrors.Clone(appErrors.ErrForbidden, decision.Reason)
	}
	if err := s.repo.MarkAllRead(ctx, decision.Scope.OwnerID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark notifications read")
	}
	return nil
}

// AnnounceRequest describes an admin broadcast.
type AnnounceRequest struct {
	Title    string `json:"title" validate:"required"`
	Message  string `json:"message" validate:"required"`
	Audience string `json:"target_audience" validate:"required,oneof=all students admins"`
}

// AnnounceResult reports how many users were notified.
type AnnounceResult struct {
	Notified int `json:"notified"`
}

// Announce fans a broadcast out to every user in the target audience as
// individual unread notifications, signed with the announcing admin's
// position.
func (s *NotificationService) Announce(ctx context.Context, actor models.Actor, req AnnounceRequest) (*AnnounceResult, error) {
	decision := authz.Authorize(actor, authz.ActionAnnounce, authz.ResourceRef{})
	if !decision.Allowed {
		return nil, appErrors.Clone(appErrors.ErrForbidden, decision.Reason)
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid announcement payload")
	}

	var targets []string
	audience := strings.ToLower(req.Audience)
	if audience == "all" || audience == "students" {
		ids, err := s.members.ListIDs(ctx, nil, nil)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to collect student targets")
		}
		targets = append(targets, ids...)
	}
	if audience == "all" || audience == "admins" {
		ids, err := s.admins.ListIDs(ctx)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to collect admin targets")
		}
		targets = append(targets, ids...)
	}

	signedBy := actor.Position
	if signedBy == "" {
		signedBy = "Admin"
	}
	notifications := make([]models.Notification, 0, len(targets))
	for _, userID := range targets {
		notifications = append(notifications, models.Notification{
			UserID:  userID,
			Type:    "admin",
			Title:   fmt.Sprintf("📢 %s", req.Title),
			Message: fmt.Sprintf("%s\n\n— %s", req.Message, signedBy),
		})
	}
	if err := s.repo.InsertBatch(ctx, notifications); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store announcement")
	}

	s.logger.Info("announcement delivered",
		zap.String("announced_by", actor.ID),
		zap.String("audience", audience),
		zap.Int("notified", len(targets)),
	)
	return &AnnounceResult{Notified: len(targets)}, nil
}

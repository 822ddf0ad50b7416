package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/mentron-app/mentron-api/internal/authz"
	"github.com/mentron-app/mentron-api/internal/models"
	"github.com/mentron-app/mentron-api/internal/repository"
	appErrors "github.com/mentron-app/mentron-api/pkg/errors"
)

type settingsRepository interface {
	GetNotificationPrefs(ctx context.Context, id string) (*repository.NotificationPrefs, error)
	UpdateNotificationPrefs(ctx context.Context, id string, prefs repository.NotificationPrefs) error
}

// SettingsService manages the per-admin notification toggles. The policy pins
// settings to the owning account; there is no cross-admin read or write.
type SettingsService struct {
	repo   settingsRepository
	logger *zap.Logger
}

// NewSettingsService constructs the service.
func NewSettingsService(repo settingsRepository, logger *zap.Logger) *SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{repo: repo, logger: logger}
}

// Get returns the actor's own notification preferences.
func (s *SettingsService) Get(ctx context.Context, actor models.Actor) (*repository.NotificationPrefs, error) {
	decision := authz.Authorize(actor, authz.ActionSettingsView, authz.ResourceRef{OwnerID: actor.ID})
	if !decision.Allowed {
		return nil, appErrors.Clone(appErrors.ErrForbidden, decision.Reason)
	}

	prefs, err := s.repo.GetNotificationPrefs(ctx, decision.Scope.OwnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "settings not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load settings")
	}
	return prefs, nil
}

// Update stores the actor's own notification preferences.
func (s *SettingsService) Update(ctx context.Context, actor models.Actor, prefs repository.NotificationPrefs) error {
	decision := authz.Authorize(actor, authz.ActionSettingsUpdate, authz.ResourceRef{OwnerID: actor.ID})
	if !decision.Allowed {
		return appErrors.Clone(appErrors.ErrForbidden, decision.Reason)
	}

	if err := s.repo.UpdateNotificationPrefs(ctx, decision.Scope.OwnerID, prefs); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update settings")
	}
	s.logger.Info("settings updated", zap.String("admin_id", actor.ID))
	return nil
}

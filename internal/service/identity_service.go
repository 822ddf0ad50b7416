package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/mentron-app/mentron-api/internal/models"
	appErrors "github.com/mentron-app/mentron-api/pkg/errors"
)

type identityRepository interface {
	GetAdmin(ctx context.Context, id string) (*models.Admin, error)
	GetGroupMember(ctx context.Context, id string) (*models.GroupMember, error)
}

// IdentityService maps a verified identity onto exactly one role record.
// Resolution happens on every request; caching a role here would open a
// stale-privilege window.
type IdentityService struct {
	repo   identityRepository
	logger *zap.Logger
}

// NewIdentityService constructs an identity service.
func NewIdentityService(repo identityRepository, logger *zap.Logger) *IdentityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IdentityService{repo: repo, logger: logger}
}

// Resolve looks up the role record for a verified user id. The admin table is
// probed first; the data-integrity invariant says an id never appears in both
// tables, so the order is a tie-break, not arbitration. An identity with no
// role record fails closed with ErrRoleNotFound, which is terminal for the
// request.
func (s *IdentityService) Resolve(ctx context.Context, userID string) (*models.Actor, error) {
	if userID == "" {
		return nil, appErrors.ErrUnauthorized
	}

	admin, err := s.repo.GetAdmin(ctx, userID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve admin role")
	}
	if admin != nil {
		if !admin.IsActive {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "account is inactive")
		}
		return &models.Actor{
			ID:         admin.ID,
			Role:       admin.Role,
			Department: admin.Department,
			Position:   admin.Position,
		}, nil
	}

	member, err := s.repo.GetGroupMember(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("identity has no role record", zap.String("user_id", userID))
			return nil, appErrors.ErrRoleNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve member role")
	}

	return &models.Actor{
		ID:         member.ID,
		Role:       models.RoleStudent,
		Department: member.Department,
		Year:       member.Year,
		GroupID:    member.GroupID,
	}, nil
}

package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/mentron-app/mentron-api/internal/authz"
	"github.com/mentron-app/mentron-api/internal/models"
	"github.com/mentron-app/mentron-api/internal/repository"
	appErrors "github.com/mentron-app/mentron-api/pkg/errors"
)

type memberRoster interface {
	List(ctx context.Context, filter repository.MemberFilter) ([]models.GroupMember, int, error)
}

// HierarchyService exposes the member roster to admins. Chairman sees every
// department; execom listings are pinned to the execom's own department
// regardless of what filter the caller sends.
type HierarchyService struct {
	repo   memberRoster
	logger *zap.Logger
}

// NewHierarchyService constructs the service.
func NewHierarchyService(repo memberRoster, logger *zap.Logger) *HierarchyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HierarchyService{repo: repo, logger: logger}
}

// ListMembers returns the roster page the actor's scope allows. An execom
// asking for another department is denied outright rather than silently
// re-scoped, so the caller learns the filter was rejected.
func (s *HierarchyService) ListMembers(ctx context.Context, actor models.Actor, filter repository.MemberFilter) ([]models.GroupMember, *models.Pagination, error) {
	decision := authz.Authorize(actor, authz.ActionHierarchyView, authz.ResourceRef{Department: filter.Department})
	if !decision.Allowed {
		return nil, nil, appErrors.Clone(appErrors.ErrForbidden, decision.Reason)
	}

	if decision.Scope.Kind == authz.ScopeDepartment {
		filter.Department = decision.Scope.Department
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}

	members, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list members")
	}
	if members == nil {
		members = []models.GroupMember{}
	}

	pagination := &models.Pagination{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalCount: total,
	}
	return members, pagination, nil
}

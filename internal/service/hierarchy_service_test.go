package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mentron-app/mentron-api/internal/models"
	"github.com/mentron-app/mentron-api/internal/repository"
	appErrors "github.com/mentron-app/mentron-api/pkg/errors"
)

type fakeMemberRoster struct {
	members []models.GroupMember
	total   int
	filter  repository.MemberFilter
	calls   int
}

func (f *fakeMemberRoster) List(_ context.Context, filter repository.MemberFilter) ([]models.GroupMember, int, error) {
	f.calls++
	f.filter = filter
	return f.members, f.total, nil
}

func TestHierarchyServiceChairmanSeesAnyDepartment(t *testing.T) {
	repo := &fakeMemberRoster{members: []models.GroupMember{{ID: "stu-1"}}, total: 40}
	svc := NewHierarchyService(repo, zap.NewNop())

	chairman := models.Actor{ID: "adm-1", Role: models.RoleChairman, Department: "CSE"}
	members, pagination, err := svc.ListMembers(context.Background(), chairman, repository.MemberFilter{Department: "ECE", Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, members, 1)
	assert.Equal(t, "ECE", repo.filter.Department)
	assert.Equal(t, 2, pagination.Page)
	assert.Equal(t, 10, pagination.PageSize)
	assert.Equal(t, 40, pagination.TotalCount)
}

func TestHierarchyServiceExecomPinnedToOwnDepartment(t *testing.T) {
	repo := &fakeMemberRoster{}
	svc := NewHierarchyService(repo, zap.NewNop())

	execom := models.Actor{ID: "adm-2", Role: models.RoleExecom, Department: "ECE"}
	_, _, err := svc.ListMembers(context.Background(), execom, repository.MemberFilter{})
	require.NoError(t, err)
	assert.Equal(t, "ECE", repo.filter.Department)
}

func TestHierarchyServiceExecomForeignDepartmentDenied(t *testing.T) {
	repo := &fakeMemberRoster{}
	svc := NewHierarchyService(repo, zap.NewNop())

	execom := models.Actor{ID: "adm-2", Role: models.RoleExecom, Department: "ECE"}
	_, _, err := svc.ListMembers(context.Background(), execom, repository.MemberFilter{Department: "CSE"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	assert.Equal(t, 0, repo.calls)
}

func TestHierarchyServiceDeniedForStudents(t *testing.T) {
	repo := &fakeMemberRoster{}
	svc := NewHierarchyService(repo, zap.NewNop())

	_, _, err := svc.ListMembers(context.Background(), models.Actor{ID: "stu-1", Role: models.RoleStudent}, repository.MemberFilter{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	assert.Equal(t, 0, repo.calls)
}

func TestHierarchyServiceDefaultsPagination(t *testing.T) {
	repo := &fakeMemberRoster{}
	svc := NewHierarchyService(repo, zap.NewNop())

	_, pagination, err := svc.ListMembers(context.Background(), models.Actor{ID: "adm-1", Role: models.RoleChairman}, repository.MemberFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 50, pagination.PageSize)
}

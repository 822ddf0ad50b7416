package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mentron-app/mentron-api/internal/models"
	appErrors "github.com/mentron-app/mentron-api/pkg/errors"
)

type fakeIdentityRepo struct {
	admin     *models.Admin
	member    *models.GroupMember
	adminErr  error
	memberErr error
}

func (f *fakeIdentityRepo) GetAdmin(context.Context, string) (*models.Admin, error) {
	if f.adminErr != nil {
		return nil, f.adminErr
	}
	return f.admin, nil
}

func (f *fakeIdentityRepo) GetGroupMember(context.Context, string) (*models.GroupMember, error) {
	if f.memberErr != nil {
		return nil, f.memberErr
	}
	return f.member, nil
}

func TestIdentityServiceResolveAdmin(t *testing.T) {
	repo := &fakeIdentityRepo{admin: &models.Admin{
		ID:         "adm-1",
		Role:       models.RoleChairman,
		Department: "CSE",
		Position:   "Chairman",
		IsActive:   true,
	}}
	svc := NewIdentityService(repo, zap.NewNop())

	actor, err := svc.Resolve(context.Background(), "adm-1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleChairman, actor.Role)
	assert.Equal(t, "CSE", actor.Department)
	assert.Equal(t, "Chairman", actor.Position)
	assert.True(t, actor.IsAdmin())
}

func TestIdentityServiceResolveInactiveAdmin(t *testing.T) {
	repo := &fakeIdentityRepo{admin: &models.Admin{ID: "adm-1", Role: models.RoleExecom, IsActive: false}}
	svc := NewIdentityService(repo, zap.NewNop())

	_, err := svc.Resolve(context.Background(), "adm-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestIdentityServiceResolveStudent(t *testing.T) {
	groupID := "grp-9"
	repo := &fakeIdentityRepo{
		adminErr: sql.ErrNoRows,
		member: &models.GroupMember{
			ID:         "stu-1",
			Department: "ECE",
			Year:       3,
			GroupID:    &groupID,
		},
	}
	svc := NewIdentityService(repo, zap.NewNop())

	actor, err := svc.Resolve(context.Background(), "stu-1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, actor.Role)
	assert.Equal(t, "ECE", actor.Department)
	assert.Equal(t, 3, actor.Year)
	assert.False(t, actor.IsAdmin())
}

func TestIdentityServiceResolveNoRoleRecord(t *testing.T) {
	repo := &fakeIdentityRepo{adminErr: sql.ErrNoRows, memberErr: sql.ErrNoRows}
	svc := NewIdentityService(repo, zap.NewNop())

	_, err := svc.Resolve(context.Background(), "ghost")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrRoleNotFound.Code, appErr.Code)
	assert.Equal(t, 403, appErr.Status)
}

func TestIdentityServiceResolveEmptyID(t *testing.T) {
	svc := NewIdentityService(&fakeIdentityRepo{}, zap.NewNop())

	_, err := svc.Resolve(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

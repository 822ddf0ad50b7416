package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mentron-app/mentron-api/internal/models"
)

var (
	chairman = models.Actor{ID: "adm-1", Role: models.RoleChairman, Department: "CS", Position: "Chairman"}
	execom   = models.Actor{ID: "adm-2", Role: models.RoleExecom, Department: "EC", Position: "Secretary"}
	student  = models.Actor{ID: "stu-1", Role: models.RoleStudent, Department: "EC", Year: 2}
)

func TestCalendarDeleteIsCoarseAdminPrivilege(t *testing.T) {
	assert.True(t, Authorize(chairman, ActionCalendarDelete, ResourceRef{}).Allowed)
	assert.True(t, Authorize(execom, ActionCalendarDelete, ResourceRef{OwnerID: "adm-1"}).Allowed)

	// Students are denied regardless of the target, even one that does
	// not exist.
	d := Authorize(student, ActionCalendarDelete, ResourceRef{OwnerID: student.ID})
	assert.False(t, d.Allowed)
	assert.Equal(t, "admin role required", d.Reason)
}

func TestCalendarListScopes(t *testing.T) {
	d := Authorize(chairman, ActionCalendarList, ResourceRef{})
	assert.True(t, d.Allowed)
	assert.Equal(t, ScopeAll, d.Scope.Kind)

	d = Authorize(execom, ActionCalendarList, ResourceRef{})
	assert.True(t, d.Allowed)
	assert.Equal(t, ScopeDepartment, d.Scope.Kind)
	assert.Equal(t, "EC", d.Scope.Department)
	assert.Zero(t, d.Scope.Year)

	d = Authorize(student, ActionCalendarList, ResourceRef{})
	assert.True(t, d.Allowed)
	assert.Equal(t, ScopeDepartment, d.Scope.Kind)
	assert.Equal(t, "EC", d.Scope.Department)
	assert.Equal(t, 2, d.Scope.Year)
}

func TestNotificationsAlwaysOwnScope(t *testing.T) {
	for _, actor := range []models.Actor{chairman, execom, student} {
		d := Authorize(actor, ActionNotificationsView, ResourceRef{})
		assert.True(t, d.Allowed)
		assert.Equal(t, ScopeOwn, d.Scope.Kind)
		assert.Equal(t, actor.ID, d.Scope.OwnerID)
	}
}

func TestSettingsSelfOnly(t *testing.T) {
	d := Authorize(execom, ActionSettingsUpdate, ResourceRef{OwnerID: execom.ID})
	assert.True(t, d.Allowed)
	assert.Equal(t, ScopeOwn, d.Scope.Kind)

	assert.False(t, Authorize(execom, ActionSettingsUpdate, ResourceRef{OwnerID: chairman.ID}).Allowed)
	assert.False(t, Authorize(student, ActionSettingsView, ResourceRef{OwnerID: student.ID}).Allowed)
}

func TestHierarchyDepartmentEquality(t *testing.T) {
	// Chairman crosses departments freely.
	assert.True(t, Authorize(chairman, ActionHierarchyView, ResourceRef{Department: "ME"}).Allowed)

	// Execom is pinned to their own department by equality.
	d := Authorize(execom, ActionHierarchyView, ResourceRef{Department: "EC"})
	assert.True(t, d.Allowed)
	assert.Equal(t, "EC", d.Scope.Department)

	assert.False(t, Authorize(execom, ActionHierarchyView, ResourceRef{Department: "CS"}).Allowed)
	assert.False(t, Authorize(student, ActionHierarchyView, ResourceRef{}).Allowed)
}

func TestAdminOnlyActions(t *testing.T) {
	for _, action := range []Action{ActionAnnounce, ActionCalendarCreate, ActionAnalyticsView, ActionExport} {
		assert.True(t, Authorize(chairman, action, ResourceRef{}).Allowed, string(action))
		assert.True(t, Authorize(execom, action, ResourceRef{}).Allowed, string(action))
		assert.False(t, Authorize(student, action, ResourceRef{}).Allowed, string(action))
	}
}

func TestUnknownActionDeniedByDefault(t *testing.T) {
	d := Authorize(chairman, Action("materials:purge"), ResourceRef{})
	assert.False(t, d.Allowed)
	assert.Equal(t, "no rule for action", d.Reason)
}

func TestUnknownRoleDenied(t *testing.T) {
	ghost := models.Actor{ID: "x", Role: models.Role("auditor")}
	assert.False(t, Authorize(ghost, ActionSearch, ResourceRef{}).Allowed)
	assert.False(t, Authorize(ghost, ActionNotificationsView, ResourceRef{}).Allowed)
}

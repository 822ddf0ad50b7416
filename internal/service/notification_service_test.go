package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mentron-app/mentron-api/internal/models"
	appErrors "github.com/mentron-app/mentron-api/pkg/errors"
)

type fakeNotificationRepo struct {
	notifications []models.Notification
	unread        int
	affected      int64
	inserted      []models.Notification

	listCalls        int
	markReadCalls    int
	markAllReadCalls int
	insertCalls      int
}

func (f *fakeNotificationRepo) ListByUser(_ context.Context, _ string, _ int) ([]models.Notification, error) {
	f.listCalls++
	return f.notifications, nil
}

func (f *fakeNotificationRepo) CountUnread(context.Context, string) (int, error) {
	return f.unread, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, _, _ string) (int64, error) {
	f.markReadCalls++
	return f.affected, nil
}

func (f *fakeNotificationRepo) MarkAllRead(context.Context, string) error {
	f.markAllReadCalls++
	return nil
}

func (f *fakeNotificationRepo) InsertBatch(_ context.Context, notifications []models.Notification) error {
	f.insertCalls++
	f.inserted = notifications
	return nil
}

type fakeMemberIDs struct {
	ids        []string
	department *string
	year       *int
	calls      int
}

func (f *fakeMemberIDs) ListIDs(_ context.Context, department *string, year *int) ([]string, error) {
	f.calls++
	f.department = department
	f.year = year
	return f.ids, nil
}

type fakeAdminIDs struct {
	ids   []string
	calls int
}

func (f *fakeAdminIDs) ListIDs(context.Context) ([]string, error) {
	f.calls++
	return f.ids, nil
}

func TestNotificationServiceList(t *testing.T) {
	repo := &fakeNotificationRepo{
		notifications: []models.Notification{{ID: "n-1", UserID: "stu-1", Read: false}},
		unread:        12,
	}
	svc := NewNotificationService(repo, &fakeMemberIDs{}, &fakeAdminIDs{}, nil, zap.NewNop(), 50)

	student := models.Actor{ID: "stu-1", Role: models.RoleStudent}
	feed, err := svc.List(context.Background(), student)
	require.NoError(t, err)
	assert.Len(t, feed.Notifications, 1)
	assert.Equal(t, 12, feed.UnreadCount)
}

func TestNotificationServiceListEmptyFeedIsNotNil(t *testing.T) {
	svc := NewNotificationService(&fakeNotificationRepo{}, &fakeMemberIDs{}, &fakeAdminIDs{}, nil, zap.NewNop(), 50)

	feed, err := svc.List(context.Background(), models.Actor{ID: "stu-1", Role: models.RoleStudent})
	require.NoError(t, err)
	assert.NotNil(t, feed.Notifications)
	assert.Empty(t, feed.Notifications)
}

func TestNotificationServiceMarkRead(t *testing.T) {
	repo := &fakeNotificationRepo{affected: 1}
	svc := NewNotificationService(repo, &fakeMemberIDs{}, &fakeAdminIDs{}, nil, zap.NewNop(), 50)

	err := svc.MarkRead(context.Background(), models.Actor{ID: "stu-1", Role: models.RoleStudent}, "n-1")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.markReadCalls)
}

func TestNotificationServiceMarkReadForeignIDIsNotFound(t *testing.T) {
	// The repository update is ownership scoped, so a notification belonging
	// to someone else affects zero rows. The caller sees the same NotFound a
	// truly missing id would produce.
	repo := &fakeNotificationRepo{affected: 0}
	svc := NewNotificationService(repo, &fakeMemberIDs{}, &fakeAdminIDs{}, nil, zap.NewNop(), 50)

	err := svc.MarkRead(context.Background(), models.Actor{ID: "stu-1", Role: models.RoleStudent}, "someone-elses")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestNotificationServiceMarkAllRead(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, &fakeMemberIDs{}, &fakeAdminIDs{}, nil, zap.NewNop(), 50)

	err := svc.MarkAllRead(context.Background(), models.Actor{ID: "stu-1", Role: models.RoleStudent})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.markAllReadCalls)
}

func TestNotificationServiceAnnounceToStudents(t *testing.T) {
	repo := &fakeNotificationRepo{}
	members := &fakeMemberIDs{ids: []string{"stu-1", "stu-2"}}
	admins := &fakeAdminIDs{ids: []string{"adm-2"}}
	svc := NewNotificationService(repo, members, admins, nil, zap.NewNop(), 50)

	chairman := models.Actor{ID: "adm-1", Role: models.RoleChairman, Position: "Chairman"}
	result, err := svc.Announce(context.Background(), chairman, AnnounceRequest{
		Title:    "Exam Schedule",
		Message:  "Finals begin Monday.",
		Audience: "students",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Notified)
	assert.Equal(t, 0, admins.calls)

	require.Len(t, repo.inserted, 2)
	assert.Equal(t, "📢 Exam Schedule", repo.inserted[0].Title)
	assert.Equal(t, "Finals begin Monday.\n\n— Chairman", repo.inserted[0].Message)
	assert.Equal(t, "admin", repo.inserted[0].Type)
}

func TestNotificationServiceAnnounceToAll(t *testing.T) {
	repo := &fakeNotificationRepo{}
	members := &fakeMemberIDs{ids: []string{"stu-1"}}
	admins := &fakeAdminIDs{ids: []string{"adm-2", "adm-3"}}
	svc := NewNotificationService(repo, members, admins, nil, zap.NewNop(), 50)

	execom := models.Actor{ID: "adm-1", Role: models.RoleExecom, Position: "Execom Lead"}
	result, err := svc.Announce(context.Background(), execom, AnnounceRequest{
		Title:    "Maintenance",
		Message:  "Portal down tonight.",
		Audience: "all",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Notified)
	assert.Nil(t, members.department)
	assert.Nil(t, members.year)
}

func TestNotificationServiceAnnounceInvalidAudience(t *testing.T) {
	svc := NewNotificationService(&fakeNotificationRepo{}, &fakeMemberIDs{}, &fakeAdminIDs{}, nil, zap.NewNop(), 50)

	_, err := svc.Announce(context.Background(), models.Actor{ID: "adm-1", Role: models.RoleChairman}, AnnounceRequest{
		Title:    "x",
		Message:  "y",
		Audience: "teachers",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestNotificationServiceAnnounceDeniedForStudents(t *testing.T) {
	repo := &fakeNotificationRepo{}
	members := &fakeMemberIDs{}
	svc := NewNotificationService(repo, members, &fakeAdminIDs{}, nil, zap.NewNop(), 50)

	_, err := svc.Announce(context.Background(), models.Actor{ID: "stu-1", Role: models.RoleStudent}, AnnounceRequest{
		Title:    "x",
		Message:  "y",
		Audience: "all",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	assert.Equal(t, 0, members.calls)
	assert.Equal(t, 0, repo.insertCalls)
}

package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mentron-app/mentron-api/internal/models"
	appErrors "github.com/mentron-app/mentron-api/pkg/errors"
)

type fakeAnalyticsRepo struct {
	signups       []time.Time
	materials     []models.Material
	notifications []time.Time

	signupCalls       int
	materialCalls     int
	notificationCalls int
}

func (f *fakeAnalyticsRepo) MemberSignupsSince(context.Context, time.Time) ([]time.Time, error) {
	f.signupCalls++
	return f.signups, nil
}

func (f *fakeAnalyticsRepo) MaterialsSince(context.Context, time.Time) ([]models.Material, error) {
	f.materialCalls++
	return f.materials, nil
}

func (f *fakeAnalyticsRepo) NotificationsSince(context.Context, time.Time) ([]time.Time, error) {
	f.notificationCalls++
	return f.notifications, nil
}

type stubCacheRepo struct {
	store map[string][]byte
}

func (s *stubCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	payload, ok := s.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(payload, dest)
}

func (s *stubCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if s.store == nil {
		s.store = make(map[string][]byte)
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.store[key] = payload
	return nil
}

func (s *stubCacheRepo) DeleteByPattern(context.Context, string) error {
	return nil
}

func TestAnalyticsServiceBucketLast7Days(t *testing.T) {
	svc := NewAnalyticsService(&fakeAnalyticsRepo{}, nil, zap.NewNop(), 0)
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

	stamps := []time.Time{
		now,                      // today, late afternoon
		now.AddDate(0, 0, -1),    // yesterday
		now.AddDate(0, 0, -6),    // window edge, still counted
		now.AddDate(0, 0, -7),    // one day too old, dropped
		now.Add(-14 * time.Hour), // today by calendar day despite crossing hours
	}

	counts := svc.BucketLast7Days(now, stamps)
	assert.Equal(t, models.WeeklySeries{1, 0, 0, 0, 0, 1, 2}, counts)
	assert.Equal(t, 4, counts.Total())
}

func TestAnalyticsServiceBucketNormalizesToMidnight(t *testing.T) {
	svc := NewAnalyticsService(&fakeAnalyticsRepo{}, nil, zap.NewNop(), 0)

	// Just after midnight vs just before the next one: same calendar day,
	// same bucket, regardless of the near-24h gap between them.
	now := time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC)
	early := time.Date(2025, 6, 15, 0, 1, 0, 0, time.UTC)

	counts := svc.BucketLast7Days(now, []time.Time{early, now})
	assert.Equal(t, 2, counts[6])
}

func TestAnalyticsServiceWeeklyViewTrend(t *testing.T) {
	svc := NewAnalyticsService(&fakeAnalyticsRepo{}, nil, zap.NewNop(), 0)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	materials := []models.Material{
		{ViewCount: 10, CreatedAt: now},
		{ViewCount: 5, CreatedAt: now},
		{ViewCount: 7, CreatedAt: now.AddDate(0, 0, -3)},
		{ViewCount: 99, CreatedAt: now.AddDate(0, 0, -10)}, // outside window
	}

	views := svc.WeeklyViewTrend(now, materials)
	assert.Equal(t, models.WeeklySeries{0, 0, 0, 7, 0, 0, 15}, views)
}

func TestGrowth(t *testing.T) {
	cases := []struct {
		name     string
		current  int
		previous int
		want     string
	}{
		{"both zero", 0, 0, "0%"},
		{"from zero", 5, 0, "+100%"},
		{"positive", 150, 100, "+50.0%"},
		{"negative", 50, 100, "-50.0%"},
		{"flat", 100, 100, "+0.0%"},
		{"capped high", 200000, 1, "+999.0%"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Growth(tc.current, tc.previous))
		})
	}
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0, Percentage(5, 0))
	assert.Equal(t, 50, Percentage(1, 2))
	assert.Equal(t, 33, Percentage(1, 3))
	assert.Equal(t, 100, Percentage(3, 3))
}

func TestTrend(t *testing.T) {
	assert.Equal(t, models.TrendUp, Trend(5, 3))
	assert.Equal(t, models.TrendDown, Trend(3, 5))
	assert.Equal(t, models.TrendNeutral, Trend(4, 4))
}

func TestAnalyticsServiceOverviewCaches(t *testing.T) {
	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	repo := &fakeAnalyticsRepo{
		signups:       []time.Time{now, now.AddDate(0, 0, -8)},
		materials:     []models.Material{{ViewCount: 3, CreatedAt: now}},
		notifications: []time.Time{now.AddDate(0, 0, -2)},
	}
	cacheSvc := NewCacheService(&stubCacheRepo{}, nil, time.Minute, zap.NewNop(), true)
	svc := NewAnalyticsService(repo, cacheSvc, zap.NewNop(), time.Minute)
	svc.now = func() time.Time { return now }

	chairman := models.Actor{ID: "adm-1", Role: models.RoleChairman}
	overview, cacheHit, err := svc.Overview(context.Background(), chairman)
	require.NoError(t, err)
	assert.False(t, cacheHit)
	assert.Equal(t, 1, repo.signupCalls)

	// One signup this week against one the week before.
	assert.Equal(t, 1, overview.Signups.WeekTotal)
	assert.Equal(t, "+0.0%", overview.Signups.Growth)
	assert.Equal(t, models.TrendNeutral, overview.Signups.Trend)

	// Materials grew from nothing.
	assert.Equal(t, "+100%", overview.Materials.Growth)
	assert.Equal(t, models.TrendUp, overview.Materials.Trend)
	assert.Equal(t, 3, overview.MaterialViews[6])

	cached, cacheHit2, err := svc.Overview(context.Background(), chairman)
	require.NoError(t, err)
	assert.True(t, cacheHit2)
	assert.Equal(t, 1, repo.signupCalls)
	assert.Equal(t, overview.Signups, cached.Signups)
}

func TestAnalyticsServiceOverviewDeniedForStudents(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	svc := NewAnalyticsService(repo, nil, zap.NewNop(), 0)

	_, _, err := svc.Overview(context.Background(), models.Actor{ID: "stu-1", Role: models.RoleStudent})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	assert.Equal(t, 0, repo.signupCalls)
}

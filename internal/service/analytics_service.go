package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mentron-app/mentron-api/internal/authz"
	"github.com/mentron-app/mentron-api/internal/models"
	appErrors "github.com/mentron-app/mentron-api/pkg/errors"
)

type analyticsRepository interface {
	MemberSignupsSince(ctx context.Context, since time.Time) ([]time.Time, error)
	MaterialsSince(ctx context.Context, since time.Time) ([]models.Material, error)
	NotificationsSince(ctx context.Context, since time.Time) ([]time.Time, error)
}

// AnalyticsService computes the rolling 7-day metrics behind the admin
// dashboard and caches the composed overview.
type AnalyticsService struct {
	repo     analyticsRepository
	cache    *CacheService
	logger   *zap.Logger
	now      func() time.Time
	cacheTTL time.Duration
}

// NewAnalyticsService constructs the service.
func NewAnalyticsService(repo analyticsRepository, cache *CacheService, logger *zap.Logger, cacheTTL time.Duration) *AnalyticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &AnalyticsService{repo: repo, cache: cache, logger: logger, now: time.Now, cacheTTL: cacheTTL}
}

// BucketLast7Days distributes timestamps into day buckets relative to now.
// Bucket 6 holds today, bucket 0 six days ago. Both ends are normalized to
// midnight before the day difference is taken, so a timestamp late tonight
// and one early this morning land in the same bucket. Items older than six
// days are dropped silently.
func (s *AnalyticsService) BucketLast7Days(now time.Time, stamps []time.Time) models.WeeklySeries {
	var counts models.WeeklySeries
	today := midnight(now)
	for _, stamp := range stamps {
		if stamp.IsZero() {
			continue
		}
		diff := daysBetween(midnight(stamp.In(now.Location())), today)
		if diff >= 0 && diff < 7 {
			counts[6-diff]++
		}
	}
	return counts
}

// WeeklyViewTrend aggregates material view counts into the day bucket each
// material was created in.
func (s *AnalyticsService) WeeklyViewTrend(now time.Time, materials []models.Material) models.WeeklySeries {
	var views models.WeeklySeries
	today := midnight(now)
	for _, m := range materials {
		if m.CreatedAt.IsZero() {
			continue
		}
		diff := daysBetween(midnight(m.CreatedAt.In(now.Location())), today)
		if diff >= 0 && diff < 7 {
			views[6-diff] += m.ViewCount
		}
	}
	return views
}

// Growth formats the period-over-period change as a signed percentage with
// one decimal place. A zero previous period is a defined edge case rather
// than a division: "+100%" when anything grew, "0%" otherwise. Extremes are
// capped at ±999 for display sanity.
func Growth(current, previous int) string {
	if previous == 0 {
		if current > 0 {
			return "+100%"
		}
		return "0%"
	}

	growth := (float64(current-previous) / float64(previous)) * 100
	if growth > 999 {
		growth = 999
	}
	if growth < -999 {
		growth = -999
	}

	if growth >= 0 {
		return fmt.Sprintf("+%.1f%%", growth)
	}
	return fmt.Sprintf("%.1f%%", growth)
}

// Percentage computes part-of-total bounded to [0, 100].
func Percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	pct := float64(part) / float64(total) * 100
	rounded := int(pct + 0.5)
	if rounded > 100 {
		return 100
	}
	if rounded < 0 {
		return 0
	}
	return rounded
}

// Trend reports the direction of a period-over-period comparison.
func Trend(current, previous int) models.TrendDirection {
	switch {
	case current > previous:
		return models.TrendUp
	case current < previous:
		return models.TrendDown
	default:
		return models.TrendNeutral
	}
}

// Overview composes the admin dashboard analytics: daily buckets plus
// week-over-week growth for signups, materials and notifications, and the
// view-weighted material trend. The payload is cached; the boolean reports a
// cache hit.
func (s *AnalyticsService) Overview(ctx context.Context, actor models.Actor) (*models.AnalyticsOverview, bool, error) {
	decision := authz.Authorize(actor, authz.ActionAnalyticsView, authz.ResourceRef{})
	if !decision.Allowed {
		return nil, false, appErrors.Clone(appErrors.ErrForbidden, decision.Reason)
	}

	const cacheKey = "analytics:overview"
	if s.cache.Enabled() {
		var cached models.AnalyticsOverview
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}

	now := s.now()
	// Two full weeks of history: the current window plus the one before it
	// for the growth comparison.
	since := midnight(now).AddDate(0, 0, -13)

	signups, err := s.repo.MemberSignupsSince(ctx, since)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load signup analytics")
	}
	materials, err := s.repo.MaterialsSince(ctx, since)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load material analytics")
	}
	notifications, err := s.repo.NotificationsSince(ctx, since)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load notification analytics")
	}

	materialStamps := make([]time.Time, 0, len(materials))
	for _, m := range materials {
		materialStamps = append(materialStamps, m.CreatedAt)
	}

	overview := &models.AnalyticsOverview{
		Signups:       s.metric(now, signups),
		Materials:     s.metric(now, materialStamps),
		Notifications: s.metric(now, notifications),
		MaterialViews: s.WeeklyViewTrend(now, materials),
	}

	if s.cache.Enabled() {
		_ = s.cache.Set(ctx, cacheKey, overview, s.cacheTTL)
	}
	return overview, false, nil
}

func (s *AnalyticsService) metric(now time.Time, stamps []time.Time) models.OverviewMetric {
	daily := s.BucketLast7Days(now, stamps)
	current := daily.Total()
	previous := s.previousWeekCount(now, stamps)
	return models.OverviewMetric{
		Daily:     daily,
		WeekTotal: current,
		Growth:    Growth(current, previous),
		Trend:     Trend(current, previous),
	}
}

func (s *AnalyticsService) previousWeekCount(now time.Time, stamps []time.Time) int {
	today := midnight(now)
	count := 0
	for _, stamp := range stamps {
		if stamp.IsZero() {
			continue
		}
		diff := daysBetween(midnight(stamp.In(now.Location())), today)
		if diff >= 7 && diff < 14 {
			count++
		}
	}
	return count
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween counts whole days from a to b, both already at midnight.
// AddDate is used instead of dividing a duration so DST transitions cannot
// skew the count.
func daysBetween(a, b time.Time) int {
	if a.After(b) {
		return -daysBetween(b, a)
	}
	days := 0
	for cursor := a; cursor.Before(b); cursor = cursor.AddDate(0, 0, 1) {
		days++
	}
	return days
}

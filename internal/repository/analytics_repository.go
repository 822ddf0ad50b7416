package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mentron-app/mentron-api/internal/models"
)

// AnalyticsRepository reads the timestamp collections the rolling analytics
// are computed from.
type AnalyticsRepository struct {
	db *sqlx.DB
}

// NewAnalyticsRepository constructs an analytics repository.
func NewAnalyticsRepository(db *sqlx.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// MemberSignupsSince returns signup timestamps newer than the cutoff.
func (r *AnalyticsRepository) MemberSignupsSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	var stamps []time.Time
	if err := r.db.SelectContext(ctx, &stamps, `SELECT created_at FROM group_members WHERE created_at >= $1`, since); err != nil {
		return nil, fmt.Errorf("member signups since: %w", err)
	}
	return stamps, nil
}

// MaterialsSince returns materials created after the cutoff, including view
// counts for the weekly view trend.
func (r *AnalyticsRepository) MaterialsSince(ctx context.Context, since time.Time) ([]models.Material, error) {
	const query = `SELECT id, title, subject, department, view_count, created_by, created_at
FROM materials WHERE created_at >= $1`
	var materials []models.Material
	if err := r.db.SelectContext(ctx, &materials, query, since); err != nil {
		return nil, fmt.Errorf("materials since: %w", err)
	}
	return materials, nil
}

// NotificationsSince returns notification creation timestamps newer than the
// cutoff.
func (r *AnalyticsRepository) NotificationsSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	var stamps []time.Time
	if err := r.db.SelectContext(ctx, &stamps, `SELECT created_at FROM notifications WHERE created_at >= $1`, since); err != nil {
		return nil, fmt.Errorf("notifications since: %w", err)
	}
	return stamps, nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mentron-app/mentron-api/internal/models"
)

// SearchRepository runs the two independent substring lookups behind the
// dashboard search box.
type SearchRepository struct {
	db *sqlx.DB
}

// NewSearchRepository constructs a search repository.
func NewSearchRepository(db *sqlx.DB) *SearchRepository {
	return &SearchRepository{db: db}
}

// Materials matches material titles case-insensitively, anywhere in the title.
func (r *SearchRepository) Materials(ctx context.Context, query string, limit int) ([]models.MaterialHit, error) {
	const q = `SELECT id, title, subject FROM materials WHERE title ILIKE $1 LIMIT $2`
	var hits []models.MaterialHit
	if err := r.db.SelectContext(ctx, &hits, q, "%"+query+"%", limit); err != nil {
		return nil, fmt.Errorf("search materials: %w", err)
	}
	return hits, nil
}

// Groups matches group names case-insensitively, anywhere in the name.
func (r *SearchRepository) Groups(ctx context.Context, query string, limit int) ([]models.GroupHit, error) {
	const q = `SELECT id, name FROM groups WHERE name ILIKE $1 LIMIT $2`
	var hits []models.GroupHit
	if err := r.db.SelectContext(ctx, &hits, q, "%"+query+"%", limit); err != nil {
		return nil, fmt.Errorf("search groups: %w", err)
	}
	return hits, nil
}

package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/mentron-app/mentron-api/internal/models"
)

// IdentityRepository reads the role tables. An id appears in at most one of
// them; resolution order is handled by the service.
type IdentityRepository struct {
	db *sqlx.DB
}

// NewIdentityRepository constructs an identity repository.
func NewIdentityRepository(db *sqlx.DB) *IdentityRepository {
	return &IdentityRepository{db: db}
}

// GetAdmin fetches an admin (chairman or execom) role record.
func (r *IdentityRepository) GetAdmin(ctx context.Context, id string) (*models.Admin, error) {
	const query = `SELECT id, email, role, department, position, is_active, email_notifications, desktop_notifications, created_at
FROM admins WHERE id = $1`
	var admin models.Admin
	if err := r.db.GetContext(ctx, &admin, query, id); err != nil {
		return nil, err
	}
	return &admin, nil
}

// GetGroupMember fetches a student role record.
func (r *IdentityRepository) GetGroupMember(ctx context.Context, id string) (*models.GroupMember, error) {
	const query = `SELECT id, name, email, roll_number, department, year, group_id, created_at
FROM group_members WHERE id = $1`
	var member models.GroupMember
	if err := r.db.GetContext(ctx, &member, query, id); err != nil {
		return nil, err
	}
	return &member, nil
}

package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/mentron-app/mentron-api/internal/models"
)

// MemberFilter narrows hierarchy listings.
type MemberFilter struct {
	Department string
	Year       int
	Page       int
	PageSize   int
}

// MemberRepository reads the group_members roster.
type MemberRepository struct {
	db *sqlx.DB
}

// NewMemberRepository constructs a member repository.
func NewMemberRepository(db *sqlx.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// List returns members matching the filter, newest first, with a total count.
func (r *MemberRepository) List(ctx context.Context, filter MemberFilter) ([]models.GroupMember, int, error) {
	base := "FROM group_members"
	where := []string{"1=1"}
	args := []interface{}{}

	if filter.Department != "" {
		where = append(where, fmt.Sprintf("department = $%d", len(args)+1))
		args = append(args, filter.Department)
	}
	if filter.Year != 0 {
		where = append(where, fmt.Sprintf("year = $%d", len(args)+1))
		args = append(args, filter.Year)
	}
	whereClause := strings.Join(where, " AND ")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT id, name, email, roll_number, department, year, group_id, created_at
%s WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`, base, whereClause, size, offset)
	var members []models.GroupMember
	if err := r.db.SelectContext(ctx, &members, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list group members: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s WHERE %s", base, whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count group members: %w", err)
	}
	return members, total, nil
}

// ListIDs returns member ids for notification fan-out, optionally narrowed by
// department and year.
func (r *MemberRepository) ListIDs(ctx context.Context, department *string, year *int) ([]string, error) {
	where := []string{"1=1"}
	args := []interface{}{}

	if department != nil {
		where = append(where, fmt.Sprintf("department = $%d", len(args)+1))
		args = append(args, *department)
	}
	if year != nil {
		where = append(where, fmt.Sprintf("year = $%d", len(args)+1))
		args = append(args, *year)
	}

	query := fmt.Sprintf("SELECT id FROM group_members WHERE %s", strings.Join(where, " AND "))
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("list member ids: %w", err)
	}
	return ids, nil
}

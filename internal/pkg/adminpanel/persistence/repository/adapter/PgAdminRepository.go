package adapter

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	adminpanel "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/adminpanel/application/domain"
)

type PgAdminRepository struct {
	pool *pgxpool.Pool
}

func NewPgAdminRepository(pool *pgxpool.Pool) *PgAdminRepository {
	return &PgAdminRepository{pool: pool}
}

func (r *PgAdminRepository) DashboardStats(ctx context.Context) (*adminpanel.DashboardStats, error) {
	stats := &adminpanel.DashboardStats{
		UsersByType:      make(map[string]int),
		ProjectsByStatus: make(map[string]int),
	}

	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM users),
			(SELECT count(*) FROM users WHERE created_at >= now() - interval '7 days'),
			(SELECT count(*) FROM reviews WHERE is_public),
			(SELECT coalesce(avg(rating), 0) FROM reviews WHERE is_public),
			(SELECT count(*) FROM content_reports WHERE status IN ('pending', 'under_review')),
			(SELECT count(*) FROM moderation_queue WHERE status = 'pending')
	`).Scan(&stats.TotalUsers, &stats.NewUsersWeek, &stats.TotalReviews,
		&stats.AverageRating, &stats.OpenReports, &stats.PendingQueue)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `SELECT user_type, count(*) FROM users GROUP BY user_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		stats.UsersByType[kind] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.pool.Query(ctx, `SELECT status, count(*) FROM projects GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		stats.ProjectsByStatus[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *PgAdminRepository) ListUsers(ctx context.Context, query string, limit, offset int) ([]adminpanel.UserSummary, int, error) {
	if limit <= 0 {
		limit = 20
	}

	where := ""
	args := []any{}
	if query != "" {
		where = `WHERE email ILIKE $1 OR username ILIKE $1 OR first_name ILIKE $1 OR last_name ILIKE $1`
		args = append(args, "%"+query+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	n := len(args)
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT id::text, email, username, first_name, last_name, user_type,
		       is_verified, is_staff, is_active, last_seen, created_at
		FROM users %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, n-1, n), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]adminpanel.UserSummary, 0)
	for rows.Next() {
		var u adminpanel.UserSummary
		if err := rows.Scan(&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName,
			&u.UserType, &u.IsVerified, &u.IsStaff, &u.IsActive, &u.LastSeen, &u.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	return out, total, rows.Err()
}

func (r *PgAdminRepository) SetUserActive(ctx context.Context, userID string, active bool) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET is_active = $2, updated_at = now()
		WHERE id = $1::uuid
	`, userID, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return adminpanel.ErrNotFound
	}
	return nil
}

func (r *PgAdminRepository) VerifyContractor(ctx context.Context, userID string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET is_verified = true, updated_at = now()
		WHERE id = $1::uuid AND user_type = 'contractor'
	`, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return adminpanel.ErrNotFound
	}
	return nil
}

func (r *PgAdminRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

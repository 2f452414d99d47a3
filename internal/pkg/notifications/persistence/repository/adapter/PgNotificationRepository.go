package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	notifications "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/application/domain"
)

type PgNotificationRepository struct {
	pool *pgxpool.Pool
}

func NewPgNotificationRepository(pool *pgxpool.Pool) *PgNotificationRepository {
	return &PgNotificationRepository{pool: pool}
}

func (r *PgNotificationRepository) Create(ctx context.Context, n notifications.Notification) (string, error) {
	extra, err := json.Marshal(n.ExtraData)
	if err != nil {
		return "", err
	}
	var id string
	err = r.pool.QueryRow(ctx, `
		INSERT INTO notifications (user_id, kind, title, message, related_kind, related_id, extra_data)
		VALUES ($1::uuid, $2, $3, $4, $5, $6::uuid, $7::jsonb)
		RETURNING id::text
	`, n.UserID, n.Kind, n.Title, n.Message, n.RelatedKind, n.RelatedID, extra).Scan(&id)
	return id, err
}

const notificationColumns = `id::text, user_id::text, kind, title, message, related_kind,
	related_id::text, extra_data, is_read, read_at, created_at`

func (r *PgNotificationRepository) List(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]notifications.Notification, int, error) {
	where := `user_id = $1::uuid`
	if unreadOnly {
		where += ` AND NOT is_read`
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM notifications WHERE `+where, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+notificationColumns+` FROM notifications
		WHERE `+where+` ORDER BY created_at DESC LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := collectNotifications(rows)
	return out, total, err
}

func (r *PgNotificationRepository) UnreadCount(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM notifications WHERE user_id = $1::uuid AND NOT is_read`, userID).Scan(&n)
	return n, err
}

func (r *PgNotificationRepository) MarkRead(ctx context.Context, userID string, ids []string) (int64, error) {
	ct, err := r.pool.Exec(ctx, `
		UPDATE notifications SET is_read = true, read_at = now()
		WHERE user_id = $1::uuid AND NOT is_read AND id = ANY($2::uuid[])`, userID, ids)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

func (r *PgNotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	ct, err := r.pool.Exec(ctx, `
		UPDATE notifications SET is_read = true, read_at = now()
		WHERE user_id = $1::uuid AND NOT is_read`, userID)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

func (r *PgNotificationRepository) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	ct, err := r.pool.Exec(ctx,
		`DELETE FROM notifications WHERE is_read AND created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

func (r *PgNotificationRepository) GetPreferences(ctx context.Context, userID string) (*notifications.Preferences, error) {
	p := notifications.DefaultPreferences(userID)
	err := r.pool.QueryRow(ctx, `
		SELECT email_project_updates, email_new_messages, email_applications, email_reviews, email_marketing,
		       push_project_updates, push_new_messages, push_applications, push_reviews,
		       inapp_project_updates, inapp_new_messages, inapp_applications, inapp_reviews
		FROM notification_preferences WHERE user_id = $1::uuid
	`, userID).Scan(
		&p.EmailProjectUpdates, &p.EmailNewMessages, &p.EmailApplications, &p.EmailReviews, &p.EmailMarketing,
		&p.PushProjectUpdates, &p.PushNewMessages, &p.PushApplications, &p.PushReviews,
		&p.InAppProjectUpdates, &p.InAppNewMessages, &p.InAppApplications, &p.InAppReviews,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		// No stored row means defaults apply.
		return &p, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PgNotificationRepository) UpsertPreferences(ctx context.Context, p notifications.Preferences) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO notification_preferences (
			user_id, email_project_updates, email_new_messages, email_applications, email_reviews,
			email_marketing, push_project_updates, push_new_messages, push_applications, push_reviews,
			inapp_project_updates, inapp_new_messages, inapp_applications, inapp_reviews)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (user_id) DO UPDATE SET
			email_project_updates = EXCLUDED.email_project_updates,
			email_new_messages = EXCLUDED.email_new_messages,
			email_applications = EXCLUDED.email_applications,
			email_reviews = EXCLUDED.email_reviews,
			email_marketing = EXCLUDED.email_marketing,
			push_project_updates = EXCLUDED.push_project_updates,
			push_new_messages = EXCLUDED.push_new_messages,
			push_applications = EXCLUDED.push_applications,
			push_reviews = EXCLUDED.push_reviews,
			inapp_project_updates = EXCLUDED.inapp_project_updates,
			inapp_new_messages = EXCLUDED.inapp_new_messages,
			inapp_applications = EXCLUDED.inapp_applications,
			inapp_reviews = EXCLUDED.inapp_reviews,
			updated_at = now()
	`, p.UserID, p.EmailProjectUpdates, p.EmailNewMessages, p.EmailApplications, p.EmailReviews,
		p.EmailMarketing, p.PushProjectUpdates, p.PushNewMessages, p.PushApplications, p.PushReviews,
		p.InAppProjectUpdates, p.InAppNewMessages, p.InAppApplications, p.InAppReviews)
	return err
}

func (r *PgNotificationRepository) GetRecipient(ctx context.Context, userID string) (*notifications.Recipient, error) {
	var (
		rec       notifications.Recipient
		firstName string
		username  string
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id::text, email, first_name, username FROM users WHERE id = $1::uuid AND is_active`,
		userID).Scan(&rec.UserID, &rec.Email, &firstName, &username)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notifications.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	rec.Name = firstName
	if rec.Name == "" {
		rec.Name = username
	}
	return &rec, nil
}

func (r *PgNotificationRepository) ListUsersWithUnread(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 500
	}
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT n.user_id::text
		FROM notifications n
		JOIN users u ON u.id = n.user_id
		WHERE NOT n.is_read AND u.is_active
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *PgNotificationRepository) ListUnread(ctx context.Context, userID string, limit int) ([]notifications.Notification, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+notificationColumns+` FROM notifications
		WHERE user_id = $1::uuid AND NOT is_read
		ORDER BY created_at DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectNotifications(rows)
}

func collectNotifications(rows pgx.Rows) ([]notifications.Notification, error) {
	var out []notifications.Notification
	for rows.Next() {
		var (
			n     notifications.Notification
			extra []byte
		)
		if err := rows.Scan(&n.ID, &n.UserID, &n.Kind, &n.Title, &n.Message, &n.RelatedKind,
			&n.RelatedID, &extra, &n.IsRead, &n.ReadAt, &n.CreatedAt); err != nil {
			return nil, err
		}
		if len(extra) > 0 {
			if err := json.Unmarshal(extra, &n.ExtraData); err != nil {
				return nil, err
			}
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

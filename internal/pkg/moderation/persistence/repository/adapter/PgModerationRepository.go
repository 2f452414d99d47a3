package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	moderation "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/moderation/application/domain"
)

type PgModerationRepository struct {
	pool *pgxpool.Pool
}

func NewPgModerationRepository(pool *pgxpool.Pool) *PgModerationRepository {
	return &PgModerationRepository{pool: pool}
}

func (r *PgModerationRepository) FetchContentText(ctx context.Context, kind, id string) (string, error) {
	var query string
	switch kind {
	case moderation.ContentReview:
		query = `SELECT title || ' ' || comment FROM reviews WHERE id = $1::uuid`
	case moderation.ContentMessage:
		query = `SELECT COALESCE(body, '') FROM messages WHERE id = $1::uuid`
	case moderation.ContentProject:
		query = `SELECT title || ' ' || description FROM projects WHERE id = $1::uuid`
	case moderation.ContentProfile:
		query = `SELECT bio FROM users WHERE id = $1::uuid`
	case moderation.ContentReviewReply:
		query = `SELECT response_text FROM review_responses WHERE id = $1::uuid`
	case moderation.ContentApplication:
		query = `SELECT cover_letter FROM project_applications WHERE id = $1::uuid`
	default:
		return "", moderation.ErrUnknownContentKind
	}

	var text string
	err := r.pool.QueryRow(ctx, query, id).Scan(&text)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", moderation.ErrNotFound
	}
	return text, err
}

func (r *PgModerationRepository) HideContent(ctx context.Context, kind, id string) error {
	var query string
	switch kind {
	case moderation.ContentReview:
		query = `UPDATE reviews SET is_public = false, updated_at = now() WHERE id = $1::uuid`
	case moderation.ContentProject:
		query = `UPDATE projects SET is_featured = false, status = 'draft', updated_at = now() WHERE id = $1::uuid AND status = 'published'`
	case moderation.ContentMessage:
		query = `UPDATE messages SET body = '[removed]', attachment_url = NULL WHERE id = $1::uuid`
	default:
		// Other kinds have no public toggle; the audit action is the record.
		return nil
	}
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func (r *PgModerationRepository) SaveFilter(ctx context.Context, f moderation.ContentFilter) (string, error) {
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO content_filters (content_kind, content_id, profanity_score, spam_score,
		                             toxicity_score, sentiment_score, risk_level, requires_review, is_approved)
		VALUES ($1, $2::uuid, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (content_kind, content_id) DO UPDATE SET
			profanity_score = EXCLUDED.profanity_score,
			spam_score = EXCLUDED.spam_score,
			toxicity_score = EXCLUDED.toxicity_score,
			sentiment_score = EXCLUDED.sentiment_score,
			risk_level = EXCLUDED.risk_level,
			requires_review = EXCLUDED.requires_review,
			is_approved = EXCLUDED.is_approved,
			processed_at = now()
		RETURNING id::text
	`, f.ContentKind, f.ContentID, f.Scores.Profanity, f.Scores.Spam,
		f.Scores.Toxicity, f.Scores.Sentiment, string(f.RiskLevel), f.RequiresReview, f.IsApproved).Scan(&id)
	return id, err
}

func (r *PgModerationRepository) GetFilter(ctx context.Context, kind, id string) (*moderation.ContentFilter, error) {
	var (
		f    moderation.ContentFilter
		risk string
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, content_kind, content_id::text, profanity_score, spam_score, toxicity_score,
		       sentiment_score, risk_level, requires_review, is_approved, processed_at
		FROM content_filters WHERE content_kind = $1 AND content_id = $2::uuid
	`, kind, id).Scan(&f.ID, &f.ContentKind, &f.ContentID, &f.Scores.Profanity, &f.Scores.Spam,
		&f.Scores.Toxicity, &f.Scores.Sentiment, &risk, &f.RequiresReview, &f.IsApproved, &f.ProcessedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, moderation.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	f.RiskLevel = moderation.RiskLevel(risk)
	return &f, nil
}

func (r *PgModerationRepository) ListActiveRules(ctx context.Context) ([]moderation.Rule, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, name, description, rule_type, keywords, patterns,
		       confidence_threshold, action, is_active, created_at, updated_at
		FROM moderation_rules WHERE is_active ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []moderation.Rule
	for rows.Next() {
		var (
			rule              moderation.Rule
			keywords, patterns []byte
		)
		if err := rows.Scan(&rule.ID, &rule.Name, &rule.Description, &rule.RuleType,
			&keywords, &patterns, &rule.ConfidenceThreshold, &rule.Action,
			&rule.IsActive, &rule.CreatedAt, &rule.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(keywords, &rule.Keywords); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(patterns, &rule.Patterns); err != nil {
			return nil, err
		}
		out = append(out, rule)
	}
	return out, rows.Err()
}

func (r *PgModerationRepository) CreateRule(ctx context.Context, rule moderation.Rule) (string, error) {
	keywords, err := json.Marshal(rule.Keywords)
	if err != nil {
		return "", err
	}
	patterns, err := json.Marshal(rule.Patterns)
	if err != nil {
		return "", err
	}
	var id string
	err = r.pool.QueryRow(ctx, `
		INSERT INTO moderation_rules (name, description, rule_type, keywords, patterns,
		                              confidence_threshold, action, is_active)
		VALUES ($1, $2, $3, $4::jsonb, $5::jsonb, $6, $7, $8)
		RETURNING id::text
	`, rule.Name, rule.Description, rule.RuleType, keywords, patterns,
		rule.ConfidenceThreshold, rule.Action, rule.IsActive).Scan(&id)
	return id, err
}

func (r *PgModerationRepository) SetRuleActive(ctx context.Context, id string, active bool) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE moderation_rules SET is_active = $2, updated_at = now() WHERE id = $1::uuid`, id, active)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return moderation.ErrNotFound
	}
	return nil
}

func (r *PgModerationRepository) CreateReport(ctx context.Context, rep moderation.Report) (string, error) {
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO content_reports (reporter_id, content_kind, content_id, report_type, description)
		VALUES ($1::uuid, $2, $3::uuid, $4, $5)
		RETURNING id::text
	`, rep.ReporterID, rep.ContentKind, rep.ContentID, rep.ReportType, rep.Description).Scan(&id)
	return id, err
}

func (r *PgModerationRepository) ListReports(ctx context.Context, status string, limit, offset int) ([]moderation.Report, int, error) {
	where := `1 = 1`
	args := []any{}
	if status != "" {
		where = `status = $1`
		args = append(args, status)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM content_reports WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	args = append(args, limit, offset)
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, reporter_id::text, content_kind, content_id::text, report_type, description,
		       status, reviewed_by::text, resolution_notes, resolved_at, created_at
		FROM content_reports WHERE `+where+`
		ORDER BY created_at DESC LIMIT $`+itoa(len(args)-1)+` OFFSET $`+itoa(len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []moderation.Report
	for rows.Next() {
		var rep moderation.Report
		if err := rows.Scan(&rep.ID, &rep.ReporterID, &rep.ContentKind, &rep.ContentID, &rep.ReportType,
			&rep.Description, &rep.Status, &rep.ReviewedBy, &rep.ResolutionNotes,
			&rep.ResolvedAt, &rep.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, rep)
	}
	return out, total, rows.Err()
}

func (r *PgModerationRepository) ResolveReport(ctx context.Context, reportID, moderatorID, status, notes string) error {
	ct, err := r.pool.Exec(ctx, `
		UPDATE content_reports
		SET status = $2, reviewed_by = $3::uuid, resolution_notes = $4, resolved_at = now(), updated_at = now()
		WHERE id = $1::uuid AND status IN ('pending', 'reviewing')
	`, reportID, status, moderatorID, notes)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return moderation.ErrAlreadyResolved
	}
	return nil
}

func (r *PgModerationRepository) EnqueueItem(ctx context.Context, item moderation.QueueItem) (string, error) {
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO moderation_queue (content_kind, content_id, priority, filter_id, notes)
		VALUES ($1, $2::uuid, $3, $4::uuid, $5)
		RETURNING id::text
	`, item.ContentKind, item.ContentID, item.Priority, item.FilterID, item.Notes).Scan(&id)
	return id, err
}

func (r *PgModerationRepository) GetQueueItem(ctx context.Context, itemID string) (*moderation.QueueItem, error) {
	var item moderation.QueueItem
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, content_kind, content_id::text, priority, status, assigned_to::text,
		       assigned_at, filter_id::text, notes, created_at, completed_at
		FROM moderation_queue WHERE id = $1::uuid`, itemID).Scan(
		&item.ID, &item.ContentKind, &item.ContentID, &item.Priority, &item.Status,
		&item.AssignedTo, &item.AssignedAt, &item.FilterID, &item.Notes,
		&item.CreatedAt, &item.CompletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, moderation.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *PgModerationRepository) ListQueue(ctx context.Context, status string, limit, offset int) ([]moderation.QueueItem, int, error) {
	where := `1 = 1`
	args := []any{}
	if status != "" {
		where = `status = $1`
		args = append(args, status)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM moderation_queue WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	args = append(args, limit, offset)
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, content_kind, content_id::text, priority, status, assigned_to::text,
		       assigned_at, filter_id::text, notes, created_at, completed_at
		FROM moderation_queue WHERE `+where+`
		ORDER BY CASE priority WHEN 'urgent' THEN 0 WHEN 'high' THEN 1 ELSE 2 END, created_at
		LIMIT $`+itoa(len(args)-1)+` OFFSET $`+itoa(len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []moderation.QueueItem
	for rows.Next() {
		var item moderation.QueueItem
		if err := rows.Scan(&item.ID, &item.ContentKind, &item.ContentID, &item.Priority, &item.Status,
			&item.AssignedTo, &item.AssignedAt, &item.FilterID, &item.Notes,
			&item.CreatedAt, &item.CompletedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, item)
	}
	return out, total, rows.Err()
}

func (r *PgModerationRepository) AssignQueueItem(ctx context.Context, itemID, moderatorID string) error {
	ct, err := r.pool.Exec(ctx, `
		UPDATE moderation_queue
		SET assigned_to = $2::uuid, assigned_at = now(), status = 'in_progress', updated_at = now()
		WHERE id = $1::uuid AND status = 'pending'
	`, itemID, moderatorID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return moderation.ErrNotFound
	}
	return nil
}

func (r *PgModerationRepository) CompleteQueueItem(ctx context.Context, itemID, notes string) error {
	ct, err := r.pool.Exec(ctx, `
		UPDATE moderation_queue
		SET status = 'completed', notes = $2, completed_at = now(), updated_at = now()
		WHERE id = $1::uuid AND status <> 'completed'
	`, itemID, notes)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return moderation.ErrNotFound
	}
	return nil
}

func (r *PgModerationRepository) RecordAction(ctx context.Context, a moderation.Action) (string, error) {
	meta := a.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return "", err
	}
	var id string
	err = r.pool.QueryRow(ctx, `
		INSERT INTO moderation_actions (content_kind, content_id, action, reason, moderator_id,
		                                is_automated, rule_id, report_id, metadata)
		VALUES ($1, $2::uuid, $3, $4, $5::uuid, $6, $7::uuid, $8::uuid, $9::jsonb)
		RETURNING id::text
	`, a.ContentKind, a.ContentID, a.Action, a.Reason, a.ModeratorID,
		a.IsAutomated, a.RuleID, a.ReportID, raw).Scan(&id)
	return id, err
}

func (r *PgModerationRepository) ListActions(ctx context.Context, kind, id string) ([]moderation.Action, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, content_kind, content_id::text, action, reason, moderator_id::text,
		       is_automated, rule_id::text, report_id::text, metadata, created_at
		FROM moderation_actions WHERE content_kind = $1 AND content_id = $2::uuid
		ORDER BY created_at DESC`, kind, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []moderation.Action
	for rows.Next() {
		var (
			a    moderation.Action
			meta []byte
		)
		if err := rows.Scan(&a.ID, &a.ContentKind, &a.ContentID, &a.Action, &a.Reason, &a.ModeratorID,
			&a.IsAutomated, &a.RuleID, &a.ReportID, &meta, &a.CreatedAt); err != nil {
			return nil, err
		}
		if len(meta) > 0 {
			if err := json.Unmarshal(meta, &a.Metadata); err != nil {
				return nil, err
			}
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func itoa(n int) string { return strconv.Itoa(n) }

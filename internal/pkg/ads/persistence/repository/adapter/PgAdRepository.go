package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	ads "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/ads/application/domain"
)

type PgAdRepository struct {
	pool *pgxpool.Pool
}

func NewPgAdRepository(pool *pgxpool.Pool) *PgAdRepository {
	return &PgAdRepository{pool: pool}
}

const adColumns = `id::text, title, image_url, target_url, placement, starts_at, ends_at,
	impressions_count, clicks_count, is_active, created_at, updated_at`

func (r *PgAdRepository) Create(ctx context.Context, a ads.Advertisement) (string, error) {
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO advertisements (title, image_url, target_url, placement, starts_at, ends_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id::text
	`, a.Title, a.ImageURL, a.TargetURL, a.Placement, a.StartsAt, a.EndsAt).Scan(&id)
	return id, err
}

func (r *PgAdRepository) Get(ctx context.Context, adID string) (*ads.Advertisement, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+adColumns+` FROM advertisements WHERE id = $1::uuid`, adID)
	return scanAd(row)
}

func (r *PgAdRepository) List(ctx context.Context, limit, offset int) ([]ads.Advertisement, int, error) {
	if limit <= 0 {
		limit = 20
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM advertisements`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+adColumns+`
		FROM advertisements
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := collectAds(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PgAdRepository) ListLive(ctx context.Context, placement string, limit int) ([]ads.Advertisement, error) {
	if limit <= 0 {
		limit = 5
	}

	// Impressions are bumped in the same statement so a served banner is
	// always counted.
	rows, err := r.pool.Query(ctx, `
		UPDATE advertisements SET
			impressions_count = impressions_count + 1,
			updated_at = now()
		WHERE id IN (
			SELECT id FROM advertisements
			WHERE placement = $1
			  AND is_active
			  AND starts_at <= now()
			  AND (ends_at IS NULL OR ends_at > now())
			ORDER BY created_at DESC
			LIMIT $2
		)
		RETURNING `+adColumns+`
	`, placement, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAds(rows)
}

func (r *PgAdRepository) RecordClick(ctx context.Context, adID string) (string, error) {
	var target string
	err := r.pool.QueryRow(ctx, `
		UPDATE advertisements SET
			clicks_count = clicks_count + 1,
			updated_at = now()
		WHERE id = $1::uuid AND is_active
		RETURNING target_url
	`, adID).Scan(&target)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ads.ErrNotFound
	}
	return target, err
}

func (r *PgAdRepository) SetActive(ctx context.Context, adID string, active bool) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE advertisements SET is_active = $2, updated_at = now()
		WHERE id = $1::uuid
	`, adID, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ads.ErrNotFound
	}
	return nil
}

func scanAd(row pgx.Row) (*ads.Advertisement, error) {
	var a ads.Advertisement
	err := row.Scan(&a.ID, &a.Title, &a.ImageURL, &a.TargetURL, &a.Placement,
		&a.StartsAt, &a.EndsAt, &a.ImpressionsCount, &a.ClicksCount,
		&a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ads.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func collectAds(rows pgx.Rows) ([]ads.Advertisement, error) {
	out := make([]ads.Advertisement, 0)
	for rows.Next() {
		a, err := scanAd(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

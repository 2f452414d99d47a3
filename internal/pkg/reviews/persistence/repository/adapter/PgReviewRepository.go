package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	reviews "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/reviews/application/domain"
)

type PgReviewRepository struct {
	pool *pgxpool.Pool
}

func NewPgReviewRepository(pool *pgxpool.Pool) *PgReviewRepository {
	return &PgReviewRepository{pool: pool}
}

const reviewColumns = `r.id::text, r.client_id::text, r.contractor_id::text, r.project_id::text,
	r.rating, r.quality_rating, r.communication_rating, r.timeliness_rating,
	r.professionalism_rating, r.title, r.comment, r.is_verified, r.is_featured,
	r.is_public, r.created_at, r.updated_at`

func (r *PgReviewRepository) CreateReview(ctx context.Context, rv reviews.Review) (string, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	var id string
	err = tx.QueryRow(ctx, `
		INSERT INTO reviews (client_id, contractor_id, project_id, rating, quality_rating,
		                     communication_rating, timeliness_rating, professionalism_rating,
		                     title, comment, is_verified)
		VALUES ($1::uuid, $2::uuid, $3::uuid, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id::text
	`, rv.ClientID, rv.ContractorID, rv.ProjectID, rv.Rating, rv.QualityRating,
		rv.CommunicationRating, rv.TimelinessRating, rv.ProfessionalismRating,
		rv.Title, rv.Comment, rv.IsVerified).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return "", reviews.ErrDuplicate
		}
		return "", err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE contractor_profiles SET
			rating_average = (rating_average * rating_count + $2) / (rating_count + 1),
			rating_count = rating_count + 1,
			updated_at = now()
		WHERE id = $1::uuid
	`, rv.ContractorID, rv.Rating); err != nil {
		return "", err
	}
	return id, tx.Commit(ctx)
}

func (r *PgReviewRepository) GetReview(ctx context.Context, reviewID string) (*reviews.Review, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+reviewColumns+` FROM reviews r WHERE r.id = $1::uuid`, reviewID)
	rv, err := scanReview(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, reviews.ErrNotFound
	}
	return rv, err
}

func (r *PgReviewRepository) ListByContractor(ctx context.Context, contractorID string, limit, offset int) ([]reviews.Review, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM reviews WHERE contractor_id = $1::uuid AND is_public`,
		contractorID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+reviewColumns+`,
		       u.first_name || ' ' || u.last_name,
		       (SELECT count(*) FROM review_helpful_votes v WHERE v.review_id = r.id AND v.is_helpful),
		       rr.id::text, rr.response_text, rr.created_at
		FROM reviews r
		JOIN users u ON u.id = r.client_id
		LEFT JOIN review_responses rr ON rr.review_id = r.id
		WHERE r.contractor_id = $1::uuid AND r.is_public
		ORDER BY r.is_featured DESC, r.created_at DESC
		LIMIT $2 OFFSET $3
	`, contractorID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []reviews.Review
	for rows.Next() {
		var rv reviews.Review
		var respID, respText *string
		var respCreated *time.Time
		if err := rows.Scan(&rv.ID, &rv.ClientID, &rv.ContractorID, &rv.ProjectID,
			&rv.Rating, &rv.QualityRating, &rv.CommunicationRating, &rv.TimelinessRating,
			&rv.ProfessionalismRating, &rv.Title, &rv.Comment, &rv.IsVerified, &rv.IsFeatured,
			&rv.IsPublic, &rv.CreatedAt, &rv.UpdatedAt,
			&rv.ClientName, &rv.HelpfulCount, &respID, &respText, &respCreated); err != nil {
			return nil, 0, err
		}
		if respID != nil {
			rv.Response = &reviews.Response{
				ID:           *respID,
				ReviewID:     rv.ID,
				ResponseText: *respText,
				CreatedAt:    *respCreated,
			}
		}
		out = append(out, rv)
	}
	return out, total, rows.Err()
}

func (r *PgReviewRepository) HasCompletedProject(ctx context.Context, projectID, clientID, contractorID string) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM projects
			WHERE id = $1::uuid AND client_id = $2::uuid AND contractor_id = $3::uuid
			  AND status = 'completed'
		)
	`, projectID, clientID, contractorID).Scan(&ok)
	return ok, err
}

func (r *PgReviewRepository) ResolveContractor(ctx context.Context, userID string) (string, error) {
	var id string
	err := r.pool.QueryRow(ctx,
		`SELECT id::text FROM contractor_profiles WHERE user_id = $1::uuid`, userID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", reviews.ErrNotFound
	}
	return id, err
}

func (r *PgReviewRepository) ContractorUser(ctx context.Context, contractorID string) (string, error) {
	var id string
	err := r.pool.QueryRow(ctx,
		`SELECT user_id::text FROM contractor_profiles WHERE id = $1::uuid`, contractorID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", reviews.ErrNotFound
	}
	return id, err
}

func (r *PgReviewRepository) CreateResponse(ctx context.Context, resp reviews.Response) (string, error) {
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO review_responses (review_id, contractor_id, response_text)
		VALUES ($1::uuid, $2::uuid, $3)
		RETURNING id::text
	`, resp.ReviewID, resp.ContractorID, resp.ResponseText).Scan(&id)
	if isUniqueViolation(err) {
		return "", reviews.ErrAlreadyAnswered
	}
	return id, err
}

func (r *PgReviewRepository) VoteHelpful(ctx context.Context, v reviews.HelpfulVote) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO review_helpful_votes (review_id, user_id, is_helpful)
		VALUES ($1::uuid, $2::uuid, $3)
		ON CONFLICT (review_id, user_id) DO UPDATE SET is_helpful = EXCLUDED.is_helpful
	`, v.ReviewID, v.UserID, v.IsHelpful)
	return err
}

func scanReview(row pgx.Row) (*reviews.Review, error) {
	var rv reviews.Review
	err := row.Scan(&rv.ID, &rv.ClientID, &rv.ContractorID, &rv.ProjectID,
		&rv.Rating, &rv.QualityRating, &rv.CommunicationRating, &rv.TimelinessRating,
		&rv.ProfessionalismRating, &rv.Title, &rv.Comment, &rv.IsVerified, &rv.IsFeatured,
		&rv.IsPublic, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

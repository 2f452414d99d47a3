package adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	contractors "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/contractors/application/domain"
)

type PgContractorRepository struct {
	pool *pgxpool.Pool
}

func NewPgContractorRepository(pool *pgxpool.Pool) *PgContractorRepository {
	return &PgContractorRepository{pool: pool}
}

const profileColumns = `cp.id::text, cp.user_id::text, cp.business_name, cp.license_number,
	cp.insurance_verified, cp.experience_level, cp.hourly_rate_min, cp.hourly_rate_max,
	cp.availability_status, cp.response_time_hours, cp.completed_projects,
	cp.rating_average, cp.rating_count, cp.service_radius, cp.created_at, cp.updated_at,
	u.username, u.avatar_url, u.location, u.is_online`

func (r *PgContractorRepository) UpsertProfile(ctx context.Context, p contractors.Profile) (string, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	var id string
	err = tx.QueryRow(ctx, `
		INSERT INTO contractor_profiles (user_id, business_name, license_number, insurance_verified,
		                                 experience_level, hourly_rate_min, hourly_rate_max,
		                                 availability_status, response_time_hours, service_radius)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id) DO UPDATE SET
			business_name = EXCLUDED.business_name,
			license_number = EXCLUDED.license_number,
			experience_level = EXCLUDED.experience_level,
			hourly_rate_min = EXCLUDED.hourly_rate_min,
			hourly_rate_max = EXCLUDED.hourly_rate_max,
			availability_status = EXCLUDED.availability_status,
			response_time_hours = EXCLUDED.response_time_hours,
			service_radius = EXCLUDED.service_radius,
			updated_at = now()
		RETURNING id::text
	`, p.UserID, p.BusinessName, p.LicenseNumber, p.InsuranceVerified,
		string(p.ExperienceLevel), p.HourlyRateMin, p.HourlyRateMax,
		p.AvailabilityStatus, p.ResponseTimeHours, p.ServiceRadius).Scan(&id)
	if err != nil {
		return "", err
	}

	if err := replaceLinks(ctx, tx, "contractor_categories", "category_id", id, p.CategoryIDs); err != nil {
		return "", err
	}
	if err := replaceLinks(ctx, tx, "contractor_skills", "skill_id", id, p.SkillIDs); err != nil {
		return "", err
	}
	return id, tx.Commit(ctx)
}

func replaceLinks(ctx context.Context, tx pgx.Tx, table, column, contractorID string, ids []string) error {
	if ids == nil {
		return nil
	}
	if _, err := tx.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE contractor_id = $1::uuid`, table), contractorID); err != nil {
		return err
	}
	for _, id := range ids {
		if _, err := tx.Exec(ctx,
			fmt.Sprintf(`INSERT INTO %s (contractor_id, %s) VALUES ($1::uuid, $2::uuid) ON CONFLICT DO NOTHING`, table, column),
			contractorID, id); err != nil {
			return err
		}
	}
	return nil
}

func (r *PgContractorRepository) GetProfileByUserID(ctx context.Context, userID string) (*contractors.Profile, error) {
	return r.getProfile(ctx, `cp.user_id = $1::uuid`, userID)
}

func (r *PgContractorRepository) GetProfileByID(ctx context.Context, id string) (*contractors.Profile, error) {
	return r.getProfile(ctx, `cp.id = $1::uuid`, id)
}

func (r *PgContractorRepository) getProfile(ctx context.Context, where string, arg any) (*contractors.Profile, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+profileColumns+`
		FROM contractor_profiles cp
		JOIN users u ON u.id = cp.user_id
		WHERE `+where, arg)

	p, err := scanProfile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, contractors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	p.CategoryIDs, err = r.linkedIDs(ctx, `SELECT category_id::text FROM contractor_categories WHERE contractor_id = $1::uuid`, p.ID)
	if err != nil {
		return nil, err
	}
	p.SkillIDs, err = r.linkedIDs(ctx, `SELECT skill_id::text FROM contractor_skills WHERE contractor_id = $1::uuid`, p.ID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PgContractorRepository) linkedIDs(ctx context.Context, query, contractorID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, query, contractorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *PgContractorRepository) Search(ctx context.Context, f contractors.SearchFilter) ([]contractors.Profile, int, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	conds = append(conds, "u.is_active")
	if f.CategoryID != "" {
		add(`EXISTS (SELECT 1 FROM contractor_categories cc WHERE cc.contractor_id = cp.id AND cc.category_id = $%d::uuid)`, f.CategoryID)
	}
	if f.SkillID != "" {
		add(`EXISTS (SELECT 1 FROM contractor_skills cs WHERE cs.contractor_id = cp.id AND cs.skill_id = $%d::uuid)`, f.SkillID)
	}
	if f.City != "" {
		add(`u.location ILIKE '%%' || $%d || '%%'`, f.City)
	}
	if f.MinRating > 0 {
		add(`cp.rating_average >= $%d`, f.MinRating)
	}
	if f.MaxHourlyRate > 0 {
		add(`cp.hourly_rate_min <= $%d`, f.MaxHourlyRate)
	}
	if f.AvailableOnly {
		conds = append(conds, "cp.availability_status")
	}
	if f.VerifiedOnly {
		conds = append(conds, "cp.insurance_verified")
	}

	where := strings.Join(conds, " AND ")
	base := ` FROM contractor_profiles cp JOIN users u ON u.id = cp.user_id WHERE ` + where

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*)`+base, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	args = append(args, limit, f.Offset)
	rows, err := r.pool.Query(ctx,
		`SELECT `+profileColumns+base+
			fmt.Sprintf(` ORDER BY cp.rating_average DESC, cp.rating_count DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []contractors.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *p)
	}
	return out, total, rows.Err()
}

func scanProfile(row pgx.Row) (*contractors.Profile, error) {
	var (
		p     contractors.Profile
		level string
	)
	err := row.Scan(&p.ID, &p.UserID, &p.BusinessName, &p.LicenseNumber,
		&p.InsuranceVerified, &level, &p.HourlyRateMin, &p.HourlyRateMax,
		&p.AvailabilityStatus, &p.ResponseTimeHours, &p.CompletedProjects,
		&p.RatingAverage, &p.RatingCount, &p.ServiceRadius, &p.CreatedAt, &p.UpdatedAt,
		&p.DisplayName, &p.AvatarURL, &p.Location, &p.IsOnline)
	if err != nil {
		return nil, err
	}
	p.ExperienceLevel = contractors.ExperienceLevel(level)
	return &p, nil
}

func (r *PgContractorRepository) ListCategories(ctx context.Context) ([]contractors.Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, name, slug, icon, description, is_active, created_at
		FROM categories WHERE is_active ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []contractors.Category
	for rows.Next() {
		var c contractors.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Icon, &c.Description, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PgContractorRepository) ListSkills(ctx context.Context, categoryID string) ([]contractors.Skill, error) {
	query := `SELECT id::text, name, category_id::text, is_active, created_at FROM skills WHERE is_active`
	var args []any
	if categoryID != "" {
		query += ` AND category_id = $1::uuid`
		args = append(args, categoryID)
	}
	rows, err := r.pool.Query(ctx, query+` ORDER BY name`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []contractors.Skill
	for rows.Next() {
		var s contractors.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.CategoryID, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PgContractorRepository) ListPortfolio(ctx context.Context, contractorID string) ([]contractors.PortfolioItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, contractor_id::text, title, description, category_id::text,
		       project_date, project_cost, client_name, is_featured, created_at, updated_at
		FROM portfolio_items WHERE contractor_id = $1::uuid
		ORDER BY is_featured DESC, project_date DESC`, contractorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []contractors.PortfolioItem
	for rows.Next() {
		var item contractors.PortfolioItem
		if err := rows.Scan(&item.ID, &item.ContractorID, &item.Title, &item.Description, &item.CategoryID,
			&item.ProjectDate, &item.ProjectCost, &item.ClientName, &item.IsFeatured,
			&item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *PgContractorRepository) CreatePortfolioItem(ctx context.Context, item contractors.PortfolioItem) (string, error) {
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO portfolio_items (contractor_id, title, description, category_id, project_date,
		                             project_cost, client_name, is_featured)
		VALUES ($1::uuid, $2, $3, $4::uuid, $5, $6, $7, $8)
		RETURNING id::text
	`, item.ContractorID, item.Title, item.Description, item.CategoryID, item.ProjectDate,
		item.ProjectCost, item.ClientName, item.IsFeatured).Scan(&id)
	return id, err
}

func (r *PgContractorRepository) UpdatePortfolioItem(ctx context.Context, item contractors.PortfolioItem) error {
	ct, err := r.pool.Exec(ctx, `
		UPDATE portfolio_items
		SET title = $3, description = $4, category_id = $5::uuid, project_date = $6,
		    project_cost = $7, client_name = $8, is_featured = $9, updated_at = now()
		WHERE id = $1::uuid AND contractor_id = $2::uuid
	`, item.ID, item.ContractorID, item.Title, item.Description, item.CategoryID,
		item.ProjectDate, item.ProjectCost, item.ClientName, item.IsFeatured)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return contractors.ErrNotFound
	}
	return nil
}

func (r *PgContractorRepository) DeletePortfolioItem(ctx context.Context, contractorID, itemID string) error {
	ct, err := r.pool.Exec(ctx,
		`DELETE FROM portfolio_items WHERE id = $1::uuid AND contractor_id = $2::uuid`, itemID, contractorID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return contractors.ErrNotFound
	}
	return nil
}

func (r *PgContractorRepository) ListCertifications(ctx context.Context, contractorID string) ([]contractors.Certification, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, contractor_id::text, name, issuing_organization, issue_date,
		       expiry_date, is_verified, created_at
		FROM certifications WHERE contractor_id = $1::uuid ORDER BY issue_date DESC`, contractorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []contractors.Certification
	for rows.Next() {
		var cert contractors.Certification
		if err := rows.Scan(&cert.ID, &cert.ContractorID, &cert.Name, &cert.IssuingOrganization,
			&cert.IssueDate, &cert.ExpiryDate, &cert.IsVerified, &cert.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, cert)
	}
	return out, rows.Err()
}

func (r *PgContractorRepository) CreateCertification(ctx context.Context, cert contractors.Certification) (string, error) {
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO certifications (contractor_id, name, issuing_organization, issue_date, expiry_date)
		VALUES ($1::uuid, $2, $3, $4, $5)
		RETURNING id::text
	`, cert.ContractorID, cert.Name, cert.IssuingOrganization, cert.IssueDate, cert.ExpiryDate).Scan(&id)
	return id, err
}

func (r *PgContractorRepository) DeleteCertification(ctx context.Context, contractorID, certID string) error {
	ct, err := r.pool.Exec(ctx,
		`DELETE FROM certifications WHERE id = $1::uuid AND contractor_id = $2::uuid`, certID, contractorID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return contractors.ErrNotFound
	}
	return nil
}

package adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	projects "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/projects/application/domain"
)

type PgProjectRepository struct {
	pool *pgxpool.Pool
}

func NewPgProjectRepository(pool *pgxpool.Pool) *PgProjectRepository {
	return &PgProjectRepository{pool: pool}
}

const projectColumns = `id::text, client_id::text, contractor_id::text, title, description,
	category_id::text, budget_min, budget_max, status, priority, address, city, state,
	postal_code, latitude, longitude, start_date, end_date, deadline, progress_percentage,
	is_featured, views_count, applications_count, created_at, updated_at`

func (r *PgProjectRepository) CreateProject(ctx context.Context, p projects.Project) (string, error) {
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO projects (client_id, title, description, category_id, budget_min, budget_max,
		                      priority, address, city, state, postal_code, latitude, longitude,
		                      start_date, end_date, deadline)
		VALUES ($1::uuid, $2, $3, $4::uuid, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id::text
	`, p.ClientID, p.Title, p.Description, p.CategoryID, p.BudgetMin, p.BudgetMax,
		p.Priority, p.Address, p.City, p.State, p.PostalCode, p.Latitude, p.Longitude,
		p.StartDate, p.EndDate, p.Deadline).Scan(&id)
	return id, err
}

func (r *PgProjectRepository) GetProject(ctx context.Context, projectID string) (*projects.Project, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1::uuid`, projectID)
	p, err := scanProject(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, projects.ErrNotFound
	}
	return p, err
}

func (r *PgProjectRepository) ListProjects(ctx context.Context, f projects.SearchFilter) ([]projects.Project, int, error) {
	conds := []string{"1=1"}
	args := []any{}
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.CategoryID != "" {
		add("category_id = $%d::uuid", f.CategoryID)
	}
	if f.City != "" {
		add("city ILIKE $%d", f.City)
	}
	if f.ClientID != "" {
		add("client_id = $%d::uuid", f.ClientID)
	}
	if f.Priority != "" {
		add("priority = $%d", f.Priority)
	}
	if f.Query != "" {
		args = append(args, f.Query)
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(title ILIKE '%%' || $%d || '%%' OR description ILIKE '%%' || $%d || '%%')", n, n))
	}

	where := ""
	for i, c := range conds {
		if i == 0 {
			where = "WHERE " + c
			continue
		}
		where += " AND " + c
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM projects `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, f.Limit, f.Offset)
	rows, err := r.pool.Query(ctx, fmt.Sprintf(
		`SELECT %s FROM projects %s
		 ORDER BY is_featured DESC, created_at DESC
		 LIMIT $%d OFFSET $%d`,
		projectColumns, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []projects.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *p)
	}
	return out, total, rows.Err()
}

func (r *PgProjectRepository) UpdateProject(ctx context.Context, p projects.Project) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE projects SET
			title = $2, description = $3, category_id = $4::uuid, budget_min = $5, budget_max = $6,
			priority = $7, address = $8, city = $9, state = $10, postal_code = $11,
			latitude = $12, longitude = $13, start_date = $14, end_date = $15, deadline = $16,
			updated_at = now()
		WHERE id = $1::uuid
	`, p.ID, p.Title, p.Description, p.CategoryID, p.BudgetMin, p.BudgetMax,
		p.Priority, p.Address, p.City, p.State, p.PostalCode,
		p.Latitude, p.Longitude, p.StartDate, p.EndDate, p.Deadline)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return projects.ErrNotFound
	}
	return nil
}

func (r *PgProjectRepository) UpdateStatus(ctx context.Context, projectID, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE projects SET status = $2, updated_at = now() WHERE id = $1::uuid`,
		projectID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return projects.ErrNotFound
	}
	return nil
}

func (r *PgProjectRepository) IncrementViews(ctx context.Context, projectID string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE projects SET views_count = views_count + 1 WHERE id = $1::uuid`, projectID)
	return err
}

func (r *PgProjectRepository) SetProgress(ctx context.Context, projectID string, percentage int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE projects SET progress_percentage = $2, updated_at = now() WHERE id = $1::uuid`,
		projectID, percentage)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return projects.ErrNotFound
	}
	return nil
}

func (r *PgProjectRepository) ResolveContractor(ctx context.Context, userID string) (string, error) {
	var id string
	err := r.pool.QueryRow(ctx,
		`SELECT id::text FROM contractor_profiles WHERE user_id = $1::uuid`, userID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", projects.ErrNotFound
	}
	return id, err
}

func (r *PgProjectRepository) ContractorUser(ctx context.Context, contractorID string) (string, error) {
	var id string
	err := r.pool.QueryRow(ctx,
		`SELECT user_id::text FROM contractor_profiles WHERE id = $1::uuid`, contractorID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", projects.ErrNotFound
	}
	return id, err
}

const applicationColumns = `pa.id::text, pa.project_id::text, pa.contractor_id::text, pa.cover_letter,
	pa.proposed_budget, pa.proposed_timeline, pa.status, pa.applied_at, pa.updated_at,
	u.first_name || ' ' || u.last_name, cp.business_name`

func (r *PgProjectRepository) CreateApplication(ctx context.Context, a projects.Application) (string, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	var id string
	err = tx.QueryRow(ctx, `
		INSERT INTO project_applications (project_id, contractor_id, cover_letter, proposed_budget, proposed_timeline)
		VALUES ($1::uuid, $2::uuid, $3, $4, $5)
		RETURNING id::text
	`, a.ProjectID, a.ContractorID, a.CoverLetter, a.ProposedBudget, a.ProposedTimeline).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return "", projects.ErrDuplicate
		}
		return "", err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE projects SET applications_count = applications_count + 1 WHERE id = $1::uuid`,
		a.ProjectID); err != nil {
		return "", err
	}
	return id, tx.Commit(ctx)
}

func (r *PgProjectRepository) GetApplication(ctx context.Context, applicationID string) (*projects.Application, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+applicationColumns+`
		FROM project_applications pa
		JOIN contractor_profiles cp ON cp.id = pa.contractor_id
		JOIN users u ON u.id = cp.user_id
		WHERE pa.id = $1::uuid
	`, applicationID)
	a, err := scanApplication(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, projects.ErrNotFound
	}
	return a, err
}

func (r *PgProjectRepository) ListApplications(ctx context.Context, projectID string) ([]projects.Application, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+applicationColumns+`
		FROM project_applications pa
		JOIN contractor_profiles cp ON cp.id = pa.contractor_id
		JOIN users u ON u.id = cp.user_id
		WHERE pa.project_id = $1::uuid
		ORDER BY pa.applied_at
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectApplications(rows)
}

func (r *PgProjectRepository) ListContractorApplications(ctx context.Context, contractorID string) ([]projects.Application, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+applicationColumns+`
		FROM project_applications pa
		JOIN contractor_profiles cp ON cp.id = pa.contractor_id
		JOIN users u ON u.id = cp.user_id
		WHERE pa.contractor_id = $1::uuid
		ORDER BY pa.applied_at DESC
	`, contractorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectApplications(rows)
}

func (r *PgProjectRepository) SetApplicationStatus(ctx context.Context, applicationID, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE project_applications SET status = $2, updated_at = now() WHERE id = $1::uuid`,
		applicationID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return projects.ErrNotFound
	}
	return nil
}

func (r *PgProjectRepository) AcceptApplication(ctx context.Context, a projects.Application) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE project_applications SET status = $2, updated_at = now() WHERE id = $1::uuid`,
		a.ID, projects.ApplicationAccepted); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `
		UPDATE project_applications SET status = $3, updated_at = now()
		WHERE project_id = $1::uuid AND id <> $2::uuid AND status = $4
	`, a.ProjectID, a.ID, projects.ApplicationRejected, projects.ApplicationPending); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `
		UPDATE projects SET contractor_id = $2::uuid, status = $3, updated_at = now()
		WHERE id = $1::uuid
	`, a.ProjectID, a.ContractorID, projects.StatusInProgress); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

const milestoneColumns = `id::text, project_id::text, title, description, due_date, completion_date,
	status, payment_percentage, sort_order, created_at, updated_at`

func (r *PgProjectRepository) CreateMilestone(ctx context.Context, m projects.Milestone) (string, error) {
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO project_milestones (project_id, title, description, due_date, payment_percentage, sort_order)
		VALUES ($1::uuid, $2, $3, $4, $5, $6)
		RETURNING id::text
	`, m.ProjectID, m.Title, m.Description, m.DueDate, m.PaymentPercentage, m.SortOrder).Scan(&id)
	return id, err
}

func (r *PgProjectRepository) ListMilestones(ctx context.Context, projectID string) ([]projects.Milestone, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+milestoneColumns+` FROM project_milestones
		 WHERE project_id = $1::uuid ORDER BY sort_order, due_date`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []projects.Milestone
	for rows.Next() {
		m, err := scanMilestone(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (r *PgProjectRepository) UpdateMilestone(ctx context.Context, m projects.Milestone) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE project_milestones SET
			title = $3, description = $4, due_date = $5, completion_date = $6,
			status = $7, payment_percentage = $8, sort_order = $9, updated_at = now()
		WHERE id = $1::uuid AND project_id = $2::uuid
	`, m.ID, m.ProjectID, m.Title, m.Description, m.DueDate, m.CompletionDate,
		m.Status, m.PaymentPercentage, m.SortOrder)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return projects.ErrNotFound
	}
	return nil
}

func (r *PgProjectRepository) DeleteMilestone(ctx context.Context, projectID, milestoneID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM project_milestones WHERE id = $1::uuid AND project_id = $2::uuid`,
		milestoneID, projectID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return projects.ErrNotFound
	}
	return nil
}

func (r *PgProjectRepository) ListOverdueMilestones(ctx context.Context, asOf time.Time, limit int) ([]projects.Milestone, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+milestoneColumns+` FROM project_milestones
		WHERE status <> $1 AND due_date < $2
		ORDER BY due_date
		LIMIT $3
	`, projects.MilestoneCompleted, asOf, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []projects.Milestone
	for rows.Next() {
		m, err := scanMilestone(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (r *PgProjectRepository) CreateUpdate(ctx context.Context, u projects.Update) (string, error) {
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO project_updates (project_id, author_id, title, content, progress_percentage, milestone_id)
		VALUES ($1::uuid, $2::uuid, $3, $4, $5, $6::uuid)
		RETURNING id::text
	`, u.ProjectID, u.AuthorID, u.Title, u.Content, u.ProgressPercentage, u.MilestoneID).Scan(&id)
	return id, err
}

func (r *PgProjectRepository) ListUpdates(ctx context.Context, projectID string, limit, offset int) ([]projects.Update, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM project_updates WHERE project_id = $1::uuid`, projectID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT pu.id::text, pu.project_id::text, pu.author_id::text, pu.title, pu.content,
		       pu.progress_percentage, pu.milestone_id::text, pu.created_at,
		       u.first_name || ' ' || u.last_name
		FROM project_updates pu
		JOIN users u ON u.id = pu.author_id
		WHERE pu.project_id = $1::uuid
		ORDER BY pu.created_at DESC
		LIMIT $2 OFFSET $3
	`, projectID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []projects.Update
	for rows.Next() {
		var u projects.Update
		if err := rows.Scan(&u.ID, &u.ProjectID, &u.AuthorID, &u.Title, &u.Content,
			&u.ProgressPercentage, &u.MilestoneID, &u.CreatedAt, &u.AuthorName); err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	return out, total, rows.Err()
}

func (r *PgProjectRepository) MarkCompleted(ctx context.Context, projectID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var contractorID *string
	err = tx.QueryRow(ctx, `
		UPDATE projects SET status = $2, progress_percentage = 100, updated_at = now()
		WHERE id = $1::uuid
		RETURNING contractor_id::text
	`, projectID, projects.StatusCompleted).Scan(&contractorID)
	if errors.Is(err, pgx.ErrNoRows) {
		return projects.ErrNotFound
	}
	if err != nil {
		return err
	}

	if contractorID != nil {
		if _, err := tx.Exec(ctx, `
			UPDATE contractor_profiles SET completed_projects = completed_projects + 1, updated_at = now()
			WHERE id = $1::uuid
		`, *contractorID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func scanProject(row pgx.Row) (*projects.Project, error) {
	var p projects.Project
	err := row.Scan(&p.ID, &p.ClientID, &p.ContractorID, &p.Title, &p.Description,
		&p.CategoryID, &p.BudgetMin, &p.BudgetMax, &p.Status, &p.Priority, &p.Address,
		&p.City, &p.State, &p.PostalCode, &p.Latitude, &p.Longitude, &p.StartDate,
		&p.EndDate, &p.Deadline, &p.ProgressPercentage, &p.IsFeatured, &p.ViewsCount,
		&p.ApplicationsCount, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanApplication(row pgx.Row) (*projects.Application, error) {
	var a projects.Application
	err := row.Scan(&a.ID, &a.ProjectID, &a.ContractorID, &a.CoverLetter,
		&a.ProposedBudget, &a.ProposedTimeline, &a.Status, &a.AppliedAt, &a.UpdatedAt,
		&a.ContractorName, &a.BusinessName)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func collectApplications(rows pgx.Rows) ([]projects.Application, error) {
	var out []projects.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func scanMilestone(row pgx.Row) (*projects.Milestone, error) {
	var m projects.Milestone
	err := row.Scan(&m.ID, &m.ProjectID, &m.Title, &m.Description, &m.DueDate,
		&m.CompletionDate, &m.Status, &m.PaymentPercentage, &m.SortOrder,
		&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

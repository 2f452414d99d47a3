package adapter

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	accounts "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/accounts/application/domain"
)

type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

const userColumns = `id::text, email, username, password_hash, first_name, last_name, phone_number,
	user_type, avatar_url, bio, location, skills, hourly_rate, experience_years,
	is_verified, is_staff, is_active, is_online, last_seen, created_at, updated_at`

func (r *PgUserRepository) CreateUser(ctx context.Context, u accounts.User) (string, error) {
	if r == nil || r.pool == nil {
		return "", errors.New("PgUserRepository: nil pool")
	}
	skills, err := json.Marshal(u.Skills)
	if err != nil {
		return "", err
	}
	var id string
	err = r.pool.QueryRow(ctx, `
		INSERT INTO users (email, username, password_hash, first_name, last_name, phone_number,
		                   user_type, bio, location, skills, hourly_rate, experience_years)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::jsonb, $11, $12)
		RETURNING id::text
	`, u.Email, u.Username, u.PasswordHash, u.FirstName, u.LastName, u.PhoneNumber,
		string(u.UserType), u.Bio, u.Location, skills, u.HourlyRate, u.ExperienceYears).Scan(&id)
	if isUniqueViolation(err) {
		return "", accounts.ErrDuplicate
	}
	return id, err
}

func (r *PgUserRepository) GetUserByID(ctx context.Context, id string) (*accounts.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1::uuid`, id)
}

func (r *PgUserRepository) GetUserByEmail(ctx context.Context, email string) (*accounts.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *PgUserRepository) getUser(ctx context.Context, query string, arg any) (*accounts.User, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgUserRepository: nil pool")
	}
	var (
		u         accounts.User
		userType  string
		rawSkills []byte
	)
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &u.PhoneNumber,
		&userType, &u.AvatarURL, &u.Bio, &u.Location, &rawSkills, &u.HourlyRate, &u.ExperienceYears,
		&u.IsVerified, &u.IsStaff, &u.IsActive, &u.IsOnline, &u.LastSeen, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, accounts.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.UserType = accounts.UserType(userType)
	if len(rawSkills) > 0 {
		if err := json.Unmarshal(rawSkills, &u.Skills); err != nil {
			return nil, err
		}
	}
	return &u, nil
}

func (r *PgUserRepository) UpdateProfile(ctx context.Context, u accounts.User) error {
	skills, err := json.Marshal(u.Skills)
	if err != nil {
		return err
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE users
		SET first_name = $2, last_name = $3, phone_number = $4, bio = $5, location = $6,
		    skills = $7::jsonb, hourly_rate = $8, experience_years = $9, avatar_url = $10,
		    updated_at = now()
		WHERE id = $1::uuid
	`, u.ID, u.FirstName, u.LastName, u.PhoneNumber, u.Bio, u.Location,
		skills, u.HourlyRate, u.ExperienceYears, u.AvatarURL)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return accounts.ErrNotFound
	}
	return nil
}

func (r *PgUserRepository) UpdatePassword(ctx context.Context, userID string, passwordHash string) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1::uuid`,
		userID, passwordHash)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return accounts.ErrNotFound
	}
	return nil
}

func (r *PgUserRepository) SetOnline(ctx context.Context, userID string, online bool) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET is_online = $2, last_seen = now() WHERE id = $1::uuid`,
		userID, online)
	return err
}

const addressColumns = `id::text, user_id::text, title, street_address, city, state, postal_code,
	country, latitude, longitude, is_default, created_at, updated_at`

func (r *PgUserRepository) ListAddresses(ctx context.Context, userID string) ([]accounts.Address, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+addressColumns+` FROM addresses WHERE user_id = $1::uuid ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []accounts.Address
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *PgUserRepository) GetAddress(ctx context.Context, userID, addressID string) (*accounts.Address, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+addressColumns+` FROM addresses WHERE id = $1::uuid AND user_id = $2::uuid`,
		addressID, userID)
	a, err := scanAddress(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, accounts.ErrNotFound
	}
	return a, err
}

func (r *PgUserRepository) CreateAddress(ctx context.Context, a accounts.Address) (string, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	if a.IsDefault {
		if _, err := tx.Exec(ctx,
			`UPDATE addresses SET is_default = false WHERE user_id = $1::uuid AND is_default`, a.UserID); err != nil {
			return "", err
		}
	}

	var id string
	err = tx.QueryRow(ctx, `
		INSERT INTO addresses (user_id, title, street_address, city, state, postal_code, country,
		                       latitude, longitude, is_default)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id::text
	`, a.UserID, a.Title, a.StreetAddress, a.City, a.State, a.PostalCode, a.Country,
		a.Latitude, a.Longitude, a.IsDefault).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, tx.Commit(ctx)
}

func (r *PgUserRepository) UpdateAddress(ctx context.Context, a accounts.Address) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if a.IsDefault {
		if _, err := tx.Exec(ctx,
			`UPDATE addresses SET is_default = false WHERE user_id = $1::uuid AND is_default AND id <> $2::uuid`,
			a.UserID, a.ID); err != nil {
			return err
		}
	}

	ct, err := tx.Exec(ctx, `
		UPDATE addresses
		SET title = $3, street_address = $4, city = $5, state = $6, postal_code = $7, country = $8,
		    latitude = $9, longitude = $10, is_default = $11, updated_at = now()
		WHERE id = $1::uuid AND user_id = $2::uuid
	`, a.ID, a.UserID, a.Title, a.StreetAddress, a.City, a.State, a.PostalCode, a.Country,
		a.Latitude, a.Longitude, a.IsDefault)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return accounts.ErrNotFound
	}
	return tx.Commit(ctx)
}

func (r *PgUserRepository) DeleteAddress(ctx context.Context, userID, addressID string) error {
	ct, err := r.pool.Exec(ctx,
		`DELETE FROM addresses WHERE id = $1::uuid AND user_id = $2::uuid`, addressID, userID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return accounts.ErrNotFound
	}
	return nil
}

func (r *PgUserRepository) ProfileStats(ctx context.Context, userID string) (*accounts.ProfileStats, error) {
	var stats accounts.ProfileStats
	err := r.pool.QueryRow(ctx, `
		SELECT
			COALESCE((SELECT count(*) FROM projects p
			          JOIN contractor_profiles cp ON cp.id = p.contractor_id
			          WHERE cp.user_id = $1::uuid AND p.status = 'completed'), 0),
			COALESCE((SELECT count(*) FROM reviews rv
			          JOIN contractor_profiles cp ON cp.id = rv.contractor_id
			          WHERE cp.user_id = $1::uuid), 0),
			COALESCE((SELECT avg(rv.rating) FROM reviews rv
			          JOIN contractor_profiles cp ON cp.id = rv.contractor_id
			          WHERE cp.user_id = $1::uuid), 0),
			(SELECT extract(year FROM created_at)::int FROM users WHERE id = $1::uuid)
	`, userID).Scan(&stats.CompletedProjects, &stats.TotalReviews, &stats.AverageRating, &stats.MemberSince)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, accounts.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func scanAddress(row pgx.Row) (*accounts.Address, error) {
	var a accounts.Address
	err := row.Scan(&a.ID, &a.UserID, &a.Title, &a.StreetAddress, &a.City, &a.State, &a.PostalCode,
		&a.Country, &a.Latitude, &a.Longitude, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

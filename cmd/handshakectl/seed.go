package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/security"
)

// seedFixtures inserts a small, deterministic development dataset: a client,
// a verified contractor with a profile, one published project and a category.
// ON CONFLICT guards make the command safe to rerun.
func seedFixtures(ctx context.Context, pool *pgxpool.Pool) error {
	hash, err := security.NewBcryptService().Hash("password123")
	if err != nil {
		return err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var clientID string
	err = tx.QueryRow(ctx, `
		INSERT INTO users (email, username, password_hash, first_name, last_name, user_type, is_verified)
		VALUES ('client@example.com', 'demo_client', $1, 'Dana', 'Client', 'client', true)
		ON CONFLICT (email) DO UPDATE SET updated_at = now()
		RETURNING id::text
	`, hash).Scan(&clientID)
	if err != nil {
		return fmt.Errorf("seed client: %w", err)
	}

	var contractorUserID string
	err = tx.QueryRow(ctx, `
		INSERT INTO users (email, username, password_hash, first_name, last_name, user_type, is_verified)
		VALUES ('contractor@example.com', 'demo_contractor', $1, 'Chris', 'Builder', 'contractor', true)
		ON CONFLICT (email) DO UPDATE SET updated_at = now()
		RETURNING id::text
	`, hash).Scan(&contractorUserID)
	if err != nil {
		return fmt.Errorf("seed contractor user: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO contractor_profiles (user_id, business_name, experience_level)
		VALUES ($1::uuid, 'Builder & Co', 'expert')
		ON CONFLICT (user_id) DO NOTHING
	`, contractorUserID); err != nil {
		return fmt.Errorf("seed contractor profile: %w", err)
	}

	var categoryID string
	err = tx.QueryRow(ctx, `
		INSERT INTO categories (name, slug)
		VALUES ('Renovation', 'renovation')
		ON CONFLICT (slug) DO UPDATE SET name = excluded.name
		RETURNING id::text
	`).Scan(&categoryID)
	if err != nil {
		return fmt.Errorf("seed category: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO projects (client_id, category_id, title, description, status, budget_min, budget_max, city)
		SELECT $1::uuid, $2::uuid, 'Kitchen remodel', 'Full remodel of a 12sqm kitchen.', 'published', 5000, 12000, 'Austin'
		WHERE NOT EXISTS (SELECT 1 FROM projects WHERE title = 'Kitchen remodel' AND client_id = $1::uuid)
	`, clientID, categoryID); err != nil {
		return fmt.Errorf("seed project: %w", err)
	}

	return tx.Commit(ctx)
}

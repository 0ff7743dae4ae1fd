// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"seodash/internal/db"
	"seodash/internal/fixtures"
	"seodash/internal/models"
)

// TestDB creates a test database connection and returns a cleanup function.
// Skips the test unless TEST_DATABASE_URL is set.
func TestDB(t *testing.T) (*db.DB, func()) {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := db.New(ctx, connString)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := database.RunMigrations(connString); err != nil {
		database.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	cleanupTestData(ctx, database.Pool)
	cleanup := func() {
		cleanupTestData(ctx, database.Pool)
		database.Close()
	}

	return database, cleanup
}

// cleanupTestData removes all test data from the database.
func cleanupTestData(ctx context.Context, pool *pgxpool.Pool) {
	// Delete in order to respect foreign keys
	pool.Exec(ctx, "DELETE FROM analysis_snapshots")
	pool.Exec(ctx, "DELETE FROM keywords")
	pool.Exec(ctx, "DELETE FROM keyword_searches")
	pool.Exec(ctx, "DELETE FROM competitor_sites")
	pool.Exec(ctx, "DELETE FROM users")
}

// CreateTestUser creates a test user and returns the user ID.
func CreateTestUser(t *testing.T, database *db.DB, sub, email, role string) string {
	t.Helper()
	ctx := context.Background()

	var id string
	err := database.Pool.QueryRow(ctx, `
		INSERT INTO users (sub, email, name, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (sub) DO UPDATE SET email = EXCLUDED.email
		RETURNING id
	`, sub, email, fmt.Sprintf("Test User %s", sub), role).Scan(&id)
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	return id
}

// SeedSite stores n generated keywords for site and returns them.
func SeedSite(t *testing.T, database *db.DB, site string, n int, seed int64) []models.KeywordRecord {
	t.Helper()

	records := fixtures.NewFake(seed).Keywords(site, n)
	if _, err := database.ReplaceSiteKeywords(context.Background(), site, records); err != nil {
		t.Fatalf("failed to seed %s: %v", site, err)
	}
	return records
}

// Keywords returns n generated keywords for site without touching a database.
func Keywords(t *testing.T, site string, n int) []models.KeywordRecord {
	t.Helper()
	return fixtures.NewFake(int64(len(site)+n)).Keywords(site, n)
}

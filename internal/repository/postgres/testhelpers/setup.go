package testhelpers

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/route-estimation-service/internal/domain"
)

// TestDB represents a test database connection
type TestDB struct {
	DB     *sqlx.DB
	Logger *zap.Logger
}

// SetupTestDB initializes a test database connection. Tests are skipped when
// TEST_DB_HOST is not set so the suite can run without infrastructure.
func SetupTestDB(t *testing.T) *TestDB {
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set, skipping database tests")
	}

	port := getEnv("TEST_DB_PORT", "5433")
	user := getEnv("TEST_DB_USER", "postgres")
	password := getEnv("TEST_DB_PASSWORD", "postgres")
	dbname := getEnv("TEST_DB_NAME", "route_estimation_test")
	sslmode := getEnv("TEST_DB_SSLMODE", "disable")

	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode,
	)

	// Retry connection with backoff to wait for the container to come up
	var db *sqlx.DB
	var err error
	maxRetries := 10
	retryDelay := 500 * time.Millisecond

	for i := 0; i < maxRetries; i++ {
		db, err = sqlx.Connect("postgres", connStr)
		if err == nil {
			break
		}

		if i < maxRetries-1 {
			t.Logf("Database not ready (attempt %d/%d), waiting %v...", i+1, maxRetries, retryDelay)
			time.Sleep(retryDelay)
			retryDelay *= 2
		}
	}

	if err != nil {
		t.Fatalf("Failed to connect to test database after %d attempts: %v", maxRetries, err)
	}

	logger, _ := zap.NewDevelopment()
	if logger == nil {
		logger = zap.NewNop()
	}

	return &TestDB{
		DB:     db,
		Logger: logger,
	}
}

// Close closes the database connection
func (tdb *TestDB) Close() {
	if tdb.DB != nil {
		tdb.DB.Close()
	}
}

// EnsureSchema creates the bus_stops table if it does not exist.
func (tdb *TestDB) EnsureSchema(ctx context.Context) error {
	_, err := tdb.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS bus_stops (
			bus_stop_id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			lat DECIMAL(10, 6) NOT NULL,
			lon DECIMAL(10, 6) NOT NULL,
			district VARCHAR(100),
			category VARCHAR(50) DEFAULT 'regular',
			demand_multiplier DECIMAL(3, 2) DEFAULT 1.0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

// Cleanup removes all test data
func (tdb *TestDB) Cleanup(ctx context.Context) error {
	_, err := tdb.DB.ExecContext(ctx, "TRUNCATE TABLE bus_stops RESTART IDENTITY")
	return err
}

// SeedStops inserts stops for a test run.
func (tdb *TestDB) SeedStops(ctx context.Context, stops []domain.Stop) error {
	for _, s := range stops {
		_, err := tdb.DB.ExecContext(ctx, `
			INSERT INTO bus_stops (name, lat, lon, district, category, demand_multiplier)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, s.Name, s.Latitude, s.Longitude, s.District, s.Category, s.Popularity)
		if err != nil {
			return fmt.Errorf("seed stop %q: %w", s.Name, err)
		}
	}
	return nil
}

// getEnv gets environment variable or returns default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

package db

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

var DB *sql.DB // Global database connection

// Schema is applied on every startup. All statements are idempotent so
// the server can boot against a fresh or an existing database.
const Schema = `
CREATE TABLE IF NOT EXISTS user_profiles (
    id         TEXT PRIMARY KEY,
    role       TEXT NOT NULL DEFAULT 'member',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS charts (
    id          SERIAL PRIMARY KEY,
    symbol      TEXT NOT NULL,
    image_url   TEXT NOT NULL,
    notes       TEXT,
    uploaded_by TEXT NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS trade_insights (
    id           SERIAL PRIMARY KEY,
    symbol       TEXT,
    action       TEXT,
    price        DOUBLE PRECISION,
    reasoning    TEXT,
    confidence   TEXT,
    html_content TEXT,
    metadata     JSONB NOT NULL DEFAULT '{}',
    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CONSTRAINT trade_insights_one_shape CHECK (
        (html_content IS NOT NULL AND symbol IS NULL AND action IS NULL)
        OR
        (html_content IS NULL AND symbol IS NOT NULL AND action IS NOT NULL)
    )
);
`

// InitDB initializes database connection and applies the schema
func InitDB() error {
	// Connection string
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5433"),
		getEnv("DB_USER", "trader"),
		getEnv("DB_PASSWORD", "trading123"),
		getEnv("DB_NAME", "tradeboard_db"),
	)

	// Open connection
	var err error
	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}

	// Test connection
	if err = DB.Ping(); err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}

	// Set connection pool settings
	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(5)
	DB.SetConnMaxLifetime(5 * time.Minute)

	if _, err = DB.Exec(Schema); err != nil {
		return fmt.Errorf("error applying schema: %w", err)
	}

	return nil
}

// Helper function to get environment variable with default
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// CloseDB closes database connection
func CloseDB() {
	if DB != nil {
		DB.Close()
	}
}

package db

import (
	"database/sql"
	"fmt"
	"log"
	"testing"
	"time"
)

// SetupTestDB creates a test database connection and applies the schema
func SetupTestDB(t *testing.T) *sql.DB {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getEnv("TEST_DB_HOST", "localhost"),
		getEnv("TEST_DB_PORT", "5433"),
		getEnv("TEST_DB_USER", "trader"),
		getEnv("TEST_DB_PASSWORD", "trading123"),
		getEnv("TEST_DB_NAME", "tradeboard_db"),
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err = db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	if _, err = db.Exec(Schema); err != nil {
		t.Fatalf("Failed to apply schema: %v", err)
	}

	// Set global DB for handlers
	DB = db

	return db
}

// CleanupTestDB cleans up test data
func CleanupTestDB(t *testing.T, db *sql.DB) {
	tables := []string{"charts", "trade_insights", "user_profiles"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			log.Printf("Warning: Failed to cleanup table %s: %v", table, err)
		}
	}
}

// CreateTestProfile inserts a user profile row and returns its ID
func CreateTestProfile(t *testing.T, db *sql.DB, role string) string {
	// Make the ID unique across test runs
	userID := fmt.Sprintf("user_%s_%d", role, time.Now().UnixNano())

	_, err := db.Exec(
		"INSERT INTO user_profiles (id, role) VALUES ($1, $2)",
		userID, role,
	)
	if err != nil {
		t.Fatalf("Failed to create test profile: %v", err)
	}

	return userID
}

package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

type Storage struct {
	DB *sql.DB
}

// IsRemote reports whether dsn points at a Turso/libSQL server rather than a local file.
func IsRemote(dsn string) bool {
	for _, p := range []string{"libsql://", "https://", "http://", "wss://", "ws://"} {
		if strings.HasPrefix(dsn, p) {
			return true
		}
	}
	return false
}

// Open connects to dsn and makes sure the schema exists. Remote URLs go through libsql,
// anything else is a local SQLite file path.
func Open(dsn string) (*Storage, error) {
	if dsn == "" {
		return nil, fmt.Errorf("Database location is empty")
	}

	var db *sql.DB
	var err error
	if IsRemote(dsn) {
		db, err = sql.Open("libsql", dsn)
		if err != nil {
			return nil, fmt.Errorf("Failed to open db %s: %w", dsn, err)
		}
	} else {
		db, err = openLocal(strings.TrimPrefix(dsn, "file:"))
		if err != nil {
			return nil, err
		}
	}

	if err := initializeDB(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("Failed to initialize database: %w", err)
	}

	return &Storage{DB: db}, nil
}

func openLocal(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("Failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("Failed to open db %s: %w", path, err)
	}

	// One writer at a time.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("Failed to run %q: %w", pragma, err)
		}
	}
	return db, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

// tables in dependency order: parents first.
var tables = []string{
	"workouts",
	"workout_exercises",
	"training_sessions",
	"session_exercises",
	"set_logs",
	"kv",
}

func initializeDB(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS workouts (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL UNIQUE,
            created_at TEXT NOT NULL
        );

        CREATE TABLE IF NOT EXISTS workout_exercises (
            id TEXT PRIMARY KEY,
            workout_id TEXT NOT NULL,
            position INTEGER NOT NULL,
            name TEXT NOT NULL,
            sets INTEGER NOT NULL,
            reps TEXT NOT NULL,
            image_url TEXT,
            is_cardio INTEGER NOT NULL DEFAULT 0,
            FOREIGN KEY (workout_id) REFERENCES workouts(id) ON DELETE CASCADE
        );

        CREATE TABLE IF NOT EXISTS training_sessions (
            id TEXT PRIMARY KEY,
            workout_id TEXT,
            name TEXT NOT NULL,
            start_time TEXT NOT NULL,
            end_time TEXT
        );

        CREATE TABLE IF NOT EXISTS session_exercises (
            id TEXT PRIMARY KEY,
            session_id TEXT NOT NULL,
            position INTEGER NOT NULL,
            exercise_id TEXT NOT NULL,
            name TEXT NOT NULL,
            sets INTEGER NOT NULL,
            reps TEXT NOT NULL,
            image_url TEXT,
            is_cardio INTEGER NOT NULL DEFAULT 0,
            FOREIGN KEY (session_id) REFERENCES training_sessions(id) ON DELETE CASCADE
        );

        CREATE TABLE IF NOT EXISTS set_logs (
            id TEXT PRIMARY KEY,
            session_exercise_id TEXT NOT NULL,
            position INTEGER NOT NULL,
            log_id TEXT NOT NULL,
            weight REAL NOT NULL,
            reps INTEGER NOT NULL,
            completed INTEGER NOT NULL DEFAULT 0,
            FOREIGN KEY (session_exercise_id) REFERENCES session_exercises(id) ON DELETE CASCADE
        );

        CREATE INDEX IF NOT EXISTS idx_training_sessions_start ON training_sessions(start_time);

        CREATE TABLE IF NOT EXISTS kv (
            key TEXT PRIMARY KEY,
            value TEXT NOT NULL,
            updated_at TEXT NOT NULL
        );
    `)
	return err
}

// Reset deletes every row of every table. The schema stays.
func (s *Storage) Reset() error {
	tx, err := s.DB.Begin()
	if err != nil {
		return fmt.Errorf("Failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i := len(tables) - 1; i >= 0; i-- {
		if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s;", tables[i])); err != nil {
			return fmt.Errorf("Failed to clear table %s: %w", tables[i], err)
		}
	}
	return tx.Commit()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

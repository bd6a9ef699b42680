package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Load, Save and Delete make Storage a key-value store for session checkpoints. Values are
// stored as JSON in the kv table.

func (s *Storage) Load(key string, v any) (bool, error) {
	var raw string
	err := s.DB.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("Failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return true, fmt.Errorf("Failed to decode %s: %w", key, err)
	}
	return true, nil
}

func (s *Storage) Save(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("Failed to encode %s: %w", key, err)
	}
	_, err = s.DB.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
         ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(raw), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("Failed to write %s: %w", key, err)
	}
	return nil
}

func (s *Storage) Delete(key string) error {
	if _, err := s.DB.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("Failed to delete %s: %w", key, err)
	}
	return nil
}

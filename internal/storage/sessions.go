package storage

import (
	"fmt"
	"time"

	"github.com/misterclayt0n/gymtrack/internal/models"
)

// PreviousPerformance is the logs of an exercise from the latest recorded session that had it.
type PreviousPerformance struct {
	SessionID string
	Date      time.Time
	Logs      []models.SetLog
}

// GetPreviousPerformance returns how the exercise named name went last time, or nil if it was
// never recorded.
func (s *Storage) GetPreviousPerformance(name string) (*PreviousPerformance, error) {
	rows, err := s.DB.Query(`
        SELECT se.id, ts.id, ts.start_time
        FROM session_exercises se
        JOIN training_sessions ts ON ts.id = se.session_id
        WHERE se.name = ? COLLATE NOCASE
          AND ts.end_time IS NOT NULL`, name)
	if err != nil {
		return nil, fmt.Errorf("Failed to query previous sessions: %w", err)
	}
	defer rows.Close()

	// start_time is RFC3339Nano, which does not sort as text; pick the latest in Go.
	var latest *PreviousPerformance
	var latestRow string
	for rows.Next() {
		var rowID, sessionID, started string
		if err := rows.Scan(&rowID, &sessionID, &started); err != nil {
			return nil, fmt.Errorf("Failed to scan previous session: %w", err)
		}
		t, err := time.Parse(time.RFC3339Nano, started)
		if err != nil {
			return nil, fmt.Errorf("Invalid start time %q: %w", started, err)
		}
		if latest == nil || t.After(latest.Date) {
			latest = &PreviousPerformance{SessionID: sessionID, Date: t}
			latestRow = rowID
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, nil
	}

	latest.Logs, err = s.setLogs(latestRow)
	if err != nil {
		return nil, err
	}
	return latest, nil
}

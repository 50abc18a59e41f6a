package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"zena/internal/store"
)

// LastScore returns the most recently computed score for the subject and
// window, or nil when none exists.
func (s *Store) LastScore(ctx context.Context, subjectID, window string) (*int, error) {
	row := s.conn.QueryRowContext(ctx,
		`SELECT score FROM scores WHERE user_id = ? AND time_window = ?
		 ORDER BY computed_at DESC, rowid DESC LIMIT 1`, subjectID, window)

	var score int
	err := row.Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("last score: %w", err)
	}
	return &score, nil
}

// InsertScore appends one score record. The rule trace is stored as the
// JSON explanation column.
func (s *Store) InsertScore(ctx context.Context, record store.ScoreRecord) error {
	explanation, err := json.Marshal(map[string]any{"rules": record.RuleTrace})
	if err != nil {
		return fmt.Errorf("marshal explanation: %w", err)
	}

	err = s.execContext(ctx,
		`INSERT INTO scores (id, user_id, time_window, score, trend, explanation, computed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.SubjectID, record.Window, record.Score,
		intOrNil(record.Trend), string(explanation), formatTime(record.ComputedAt))
	if err != nil {
		return fmt.Errorf("insert score: %w", err)
	}
	return nil
}

// InsertAlert appends one alert record.
func (s *Store) InsertAlert(ctx context.Context, record store.AlertRecord) error {
	err := s.execContext(ctx,
		`INSERT INTO alerts (id, user_id, created_at, risk_level, status, target_role,
		                     user_consent, anonymized_message, primary_axis, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.SubjectID, formatTime(record.CreatedAt), string(record.RiskLevel),
		record.Status, record.TargetRole, record.UserConsent, record.Anonymized,
		record.PrimaryAxis, record.Notes)
	if err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

// InsertRecommendations appends a batch of recommendation records in a
// single transaction: either all rows commit or none do.
func (s *Store) InsertRecommendations(ctx context.Context, records []store.RecommendationRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() // no-op if committed

	for _, record := range records {
		payload, err := json.Marshal(record.Payload)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
		reason, err := json.Marshal(record.Reason)
		if err != nil {
			return fmt.Errorf("marshal reason: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO recommendations (id, user_id, kind, payload, reason, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			record.ID, record.SubjectID, record.Kind, string(payload), string(reason),
			formatTime(record.CreatedAt))
		if err != nil {
			return fmt.Errorf("insert recommendation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit recommendations: %w", err)
	}
	return nil
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	errs "zena/internal/shared/errors"
	"zena/internal/wellbeing"
)

// featureSQL aggregates check-ins over the 7-day and 30-day windows,
// ported from the historical service. Aggregates over an empty window
// yield NULLs, which map to absent optional fields, never to defaults.
const featureSQL = `
WITH base AS (
  SELECT ts, mood, energy, workload, strain, climate, disconnect
  FROM checkins
  WHERE user_id = ? AND ts >= datetime('now', '-30 days')
),
win7 AS (
  SELECT
    avg(mood)     AS mood_mean_7d,
    min(energy)   AS energy_min_7d,
    max(workload) AS workload_max_7d,
    max(strain)   AS strain_max_7d
  FROM base WHERE ts >= datetime('now', '-7 days')
),
win30 AS (
  SELECT
    avg(climate)    AS climate_mean_30d,
    min(disconnect) AS disconnect_min_30d
  FROM base
)
SELECT mood_mean_7d, energy_min_7d, workload_max_7d, strain_max_7d,
       climate_mean_30d, disconnect_min_30d
FROM win7, win30;
`

// Features aggregates the subject's recent check-ins. ok is false when
// there is no check-in at all in the last 30 days.
func (s *Store) Features(ctx context.Context, subjectID string) (wellbeing.FeatureSet, bool, error) {
	row := s.conn.QueryRowContext(ctx, featureSQL, subjectID)

	var mood, energy, workload, strain, climate, disconnect sql.NullFloat64
	if err := row.Scan(&mood, &energy, &workload, &strain, &climate, &disconnect); err != nil {
		return wellbeing.FeatureSet{}, false, fmt.Errorf("aggregate features: %w", err)
	}

	// The aggregate row always exists; all-NULL means no check-ins.
	if !mood.Valid && !energy.Valid && !workload.Valid && !strain.Valid && !climate.Valid && !disconnect.Valid {
		return wellbeing.FeatureSet{}, false, nil
	}

	return wellbeing.FeatureSet{
		MoodMean7d:       optional(mood),
		EnergyMin7d:      optional(energy),
		WorkloadMax7d:    optional(workload),
		StrainMax7d:      optional(strain),
		ClimateMean30d:   optional(climate),
		DisconnectMin30d: optional(disconnect),
	}, true, nil
}

// RecentFeatures adapts Features to the router's signal channel: a
// subject without recent data yields a NotFound error the router treats
// as "zero behavioral signal".
func (s *Store) RecentFeatures(ctx context.Context, subjectID string) (wellbeing.FeatureSet, error) {
	features, ok, err := s.Features(ctx, subjectID)
	if err != nil {
		return wellbeing.FeatureSet{}, err
	}
	if !ok {
		return wellbeing.FeatureSet{}, errs.New(errs.KindNotFound, "no checkins in last 30 days")
	}
	return features, nil
}

func optional(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

// LatestWHO5 returns the most recent five-item wellbeing snapshot, or
// nil when the subject never filled one in.
func (s *Store) LatestWHO5(ctx context.Context, subjectID string) (*wellbeing.WHO5, error) {
	row := s.conn.QueryRowContext(ctx,
		`SELECT w1, w2, w3, w4, w5 FROM who5 WHERE user_id = ? ORDER BY ts DESC LIMIT 1`, subjectID)

	var w wellbeing.WHO5
	err := row.Scan(&w.W1, &w.W2, &w.W3, &w.W4, &w.W5)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest who5: %w", err)
	}
	return &w, nil
}

// LatestKarasek returns the most recent job-strain snapshot.
func (s *Store) LatestKarasek(ctx context.Context, subjectID string) (*wellbeing.Karasek, error) {
	row := s.conn.QueryRowContext(ctx,
		`SELECT demand, control, support FROM karasek_short WHERE user_id = ? ORDER BY ts DESC LIMIT 1`, subjectID)

	var k wellbeing.Karasek
	err := row.Scan(&k.Demand, &k.Control, &k.Support)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest karasek: %w", err)
	}
	return &k, nil
}

// LatestERI returns the most recent effort-reward snapshot.
func (s *Store) LatestERI(ctx context.Context, subjectID string) (*wellbeing.ERI, error) {
	row := s.conn.QueryRowContext(ctx,
		`SELECT effort, reward, overcommit FROM eri_short WHERE user_id = ? ORDER BY ts DESC LIMIT 1`, subjectID)

	var e wellbeing.ERI
	err := row.Scan(&e.Effort, &e.Reward, &e.Overcommit)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest eri: %w", err)
	}
	return &e, nil
}

// LatestUWES returns the most recent work-engagement snapshot.
func (s *Store) LatestUWES(ctx context.Context, subjectID string) (*wellbeing.UWES, error) {
	row := s.conn.QueryRowContext(ctx,
		`SELECT vigor, dedication, absorption FROM uwes9 WHERE user_id = ? ORDER BY ts DESC LIMIT 1`, subjectID)

	var u wellbeing.UWES
	err := row.Scan(&u.Vigor, &u.Dedication, &u.Absorption)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest uwes: %w", err)
	}
	return &u, nil
}

// InsertCheckin appends one self-report check-in. Nil values persist as
// NULL and stay invisible to the aggregation windows.
func (s *Store) InsertCheckin(ctx context.Context, subjectID string, ts time.Time, mood, energy, workload, strain, climate, disconnect *int) error {
	return s.execContext(ctx,
		`INSERT INTO checkins (user_id, ts, mood, energy, workload, strain, climate, disconnect)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		subjectID, formatTime(ts), intOrNil(mood), intOrNil(energy), intOrNil(workload),
		intOrNil(strain), intOrNil(climate), intOrNil(disconnect))
}

// InsertWHO5 appends a five-item wellbeing snapshot.
func (s *Store) InsertWHO5(ctx context.Context, subjectID string, ts time.Time, w wellbeing.WHO5) error {
	return s.execContext(ctx,
		`INSERT INTO who5 (user_id, ts, w1, w2, w3, w4, w5) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		subjectID, formatTime(ts), w.W1, w.W2, w.W3, w.W4, w.W5)
}

// InsertKarasek appends a job-strain snapshot.
func (s *Store) InsertKarasek(ctx context.Context, subjectID string, ts time.Time, k wellbeing.Karasek) error {
	return s.execContext(ctx,
		`INSERT INTO karasek_short (user_id, ts, demand, control, support) VALUES (?, ?, ?, ?, ?)`,
		subjectID, formatTime(ts), k.Demand, k.Control, k.Support)
}

// InsertERI appends an effort-reward snapshot.
func (s *Store) InsertERI(ctx context.Context, subjectID string, ts time.Time, e wellbeing.ERI) error {
	return s.execContext(ctx,
		`INSERT INTO eri_short (user_id, ts, effort, reward, overcommit) VALUES (?, ?, ?, ?, ?)`,
		subjectID, formatTime(ts), e.Effort, e.Reward, e.Overcommit)
}

// InsertUWES appends a work-engagement snapshot.
func (s *Store) InsertUWES(ctx context.Context, subjectID string, ts time.Time, u wellbeing.UWES) error {
	return s.execContext(ctx,
		`INSERT INTO uwes9 (user_id, ts, vigor, dedication, absorption) VALUES (?, ?, ?, ?, ?)`,
		subjectID, formatTime(ts), u.Vigor, u.Dedication, u.Absorption)
}

func intOrNil(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

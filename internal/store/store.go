// Package store defines the narrow persistence interfaces the service
// depends on, plus the records it persists. All writes are append-only:
// a new score, alert or recommendation is a new row, never an update.
package store

import (
	"context"
	"time"

	"zena/internal/wellbeing"
)

// ScoreRecord is one computed score. Immutable once written.
type ScoreRecord struct {
	ID         string
	SubjectID  string
	Window     string
	Score      int
	Trend      *int
	RuleTrace  []string
	ComputedAt time.Time
}

// AlertRecord is one escalation created by the risk classifier.
type AlertRecord struct {
	ID          string
	SubjectID   string
	RiskLevel   wellbeing.RiskLevel
	PrimaryAxis string
	Notes       string
	TargetRole  string
	UserConsent bool
	Anonymized  bool
	Status      string
	CreatedAt   time.Time
}

// RecommendationRecord is one persisted recommendation.
type RecommendationRecord struct {
	ID        string
	SubjectID string
	wellbeing.Recommendation
	CreatedAt time.Time
}

// FeatureSource retrieves aggregated check-in features and the latest
// instrument snapshots. The five reads are independent and may be issued
// concurrently.
type FeatureSource interface {
	// Features aggregates check-ins over the 7d/30d windows. ok is false
	// when the subject has no check-in in the last 30 days.
	Features(ctx context.Context, subjectID string) (features wellbeing.FeatureSet, ok bool, err error)

	// Latest* return the most recent snapshot of each instrument, or nil
	// when the subject never filled it in.
	LatestWHO5(ctx context.Context, subjectID string) (*wellbeing.WHO5, error)
	LatestKarasek(ctx context.Context, subjectID string) (*wellbeing.Karasek, error)
	LatestERI(ctx context.Context, subjectID string) (*wellbeing.ERI, error)
	LatestUWES(ctx context.Context, subjectID string) (*wellbeing.UWES, error)
}

// ScoreStore persists scores and serves the trend lookup.
type ScoreStore interface {
	// LastScore returns the most recently computed score for the subject
	// and window, or nil when none exists.
	LastScore(ctx context.Context, subjectID, window string) (*int, error)
	InsertScore(ctx context.Context, record ScoreRecord) error
}

// AlertStore persists alerts.
type AlertStore interface {
	InsertAlert(ctx context.Context, record AlertRecord) error
}

// RecommendationStore persists recommendation batches.
type RecommendationStore interface {
	InsertRecommendations(ctx context.Context, records []RecommendationRecord) error
}

// Store is the full persistence surface the service wires at startup.
type Store interface {
	FeatureSource
	ScoreStore
	AlertStore
	RecommendationStore
}

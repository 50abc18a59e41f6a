// Package service orchestrates the decision engine: it joins the data
// store, the rule engines and the profile router behind the four
// operations exposed to callers.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"zena/internal/observability"
	"zena/internal/routing"
	errs "zena/internal/shared/errors"
	"zena/internal/shared/logging"
	"zena/internal/store"
	"zena/internal/wellbeing"
)

// Alert defaults mirrored from the historical service.
const (
	alertStatusOpen = "open"
	alertTargetRole = "salarié"
)

// Service implements the four operations of the decision engine.
type Service struct {
	store  store.Store
	router *routing.Router
	logger logging.Logger

	now   func() time.Time
	newID func() string
}

// New wires a service. The router may be nil when routing is not
// exposed (RouteQuery then fails with InvalidArgument).
func New(st store.Store, router *routing.Router, logger logging.Logger) *Service {
	return &Service{
		store:  st,
		router: router,
		logger: logging.OrNop(logger),
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
}

// ScoreResult is the outcome of ComputeScore.
type ScoreResult struct {
	Score      int       `json:"score"`
	Trend      *int      `json:"trend"`
	RuleTrace  []string  `json:"rule_trace"`
	ComputedAt time.Time `json:"computed_at"`
}

// AlertResult is the outcome of ScanAlerts.
type AlertResult struct {
	Created   bool                `json:"created"`
	RiskLevel wellbeing.RiskLevel `json:"risk_level,omitempty"`
	AlertID   string              `json:"alert_id,omitempty"`
}

// subjectProfile joins the aggregate features with the latest instrument
// snapshots.
type subjectProfile struct {
	features    wellbeing.FeatureSet
	instruments wellbeing.Instruments
}

// fetchProfile retrieves the feature set and the four instrument
// snapshots concurrently; the five reads have no ordering dependency.
// Returns NotFound when there is no check-in in the last 30 days.
func (s *Service) fetchProfile(ctx context.Context, subjectID string) (subjectProfile, error) {
	var profile subjectProfile
	var hasData bool

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		features, ok, err := s.store.Features(gctx, subjectID)
		if err != nil {
			return fmt.Errorf("fetch features: %w", err)
		}
		profile.features, hasData = features, ok
		return nil
	})
	g.Go(func() error {
		snapshot, err := s.store.LatestWHO5(gctx, subjectID)
		if err != nil {
			return fmt.Errorf("fetch who5: %w", err)
		}
		profile.instruments.WHO5 = snapshot
		return nil
	})
	g.Go(func() error {
		snapshot, err := s.store.LatestKarasek(gctx, subjectID)
		if err != nil {
			return fmt.Errorf("fetch karasek: %w", err)
		}
		profile.instruments.Karasek = snapshot
		return nil
	})
	g.Go(func() error {
		snapshot, err := s.store.LatestERI(gctx, subjectID)
		if err != nil {
			return fmt.Errorf("fetch eri: %w", err)
		}
		profile.instruments.ERI = snapshot
		return nil
	})
	g.Go(func() error {
		snapshot, err := s.store.LatestUWES(gctx, subjectID)
		if err != nil {
			return fmt.Errorf("fetch uwes: %w", err)
		}
		profile.instruments.UWES = snapshot
		return nil
	})

	if err := g.Wait(); err != nil {
		return subjectProfile{}, err
	}
	if !hasData {
		return subjectProfile{}, errs.New(errs.KindNotFound, "no checkins in last 30 days")
	}
	return profile, nil
}

// ComputeScore evaluates the rule table for the subject, derives the
// trend against the last stored score for the same window, and persists
// the new score. The stored score is a new record, never an update.
func (s *Service) ComputeScore(ctx context.Context, subjectID, window string) (ScoreResult, error) {
	if !wellbeing.ValidWindow(window) {
		return ScoreResult{}, errs.Newf(errs.KindInvalidArgument,
			"time_window must be %q or %q", wellbeing.Window7d, wellbeing.Window30d)
	}

	profile, err := s.fetchProfile(ctx, subjectID)
	if err != nil {
		return ScoreResult{}, err
	}

	score, trace := wellbeing.ComputeScore(profile.features, profile.instruments)

	previous, err := s.store.LastScore(ctx, subjectID, window)
	if err != nil {
		return ScoreResult{}, fmt.Errorf("lookup previous score: %w", err)
	}
	trend := wellbeing.Trend(score, previous)

	computedAt := s.now().UTC()
	record := store.ScoreRecord{
		ID:         s.newID(),
		SubjectID:  subjectID,
		Window:     window,
		Score:      score,
		Trend:      trend,
		RuleTrace:  trace,
		ComputedAt: computedAt,
	}
	if err := s.store.InsertScore(ctx, record); err != nil {
		return ScoreResult{}, errs.Wrap(errs.KindPersistenceFailure, err, "persist score")
	}

	observability.ScoresComputed.WithLabelValues(window).Inc()
	s.logger.Debug("score computed for %s window=%s score=%d rules=%d", subjectID, window, score, len(trace))

	return ScoreResult{Score: score, Trend: trend, RuleTrace: trace, ComputedAt: computedAt}, nil
}

// ScanAlerts computes the current score and creates an alert when the
// risk classifier yields a tier. No alert is not an error.
func (s *Service) ScanAlerts(ctx context.Context, subjectID string) (AlertResult, error) {
	profile, err := s.fetchProfile(ctx, subjectID)
	if err != nil {
		return AlertResult{}, err
	}

	score, trace := wellbeing.ComputeScore(profile.features, profile.instruments)
	risk, warranted := wellbeing.ClassifyRisk(score, profile.features)
	if !warranted {
		return AlertResult{Created: false}, nil
	}

	record := store.AlertRecord{
		ID:          s.newID(),
		SubjectID:   subjectID,
		RiskLevel:   risk,
		PrimaryAxis: wellbeing.PrimaryAxis(profile.features),
		Notes:       fmt.Sprintf("rules=%s; score=%d", strings.Join(trace, ","), score),
		TargetRole:  alertTargetRole,
		UserConsent: true,
		Anonymized:  true,
		Status:      alertStatusOpen,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.store.InsertAlert(ctx, record); err != nil {
		return AlertResult{}, errs.Wrap(errs.KindPersistenceFailure, err, "persist alert")
	}

	observability.AlertsCreated.WithLabelValues(string(risk)).Inc()
	s.logger.Info("alert created for %s level=%s axis=%s", subjectID, risk, record.PrimaryAxis)

	return AlertResult{Created: true, RiskLevel: risk, AlertID: record.ID}, nil
}

// GetRecommendations evaluates the recommendation triggers against the
// subject's recent features and persists the emitted set.
func (s *Service) GetRecommendations(ctx context.Context, subjectID string) ([]wellbeing.Recommendation, error) {
	features, ok, err := s.store.Features(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("fetch features: %w", err)
	}
	if !ok {
		return nil, errs.New(errs.KindNotFound, "no checkins in last 30 days")
	}

	recommendations := wellbeing.GenerateRecommendations(features)

	createdAt := s.now().UTC()
	records := make([]store.RecommendationRecord, 0, len(recommendations))
	for _, reco := range recommendations {
		records = append(records, store.RecommendationRecord{
			ID:             s.newID(),
			SubjectID:      subjectID,
			Recommendation: reco,
			CreatedAt:      createdAt,
		})
	}
	if err := s.store.InsertRecommendations(ctx, records); err != nil {
		return nil, errs.Wrap(errs.KindPersistenceFailure, err, "persist recommendations")
	}

	return recommendations, nil
}

// RouteQuery picks the expert profile for a free-text question. The
// subject id is optional; without it the signal channel contributes
// nothing.
func (s *Service) RouteQuery(ctx context.Context, question, subjectID string) (routing.Decision, error) {
	if strings.TrimSpace(question) == "" {
		return routing.Decision{}, errs.New(errs.KindInvalidArgument, "question must not be empty")
	}
	if s.router == nil {
		return routing.Decision{}, errs.New(errs.KindInvalidArgument, "routing is not configured")
	}
	return s.router.Route(ctx, question, subjectID), nil
}

package routing

import (
	"context"
	"regexp"
	"strings"

	"zena/internal/embedding"
	"zena/internal/observability"
	"zena/internal/shared/logging"
	"zena/internal/wellbeing"
)

// FeatureSource provides the recent check-in features of a subject. A
// (zero FeatureSet, nil) or an error both mean "no behavioral signal";
// the router never fails because of this collaborator.
type FeatureSource interface {
	RecentFeatures(ctx context.Context, subjectID string) (wellbeing.FeatureSet, error)
}

// ChannelContributions breaks a profile's total down by channel, after
// weighting.
type ChannelContributions struct {
	Keywords float64 `json:"keywords"`
	Signals  float64 `json:"signals"`
	ZeroShot float64 `json:"zero_shot"`
}

// ProfileScore is the complete per-profile trace, retained for every
// profile (not only the winner) to support audit and debugging.
type ProfileScore struct {
	ProfileID     string               `json:"profile_id"`
	KeywordHits   []string             `json:"keyword_hits,omitempty"`
	Excluded      bool                 `json:"excluded,omitempty"`
	SignalTags    []string             `json:"signal_tags,omitempty"`
	Similarity    float64              `json:"similarity"`
	Contributions ChannelContributions `json:"contributions"`
	Total         float64              `json:"total"`
}

// Decision is the routing outcome plus its full explanation.
type Decision struct {
	ChosenProfileID string         `json:"chosen_profile_id"`
	NeedTags        []string       `json:"need_tags"`
	Degraded        bool           `json:"degraded,omitempty"`
	DegradedReason  string         `json:"degraded_reason,omitempty"`
	Profiles        []ProfileScore `json:"profiles"`
}

// Router combines keyword rules, behavioral signal boosts and zero-shot
// similarity into one deterministic decision. All request-scoped state
// is local; the only shared state is the profile embedding index.
type Router struct {
	catalog  *Catalog
	config   Config
	features FeatureSource
	index    *semanticIndex
	logger   logging.Logger
}

// NewRouter wires a router. features may be nil when no behavioral data
// source is available; the signal channel then always contributes 0.
func NewRouter(catalog *Catalog, config Config, embedder embedding.Embedder, features FeatureSource, logger logging.Logger) *Router {
	logger = logging.OrNop(logger)
	config.normalize()
	return &Router{
		catalog:  catalog,
		config:   config,
		features: features,
		index:    newSemanticIndex(catalog.Profiles(), embedder, logger),
		logger:   logger,
	}
}

// InvalidateEmbeddings drops the cached profile embeddings so they are
// recomputed on the next request. Call after a catalog reload.
func (r *Router) InvalidateEmbeddings() {
	r.index.Invalidate()
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// normalizeQuery case-folds and collapses whitespace; keyword matching
// operates on this form only.
func normalizeQuery(q string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(strings.ToLower(q), " "))
}

// Route scores every profile and picks the maximum. Ties break in
// catalog declaration order. The decision never fails on collaborator
// errors: a broken embedding provider degrades the semantic channel to
// zero for all profiles, a missing subject zeroes the signal channel.
func (r *Router) Route(ctx context.Context, question string, subjectID string) Decision {
	query := normalizeQuery(question)
	needTags := r.needTags(ctx, subjectID)

	similarities, degradedReason := r.similarities(ctx, query)
	if degradedReason != "" {
		observability.RoutingDegradations.Inc()
		r.logger.Warn("semantic channel degraded: %s", degradedReason)
	}

	profiles := make([]ProfileScore, 0, r.catalog.Len())
	for _, profile := range r.catalog.Profiles() {
		score := ProfileScore{ProfileID: profile.ID}

		score.KeywordHits, score.Excluded = r.keywordHits(profile.ID, query)
		score.Contributions.Keywords = r.config.Weights.RuleKeywords * float64(len(score.KeywordHits))

		boost := r.signalBoost(profile.ID, needTags)
		if boost > 0 {
			score.SignalTags = needTags
		}
		score.Contributions.Signals = r.config.Weights.UserSignals * boost

		score.Similarity = similarities[profile.ID]
		if sim := score.Similarity; sim > 0 {
			score.Contributions.ZeroShot = r.config.Weights.ZeroShot * sim
		}

		score.Total = score.Contributions.Keywords + score.Contributions.Signals + score.Contributions.ZeroShot
		profiles = append(profiles, score)
	}

	// Argmax over the ordered slice: strict > keeps the first declared
	// profile on ties.
	chosen := profiles[0]
	for _, candidate := range profiles[1:] {
		if candidate.Total > chosen.Total {
			chosen = candidate
		}
	}

	return Decision{
		ChosenProfileID: chosen.ProfileID,
		NeedTags:        needTags,
		Degraded:        degradedReason != "",
		DegradedReason:  degradedReason,
		Profiles:        profiles,
	}
}

// keywordHits returns the matched include keywords, or excluded=true
// when an exclude keyword voids the profile's keyword channel.
func (r *Router) keywordHits(profileID, query string) (hits []string, excluded bool) {
	rules, ok := r.config.Profiles[profileID]
	if !ok {
		return nil, false
	}
	for _, kw := range rules.KeywordsNot {
		if kw != "" && strings.Contains(query, kw) {
			return nil, true
		}
	}
	for _, kw := range rules.KeywordsAny {
		if kw != "" && strings.Contains(query, kw) {
			hits = append(hits, kw)
		}
	}
	return hits, false
}

// signalBoost accumulates the configured boost of every derived need tag
// mapped to this profile.
func (r *Router) signalBoost(profileID string, needTags []string) float64 {
	boosts, ok := r.config.SignalBoosts[profileID]
	if !ok {
		return 0
	}
	var total float64
	for _, tag := range needTags {
		total += boosts[tag]
	}
	return total
}

// needTags derives the behavioral tags, degrading to none when there is
// no subject or no recent data.
func (r *Router) needTags(ctx context.Context, subjectID string) []string {
	if subjectID == "" || r.features == nil {
		return []string{}
	}
	features, err := r.features.RecentFeatures(ctx, subjectID)
	if err != nil {
		r.logger.Debug("no behavioral signals for %s: %v", subjectID, err)
		return []string{}
	}
	return DeriveNeedTags(features)
}

// similarities queries the semantic channel; on any failure it reports
// the reason and an empty map so the channel contributes 0 everywhere.
func (r *Router) similarities(ctx context.Context, query string) (map[string]float64, string) {
	similarities, err := r.index.Similarities(ctx, query)
	if err != nil {
		return map[string]float64{}, err.Error()
	}
	return similarities, ""
}

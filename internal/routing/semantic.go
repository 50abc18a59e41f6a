package routing

import (
	"context"
	"fmt"
	"sync"

	chromem "github.com/philippgille/chromem-go"

	"zena/internal/embedding"
	"zena/internal/shared/logging"
)

const profileCollection = "profiles"

// semanticIndex caches the profile-description embeddings for the
// zero-shot channel. The index is built lazily on the first routing
// request and lives until Invalidate is called (catalog reload). A
// failed build is retried on the next request; rebuilding is idempotent.
type semanticIndex struct {
	embedder embedding.Embedder
	logger   logging.Logger

	mu         sync.Mutex
	db         *chromem.DB
	collection *chromem.Collection
	profiles   []Profile
}

func newSemanticIndex(profiles []Profile, embedder embedding.Embedder, logger logging.Logger) *semanticIndex {
	return &semanticIndex{
		embedder: embedder,
		logger:   logging.OrNop(logger),
		db:       chromem.NewDB(),
		profiles: profiles,
	}
}

// Similarities returns the cosine similarity between the query and every
// profile description, keyed by profile id. Any provider failure is
// returned as-is; the caller converts it into a degraded channel.
func (idx *semanticIndex) Similarities(ctx context.Context, query string) (map[string]float64, error) {
	collection, err := idx.ensure(ctx)
	if err != nil {
		return nil, err
	}

	results, err := collection.Query(ctx, query, len(idx.profiles), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query profile index: %w", err)
	}

	similarities := make(map[string]float64, len(results))
	for _, result := range results {
		similarities[result.ID] = float64(result.Similarity)
	}
	return similarities, nil
}

// ensure builds the collection on first use.
func (idx *semanticIndex) ensure(ctx context.Context) (*chromem.Collection, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.collection != nil {
		return idx.collection, nil
	}

	embeddingFunc := func(ctx context.Context, text string) ([]float32, error) {
		return idx.embedder.Embed(ctx, text)
	}
	collection, err := idx.db.GetOrCreateCollection(profileCollection, nil, embeddingFunc)
	if err != nil {
		return nil, fmt.Errorf("create profile collection: %w", err)
	}

	docs := make([]chromem.Document, 0, len(idx.profiles))
	for _, profile := range idx.profiles {
		docs = append(docs, chromem.Document{
			ID:      profile.ID,
			Content: profile.Description(),
		})
	}
	if err := collection.AddDocuments(ctx, docs, 1); err != nil {
		// Leave the collection unset so the next request rebuilds it.
		_ = idx.db.DeleteCollection(profileCollection)
		return nil, fmt.Errorf("embed profile descriptions: %w", err)
	}

	idx.logger.Info("profile embedding index built (%d profiles)", len(docs))
	idx.collection = collection
	return collection, nil
}

// Invalidate drops the cached embeddings so the next request rebuilds
// them. Intended for catalog reloads.
func (idx *semanticIndex) Invalidate() {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if idx.collection != nil {
		_ = idx.db.DeleteCollection(profileCollection)
		idx.collection = nil
	}
}

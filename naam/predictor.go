package naam

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"pranaam/models"
)

// Resolver locates a language model on the local filesystem, downloading it
// when necessary. *models.Store satisfies it.
type Resolver interface {
	Resolve(ctx context.Context, lang string, latest bool) (models.LocalModel, error)
}

// loadedModel pairs a model instance with the featurizer reproducing its
// training-time encoding.
type loadedModel struct {
	model Model
	feat  *Featurizer
}

// Predictor owns one loaded model per language, cached for the lifetime of
// the process so repeated calls pay the load cost once.
type Predictor struct {
	resolver Resolver
	cache    *lru.Cache[Language, loadedModel]
	log      *zap.SugaredLogger
}

type PredictorOption func(*Predictor)

func WithPredictorLogger(logger *zap.Logger) PredictorOption {
	return func(p *Predictor) { p.log = logger.Sugar() }
}

// NewPredictor builds a predictor around a resolver. The model cache is
// sized for the supported languages; nothing is ever evicted in practice.
func NewPredictor(resolver Resolver, opts ...PredictorOption) *Predictor {
	cache, _ := lru.New[Language, loadedModel](2)
	p := &Predictor{
		resolver: resolver,
		cache:    cache,
		log:      zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PredictBatch featurizes the whole batch in one pass and runs exactly one
// forward call over it. Raw probability i corresponds to input name i; empty
// and whitespace-only names are scored from the all-pad vector rather than
// dropped.
func (p *Predictor) PredictBatch(ctx context.Context, names []string, lang Language, latest bool) ([]float64, error) {
	if len(names) == 0 {
		return []float64{}, nil
	}

	lm, err := p.loaded(ctx, lang, latest)
	if err != nil {
		return nil, err
	}

	vectors := lm.feat.Encode(names)
	probs, err := lm.model.Infer(vectors)
	if err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}
	if len(probs) != len(names) {
		return nil, fmt.Errorf("model returned %d probabilities for %d names", len(probs), len(names))
	}
	return probs, nil
}

// loaded returns the in-memory model for lang, loading it on first use. A
// cached artifact that fails to load is re-downloaded once before the
// failure surfaces.
func (p *Predictor) loaded(ctx context.Context, lang Language, latest bool) (loadedModel, error) {
	if !latest {
		if lm, ok := p.cache.Get(lang); ok {
			return lm, nil
		}
	}

	handle, err := p.resolver.Resolve(ctx, string(lang), latest)
	if err != nil {
		return loadedModel{}, err
	}

	model, feat, err := loadModel(handle.Dir, lang)
	if err != nil {
		p.log.Warnw("cached model failed to load, re-downloading", "lang", lang, "error", err)
		var rerr error
		handle, rerr = p.resolver.Resolve(ctx, string(lang), true)
		if rerr != nil {
			return loadedModel{}, rerr
		}
		model, feat, err = loadModel(handle.Dir, lang)
		if err != nil {
			return loadedModel{}, fmt.Errorf("%w: %v", models.ErrCacheCorrupt, err)
		}
	}

	lm := loadedModel{model: model, feat: feat}
	p.cache.Add(lang, lm)
	p.log.Debugw("model loaded", "lang", lang, "dir", handle.Dir)
	return lm, nil
}

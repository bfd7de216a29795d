// Package naam predicts a binary religion label and confidence score from a
// personal name in English or Hindi script, using pretrained models fetched
// and cached on first use.
package naam

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"pranaam/models"
)

// Series is a column of names, the tabular input shape accepted by PredRel.
type Series []string

var ErrInvalidInput = errors.New("unsupported input type")

// Naam is the entry point into the prediction pipeline. Safe for repeated
// read-only use once the model cache is warm.
type Naam struct {
	pred *Predictor
	log  *zap.SugaredLogger
}

type Option func(*options)

type options struct {
	resolver Resolver
	logger   *zap.Logger
}

// WithResolver replaces the default model store.
func WithResolver(r Resolver) Option {
	return func(o *options) { o.resolver = r }
}

// WithLogger wires structured logging through the pipeline.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// New builds a Naam instance. Without options it uses the default model
// store and a no-op logger.
func New(opts ...Option) (*Naam, error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.resolver == nil {
		store, err := models.NewStore(models.WithLogger(o.logger))
		if err != nil {
			return nil, fmt.Errorf("building model store: %w", err)
		}
		o.resolver = store
	}
	return &Naam{
		pred: NewPredictor(o.resolver, WithPredictorLogger(o.logger)),
		log:  o.logger.Sugar(),
	}, nil
}

// PredRel predicts religion for the given input, which may be a single
// string, a []string, or a Series. Row i of the result corresponds to input
// item i; names are echoed verbatim. An empty input yields an empty table.
func (n *Naam) PredRel(ctx context.Context, input any, lang string, latest bool) (*ResultTable, error) {
	language, err := ParseLanguage(lang)
	if err != nil {
		return nil, err
	}

	names, err := normalizeInput(input)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return &ResultTable{Records: []PredictionRecord{}}, nil
	}

	n.log.Debugw("predicting", "names", len(names), "lang", language)
	raw, err := n.pred.PredictBatch(ctx, names, language, latest)
	if err != nil {
		return nil, err
	}
	return FormatResults(names, raw)
}

// normalizeInput converts every accepted input shape into one ordered slice
// of names. Core components never see the original heterogeneous type.
func normalizeInput(input any) ([]string, error) {
	switch v := input.(type) {
	case string:
		return []string{v}, nil
	case []string:
		return v, nil
	case Series:
		return []string(v), nil
	case nil:
		return nil, fmt.Errorf("%w: nil", ErrInvalidInput)
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidInput, input)
	}
}

var (
	defaultMu       sync.Mutex
	defaultInstance *Naam
)

// PredRel is the package-level convenience around a shared default instance.
// Constructing an explicit Naam remains the testable path.
func PredRel(ctx context.Context, input any, lang string, latest bool) (*ResultTable, error) {
	defaultMu.Lock()
	if defaultInstance == nil {
		n, err := New()
		if err != nil {
			defaultMu.Unlock()
			return nil, err
		}
		defaultInstance = n
	}
	n := defaultInstance
	defaultMu.Unlock()
	return n.PredRel(ctx, input, lang, latest)
}

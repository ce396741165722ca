package fakevalues

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/abhisek/llmfaker/internal/llm"
)

// Purpose labels backend requests made by the resolver in the event log.
const Purpose = "fake-values"

// Options carries the optional collaborators of a Resolver. Zero values
// select a no-op logger, a clock-seeded picker and the global otel
// providers.
type Options struct {
	Logger *zap.Logger
	Picker Picker
	Meter  metric.Meter
	Tracer trace.Tracer
}

// Resolver serves fake values for keys, refilling per-key pools from a
// backend on demand. It is safe for concurrent use. Concurrent misses on
// the same pool share one backend fetch.
type Resolver struct {
	provider llm.Provider
	cache    *Cache
	group    singleflight.Group
	log      *zap.Logger
	metrics  *metrics
	tracer   trace.Tracer

	mu  sync.RWMutex
	cfg Config
}

// NewResolver returns a Resolver that fetches from provider.
func NewResolver(provider llm.Provider, cfg Config, opts Options) (*Resolver, error) {
	if provider == nil {
		return nil, errors.New("fakevalues: nil provider")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("fakevalues: %w", err)
	}

	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Meter == nil {
		opts.Meter = otel.GetMeterProvider().Meter(instrumentationName)
	}
	if opts.Tracer == nil {
		opts.Tracer = otel.Tracer(instrumentationName)
	}

	m, err := newMetrics(opts.Meter)
	if err != nil {
		return nil, fmt.Errorf("fakevalues: create metrics: %w", err)
	}

	return &Resolver{
		provider: provider,
		cache:    NewCache(opts.Picker),
		log:      opts.Logger,
		metrics:  m,
		tracer:   opts.Tracer,
		cfg:      cfg,
	}, nil
}

// Config returns the current settings.
func (r *Resolver) Config() Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cfg
}

// SetUseFullKey toggles whether prompts include the domain segment.
// Pools already filled are kept.
func (r *Resolver) SetUseFullKey(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cfg.UseFullKey = v
}

// SetItemsPerFetch changes how many candidates later fetches ask for.
func (r *Resolver) SetItemsPerFetch(n int) error {
	if n < 1 || n > MaxItemsPerFetch {
		return fmt.Errorf("fakevalues: items per fetch must be between 1 and %d, got %d", MaxItemsPerFetch, n)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cfg.ItemsPerFetch = n
	return nil
}

// SetModel overrides the provider's model for later fetches. An empty
// name restores the provider default.
func (r *Resolver) SetModel(model string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cfg.Model = model
}

// Cache exposes the pools for inspection and reset.
func (r *Resolver) Cache() *Cache {
	return r.cache
}

// Resolve returns one unused value for key in language. ok is false when
// the backend could not supply one; the failure is logged and the next
// call for the key fetches again. The error is non-nil only for a
// malformed key, which never reaches the backend.
func (r *Resolver) Resolve(ctx context.Context, key, language string) (string, bool, error) {
	k, err := ParseKey(key)
	if err != nil {
		return "", false, err
	}
	pk := PoolKey{Key: key, Language: language}

	if v, ok := r.cache.Draw(pk); ok {
		r.metrics.recordLookup(ctx, key, true)
		return v, true, nil
	}
	r.metrics.recordLookup(ctx, key, false)

	if err := r.refill(ctx, k, pk); err != nil {
		r.log.Warn("no fake value available",
			zap.String("key", key),
			zap.String("language", language),
			zap.Error(err),
		)
		return "", false, nil
	}

	v, ok := r.cache.Draw(pk)
	if !ok {
		// Concurrent callers drained the fresh pool first.
		r.log.Debug("pool drained before draw",
			zap.String("key", key),
			zap.String("language", language),
		)
	}
	return v, ok, nil
}

// refill fills the pool for pk unless it already has candidates. Callers
// missing on the same pool at once wait on a single fetch. The fetch is
// detached from the caller that started it, so one caller giving up does
// not fail the others; the transport timeout bounds it.
func (r *Resolver) refill(ctx context.Context, k Key, pk PoolKey) error {
	fetchCtx := context.WithoutCancel(ctx)
	ch := r.group.DoChan(pk.groupKey(), func() (any, error) {
		if n := r.cache.Len(pk); n > 0 {
			return n, nil
		}
		values, err := r.fetch(fetchCtx, k, pk.Language)
		if err != nil {
			return 0, err
		}
		r.cache.Fill(pk, values)
		return len(values), nil
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Fetch asks the backend for one batch of candidates for key without
// touching the pools.
func (r *Resolver) Fetch(ctx context.Context, key, language string) ([]string, error) {
	k, err := ParseKey(key)
	if err != nil {
		return nil, err
	}
	return r.fetch(ctx, k, language)
}

func (r *Resolver) fetch(ctx context.Context, k Key, language string) (values []string, err error) {
	cfg := r.Config()
	key := k.String()
	requestID := uuid.NewString()

	ctx, span := r.tracer.Start(ctx, "llmfaker.refill", trace.WithAttributes(
		attribute.String("llmfaker.key", key),
		attribute.String("llmfaker.language", language),
		attribute.Int("llmfaker.items", cfg.ItemsPerFetch),
		attribute.String("llmfaker.request_id", requestID),
	))
	start := time.Now()
	defer func() {
		r.metrics.recordRefill(ctx, key, time.Since(start), failureReason(err))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.Int("llmfaker.candidates", len(values)))
		}
		span.End()
	}()

	ctx = llm.WithPurpose(ctx, Purpose)
	ctx = llm.WithRequestID(ctx, requestID)

	req := buildRequest(cfg, k, language)
	resp, err := r.provider.Generate(ctx, req)
	var text string
	if err != nil {
		salvaged, ok := rejectedText(err)
		if !ok {
			return nil, &TransportError{Key: key, Err: err}
		}
		r.log.Debug("normalizing response the provider rejected",
			zap.String("key", key),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		text = salvaged
	} else {
		text = resp.Text
	}

	norm, err := Normalize(text)
	if err != nil {
		return nil, err
	}
	if len(norm.Values) == 0 {
		return nil, ErrEmptyCandidateSet
	}

	r.log.Debug("fetched fake values",
		zap.String("key", key),
		zap.String("language", language),
		zap.String("request_id", requestID),
		zap.Stringer("strategy", norm.Strategy),
		zap.Int("count", len(norm.Values)),
	)
	return norm.Values, nil
}

// rejectedText returns the body of a response the provider received but
// refused, such as schema-invalid or truncated JSON. The normalizer is more
// forgiving than schema validation.
func rejectedText(err error) (string, bool) {
	var invalid *llm.ErrInvalidResponse
	if errors.As(err, &invalid) && invalid.Text != "" {
		return invalid.Text, true
	}
	var truncated *llm.ErrMaxTokensExceeded
	if errors.As(err, &truncated) && truncated.Text != "" {
		return truncated.Text, true
	}
	return "", false
}

func failureReason(err error) string {
	var transport *TransportError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &transport):
		return "transport"
	case errors.Is(err, ErrBackendUnparsable):
		return "unparsable"
	case errors.Is(err, ErrEmptyCandidateSet):
		return "empty"
	}
	return "other"
}

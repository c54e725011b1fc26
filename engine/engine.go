// Package engine wires the tap subsystems together: source readers,
// the network registry, the journal store, the payload codec, and the
// notification pipeline. It exposes the two import operations most
// applications need — Import for platform profiles and ImportRaw for
// opaque blobs — both executed through the configured pipeline so
// registered hooks observe every confirmed save.
//
// This package sits above all subsystem packages and below the
// application layer; the root tap package stays import-cycle free.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/veldt/tap"
	"github.com/veldt/tap/codec"
	"github.com/veldt/tap/id"
	"github.com/veldt/tap/journal"
	"github.com/veldt/tap/network"
	"github.com/veldt/tap/observe"
	"github.com/veldt/tap/pipeline"
	"github.com/veldt/tap/source"
)

// Engine is the central coordinator. Create one with New() and
// functional options; an Engine without a journal store is an error,
// everything else has a working default.
type Engine struct {
	config   tap.Config
	logger   *slog.Logger
	store    journal.Store
	sources  map[string]source.Reader
	networks *network.Registry
	codec    codec.Codec

	// hooks collected from options, handed to the strategy at build time.
	hooks []pipeline.Hook

	// fanout is non-nil only under StrategyFanout; it backs runtime
	// Register/Unregister.
	fanout   *pipeline.Fanout
	executor pipeline.Executor

	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

// Option configures an Engine.
type Option func(*Engine) error

// New creates an Engine with the given options. A journal store is
// required; the pipeline strategy, codec, and logger default per
// tap.DefaultConfig.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		config:   tap.DefaultConfig(),
		logger:   slog.Default(),
		sources:  make(map[string]source.Reader),
		networks: network.NewRegistry(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	if e.store == nil {
		return nil, tap.ErrNoStore
	}
	if e.codec == nil {
		e.codec = codec.Get(e.config.Codec)
	}
	if e.executor == nil {
		switch e.config.Strategy {
		case tap.StrategyChain:
			e.executor = pipeline.NewChain(e.hooks...).WithChainLogger(e.logger)
		default:
			f := pipeline.NewFanout(pipeline.WithLogger(e.logger))
			for _, h := range e.hooks {
				f.Register(h)
			}
			e.fanout = f
			e.executor = f
		}
	}
	if e.meterProvider != nil {
		e.executor = observe.MeteredWithMeter(e.executor, e.meterProvider.Meter("github.com/veldt/tap"))
	}
	if e.tracerProvider != nil {
		e.executor = observe.TracedWithTracer(e.executor, e.tracerProvider.Tracer("github.com/veldt/tap"))
	}
	return e, nil
}

// WithLogger sets the engine's logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) error {
		if l != nil {
			e.logger = l
		}
		return nil
	}
}

// WithConfig replaces the engine's configuration.
func WithConfig(cfg tap.Config) Option {
	return func(e *Engine) error {
		e.config = cfg
		return nil
	}
}

// WithStrategy sets the pipeline composition strategy.
func WithStrategy(s tap.Strategy) Option {
	return func(e *Engine) error {
		e.config.Strategy = s
		return nil
	}
}

// WithStore sets the journal store. Required.
func WithStore(s journal.Store) Option {
	return func(e *Engine) error {
		e.store = s
		return nil
	}
}

// WithSource registers a named source reader for ImportRaw.
func WithSource(name string, r source.Reader) Option {
	return func(e *Engine) error {
		if r == nil {
			return fmt.Errorf("engine: source %q: %w", name, tap.ErrNilService)
		}
		e.sources[name] = r
		return nil
	}
}

// WithNetwork registers a profile service for a network kind.
func WithNetwork(kind network.Kind, svc network.Service) Option {
	return func(e *Engine) error {
		return e.networks.Register(kind, svc)
	}
}

// WithHook adds hooks to the pipeline. Under StrategyFanout they can
// later be removed with Unregister; under StrategyChain the hook set
// is fixed once New returns.
func WithHook(hooks ...pipeline.Hook) Option {
	return func(e *Engine) error {
		e.hooks = append(e.hooks, hooks...)
		return nil
	}
}

// WithExecutor replaces the pipeline executor entirely. Hooks added
// with WithHook are ignored, and runtime Register/Unregister is
// unavailable.
func WithExecutor(ex pipeline.Executor) Option {
	return func(e *Engine) error {
		e.executor = ex
		return nil
	}
}

// WithCodec sets the payload codec used for persisted records.
func WithCodec(c codec.Codec) Option {
	return func(e *Engine) error {
		e.codec = c
		return nil
	}
}

// WithTracerProvider wraps the executor with OTel tracing.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(e *Engine) error {
		e.tracerProvider = tp
		return nil
	}
}

// WithMeterProvider wraps the executor with OTel metrics.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(e *Engine) error {
		e.meterProvider = mp
		return nil
	}
}

// Logger returns the engine's logger.
func (e *Engine) Logger() *slog.Logger { return e.logger }

// Store returns the engine's journal store.
func (e *Engine) Store() journal.Store { return e.store }

// Networks returns the engine's network registry.
func (e *Engine) Networks() *network.Registry { return e.networks }

// Executor returns the engine's pipeline executor, including any
// tracing or metrics wrappers.
func (e *Engine) Executor() pipeline.Executor { return e.executor }

// Register adds a hook at runtime. Only available under StrategyFanout.
func (e *Engine) Register(h pipeline.Hook) error {
	if e.fanout == nil {
		return tap.ErrStaticHookSet
	}
	e.fanout.Register(h)
	return nil
}

// Unregister removes a hook by name at runtime. Only available under
// StrategyFanout.
func (e *Engine) Unregister(name string) error {
	if e.fanout == nil {
		return tap.ErrStaticHookSet
	}
	return e.fanout.Unregister(name)
}

// Import resolves the service for kind, loads the profile at locator,
// encodes it, and persists a journal record — all as the pipeline's
// core operation, so hooks fire only after a confirmed save. The saved
// record is returned alongside the pipeline result; on core failure
// the record is nil and no hooks ran.
func (e *Engine) Import(ctx context.Context, kind network.Kind, locator string) (*journal.Record, *pipeline.Result, error) {
	runID := id.NewImportID()

	var rec *journal.Record
	op := func(ctx context.Context, payload []byte) ([]byte, error) {
		prof, err := e.networks.Dispatch(ctx, kind, string(payload))
		if err != nil {
			return nil, err
		}
		encoded, err := e.codec.Encode(prof)
		if err != nil {
			return nil, fmt.Errorf("engine: encode profile %q: %w", prof.Identity, err)
		}
		r := &journal.Record{
			ID:        id.NewRecordID(),
			Kind:      string(kind),
			Key:       prof.Identity,
			Payload:   encoded,
			Codec:     e.codec.Name(),
			CreatedAt: time.Now().UTC(),
		}
		if err := e.store.SaveRecord(ctx, r); err != nil {
			return nil, err
		}
		rec = r
		return encoded, nil
	}

	res, err := e.executor.Execute(ctx, op, []byte(locator))
	if err != nil {
		e.logger.Error("import failed",
			"import_id", runID,
			"kind", kind,
			"locator", locator,
			"error", err,
		)
		return nil, res, err
	}
	e.logger.Info("import completed",
		"import_id", runID,
		"kind", kind,
		"locator", locator,
		"record_id", rec.ID,
		"hook_failures", len(res.Diagnostics),
	)
	return rec, res, nil
}

// ImportRaw reads an opaque blob from the named source and persists it
// unencoded, again through the pipeline. Unknown source names fail with
// tap.ErrUnknownSource before any read happens.
func (e *Engine) ImportRaw(ctx context.Context, sourceName, blobID string) (*journal.Record, *pipeline.Result, error) {
	reader, ok := e.sources[sourceName]
	if !ok {
		return nil, nil, fmt.Errorf("engine: source %q: %w", sourceName, tap.ErrUnknownSource)
	}

	runID := id.NewImportID()

	var rec *journal.Record
	op := func(ctx context.Context, payload []byte) ([]byte, error) {
		data, err := reader.Read(ctx, string(payload))
		if err != nil {
			return nil, err
		}
		r := &journal.Record{
			ID:        id.NewRecordID(),
			Kind:      "raw/" + sourceName,
			Key:       blobID,
			Payload:   data,
			Codec:     "raw",
			CreatedAt: time.Now().UTC(),
		}
		if err := e.store.SaveRecord(ctx, r); err != nil {
			return nil, err
		}
		rec = r
		return data, nil
	}

	res, err := e.executor.Execute(ctx, op, []byte(blobID))
	if err != nil {
		e.logger.Error("raw import failed",
			"import_id", runID,
			"source", sourceName,
			"blob_id", blobID,
			"error", err,
		)
		return nil, res, err
	}
	e.logger.Info("raw import completed",
		"import_id", runID,
		"source", sourceName,
		"blob_id", blobID,
		"record_id", rec.ID,
	)
	return rec, res, nil
}

// Ping checks journal store connectivity.
func (e *Engine) Ping(ctx context.Context) error {
	return e.store.Ping(ctx)
}

// Close releases the journal store.
func (e *Engine) Close() error {
	return e.store.Close()
}

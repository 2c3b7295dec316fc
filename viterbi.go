package viterbi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aretw0/viterbi/pkg/adapters/memory"
	"github.com/aretw0/viterbi/pkg/domain"
	"github.com/aretw0/viterbi/pkg/hmm"
	"github.com/aretw0/viterbi/pkg/ports"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName identifies spans emitted by the engine.
const TracerName = "github.com/aretw0/viterbi"

// Recorder receives one observation per decode. internal/metrics provides a
// Prometheus implementation.
type Recorder interface {
	ObserveDecode(model string, length int, duration time.Duration, err error)
}

// Engine decodes observation sequences against named models.
// It compiles each model once and reuses it until Forget is called.
// An Engine is safe for concurrent use.
type Engine struct {
	loader   ports.ModelLoader
	compiled sync.Map // name -> *domain.Compiled
	// generation changes on every invalidation; a compile that started
	// before one is not kept in the cache.
	generation atomic.Uint64
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	recorder Recorder
	tracer   trace.Tracer
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithRecorder sets the sink for decode metrics.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		e.recorder = r
	}
}

// WithTracer sets the tracer used for decode spans.
// Defaults to the global OpenTelemetry provider.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) {
		e.tracer = t
	}
}

// New creates an Engine over loader. A nil loader serves the built-in models
// from memory.
func New(loader ports.ModelLoader, opts ...Option) *Engine {
	eng := &Engine{loader: loader}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.loader == nil {
		eng.loader = memory.NewStore(domain.Builtins()...)
	}
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.tracer == nil {
		eng.tracer = otel.Tracer(TracerName)
	}
	return eng
}

// Decode runs the Viterbi algorithm for the named model over raw symbols and
// returns the labelled most likely state path.
func (e *Engine) Decode(ctx context.Context, name string, symbols []string) (domain.Result, error) {
	ctx, span := e.tracer.Start(ctx, "viterbi.Decode", trace.WithAttributes(
		attribute.String("viterbi.model", name),
		attribute.Int("viterbi.length", len(symbols)),
	))
	defer span.End()

	evt := &domain.DecodeEvent{Timestamp: time.Now(), Model: name, Length: len(symbols)}
	if e.hooks.OnDecodeStart != nil {
		e.hooks.OnDecodeStart(ctx, evt)
	}

	res, err := e.decode(ctx, name, symbols)

	evt.Duration = time.Since(evt.Timestamp)
	if err != nil {
		evt.Err = err
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.logger.Debug("decode failed", "model", name, "length", len(symbols), "error", err)
	} else {
		evt.Result = &res
		span.SetAttributes(attribute.Float64("viterbi.score", res.Score))
		e.logger.Debug("decoded", "model", name, "length", len(symbols), "score", res.Score, "duration", evt.Duration)
	}
	if e.recorder != nil {
		e.recorder.ObserveDecode(name, len(symbols), evt.Duration, err)
	}
	if e.hooks.OnDecodeEnd != nil {
		e.hooks.OnDecodeEnd(ctx, evt)
	}
	return res, err
}

func (e *Engine) decode(ctx context.Context, name string, symbols []string) (domain.Result, error) {
	c, err := e.Compiled(ctx, name)
	if err != nil {
		return domain.Result{}, err
	}
	return c.Decode(symbols)
}

// DecodeIndices decodes symbol indices directly, skipping the alphabet.
func (e *Engine) DecodeIndices(ctx context.Context, name string, observations []int) (hmm.Path, error) {
	c, err := e.Compiled(ctx, name)
	if err != nil {
		return hmm.Path{}, err
	}
	return hmm.Decode(c.Model, observations)
}

// Compiled returns the compiled form of the named model, building and
// caching it on first use.
func (e *Engine) Compiled(ctx context.Context, name string) (*domain.Compiled, error) {
	if c, ok := e.compiled.Load(name); ok {
		return c.(*domain.Compiled), nil
	}

	gen := e.generation.Load()
	def, err := e.loader.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	c, err := def.Compile()
	if err != nil {
		return nil, err
	}

	actual, loaded := e.compiled.LoadOrStore(name, c)
	if !loaded && e.generation.Load() != gen {
		e.compiled.CompareAndDelete(name, c)
		return c, nil
	}
	if !loaded {
		e.logger.Info("model compiled", "model", name, "states", c.States.Len(), "symbols", c.Symbols.Len())
	}
	return actual.(*domain.Compiled), nil
}

// Models lists the names of every model the loader can serve.
func (e *Engine) Models(ctx context.Context) ([]string, error) {
	return e.loader.List(ctx)
}

// Describe returns the definition of the named model.
func (e *Engine) Describe(ctx context.Context, name string) (*domain.Definition, error) {
	return e.loader.Get(ctx, name)
}

// Save compiles def and persists it when the loader is a ports.ModelStore.
// The cached compiled model for that name is replaced.
func (e *Engine) Save(ctx context.Context, def *domain.Definition) error {
	store, ok := e.loader.(ports.ModelStore)
	if !ok {
		return domain.ErrReadOnly
	}
	c, err := def.Compile()
	if err != nil {
		return err
	}
	if err := store.Save(ctx, def); err != nil {
		return err
	}
	e.generation.Add(1)
	e.compiled.Store(def.Name, c)
	return nil
}

// Delete removes the named model when the loader is a ports.ModelStore.
func (e *Engine) Delete(ctx context.Context, name string) error {
	store, ok := e.loader.(ports.ModelStore)
	if !ok {
		return domain.ErrReadOnly
	}
	if err := store.Delete(ctx, name); err != nil {
		return err
	}
	e.Forget(name)
	return nil
}

// Forget drops the cached compiled model so the next decode reloads it.
func (e *Engine) Forget(name string) {
	e.generation.Add(1)
	e.compiled.Delete(name)
}

// Writable reports whether Save and Delete are supported.
func (e *Engine) Writable() bool {
	_, ok := e.loader.(ports.ModelStore)
	return ok
}

// Watch forgets cached models as the loader reports changes, until ctx is
// done. Returns an error if the loader does not support watching.
func (e *Engine) Watch(ctx context.Context) (<-chan string, error) {
	w, ok := e.loader.(ports.Watchable)
	if !ok {
		return nil, fmt.Errorf("current loader does not support watching")
	}
	changes, err := w.Watch(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan string, 1)
	go func() {
		defer close(out)
		for name := range changes {
			// A document ID may differ from the model name, so drop everything.
			e.generation.Add(1)
			e.compiled.Clear()
			e.logger.Info("model changed", "model", name)
			select {
			case out <- name:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Loader returns the underlying ModelLoader used by the engine.
func (e *Engine) Loader() ports.ModelLoader {
	return e.loader
}

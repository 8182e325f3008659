package nexus

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/nexuskit/nexus/pkg/nexus/observability"
)

// Nexus is the central dispatcher. It owns the registered occasions
// and the middleware pipeline, and runs the propagation loop.
//
// Occasions and middleware may be added any time before or between
// Emit calls. The nexus holds no facts between calls: the fact queue
// is local to each Emit invocation.
//
// Nexus is NOT safe for concurrent use. One Emit call runs to
// completion before returning; callers invoking Emit concurrently on
// the same nexus must serialize access externally, since occasion
// state mutation is not synchronized.
type Nexus struct {
	name        string
	occasions   map[string]*ActualOccasion
	order       []string
	middlewares []Middleware
	maxFacts    int

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
	tracing bool
}

// NewNexus creates a dispatcher with the given name.
//
// Panics if name is empty.
func NewNexus(name string, opts ...NexusOption) *Nexus {
	if name == "" {
		panic("nexus: nexus name cannot be empty")
	}

	n := &Nexus{
		name:      name,
		occasions: make(map[string]*ActualOccasion),
		metrics:   observability.NoopMetrics{},
		spans:     observability.NoopSpanManager{},
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

// Name returns the nexus name.
func (n *Nexus) Name() string {
	return n.name
}

// Add registers occasions by name. Registering a second occasion under
// an existing name replaces the prior one in place: fan-out order is
// insertion order, and a replacement keeps the original position.
// Returns the nexus for chaining.
//
// Panics if any occasion is nil.
func (n *Nexus) Add(occasions ...*ActualOccasion) *Nexus {
	for _, occ := range occasions {
		if occ == nil {
			panic("nexus: occasion cannot be nil")
		}
		if _, exists := n.occasions[occ.name]; !exists {
			n.order = append(n.order, occ.name)
		}
		n.occasions[occ.name] = occ
	}
	return n
}

// Bind registers prehensions: for each one, the subject occasion gets
// (Selector, Form) appended to its binding list. Sugar over
// ActualOccasion.On for declaring bindings independently of occasion
// construction. Returns the nexus for chaining.
//
// Panics if a prehension's subject is nil; nil selectors and forms
// panic in On.
func (n *Nexus) Bind(prehensions ...Prehension) *Nexus {
	for _, ph := range prehensions {
		if ph.Subject == nil {
			panic("nexus: prehension subject cannot be nil")
		}
		ph.Subject.On(ph.Selector, ph.Form)
	}
	return n
}

// Use appends a middleware to the pipeline. Registration order is
// application order. Returns the nexus for chaining.
//
// Panics if mw is nil.
func (n *Nexus) Use(mw Middleware) *Nexus {
	if mw == nil {
		panic("nexus: middleware cannot be nil")
	}
	n.middlewares = append(n.middlewares, mw)
	return n
}

// applyMiddlewares runs the full pipeline, in registration order, over
// one fact.
func (n *Nexus) applyMiddlewares(d Datum) Datum {
	for _, mw := range n.middlewares {
		d = mw(d)
	}
	return d
}

// Emit injects facts and propagates until quiescence, returning every
// fact observed during the run (inputs plus derived facts) in
// observation order.
//
// Propagation is breadth-first: all seeds are observed before any of
// their derivatives. For each dequeued fact, every occasion prehends
// it in registration order, each occasion's full output materialized
// before the next runs. Derived facts get the parent's correlation id
// (or the parent's own id at the root of a chain) and the parent's id
// as causation, unconditionally, then pass through middleware and join
// the tail of the queue.
//
// On failure (form error, panic, cancellation, or the WithMaxFacts
// guard) the run aborts immediately; the facts observed so far are
// returned with the error, and state mutations already applied are
// kept. There is no transactional guarantee across a run.
func (n *Nexus) Emit(ctx context.Context, data ...Datum) (observed []Datum, err error) {
	if ctx == nil {
		return nil, ErrNilContext
	}

	start := time.Now()
	observability.LogEmitStart(n.logger, n.name, len(data))

	runCtx := ctx
	var emitSpan trace.Span
	if n.tracing {
		runCtx, emitSpan = n.spans.StartEmitSpan(ctx, n.name, len(data))
		defer func() {
			n.spans.EndSpanWithError(emitSpan, err)
		}()
	}

	observed, err = n.propagate(runCtx, data)

	duration := time.Since(start)
	n.metrics.RecordEmit(ctx, err == nil, len(observed), duration)
	if err != nil {
		observability.LogEmitError(n.logger, n.name, err, len(observed), float64(duration.Milliseconds()))
	} else {
		observability.LogEmitComplete(n.logger, n.name, len(observed), float64(duration.Milliseconds()))
	}

	return observed, err
}

// propagate runs the breadth-first loop over a FIFO fact queue.
func (n *Nexus) propagate(ctx context.Context, data []Datum) ([]Datum, error) {
	queue := make([]Datum, 0, len(data))
	for _, d := range data {
		queue = append(queue, n.applyMiddlewares(d))
	}

	var observed []Datum
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		select {
		case <-ctx.Done():
			return observed, &CancellationError{Datum: current, Cause: ctx.Err()}
		default:
		}

		if n.maxFacts > 0 && len(observed) >= n.maxFacts {
			return observed, &MaxFactsError{Max: n.maxFacts, Datum: current}
		}

		observed = append(observed, current)
		observability.LogDatumObserved(n.logger, current.Name, current.ID, current.CorrelationID)

		datumCtx := ctx
		var datumSpan trace.Span
		if n.tracing {
			datumCtx, datumSpan = n.spans.StartDatumSpan(ctx, current.Name, current.ID)
		}

		totalDerived := 0
		var prehendErr error
		for _, name := range n.order {
			occ := n.occasions[name]

			derived, err := n.prehend(datumCtx, occ, current)
			if err != nil {
				n.metrics.RecordPrehensionError(ctx, occ.name)
				observability.LogPrehensionError(n.logger, occ.name, current.Name, err)
				prehendErr = err
				break
			}
			observability.LogDerived(n.logger, occ.name, current.ID, len(derived))
			totalDerived += len(derived)

			for _, d := range derived {
				queue = append(queue, n.applyMiddlewares(childOf(current, d)))
			}
		}

		n.metrics.RecordDatum(ctx, current.Name, totalDerived)
		if n.tracing {
			n.spans.AddSpanEvent(datumCtx, "nexus.datum.fanout",
				attribute.Int("derived_count", totalDerived))
			n.spans.EndSpanWithError(datumSpan, prehendErr)
		}
		if prehendErr != nil {
			return observed, prehendErr
		}
	}

	return observed, nil
}

// prehend lets one occasion take up a fact, converting form errors and
// recovered panics into run-fatal errors with occasion context.
func (n *Nexus) prehend(ctx context.Context, occ *ActualOccasion, d Datum) (derived []Datum, err error) {
	defer func() {
		if r := recover(); r != nil {
			derived = nil
			err = &PanicError{
				Occasion: occ.name,
				Datum:    d,
				Value:    r,
				Stack:    string(debug.Stack()),
			}
		}
	}()

	derived, err = occ.Prehend(ctx, d)
	if err != nil {
		return nil, &PrehensionError{Occasion: occ.name, Datum: d, Err: err}
	}
	return derived, nil
}

// Snapshot returns each occasion's current state keyed by name.
//
// The returned maps are live references, not deep copies: callers must
// treat them as read-only or they bypass the occasions' own mutation
// discipline. State accumulates across Emit calls and is never reset
// by the nexus.
func (n *Nexus) Snapshot() map[string]map[string]any {
	snap := make(map[string]map[string]any, len(n.occasions))
	for name, occ := range n.occasions {
		snap[name] = occ.State
	}
	return snap
}

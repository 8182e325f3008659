/*
Package nexus provides an in-process fact propagation engine.

# Overview

nexus is a Go library for event-driven composition inside a single
process. Named facts (Datum) are fed into a central dispatcher (Nexus),
which lets a collection of stateful reactors (ActualOccasion) observe
each fact and react to it, possibly producing new facts that re-enter
the same dispatch loop until no more facts are produced.

The engine threads causal metadata through every derived fact:

  - CorrelationID identifies the chain a fact descends from. All facts
    derived (at any depth) from the same initial fact share it.
  - CausationID is the ID of the immediate parent fact.

Every in-flight fact, initial or derived, passes through the registered
middleware pipeline before reactors observe it.

# Basic Usage

Create occasions, bind reactions, register them on a nexus, and emit:

	auditor := nexus.NewOccasion("auditor", map[string]any{"count": 0})
	auditor.On(nexus.Named("order.placed"), func(ctx context.Context, occ *nexus.ActualOccasion, d nexus.Datum) ([]nexus.Datum, error) {
	    occ.State["count"] = occ.State["count"].(int) + 1
	    return []nexus.Datum{
	        nexus.New("order.audited", map[string]any{"order": d.Payload["order"]}),
	    }, nil
	})

	nx := nexus.NewNexus("orders").Add(auditor)

	observed, err := nx.Emit(context.Background(), nexus.New("order.placed", map[string]any{"order": "A-1"}))
	if err != nil {
	    log.Fatal(err)
	}
	// observed contains "order.placed" followed by "order.audited".

Emit returns every fact observed during the run, inputs included, in
observation order.

# Propagation Semantics

Emit performs a breadth-first traversal over the fact-derivation graph:

 1. Middleware is applied to each initial fact, seeding a FIFO queue.
 2. The head fact is dequeued and appended to the observed sequence.
 3. Every occasion, in registration order, prehends the fact. Each
    occasion's full output is materialized before the next runs.
 4. Each derived fact is rewritten with the parent's correlation and
    causation ids, passed through middleware, and enqueued.
 5. The loop ends when the queue is empty.

Ordering is fully deterministic: occasion registration order, then
binding registration order within an occasion, then yield order within
a binding.

# Prehensions

A Prehension declares a binding independently of occasion construction:

	nx.Bind(nexus.Prehension{
	    Subject:  auditor,
	    Selector: nexus.Named("order.placed"),
	    Form:     recordOrder,
	})

Binding a prehension is equivalent to calling Subject.On directly.

# Middleware

Middleware is a pure Datum-to-Datum transform applied to every fact
before it is observed:

	nx.Use(func(d nexus.Datum) nexus.Datum {
	    payload := maps.Clone(d.Payload)
	    payload["region"] = "eu-west-1"
	    d.Payload = payload
	    return d
	})

Middleware runs in registration order; m2(m1(d)) for Use(m1); Use(m2).
A middleware may override the ID to rewrite a fact while preserving its
identity; all other facts get engine-generated unique IDs.

# Error Handling

Forms return errors; the first error aborts the run immediately and is
wrapped in a PrehensionError. Facts already observed are returned
alongside the error, and state mutations already applied are kept; a
run is not transactional. Panics in selectors and forms are recovered
and converted to PanicError with the stack trace.

	observed, err := nx.Emit(ctx, seed)
	var perr *nexus.PrehensionError
	if errors.As(err, &perr) {
	    log.Printf("occasion %s failed on %s: %v", perr.Occasion, perr.Datum.Name, perr.Err)
	}

# Termination

The engine does not bound derivation depth by default: a set of forms
that keep producing facts forever is a caller error. The optional
WithMaxFacts guard turns runaway runs into a MaxFactsError:

	nx := nexus.NewNexus("orders", nexus.WithMaxFacts(10_000))

Cancellation is honored between facts via the context passed to Emit.

# Observability

Structured logging, OpenTelemetry metrics, and tracing are opt-in:

	nx := nexus.NewNexus("orders",
	    nexus.WithLogger(slog.Default()),
	    nexus.WithMetrics(true),
	    nexus.WithTracing(true))

Logs carry nexus, datum_name, datum_id, and correlation_id fields.
Metrics: nexus.emit.runs, nexus.emit.latency_ms, nexus.datum.observed,
nexus.datum.derived, nexus.prehension.errors.
Tracing: a nexus.emit span per run with nexus.datum.{name} child spans.

# Thread Safety

  - Datum is a value; copies are independent.
  - ActualOccasion and Nexus are NOT safe for concurrent use. One Emit
    call runs to completion before returning; callers sharing a nexus
    across goroutines must serialize access externally.
  - Each occasion exclusively owns its State. Snapshot returns live
    references for diagnostics and must be treated as read-only.

# Subpackages

  - catalog: named selector/form/middleware registration
  - topology: declarative YAML/JSON nexus construction
  - observability: logging, metrics, and tracing helpers
*/
package nexus

package nexus

import (
	"time"

	"github.com/google/uuid"
)

// Datum is an immutable record of something that happened.
// It carries identity (ID), a semantic name, an opaque payload, and
// causal metadata linking it to the chain it descends from.
//
// Datum is a value type: once constructed it is never mutated. Any
// transformation (middleware, causal rewriting) builds a new value.
type Datum struct {
	// Name is the semantic event type (e.g., "order.placed").
	Name string `json:"name"`

	// Payload is an arbitrary mapping, opaque to the engine.
	// The engine never inspects its shape.
	Payload map[string]any `json:"payload"`

	// ID uniquely identifies this fact. Generated unless overridden.
	ID string `json:"id"`

	// CreatedAt is the UTC creation timestamp. Generated unless overridden.
	CreatedAt time.Time `json:"created_at"`

	// CorrelationID identifies the originating chain. Empty for facts
	// that have not yet entered a propagation run.
	CorrelationID string `json:"correlation_id,omitempty"`

	// CausationID is the ID of the immediate parent fact, if any.
	CausationID string `json:"causation_id,omitempty"`
}

// DatumOption configures datum construction.
type DatumOption func(*Datum)

// WithID sets a specific fact ID (default: auto-generated UUID).
// Intended for middleware rewriting a fact while preserving identity.
func WithID(id string) DatumOption {
	return func(d *Datum) {
		d.ID = id
	}
}

// WithCreatedAt sets a specific creation timestamp (default: time.Now UTC).
func WithCreatedAt(t time.Time) DatumOption {
	return func(d *Datum) {
		d.CreatedAt = t
	}
}

// WithCorrelationID sets the correlation ID.
//
// Correlation is normally threaded by the engine during propagation;
// setting it up front is only useful when joining an existing chain.
func WithCorrelationID(id string) DatumOption {
	return func(d *Datum) {
		d.CorrelationID = id
	}
}

// WithCausationID sets the causation ID.
func WithCausationID(id string) DatumOption {
	return func(d *Datum) {
		d.CausationID = id
	}
}

// New creates a fact with the given name and payload.
//
// Panics if name is empty. A nil payload is normalized to an empty map
// so Payload is always non-nil.
func New(name string, payload map[string]any, opts ...DatumOption) Datum {
	if name == "" {
		panic("nexus: datum name cannot be empty")
	}
	if payload == nil {
		payload = map[string]any{}
	}

	d := Datum{
		Name:      name,
		Payload:   payload,
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
	}

	for _, opt := range opts {
		opt(&d)
	}

	return d
}

// childOf rebuilds a derived fact with causal metadata threaded from
// its parent. Name, payload, and ID are preserved; correlation and
// causation are overridden unconditionally, even if the form set them.
func childOf(parent, derived Datum) Datum {
	correlation := parent.CorrelationID
	if correlation == "" {
		correlation = parent.ID
	}

	return New(derived.Name, derived.Payload,
		WithID(derived.ID),
		WithCorrelationID(correlation),
		WithCausationID(parent.ID),
	)
}

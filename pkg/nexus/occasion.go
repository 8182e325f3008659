package nexus

import "context"

// Selector is a pure predicate deciding whether a fact is relevant to
// a binding. Selectors must not mutate anything.
type Selector func(d Datum) bool

// Form is a reaction function: it receives the owning occasion and a
// matched fact, may mutate the occasion's own State, and returns zero
// or more derived facts in the order they should propagate.
//
// Returning an error aborts the entire propagation run.
type Form func(ctx context.Context, occ *ActualOccasion, d Datum) ([]Datum, error)

// Middleware is a pure Datum-to-Datum transform applied to every fact
// before it is observed by occasions.
type Middleware func(d Datum) Datum

// binding pairs a selector with a form. Evaluation order is
// registration order for the occasion's lifetime.
type binding struct {
	selector Selector
	form     Form
}

// ActualOccasion is a named, stateful reactor. It observes facts via
// its bindings and may emit new facts in response.
//
// State is exclusively owned by the occasion: only its own forms may
// mutate it. This is a contract, not a runtime check.
//
// ActualOccasion is NOT safe for concurrent use.
type ActualOccasion struct {
	name     string
	State    map[string]any
	bindings []binding
}

// NewOccasion creates an occasion with the given name and initial state.
// A nil state is normalized to an empty map.
//
// Panics if name is empty.
func NewOccasion(name string, state map[string]any) *ActualOccasion {
	if name == "" {
		panic("nexus: occasion name cannot be empty")
	}
	if state == nil {
		state = map[string]any{}
	}
	return &ActualOccasion{
		name:  name,
		State: state,
	}
}

// Name returns the occasion's name, its key within a nexus.
func (o *ActualOccasion) Name() string {
	return o.name
}

// On binds a form to a selector. Bindings are evaluated in the order
// they were added. Returns the occasion for chaining.
//
// Panics if selector or form is nil.
func (o *ActualOccasion) On(selector Selector, form Form) *ActualOccasion {
	if selector == nil {
		panic("nexus: selector cannot be nil")
	}
	if form == nil {
		panic("nexus: form cannot be nil")
	}
	o.bindings = append(o.bindings, binding{selector: selector, form: form})
	return o
}

// Prehend runs every binding whose selector matches d, in registration
// order, and returns the concatenated derived facts in yield order.
//
// Side effects of a matching form happen exactly once, before its
// outputs are appended. There is no isolation between bindings: a
// later binding observes state already mutated by an earlier one for
// the same fact. The first form error aborts and is returned as-is.
func (o *ActualOccasion) Prehend(ctx context.Context, d Datum) ([]Datum, error) {
	var derived []Datum
	for _, b := range o.bindings {
		if !b.selector(d) {
			continue
		}
		out, err := b.form(ctx, o, d)
		if err != nil {
			return nil, err
		}
		derived = append(derived, out...)
	}
	return derived, nil
}

// Prehension is one directed way an occasion takes up a fact: the
// subject occasion, which facts are relevant, and how the subject
// reacts. It is an immutable declaration; binding it via Nexus.Bind
// appends (Selector, Form) to the subject's binding list.
type Prehension struct {
	// Subject is the occasion doing the prehending. It must already
	// exist; the prehension does not own it.
	Subject *ActualOccasion

	// Selector decides which facts are relevant.
	Selector Selector

	// Form is how the subject takes up a matched fact.
	Form Form
}

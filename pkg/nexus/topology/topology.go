// Package topology builds nexus dispatchers from declarative YAML or
// JSON definitions.
//
// A topology file names the nexus, the middlewares to install, and the
// occasions with their initial state and prehensions. Reaction logic
// is referenced by name and resolved against a catalog at build time:
//
//	nexus: orders
//	middlewares: [stamp]
//	occasions:
//	  - name: auditor
//	    state:
//	      count: 0
//	    prehensions:
//	      - on: order.placed
//	        form: audit
//	  - name: notifier
//	    prehensions:
//	      - selector: interesting
//	        form: notify
//
// Each prehension matches either by exact datum name (on:) or by a
// named selector from the catalog (selector:), and names the form to
// run. Building is construction sugar only: a built nexus behaves
// identically to one assembled by hand with Add/On/Use.
package topology

import (
	"fmt"

	"github.com/nexuskit/nexus/pkg/nexus"
	"github.com/nexuskit/nexus/pkg/nexus/catalog"
)

// Definition is a parsed topology file.
type Definition struct {
	// Nexus is the dispatcher name. Required.
	Nexus string `yaml:"nexus" json:"nexus"`

	// Middlewares lists catalog middleware names, in application order.
	Middlewares []string `yaml:"middlewares" json:"middlewares"`

	// Occasions lists the occasions to register, in fan-out order.
	Occasions []OccasionDef `yaml:"occasions" json:"occasions"`
}

// OccasionDef declares one occasion.
type OccasionDef struct {
	// Name is the occasion name. Required, unique within the file.
	Name string `yaml:"name" json:"name"`

	// State is the initial state mapping. Optional.
	State map[string]any `yaml:"state" json:"state"`

	// Prehensions lists the bindings, in evaluation order.
	Prehensions []PrehensionDef `yaml:"prehensions" json:"prehensions"`
}

// PrehensionDef declares one binding. Exactly one of On or Selector
// must be set.
type PrehensionDef struct {
	// On matches facts by exact datum name.
	On string `yaml:"on" json:"on"`

	// Selector names a catalog selector.
	Selector string `yaml:"selector" json:"selector"`

	// Form names the catalog form to run on a match. Required.
	Form string `yaml:"form" json:"form"`
}

// Validate checks structural constraints that don't need a catalog.
func (def Definition) Validate() error {
	if def.Nexus == "" {
		return fmt.Errorf("topology: nexus name is required")
	}

	seen := make(map[string]bool, len(def.Occasions))
	for _, occ := range def.Occasions {
		if occ.Name == "" {
			return fmt.Errorf("topology: occasion name is required")
		}
		if seen[occ.Name] {
			return fmt.Errorf("topology: duplicate occasion name %q", occ.Name)
		}
		seen[occ.Name] = true

		for i, ph := range occ.Prehensions {
			if ph.Form == "" {
				return fmt.Errorf("topology: occasion %s prehension %d: form is required", occ.Name, i)
			}
			if (ph.On == "") == (ph.Selector == "") {
				return fmt.Errorf("topology: occasion %s prehension %d: exactly one of on/selector is required", occ.Name, i)
			}
		}
	}
	return nil
}

// Build resolves the definition against a catalog and assembles a
// dispatcher. Nexus options (logging, metrics, tracing, guards) are
// passed through to NewNexus.
//
// Unknown selector, form, or middleware names return UnknownSelectorError,
// UnknownFormError, or UnknownMiddlewareError respectively.
func (def Definition) Build(cat *catalog.Catalog, opts ...nexus.NexusOption) (*nexus.Nexus, error) {
	if cat == nil {
		return nil, fmt.Errorf("topology: catalog cannot be nil")
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}

	nx := nexus.NewNexus(def.Nexus, opts...)

	for _, name := range def.Middlewares {
		mw, ok := cat.Middleware(name)
		if !ok {
			return nil, &UnknownMiddlewareError{Name: name}
		}
		nx.Use(mw)
	}

	for _, occDef := range def.Occasions {
		occ := nexus.NewOccasion(occDef.Name, occDef.State)

		for _, phDef := range occDef.Prehensions {
			form, ok := cat.Form(phDef.Form)
			if !ok {
				return nil, &UnknownFormError{Occasion: occDef.Name, Name: phDef.Form}
			}

			var sel nexus.Selector
			if phDef.On != "" {
				sel = nexus.Named(phDef.On)
			} else {
				sel, ok = cat.Selector(phDef.Selector)
				if !ok {
					return nil, &UnknownSelectorError{Occasion: occDef.Name, Name: phDef.Selector}
				}
			}

			occ.On(sel, form)
		}

		nx.Add(occ)
	}

	return nx, nil
}

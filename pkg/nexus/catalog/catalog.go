// Package catalog provides named registration of selectors, forms, and
// middlewares so reaction logic can be referenced by name, e.g. from
// declarative topology files.
//
// A Catalog is a factory table: code registers capabilities once at
// startup, and construction-time consumers (see the topology package)
// resolve them by name:
//
//	cat := catalog.New()
//	cat.RegisterSelector("orders", nexus.Named("order.placed"))
//	cat.RegisterForm("audit", auditForm)
//	cat.RegisterMiddleware("stamp", stampRegion)
//
//	form, ok := cat.Form("audit")
//
// All methods are safe for concurrent use; lookups are read-heavy and
// use an RWMutex. Registering a name twice replaces the prior entry.
package catalog

import (
	"fmt"
	"sort"
	"sync"

	"github.com/nexuskit/nexus/pkg/nexus"
)

// Catalog is a thread-safe table of named capabilities.
type Catalog struct {
	mu          sync.RWMutex
	selectors   map[string]nexus.Selector
	forms       map[string]nexus.Form
	middlewares map[string]nexus.Middleware
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		selectors:   make(map[string]nexus.Selector),
		forms:       make(map[string]nexus.Form),
		middlewares: make(map[string]nexus.Middleware),
	}
}

// RegisterSelector adds or replaces a named selector.
//
// Panics if name is empty or sel is nil.
func (c *Catalog) RegisterSelector(name string, sel nexus.Selector) *Catalog {
	if name == "" {
		panic("catalog: selector name cannot be empty")
	}
	if sel == nil {
		panic("catalog: selector cannot be nil")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectors[name] = sel
	return c
}

// RegisterForm adds or replaces a named form.
//
// Panics if name is empty or form is nil.
func (c *Catalog) RegisterForm(name string, form nexus.Form) *Catalog {
	if name == "" {
		panic("catalog: form name cannot be empty")
	}
	if form == nil {
		panic("catalog: form cannot be nil")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.forms[name] = form
	return c
}

// RegisterMiddleware adds or replaces a named middleware.
//
// Panics if name is empty or mw is nil.
func (c *Catalog) RegisterMiddleware(name string, mw nexus.Middleware) *Catalog {
	if name == "" {
		panic("catalog: middleware name cannot be empty")
	}
	if mw == nil {
		panic("catalog: middleware cannot be nil")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.middlewares[name] = mw
	return c
}

// Selector returns the named selector and whether it exists.
func (c *Catalog) Selector(name string) (nexus.Selector, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	sel, ok := c.selectors[name]
	return sel, ok
}

// Form returns the named form and whether it exists.
func (c *Catalog) Form(name string) (nexus.Form, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	form, ok := c.forms[name]
	return form, ok
}

// Middleware returns the named middleware and whether it exists.
func (c *Catalog) Middleware(name string) (nexus.Middleware, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	mw, ok := c.middlewares[name]
	return mw, ok
}

// MustSelector returns the named selector, panicking if not found.
func (c *Catalog) MustSelector(name string) nexus.Selector {
	sel, ok := c.Selector(name)
	if !ok {
		panic(fmt.Sprintf("catalog: selector %q not found", name))
	}
	return sel
}

// MustForm returns the named form, panicking if not found.
func (c *Catalog) MustForm(name string) nexus.Form {
	form, ok := c.Form(name)
	if !ok {
		panic(fmt.Sprintf("catalog: form %q not found", name))
	}
	return form
}

// MustMiddleware returns the named middleware, panicking if not found.
func (c *Catalog) MustMiddleware(name string) nexus.Middleware {
	mw, ok := c.Middleware(name)
	if !ok {
		panic(fmt.Sprintf("catalog: middleware %q not found", name))
	}
	return mw
}

// SelectorNames returns the registered selector names, sorted.
func (c *Catalog) SelectorNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return sortedKeys(c.selectors)
}

// FormNames returns the registered form names, sorted.
func (c *Catalog) FormNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return sortedKeys(c.forms)
}

// MiddlewareNames returns the registered middleware names, sorted.
func (c *Catalog) MiddlewareNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return sortedKeys(c.middlewares)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

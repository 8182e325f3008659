package topology

import "fmt"

// UnknownSelectorError indicates a prehension referenced a selector
// name missing from the catalog.
type UnknownSelectorError struct {
	// Occasion is the occasion declaring the prehension.
	Occasion string
	// Name is the missing selector name.
	Name string
}

// Error implements the error interface.
func (e *UnknownSelectorError) Error() string {
	return fmt.Sprintf("topology: occasion %s: unknown selector %q", e.Occasion, e.Name)
}

// UnknownFormError indicates a prehension referenced a form name
// missing from the catalog.
type UnknownFormError struct {
	// Occasion is the occasion declaring the prehension.
	Occasion string
	// Name is the missing form name.
	Name string
}

// Error implements the error interface.
func (e *UnknownFormError) Error() string {
	return fmt.Sprintf("topology: occasion %s: unknown form %q", e.Occasion, e.Name)
}

// UnknownMiddlewareError indicates the definition referenced a
// middleware name missing from the catalog.
type UnknownMiddlewareError struct {
	// Name is the missing middleware name.
	Name string
}

// Error implements the error interface.
func (e *UnknownMiddlewareError) Error() string {
	return fmt.Sprintf("topology: unknown middleware %q", e.Name)
}

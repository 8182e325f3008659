package nexus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrehensionError(t *testing.T) {
	inner := errors.New("boom")
	err := &PrehensionError{Occasion: "auditor", Datum: New("tick", nil), Err: inner}

	assert.Contains(t, err.Error(), "auditor")
	assert.Contains(t, err.Error(), "tick")
	assert.ErrorIs(t, err, inner)
}

func TestPanicError(t *testing.T) {
	err := &PanicError{Occasion: "auditor", Datum: New("tick", nil), Value: "kaboom", Stack: "stack"}

	assert.Contains(t, err.Error(), "auditor")
	assert.Contains(t, err.Error(), "kaboom")
}

func TestCancellationError(t *testing.T) {
	err := &CancellationError{Datum: New("tick", nil), Cause: context.Canceled}

	assert.Contains(t, err.Error(), "tick")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMaxFactsError(t *testing.T) {
	err := &MaxFactsError{Max: 100, Datum: New("tick", nil)}

	assert.Contains(t, err.Error(), "100")
	assert.ErrorIs(t, err, ErrMaxFacts)
}

// Package model holds the process-wide active chat model.
package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync/atomic"
)

// ErrInvalidModel is returned by Set for names outside the allow-list.
var ErrInvalidModel = errors.New("model is not allowed")

// Selector is the only state shared between update handlers. Get and Set
// are each atomic and concurrent Sets resolve as last-write-wins; Set stores
// an already validated value, so there is no read-modify-write to guard.
// The value lives in memory only and starts from the configured default.
type Selector struct {
	active  atomic.Pointer[string]
	allowed []string
}

// NewSelector starts at initial. initial is always allowed, even when it is
// missing from allowed.
func NewSelector(initial string, allowed []string) *Selector {
	s := &Selector{}
	for _, name := range allowed {
		if name = strings.TrimSpace(name); name != "" && !slices.Contains(s.allowed, name) {
			s.allowed = append(s.allowed, name)
		}
	}
	if !slices.Contains(s.allowed, initial) {
		s.allowed = append(s.allowed, initial)
	}

	s.active.Store(&initial)
	return s
}

// Get returns the active model.
func (s *Selector) Get() string {
	return *s.active.Load()
}

// Set replaces the active model and returns it. A name outside the
// allow-list leaves the active model untouched.
func (s *Selector) Set(requested string) (string, error) {
	requested = strings.TrimSpace(requested)
	if !s.IsAllowed(requested) {
		return "", fmt.Errorf("%w: %q", ErrInvalidModel, requested)
	}

	s.active.Store(&requested)
	return requested, nil
}

// IsAllowed reports whether name may be selected.
func (s *Selector) IsAllowed(name string) bool {
	return slices.Contains(s.allowed, name)
}

// Allowed returns the allow-list in configuration order.
func (s *Selector) Allowed() []string {
	return slices.Clone(s.allowed)
}

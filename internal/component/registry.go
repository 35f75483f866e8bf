// internal/component/registry.go
//
// Component registry (cycle-free).
//
// Each concrete component lives under components/<name> and calls
// component.Register() in an init() function.  cmd/web hands the shared
// Deps to every component through Init and then lets it add its routes to
// a group of the root router.

package component

import (
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Component contract.
//
// Init runs once, before Routes, with the process-wide dependencies.
// Routes adds both page and form-action endpoints to r, e.g:
//
//	r.Get("/planets/{planet}/buildings", c.load)
//	r.Post("/planets/{planet}/buildings/{action}", c.act)
type Component interface {
	Name() string
	Init(Deps) error
	Routes(r chi.Router)
}

var (
	mu       sync.RWMutex
	registry = map[string]Component{}
)

// Register is invoked from component init() functions.  A later call with
// the same name replaces the earlier one.
func Register(c Component) {
	mu.Lock()
	registry[c.Name()] = c
	mu.Unlock()
}

// All returns every registered component sorted by name so mount order is
// stable between runs.
func All() []Component {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Component, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Mount initialises every registered component with deps and adds its
// routes to r, each in its own middleware group.
func Mount(r chi.Router, deps Deps) error {
	if err := deps.Validate(); err != nil {
		return err
	}
	for _, c := range All() {
		if err := c.Init(deps); err != nil {
			return &InitError{Component: c.Name(), Err: err}
		}
		r.Group(c.Routes)
	}
	return nil
}

// InitError reports which component refused to start.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string { return "component " + e.Component + ": " + e.Err.Error() }
func (e *InitError) Unwrap() error { return e.Err }

package component

import (
	"errors"

	"github.com/yanizio/stellar-dominion/internal/cookies"
	"github.com/yanizio/stellar-dominion/internal/game"
)

// Deps are the shared resources handed to components during Init.
type Deps struct {
	API     game.API
	Cookies *cookies.Binder
}

// ErrMissingDeps is returned by Validate when a field is nil.
var ErrMissingDeps = errors.New("component: API and Cookies are required")

// Validate reports whether every dependency is set.
func (d Deps) Validate() error {
	if d.API == nil || d.Cookies == nil {
		return ErrMissingDeps
	}
	return nil
}

// Package lifecycle valida cambios de estado de entidades con estados enumerados.
package lifecycle

import (
	"fmt"

	"github.com/ccis-arch/avacc/internal/platform/apperr"
)

// Table describe los estados conocidos y las transiciones permitidas desde cada uno.
type Table[S ~string] struct {
	name    string
	allowed map[S][]S
}

// NewTable: cada estado enumerado debe figurar como clave, aunque sea terminal.
func NewTable[S ~string](name string, allowed map[S][]S) Table[S] {
	return Table[S]{name: name, allowed: allowed}
}

func (t Table[S]) Known(s S) bool {
	_, ok := t.allowed[s]
	return ok
}

// Parse valida un valor crudo contra los estados enumerados.
func (t Table[S]) Parse(raw string) (S, error) {
	s := S(raw)
	if !t.Known(s) {
		return s, fmt.Errorf("%w: unknown %s status %q", apperr.ErrInvalidInput, t.name, raw)
	}
	return s, nil
}

// Check valida from -> to. Mismo estado es no-op.
// Con enforce=false alcanza con que to sea un estado enumerado.
func (t Table[S]) Check(from, to S, enforce bool) error {
	if !t.Known(to) {
		return fmt.Errorf("%w: unknown %s status %q", apperr.ErrInvalidInput, t.name, to)
	}
	if from == to || !enforce {
		return nil
	}
	for _, next := range t.allowed[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: invalid status transition %s -> %s", apperr.ErrConflict, from, to)
}

// Package registry holds the ordered catalog of available compliance checks.
package registry

import (
	"errors"
	"fmt"

	"github.com/ewatkins/checkmate/internal/domain/model"
)

// ErrDuplicateCheck is returned when a check name is registered twice.
var ErrDuplicateCheck = errors.New("duplicate check name")

// ErrUnknownCheck is returned when an include filter names a check that was
// never registered. Unknown names fail fast rather than being silently
// dropped, so a typo in --module cannot masquerade as a clean run.
var ErrUnknownCheck = errors.New("unknown check name")

// Registry is an ordered catalog of check definitions. Registration order is
// execution order and is part of the observable contract.
type Registry struct {
	defs   []model.CheckDefinition
	byName map[string]int
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// Register appends a definition to the catalog. Names are unique; a
// duplicate fails with ErrDuplicateCheck.
func (r *Registry) Register(def model.CheckDefinition) error {
	if def.Name == "" {
		return errors.New("check name must not be empty")
	}
	if _, ok := r.byName[def.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateCheck, def.Name)
	}
	r.byName[def.Name] = len(r.defs)
	r.defs = append(r.defs, def)
	return nil
}

// List returns checks in registration order, filtered. A non-empty include
// takes strict precedence: only named checks are returned and exclude is
// ignored entirely. Unknown include names fail with ErrUnknownCheck.
// Unknown exclude names are ignored.
func (r *Registry) List(include, exclude []string) ([]model.CheckDefinition, error) {
	if len(include) > 0 {
		wanted := make(map[string]bool, len(include))
		for _, name := range include {
			if _, ok := r.byName[name]; !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownCheck, name)
			}
			wanted[name] = true
		}

		var out []model.CheckDefinition
		for _, def := range r.defs {
			if wanted[def.Name] {
				out = append(out, def)
			}
		}
		return out, nil
	}

	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[name] = true
	}

	var out []model.CheckDefinition
	for _, def := range r.defs {
		if !skip[def.Name] {
			out = append(out, def)
		}
	}
	return out, nil
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (model.CheckDefinition, bool) {
	i, ok := r.byName[name]
	if !ok {
		return model.CheckDefinition{}, false
	}
	return r.defs[i], true
}

// Names returns every registered check name in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.defs))
	for _, def := range r.defs {
		names = append(names, def.Name)
	}
	return names
}

// Len returns the number of registered checks.
func (r *Registry) Len() int { return len(r.defs) }

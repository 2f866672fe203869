// Package registry implements small closed name -> value tables.
//
// Registries are filled once at construction and never mutated afterwards,
// lookups of names that were not registered fail with an UnknownKeyError.
package registry

import (
	"errors"
	"fmt"

	"sabrmetrics/lib/textutil"
)

// UnknownKeyError is returned when a name is looked up in a registry that
// does not contain it.
type UnknownKeyError struct {
	Registry string
	Key      string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("%s: unknown key %q", e.Registry, e.Key)
}

// AsUnknownKey attempts to unwrap an error into an UnknownKeyError.
func AsUnknownKey(err error) (*UnknownKeyError, bool) {
	var keyErr *UnknownKeyError
	if errors.As(err, &keyErr) {
		return keyErr, true
	}
	return nil, false
}

// Entry is a single name -> value pair used to construct a Registry.
type Entry[T any] struct {
	Name  string
	Value T
	// Aliases are alternative names that resolve to the same value.
	Aliases []string
}

// Registry is an immutable, ordered name -> value table.
type Registry[T any] struct {
	name    string
	order   []string
	values  map[string]T
	aliases map[string]string
}

// New builds a registry out of the given entries, names are matched
// case-insensitively. It panics on duplicate names since registries are
// only ever built from static tables.
func New[T any](name string, entries ...Entry[T]) Registry[T] {
	r := Registry[T]{
		name:    name,
		values:  make(map[string]T, len(entries)),
		aliases: make(map[string]string),
	}
	for _, e := range entries {
		key := normalize(e.Name)
		if _, exists := r.values[key]; exists {
			panic(fmt.Sprintf("%s: duplicate entry %q", name, e.Name))
		}
		r.values[key] = e.Value
		r.order = append(r.order, e.Name)

		for _, alias := range e.Aliases {
			aliasKey := normalize(alias)
			if _, exists := r.aliases[aliasKey]; exists {
				panic(fmt.Sprintf("%s: duplicate alias %q", name, alias))
			}
			r.aliases[aliasKey] = key
		}
	}
	return r
}

func normalize(name string) string {
	return textutil.NormalizeName(name)
}

// Lookup returns the value registered under name (or one of its aliases).
func (r Registry[T]) Lookup(name string) (T, error) {
	key := normalize(name)
	if v, ok := r.values[key]; ok {
		return v, nil
	}
	if target, ok := r.aliases[key]; ok {
		return r.values[target], nil
	}
	var zero T
	return zero, &UnknownKeyError{Registry: r.name, Key: name}
}

// Must is Lookup for names known at compile time.
func (r Registry[T]) Must(name string) T {
	v, err := r.Lookup(name)
	if err != nil {
		panic(err)
	}
	return v
}

// Names returns the canonical names in registration order.
func (r Registry[T]) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Values returns the registered values in registration order.
func (r Registry[T]) Values() []T {
	out := make([]T, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.values[normalize(name)])
	}
	return out
}

// Name is the name of the registry itself, used in error messages.
func (r Registry[T]) Name() string {
	return r.name
}

// Package address declares the parameters an endpoint family accepts and
// turns caller supplied values into a request address.
//
// A Schema is built once per endpoint family and never mutated. Each call
// resolves overrides against the schema defaults into a FieldSet, which
// serializes deterministically into an Address.
package address

import (
	"fmt"

	"sabrmetrics/lib/registry"
)

// Location says where a present field is written in the address.
type Location int

const (
	// InQuery fields are written as `param=value` query entries.
	InQuery Location = iota
	// InPath fields are appended as path segments after the base.
	InPath
)

// Field declares a single parameter.
type Field struct {
	// Name is the name callers use in overrides.
	Name string
	// Param is the query parameter name, it defaults to Name.
	Param string
	Type  Type
	// Default is used when the caller does not supply a value, nil means
	// the field is absent by default.
	Default any
	In      Location
}

func (f Field) param() string {
	if f.Param == "" {
		return f.Name
	}
	return f.Param
}

// Schema is the ordered set of fields recognized by one endpoint family.
type Schema struct {
	base   string
	fields []Field
	index  map[string]int
}

// NewSchema creates a schema. It panics on duplicate field names or fields
// without a type, both of which are mistakes in a static declaration.
func NewSchema(base string, fields ...Field) Schema {
	s := Schema{
		base:   base,
		fields: make([]Field, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	copy(s.fields, fields)
	for i, f := range s.fields {
		if f.Type == nil {
			panic(fmt.Sprintf("address: field %q has no type", f.Name))
		}
		if _, exists := s.index[f.Name]; exists {
			panic(fmt.Sprintf("address: duplicate field %q", f.Name))
		}
		s.index[f.Name] = i
	}
	return s
}

func (s Schema) Base() string {
	return s.base
}

// FieldNames returns the declared field names in declaration order.
func (s Schema) FieldNames() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

func (s Schema) lookup(name string) (Field, error) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, &registry.UnknownKeyError{Registry: "schema " + s.base, Key: name}
	}
	return s.fields[i], nil
}

func (s Schema) FieldType(name string) (Type, error) {
	f, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	return f.Type, nil
}

// FieldDefault returns the default of a field, the bool is false when the
// field is absent by default.
func (s Schema) FieldDefault(name string) (any, bool, error) {
	f, err := s.lookup(name)
	if err != nil {
		return nil, false, err
	}
	v, present := indirect(f.Default)
	return v, present, nil
}

// Defaults returns the FieldSet made only of declared defaults.
func (s Schema) Defaults() (FieldSet, error) {
	return s.Resolve(nil)
}

// Resolve merges overrides over the declared defaults and validates the
// result.
//
// Absent overrides (missing keys, nil, nil pointers, nil slices and maps)
// never replace a default. Keys that are not declared by the schema are ignored.
func (s Schema) Resolve(overrides map[string]any) (FieldSet, error) {
	values := make([]any, len(s.fields))
	for i, f := range s.fields {
		values[i], _ = indirect(f.Default)
	}

	for name, override := range overrides {
		i, ok := s.index[name]
		if !ok {
			continue
		}
		v, present := indirect(override)
		if !present {
			continue
		}
		values[i] = v
	}

	for i, f := range s.fields {
		if !Matches(values[i], f.Type) {
			return FieldSet{}, &TypeMismatchError{
				Field:    f.Name,
				Expected: f.Type.String(),
				Actual:   fmt.Sprintf("%T", values[i]),
			}
		}
	}

	return FieldSet{schema: s, values: values}, nil
}

// Build resolves overrides and serializes the result.
func (s Schema) Build(overrides map[string]any) (Address, error) {
	set, err := s.Resolve(overrides)
	if err != nil {
		return Address{}, err
	}
	return Serialize(set), nil
}

// FieldSet holds a value (or absence) for every field of its schema.
type FieldSet struct {
	schema Schema
	values []any
}

func (f FieldSet) Schema() Schema {
	return f.schema
}

// Get returns the current value of a field, nil when absent or unknown.
func (f FieldSet) Get(name string) any {
	i, ok := f.schema.index[name]
	if !ok {
		return nil
	}
	return f.values[i]
}

// Names returns the field names in declaration order.
func (f FieldSet) Names() []string {
	return f.schema.FieldNames()
}

// Map copies the field set into a map, absent fields map to nil.
func (f FieldSet) Map() map[string]any {
	out := make(map[string]any, len(f.values))
	for i, field := range f.schema.fields {
		out[field.Name] = f.values[i]
	}
	return out
}

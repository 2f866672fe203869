package address

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Type describes the values a field accepts.
type Type interface {
	fmt.Stringer
	// Matches reports whether a (present, non-nil) value satisfies the type.
	Matches(value any) bool
	// Parse reads a value of the type from text.
	Parse(text string) (any, error)
}

type kindType struct {
	name  string
	kinds []reflect.Kind
	parse func(text string) (any, error)
}

func (k kindType) String() string {
	return k.name
}

func (k kindType) Matches(value any) bool {
	kind := reflect.TypeOf(value).Kind()
	for _, candidate := range k.kinds {
		if kind == candidate {
			return true
		}
	}
	return false
}

func (k kindType) Parse(text string) (any, error) {
	return k.parse(text)
}

type dateType struct{}

func (dateType) String() string {
	return "date"
}

func (dateType) Matches(value any) bool {
	_, ok := value.(time.Time)
	return ok
}

func (dateType) Parse(text string) (any, error) {
	return time.Parse(DateLayout, text)
}

type anyType struct{}

func (anyType) String() string {
	return "any"
}

func (anyType) Matches(any) bool {
	return true
}

func (anyType) Parse(text string) (any, error) {
	return text, nil
}

var (
	Int Type = kindType{
		name:  "int",
		kinds: []reflect.Kind{reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64},
		parse: func(text string) (any, error) { return strconv.Atoi(text) },
	}
	Float Type = kindType{
		name:  "float",
		kinds: []reflect.Kind{reflect.Float32, reflect.Float64},
		parse: func(text string) (any, error) { return strconv.ParseFloat(text, 64) },
	}
	String Type = kindType{
		name:  "string",
		kinds: []reflect.Kind{reflect.String},
		parse: func(text string) (any, error) { return text, nil },
	}
	Bool Type = kindType{
		name:  "bool",
		kinds: []reflect.Kind{reflect.Bool},
		parse: func(text string) (any, error) { return strconv.ParseBool(text) },
	}
	Date Type = dateType{}
	Any  Type = anyType{}
)

type sequenceType struct {
	elem Type
}

// SequenceOf describes a slice or array of elem.
//
// Only the container kind is checked, elements are never inspected: a
// []string passed to a SequenceOf(Int) field is accepted.
func SequenceOf(elem Type) Type {
	return sequenceType{elem: elem}
}

func (s sequenceType) String() string {
	return fmt.Sprintf("sequence of %s", s.elem)
}

func (s sequenceType) Matches(value any) bool {
	kind := reflect.TypeOf(value).Kind()
	return kind == reflect.Slice || kind == reflect.Array
}

// Parse splits text on commas and parses every element with the element
// type. An empty text is an empty sequence.
func (s sequenceType) Parse(text string) (any, error) {
	out := []any{}
	if text == "" {
		return out, nil
	}
	for _, part := range strings.Split(text, ",") {
		v, err := s.elem.Parse(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Elem is the declared (but unchecked) element type.
func (s sequenceType) Elem() Type {
	return s.elem
}

// Matches reports whether value satisfies t. Absent values (nil, or a nil
// pointer) always match since every field is optional.
func Matches(value any, t Type) bool {
	v, present := indirect(value)
	if !present {
		return true
	}
	return t.Matches(v)
}

// indirect dereferences pointers, reporting false if the value is absent.
// Nil slices and maps are absent, empty non-nil ones are present.
func indirect(value any) (any, bool) {
	if value == nil {
		return nil, false
	}
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Map) && rv.IsNil() {
		return nil, false
	}
	return rv.Interface(), true
}

// Package standings flattens standings records into rectangular tables.
package standings

import (
	"errors"
	"fmt"

	"sabrmetrics/lib/registry"
)

// Kind is one of the optional secondary breakdowns found under a record's
// `records` object.
type Kind int

const (
	Split Kind = iota
	Division
	League
	Overall
	Expected
)

type breakdown struct {
	name string
	// key is the name of the sub-list inside `records`.
	key string
	// nestedKey is the embedded identifying object of "nested-by-key"
	// sub-lists, it is empty for flat sub-lists which are keyed by `type`.
	nestedKey string
}

var breakdowns = map[Kind]breakdown{
	Split:    {name: "split", key: "splitRecords"},
	Division: {name: "division", key: "divisionRecords", nestedKey: "division"},
	League:   {name: "league", key: "leagueRecords", nestedKey: "league"},
	Overall:  {name: "overall", key: "overallRecords"},
	Expected: {name: "expected", key: "expectedRecords"},
}

// Kinds is the closed registry of breakdown names.
var Kinds = registry.New("breakdowns",
	registry.Entry[Kind]{Name: "split", Value: Split, Aliases: []string{"splitRecords"}},
	registry.Entry[Kind]{Name: "division", Value: Division, Aliases: []string{"divisionRecords"}},
	registry.Entry[Kind]{Name: "league", Value: League, Aliases: []string{"leagueRecords"}},
	registry.Entry[Kind]{Name: "overall", Value: Overall, Aliases: []string{"overallRecords"}},
	registry.Entry[Kind]{Name: "expected", Value: Expected, Aliases: []string{"expectedRecords"}},
)

// ParseKinds resolves breakdown names through Kinds.
func ParseKinds(names ...string) ([]Kind, error) {
	kinds := make([]Kind, 0, len(names))
	for _, name := range names {
		kind, err := Kinds.Lookup(name)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

func (k Kind) String() string {
	if b, ok := breakdowns[k]; ok {
		return b.name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// RecordsKey is the name of the sub-list the breakdown reads.
func (k Kind) RecordsKey() string {
	return breakdowns[k].key
}

// MissingBreakdownError is returned when a record does not carry the
// sub-list a requested breakdown needs, or when an entry of that sub-list
// has no usable key or repeats the key of an earlier entry.
type MissingBreakdownError struct {
	Index  int
	Kind   Kind
	Detail string
}

func (e *MissingBreakdownError) Error() string {
	msg := fmt.Sprintf("record %d: missing %s breakdown (records.%s)", e.Index, e.Kind, e.Kind.RecordsKey())
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// AsMissingBreakdown attempts to unwrap an error into a MissingBreakdownError.
func AsMissingBreakdown(err error) (*MissingBreakdownError, bool) {
	var missingErr *MissingBreakdownError
	if errors.As(err, &missingErr) {
		return missingErr, true
	}
	return nil, false
}

package standings

import (
	"fmt"
	"sort"
)

// Record is one team's raw standings entry (an element of `teamRecords`).
type Record = map[string]any

const (
	GroupTeam         = "team"
	GroupStandard     = "standard"
	GroupStreak       = "streak"
	GroupLeagueRecord = "leagueRecord"
)

// keys that never show up under the standard group
var structuredKeys = map[string]bool{
	"team":         true,
	"streak":       true,
	"leagueRecord": true,
	"records":      true,
}

// Options selects the optional column groups.
type Options struct {
	Include      []Kind
	Streak       bool
	LeagueRecord bool
}

// Normalize flattens records into a single table with one row per record,
// in input order.
//
// The team and standard groups are always present. Requested breakdowns
// are appended in Split, Division, League, Overall, Expected order no
// matter the order they were requested in. A record lacking a requested
// breakdown fails the whole call.
func Normalize(records []Record, opts Options) (Table, error) {
	n := len(records)

	team := newSegment(n)
	standard := newSegment(n)
	for i, record := range records {
		if obj, ok := record["team"].(map[string]any); ok {
			flatten("", obj, func(field string, v any) {
				team.set(i, Column{Group: GroupTeam, Field: field}, v)
			})
		}
		for _, k := range sortedKeys(record) {
			if structuredKeys[k] {
				continue
			}
			emitValue(k, record[k], func(field string, v any) {
				standard.set(i, Column{Group: GroupStandard, Field: field}, v)
			})
		}
	}
	segments := []*segment{team, standard}

	if opts.Streak {
		segments = append(segments, objectSegment(records, "streak", GroupStreak))
	}
	if opts.LeagueRecord {
		segments = append(segments, objectSegment(records, "leagueRecord", GroupLeagueRecord))
	}

	for _, kind := range canonicalKinds(opts.Include) {
		s, err := breakdownSegment(records, kind)
		if err != nil {
			return Table{}, err
		}
		segments = append(segments, s)
	}

	return join(segments, n), nil
}

func canonicalKinds(include []Kind) []Kind {
	wanted := map[Kind]bool{}
	for _, k := range include {
		wanted[k] = true
	}
	out := []Kind{}
	for _, k := range []Kind{Split, Division, League, Overall, Expected} {
		if wanted[k] {
			out = append(out, k)
		}
	}
	return out
}

func objectSegment(records []Record, key, group string) *segment {
	s := newSegment(len(records))
	for i, record := range records {
		obj, ok := record[key].(map[string]any)
		if !ok {
			continue
		}
		flatten("", obj, func(field string, v any) {
			s.set(i, Column{Group: group, Field: field}, v)
		})
	}
	return s
}

func breakdownSegment(records []Record, kind Kind) (*segment, error) {
	b, ok := breakdowns[kind]
	if !ok {
		return nil, fmt.Errorf("unknown breakdown %s", kind)
	}

	s := newSegment(len(records))
	for i, record := range records {
		sub, ok := record["records"].(map[string]any)
		if !ok {
			return nil, &MissingBreakdownError{Index: i, Kind: kind, Detail: "record has no records object"}
		}
		entries, ok := sub[b.key].([]any)
		if !ok {
			return nil, &MissingBreakdownError{Index: i, Kind: kind}
		}

		keys := make(map[string]int, len(entries))
		for j, raw := range entries {
			entry, ok := raw.(map[string]any)
			if !ok {
				return nil, &MissingBreakdownError{
					Index:  i,
					Kind:   kind,
					Detail: fmt.Sprintf("entry %d is not an object", j),
				}
			}

			var key string
			if b.nestedKey == "" {
				key, ok = label(entry["type"])
				if !ok {
					return nil, &MissingBreakdownError{
						Index:  i,
						Kind:   kind,
						Detail: fmt.Sprintf("entry %d has no type", j),
					}
				}
			} else {
				keyObj, isObj := entry[b.nestedKey].(map[string]any)
				if !isObj {
					return nil, &MissingBreakdownError{
						Index:  i,
						Kind:   kind,
						Detail: fmt.Sprintf("entry %d has no %s", j, b.nestedKey),
					}
				}
				key, ok = label(keyObj["id"])
				if !ok {
					key, ok = label(keyObj["name"])
				}
				if !ok {
					return nil, &MissingBreakdownError{
						Index:  i,
						Kind:   kind,
						Detail: fmt.Sprintf("entry %d: %s has no id or name", j, b.nestedKey),
					}
				}
			}
			if first, dup := keys[key]; dup {
				return nil, &MissingBreakdownError{
					Index:  i,
					Kind:   kind,
					Detail: fmt.Sprintf("entries %d and %d share the key %q", first, j, key),
				}
			}
			keys[key] = j

			for _, k := range sortedKeys(entry) {
				if b.nestedKey == "" && k == "type" {
					continue
				}
				emitValue(k, entry[k], func(field string, v any) {
					s.set(i, Column{Group: b.key, Key: key, Field: field}, v)
				})
			}
		}
	}
	return s, nil
}

func label(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	return fmt.Sprint(v), true
}

func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// flatten emits every leaf of obj, nested objects are joined with ".".
func flatten(prefix string, obj map[string]any, emit func(field string, v any)) {
	for _, k := range sortedKeys(obj) {
		field := k
		if prefix != "" {
			field = prefix + "." + k
		}
		emitValue(field, obj[k], emit)
	}
}

func emitValue(field string, v any, emit func(field string, v any)) {
	if nested, ok := v.(map[string]any); ok {
		flatten(field, nested, emit)
		return
	}
	emit(field, v)
}

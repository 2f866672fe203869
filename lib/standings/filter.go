package standings

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type filterScope int

const (
	scopeAll filterScope = iota
	scopeLeague
	scopeDivision
)

// Filter selects which standings groups of a payload contribute team
// records. The zero value keeps everything.
type Filter struct {
	scope filterScope
	id    int
}

func All() Filter { return Filter{scope: scopeAll} }
func ByLeague(id int) Filter { return Filter{scope: scopeLeague, id: id} }
func ByDivision(id int) Filter { return Filter{scope: scopeDivision, id: id} }

func (f Filter) String() string {
	switch f.scope {
	case scopeLeague:
		return fmt.Sprintf("league(%d)", f.id)
	case scopeDivision:
		return fmt.Sprintf("division(%d)", f.id)
	default:
		return "all"
	}
}

// Matches reports whether a standings group (an element of the payload's
// `records`) passes the filter.
func (f Filter) Matches(group map[string]any) bool {
	switch f.scope {
	case scopeLeague:
		id, ok := objectID(group["league"])
		return ok && id == f.id
	case scopeDivision:
		id, ok := objectID(group["division"])
		return ok && id == f.id
	default:
		return true
	}
}

// RecordsFromPayload collects the `teamRecords` of every standings group
// passing the filter, in payload order.
func RecordsFromPayload(payload map[string]any, f Filter) ([]Record, error) {
	groups, ok := payload["records"].([]any)
	if !ok {
		return nil, fmt.Errorf("standings payload has no records list")
	}

	out := []Record{}
	for i, raw := range groups {
		group, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("standings group %d is not an object", i)
		}
		if !f.Matches(group) {
			continue
		}
		teams, ok := group["teamRecords"].([]any)
		if !ok {
			return nil, fmt.Errorf("standings group %d has no teamRecords", i)
		}
		for j, t := range teams {
			record, ok := t.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("standings group %d: team record %d is not an object", i, j)
			}
			out = append(out, record)
		}
	}
	return out, nil
}

func objectID(v any) (int, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return 0, false
	}
	return toInt(obj["id"])
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	case string:
		i, err := strconv.Atoi(n)
		return i, err == nil
	}
	return 0, false
}

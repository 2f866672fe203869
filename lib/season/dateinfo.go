package season

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// DateLayout is the layout the schedule publishes its dates in.
const DateLayout = "2006-01-02"

// DateInfo is a season's published `seasonDateInfo` object with every value
// coerced to the most specific type it parses as: int64, float64,
// time.Time (UTC midnight) or string, tried in that order.
type DateInfo map[string]any

// ParseDateInfo coerces a raw `seasonDateInfo` object.
func ParseDateInfo(raw map[string]any) DateInfo {
	info := make(DateInfo, len(raw))
	for k, v := range raw {
		info[k] = coerce(v)
	}
	return info
}

func coerce(v any) any {
	var text string
	switch value := v.(type) {
	case json.Number:
		text = value.String()
	case string:
		text = value
	case float64:
		if value == float64(int64(value)) {
			return int64(value)
		}
		return value
	case int:
		return int64(value)
	default:
		return v
	}

	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return f
	}
	if t, err := time.Parse(DateLayout, text); err == nil {
		return t
	}
	return text
}

// Date returns the date stored under key.
func (d DateInfo) Date(key string) (time.Time, error) {
	v, ok := d[key]
	if !ok {
		return time.Time{}, fmt.Errorf("%s: %w", key, ErrNotPublished)
	}
	t, ok := v.(time.Time)
	if !ok {
		return time.Time{}, fmt.Errorf("season date info %s is %v, not a date", key, v)
	}
	return t, nil
}

// Equal reports whether two date info objects carry the same values.
func (d DateInfo) Equal(other DateInfo) bool {
	if len(d) != len(other) {
		return false
	}
	for k, v := range d {
		o, ok := other[k]
		if !ok {
			return false
		}
		if vt, isTime := v.(time.Time); isTime {
			ot, isTime := o.(time.Time)
			if !isTime || !vt.Equal(ot) {
				return false
			}
			continue
		}
		if !reflect.DeepEqual(v, o) {
			return false
		}
	}
	return true
}

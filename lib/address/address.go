package address

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"
)

// DateLayout is the format date valued fields are serialized with.
const DateLayout = "2006-01-02"

// QueryParam is a single serialized `name=value` entry.
type QueryParam struct {
	Name  string
	Value string
}

// Address is a fully serialized request target.
type Address struct {
	Base  string
	Path  []string
	Query []QueryParam
}

// Serialize writes every present field of a FieldSet into an Address in
// declaration order.
func Serialize(set FieldSet) Address {
	addr := Address{Base: set.schema.base}
	for i, f := range set.schema.fields {
		v := set.values[i]
		if v == nil {
			continue
		}
		value := FormatValue(v)
		switch f.In {
		case InPath:
			addr.Path = append(addr.Path, value)
		default:
			addr.Query = append(addr.Query, QueryParam{Name: f.param(), Value: value})
		}
	}
	return addr
}

// FormatValue renders a field value the way it appears in an address:
// dates as YYYY-MM-DD, sequences comma joined, everything else with fmt.
func FormatValue(v any) string {
	switch value := v.(type) {
	case time.Time:
		return value.Format(DateLayout)
	case string:
		return value
	case fmt.Stringer:
		return value.String()
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = FormatValue(rv.Index(i).Interface())
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(v)
}

func escapeQueryValue(v string) string {
	// commas are the list separator, keep them readable
	return strings.ReplaceAll(url.QueryEscape(v), "%2C", ",")
}

// RawQuery renders the query entries joined by "&".
func (a Address) RawQuery() string {
	entries := make([]string, len(a.Query))
	for i, q := range a.Query {
		entries[i] = url.QueryEscape(q.Name) + "=" + escapeQueryValue(q.Value)
	}
	return strings.Join(entries, "&")
}

// Lookup returns the serialized value of a query parameter.
func (a Address) Lookup(name string) (string, bool) {
	for _, q := range a.Query {
		if q.Name == name {
			return q.Value, true
		}
	}
	return "", false
}

// String renders base, path and query. The "/" separating the base from
// the path and the "?" preceding the query are only written when there is
// something to follow them.
func (a Address) String() string {
	var out strings.Builder
	out.WriteString(strings.TrimSuffix(a.Base, "/"))
	for _, segment := range a.Path {
		out.WriteString("/")
		out.WriteString(url.PathEscape(segment))
	}
	if len(a.Query) > 0 {
		out.WriteString("?")
		out.WriteString(a.RawQuery())
	}
	return out.String()
}

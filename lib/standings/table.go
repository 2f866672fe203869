package standings

import (
	"strings"
)

// Column labels a table column by its outer group, the entry it was read
// from (the `type` of flat sub-lists, the key object id of nested ones,
// empty otherwise) and the field name.
type Column struct {
	Group string
	Key   string
	Field string
}

func (c Column) String() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.Group, c.Key, c.Field} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ".")
}

// Table is a rectangular table, absent cells are nil.
type Table struct {
	Columns []Column
	Rows    [][]any
}

// Index returns the position of a column, or -1.
func (t Table) Index(col Column) int {
	for i, c := range t.Columns {
		if c == col {
			return i
		}
	}
	return -1
}

// Value returns a single cell.
func (t Table) Value(row int, col Column) (any, bool) {
	i := t.Index(col)
	if i < 0 || row < 0 || row >= len(t.Rows) {
		return nil, false
	}
	return t.Rows[row][i], true
}

// Groups lists the distinct column groups in column order.
func (t Table) Groups() []string {
	seen := map[string]bool{}
	groups := []string{}
	for _, c := range t.Columns {
		if seen[c.Group] {
			continue
		}
		seen[c.Group] = true
		groups = append(groups, c.Group)
	}
	return groups
}

// Select keeps only the columns whose group is one of groups, in their
// original order.
func (t Table) Select(groups ...string) Table {
	wanted := map[string]bool{}
	for _, g := range groups {
		wanted[g] = true
	}

	var indices []int
	out := Table{}
	for i, c := range t.Columns {
		if wanted[c.Group] {
			indices = append(indices, i)
			out.Columns = append(out.Columns, c)
		}
	}
	out.Rows = make([][]any, len(t.Rows))
	for r, row := range t.Rows {
		selected := make([]any, len(indices))
		for j, i := range indices {
			selected[j] = row[i]
		}
		out.Rows[r] = selected
	}
	return out
}

// segment accumulates the cells of one column group.
type segment struct {
	columns []Column
	seen    map[Column]bool
	rows    []map[Column]any
}

func newSegment(rows int) *segment {
	s := &segment{seen: map[Column]bool{}, rows: make([]map[Column]any, rows)}
	for i := range s.rows {
		s.rows[i] = map[Column]any{}
	}
	return s
}

func (s *segment) set(row int, col Column, v any) {
	if !s.seen[col] {
		s.seen[col] = true
		s.columns = append(s.columns, col)
	}
	s.rows[row][col] = v
}

func join(segments []*segment, rows int) Table {
	t := Table{Rows: make([][]any, rows)}
	for _, s := range segments {
		t.Columns = append(t.Columns, s.columns...)
	}
	for r := 0; r < rows; r++ {
		row := make([]any, 0, len(t.Columns))
		for _, s := range segments {
			for _, c := range s.columns {
				row = append(row, s.rows[r][c])
			}
		}
		t.Rows[r] = row
	}
	return t
}

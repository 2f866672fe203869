package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"sabrmetrics/lib/sfbb"
	"sabrmetrics/lib/standings"

	"github.com/jedib0t/go-pretty/v6/table"
)

const dateLayout = "2006-01-02"

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

func formatCell(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case time.Time:
		return value.Format(dateLayout)
	case []string:
		return strings.Join(value, "/")
	default:
		return fmt.Sprint(value)
	}
}

// renderStandings prints one header row of groups and one of fields.
func renderStandings(tbl standings.Table) {
	t := newTable()

	groups := table.Row{}
	fields := table.Row{}
	for _, c := range tbl.Columns {
		groups = append(groups, strings.TrimSuffix(c.Group+"."+c.Key, "."))
		fields = append(fields, c.Field)
	}
	t.AppendHeader(groups, table.RowConfig{AutoMerge: true})
	t.AppendHeader(fields)

	for _, row := range tbl.Rows {
		r := make(table.Row, len(row))
		for i, v := range row {
			r[i] = formatCell(v)
		}
		t.AppendRow(r)
	}
	t.Render()
}

// renderSheet prints at most limit rows, all of them when limit <= 0.
func renderSheet(sheet sfbb.Sheet, limit int) {
	t := newTable()

	header := make(table.Row, len(sheet.Columns))
	for i, c := range sheet.Columns {
		header[i] = c
	}
	t.AppendHeader(header)

	for i, row := range sheet.Rows {
		if limit > 0 && i >= limit {
			break
		}
		r := make(table.Row, len(row))
		for j, v := range row {
			r[j] = formatCell(v)
		}
		t.AppendRow(r)
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d rows", len(sheet.Rows))})
	t.Render()
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

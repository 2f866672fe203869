package sfbb

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"sabrmetrics/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// Sheet is a table with named columns. Cells hold string, int64, bool,
// time.Time, []string or nil for blank cells.
type Sheet struct {
	Columns []string
	Rows    [][]any
}

// Index returns the position of a column, or -1.
func (s Sheet) Index(column string) int {
	for i, c := range s.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// Value returns a single cell, nil when the row or column does not exist.
func (s Sheet) Value(row int, column string) any {
	i := s.Index(column)
	if i < 0 || row < 0 || row >= len(s.Rows) {
		return nil
	}
	return s.Rows[row][i]
}

// Select returns a sheet made of the given columns in the given order.
func (s Sheet) Select(columns ...string) (Sheet, error) {
	indices := make([]int, len(columns))
	for i, c := range columns {
		indices[i] = s.Index(c)
		if indices[i] < 0 {
			return Sheet{}, fmt.Errorf("sheet has no column %q", c)
		}
	}

	out := Sheet{
		Columns: append([]string{}, columns...),
		Rows:    make([][]any, len(s.Rows)),
	}
	for r, row := range s.Rows {
		selected := make([]any, len(indices))
		for j, i := range indices {
			selected[j] = row[i]
		}
		out.Rows[r] = selected
	}
	return out, nil
}

// grid is raw cell text, the first row is the header.
type grid [][]string

// webviewGrid reads the table of a published spreadsheet page. The first
// column (row numbers) is dropped.
func webviewGrid(doc *goquery.Document) (grid, error) {
	table := doc.Find("div#sheets-viewport div.grid-container table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("page has no spreadsheet table")
	}

	var out grid
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var row []string
		tr.Find("th, td").Each(func(i int, cell *goquery.Selection) {
			if i == 0 {
				return
			}
			row = append(row, htmlutil.CleanText(htmlutil.GetText(cell.Nodes[0])))
		})
		out = append(out, row)
	})
	return out, nil
}

func csvGrid(r io.Reader) (grid, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}
	return records, nil
}

// rename maps the header through names, keeps rows starting at dataStart
// and orders the result by columns. Blank header cells (the spreadsheet
// freeze bar) are dropped.
func (g grid) rename(names map[string]string, dataStart int, columns []string) (Sheet, error) {
	if len(g) == 0 {
		return Sheet{}, fmt.Errorf("sheet is empty")
	}

	position := map[string]int{}
	for i, header := range g[0] {
		header = strings.TrimSpace(header)
		if header == "" {
			continue
		}
		name, ok := names[strings.ToUpper(header)]
		if !ok {
			name = header
		}
		position[name] = i
	}

	indices := make([]int, len(columns))
	for i, c := range columns {
		p, ok := position[c]
		if !ok {
			return Sheet{}, fmt.Errorf("sheet has no %s column", c)
		}
		indices[i] = p
	}

	sheet := Sheet{Columns: append([]string{}, columns...)}
	for r := dataStart; r < len(g); r++ {
		if blankRow(g[r]) {
			continue
		}
		row := make([]any, len(indices))
		for j, i := range indices {
			if i < len(g[r]) && strings.TrimSpace(g[r][i]) != "" {
				row[j] = strings.TrimSpace(g[r][i])
			}
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet, nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

var birthdateLayouts = []string{"1/2/2006", "2006-01-02", "1/2/06"}

func parseBirthdate(s string) (time.Time, bool) {
	for _, layout := range birthdateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseInteger(s string) (int64, error) {
	i, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return i, nil
	}
	f, ferr := strconv.ParseFloat(s, 64)
	if ferr != nil || f != float64(int64(f)) {
		return 0, err
	}
	return int64(f), nil
}

// typePlayerIDMap converts the cells of a renamed player id map in place.
func typePlayerIDMap(sheet Sheet) error {
	for c, column := range sheet.Columns {
		for r, row := range sheet.Rows {
			raw, ok := row[c].(string)
			if !ok {
				continue
			}

			switch {
			case column == "Birthdate":
				t, ok := parseBirthdate(raw)
				if !ok {
					slog.Debug("unparsable birthdate", "row", r, "value", raw)
					continue
				}
				row[c] = t
			case column == "AllPositions":
				row[c] = strings.Split(raw, "/")
			case column == "Active":
				row[c] = raw == "Y"
			case integerColumns[column]:
				i, err := parseInteger(raw)
				if err != nil {
					return fmt.Errorf("row %d: %s: %w", r, column, err)
				}
				row[c] = i
			}
		}
	}
	return nil
}

func typeChangelog(sheet Sheet) error {
	c := sheet.Index("Date")
	for r, row := range sheet.Rows {
		raw, ok := row[c].(string)
		if !ok {
			continue
		}
		t, err := time.Parse("1/2/2006", raw)
		if err != nil {
			return fmt.Errorf("row %d: Date: %w", r, err)
		}
		row[c] = t
	}
	return nil
}

// ParsePlayerIDMapCSV reads the csv download of the player id map.
func ParsePlayerIDMapCSV(r io.Reader) (Sheet, error) {
	g, err := csvGrid(r)
	if err != nil {
		return Sheet{}, err
	}
	sheet, err := g.rename(playerIDMapColumnNames, 1, PlayerIDMapColumns())
	if err != nil {
		return Sheet{}, err
	}
	err = typePlayerIDMap(sheet)
	if err != nil {
		return Sheet{}, err
	}
	return sheet, nil
}

// ParseChangelogCSV reads the csv download of the player id map changelog.
func ParseChangelogCSV(r io.Reader) (Sheet, error) {
	g, err := csvGrid(r)
	if err != nil {
		return Sheet{}, err
	}
	sheet, err := g.rename(changelogColumnNames, 1, ChangelogColumns)
	if err != nil {
		return Sheet{}, err
	}
	err = typeChangelog(sheet)
	if err != nil {
		return Sheet{}, err
	}
	return sheet, nil
}

// ParsePlayerIDMapPage reads the published spreadsheet page of the player
// id map. The row under the header is the freeze bar and is skipped.
func ParsePlayerIDMapPage(doc *goquery.Document) (Sheet, error) {
	g, err := webviewGrid(doc)
	if err != nil {
		return Sheet{}, err
	}
	sheet, err := g.rename(playerIDMapColumnNames, 2, PlayerIDMapColumns())
	if err != nil {
		return Sheet{}, err
	}
	err = typePlayerIDMap(sheet)
	if err != nil {
		return Sheet{}, err
	}
	return sheet, nil
}

// ParseChangelogPage reads the published spreadsheet page of the changelog.
func ParseChangelogPage(doc *goquery.Document) (Sheet, error) {
	g, err := webviewGrid(doc)
	if err != nil {
		return Sheet{}, err
	}
	sheet, err := g.rename(changelogColumnNames, 1, ChangelogColumns)
	if err != nil {
		return Sheet{}, err
	}
	err = typeChangelog(sheet)
	if err != nil {
		return Sheet{}, err
	}
	return sheet, nil
}

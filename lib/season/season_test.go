package season

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"sabrmetrics/lib/chrono"
	"sabrmetrics/lib/registry"

	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func dateInfo(year int) DateInfo {
	days := map[string]string{
		"preSeasonStartDate":     "01-01",
		"preSeasonEndDate":       "02-21",
		"seasonStartDate":        "02-22",
		"springStartDate":        "02-22",
		"springEndDate":          "03-26",
		"regularSeasonStartDate": "03-30",
		"lastDate1stHalf":        "07-09",
		"firstDate2ndHalf":       "07-14",
		"regularSeasonEndDate":   "10-01",
		"postSeasonStartDate":    "10-03",
		"postSeasonEndDate":      "11-04",
		"seasonEndDate":          "11-04",
		"offSeasonStartDate":     "11-05",
		"offSeasonEndDate":       "12-31",
	}

	raw := map[string]any{
		"seasonId":                  json.Number(fmt.Sprint(year)),
		"qualifierPlateAppearances": json.Number("3.1"),
		"gameLevelGamedayType":      "P",
	}
	for key, day := range days {
		raw[key] = fmt.Sprintf("%d-%s", year, day)
	}
	return ParseDateInfo(raw)
}

func testCalendar() Calendar {
	source := StaticSource{}
	for year := 2021; year <= 2024; year++ {
		source[year] = dateInfo(year)
	}
	return NewCalendar(source, chrono.Fixed{At: date(2024, time.June, 1)})
}

func TestParseDateInfo(t *testing.T) {
	info := dateInfo(2023)

	require.Equal(t, int64(2023), info["seasonId"])
	require.Equal(t, 3.1, info["qualifierPlateAppearances"])
	require.Equal(t, "P", info["gameLevelGamedayType"])

	start, err := info.Date("regularSeasonStartDate")
	require.NoError(t, err)
	require.Equal(t, date(2023, time.March, 30), start)

	_, err = info.Date("seasonId")
	require.Error(t, err)
	_, err = info.Date("allStarDate")
	require.ErrorIs(t, err, ErrNotPublished)

	require.True(t, info.Equal(dateInfo(2023)))
	require.False(t, info.Equal(dateInfo(2022)))
}

func TestSpan(t *testing.T) {
	ctx := context.Background()
	cal := testCalendar()

	cases := []struct {
		kind  SpanKind
		start time.Time
		end   time.Time
	}{
		{RegularSeason, date(2023, time.March, 30), date(2023, time.October, 1)},
		{FirstHalf, date(2023, time.March, 30), date(2023, time.July, 9)},
		{SecondHalf, date(2023, time.July, 14), date(2023, time.October, 1)},
		{Preseason, date(2023, time.January, 1), date(2023, time.February, 21)},
		{Postseason, date(2023, time.October, 3), date(2023, time.November, 4)},
	}
	for _, c := range cases {
		t.Run(c.kind.Name, func(t *testing.T) {
			s, err := cal.Span(ctx, 2023, c.kind)
			require.NoError(t, err)
			require.Equal(t, 2023, s.Year)
			require.Equal(t, c.start, s.Start)
			require.Equal(t, c.end, s.End)
		})
	}
}

func TestSpanOutOfRange(t *testing.T) {
	ctx := context.Background()
	cal := testCalendar()

	for _, year := range []int{1800, 2026} {
		_, err := cal.Span(ctx, year, RegularSeason)
		rangeErr, ok := AsOutOfRange(err)
		require.True(t, ok, "year %d", year)
		require.Equal(t, year, rangeErr.Year)
	}

	// in range but never published
	_, err := cal.Span(ctx, 2025, RegularSeason)
	require.ErrorIs(t, err, ErrNotPublished)
	_, ok := AsOutOfRange(err)
	require.False(t, ok)
}

func TestSpanEndingBeforeStart(t *testing.T) {
	info := dateInfo(2023)
	info["lastDate1stHalf"] = date(2023, time.March, 1)
	cal := NewCalendar(StaticSource{2023: info}, chrono.Fixed{At: date(2023, time.June, 1)})

	_, err := cal.Span(context.Background(), 2023, FirstHalf)
	var spanErr *InvalidSpanError
	require.True(t, errors.As(err, &spanErr))
	require.Equal(t, "first-half", spanErr.Span)
}

func TestLatest(t *testing.T) {
	ctx := context.Background()
	cal := testCalendar()

	cases := []struct {
		name string
		date time.Time
		year int
	}{
		{"new year's day resolves to the previous season", date(2023, time.January, 1), 2022},
		{"day before opening day", date(2023, time.March, 29), 2022},
		{"opening day", date(2023, time.March, 30), 2023},
		{"mid season", date(2023, time.June, 15), 2023},
		{"after the span ended", date(2023, time.November, 20), 2023},
		{"new year's eve", date(2023, time.December, 31), 2023},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, err := cal.Latest(ctx, c.date, RegularSeason)
			require.NoError(t, err)
			require.Equal(t, c.year, s.Year)

			year, err := cal.LatestYear(ctx, c.date, RegularSeason)
			require.NoError(t, err)
			require.Equal(t, c.year, year)
		})
	}
}

func TestLatestOutOfRange(t *testing.T) {
	ctx := context.Background()
	cal := NewCalendar(StaticSource{1876: dateInfo(1876)}, chrono.Fixed{At: date(2024, time.June, 1)})

	_, err := cal.Latest(ctx, date(1876, time.February, 1), RegularSeason)
	rangeErr, ok := AsOutOfRange(err)
	require.True(t, ok)
	require.Equal(t, 1875, rangeErr.Year)
	require.Equal(t, date(1876, time.February, 1), rangeErr.Date)

	_, err = cal.Latest(ctx, date(2030, time.June, 1), RegularSeason)
	_, ok = AsOutOfRange(err)
	require.True(t, ok)
}

type failingSource struct {
	StaticSource
	fail map[int]error
}

func (s failingSource) DateInfo(ctx context.Context, year int) (DateInfo, error) {
	if err := s.fail[year]; err != nil {
		return nil, err
	}
	return s.StaticSource.DateInfo(ctx, year)
}

func TestLatestBeforePublication(t *testing.T) {
	ctx := context.Background()
	now := date(2025, time.January, 15)
	source := StaticSource{2024: dateInfo(2024)}
	cal := NewCalendar(source, chrono.Fixed{At: now})

	s, err := cal.Latest(ctx, now, RegularSeason)
	require.NoError(t, err)
	require.Equal(t, 2024, s.Year)

	clamped, err := cal.ClampToSpan(ctx, now, RegularSeason)
	require.NoError(t, err)
	require.Equal(t, date(2024, time.October, 1), clamped)

	// published without the first half dates yet
	partial := dateInfo(2025)
	delete(partial, "lastDate1stHalf")
	source[2025] = partial
	s, err = cal.Latest(ctx, date(2025, time.May, 1), FirstHalf)
	require.NoError(t, err)
	require.Equal(t, 2024, s.Year)

	// other failures are not papered over
	unreachable := errors.New("connection refused")
	cal = NewCalendar(failingSource{
		StaticSource: StaticSource{2024: dateInfo(2024)},
		fail:         map[int]error{2025: unreachable},
	}, chrono.Fixed{At: now})
	_, err = cal.Latest(ctx, now, RegularSeason)
	require.ErrorIs(t, err, unreachable)
}

func TestClampToSpan(t *testing.T) {
	ctx := context.Background()
	cal := testCalendar()

	inside := time.Date(2023, time.May, 5, 19, 5, 0, 0, time.UTC)
	clamped, err := cal.ClampToSpan(ctx, inside, RegularSeason)
	require.NoError(t, err)
	require.Equal(t, inside, clamped)

	clamped, err = cal.ClampToSpan(ctx, date(2023, time.November, 20), RegularSeason)
	require.NoError(t, err)
	require.Equal(t, date(2023, time.October, 1), clamped)

	clamped, err = cal.ClampToSpan(ctx, date(2023, time.February, 1), RegularSeason)
	require.NoError(t, err)
	require.Equal(t, date(2022, time.October, 1), clamped)
}

func TestInSpan(t *testing.T) {
	ctx := context.Background()
	cal := testCalendar()

	ok, err := cal.InSpan(ctx, date(2024, time.July, 9), FirstHalf)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = cal.InSpan(ctx, date(2024, time.July, 10), FirstHalf)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSpanRegistry(t *testing.T) {
	kind, err := Spans.Lookup("Regular-Season")
	require.NoError(t, err)
	require.Equal(t, RegularSeason, kind)

	kind, err = Spans.Lookup("off-season")
	require.NoError(t, err)
	require.Equal(t, Offseason, kind)

	_, err = Spans.Lookup("all-star-break")
	_, ok := registry.AsUnknownKey(err)
	require.True(t, ok)

	require.Len(t, Spans.Names(), 8)
}

// Package season resolves named date spans (regular season, first half...)
// out of the schedule each season publishes.
package season

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"sabrmetrics/lib/chrono"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("sabrmetrics/season")

// FirstSeason is the earliest year any schedule is published for.
const FirstSeason = 1876

// Source provides the published date info of a season.
type Source interface {
	DateInfo(ctx context.Context, year int) (DateInfo, error)
}

// StaticSource serves date info from memory.
type StaticSource map[int]DateInfo

func (s StaticSource) DateInfo(ctx context.Context, year int) (DateInfo, error) {
	info, ok := s[year]
	if !ok {
		return nil, fmt.Errorf("%d: %w", year, ErrNotPublished)
	}
	return info, nil
}

// Span is an inclusive range of days.
type Span struct {
	Year  int
	Kind  SpanKind
	Start time.Time
	End   time.Time
}

// Contains reports whether the calendar day of t lies within the span.
func (s Span) Contains(t time.Time) bool {
	day := civil(t)
	return !day.Before(s.Start) && !day.After(s.End)
}

// Calendar answers span queries. Nothing is cached, every query reads the
// source again.
type Calendar struct {
	source Source
	clock  chrono.API
}

func NewCalendar(source Source, clock chrono.API) Calendar {
	return Calendar{source: source, clock: clock}
}

// civil maps t to UTC midnight of its own calendar day so that dates from
// different locations compare by day.
func civil(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func (c Calendar) maxYear() int {
	return c.clock.Now().Year() + 1
}

// Span resolves the named span of a season.
func (c Calendar) Span(ctx context.Context, year int, kind SpanKind) (Span, error) {
	ctx, span := tracer.Start(ctx, "Span")
	defer span.End()
	span.SetAttributes(
		attribute.Int("year", year),
		attribute.String("span", kind.Name),
	)

	if year < FirstSeason || year > c.maxYear() {
		return Span{}, &OutOfRangeError{Year: year, Span: kind.Name}
	}

	info, err := c.source.DateInfo(ctx, year)
	if err != nil {
		return Span{}, fmt.Errorf("season %d: %w", year, err)
	}
	start, err := info.Date(kind.StartKey)
	if err != nil {
		return Span{}, fmt.Errorf("season %d: %w", year, err)
	}
	end, err := info.Date(kind.EndKey)
	if err != nil {
		return Span{}, fmt.Errorf("season %d: %w", year, err)
	}
	start, end = civil(start), civil(end)
	if start.After(end) {
		return Span{}, &InvalidSpanError{Year: year, Span: kind.Name, Start: start, End: end}
	}

	return Span{Year: year, Kind: kind, Start: start, End: end}, nil
}

// Latest returns the most recently started span as of date. Only the start
// of the span decides the year: a date after this year's span ended still
// resolves to this year's span. When this year's span is not published yet
// (ErrNotPublished) the previous year's span is returned. Any other source
// failure is returned as is.
func (c Calendar) Latest(ctx context.Context, date time.Time, kind SpanKind) (Span, error) {
	day := civil(date)

	current, err := c.Span(ctx, day.Year(), kind)
	switch {
	case err == nil:
		if !day.Before(current.Start) {
			return current, nil
		}
	case errors.Is(err, ErrNotPublished):
		slog.DebugContext(
			ctx, "span not published yet",
			"year", day.Year(),
			"span", kind.Name,
			"err", err,
		)
	default:
		if _, ok := AsOutOfRange(err); ok {
			return Span{}, &OutOfRangeError{Date: day, Year: day.Year(), Span: kind.Name}
		}
		return Span{}, err
	}

	previous, err := c.Span(ctx, day.Year()-1, kind)
	if err != nil {
		if _, ok := AsOutOfRange(err); ok {
			return Span{}, &OutOfRangeError{Date: day, Year: day.Year() - 1, Span: kind.Name}
		}
		return Span{}, err
	}
	slog.DebugContext(
		ctx, "date precedes span start, using previous season",
		"date", day.Format(DateLayout),
		"span", kind.Name,
		"year", previous.Year,
	)
	return previous, nil
}

// LatestYear is the year of Latest.
func (c Calendar) LatestYear(ctx context.Context, date time.Time, kind SpanKind) (int, error) {
	s, err := c.Latest(ctx, date, kind)
	if err != nil {
		return 0, err
	}
	return s.Year, nil
}

// InSpan reports whether date falls within the span of its own year.
func (c Calendar) InSpan(ctx context.Context, date time.Time, kind SpanKind) (bool, error) {
	s, err := c.Span(ctx, date.Year(), kind)
	if err != nil {
		return false, err
	}
	return s.Contains(date), nil
}

// ClampToSpan returns date unchanged when it falls within its year's span,
// otherwise the last day of the latest span as of date.
func (c Calendar) ClampToSpan(ctx context.Context, date time.Time, kind SpanKind) (time.Time, error) {
	inside, err := c.InSpan(ctx, date, kind)
	if err != nil {
		if _, ok := AsOutOfRange(err); !ok && !errors.Is(err, ErrNotPublished) {
			return time.Time{}, err
		}
	}
	if inside {
		return date, nil
	}

	latest, err := c.Latest(ctx, date, kind)
	if err != nil {
		return time.Time{}, err
	}
	return latest.End, nil
}

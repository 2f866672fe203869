package season

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotPublished is wrapped by sources and date info lookups when a season
// has not published the dates asked for yet.
var ErrNotPublished = errors.New("date info not published")

// OutOfRangeError is returned when a year or date cannot be resolved to any
// published season.
type OutOfRangeError struct {
	// Date is zero when a bare year was asked for.
	Date time.Time
	Year int
	Span string
}

func (e *OutOfRangeError) Error() string {
	if !e.Date.IsZero() {
		return fmt.Sprintf("no %s span covers %s", e.Span, e.Date.Format(DateLayout))
	}
	return fmt.Sprintf("%s: year %d is out of range", e.Span, e.Year)
}

// AsOutOfRange attempts to unwrap an error into an OutOfRangeError.
func AsOutOfRange(err error) (*OutOfRangeError, bool) {
	var rangeErr *OutOfRangeError
	if errors.As(err, &rangeErr) {
		return rangeErr, true
	}
	return nil, false
}

// InvalidSpanError is returned when the published schedule has a span
// ending before it starts.
type InvalidSpanError struct {
	Year  int
	Span  string
	Start time.Time
	End   time.Time
}

func (e *InvalidSpanError) Error() string {
	return fmt.Sprintf(
		"%d %s: start %s is after end %s",
		e.Year, e.Span,
		e.Start.Format(DateLayout), e.End.Format(DateLayout),
	)
}

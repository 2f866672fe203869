package season

import (
	"sabrmetrics/lib/registry"
)

// SpanKind names a date range of a season by the date info keys holding its
// first and last day.
type SpanKind struct {
	Name     string
	StartKey string
	EndKey   string
}

func (k SpanKind) String() string {
	return k.Name
}

var (
	Preseason     = SpanKind{"preseason", "preSeasonStartDate", "preSeasonEndDate"}
	FullSeason    = SpanKind{"season", "seasonStartDate", "seasonEndDate"}
	Spring        = SpanKind{"spring", "springStartDate", "springEndDate"}
	RegularSeason = SpanKind{"regular-season", "regularSeasonStartDate", "regularSeasonEndDate"}
	FirstHalf     = SpanKind{"first-half", "regularSeasonStartDate", "lastDate1stHalf"}
	SecondHalf    = SpanKind{"second-half", "firstDate2ndHalf", "regularSeasonEndDate"}
	Postseason    = SpanKind{"postseason", "postSeasonStartDate", "postSeasonEndDate"}
	Offseason     = SpanKind{"offseason", "offSeasonStartDate", "offSeasonEndDate"}
)

// Spans is the closed registry of span names.
var Spans = registry.New("season spans",
	registry.Entry[SpanKind]{Name: Preseason.Name, Value: Preseason, Aliases: []string{"pre-season"}},
	registry.Entry[SpanKind]{Name: FullSeason.Name, Value: FullSeason},
	registry.Entry[SpanKind]{Name: Spring.Name, Value: Spring, Aliases: []string{"spring-training"}},
	registry.Entry[SpanKind]{Name: RegularSeason.Name, Value: RegularSeason, Aliases: []string{"regular"}},
	registry.Entry[SpanKind]{Name: FirstHalf.Name, Value: FirstHalf},
	registry.Entry[SpanKind]{Name: SecondHalf.Name, Value: SecondHalf},
	registry.Entry[SpanKind]{Name: Postseason.Name, Value: Postseason, Aliases: []string{"post-season"}},
	registry.Entry[SpanKind]{Name: Offseason.Name, Value: Offseason, Aliases: []string{"off-season"}},
)

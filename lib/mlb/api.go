// Package mlb addresses the statsapi.mlb.com endpoint families used by the
// rest of the module: leagues, divisions and standings.
package mlb

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"sabrmetrics/lib/address"
	"sabrmetrics/lib/chrono"
	"sabrmetrics/lib/scraper"
	"sabrmetrics/lib/season"
	"sabrmetrics/lib/standings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("sabrmetrics/mlb")

type Options struct {
	// BaseURL defaults to DefaultBaseURL.
	BaseURL string
	// WebURL is the standings web page, it defaults to StandingsPage.
	WebURL string
	Client *scraper.Client
	Clock  chrono.API
}

type API struct {
	client *scraper.Client
	clock  chrono.API
	base   string
	webURL string
}

func NewAPI(opts Options) API {
	base := strings.TrimSuffix(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	webURL := opts.WebURL
	if webURL == "" {
		webURL = StandingsPage
	}
	client := opts.Client
	if client == nil {
		client = scraper.NewClient(scraper.Options{})
	}
	clock := opts.Clock
	if clock == nil {
		clock = chrono.Standard{}
	}

	return API{
		client: client,
		clock:  clock,
		base:   base,
		webURL: webURL,
	}
}

// Defaults reads the clock on every call, so a long lived API moves on to
// the new season on January 1st.
func (a API) Defaults() Defaults {
	return NewDefaults(a.clock)
}

func (a API) LeagueSchema() address.Schema {
	return LeagueSchema(a.base, a.Defaults())
}

func (a API) DivisionSchema() address.Schema {
	return DivisionSchema(a.base)
}

func (a API) StandingsSchema() address.Schema {
	return StandingsSchema(a.base, a.Defaults())
}

// optional maps a zero value to an absent field.
func optional[T comparable](v T) any {
	var zero T
	if v == zero {
		return nil
	}
	return v
}

func (a API) fetch(ctx context.Context, schema address.Schema, overrides map[string]any) (*scraper.Response[scraper.Payload], error) {
	addr, err := schema.Build(overrides)
	if err != nil {
		return nil, err
	}
	return a.client.FetchJSON(ctx, addr)
}

// League fetches a single league, or every league when leagueID is zero. A
// zero year uses the default season.
func (a API) League(ctx context.Context, leagueID, year int) (*scraper.Response[scraper.Payload], error) {
	return a.fetch(ctx, a.LeagueSchema(), map[string]any{
		"league_id": optional(leagueID),
		"season":    optional(year),
	})
}

// AllLeagues fetches every league active in a season.
func (a API) AllLeagues(ctx context.Context, year int) (*scraper.Response[scraper.Payload], error) {
	return a.fetch(ctx, a.LeagueSchema(), map[string]any{
		"season": optional(year),
	})
}

// Division fetches a single division, or every division when divisionID is
// zero.
func (a API) Division(ctx context.Context, divisionID int) (*scraper.Response[scraper.Payload], error) {
	return a.fetch(ctx, a.DivisionSchema(), map[string]any{
		"division_id": optional(divisionID),
	})
}

// StandingsQuery holds the standings overrides, zero fields keep their
// defaults.
type StandingsQuery struct {
	LeagueIDs      []int
	Season         int
	Date           time.Time
	StandingsTypes []string
	Hydrate        []string
}

func (q StandingsQuery) overrides() map[string]any {
	overrides := map[string]any{
		"league_id":       q.LeagueIDs,
		"season":          optional(q.Season),
		"standings_types": q.StandingsTypes,
		"hydrate":         q.Hydrate,
	}
	if !q.Date.IsZero() {
		overrides["date"] = q.Date
	}
	return overrides
}

func (a API) StandingsAddress(q StandingsQuery) (address.Address, error) {
	return a.StandingsSchema().Build(q.overrides())
}

func (a API) Standings(ctx context.Context, q StandingsQuery) (*scraper.Response[scraper.Payload], error) {
	return a.fetch(ctx, a.StandingsSchema(), q.overrides())
}

// StandingsTable fetches standings and normalizes the team records passing
// filter into a single table.
func (a API) StandingsTable(ctx context.Context, q StandingsQuery, filter standings.Filter, opts standings.Options) (standings.Table, error) {
	ctx, span := tracer.Start(ctx, "StandingsTable")
	defer span.End()
	span.SetAttributes(attribute.String("filter", filter.String()))

	res, err := a.Standings(ctx, q)
	if err != nil {
		return standings.Table{}, err
	}
	records, err := standings.RecordsFromPayload(res.Payload, filter)
	if err != nil {
		return standings.Table{}, fmt.Errorf("%s: %w", res.Address, err)
	}
	return standings.Normalize(records, opts)
}

// StandingsPage fetches the rendered standings web page.
func (a API) StandingsPage(ctx context.Context) (*scraper.Response[*goquery.Document], error) {
	return a.client.FetchDocument(ctx, scraper.URL(a.webURL))
}

func leagueDateInfo(payload scraper.Payload) (season.DateInfo, error) {
	leagues, ok := payload["leagues"].([]any)
	if !ok || len(leagues) == 0 {
		return nil, fmt.Errorf("payload has no leagues")
	}
	league, ok := leagues[0].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("league is not an object")
	}
	raw, ok := league["seasonDateInfo"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("league has no seasonDateInfo: %w", season.ErrNotPublished)
	}
	return season.ParseDateInfo(raw), nil
}

// DateInfo fetches the season date info published by both major leagues
// and fails when they disagree.
func (a API) DateInfo(ctx context.Context, year int) (season.DateInfo, error) {
	ctx, span := tracer.Start(ctx, "DateInfo")
	defer span.End()
	span.SetAttributes(attribute.Int("year", year))

	var infos []season.DateInfo
	for _, league := range []League{AmericanLeague, NationalLeague} {
		res, err := a.League(ctx, league.ID, year)
		if err != nil {
			return nil, err
		}
		info, err := leagueDateInfo(res.Payload)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", res.Address, err)
		}
		infos = append(infos, info)
	}

	if !infos[0].Equal(infos[1]) {
		slog.WarnContext(ctx, "league date info mismatch", "year", year)
		return nil, fmt.Errorf(
			"season %d: %s and %s publish different date info",
			year, AmericanLeague.Abbreviation, NationalLeague.Abbreviation,
		)
	}
	return infos[0], nil
}

// Calendar resolves season spans from the published date info.
func (a API) Calendar() season.Calendar {
	return season.NewCalendar(a, a.clock)
}

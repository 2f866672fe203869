package mlb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sabrmetrics/lib/address"
	"sabrmetrics/lib/chrono"
	"sabrmetrics/lib/registry"
	"sabrmetrics/lib/scraper"
	"sabrmetrics/lib/season"
	"sabrmetrics/lib/standings"

	"github.com/stretchr/testify/require"
)

var fixedClock = chrono.Fixed{At: time.Date(2024, time.May, 2, 12, 0, 0, 0, time.UTC)}

func seasonDateInfo(year int, regularSeasonStart string) map[string]any {
	info := map[string]any{
		"seasonId":               fmt.Sprint(year),
		"preSeasonStartDate":     fmt.Sprintf("%d-01-01", year),
		"regularSeasonStartDate": fmt.Sprintf("%d-%s", year, regularSeasonStart),
		"regularSeasonEndDate":   fmt.Sprintf("%d-09-29", year),
		"lastDate1stHalf":        fmt.Sprintf("%d-07-14", year),
		"firstDate2ndHalf":       fmt.Sprintf("%d-07-19", year),
	}
	info["qualifierPlateAppearances"] = 3.1
	return info
}

type fakeStatsAPI struct {
	t        *testing.T
	requests []string
	// national overrides the national league opening day
	national string
	// unpublished seasons come back without seasonDateInfo
	unpublished map[int]bool
}

func (f *fakeStatsAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.requests = append(f.requests, r.URL.RequestURI())
	w.Header().Set("Content-Type", "application/json")

	var body any
	switch {
	case strings.HasPrefix(r.URL.Path, "/api/v1/league/"):
		var id, year int
		_, err := fmt.Sscanf(r.URL.Path, "/api/v1/league/%d", &id)
		require.NoError(f.t, err)
		_, err = fmt.Sscanf(r.URL.Query().Get("season"), "%d", &year)
		require.NoError(f.t, err)

		start := "03-28"
		if id == NationalLeague.ID && f.national != "" {
			start = f.national
		}
		league := map[string]any{"id": id}
		if !f.unpublished[year] {
			league["seasonDateInfo"] = seasonDateInfo(year, start)
		}
		body = map[string]any{"leagues": []any{league}}
	case r.URL.Path == "/api/v1/league":
		body = map[string]any{"leagues": []any{
			map[string]any{"id": 103}, map[string]any{"id": 104},
		}}
	case r.URL.Path == "/api/v1/divisions":
		body = map[string]any{"divisions": []any{
			map[string]any{"id": 200}, map[string]any{"id": 201},
		}}
	case strings.HasPrefix(r.URL.Path, "/api/v1/divisions/"):
		body = map[string]any{"divisions": []any{map[string]any{"id": 201, "name": "American League East"}}}
	case r.URL.Path == "/api/v1/standings":
		body = map[string]any{"records": []any{
			map[string]any{
				"league":   map[string]any{"id": 103},
				"division": map[string]any{"id": 201},
				"teamRecords": []any{
					map[string]any{
						"team": map[string]any{"id": 110, "name": "Baltimore Orioles"},
						"wins": 101,
						"records": map[string]any{
							"divisionRecords": []any{map[string]any{
								"division": map[string]any{"id": 201, "name": "American League East"},
								"wins":     33,
							}},
						},
					},
				},
			},
			map[string]any{
				"league":      map[string]any{"id": 104},
				"division":    map[string]any{"id": 204},
				"teamRecords": []any{map[string]any{"team": map[string]any{"id": 144}, "wins": 104}},
			},
		}}
	case r.URL.Path == "/standings":
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body><h1>Standings</h1></body></html>`))
		return
	default:
		w.WriteHeader(http.StatusNotFound)
		return
	}
	require.NoError(f.t, json.NewEncoder(w).Encode(body))
}

func newTestAPI(t *testing.T) (API, *fakeStatsAPI) {
	fake := &fakeStatsAPI{t: t}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	return NewAPI(Options{
		BaseURL: server.URL + "/api/v1",
		WebURL:  server.URL + "/standings",
		Client:  scraper.NewClient(scraper.Options{Timeout: 5 * time.Second}),
		Clock:   fixedClock,
	}), fake
}

func TestLeagueSchema(t *testing.T) {
	schema := LeagueSchema(DefaultBaseURL, NewDefaults(fixedClock))

	addr, err := schema.Build(map[string]any{"season": 2023})
	require.NoError(t, err)
	require.Empty(t, addr.Path)
	require.Equal(t, "season=2023", addr.RawQuery())

	addr, err = schema.Build(map[string]any{"league_id": AmericanLeague.ID, "season": 2023})
	require.NoError(t, err)
	require.Equal(t, []string{"103"}, addr.Path)
	require.Equal(t, "https://statsapi.mlb.com/api/v1/league/103?season=2023", addr.String())

	addr, err = schema.Build(nil)
	require.NoError(t, err)
	require.Equal(t, "https://statsapi.mlb.com/api/v1/league?season=2024", addr.String())
}

func TestStandingsSchema(t *testing.T) {
	schema := StandingsSchema(DefaultBaseURL, NewDefaults(fixedClock))

	addr, err := schema.Build(nil)
	require.NoError(t, err)
	require.Equal(t, "leagueId=103,104&season=2024", addr.RawQuery())

	addr, err = schema.Build(map[string]any{
		"date":            time.Date(2023, time.July, 4, 0, 0, 0, 0, time.UTC),
		"standings_types": []string{"regularSeason", "wildCard"},
		"hydrate":         []string{},
	})
	require.NoError(t, err)
	require.Equal(t,
		"leagueId=103,104&season=2024&date=2023-07-04&standingsTypes=regularSeason,wildCard&hydrate=",
		addr.RawQuery(),
	)

	_, err = schema.Build(map[string]any{"league_id": 103})
	mismatch, ok := address.AsTypeMismatch(err)
	require.True(t, ok)
	require.Equal(t, "league_id", mismatch.Field)
}

func TestRegistries(t *testing.T) {
	for _, name := range []string{"American League", "al", "103"} {
		league, err := Leagues.Lookup(name)
		require.NoError(t, err)
		require.Equal(t, AmericanLeague, league)
	}

	division, err := Divisions.Lookup("NLE")
	require.NoError(t, err)
	require.Equal(t, 204, division.ID)

	_, err = Leagues.Lookup("Pacific Coast League")
	_, ok := registry.AsUnknownKey(err)
	require.True(t, ok)

	require.Equal(t, []Division{ALWest, ALEast, ALCentral}, AmericanLeague.Divisions())
	require.Empty(t, CactusLeague.Divisions())
}

func TestFetchEndpoints(t *testing.T) {
	ctx := context.Background()
	api, fake := newTestAPI(t)

	res, err := api.League(ctx, AmericanLeague.ID, 0)
	require.NoError(t, err)
	require.NotEmpty(t, res.Payload["leagues"])

	_, err = api.AllLeagues(ctx, 2023)
	require.NoError(t, err)

	res, err = api.Division(ctx, ALEast.ID)
	require.NoError(t, err)
	require.NotEmpty(t, res.Payload["divisions"])

	page, err := api.StandingsPage(ctx)
	require.NoError(t, err)
	require.Equal(t, "Standings", page.Payload.Find("h1").Text())

	_, err = api.League(ctx, 0, 2023)
	require.NoError(t, err)
	res, err = api.Division(ctx, 0)
	require.NoError(t, err)
	require.Len(t, res.Payload["divisions"], 2)

	require.Equal(t, []string{
		"/api/v1/league/103?season=2024",
		"/api/v1/league?season=2023",
		"/api/v1/divisions/201",
		"/standings",
		"/api/v1/league?season=2023",
		"/api/v1/divisions",
	}, fake.requests)
}

func TestDefaultsFollowClock(t *testing.T) {
	clock := &chrono.Fixed{At: time.Date(2024, time.December, 31, 23, 0, 0, 0, time.UTC)}
	api := NewAPI(Options{Clock: clock})

	addr, err := api.StandingsAddress(StandingsQuery{})
	require.NoError(t, err)
	require.Equal(t, "leagueId=103,104&season=2024", addr.RawQuery())

	clock.At = time.Date(2025, time.January, 1, 1, 0, 0, 0, time.UTC)
	addr, err = api.StandingsAddress(StandingsQuery{})
	require.NoError(t, err)
	require.Equal(t, "leagueId=103,104&season=2025", addr.RawQuery())
	require.Equal(t, 2025, api.Defaults().Season)

	addr, err = api.LeagueSchema().Build(nil)
	require.NoError(t, err)
	require.Equal(t, DefaultBaseURL+"/league?season=2025", addr.String())
}

func TestStandingsAddressKeepsDefaults(t *testing.T) {
	api := NewAPI(Options{Clock: fixedClock})

	addr, err := api.StandingsAddress(StandingsQuery{Season: 2023, Hydrate: []string{}})
	require.NoError(t, err)
	require.Equal(t, "leagueId=103,104&season=2023&hydrate=", addr.RawQuery())

	addr, err = api.StandingsAddress(StandingsQuery{LeagueIDs: []int{AmericanLeague.ID}})
	require.NoError(t, err)
	require.Equal(t, "leagueId=103&season=2024", addr.RawQuery())
}

func TestStandingsTable(t *testing.T) {
	api, fake := newTestAPI(t)

	table, err := api.StandingsTable(
		context.Background(),
		StandingsQuery{Season: 2023, StandingsTypes: []string{"regularSeason"}},
		standings.ByDivision(ALEast.ID),
		standings.Options{Include: []standings.Kind{standings.Division}},
	)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)

	wins, ok := table.Value(0, standings.Column{Group: "divisionRecords", Key: "201", Field: "wins"})
	require.True(t, ok)
	require.Equal(t, json.Number("33"), wins)

	require.Equal(t, []string{
		"/api/v1/standings?leagueId=103,104&season=2023&standingsTypes=regularSeason",
	}, fake.requests)

	_, err = api.StandingsTable(
		context.Background(),
		StandingsQuery{},
		standings.All(),
		standings.Options{Include: []standings.Kind{standings.Division}},
	)
	_, ok = standings.AsMissingBreakdown(err)
	require.True(t, ok)
}

func TestDateInfoAndCalendar(t *testing.T) {
	ctx := context.Background()
	api, _ := newTestAPI(t)

	info, err := api.DateInfo(ctx, 2023)
	require.NoError(t, err)
	require.Equal(t, int64(2023), info["seasonId"])
	require.Equal(t, 3.1, info["qualifierPlateAppearances"])

	cal := api.Calendar()
	span, err := cal.Latest(ctx, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), season.RegularSeason)
	require.NoError(t, err)
	require.Equal(t, 2023, span.Year)
	require.Equal(t, time.Date(2023, time.March, 28, 0, 0, 0, 0, time.UTC), span.Start)

	clamped, err := cal.ClampToSpan(ctx, time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC), season.RegularSeason)
	require.NoError(t, err)
	require.Equal(t, time.Date(2023, time.September, 29, 0, 0, 0, 0, time.UTC), clamped)
}

func TestCalendarBeforePublication(t *testing.T) {
	ctx := context.Background()
	api, fake := newTestAPI(t)
	fake.unpublished = map[int]bool{2024: true}

	_, err := api.DateInfo(ctx, 2024)
	require.ErrorIs(t, err, season.ErrNotPublished)

	span, err := api.Calendar().Latest(ctx, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), season.RegularSeason)
	require.NoError(t, err)
	require.Equal(t, 2023, span.Year)
}

func TestDateInfoMismatch(t *testing.T) {
	api, fake := newTestAPI(t)
	fake.national = "03-30"

	_, err := api.DateInfo(context.Background(), 2023)
	require.ErrorContains(t, err, "different date info")
}

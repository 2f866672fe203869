package mlb

import (
	"sabrmetrics/lib/address"
	"sabrmetrics/lib/chrono"
)

const (
	DefaultBaseURL = "https://statsapi.mlb.com/api/v1"
	StandingsPage  = "https://www.mlb.com/standings"
)

// Defaults holds the field defaults that depend on the current date. They
// are computed from the clock for every request, never at package init.
type Defaults struct {
	Season    int
	LeagueIDs []int
}

// NewDefaults derives defaults from the clock: the current calendar year
// and the two major leagues.
func NewDefaults(clock chrono.API) Defaults {
	return Defaults{
		Season:    clock.Now().Year(),
		LeagueIDs: []int{AmericanLeague.ID, NationalLeague.ID},
	}
}

// LeagueSchema addresses `/league[/<id>]?season=Y`.
func LeagueSchema(base string, d Defaults) address.Schema {
	return address.NewSchema(base+"/league",
		address.Field{Name: "league_id", Type: address.Int, In: address.InPath},
		address.Field{Name: "season", Type: address.Int, Default: d.Season},
	)
}

// DivisionSchema addresses `/divisions/<id>`.
func DivisionSchema(base string) address.Schema {
	return address.NewSchema(base+"/divisions",
		address.Field{Name: "division_id", Type: address.Int, In: address.InPath},
	)
}

// StandingsSchema addresses `/standings`.
func StandingsSchema(base string, d Defaults) address.Schema {
	leagueIDs := make([]int, len(d.LeagueIDs))
	copy(leagueIDs, d.LeagueIDs)

	return address.NewSchema(base+"/standings",
		address.Field{
			Name:    "league_id",
			Param:   "leagueId",
			Type:    address.SequenceOf(address.Int),
			Default: leagueIDs,
		},
		address.Field{Name: "season", Type: address.Int, Default: d.Season},
		address.Field{Name: "date", Type: address.Date},
		address.Field{
			Name:  "standings_types",
			Param: "standingsTypes",
			Type:  address.SequenceOf(address.String),
		},
		address.Field{Name: "hydrate", Type: address.SequenceOf(address.String)},
	)
}

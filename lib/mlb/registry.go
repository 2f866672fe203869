package mlb

import (
	"strconv"

	"sabrmetrics/lib/registry"
)

type League struct {
	ID           int
	Name         string
	Abbreviation string
}

type Division struct {
	ID           int
	Name         string
	Abbreviation string
	LeagueID     int
}

var (
	AmericanLeague   = League{ID: 103, Name: "American League", Abbreviation: "AL"}
	NationalLeague   = League{ID: 104, Name: "National League", Abbreviation: "NL"}
	CactusLeague     = League{ID: 114, Name: "Cactus League", Abbreviation: "CL"}
	GrapefruitLeague = League{ID: 115, Name: "Grapefruit League", Abbreviation: "GL"}
)

var (
	ALWest    = Division{ID: 200, Name: "American League West", Abbreviation: "ALW", LeagueID: 103}
	ALEast    = Division{ID: 201, Name: "American League East", Abbreviation: "ALE", LeagueID: 103}
	ALCentral = Division{ID: 202, Name: "American League Central", Abbreviation: "ALC", LeagueID: 103}
	NLWest    = Division{ID: 203, Name: "National League West", Abbreviation: "NLW", LeagueID: 104}
	NLEast    = Division{ID: 204, Name: "National League East", Abbreviation: "NLE", LeagueID: 104}
	NLCentral = Division{ID: 205, Name: "National League Central", Abbreviation: "NLC", LeagueID: 104}
)

func leagueEntry(l League) registry.Entry[League] {
	return registry.Entry[League]{
		Name:    l.Name,
		Value:   l,
		Aliases: []string{l.Abbreviation, strconv.Itoa(l.ID)},
	}
}

func divisionEntry(d Division) registry.Entry[Division] {
	return registry.Entry[Division]{
		Name:    d.Name,
		Value:   d,
		Aliases: []string{d.Abbreviation, strconv.Itoa(d.ID)},
	}
}

// Leagues resolves a league by name, abbreviation or id.
var Leagues = registry.New("leagues",
	leagueEntry(AmericanLeague),
	leagueEntry(NationalLeague),
	leagueEntry(CactusLeague),
	leagueEntry(GrapefruitLeague),
)

// Divisions resolves a division by name, abbreviation or id.
var Divisions = registry.New("divisions",
	divisionEntry(ALWest),
	divisionEntry(ALEast),
	divisionEntry(ALCentral),
	divisionEntry(NLWest),
	divisionEntry(NLEast),
	divisionEntry(NLCentral),
)

// Divisions lists the divisions belonging to the league in registry order.
func (l League) Divisions() []Division {
	var out []Division
	for _, d := range Divisions.Values() {
		if d.LeagueID == l.ID {
			out = append(out, d)
		}
	}
	return out
}

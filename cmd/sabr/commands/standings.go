package commands

import (
	"fmt"
	"time"

	"sabrmetrics/lib/mlb"
	"sabrmetrics/lib/season"
	"sabrmetrics/lib/standings"

	"github.com/spf13/cobra"
)

var standingsFlags struct {
	season       int
	date         string
	clamp        bool
	league       string
	division     string
	types        []string
	include      []string
	streak       bool
	leagueRecord bool
	groups       []string
	page         bool
}

func standingsFilter() (standings.Filter, error) {
	f := standingsFlags
	switch {
	case f.league != "" && f.division != "":
		return standings.Filter{}, fmt.Errorf("--league and --division are exclusive")
	case f.league != "":
		league, err := mlb.Leagues.Lookup(f.league)
		if err != nil {
			return standings.Filter{}, err
		}
		return standings.ByLeague(league.ID), nil
	case f.division != "":
		division, err := mlb.Divisions.Lookup(f.division)
		if err != nil {
			return standings.Filter{}, err
		}
		return standings.ByDivision(division.ID), nil
	}
	return standings.All(), nil
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Fetches standings and prints them as a single table.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		f := standingsFlags

		if f.page {
			res, err := api.StandingsPage(ctx)
			if err != nil {
				return err
			}
			fmt.Println(res.Payload.Find("title").Text())
			return nil
		}

		filter, err := standingsFilter()
		if err != nil {
			return err
		}
		kinds, err := standings.ParseKinds(f.include...)
		if err != nil {
			return err
		}

		query := mlb.StandingsQuery{
			Season:         f.season,
			StandingsTypes: f.types,
		}
		if f.date != "" {
			query.Date, err = time.Parse(dateLayout, f.date)
			if err != nil {
				return fmt.Errorf("--date: %w", err)
			}
		}
		if f.clamp {
			day := query.Date
			if day.IsZero() {
				day = clock.Now()
			}
			query.Date, err = api.Calendar().ClampToSpan(ctx, day, season.RegularSeason)
			if err != nil {
				return err
			}
			if query.Season == 0 {
				query.Season = query.Date.Year()
			}
		}

		tbl, err := api.StandingsTable(ctx, query, filter, standings.Options{
			Include:      kinds,
			Streak:       f.streak,
			LeagueRecord: f.leagueRecord,
		})
		if err != nil {
			return err
		}
		if len(f.groups) > 0 {
			tbl = tbl.Select(f.groups...)
		}
		renderStandings(tbl)
		return nil
	},
}

func init() {
	flags := standingsCmd.Flags()
	flags.IntVar(&standingsFlags.season, "season", 0, "Season year, defaults to the current year.")
	flags.StringVar(&standingsFlags.date, "date", "", "Standings as of this date (YYYY-MM-DD).")
	flags.BoolVar(&standingsFlags.clamp, "clamp", false, "Move --date (or today) to the last day of the regular season when it falls outside of it.")
	flags.StringVar(&standingsFlags.league, "league", "", "Only teams of this league.")
	flags.StringVar(&standingsFlags.division, "division", "", "Only teams of this division.")
	flags.StringSliceVar(&standingsFlags.types, "types", nil, "Standings types, e.g. regularSeason,wildCard.")
	flags.StringSliceVar(&standingsFlags.include, "include", nil, "Breakdowns to include: split, division, league, overall, expected.")
	flags.BoolVar(&standingsFlags.streak, "streak", false, "Include the streak columns.")
	flags.BoolVar(&standingsFlags.leagueRecord, "league-record", false, "Include the league record columns.")
	flags.StringSliceVar(&standingsFlags.groups, "groups", nil, "Only print these column groups.")
	flags.BoolVar(&standingsFlags.page, "page", false, "Fetch the standings web page instead and print its title.")
	rootCmd.AddCommand(standingsCmd)
}

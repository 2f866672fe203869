package commands

import (
	"strconv"

	"sabrmetrics/lib/mlb"

	"github.com/spf13/cobra"
)

var leagueSeason int

var leagueCmd = &cobra.Command{
	Use:   "league [name|abbreviation|id]",
	Short: "Fetches a league, or every league of the season when none is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			res, err := api.AllLeagues(cmd.Context(), leagueSeason)
			if err != nil {
				return err
			}
			return printJSON(res.Payload)
		}

		league, err := mlb.Leagues.Lookup(args[0])
		if err != nil {
			return err
		}
		res, err := api.League(cmd.Context(), league.ID, leagueSeason)
		if err != nil {
			return err
		}
		return printJSON(res.Payload)
	},
}

var leaguesCmd = &cobra.Command{
	Use:   "leagues",
	Short: "Lists the known leagues and their divisions.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		t := newTable()
		t.AppendHeader([]any{"ID", "League", "Abbreviation", "Divisions"})
		for _, league := range mlb.Leagues.Values() {
			divisions := ""
			for i, d := range league.Divisions() {
				if i > 0 {
					divisions += ", "
				}
				divisions += d.Abbreviation + " (" + strconv.Itoa(d.ID) + ")"
			}
			t.AppendRow([]any{league.ID, league.Name, league.Abbreviation, divisions})
		}
		t.Render()
	},
}

var divisionCmd = &cobra.Command{
	Use:   "division <name|abbreviation|id>",
	Short: "Fetches a division.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		division, err := mlb.Divisions.Lookup(args[0])
		if err != nil {
			return err
		}
		res, err := api.Division(cmd.Context(), division.ID)
		if err != nil {
			return err
		}
		return printJSON(res.Payload)
	},
}

func init() {
	leagueCmd.Flags().IntVar(&leagueSeason, "season", 0, "Season year, defaults to the current year.")
	rootCmd.AddCommand(leagueCmd, leaguesCmd, divisionCmd)
}

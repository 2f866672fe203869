package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"sabrmetrics/lib/season"

	"github.com/spf13/cobra"
)

var spanName string

func parseDay(args []string) (time.Time, error) {
	if len(args) == 0 {
		return clock.Now(), nil
	}
	day, err := time.ParseInLocation(dateLayout, args[0], clock.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("date: %w", err)
	}
	return day, nil
}

func printSpan(span season.Span) {
	fmt.Printf(
		"%d %s: %s to %s\n",
		span.Year, span.Kind.Name,
		span.Start.Format(dateLayout), span.End.Format(dateLayout),
	)
}

var seasonCmd = &cobra.Command{
	Use:   "season",
	Short: "Answers questions about the season calendar.",
}

var seasonSpanCmd = &cobra.Command{
	Use:   "span <year>",
	Short: "Prints the first and last day of a span of the given season.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("year: %w", err)
		}
		kind, err := season.Spans.Lookup(spanName)
		if err != nil {
			return err
		}
		span, err := api.Calendar().Span(cmd.Context(), year, kind)
		if err != nil {
			return err
		}
		printSpan(span)
		return nil
	},
}

var seasonLatestCmd = &cobra.Command{
	Use:   "latest [date]",
	Short: "Prints the most recent span that has started on the date, today by default.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseDay(args)
		if err != nil {
			return err
		}
		kind, err := season.Spans.Lookup(spanName)
		if err != nil {
			return err
		}
		span, err := api.Calendar().Latest(cmd.Context(), day, kind)
		if err != nil {
			return err
		}
		inSpan := span.Contains(day)
		printSpan(span)
		fmt.Println("in span:", inSpan)
		return nil
	},
}

var seasonClampCmd = &cobra.Command{
	Use:   "clamp [date]",
	Short: "Prints the date, or the end of the latest span when the date falls outside of it.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseDay(args)
		if err != nil {
			return err
		}
		kind, err := season.Spans.Lookup(spanName)
		if err != nil {
			return err
		}
		clamped, err := api.Calendar().ClampToSpan(cmd.Context(), day, kind)
		if err != nil {
			return err
		}
		fmt.Println(clamped.Format(dateLayout))
		return nil
	},
}

func init() {
	seasonCmd.PersistentFlags().StringVar(
		&spanName, "span", season.RegularSeason.Name,
		fmt.Sprintf("Span of the season, one of: %s.", strings.Join(season.Spans.Names(), ", ")),
	)
	seasonCmd.AddCommand(seasonSpanCmd, seasonLatestCmd, seasonClampCmd)
	rootCmd.AddCommand(seasonCmd)
}

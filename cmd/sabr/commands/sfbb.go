package commands

import (
	"context"
	"fmt"
	"log/slog"

	"sabrmetrics/lib/playerids"
	"sabrmetrics/lib/sfbb"

	"github.com/spf13/cobra"
)

const headersFile = "headers.json5"

var sfbbFlags struct {
	site    string
	suggest string
	limit   int
	csv     bool
}

func newTools() (sfbb.Tools, error) {
	headers, err := sfbb.LoadHeaders(headersFile)
	if err != nil {
		return sfbb.Tools{}, err
	}
	return sfbb.NewTools(sfbb.Options{
		Headers:           headers,
		Output:            output,
		RequestsPerSecond: rps,
	})
}

var sfbbCmd = &cobra.Command{
	Use:   "sfbb",
	Short: "Reads the Smart Fantasy Baseball tools page.",
}

var sfbbLinksCmd = &cobra.Command{
	Use:   "links",
	Short: "Prints the download links of the player id map.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tools, err := newTools()
		if err != nil {
			return err
		}
		links, err := tools.Links(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(links)
	},
}

var sfbbDownloadCmd = &cobra.Command{
	Use:       "download <excel|csv|changelog> <dest>",
	Short:     "Downloads the player id map or its changelog to dest.",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"excel", "csv", "changelog"},
	RunE: func(cmd *cobra.Command, args []string) error {
		tools, err := newTools()
		if err != nil {
			return err
		}

		var download func(ctx context.Context, dest string) (int64, error)
		switch args[0] {
		case "excel":
			download = tools.DownloadExcel
		case "csv":
			download = tools.DownloadCSV
		case "changelog":
			download = tools.DownloadChangelogCSV
		default:
			return fmt.Errorf("unknown download '%s', expected excel, csv or changelog", args[0])
		}

		written, err := download(cmd.Context(), args[1])
		if err != nil {
			return err
		}
		slog.Info("downloaded", "file", args[1], "bytes", written)
		return nil
	},
}

var sfbbPlayerIDsCmd = &cobra.Command{
	Use:   "playerids",
	Short: "Prints the player id map, optionally narrowed to one site or to name suggestions.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tools, err := newTools()
		if err != nil {
			return err
		}
		load := tools.PlayerIDMap
		if sfbbFlags.csv {
			load = tools.PlayerIDMapCSV
		}

		ids, err := playerids.Load(cmd.Context(), playerids.SmartFantasyBaseball, load)
		if err != nil {
			return err
		}

		if sfbbFlags.suggest != "" {
			t := newTable()
			t.AppendHeader([]any{"Row", "Name", "Similarity"})
			for _, s := range ids.Suggest(sfbbFlags.suggest, sfbbFlags.limit) {
				t.AppendRow([]any{s.Row, s.Name, fmt.Sprintf("%.3f", s.Similarity)})
			}
			t.Render()
			return nil
		}

		sheet := ids.Sheet
		if sfbbFlags.site != "" {
			sheet, err = ids.Select(sfbbFlags.site)
			if err != nil {
				return err
			}
		}
		renderSheet(sheet, sfbbFlags.limit)
		return nil
	},
}

var sfbbChangelogCmd = &cobra.Command{
	Use:   "changelog",
	Short: "Prints the player id map changelog.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tools, err := newTools()
		if err != nil {
			return err
		}
		load := tools.Changelog
		if sfbbFlags.csv {
			load = tools.ChangelogCSV
		}
		sheet, err := load(cmd.Context())
		if err != nil {
			return err
		}
		renderSheet(sheet, sfbbFlags.limit)
		return nil
	},
}

func init() {
	sfbbCmd.PersistentFlags().BoolVar(&sfbbFlags.csv, "csv", false, "Read the csv export instead of the webview.")
	sfbbCmd.PersistentFlags().IntVar(&sfbbFlags.limit, "limit", 25, "Maximum number of rows to print, 0 prints all.")

	sfbbPlayerIDsCmd.Flags().StringVar(&sfbbFlags.site, "site", "", "Only the primary columns and the columns of this site.")
	sfbbPlayerIDsCmd.Flags().StringVar(&sfbbFlags.suggest, "suggest", "", "Suggest players whose name is closest to this one.")

	sfbbCmd.AddCommand(sfbbLinksCmd, sfbbDownloadCmd, sfbbPlayerIDsCmd, sfbbChangelogCmd)
	rootCmd.AddCommand(sfbbCmd)
}

package commands

import (
	"fmt"

	"sabrmetrics/lib/address"
	"sabrmetrics/lib/registry"

	"github.com/spf13/cobra"
)

func schemas() registry.Registry[address.Schema] {
	return registry.New("endpoints",
		registry.Entry[address.Schema]{Name: "league", Value: api.LeagueSchema()},
		registry.Entry[address.Schema]{Name: "division", Value: api.DivisionSchema(), Aliases: []string{"divisions"}},
		registry.Entry[address.Schema]{Name: "standings", Value: api.StandingsSchema()},
	)
}

var addressCmd = &cobra.Command{
	Use:   "address <league|division|standings> [name=value...]",
	Short: "Prints the address an endpoint would be requested at.",
	Long: `Prints the address an endpoint would be requested at.

Values are parsed according to the type of their parameter: lists are comma
separated and dates are written as YYYY-MM-DD.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := schemas().Lookup(args[0])
		if err != nil {
			return err
		}

		if fieldsOnly {
			t := newTable()
			t.AppendHeader([]any{"Field", "Type", "Default"})
			for _, name := range schema.FieldNames() {
				fieldType, err := schema.FieldType(name)
				if err != nil {
					return err
				}
				def, present, err := schema.FieldDefault(name)
				if err != nil {
					return err
				}
				if !present {
					def = ""
				}
				t.AppendRow([]any{name, fieldType.String(), formatCell(def)})
			}
			t.Render()
			return nil
		}

		overrides, err := schema.ParseOverrides(args[1:])
		if err != nil {
			return err
		}
		addr, err := schema.Build(overrides)
		if err != nil {
			return err
		}
		fmt.Println(addr.String())
		return nil
	},
}

var fieldsOnly bool

func init() {
	addressCmd.Flags().BoolVar(&fieldsOnly, "fields", false, "List the fields of the endpoint instead.")
	rootCmd.AddCommand(addressCmd)
}

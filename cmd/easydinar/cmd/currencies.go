package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rabie-karouia/EasyDinar/internal/modules/exchange"
	"github.com/spf13/cobra"
)

var currenciesFormat string

var currenciesCmd = &cobra.Command{
	Use:   "currencies",
	Short: "List the currencies offered by the exchange converter",
	Long: `List the currencies offered by the exchange converter, in the order the
converter shows them.

Output formats:
  table - Human-readable table format (default)
  json  - Machine-readable JSON format`,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch currenciesFormat {
		case "table":
			return writeCurrencyTable(cmd.OutOrStdout(), exchange.Currencies)
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(exchange.Currencies)
		default:
			return fmt.Errorf("invalid format %q, valid formats: table, json", currenciesFormat)
		}
	},
}

func writeCurrencyTable(out io.Writer, currencies []exchange.Currency) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tNAME\tCOUNTRY")
	fmt.Fprintln(w, "----\t----\t-------")
	for _, c := range currencies {
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.Code, c.Name, c.Country)
	}
	return w.Flush()
}

func init() {
	currenciesCmd.Flags().StringVarP(&currenciesFormat, "format", "f", "table", "output format (table, json)")
	rootCmd.AddCommand(currenciesCmd)
}

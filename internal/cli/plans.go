package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/sim-order-desk/constants"
	"github.com/joseph-ayodele/sim-order-desk/internal/catalog"
)

// PlansCommand prints the plan table.
func PlansCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "plans",
		Short: "List the plans offered per request type and network",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := catalog.Default()
			out := cmd.OutOrStdout()
			for _, rt := range constants.RequestTypes() {
				for _, nw := range constants.Networks() {
					plans := c.Plans(rt, nw)
					list := "no plans"
					if len(plans) > 0 {
						list = constants.CurrencySymbol + strings.Join(plans, ", "+constants.CurrencySymbol)
					}
					fmt.Fprintf(out, "%-12s %-7s %s\n", rt, nw, list)
				}
			}
			return nil
		},
	}
}

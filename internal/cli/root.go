package cli

import (
	"github.com/spf13/cobra"
)

// RootCommand assembles the simorder command tree.
func RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "simorder",
		Short:         "Capture SIM card orders and produce the order message and UPI payment link",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "Log progress to stderr")

	root.AddCommand(ComposeCommand())
	root.AddCommand(ExtractCommand())
	root.AddCommand(PlansCommand())
	return root
}

func verbose(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("verbose")
	return v
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "app",
	Short: "Orders and students services",
	Long: `Orders and students services.

Both keep their records in memory and are configured through ENV.`,
	SilenceUsage: true,
}

// Execute runs the command selected by the process arguments. It is called by
// main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(
		newOrdersCmd(),
		newStudentsCmd(),
		newEnqueueStudentCmd(),
	)
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// VERSION is the current dataproc version.
const VERSION = "v1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the current version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("%s\n", VERSION)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

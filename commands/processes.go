package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harvesting-media/dataproc/process"
)

var processesCmd = &cobra.Command{
	Use:   "processes",
	Short: "List the configured process definitions",
	Run:   runProcesses,
}

func init() {
	rootCmd.AddCommand(processesCmd)
}

func runProcesses(_ *cobra.Command, _ []string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 3, ' ', 0)

	fmt.Fprintln(w, "PROCESS\tWORKSHEET\tMODE\tCOLUMNS")
	for _, d := range process.Processes() {
		columns := make([]string, len(d.Fields))
		for i, f := range d.Fields {
			columns[i] = f.Column
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Name, d.Worksheet, d.Mode, strings.Join(columns, ", "))
	}

	w.Flush()
}

package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harvesting-media/dataproc/config"
	"github.com/harvesting-media/dataproc/process"
	"github.com/harvesting-media/dataproc/sheets"
	"github.com/harvesting-media/dataproc/table"
	"github.com/harvesting-media/dataproc/tui"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a tabular file into a process's worksheet",
	Long: `Import a CSV, XLSX or delimited TXT file into the worksheet of a named
process. Source columns are assigned to the process's fields with repeated
--map flags, e.g.

  dataproc import --file leads.csv --process "Certo Market" \
      --map email=E-mail --map first_name=Nome --map phone=Telefone

or interactively with --interactive, which walks through the file, process
and column choices in a terminal wizard.`,
	RunE: runImport,
}

var importOptions = struct {
	file        string
	processName string
	mappings    []string
	noHeaders   bool
	credentials string
	spreadsheet string
	dryRun      bool
	interactive bool
}{}

func init() {
	importCmd.Flags().StringVar(&importOptions.file, "file", "", "File to import (.csv, .xlsx, .txt or .tsv)")
	importCmd.Flags().StringVar(&importOptions.processName, "process", "", "Process name (see 'dataproc processes')")
	importCmd.Flags().StringArrayVar(&importOptions.mappings, "map", nil, "Field mapping as <field>=<source column> (repeatable)")
	importCmd.Flags().BoolVar(&importOptions.noHeaders, "no-headers", false, "Treat the first row as data, not headers")
	importCmd.Flags().StringVar(&importOptions.credentials, "credentials", "", "Service account credentials file (default from GOOGLE_CREDENTIALS)")
	importCmd.Flags().StringVar(&importOptions.spreadsheet, "spreadsheet", "", "Spreadsheet ID or URL (default from SPREADSHEET_ID)")
	importCmd.Flags().BoolVar(&importOptions.dryRun, "dry-run", false, "Transform and summarize without writing to the spreadsheet")
	importCmd.Flags().BoolVar(&importOptions.interactive, "interactive", false, "Choose the file, process and mapping interactively")

	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := configureLogging(cfg); err != nil {
		return err
	}

	write := func(ctx context.Context, d process.Definition, t *table.Table) error {
		client, err := newClient(ctx, cfg, importOptions.credentials, importOptions.spreadsheet)
		if err != nil {
			return err
		}

		w := sheets.NewWriter(client)

		if d.Mode == process.Append {
			return w.Append(ctx, d.Worksheet, t)
		}

		return w.Overwrite(ctx, d.Worksheet, t)
	}

	if importOptions.interactive {
		return tui.Run(tui.Options{
			File:       importOptions.file,
			HasHeaders: !importOptions.noHeaders,
			DryRun:     importOptions.dryRun,
			Write:      write,
		})
	}

	if importOptions.file == "" {
		return fmt.Errorf("--file is required (or use --interactive)")
	}

	if importOptions.processName == "" {
		return fmt.Errorf("--process is required (or use --interactive)")
	}

	d, err := process.Lookup(importOptions.processName)
	if err != nil {
		return err
	}

	mapping, err := parseMappings(importOptions.mappings)
	if err != nil {
		return err
	}

	f, err := os.Open(importOptions.file)
	if err != nil {
		return fmt.Errorf("unable to open '%s' (%w)", importOptions.file, err)
	}

	defer f.Close()

	src, err := table.Read(f, importOptions.file, !importOptions.noHeaders)
	if err != nil {
		return err
	}

	out, err := d.Apply(src, mapping)
	if err != nil {
		return err
	}

	if !importOptions.dryRun {
		if err := write(context.Background(), d, out); err != nil {
			return err
		}
	}

	summary := d.Summarize(out)

	if importOptions.dryRun {
		fmt.Printf("dry run - nothing written\n")
	}

	fmt.Printf("process:       %s\n", summary.Process)
	fmt.Printf("worksheet:     %s\n", summary.Worksheet)
	fmt.Printf("mode:          %s\n", summary.Mode)
	fmt.Printf("rows:          %d\n", summary.Rows)
	fmt.Printf("unique emails: %d\n", summary.UniqueEmails)

	return nil
}

func parseMappings(mappings []string) (map[string]string, error) {
	mapping := map[string]string{}

	for _, m := range mappings {
		field, column, ok := strings.Cut(m, "=")
		if !ok || field == "" {
			return nil, fmt.Errorf("invalid mapping '%s' (expected <field>=<source column>)", m)
		}

		mapping[field] = column
	}

	return mapping, nil
}

package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harvesting-media/dataproc/config"
	"github.com/harvesting-media/dataproc/table"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download a worksheet as a TSV file",
	Long:  `Download the contents of a worksheet of the shared spreadsheet as tab-separated values, to a file or to stdout.`,
	RunE:  runExport,
}

var exportOptions = struct {
	worksheet   string
	file        string
	credentials string
	spreadsheet string
}{}

func init() {
	exportCmd.Flags().StringVar(&exportOptions.worksheet, "worksheet", "", "Worksheet to download")
	exportCmd.Flags().StringVar(&exportOptions.file, "file", "", "Destination file (default: stdout)")
	exportCmd.Flags().StringVar(&exportOptions.credentials, "credentials", "", "Service account credentials file (default from GOOGLE_CREDENTIALS)")
	exportCmd.Flags().StringVar(&exportOptions.spreadsheet, "spreadsheet", "", "Spreadsheet ID or URL (default from SPREADSHEET_ID)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := configureLogging(cfg); err != nil {
		return err
	}

	if exportOptions.worksheet == "" {
		return fmt.Errorf("--worksheet is required")
	}

	ctx := context.Background()

	client, err := newClient(ctx, cfg, exportOptions.credentials, exportOptions.spreadsheet)
	if err != nil {
		return err
	}

	if err := client.VerifyWorksheet(ctx, exportOptions.worksheet); err != nil {
		return err
	}

	values, err := client.Get(ctx, exportOptions.worksheet)
	if err != nil {
		return err
	}

	t, err := table.FromValues(values)
	if err != nil {
		return err
	}

	f := os.Stdout
	if exportOptions.file != "" {
		if f, err = os.Create(exportOptions.file); err != nil {
			return fmt.Errorf("unable to create '%s' (%w)", exportOptions.file, err)
		}

		defer f.Close()
	}

	return t.WriteTSV(f)
}

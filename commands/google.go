package commands

import (
	"context"

	"github.com/harvesting-media/dataproc/config"
	"github.com/harvesting-media/dataproc/sheets"
)

// newClient builds a Sheets client from the command line flags, falling back
// to the configured credentials file and spreadsheet when a flag is unset.
func newClient(ctx context.Context, cfg *config.Config, credentials, spreadsheet string) (*sheets.Client, error) {
	if credentials == "" {
		credentials = cfg.Credentials
	}

	if spreadsheet == "" {
		spreadsheet = cfg.Spreadsheet
	}

	id, err := sheets.ParseSpreadsheetID(spreadsheet)
	if err != nil {
		return nil, err
	}

	return sheets.NewClient(ctx, credentials, id)
}

package commands

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/harvesting-media/dataproc/config"
	"github.com/harvesting-media/dataproc/server"
	"github.com/harvesting-media/dataproc/sheets"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the upload web tool",
	Long:  `Start the password-gated HTTP server through which operators upload files and import them into the spreadsheet.`,
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	if err := cfg.ValidateServe(); err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}

	spreadsheet, err := sheets.ParseSpreadsheetID(cfg.Spreadsheet)
	if err != nil {
		logrus.WithError(err).Fatal("Invalid spreadsheet ID")
	}

	client, err := sheets.NewClient(context.Background(), cfg.Credentials, spreadsheet)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create Sheets client")
	}

	srv, err := server.New(cfg, client)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create server")
	}

	if err := srv.Run(); err != nil {
		logrus.WithError(err).Fatal("Failed to start HTTP server")
	}
}

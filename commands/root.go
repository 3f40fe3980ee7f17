package commands

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/harvesting-media/dataproc/config"
)

var rootCmd = &cobra.Command{
	Use:   "dataproc",
	Short: "Harvesting Media data processor",
	Long:  `dataproc imports tabular files (CSV, XLSX, delimited TXT) into the worksheets of the shared Harvesting Media spreadsheet, mapping source columns onto the target schema of a named process and normalizing the mapped fields on the way in.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func configureLogging(cfg *config.Config) error {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level '%s' (%w)", cfg.LogLevel, err)
	}

	logrus.SetLevel(level)

	switch cfg.LogFormat {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		logrus.SetFormatter(&logrus.TextFormatter{})
	default:
		return fmt.Errorf("invalid log format '%s' (expected 'text' or 'json')", cfg.LogFormat)
	}

	return nil
}

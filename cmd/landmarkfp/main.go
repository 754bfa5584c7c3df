package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/himanishpuri/landmarkfp/pkg/logger"
)

var (
	dbPath   string
	logLevel string
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "landmarkfp",
		Short: "Landmark-pair audio fingerprint index and matcher",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			applyLogLevel(logLevel)
		},
	}

	root.PersistentFlags().StringVar(&dbPath, "db", "landmarkfp.sqlite3", "path to the SQLite fingerprint index")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, fatal")

	root.AddCommand(newBuildCmd())
	root.AddCommand(newIdentifyCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newRmCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func applyLogLevel(level string) {
	switch level {
	case "debug":
		logger.SetLevel(logger.DEBUG)
	case "info":
		logger.SetLevel(logger.INFO)
	case "warn":
		logger.SetLevel(logger.WARN)
	case "fatal":
		logger.SetLevel(logger.FATAL)
	}
}

package main

import (
	"log/slog"
	"os"

	"repotutor/internal/logging"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger := logging.NewLogger(os.Stderr, slog.LevelInfo, logging.FormatHuman)
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

package main

import (
	"log/slog"
	"os"

	"github.com/google/uuid"
)

var logger = slog.Default()

// initLogger installs the process logger. Every record carries the id of
// this run so interleaved logs from several instances can be told apart.
func initLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger = slog.New(h).With("session", uuid.NewString())
	slog.SetDefault(logger)
}

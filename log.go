package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// setupLog discards log output unless ACCESSPANEL_LOGFILE points somewhere
// writable. The returned closer must run before exit.
func setupLog() (func() error, error) {
	log.SetOutput(io.Discard)

	path := os.Getenv("ACCESSPANEL_LOGFILE")
	if path == "" {
		return func() error { return nil }, nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("error setting up logging: %w", err)
	}

	log.SetOutput(f)
	log.SetLevel(log.DebugLevel)
	return f.Close, nil
}

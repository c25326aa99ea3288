// cmd/mkedit/main.go
package main

import (
	"fmt"
	"io"
	stlog "log" // Use standard log for FATAL errors before logger is ready
	"os"
	"path/filepath"

	"github.com/bethropolis/mkedit/internal/app"
	"github.com/bethropolis/mkedit/internal/config"
	"github.com/bethropolis/mkedit/internal/logger"
)

func main() {
	// --- Argument & Flag Parsing ---
	flags := config.NewFlags(nil)
	args, err := flags.Parse(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, config.Version)
		return
	}
	filePath := ""
	if len(args) > 0 {
		filePath = args[0]
	}

	cfg, err := config.LoadConfig(*flags.ConfigFilePath, flags)
	if err != nil {
		stlog.Printf("Warning: %v (using defaults)", err)
	}

	// --- Logger Initialization ---
	logOut, closeLog, err := openLog(cfg.Logger.LogFilePath)
	if err != nil {
		stlog.Fatalf("Failed to open log file: %v", err)
	}
	defer closeLog()
	logger.Init(cfg.Logger.Level(), logOut, &cfg.Logger)

	logger.Infof("Starting %s %s...", config.AppName, config.Version)
	logger.Debugf("Log level set to: %s", cfg.Logger.Level())
	if filePath != "" {
		logger.Debugf("Layout specified: %s", filePath)
	} else {
		logger.Debugf("No layout specified, starting empty.")
	}

	// --- Create and Run App ---
	editor, err := app.NewApp(cfg, filePath)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		closeLog()
		os.Exit(1)
	}

	if err := editor.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		closeLog()
		os.Exit(1)
	}
	logger.Infof("%s finished.", config.AppName)
}

// openLog opens path for appending; "-" is stderr and empty means the
// default file in the config directory.
func openLog(path string) (io.Writer, func(), error) {
	if path == "-" {
		return os.Stderr, func() {}, nil
	}
	if path == "" {
		dir := config.DefaultDir()
		if dir == "" {
			return io.Discard, func() {}, nil
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
		path = filepath.Join(dir, config.DefaultLogFileName)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		return nil, nil, fmt.Errorf("'%s': %w", path, err)
	}
	return f, func() { f.Close() }, nil
}

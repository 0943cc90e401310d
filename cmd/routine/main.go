package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"routine/internal/config"
	"routine/internal/locale"
	"routine/internal/storage"
	"routine/internal/tracker"
	"routine/internal/ui"
)

func main() {
	configPath := config.ResolveConfigPath()
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := initLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		fmt.Printf("failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	loc, err := cfg.Locale()
	if err != nil {
		fmt.Printf("invalid language or date settings: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.DBPath, logger)
	if err != nil {
		logger.Error("open database failed", "path", cfg.DBPath, "err", err)
		if errors.Is(err, storage.ErrLocked) {
			fmt.Printf("%s: %v\n", loc.T(locale.FatalNoAccess), err)
		} else {
			fmt.Printf("failed to open database: %v\n", err)
		}
		os.Exit(1)
	}

	tr := tracker.New(store, loc.Layout, tracker.WithLogger(logger))
	runErr := ui.Run(tr, cfg, loc)
	if err := store.Close(); err != nil {
		logger.Error("close database failed", "err", err)
	}
	if runErr != nil {
		fmt.Printf("error running program: %v\n", runErr)
		closeLog()
		os.Exit(1)
	}
}

// initLogger writes JSON lines to path. An empty path turns logging off.
func initLogger(path, level string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	handler := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: parseLevel(level)})
	closed := false
	return slog.New(handler), func() {
		if !closed {
			closed = true
			_ = f.Close()
		}
	}, nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

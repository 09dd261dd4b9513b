// Package main is the entry point for the shopping-list server.
//
// main's job is deliberately small:
// 1. Read configuration from environment variables
// 2. Build the logger
// 3. Hand everything to internal/server and start it
//
// All actual logic lives in the imported packages.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sakif/shopping-list/internal/auth"
	"github.com/sakif/shopping-list/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	// PORT defaults to 8080.
	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	// DB_PATH defaults to data/shoppinglist.db next to the binary's working
	// directory; the data dir is created if needed.
	dbPath := "data/shoppinglist.db"
	if envDB := os.Getenv("DB_PATH"); envDB != "" {
		dbPath = envDB
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", filepath.Dir(dbPath)),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	// === AUTH CONFIGURATION — FAIL FAST ===
	// SECRET_KEY and ALGORITHM are required. The process must never come up
	// able to issue tokens against an undefined trust anchor, so a missing
	// value is fatal HERE, not a 500 on the first login.
	//
	// Generate a secret with: openssl rand -hex 32
	authCfg := auth.Config{
		Secret:    os.Getenv("SECRET_KEY"),
		Algorithm: os.Getenv("ALGORITHM"),
	}
	if authCfg.Secret == "" {
		logger.Error("SECRET_KEY environment variable not set")
		os.Exit(1)
	}
	if authCfg.Algorithm == "" {
		logger.Error("ALGORITHM environment variable not set")
		os.Exit(1)
	}

	// TOKEN_EXPIRES_MINUTES is optional; unset means the 15-minute default.
	if ttlStr := os.Getenv("TOKEN_EXPIRES_MINUTES"); ttlStr != "" {
		minutes, err := strconv.Atoi(ttlStr)
		if err != nil || minutes <= 0 {
			logger.Error("invalid TOKEN_EXPIRES_MINUTES value", slog.String("value", ttlStr))
			os.Exit(1)
		}
		authCfg.Lifetime = time.Duration(minutes) * time.Minute
	}

	cfg := server.Config{
		Port:              port,
		DBPath:            dbPath,
		Auth:              authCfg,
		EnforceListAccess: os.Getenv("ENFORCE_LIST_ACCESS") == "true",
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until the server is shut down (via Ctrl+C or SIGTERM)
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

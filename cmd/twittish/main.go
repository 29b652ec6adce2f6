// Copyright (c) 2026 Twittish. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command twittish is the interactive terminal front-end for the Twittish
// core.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to Redis (the snapshot store).
//  4. Boot the mutation engine, which loads or seeds the persisted state.
//  5. Run the read-eval-print loop until the user exits.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"bufio"
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/taibuivan/twittish/internal/engine"
	"github.com/taibuivan/twittish/internal/persist"
	"github.com/taibuivan/twittish/internal/platform/config"
	redisstore "github.com/taibuivan/twittish/internal/platform/redis"
	"github.com/taibuivan/twittish/pkg/uuidv7"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Logs go to stderr so they never interleave with REPL output on stdout.
	rawLog := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", "twittish"))
	slog.SetDefault(log)

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "twittish"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	// Root context for startup. Use a short deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer startupCancel()

	// ── 3. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 4. Engine ─────────────────────────────────────────────────────────
	adapter := persist.NewAdapter(persist.NewRedisKV(rdb), cfg.SnapshotKey, uuidv7.New, time.Now, log)
	core, err := engine.New(startupCtx, adapter, log)
	must(log, err, "load state")

	// ── 5. REPL ───────────────────────────────────────────────────────────
	app := newApp(core, bufio.NewReader(os.Stdin), os.Stdout)
	app.run(context.Background())
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}

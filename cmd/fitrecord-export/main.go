// fitrecord-export writes one client's workout history to a standalone SQLite
// file for offline review.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/fitrecord/internal/config"
	"github.com/claude/fitrecord/internal/export"
	"github.com/claude/fitrecord/internal/storage"
	"github.com/google/uuid"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	clientArg := flag.String("client", "", "client UUID to export (required)")
	outPath := flag.String("out", "", "output SQLite file (required)")
	limit := flag.Int("sessions", 50, "maximum recent sessions to include")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *clientArg == "" || *outPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: fitrecord-export -config config.yaml -client <uuid> -out client.db [-sessions 50]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	clientID, err := uuid.Parse(*clientArg)
	if err != nil {
		log.Error("invalid client UUID", "client", *clientArg)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := storage.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := export.WriteClientArchive(ctx, db, clientID, *outPath, *limit); err != nil {
		log.Error("export failed", "error", err)
		os.Exit(1)
	}
	log.Info("export complete", "client", clientID, "out", *outPath)
}

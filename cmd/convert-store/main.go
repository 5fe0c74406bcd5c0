// Command convert-store copies the alumni collection from one backend to the
// other, so Database.json can be moved into sqlite and back.
//
//	go run ./cmd/convert-store -from json -to sqlite
//	DB_PATH=/var/lib/alumni.db go run ./cmd/convert-store -from sqlite -to json
//
// Paths come from the usual configuration (DATA_FILE, DB_PATH, .env,
// CONFIG_PATH). The destination is overwritten.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/sakif/alumni-search/internal/config"
	"github.com/sakif/alumni-search/internal/logging"
	"github.com/sakif/alumni-search/internal/server"
)

func main() {
	var from, to string
	flag.StringVar(&from, "from", config.DriverJSON, "source backend (json|sqlite)")
	flag.StringVar(&to, "to", config.DriverSQLite, "destination backend (json|sqlite)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.New("dev", os.Stderr).Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := logging.New(cfg.Env, os.Stdout)

	n, err := convert(context.Background(), cfg.Store, from, to)
	if err != nil {
		logger.Error("conversion failed",
			slog.String("from", from),
			slog.String("to", to),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	logger.Info("conversion complete",
		slog.String("from", from),
		slog.String("to", to),
		slog.Int("records", n),
	)
}

// convert loads every record from the from backend and saves them to the to
// backend, returning how many were copied.
func convert(ctx context.Context, store config.Store, from, to string) (int, error) {
	if from == to {
		return 0, fmt.Errorf("source and destination are both %q", from)
	}
	for _, d := range []string{from, to} {
		if d != config.DriverJSON && d != config.DriverSQLite {
			return 0, fmt.Errorf("unknown backend %q", d)
		}
	}

	srcCfg, dstCfg := store, store
	srcCfg.Driver, dstCfg.Driver = from, to

	src, err := server.OpenRepository(srcCfg)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", from, err)
	}
	defer src.Close()

	dst, err := server.OpenRepository(dstCfg)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", to, err)
	}
	defer dst.Close()

	list, err := src.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading %s: %w", from, err)
	}
	if err := dst.Save(ctx, list); err != nil {
		return 0, fmt.Errorf("saving %s: %w", to, err)
	}
	return len(list), nil
}

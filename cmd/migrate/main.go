// Command migrate applies or rolls back the embedded schema migrations.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/SNMDESERT/peak-finder/internal/config"
	"github.com/SNMDESERT/peak-finder/internal/logging"
	"github.com/SNMDESERT/peak-finder/internal/migrations"

	"go.uber.org/zap"
)

type migrator struct {
	up   func(postgresURL string, log *zap.Logger) error
	down func(postgresURL string, n int, log *zap.Logger) error
}

var defaultMigrator = migrator{up: migrations.Up, down: migrations.Down}

func main() {
	if err := run(os.Args[1:], config.Load(), defaultMigrator, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, cfg config.Config, m migrator, stderr io.Writer) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dbURL := fs.String("database", cfg.PostgresURL, "postgres connection URL")
	down := fs.Int("down", 0, "roll back this many migrations instead of applying")
	if err := fs.Parse(args); err != nil {
		return err
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log = zap.NewNop()
	}
	defer func() { _ = log.Sync() }()

	if *down > 0 {
		return m.down(*dbURL, *down, log)
	}
	return m.up(*dbURL, log)
}

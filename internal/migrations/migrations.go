// Package migrations embeds the schema and applies it with golang-migrate.
package migrations

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

// FS holds the SQL migration files.
//
//go:embed *.sql
var FS embed.FS

var newMigrateFn = func(databaseURL string) (runner, error) {
	src, err := iofs.New(FS, ".")
	if err != nil {
		return nil, err
	}
	return migrate.NewWithSourceInstance("iofs", src, databaseURL)
}

type runner interface {
	Up() error
	Steps(n int) error
	Version() (uint, bool, error)
	Close() (error, error)
}

// Up applies every pending migration.
func Up(postgresURL string, log *zap.Logger) error {
	return run(postgresURL, log, func(m runner) error { return m.Up() })
}

// Down rolls back n migrations.
func Down(postgresURL string, n int, log *zap.Logger) error {
	if n <= 0 {
		return fmt.Errorf("down steps must be positive, got %d", n)
	}
	return run(postgresURL, log, func(m runner) error { return m.Steps(-n) })
}

func run(postgresURL string, log *zap.Logger, fn func(runner) error) error {
	if log == nil {
		log = zap.NewNop()
	}
	m, err := newMigrateFn(driverURL(postgresURL))
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Warn("close migrations", zap.NamedError("source", srcErr), zap.NamedError("database", dbErr))
		}
	}()

	if err := fn(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate: %w", err)
	}
	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return err
	}
	log.Info("schema migrated", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

// driverURL rewrites a postgres:// URL to the pgx5:// scheme the pgx
// driver registers.
func driverURL(postgresURL string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(postgresURL, prefix) {
			return "pgx5://" + strings.TrimPrefix(postgresURL, prefix)
		}
	}
	return postgresURL
}

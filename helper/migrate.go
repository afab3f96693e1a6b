package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"hotelier/config"
	"net"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const (
	migrationSource = "file://migrations/postgres"

	ActionUp     = "up"
	ActionDown   = "down"
	ActionStepUp = "step-up"
	ActionDrop   = "drop"
)

// databaseURL points golang-migrate at the write database that holds record_documents.
func databaseURL(cfg *config.Config) string {
	write := cfg.DB.Postgres.Write

	name := write.Name
	if cfg.DB.Postgres.Prefix != "" {
		name = cfg.DB.Postgres.Prefix + name
	}

	query := url.Values{}
	if write.SSLMode != "" {
		query.Set("sslmode", write.SSLMode)
	}

	if cfg.DB.Postgres.MigrationTable != "" {
		query.Set("x-migrations-table", cfg.DB.Postgres.MigrationTable)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(write.Username, write.Password),
		Host:     net.JoinHostPort(write.Host, write.Port),
		Path:     "/" + name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func open(cfg *config.Config) (*migrate.Migrate, error) {
	mig, err := migrate.New(migrationSource, databaseURL(cfg))
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

// Runner applies one migration action. Having nothing to do is not an error.
func Runner(cfg *config.Config, action string) error {
	mig, err := open(cfg)
	if err != nil {
		return err
	}

	defer mig.Close()

	switch action {
	case ActionUp:
		err = mig.Up()
	case ActionDown:
		err = mig.Steps(-1)
	case ActionStepUp:
		err = mig.Steps(1)
	case ActionDrop:
		err = mig.Down()
	default:
		return fmt.Errorf("unknown migration action %q", action)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migration: %w", action, err)
	}

	version, dirty, verErr := mig.Version()
	if verErr != nil && !errors.Is(verErr, migrate.ErrNilVersion) {
		return fmt.Errorf("error reading migration version: %w", verErr)
	}

	log.Info().Str("action", action).Uint("version", version).Bool("dirty", dirty).Msg("Record store migration finished")

	return nil
}

func Up(cfg *config.Config) error {
	return Runner(cfg, ActionUp)
}

func StepUp(cfg *config.Config) error {
	return Runner(cfg, ActionStepUp)
}

func Down(cfg *config.Config) error {
	return Runner(cfg, ActionDown)
}

func Drop(cfg *config.Config) error {
	return Runner(cfg, ActionDrop)
}

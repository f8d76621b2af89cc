package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pocketfin-dev/pocketfin/internal/accounts"
	"github.com/pocketfin-dev/pocketfin/internal/config"
	"github.com/pocketfin-dev/pocketfin/internal/ledger"
	"github.com/pocketfin-dev/pocketfin/internal/logger"
	"github.com/pocketfin-dev/pocketfin/internal/store"
)

// app bundles the services a command invocation needs. Dependencies are
// constructed explicitly here, owned by the command's lifetime.
type app struct {
	cfg      *config.Config
	store    *store.Store
	registry *accounts.Registry
	engine   *ledger.Engine
	log      zerolog.Logger
}

// openApp loads .env and the config file, opens the store, and wires the
// engine.
func openApp(cmd *cobra.Command) (*app, error) {
	// Missing .env is fine; it only supplies overrides.
	_ = godotenv.Load()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("reading config flag: %w", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	log := logger.New(cfg.Logging.Level)

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	registry := accounts.Default()
	engine := ledger.NewEngine(st, registry, disallowedRules(cfg), log)

	return &app{
		cfg:      cfg,
		store:    st,
		registry: registry,
		engine:   engine,
		log:      log,
	}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn().Err(err).Msg("closing store")
	}
}

// sweepOnStart settles newly-due scheduled transactions before a command
// touches data. Failures are logged and left for the next run.
func (a *app) sweepOnStart(ctx context.Context) {
	if _, err := a.engine.Sweep(ctx); err != nil {
		a.log.Warn().Err(err).Msg("scheduled sweep failed, will retry next run")
	}
}

func disallowedRules(cfg *config.Config) []ledger.DisallowedPair {
	rules := make([]ledger.DisallowedPair, 0, len(cfg.Rules.DisallowedPairs))
	for _, p := range cfg.Rules.DisallowedPairs {
		rules = append(rules, ledger.DisallowedPair{
			Name:     p.Name,
			Account:  p.Account,
			Category: p.Category,
		})
	}
	return rules
}

// parseWhen accepts a date or date-time flag value, defaulting to now
// when empty.
func parseWhen(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return now, nil
	}
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, value, now.Location()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD or YYYY-MM-DD HH:MM", value)
}

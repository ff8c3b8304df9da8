package cmd

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mailbrief/mailbrief/internal/assistant"
	"github.com/mailbrief/mailbrief/internal/config"
	"github.com/mailbrief/mailbrief/internal/delivery"
	"github.com/mailbrief/mailbrief/internal/storage"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:          "mailbrief",
	Short:        "Classify email batches and mail an inbox report",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the configuration file")
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// newLogger builds the process logger.
func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}

// loadConfig reads the config file; a missing file at the default path
// falls back to defaults so one-shot commands work without setup.
func loadConfig(logger zerolog.Logger) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if errors.Is(err, fs.ErrNotExist) && configPath == "config.yaml" {
		logger.Warn().Str("path", configPath).Msg("Config file not found, using defaults")
		return config.Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// app bundles the wired-up dependencies shared by the commands.
type app struct {
	cfg    *config.Config
	svc    *assistant.Service
	store  *storage.Store
	logger zerolog.Logger
}

// newApp wires config, storage, delivery and the assistant service.
// withStore controls whether run history is opened; one-shot report
// commands that only print to stdout skip it.
func newApp(logger zerolog.Logger, withStore bool) (*app, error) {
	cfg, err := loadConfig(logger)
	if err != nil {
		return nil, err
	}

	var store *storage.Store
	if withStore {
		store, err = storage.NewStore(cfg.Database.Path)
		if err != nil {
			return nil, err
		}
	}

	sender, err := delivery.NewSender(&cfg.Mail)
	if err != nil {
		if !errors.Is(err, delivery.ErrNoProvider) {
			if store != nil {
				store.Close()
			}
			return nil, err
		}
		logger.Warn().Msg("No mail provider configured, sending disabled")
		sender = nil
	}

	return &app{
		cfg:    cfg,
		svc:    assistant.New(cfg, sender, store, logger),
		store:  store,
		logger: logger,
	}, nil
}

func (a *app) close() {
	if a.store != nil {
		a.store.Close()
	}
}

package main

import (
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck"
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/config"
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/prefs"
)

// loadConfig reads the config file and applies the logging settings. It
// must run before anything logs.
func loadConfig(console bool) (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.Path("sectiondeck.toml")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	sectiondeck.SetLogPath(cfg.Logging.Path)
	sectiondeck.SetConsoleOutput(console)
	sectiondeck.SetRawLogLevel(orDefault(logLevel, cfg.Logging.Level))
	sectiondeck.SetRawInternalLogLevel(cfg.Logging.InternalLevel)
	return cfg, nil
}

func openStore(cfg *config.Config) (*prefs.SQLiteStore, error) {
	store, err := prefs.OpenSQLite(cfg.Storage.Path)
	if err != nil {
		return nil, err
	}
	sectiondeck.GetLogger().Debug("Preferences opened", "path", cfg.Storage.Path)
	return store, nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

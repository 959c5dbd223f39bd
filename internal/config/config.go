package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	envPrefix  = "DX"
	appDir     = "dx"

	RegistryNPMKey   = "registry.npm"
	RegistryJSRKey   = "registry.jsr"
	ImportTimeoutKey = "import.timeout"
	ImportMapPathKey = "import.map"
	LogLevelKey      = "log.level"
	HistoryPathKey   = "repl.history"

	DefaultNPMRegistry   = "https://cdn.jsdelivr.net/npm/"
	DefaultJSRRegistry   = "https://esm.sh/jsr/"
	DefaultImportTimeout = 15 * time.Second
	DefaultLogLevel      = "warn"
	historyFile          = "history"
)

type Registries struct {
	NPM string
	JSR string
}

type Config struct {
	Registries    Registries
	ImportTimeout time.Duration
	ImportMapPath string
	LogLevel      slog.Level
	// HistoryPath is where line editing history is kept. Empty disables it.
	HistoryPath string
}

// Load reads <user config dir>/dx/config.toml into cfg when it exists and
// applies DX_* environment overrides. The same viper instance is later handed
// to the module map repository.
func Load(cfg *viper.Viper) (Config, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	if dir, err := Dir(); err == nil {
		cfg.AddConfigPath(dir)
	}
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	cfg.SetDefault(RegistryNPMKey, DefaultNPMRegistry)
	cfg.SetDefault(RegistryJSRKey, DefaultJSRRegistry)
	cfg.SetDefault(ImportTimeoutKey, DefaultImportTimeout)
	cfg.SetDefault(LogLevelKey, DefaultLogLevel)
	if dir, err := Dir(); err == nil {
		cfg.SetDefault(HistoryPathKey, filepath.Join(dir, historyFile))
	}

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	timeout := cfg.GetDuration(ImportTimeoutKey)
	if timeout <= 0 {
		return Config{}, fmt.Errorf("%s must be positive, got %s", ImportTimeoutKey, cfg.GetString(ImportTimeoutKey))
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.GetString(LogLevelKey))); err != nil {
		return Config{}, fmt.Errorf("%s: %w", LogLevelKey, err)
	}

	return Config{
		Registries: Registries{
			NPM: withTrailingSlash(cfg.GetString(RegistryNPMKey)),
			JSR: withTrailingSlash(cfg.GetString(RegistryJSRKey)),
		},
		ImportTimeout: timeout,
		ImportMapPath: cfg.GetString(ImportMapPathKey),
		LogLevel:      level,
		HistoryPath:   cfg.GetString(HistoryPathKey),
	}, nil
}

// Dir is <user config dir>/dx.
func Dir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config directory: %w", err)
	}

	return filepath.Join(configDir, appDir), nil
}

func withTrailingSlash(base string) string {
	if base == "" || strings.HasSuffix(base, "/") {
		return base
	}

	return base + "/"
}

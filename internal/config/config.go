// Package config resolves runtime settings from defaults, an optional config
// file, WONDER_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/abhisek/wonder/internal/quiz"
	"github.com/abhisek/wonder/internal/share"
	"github.com/abhisek/wonder/internal/store"
)

// EnvPrefix is prepended to every environment override, e.g. WONDER_DB.
const EnvPrefix = "WONDER"

// Viper keys.
const (
	KeyConfig        = "config"
	KeyDB            = "db"
	KeyCatalog       = "catalog"
	KeyLogLevel      = "log_level"
	KeyQuizCount     = "quiz_count"
	KeyAffinityLimit = "affinity_limit"
)

// Config holds the resolved settings.
type Config struct {
	// DBPath is the journal database. Empty disables journaling.
	DBPath string `mapstructure:"db"`

	// CatalogPath is a YAML catalog to load at startup. Empty loads the
	// embedded starter catalog.
	CatalogPath string `mapstructure:"catalog"`

	LogLevel      string `mapstructure:"log_level"`
	QuizCount     int    `mapstructure:"quiz_count"`
	AffinityLimit int    `mapstructure:"affinity_limit"`
}

// Default returns the built-in settings.
func Default() Config {
	dbPath, err := store.DefaultDBPath()
	if err != nil {
		dbPath = ""
	}
	return Config{
		DBPath:        dbPath,
		LogLevel:      "warn",
		QuizCount:     quiz.DefaultCount,
		AffinityLimit: share.DefaultAffinityLimit,
	}
}

// Load layers the config file named by the "config" key (if any), the
// environment and anything already bound on v over Default.
func Load(v *viper.Viper) (Config, error) {
	def := Default()
	v.SetDefault(KeyDB, def.DBPath)
	v.SetDefault(KeyCatalog, def.CatalogPath)
	v.SetDefault(KeyLogLevel, def.LogLevel)
	v.SetDefault(KeyQuizCount, def.QuizCount)
	v.SetDefault(KeyAffinityLimit, def.AffinityLimit)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level %q: %w", c.LogLevel, err))
	}
	if c.QuizCount < 1 || c.QuizCount > quiz.MaxCount {
		errs = append(errs, fmt.Errorf("quiz_count must be between 1 and %d, got %d", quiz.MaxCount, c.QuizCount))
	}
	if c.AffinityLimit < 1 {
		errs = append(errs, fmt.Errorf("affinity_limit must be positive, got %d", c.AffinityLimit))
	}
	return errors.Join(errs...)
}

// Logger builds a logger writing to w at the configured level. A nil w
// means stderr.
func (c Config) Logger(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		level = log.WarnLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "wonder",
		ReportTimestamp: true,
	})
}

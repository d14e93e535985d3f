package opt

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/rocketscienceinc/tresenlinea/internal/config"
)

// Config holds the flags shared by the commands that read config.yml.
type Config struct {
	Path     string
	LogLevel string
}

func (o *Config) AddFlags(flags *flag.FlagSet) {
	flags.StringVar(&o.Path, "config", "./config.yml", "path to the YAML config file")
	flags.StringVar(&o.LogLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")
}

// Load - reads the config file, or the environment alone when the file does not exist.
func (o *Config) Load() (*config.Config, error) {
	var (
		conf *config.Config
		err  error
	)

	if _, statErr := os.Stat(o.Path); statErr == nil {
		conf, err = config.Load(o.Path)
	} else {
		conf, err = config.LoadEnv()
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if o.LogLevel != "" {
		conf.LogLevel = o.LogLevel
	}

	return conf, nil
}

// NewLogger - JSON logger on stdout at the given level, info when unknown.
func NewLogger(logLevel string) *slog.Logger {
	var level slog.Level

	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ratcrate/ratcrate-tui/internal/app"
	"github.com/ratcrate/ratcrate-tui/internal/registry"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envCacheFile = "RATCRATE_CACHE_FILE"
	envPrimary   = "RATCRATE_REGISTRY_URL"
	envSecondary = "RATCRATE_INDEX_URL"
	envInstaller = "RATCRATE_INSTALLER"
	envQuery     = "RATCRATE_QUERY"
	envRefresh   = "RATCRATE_REFRESH"
	envVerbose   = "RATCRATE_VERBOSE"
	envTrace     = "RATCRATE_TRACE"
	envLogFile   = "RATCRATE_LOG_FILE"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("ratcrate-tui", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	cacheFile := fs.String("cache-file", envOrDefault(env, envCacheFile, ""), "path to the snapshot cache file (empty uses the user cache directory)")
	primary := fs.String("registry-url", envOrDefault(env, envPrimary, registry.DefaultPrimaryURL), "primary registry search endpoint")
	secondary := fs.String("index-url", envOrDefault(env, envSecondary, registry.DefaultSecondaryURL), "secondary repository search endpoint")
	installer := fs.String("installer", envOrDefault(env, envInstaller, "cargo"), "external installer command")
	query := fs.String("query", envOrDefault(env, envQuery, "ratatui"), "initial registry search query")
	refresh := fs.Bool("refresh", envOrBool(env, envRefresh, false), "ignore the cache and fetch fresh data at startup")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "show informational status messages")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			CacheFile:    *cacheFile,
			PrimaryURL:   *primary,
			SecondaryURL: *secondary,
			Installer:    *installer,
			DefaultQuery: *query,
			Refresh:      *refresh,
			Verbose:      *verbose,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"cacheFile":   *cacheFile,
			"registryURL": *primary,
			"indexURL":    *secondary,
			"installer":   *installer,
			"query":       *query,
			"refresh":     strconv.FormatBool(*refresh),
			"verbose":     strconv.FormatBool(*verbose),
			"trace":       strconv.FormatBool(*trace),
			"logFile":     *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.App.Installer) == "" {
		return fmt.Errorf("installer command must not be empty")
	}
	if strings.TrimSpace(cfg.App.PrimaryURL) == "" {
		return fmt.Errorf("registry URL must not be empty")
	}
	if strings.TrimSpace(cfg.App.SecondaryURL) == "" {
		return fmt.Errorf("index URL must not be empty")
	}
	return nil
}

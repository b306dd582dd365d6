package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrContentDirRequired indicates the module is enabled without a content tree to read.
	ErrContentDirRequired = errors.New("content config: content directory is required")
	// ErrStorageDSNRequired indicates the catalog feature is enabled without a database target.
	ErrStorageDSNRequired = errors.New("content config: storage dsn is required when the catalog is enabled")
	// ErrStorageDriverUnknown indicates the storage driver is not supported.
	ErrStorageDriverUnknown = errors.New("content config: storage driver is invalid")
	// ErrCommandsCronRequiresSync ensures cron wiring only runs when sync is enabled.
	ErrCommandsCronRequiresSync = errors.New("content config: command cron auto-registration requires sync to be enabled")
	// ErrLoggingProviderRequired indicates the logging feature lacks a provider.
	ErrLoggingProviderRequired = errors.New("content config: logging provider is required when logging feature is enabled")
	// ErrLoggingProviderUnknown indicates the logging provider is not supported.
	ErrLoggingProviderUnknown = errors.New("content config: logging provider is invalid")
	// ErrLoggingLevelInvalid indicates an unsupported log level.
	ErrLoggingLevelInvalid = errors.New("content config: logging level is invalid")
	// ErrLoggingFormatInvalid indicates an unsupported log format.
	ErrLoggingFormatInvalid = errors.New("content config: logging format is invalid")
)

// Config aggregates feature flags and adapter bindings for the content
// module. Fields intentionally use simple types so host applications can
// extend them later.
type Config struct {
	Enabled  bool
	Content  ContentConfig
	Markdown MarkdownConfig
	Lint     LintConfig
	Storage  StorageConfig
	Cache    CacheConfig
	Features Features
	Commands CommandsConfig
	Logging  LoggingConfig
}

// ContentConfig captures filesystem behaviour for entry loading.
type ContentConfig struct {
	Dir       string
	Pattern   string
	Recursive bool
}

// MarkdownConfig captures parser behaviour for body inspection.
type MarkdownConfig struct {
	Extensions []string
}

// LintConfig captures content-integrity check behaviour.
type LintConfig struct {
	AllowedSchemes        []string
	RequireAbsoluteImages bool
	Strict                bool
}

// StorageConfig identifies the database behind the catalog index.
type StorageConfig struct {
	Driver string
	DSN    string
}

// CacheConfig captures repository cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// Features toggles module functionality.
type Features struct {
	Lint    bool
	Catalog bool
	Sync    bool
	Logger  bool
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled          bool
	AutoRegisterCron bool
	SyncCron         string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults for a filesystem-first setup:
// lint everything under content/, mirror into a local SQLite index.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Content: ContentConfig{
			Dir:       "content",
			Pattern:   "*.md",
			Recursive: true,
		},
		Markdown: MarkdownConfig{},
		Lint: LintConfig{
			AllowedSchemes:        []string{"http", "https"},
			RequireAbsoluteImages: true,
		},
		Storage: StorageConfig{
			Driver: "sqlite3",
			DSN:    "file:content.db?cache=shared",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Features: Features{
			Lint:    true,
			Catalog: true,
			Sync:    true,
		},
		Commands: CommandsConfig{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Enabled && strings.TrimSpace(cfg.Content.Dir) == "" {
		return ErrContentDirRequired
	}
	if cfg.Features.Catalog {
		if driver := normalizeToken(cfg.Storage.Driver); driver != "" && !isSupportedDriver(driver) {
			return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, driver)
		}
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	}
	if cfg.Commands.AutoRegisterCron && !cfg.Features.Sync {
		return ErrCommandsCronRequiresSync
	}
	if cfg.Features.Logger {
		provider := normalizeToken(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeToken(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedDriver(driver string) bool {
	switch driver {
	case "sqlite3":
		return true
	default:
		return false
	}
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}

// Package config provides configuration management for the chatlog CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/adrg/xdg"
	"github.com/tidwall/sjson"
)

const appName = "chatlog"

// Backend selects the archive implementation.
type Backend string

// Backend constants.
const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
)

const (
	// DefaultFileArchive is the flat-file archive, relative to the working directory.
	DefaultFileArchive = "messages.txt"
	defaultSQLiteName  = "chatlog.db"
	defaultHistoryName = "history"
	defaultDebugLog    = "debug.log"
)

// StorageConfig selects where messages are saved and loaded.
type StorageConfig struct {
	Backend Backend `json:"backend,omitempty"`
	Path    string  `json:"path,omitempty"`
}

// DisplayConfig controls terminal output.
type DisplayConfig struct {
	Theme   string `json:"theme,omitempty"`
	NoColor bool   `json:"no_color,omitempty"`
}

// Options holds optional configuration settings.
//
//nolint:govet // Field order is intentional for JSON readability.
type Options struct {
	DataDir     string `json:"data_directory,omitempty"`
	HistoryFile string `json:"history_file,omitempty"`
	Debug       bool   `json:"debug,omitempty"`
}

// Config is the top-level configuration structure.
type Config struct {
	Storage StorageConfig `json:"storage"`
	Display DisplayConfig `json:"display"`
	Options *Options      `json:"options,omitempty"`
}

// NewConfig creates a new Config with defaults for every section.
func NewConfig() *Config {
	return &Config{
		Storage: StorageConfig{Backend: BackendFile},
		Options: &Options{},
	}
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite:
		return nil
	default:
		return fmt.Errorf("unknown storage backend %q (want %q or %q)", c.Storage.Backend, BackendFile, BackendSQLite)
	}
}

// DataDir returns the data directory path from configuration.
func (c *Config) DataDir() string {
	if c.Options != nil && c.Options.DataDir != "" {
		return c.Options.DataDir
	}
	return filepath.Join(xdg.DataHome, appName)
}

// ArchivePath returns the configured archive location or the backend default.
func (c *Config) ArchivePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	if c.Storage.Backend == BackendSQLite {
		return filepath.Join(c.DataDir(), defaultSQLiteName)
	}
	return DefaultFileArchive
}

// HistoryPath returns the file used for shell input history.
func (c *Config) HistoryPath() string {
	if c.Options != nil && c.Options.HistoryFile != "" {
		return c.Options.HistoryFile
	}
	return filepath.Join(c.DataDir(), defaultHistoryName)
}

// DebugLogPath returns the debug log location.
func (c *Config) DebugLogPath() string {
	return filepath.Join(c.DataDir(), defaultDebugLog)
}

// Debug reports whether debug logging is requested by configuration.
func (c *Config) Debug() bool {
	return c.Options != nil && c.Options.Debug
}

type fieldKind int

const (
	stringField fieldKind = iota
	boolField
	backendField
)

// fields lists the keys accepted by SetConfigField and how their values are typed.
var fields = map[string]fieldKind{
	"storage.backend":        backendField,
	"storage.path":           stringField,
	"display.theme":          stringField,
	"display.no_color":       boolField,
	"options.data_directory": stringField,
	"options.history_file":   stringField,
	"options.debug":          boolField,
}

// ParseFieldValue converts a raw command-line value to the JSON type of key,
// so that e.g. "storage.path 2024" stays a string.
func ParseFieldValue(key, raw string) (any, error) {
	kind, ok := fields[key]
	if !ok {
		return nil, fmt.Errorf("unknown config key %q", key)
	}

	switch kind {
	case boolField:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%s expects true or false, got %q", key, raw)
		}
		return b, nil
	case backendField:
		cfg := &Config{Storage: StorageConfig{Backend: Backend(raw)}}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return raw, nil
	default:
		return raw, nil
	}
}

// SetConfigField updates a single field in the global config file using JSON
// path notation, e.g. "storage.backend".
func SetConfigField(key string, value any) error {
	return SetConfigFieldAt(GlobalConfigPath(), key, value)
}

// SetConfigFieldAt updates a single field in the config file at path. Only
// the specified field is modified; the rest of the file is kept as written.
func SetConfigFieldAt(path, key string, value any) error {
	//nolint:gosec // G304: path is the trusted config location.
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			data = []byte("{}")
		} else {
			return fmt.Errorf("reading config file: %w", err)
		}
	}

	newData, err := sjson.Set(string(data), key, value)
	if err != nil {
		return fmt.Errorf("setting config field %q: %w", key, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	//nolint:gosec // 0o600 is intentionally restrictive.
	if err := os.WriteFile(path, []byte(newData), 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const appDir = "quoteterm"

// Store manages the runtime configuration for the quoting tool.
type Store struct {
	path   string
	v      *viper.Viper
	Config Data
}

// Data represents persisted user preferences.
type Data struct {
	Name             string        `mapstructure:"name"`
	Timezone         string        `mapstructure:"timezone"`
	DatabasePath     string        `mapstructure:"database_path"`
	ExportDir        string        `mapstructure:"export_dir"`
	CatalogPath      string        `mapstructure:"catalog_path"`
	AutosaveInterval time.Duration `mapstructure:"autosave_interval"`
	AutosaveKey      string        `mapstructure:"autosave_key"`
}

// Load retrieves the config from disk, creating defaults if needed.
// QUOTETERM_CONFIG points at an alternative file; QUOTETERM_* variables
// override individual keys.
func Load() (*Store, error) {
	cfgPath := os.Getenv("QUOTETERM_CONFIG")
	if cfgPath == "" {
		var err error
		if cfgPath, err = resolvePath(); err != nil {
			return nil, err
		}
	}
	return LoadFrom(cfgPath)
}

// LoadFrom reads the config at path, creating it with defaults if missing.
func LoadFrom(cfgPath string) (*Store, error) {
	v := viper.New()
	setDefaults(v, filepath.Dir(cfgPath))
	v.SetConfigFile(cfgPath)
	v.SetConfigType("json")
	v.SetEnvPrefix("QUOTETERM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(cfgPath); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat config: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
			return nil, fmt.Errorf("create config dir: %w", err)
		}
		if err := v.WriteConfigAs(cfgPath); err != nil {
			return nil, fmt.Errorf("write config: %w", err)
		}
	} else if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Data
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Timezone == "" {
		cfg.Timezone = defaultTimezone()
	}
	if cfg.Name == "" {
		cfg.Name = defaultName()
	}
	if cfg.AutosaveInterval <= 0 {
		cfg.AutosaveInterval = DefaultAutosaveInterval
	}
	if cfg.AutosaveKey == "" {
		cfg.AutosaveKey = DefaultAutosaveKey
	}

	return &Store{path: cfgPath, v: v, Config: cfg}, nil
}

// Defaults for the autosave loop.
const (
	DefaultAutosaveInterval = 60 * time.Second
	DefaultAutosaveKey      = "quoteAutoSaveData"
)

// Save writes the current config values to disk.
func (s *Store) Save() error {
	if s == nil || s.v == nil {
		return errors.New("nil config store")
	}
	s.v.Set("name", s.Config.Name)
	s.v.Set("timezone", s.Config.Timezone)
	s.v.Set("database_path", s.Config.DatabasePath)
	s.v.Set("export_dir", s.Config.ExportDir)
	s.v.Set("catalog_path", s.Config.CatalogPath)
	s.v.Set("autosave_interval", s.Config.AutosaveInterval.String())
	s.v.Set("autosave_key", s.Config.AutosaveKey)
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Path returns the file backing the store.
func (s *Store) Path() string { return s.path }

// DataDir is the directory holding the config, database and logs.
func (s *Store) DataDir() string { return filepath.Dir(s.path) }

func setDefaults(v *viper.Viper, dir string) {
	v.SetDefault("name", defaultName())
	v.SetDefault("timezone", defaultTimezone())
	v.SetDefault("database_path", filepath.Join(dir, "quoteterm.db"))
	v.SetDefault("export_dir", defaultExportDir())
	v.SetDefault("catalog_path", "")
	v.SetDefault("autosave_interval", DefaultAutosaveInterval.String())
	v.SetDefault("autosave_key", DefaultAutosaveKey)
}

func resolvePath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		base = os.Getenv("HOME")
		if base == "" {
			return "", fmt.Errorf("cannot resolve config directory: %w", err)
		}
	}
	return filepath.Join(base, appDir, "config.json"), nil
}

func defaultExportDir() string {
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func defaultName() string {
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	if runtime.GOOS == "windows" {
		if name := os.Getenv("USERNAME"); name != "" {
			return name
		}
	}
	return "Quote User"
}

func defaultTimezone() string {
	if locName := time.Now().Location().String(); locName != "Local" && locName != "" {
		return locName
	}
	return "UTC"
}

// Location returns the configured timezone Location, defaulting to UTC on error.
func (s *Store) Location() *time.Location {
	if s == nil {
		return time.UTC
	}
	if loc, err := time.LoadLocation(s.Config.Timezone); err == nil {
		return loc
	}
	return time.UTC
}

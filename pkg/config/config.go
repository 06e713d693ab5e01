package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/matt-steen/day-tracker/pkg/event"
	"github.com/matt-steen/day-tracker/pkg/store"
	"gopkg.in/yaml.v3"
)

const (
	appName         = "day-tracker"
	defaultLogLevel = "info"
)

// Config is the application configuration read from a YAML file.
type Config struct {
	// Database is the path of the sqlite file holding the events.
	Database string `yaml:"database"`
	// LogFile is where the log is written; the terminal belongs to the UI.
	LogFile string `yaml:"log_file"`
	// LogLevel is a zerolog level name such as "debug" or "info".
	LogLevel string `yaml:"log_level"`
	// StorageKey is the settings key the events are stored under.
	StorageKey string `yaml:"storage_key"`
	// Palette lists the #RRGGBB colors new events are assigned from.
	Palette []string `yaml:"palette"`
}

// DefaultDir returns the directory holding the config, database and log by default.
func DefaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}

	return filepath.Join(dir, appName)
}

// DefaultConfig returns the default configuration with all files under dir.
func DefaultConfig(dir string) *Config {
	return &Config{
		Database:   filepath.Join(dir, "events.sqlite"),
		LogFile:    filepath.Join(dir, "debug.log"),
		LogLevel:   defaultLogLevel,
		StorageKey: store.DefaultKey,
		Palette:    event.DefaultPalette(),
	}
}

// Normalize fills in missing values from the defaults for dir and drops palette
// entries that are not valid colors.
func (c *Config) Normalize(dir string) {
	defaults := DefaultConfig(dir)

	if c.Database == "" {
		c.Database = defaults.Database
	}

	if c.LogFile == "" {
		c.LogFile = defaults.LogFile
	}

	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}

	if c.StorageKey == "" {
		c.StorageKey = defaults.StorageKey
	}

	palette := []string{}

	for _, color := range c.Palette {
		if event.ValidColor(color) {
			palette = append(palette, color)
		}
	}

	if len(palette) == 0 {
		palette = defaults.Palette
	}

	c.Palette = palette
}

// Load reads the configuration at path. On first run the file does not exist yet; a
// default config is written there and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	dir := filepath.Dir(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig(dir)

			return cfg, Save(path, cfg)
		}

		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.Normalize(dir)

	return &cfg, nil
}

// Save writes cfg to path through a temp file and a rename, creating the directory
// if needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}

	if cfg == nil {
		return errors.New("config is nil")
	}

	dir := filepath.Dir(path)
	cfg.Normalize(dir)

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".day-tracker-config-*.tmp")
	if err != nil {
		return err
	}

	tmpName := tmp.Name()

	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()

		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

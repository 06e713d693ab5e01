package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matt-steen/day-tracker/pkg/config"
	"github.com/matt-steen/day-tracker/pkg/event"
	"github.com/matt-steen/day-tracker/pkg/store"
	"github.com/stretchr/testify/assert"
)

func TestLoadCreatesDefault(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg, err := config.Load(path)
	assert.Nil(err)
	assert.Equal(filepath.Join(dir, "nested", "events.sqlite"), cfg.Database)
	assert.Equal("info", cfg.LogLevel)
	assert.Equal(store.DefaultKey, cfg.StorageKey)
	assert.Equal(event.DefaultPalette(), cfg.Palette)

	_, err = os.Stat(path)
	assert.Nil(err)

	again, err := config.Load(path)
	assert.Nil(err)
	assert.Equal(cfg, again)
}

func TestLoadNormalizes(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	data := []byte("log_level: debug\npalette:\n  - \"#123456\"\n  - red\n")
	assert.Nil(os.WriteFile(path, data, 0o600))

	cfg, err := config.Load(path)
	assert.Nil(err)
	assert.Equal("debug", cfg.LogLevel)
	assert.Equal([]string{"#123456"}, cfg.Palette)
	assert.Equal(filepath.Join(dir, "debug.log"), cfg.LogFile)
}

func TestLoadInvalidPalette(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	assert.Nil(os.WriteFile(path, []byte("palette: [red, blue]\n"), 0o600))

	cfg, err := config.Load(path)
	assert.Nil(err)
	assert.Equal(event.DefaultPalette(), cfg.Palette)
}

func TestLoadBadYAML(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	assert.Nil(os.WriteFile(path, []byte("palette: [\n"), 0o600))

	cfg, err := config.Load(path)
	assert.Nil(cfg)
	assert.NotNil(err)
}

func TestLoadEmptyPath(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	_, err := config.Load("")
	assert.NotNil(err)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := config.DefaultConfig(dir)
	cfg.StorageKey = "mine"
	cfg.Palette = []string{"#ABCDEF"}

	assert.Nil(config.Save(path, cfg))

	loaded, err := config.Load(path)
	assert.Nil(err)
	assert.Equal(cfg, loaded)
}

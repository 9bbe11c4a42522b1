package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, cfg.DB)
	require.NotNil(t, cfg.Host)
	assert.Equal(t, ".config/store", cfg.DB.Path)
	assert.Equal(t, "smr", cfg.Host.Bech32Prefix)
	assert.Equal(t, uint64(50), cfg.Host.DustAmount)
}

func TestSaveAndLoadConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{
		DB: &DBConfig{Path: "/data/store", CacheSize: 16},
		Host: &HostConfig{
			Bech32Prefix: "tst",
			EntropySeed:  "0x0102",
			Timestamp:    1700000000000000000,
		},
		LogFile: "host.log",
	}
	require.NoError(t, SaveConfig(dir, cfg))

	loaded, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "/data/store", loaded.DB.Path)
	assert.Equal(t, 16, loaded.DB.CacheSize)
	assert.Equal(t, "tst", loaded.Host.Bech32Prefix)
	assert.Equal(t, "0x0102", loaded.Host.EntropySeed)
	assert.Equal(t, uint64(1700000000000000000), loaded.Host.Timestamp)
	assert.Equal(t, uint64(50), loaded.Host.DustAmount)
	assert.Equal(t, "host.log", loaded.LogFile)
}

func TestLoadConfigInvalidYaml(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte("db: [1, 2"), 0o600)
	require.NoError(t, err)

	_, err = LoadConfig(dir)
	assert.ErrorContains(t, err, "load config")
}

func TestHostConfigValidate(t *testing.T) {
	assert.NoError(t, HostConfig{}.WithDefaults().Validate())
	assert.Error(t, HostConfig{}.Validate())
	assert.Error(t, HostConfig{Bech32Prefix: "SMR"}.Validate())
}

func TestCreateLoggerWritesFile(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{
		Logger:  &LogConfig{Path: dir},
		LogFile: "test.log",
	}

	logger, closer, err := cfg.CreateLogger(true)
	require.NoError(t, err)
	logger.Info("hello")
	require.NoError(t, logger.Sync())
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(dir, "test.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

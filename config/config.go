package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const defaultConfigFile = "config.yml"

type Config struct {
	DB      *DBConfig   `yaml:"db"`
	Logger  *LogConfig  `yaml:"logger"`
	Host    *HostConfig `yaml:"host"`
	LogFile string      `yaml:"logFile"`
}

// WithDefaults returns a copy of the Config with any missing sections set to
// their default values.
func (c Config) WithDefaults() Config {
	cpy := c
	db := DBConfig{}
	if cpy.DB != nil {
		db = *cpy.DB
	}
	db = db.WithDefaults()
	cpy.DB = &db

	host := HostConfig{}
	if cpy.Host != nil {
		host = *cpy.Host
	}
	host = host.WithDefaults()
	cpy.Host = &host
	return cpy
}

// LoadConfig reads config.yml from configPath. A missing file yields the
// default configuration.
func LoadConfig(configPath string) (*Config, error) {
	file, err := os.Open(filepath.Join(configPath, defaultConfigFile))
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Config{}.WithDefaults()
			return &cfg, nil
		}
		return nil, errors.Wrap(err, "load config")
	}
	defer file.Close()

	cfg := Config{}
	d := yaml.NewDecoder(file)
	if err := d.Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	cfg = cfg.WithDefaults()
	return &cfg, nil
}

// SaveConfig writes config.yml into configPath, creating the directory when
// needed.
func SaveConfig(configPath string, config *Config) error {
	if err := os.MkdirAll(configPath, 0o755); err != nil {
		return errors.Wrap(err, "save config")
	}

	out, err := yaml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "save config")
	}

	err = os.WriteFile(filepath.Join(configPath, defaultConfigFile), out, 0o600)
	return errors.Wrap(err, "save config")
}

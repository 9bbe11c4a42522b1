package config

const (
	defaultDBPath      = ".config/store"
	defaultDBCacheSize = 4096
)

type DBConfig struct {
	Path string `yaml:"path"`
	// Number of state entries kept in the read cache, negative disables it
	CacheSize int `yaml:"cacheSize"`

	// Test-only parameters, do not enable outside of tests
	InMemoryDONOTUSE bool
}

// WithDefaults returns a copy of the DBConfig with any missing fields set to
// their default values.
func (c DBConfig) WithDefaults() DBConfig {
	cpy := c
	if cpy.Path == "" {
		cpy.Path = defaultDBPath
	}
	if cpy.CacheSize == 0 {
		cpy.CacheSize = defaultDBCacheSize
	}
	return cpy
}

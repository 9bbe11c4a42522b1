package config

import (
	"testing"
)

func TestDBConfigWithDefaults(t *testing.T) {
	tests := []struct {
		name     string
		input    DBConfig
		expected DBConfig
	}{
		{
			name:  "Empty config",
			input: DBConfig{},
			expected: DBConfig{
				Path:      ".config/store",
				CacheSize: 4096,
			},
		},
		{
			name: "Config with custom path",
			input: DBConfig{
				Path: "/custom/path/store",
			},
			expected: DBConfig{
				Path:      "/custom/path/store",
				CacheSize: 4096,
			},
		},
		{
			name: "Config with disabled cache",
			input: DBConfig{
				Path:      "/custom/path/store",
				CacheSize: -1,
			},
			expected: DBConfig{
				Path:      "/custom/path/store",
				CacheSize: -1,
			},
		},
		{
			name: "In memory config keeps flag",
			input: DBConfig{
				InMemoryDONOTUSE: true,
			},
			expected: DBConfig{
				Path:             ".config/store",
				CacheSize:        4096,
				InMemoryDONOTUSE: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.input.WithDefaults()

			if result.Path != tt.expected.Path {
				t.Errorf("Path mismatch: got %v, want %v", result.Path, tt.expected.Path)
			}
			if result.CacheSize != tt.expected.CacheSize {
				t.Errorf("CacheSize mismatch: got %v, want %v", result.CacheSize, tt.expected.CacheSize)
			}
			if result.InMemoryDONOTUSE != tt.expected.InMemoryDONOTUSE {
				t.Errorf("InMemoryDONOTUSE mismatch: got %v, want %v", result.InMemoryDONOTUSE, tt.expected.InMemoryDONOTUSE)
			}
		})
	}
}

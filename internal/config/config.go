// Package config handles application configuration loading and management.
package config

import "time"

// Config holds all application settings.
type Config struct {
	Oracle  OracleConfig  `yaml:"oracle"`
	Mesh    MeshConfig    `yaml:"mesh"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// OracleConfig holds segmentation backend settings.
type OracleConfig struct {
	URL            string        `yaml:"url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	Profile        string        `yaml:"profile"` // humanoid, creature or vehicle
}

// MeshConfig holds vertex canonicalization settings.
type MeshConfig struct {
	// Precision is the number of decimal digits kept when deduplicating
	// vertex positions. Vertices closer than the resulting grid are merged.
	Precision int `yaml:"precision"`
}

// ViewerConfig holds preview window settings.
type ViewerConfig struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	VSync  bool `yaml:"vsync"`
}

// ExportConfig holds paint plan export settings.
type ExportConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Oracle: OracleConfig{
			URL:            "http://localhost:5000",
			RequestTimeout: 30 * time.Second,
			Profile:        "humanoid",
		},
		Mesh: MeshConfig{
			Precision: 6,
		},
		Viewer: ViewerConfig{
			Width:  1024,
			Height: 768,
			VSync:  true,
		},
		Export: ExportConfig{
			Path: "paint-plan.json",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagOracle    = flag.String("oracle", "", "Segmentation backend URL")
	flagProfile   = flag.String("profile", "", "Segmentation profile (humanoid, creature, vehicle)")
	flagPrecision = flag.Int("precision", 0, "Vertex dedup precision in decimal digits")
	flagWidth     = flag.Int("width", 0, "Window width")
	flagHeight    = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// ModelPath returns the STL path given as the first positional argument,
// or "" if none was given.
func ModelPath() string {
	return flag.Arg(0)
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagOracle != "" {
		cfg.Oracle.URL = *flagOracle
	}
	if *flagProfile != "" {
		cfg.Oracle.Profile = *flagProfile
	}
	if *flagPrecision > 0 {
		cfg.Mesh.Precision = *flagPrecision
	}
	if *flagWidth > 0 {
		cfg.Viewer.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Viewer.Height = *flagHeight
	}
}

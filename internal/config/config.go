// Package config handles tool configuration loading and management.
package config

// Config holds all tool settings.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Sky     SkyConfig     `yaml:"sky"`
	Logging LoggingConfig `yaml:"logging"`
}

// DataConfig holds game data file settings.
type DataConfig struct {
	BSAPaths    []string `yaml:"bsa_paths"`   // Paths to BSA archives
	Palette     string   `yaml:"palette"`     // Palette file name inside the archives
	Placeholder bool     `yaml:"placeholder"` // Synthesize textures instead of reading archives
}

// SkyConfig holds the default sky generation context.
type SkyConfig struct {
	Location    string `yaml:"location"`
	Weather     string `yaml:"weather"`
	Day         int    `yaml:"day"`
	StarDensity int    `yaml:"star_density"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			BSAPaths:    []string{"GLOBAL.BSA"},
			Palette:     "PAL.COL",
			Placeholder: false,
		},
		Sky: SkyConfig{
			Location:    "Daggerfall",
			Weather:     "Clear",
			Day:         0,
			StarDensity: 0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

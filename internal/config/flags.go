package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagLocation    = flag.String("location", "", "Location to generate the sky for")
	flagWeather     = flag.String("weather", "", "Weather kind (Clear, Overcast, Rain, Snow)")
	flagDay         = flag.Int("day", -1, "Current day index")
	flagDensity     = flag.Int("density", -1, "Star density setting (0, 1, or 2)")
	flagBSA         = flag.String("bsa", "", "Path to a BSA archive (overrides config paths)")
	flagPlaceholder = flag.Bool("placeholder", false, "Use synthesized textures instead of archives")
	flagLogFile     = flag.String("log-file", "", "Write logs to this file")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLocation != "" {
		cfg.Sky.Location = *flagLocation
	}
	if *flagWeather != "" {
		cfg.Sky.Weather = *flagWeather
	}
	if *flagDay >= 0 {
		cfg.Sky.Day = *flagDay
	}
	if *flagDensity >= 0 {
		cfg.Sky.StarDensity = *flagDensity
	}
	if *flagBSA != "" {
		cfg.Data.BSAPaths = []string{*flagBSA}
	}
	if *flagPlaceholder {
		cfg.Data.Placeholder = true
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}

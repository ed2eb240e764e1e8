package config

import "flag"

var (
	flagConfig       = flag.String("config", "", "Path to config file")
	flagDebug        = flag.Bool("debug", false, "Enable debug logging")
	flagOutput       = flag.String("o", "", "Output directory")
	flagWidth        = flag.Float64("width", 0, "Model width in mm")
	flagLength       = flag.Float64("length", 0, "Model length in mm")
	flagExaggeration = flag.Float64("exaggeration", 0, "Vertical exaggeration (>= 1)")
	flagSmoothness   = flag.Float64("smoothness", -1, "Smoothing level (0 disables)")
	flagDEMType      = flag.String("dem-type", "", "DEM product the samples came from")
	flagWorkers      = flag.Int("workers", 0, "Concurrent rows (0 = GOMAXPROCS)")
	flagHistogram    = flag.Bool("histogram", false, "Write an elevation histogram")
	flagNoPreview    = flag.Bool("no-preview", false, "Skip the preview image")
)

// ParseFlags parses command-line flags from args. Call this early in a
// command, before Load.
func ParseFlags(args []string) error {
	return flag.CommandLine.Parse(args)
}

// Args returns the positional arguments left after ParseFlags.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagOutput != "" {
		cfg.Output.Dir = *flagOutput
	}
	if *flagWidth > 0 {
		cfg.Model.WidthMM = *flagWidth
	}
	if *flagLength > 0 {
		cfg.Model.LengthMM = *flagLength
	}
	if *flagExaggeration > 0 {
		cfg.Model.VerticalExaggeration = *flagExaggeration
	}
	if *flagSmoothness >= 0 {
		cfg.Model.Smoothness = *flagSmoothness
	}
	if *flagDEMType != "" {
		cfg.Source.DEMType = *flagDEMType
	}
	if *flagWorkers > 0 {
		cfg.Processing.Workers = *flagWorkers
	}
	if *flagHistogram {
		cfg.Output.Histogram = true
	}
	if *flagNoPreview {
		cfg.Output.Preview = false
	}
}

package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagMap        = flag.String("map", "", "Path to a terrain map file")
	flagOut        = flag.String("out", "", "Preview output directory")
	flagDebugMode  = flag.Int("debug-mode", -1, "Material debug mode (0-4)")
	flagDebugLayer = flag.Int("debug-layer", -1, "Layer shown by debug mode 3")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
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
	if *flagMap != "" {
		cfg.Terrain.MapPath = *flagMap
	}
	if *flagOut != "" {
		cfg.Preview.OutputDir = *flagOut
	}
	if *flagDebugMode >= 0 {
		cfg.Preview.DebugMode = *flagDebugMode
	}
	if *flagDebugLayer >= 0 {
		cfg.Preview.DebugLayer = *flagDebugLayer
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
}

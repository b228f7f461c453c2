package config

import (
	"flag"
	"strings"
)

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagWidth   = flag.Int("width", 0, "Window width")
	flagHeight  = flag.Int("height", 0, "Window height")
	flagShaders = flag.String("shaders", "", "Directory with GLSL program sources")
	flagLog     = flag.String("log", "", "Log file path")
	flagModels  stringList
)

func init() {
	flag.Var(&flagModels, "model", "Model to open (repeatable)")
}

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config. Models given with
// -model or as positional arguments are appended to the configured ones.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagShaders != "" {
		cfg.Viewer.ShaderDir = *flagShaders
	}
	if *flagLog != "" {
		cfg.Logging.LogFile = *flagLog
	}
	cfg.Viewer.Models = append(cfg.Viewer.Models, flagModels...)
	cfg.Viewer.Models = append(cfg.Viewer.Models, flag.Args()...)
}

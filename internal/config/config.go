// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Viewer     ViewerConfig     `yaml:"viewer"`
	Camera     CameraConfig     `yaml:"camera"`
	Textures   TextureConfig    `yaml:"textures"`
	Screenshot ScreenshotConfig `yaml:"screenshot"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string     `yaml:"title"`
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	VSync      bool       `yaml:"vsync"`
	ClearColor [3]float32 `yaml:"clear_color"`
}

// ProgramConfig describes an extra GLSL program loaded at startup.
// Empty stage paths fall back to the embedded defaults.
type ProgramConfig struct {
	Description string `yaml:"description"`
	Vertex      string `yaml:"vertex"`
	Geometry    string `yaml:"geometry"`
	Fragment    string `yaml:"fragment"`
}

// ViewerConfig holds scene and pipeline settings.
type ViewerConfig struct {
	Models       []string        `yaml:"models"`        // Models opened at start
	ShaderDir    string          `yaml:"shader_dir"`    // Overrides the embedded shaders
	Deferred     bool            `yaml:"deferred"`      // Geometry + lighting passes
	WatchShaders bool            `yaml:"watch_shaders"` // Relink when shader files change
	ShowGUI      bool            `yaml:"show_gui"`
	Light        string          `yaml:"light"` // Startup light grabbed by the camera: directional, point, spotlight or none
	Programs     []ProgramConfig `yaml:"programs"`
}

// CameraConfig holds the initial camera and the shared control settings.
type CameraConfig struct {
	FOV          float32 `yaml:"fov"` // Degrees
	Near         float32 `yaml:"near"`
	Far          float32 `yaml:"far"`
	Speed        float32 `yaml:"speed"`
	BoostedSpeed float32 `yaml:"boosted_speed"`
	Sensitivity  float32 `yaml:"sensitivity"`
	ZoomFactor   float32 `yaml:"zoom_factor"`
	Orthographic bool    `yaml:"orthographic"`
}

// TextureConfig holds texture upload settings.
type TextureConfig struct {
	MaxSize int  `yaml:"max_size"` // Larger images are downscaled; 0 disables
	Mipmaps bool `yaml:"mipmaps"`
}

// ScreenshotConfig holds screenshot output settings.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // "png" or "webp"
	Prefix string `yaml:"prefix"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "OBJ Viewer",
			Width:      1280,
			Height:     720,
			VSync:      true,
			ClearColor: [3]float32{0.45, 0.55, 0.6},
		},
		Viewer: ViewerConfig{
			Deferred:     true,
			WatchShaders: true,
			ShowGUI:      true,
			Light:        "directional",
		},
		Camera: CameraConfig{
			FOV:          30,
			Near:         0.01,
			Far:          10,
			Speed:        0.5,
			BoostedSpeed: 1,
			Sensitivity:  15,
			ZoomFactor:   1.0625,
		},
		Textures: TextureConfig{
			MaxSize: 4096,
			Mipmaps: true,
		},
		Screenshot: ScreenshotConfig{
			Dir:    "screenshots",
			Format: "png",
			Prefix: "objviewer",
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  20,
			MaxBackups: 3,
			MaxAgeDays: 14,
			Compress:   true,
		},
	}
}

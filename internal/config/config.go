// Package config handles configuration loading and management.
package config

// Config holds all application settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Terrain  TerrainConfig  `yaml:"terrain"`
	Material MaterialConfig `yaml:"material"`
	Preview  PreviewConfig  `yaml:"preview"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings for the interactive viewer.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// TerrainConfig holds the map source settings. When MapPath is empty a demo
// map of DemoWidth x DemoHeight tiles is generated.
type TerrainConfig struct {
	MapPath    string `yaml:"map_path"`
	DemoWidth  int    `yaml:"demo_width"`
	DemoHeight int    `yaml:"demo_height"`
	DemoSeed   int64  `yaml:"demo_seed"`
}

// MaterialConfig holds the texture layer and blend settings.
type MaterialConfig struct {
	// TextureDir holds one base-color, normal and roughness file per layer,
	// named <layer>.png, <layer>_n.png, <layer>_r.png. Empty means the
	// procedural fallback textures.
	TextureDir string   `yaml:"texture_dir"`
	Layers     []string `yaml:"layers"`

	HeightUVScale    float32 `yaml:"height_uv_scale"`
	CliffBlendHeight float32 `yaml:"cliff_blend_height"`

	WallEnabled      bool `yaml:"wall_enabled"`
	WallLayer        int  `yaml:"wall_layer"`
	WallHasNormal    bool `yaml:"wall_has_normal"`
	WallHasRoughness bool `yaml:"wall_has_roughness"`
}

// PreviewConfig holds the offline render settings.
type PreviewConfig struct {
	OutputDir     string `yaml:"output_dir"`
	PixelsPerTile int    `yaml:"pixels_per_tile"`
	// CrossSectionRow is the tile row rendered by the cross-section view;
	// negative disables it.
	CrossSectionRow int `yaml:"cross_section_row"`
	// DebugMode: 0 none, 1 normals, 2 splat weights, 3 single layer,
	// 4 roughness.
	DebugMode  int `yaml:"debug_mode"`
	DebugLayer int `yaml:"debug_layer"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Terrain: TerrainConfig{
			DemoWidth:  32,
			DemoHeight: 32,
			DemoSeed:   1,
		},
		Material: MaterialConfig{
			Layers:           []string{"grass", "dirt", "sand", "rock"},
			HeightUVScale:    1.0,
			CliffBlendHeight: 0.2,
			WallEnabled:      true,
			WallLayer:        3,
			WallHasNormal:    true,
			WallHasRoughness: true,
		},
		Preview: PreviewConfig{
			OutputDir:       "preview",
			PixelsPerTile:   16,
			CrossSectionRow: -1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate clamps out-of-range values back to usable ones rather than
// failing: a preview with degraded settings beats no preview.
func (c *Config) Validate() {
	if c.Graphics.Width < 320 {
		c.Graphics.Width = 320
	}
	if c.Graphics.Height < 240 {
		c.Graphics.Height = 240
	}
	if c.Terrain.DemoWidth < 1 {
		c.Terrain.DemoWidth = 1
	}
	if c.Terrain.DemoHeight < 1 {
		c.Terrain.DemoHeight = 1
	}
	if len(c.Material.Layers) > 4 {
		c.Material.Layers = c.Material.Layers[:4]
	}
	if c.Material.HeightUVScale <= 0 {
		c.Material.HeightUVScale = 1.0
	}
	if c.Material.CliffBlendHeight <= 0 {
		c.Material.CliffBlendHeight = 0.2
	}
	if c.Material.WallLayer < 0 {
		c.Material.WallLayer = 0
	}
	if c.Material.WallLayer > 3 {
		c.Material.WallLayer = 3
	}
	if c.Preview.PixelsPerTile < 1 {
		c.Preview.PixelsPerTile = 1
	}
	if c.Preview.PixelsPerTile > 128 {
		c.Preview.PixelsPerTile = 128
	}
	if c.Preview.DebugMode < 0 || c.Preview.DebugMode > 4 {
		c.Preview.DebugMode = 0
	}
	if c.Preview.DebugLayer < 0 {
		c.Preview.DebugLayer = 0
	}
	if c.Preview.DebugLayer > 3 {
		c.Preview.DebugLayer = 3
	}
}

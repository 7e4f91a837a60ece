package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 || cfg.Graphics.Height != 720 {
		t.Errorf("default window = %dx%d, want 1280x720", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if len(cfg.Material.Layers) != 4 {
		t.Errorf("default layer count = %d, want 4", len(cfg.Material.Layers))
	}
	if cfg.Material.CliffBlendHeight != 0.2 {
		t.Errorf("default cliff blend height = %f, want 0.2", cfg.Material.CliffBlendHeight)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("default log level = %q, want info", cfg.Logging.Level)
	}
}

func TestValidate_Clamps(t *testing.T) {
	cfg := Default()
	cfg.Graphics.Width = 10
	cfg.Graphics.Height = -1
	cfg.Terrain.DemoWidth = 0
	cfg.Material.Layers = []string{"a", "b", "c", "d", "e", "f"}
	cfg.Material.HeightUVScale = -2
	cfg.Material.CliffBlendHeight = 0
	cfg.Material.WallLayer = 9
	cfg.Preview.PixelsPerTile = 0
	cfg.Preview.DebugMode = 99
	cfg.Preview.DebugLayer = -1

	cfg.Validate()

	if cfg.Graphics.Width != 320 || cfg.Graphics.Height != 240 {
		t.Errorf("window clamped to %dx%d, want 320x240", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Terrain.DemoWidth != 1 {
		t.Errorf("demo width = %d, want 1", cfg.Terrain.DemoWidth)
	}
	if len(cfg.Material.Layers) != 4 {
		t.Errorf("layers truncated to %d, want 4", len(cfg.Material.Layers))
	}
	if cfg.Material.HeightUVScale != 1 {
		t.Errorf("height uv scale = %f, want 1", cfg.Material.HeightUVScale)
	}
	if cfg.Material.CliffBlendHeight != 0.2 {
		t.Errorf("cliff blend height = %f, want 0.2", cfg.Material.CliffBlendHeight)
	}
	if cfg.Material.WallLayer != 3 {
		t.Errorf("wall layer = %d, want 3", cfg.Material.WallLayer)
	}
	if cfg.Preview.PixelsPerTile != 1 {
		t.Errorf("pixels per tile = %d, want 1", cfg.Preview.PixelsPerTile)
	}
	if cfg.Preview.DebugMode != 0 {
		t.Errorf("debug mode = %d, want 0", cfg.Preview.DebugMode)
	}
	if cfg.Preview.DebugLayer != 0 {
		t.Errorf("debug layer = %d, want 0", cfg.Preview.DebugLayer)
	}
}

func TestValidate_KeepsValidValues(t *testing.T) {
	cfg := Default()
	cfg.Graphics.Width = 1920
	cfg.Material.WallLayer = 2
	cfg.Preview.CrossSectionRow = 5

	cfg.Validate()

	if cfg.Graphics.Width != 1920 {
		t.Errorf("valid width changed to %d", cfg.Graphics.Width)
	}
	if cfg.Material.WallLayer != 2 {
		t.Errorf("valid wall layer changed to %d", cfg.Material.WallLayer)
	}
	if cfg.Preview.CrossSectionRow != 5 {
		t.Errorf("cross-section row changed to %d", cfg.Preview.CrossSectionRow)
	}
}

func TestSaveToAndLoadFromFile(t *testing.T) {
	cfg := Default()
	cfg.Terrain.MapPath = "maps/island.yaml"
	cfg.Material.WallLayer = 2
	cfg.Material.WallEnabled = false
	cfg.Preview.PixelsPerTile = 32
	cfg.Logging.Level = "debug"

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}

	if loaded.Terrain.MapPath != cfg.Terrain.MapPath {
		t.Errorf("map path = %q, want %q", loaded.Terrain.MapPath, cfg.Terrain.MapPath)
	}
	if loaded.Material.WallLayer != 2 || loaded.Material.WallEnabled {
		t.Errorf("wall settings = %d/%v, want 2/false", loaded.Material.WallLayer, loaded.Material.WallEnabled)
	}
	if loaded.Preview.PixelsPerTile != 32 {
		t.Errorf("pixels per tile = %d, want 32", loaded.Preview.PixelsPerTile)
	}
	if loaded.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug", loaded.Logging.Level)
	}
}

func TestLoadFromFile_PartialOverlay(t *testing.T) {
	// A file that only sets one field leaves the rest at defaults.
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := Default()
	if err := os.WriteFile(path, []byte("logging:\n  level: warn\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}

	if cfg.Logging.Level != "warn" {
		t.Errorf("log level = %q, want warn", cfg.Logging.Level)
	}
	if cfg.Graphics.Width != 1280 {
		t.Errorf("width = %d, want default 1280", cfg.Graphics.Width)
	}
}

// Package main renders terrain map previews offline through the CPU
// shading pipeline.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/terrapaint/internal/app"
	"github.com/Faultbox/terrapaint/internal/config"
	"github.com/Faultbox/terrapaint/internal/engine/preview"
	"github.com/Faultbox/terrapaint/internal/engine/shading"
	"github.com/Faultbox/terrapaint/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== TerraPaint preview ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("preview failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	world, err := app.Load(cfg)
	if err != nil {
		return err
	}

	pipeline := shading.NewPipeline(world.Material, world.Bindings)
	pipeline.Debug = shading.DebugMode(cfg.Preview.DebugMode)
	pipeline.DebugLayer = cfg.Preview.DebugLayer
	pipeline.Light = preview.DefaultLight().Lambert()

	img := preview.TopDown(world.Map, pipeline, cfg.Preview.PixelsPerTile)
	path := filepath.Join(cfg.Preview.OutputDir, "topdown.png")
	if err := preview.WritePNG(img, path); err != nil {
		return err
	}
	logger.Info("top-down preview written",
		zap.String("path", path),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
	)

	if row := cfg.Preview.CrossSectionRow; row >= 0 {
		img := preview.CrossSection(world.Map, pipeline, row, cfg.Preview.PixelsPerTile)
		path := filepath.Join(cfg.Preview.OutputDir, fmt.Sprintf("crosssection_%d.png", row))
		if err := preview.WritePNG(img, path); err != nil {
			return err
		}
		logger.Info("cross-section preview written",
			zap.String("path", path),
			zap.Int("row", row),
		)
	}
	return nil
}

// Package app assembles the terrain world shared by the offline preview
// tool and the interactive viewer: the tile map, the splatmap store, the
// material configuration and its texture bindings.
package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/terrapaint/internal/config"
	"github.com/Faultbox/terrapaint/internal/engine/material"
	"github.com/Faultbox/terrapaint/internal/engine/preview"
	"github.com/Faultbox/terrapaint/internal/engine/terrain"
	"github.com/Faultbox/terrapaint/internal/engine/texture"
	"github.com/Faultbox/terrapaint/internal/logger"
)

// World is the assembled terrain state.
type World struct {
	Map      *terrain.TileMap
	Splat    *terrain.SplatmapStore
	Material material.Config
	Bindings material.Bindings
}

// Load builds the world from configuration: the map from disk or the demo
// generator, layer textures from disk or the procedural fallback, and the
// splatmap from the map.
func Load(cfg *config.Config) (*World, error) {
	m, err := loadMap(cfg)
	if err != nil {
		return nil, err
	}

	store := &terrain.SplatmapStore{}
	splat := store.Rebuild(m)
	logger.Debug("splatmap built",
		zap.Int("width", splat.Width),
		zap.Int("height", splat.Height),
	)

	baseColor, normal, roughness, err := loadLayers(cfg.Material)
	if err != nil {
		return nil, err
	}

	mat := material.DefaultConfig(m.Width, m.Height)
	mat.LayerCount = len(cfg.Material.Layers)
	mat.HeightUVScale = cfg.Material.HeightUVScale
	mat.CliffBlendHeight = cfg.Material.CliffBlendHeight
	mat.WallEnabled = cfg.Material.WallEnabled
	mat.WallLayerIndex = cfg.Material.WallLayer
	mat.WallHasNormal = cfg.Material.WallHasNormal
	mat.WallHasRoughness = cfg.Material.WallHasRoughness

	return &World{
		Map:      m,
		Splat:    store,
		Material: mat,
		Bindings: material.Bindings{
			BaseColor: baseColor,
			Normal:    normal,
			Roughness: roughness,
			Splat:     splat,
		},
	}, nil
}

// SetTile edits one tile and rebuilds the splatmap. Readers holding the old
// splatmap keep a consistent snapshot.
func (w *World) SetTile(x, y int, t terrain.Tile) {
	w.Map.Set(x, y, t)
	w.Bindings.Splat = w.Splat.Rebuild(w.Map)
}

func loadMap(cfg *config.Config) (*terrain.TileMap, error) {
	if cfg.Terrain.MapPath != "" {
		m, err := terrain.LoadMap(cfg.Terrain.MapPath)
		if err != nil {
			return nil, fmt.Errorf("loading map: %w", err)
		}
		logger.Info("map loaded",
			zap.String("path", cfg.Terrain.MapPath),
			zap.Int("width", m.Width),
			zap.Int("height", m.Height),
		)
		return m, nil
	}

	m := terrain.GenerateDemoMap(cfg.Terrain.DemoWidth, cfg.Terrain.DemoHeight, cfg.Terrain.DemoSeed)
	logger.Info("demo map generated",
		zap.Int("width", m.Width),
		zap.Int("height", m.Height),
		zap.Int64("seed", cfg.Terrain.DemoSeed),
	)
	return m, nil
}

// loadLayers resolves the three layer texture arrays. With no texture
// directory configured the procedural fallback serves all three; with one
// configured, the base-color files are required while normal and roughness
// degrade to nil when missing.
func loadLayers(cfg config.MaterialConfig) (baseColor, normal, roughness *texture.Array, err error) {
	if cfg.TextureDir == "" {
		baseColor, normal, roughness = preview.FallbackBindings(len(cfg.Layers))
		logger.Info("using procedural fallback textures", zap.Int("layers", len(cfg.Layers)))
		return baseColor, normal, roughness, nil
	}

	baseColor, err = texture.LoadArray(cfg.TextureDir, layerFiles(cfg.Layers, ".png"))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading base color layers: %w", err)
	}

	normal, err = texture.LoadArray(cfg.TextureDir, layerFiles(cfg.Layers, "_n.png"))
	if err != nil {
		logger.Warn("normal layers unavailable", zap.Error(err))
		normal = nil
	}

	roughness, err = texture.LoadArray(cfg.TextureDir, layerFiles(cfg.Layers, "_r.png"))
	if err != nil {
		logger.Warn("roughness layers unavailable", zap.Error(err))
		roughness = nil
	}
	return baseColor, normal, roughness, nil
}

func layerFiles(layers []string, suffix string) []string {
	files := make([]string, len(layers))
	for i, name := range layers {
		files[i] = name + suffix
	}
	return files
}

package terrain

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadMap reads a tile map from a YAML file.
func LoadMap(path string) (*TileMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading map %s: %w", path, err)
	}
	var m TileMap
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing map %s: %w", path, err)
	}
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("map %s: %w", path, err)
	}
	return &m, nil
}

// SaveMap writes a tile map to a YAML file.
func SaveMap(m *TileMap, path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding map: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing map %s: %w", path, err)
	}
	return nil
}

func (m *TileMap) validate() error {
	if m.Width < 0 || m.Height < 0 {
		return fmt.Errorf("invalid dimensions %dx%d", m.Width, m.Height)
	}
	if len(m.Tiles) != m.Width*m.Height {
		return fmt.Errorf("tile count %d does not match %dx%d", len(m.Tiles), m.Width, m.Height)
	}
	return nil
}

package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/piwi3910/patchwork/internal/model"
)

// LoadLayout reads a layout from a .toml or .json file. An empty path
// returns the built-in layout. Loaded layouts get an ID and cell size if they
// lack one and are validated before being returned.
func LoadLayout(path string) (model.Layout, error) {
	if path == "" {
		return model.DefaultLayout(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return model.Layout{}, fmt.Errorf("failed to read layout: %w", err)
	}

	var layout model.Layout
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &layout); err != nil {
			return model.Layout{}, fmt.Errorf("failed to parse layout %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &layout); err != nil {
			return model.Layout{}, fmt.Errorf("failed to parse layout %s: %w", path, err)
		}
	default:
		return model.Layout{}, fmt.Errorf("unsupported layout format %q", filepath.Ext(path))
	}

	if layout.ID == "" {
		layout.ID = model.NewLayoutID()
	}
	if layout.CellSize <= 0 {
		layout.CellSize = model.DefaultCellSize
	}
	if err := layout.Validate(); err != nil {
		return model.Layout{}, fmt.Errorf("invalid layout %s: %w", path, err)
	}
	return layout, nil
}

// SaveLayout writes a layout as TOML or JSON depending on the extension,
// creating parent directories as needed.
func SaveLayout(path string, layout model.Layout) error {
	var data []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(layout); err != nil {
			return fmt.Errorf("failed to encode layout: %w", err)
		}
		data = buf.Bytes()
	case ".json":
		var err error
		data, err = json.MarshalIndent(layout, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode layout: %w", err)
		}
	default:
		return fmt.Errorf("unsupported layout format %q", filepath.Ext(path))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create layout directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write layout: %w", err)
	}
	return nil
}

package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/piwi3910/patchwork/internal/model"
)

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.patchwork/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".patchwork")
}

// DefaultConfigPath returns the default path for the settings file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig validates the settings and writes them to path as JSON,
// creating missing parent directories.
func SaveAppConfig(path string, config model.AppConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// LoadAppConfig reads the settings at path. A missing file yields the
// defaults. Out-of-range values fall back to their defaults, and a startup
// layout or recent layout whose file is gone is dropped, so a stale settings
// file never stops the editor from opening.
func LoadAppConfig(path string) (model.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.DefaultAppConfig(), nil
		}
		return model.AppConfig{}, fmt.Errorf("read settings: %w", err)
	}
	config := model.DefaultAppConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, fmt.Errorf("parse settings %s: %w", path, err)
	}
	config.Normalize()

	if config.LayoutPath != "" && !fileExists(config.LayoutPath) {
		config.LayoutPath = ""
	}
	recent := config.RecentLayouts[:0]
	for _, p := range config.RecentLayouts {
		if fileExists(p) {
			recent = append(recent, p)
		}
	}
	config.RecentLayouts = recent
	return config, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

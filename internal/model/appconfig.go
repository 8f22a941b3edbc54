package model

import (
	"errors"
	"fmt"
	"slices"
)

// AppConfig holds application-wide preferences.
type AppConfig struct {
	// Layout file loaded at startup; empty means the built-in layout
	LayoutPath string `json:"layout_path"`
	// Pixel size of one grid cell; 0 keeps the layout's own value
	CellSize int `json:"cell_size"`

	HistoryDepth int    `json:"history_depth"` // undo steps kept, 0 = default
	ExportDir    string `json:"export_dir"`
	Theme        string `json:"theme"` // "light", "dark", "system"

	RecentLayouts []string `json:"recent_layouts"`
}

// DefaultHistoryDepth is the number of undo steps kept by default.
const DefaultHistoryDepth = 50

// Settings limits. A CellSize of 0 keeps the layout's own cell size.
const (
	MinCellSize     = 8
	MaxCellSize     = 200
	MaxHistoryDepth = 1000
)

// Themes lists the accepted AppConfig.Theme values.
var Themes = []string{"system", "light", "dark"}

// ErrInvalidConfig is returned for settings outside their accepted ranges.
var ErrInvalidConfig = errors.New("invalid settings")

// Validate checks the settings a user can edit.
func (c AppConfig) Validate() error {
	if c.CellSize != 0 && (c.CellSize < MinCellSize || c.CellSize > MaxCellSize) {
		return fmt.Errorf("%w: cell size %d must be 0 or between %d and %d",
			ErrInvalidConfig, c.CellSize, MinCellSize, MaxCellSize)
	}
	if c.HistoryDepth < 0 || c.HistoryDepth > MaxHistoryDepth {
		return fmt.Errorf("%w: undo steps %d must be between 0 and %d",
			ErrInvalidConfig, c.HistoryDepth, MaxHistoryDepth)
	}
	if !slices.Contains(Themes, c.Theme) {
		return fmt.Errorf("%w: unknown theme %q", ErrInvalidConfig, c.Theme)
	}
	return nil
}

// Normalize replaces out-of-range settings with their defaults and returns
// the names of the fields it reset.
func (c *AppConfig) Normalize() []string {
	def := DefaultAppConfig()
	var reset []string
	if c.CellSize != 0 && (c.CellSize < MinCellSize || c.CellSize > MaxCellSize) {
		c.CellSize = def.CellSize
		reset = append(reset, "cell_size")
	}
	if c.HistoryDepth <= 0 || c.HistoryDepth > MaxHistoryDepth {
		c.HistoryDepth = def.HistoryDepth
		reset = append(reset, "history_depth")
	}
	if !slices.Contains(Themes, c.Theme) {
		c.Theme = def.Theme
		reset = append(reset, "theme")
	}
	if c.RecentLayouts == nil {
		c.RecentLayouts = []string{}
	}
	return reset
}

// DefaultAppConfig returns an AppConfig populated with defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		LayoutPath:    "",
		CellSize:      0,
		HistoryDepth:  DefaultHistoryDepth,
		ExportDir:     "",
		Theme:         "system",
		RecentLayouts: []string{},
	}
}

// ApplyToLayout copies overrides from the config into a layout.
func (c AppConfig) ApplyToLayout(l *Layout) {
	if c.CellSize > 0 {
		l.CellSize = c.CellSize
	}
	if l.CellSize <= 0 {
		l.CellSize = DefaultCellSize
	}
}

// AddRecentLayout records path at the front of the recent list, keeping at
// most max entries without duplicates.
func (c *AppConfig) AddRecentLayout(path string, max int) {
	out := []string{path}
	for _, p := range c.RecentLayouts {
		if p != path {
			out = append(out, p)
		}
	}
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	c.RecentLayouts = out
}

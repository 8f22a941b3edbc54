package model

import (
	"errors"
	"testing"
)

func TestDefaultAppConfig(t *testing.T) {
	cfg := DefaultAppConfig()

	if cfg.HistoryDepth != DefaultHistoryDepth {
		t.Errorf("expected history depth %d, got %d", DefaultHistoryDepth, cfg.HistoryDepth)
	}
	if cfg.Theme != "system" {
		t.Errorf("expected default theme=system, got %s", cfg.Theme)
	}
	if cfg.RecentLayouts == nil {
		t.Error("RecentLayouts should not be nil")
	}
}

func TestApplyToLayout(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.CellSize = 24

	l := DefaultLayout()
	cfg.ApplyToLayout(&l)
	if l.CellSize != 24 {
		t.Errorf("expected CellSize=24, got %d", l.CellSize)
	}

	cfg.CellSize = 0
	l.CellSize = 0
	cfg.ApplyToLayout(&l)
	if l.CellSize != DefaultCellSize {
		t.Errorf("expected fallback CellSize=%d, got %d", DefaultCellSize, l.CellSize)
	}
}

func TestAddRecentLayout(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentLayout("a.toml", 2)
	cfg.AddRecentLayout("b.toml", 2)
	cfg.AddRecentLayout("a.toml", 2)
	cfg.AddRecentLayout("c.toml", 2)

	if len(cfg.RecentLayouts) != 2 {
		t.Fatalf("expected 2 recent layouts, got %d", len(cfg.RecentLayouts))
	}
	if cfg.RecentLayouts[0] != "c.toml" || cfg.RecentLayouts[1] != "a.toml" {
		t.Errorf("unexpected order: %v", cfg.RecentLayouts)
	}
}

func TestAppConfigValidate(t *testing.T) {
	cases := []struct {
		name  string
		edit  func(*AppConfig)
		valid bool
	}{
		{"defaults", func(*AppConfig) {}, true},
		{"layout cell size", func(c *AppConfig) { c.CellSize = 0 }, true},
		{"cell size in range", func(c *AppConfig) { c.CellSize = 24 }, true},
		{"cell size too small", func(c *AppConfig) { c.CellSize = MinCellSize - 1 }, false},
		{"cell size too large", func(c *AppConfig) { c.CellSize = MaxCellSize + 1 }, false},
		{"negative history", func(c *AppConfig) { c.HistoryDepth = -1 }, false},
		{"history too deep", func(c *AppConfig) { c.HistoryDepth = MaxHistoryDepth + 1 }, false},
		{"unknown theme", func(c *AppConfig) { c.Theme = "neon" }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultAppConfig()
			tc.edit(&cfg)
			err := cfg.Validate()
			if tc.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tc.valid && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestAppConfigNormalize(t *testing.T) {
	cfg := AppConfig{CellSize: 500, HistoryDepth: 0, Theme: ""}
	reset := cfg.Normalize()

	if len(reset) != 3 {
		t.Errorf("expected 3 reset fields, got %v", reset)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("normalized config should validate: %v", err)
	}
	if cfg.RecentLayouts == nil {
		t.Error("RecentLayouts should not be nil")
	}
}

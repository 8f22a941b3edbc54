// Package ui provides the Patchwork desktop editor.
//
// This file defines a compact Fyne theme and maps the configured theme name
// to a variant.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// PatchworkTheme wraps the default Fyne theme with compact sizing overrides
// so the tall grid and its side panels fit on one screen.
type PatchworkTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	system  bool
}

// NewPatchworkTheme creates a theme for the given config name: "light",
// "dark" or anything else for the system default.
func NewPatchworkTheme(name string) *PatchworkTheme {
	t := &PatchworkTheme{base: theme.DefaultTheme()}
	t.SetName(name)
	return t
}

// SetName switches the variant by config name.
func (t *PatchworkTheme) SetName(name string) {
	switch name {
	case "light":
		t.variant, t.system = theme.VariantLight, false
	case "dark":
		t.variant, t.system = theme.VariantDark, false
	default:
		t.system = true
	}
}

// Color delegates to the base theme, forcing the stored variant unless the
// system default is in use.
func (t *PatchworkTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.system {
		return t.base.Color(name, variant)
	}
	return t.base.Color(name, t.variant)
}

// Font delegates to the base theme.
func (t *PatchworkTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon delegates to the base theme.
func (t *PatchworkTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides.
func (t *PatchworkTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInlineIcon:
		return 16
	default:
		return t.base.Size(name)
	}
}

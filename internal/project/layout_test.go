package project

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/piwi3910/patchwork/internal/model"
)

func TestLoadLayoutEmptyPathReturnsDefault(t *testing.T) {
	l, err := LoadLayout("")
	if err != nil {
		t.Fatalf("LoadLayout failed: %v", err)
	}
	if len(l.Sections) != 26 || len(l.Blocks) != 6 {
		t.Errorf("expected built-in layout, got %d sections and %d blocks", len(l.Sections), len(l.Blocks))
	}
}

func TestSaveAndLoadLayoutRoundTrip(t *testing.T) {
	for _, ext := range []string{".toml", ".json"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "layout"+ext)
			want := model.DefaultLayout()

			if err := SaveLayout(path, want); err != nil {
				t.Fatalf("SaveLayout failed: %v", err)
			}
			got, err := LoadLayout(path)
			if err != nil {
				t.Fatalf("LoadLayout failed: %v", err)
			}

			if got.ID != want.ID || got.Name != want.Name || got.Grid != want.Grid {
				t.Errorf("header mismatch: got %s/%s/%+v", got.ID, got.Name, got.Grid)
			}
			if !reflect.DeepEqual(got.Sections, want.Sections) {
				t.Error("sections differ after round trip")
			}
			if !reflect.DeepEqual(got.Blocks, want.Blocks) {
				t.Error("blocks differ after round trip")
			}
		})
	}
}

func TestLoadLayoutHandWrittenTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "small.toml")
	src := `
name = "Small"

[grid]
cols = 4
rows = 4

[[sections]]
id = 1
x = 0
y = 0
width = 4
height = 4
block_size = { width = 2, height = 2 }

[[blocks]]
id = 1
label = "A"
x = 0
y = 0
width = 1
height = 1
`
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	l, err := LoadLayout(path)
	if err != nil {
		t.Fatalf("LoadLayout failed: %v", err)
	}
	if l.ID == "" {
		t.Error("expected a generated ID")
	}
	if l.CellSize != model.DefaultCellSize {
		t.Errorf("expected default cell size, got %d", l.CellSize)
	}
	if l.Sections[0].BlockSize != (model.Size{Width: 2, Height: 2}) {
		t.Errorf("unexpected block size %+v", l.Sections[0].BlockSize)
	}
	if l.Blocks[0].Label != "A" {
		t.Errorf("expected label A, got %q", l.Blocks[0].Label)
	}
}

func TestLoadLayoutRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	data := []byte(`{"grid":{"cols":6,"rows":6},"sections":[]}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadLayout(path)
	if !errors.Is(err, model.ErrNoSections) {
		t.Fatalf("expected ErrNoSections, got %v", err)
	}
}

func TestLoadLayoutErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadLayout(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}

	yaml := filepath.Join(dir, "layout.yaml")
	if err := os.WriteFile(yaml, []byte("grid: {}"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadLayout(yaml); err == nil {
		t.Error("expected error for unsupported extension")
	}

	broken := filepath.Join(dir, "broken.toml")
	if err := os.WriteFile(broken, []byte("[grid\ncols ="), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadLayout(broken); err == nil {
		t.Error("expected error for malformed TOML")
	}
}

func TestSaveLayoutUnsupportedExtension(t *testing.T) {
	if err := SaveLayout(filepath.Join(t.TempDir(), "x.txt"), model.DefaultLayout()); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

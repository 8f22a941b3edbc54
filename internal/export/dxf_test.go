package export

import (
	"path/filepath"
	"testing"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/patchwork/internal/model"
)

func TestExportDXF_Entities(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.dxf")
	layout := model.DefaultLayout()

	if err := ExportDXF(path, layout, 10); err != nil {
		t.Fatalf("ExportDXF returned error: %v", err)
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		t.Fatalf("cannot reopen DXF: %v", err)
	}

	polylines, texts := 0, 0
	for _, ent := range drawing.Entities() {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			polylines++
			if len(e.Vertices) != 4 {
				t.Errorf("expected 4 vertices, got %d", len(e.Vertices))
			}
		case *entity.Text:
			texts++
		}
	}
	if want := len(layout.Sections) + len(layout.Blocks); polylines != want {
		t.Errorf("expected %d polylines, got %d", want, polylines)
	}
	if texts != len(layout.Blocks) {
		t.Errorf("expected %d labels, got %d", len(layout.Blocks), texts)
	}
}

func TestExportDXF_InvalidUnit(t *testing.T) {
	if err := ExportDXF(filepath.Join(t.TempDir(), "x.dxf"), model.DefaultLayout(), 0); err == nil {
		t.Fatal("expected error for zero unit")
	}
}

func TestRectVertices(t *testing.T) {
	got := rectVertices(model.NewRect(1, 2, 3, 4), 10)
	want := [][]float64{{10, -20}, {40, -20}, {40, -60}, {10, -60}}
	for i := range want {
		if got[i][0] != want[i][0] || got[i][1] != want[i][1] {
			t.Errorf("vertex %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

package export

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/piwi3910/patchwork/internal/model"
)

func TestExportLabels_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	if err := ExportLabels(path, model.DefaultLayout()); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}
	assertNonTrivialFile(t, path, 500)
}

func TestExportLabels_NoBlocks(t *testing.T) {
	layout := model.DefaultLayout()
	layout.Blocks = nil

	if err := ExportLabels(filepath.Join(t.TempDir(), "none.pdf"), layout); err == nil {
		t.Fatal("expected error for layout without blocks, got nil")
	}
}

func TestExportLabels_ManyBlocks(t *testing.T) {
	layout := model.DefaultLayout()
	layout.Blocks = nil
	for i := 0; i < 45; i++ {
		layout.Blocks = append(layout.Blocks, model.Block{
			ID: i + 1, Label: fmt.Sprintf("A rather long block label number %d", i+1),
			X: i % 6, Y: i, Width: 1, Height: 1,
		})
	}

	path := filepath.Join(t.TempDir(), "many.pdf")
	if err := ExportLabels(path, layout); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}
	assertNonTrivialFile(t, path, 500)
}

func TestCollectLabelInfos(t *testing.T) {
	layout := model.DefaultLayout()
	layout.Blocks[0].X, layout.Blocks[0].Y, layout.Blocks[0].Width, layout.Blocks[0].Height = 3, 40, 3, 3

	infos := CollectLabelInfos(layout)

	if len(infos) != 6 {
		t.Fatalf("expected 6 labels, got %d", len(infos))
	}
	first := infos[0]
	if first.BlockID != 1 || first.Label != "Purple" {
		t.Errorf("unexpected first label %+v", first)
	}
	if first.SectionID != 19 {
		t.Errorf("expected section 19, got %d", first.SectionID)
	}
	if first.LayoutID != layout.ID {
		t.Errorf("expected layout id %s, got %s", layout.ID, first.LayoutID)
	}
}

func TestCollectLabelInfos_UnlabelledBlock(t *testing.T) {
	layout := model.DefaultLayout()
	layout.Blocks = []model.Block{{ID: 9, X: 0, Y: 0, Width: 1, Height: 1}}

	infos := CollectLabelInfos(layout)
	if infos[0].Label != "Block 9" {
		t.Errorf("expected generated label, got %q", infos[0].Label)
	}
}

func TestLabelInfo_JSON(t *testing.T) {
	info := LabelInfo{LayoutID: "abc", BlockID: 2, Label: "Blue", SectionID: 2, X: 3, Y: 0, Width: 3, Height: 3}
	data, err := json.Marshal(info)
	if err != nil {
		t.Fatal(err)
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"layout", "block", "label", "section", "x", "y", "width", "height"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("QR payload missing %q", key)
		}
	}
}

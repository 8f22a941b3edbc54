package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/patchwork/internal/model"
	"github.com/piwi3910/patchwork/internal/project"
)

// execute runs the CLI with args and an isolated settings file.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "config.json")}, args...))
	err = root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.0.0", "abc123", "2024-01-01")
	defer SetVersion("", "", "")

	if version != "1.0.0" || commit != "abc123" || date != "2024-01-01" {
		t.Errorf("SetVersion did not update all fields: %q %q %q", version, commit, date)
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, log.DebugLevel)

	got := loggerFromContext(withLogger(context.Background(), l))
	assert.Same(t, l, got)
	assert.Equal(t, log.Default(), loggerFromContext(context.Background()))

	got.Debug("hello")
	assert.Contains(t, buf.String(), "hello")
}

func TestSectionsCmd(t *testing.T) {
	out, _, err := execute(t, "sections")
	require.NoError(t, err)

	assert.Contains(t, out, "Sections (26)")
	assert.Contains(t, out, "3,38 3x6  blocks 3x3")
}

func TestShowCmd(t *testing.T) {
	out, _, err := execute(t, "show")
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	assert.Contains(t, out, " 1 1 1 2 2 2", "row 0 shows blocks 1 and 2")
	assert.Contains(t, out, "no overlaps")
	assert.GreaterOrEqual(t, len(lines), 60)
}

func TestHoverCmd(t *testing.T) {
	out, _, err := execute(t, "hover", "2", "3", "40")
	require.NoError(t, err)

	assert.Contains(t, out, "19")
	assert.Contains(t, out, "3x3")
	assert.Contains(t, out, "3,40")
}

func TestHoverCmd_UnknownBlock(t *testing.T) {
	_, _, err := execute(t, "hover", "42", "0", "0")
	assert.ErrorContains(t, err, "unknown block 42")
}

func TestDropCmd(t *testing.T) {
	out, _, err := execute(t, "drop", "2", "3", "40")
	require.NoError(t, err)

	assert.Contains(t, out, "3,0 3x3 → 3,40 3x3")
}

func TestDropCmd_BadArgs(t *testing.T) {
	_, _, err := execute(t, "drop", "2", "x", "40")
	assert.ErrorContains(t, err, "invalid x")
}

func TestResizeCmd(t *testing.T) {
	out, _, err := execute(t, "resize", "2", "bottom", "--dy", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "3,0 3x3 → 3,0 3x5")
	assert.Contains(t, out, "3,3 3x3 → 3,5 3x1", "block 4 is pushed down")
}

func TestResizeCmd_NegativeDelta(t *testing.T) {
	out, _, err := execute(t, "resize", "6", "left", "--dx=-1")
	require.NoError(t, err)

	assert.Contains(t, out, "2,8 4x2 → 1,8 5x2")
}

func TestResizeCmd_BadEdge(t *testing.T) {
	_, _, err := execute(t, "resize", "2", "middle")
	assert.ErrorContains(t, err, "unknown edge")
}

func TestRunCmd(t *testing.T) {
	out, _, err := execute(t, "run", "drop:2@3,40", "resize:2:bottom:0,1", "undo")
	require.NoError(t, err)

	assert.Contains(t, out, "3,40 3x3")
}

func TestRunCmd_BadOp(t *testing.T) {
	_, _, err := execute(t, "run", "jump:2@3,40")
	assert.ErrorContains(t, err, "unknown op")
}

func TestRunCmd_IgnoredOpIsLogged(t *testing.T) {
	_, stderr, err := execute(t, "run", "undo")
	require.NoError(t, err)
	assert.Contains(t, stderr, "operation had no effect")
}

func TestVerboseLogsCommits(t *testing.T) {
	_, stderr, err := execute(t, "-v", "run", "drop:2@3,40")
	require.NoError(t, err)
	assert.Contains(t, stderr, "block=2")
}

func TestExportCmd(t *testing.T) {
	dir := t.TempDir()
	for _, format := range exportFormatNames() {
		t.Run(format, func(t *testing.T) {
			ext := map[string]string{
				"pdf": ".pdf", "labels": ".pdf", "xlsx": ".xlsx",
				"dxf": ".dxf", "layout": ".toml", "backup": ".json",
			}[format]
			path := filepath.Join(dir, format+ext)

			out, _, err := execute(t, "export", format, path, "--op", "drop:2@3,40")
			require.NoError(t, err)
			assert.Contains(t, out, path)

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}
}

func TestExportCmd_LayoutKeepsOps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moved.toml")
	_, _, err := execute(t, "export", "layout", path, "--op", "drop:2@3,40")
	require.NoError(t, err)

	l, err := project.LoadLayout(path)
	require.NoError(t, err)
	i := model.FindBlock(l.Blocks, 2)
	require.GreaterOrEqual(t, i, 0)
	assert.Equal(t, model.NewRect(3, 40, 3, 3), l.Blocks[i].Rect())

	out, _, err := execute(t, "--layout", path, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "3,40 3x3")
}

func TestExportCmd_UnknownFormat(t *testing.T) {
	_, _, err := execute(t, "export", "svg", filepath.Join(t.TempDir(), "x.svg"))
	assert.ErrorContains(t, err, "unknown format")
}

func TestImportSectionsCmd(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "sections.csv")
	data := "id,name,x,y,width,height,block width,block height\n" +
		"1,Left,0,0,3,60,3,2\n" +
		"2,Right,3,0,3,60,3,3\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(data), 0644))

	out, _, err := execute(t, "import-sections", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 sections")
	assert.Contains(t, out, "Sections (2)")

	layoutPath := filepath.Join(dir, "imported.json")
	_, _, err = execute(t, "import-sections", csvPath, "-o", layoutPath)
	require.NoError(t, err)

	l, err := project.LoadLayout(layoutPath)
	require.NoError(t, err)
	assert.Len(t, l.Sections, 2)
	assert.Len(t, l.Blocks, 6)
}

func TestImportSectionsCmd_Errors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := execute(t, "import-sections", filepath.Join(dir, "sections.png"))
	assert.ErrorContains(t, err, "unsupported section file")

	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("id,name,x,y,width,height\n1,A,0,0,0,4\n"), 0644))
	_, _, err = execute(t, "import-sections", bad)
	assert.ErrorContains(t, err, "import failed")
}

func TestImportSectionsFile_PicksImporter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a workbook"), 0644))

	result, err := importSectionsFile(path, defaultDXFUnit)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Errors)
	assert.Empty(t, result.Sections)
}

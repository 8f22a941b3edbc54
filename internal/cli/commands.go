package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/patchwork/internal/engine"
	"github.com/piwi3910/patchwork/internal/export"
	"github.com/piwi3910/patchwork/internal/importer"
	"github.com/piwi3910/patchwork/internal/model"
	"github.com/piwi3910/patchwork/internal/project"
)

const defaultDXFUnit = 10.0

func newSectionsCmd(opts *sessionOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "sections",
		Short: "List the section catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}
			printSections(cmd.OutOrStdout(), s.board.Sections())
			return nil
		},
	}
}

func printSections(w io.Writer, sections []model.Section) {
	printTitle(w, "Sections (%d)", len(sections))
	for _, sec := range sections {
		key := strconv.Itoa(sec.ID)
		if sec.Name != "" {
			key += " " + sec.Name
		}
		printKeyValue(w, key, fmt.Sprintf("%s  blocks %dx%d",
			formatRect(sec.Rect()), sec.BlockSize.Width, sec.BlockSize.Height))
	}
}

func newShowCmd(opts *sessionOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Render the grid with its blocks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}
			printBoard(cmd.OutOrStdout(), s)
			return nil
		},
	}
}

func printBoard(w io.Writer, s *session) {
	layout := s.board.Layout()
	name := layout.Name
	if name == "" {
		name = "Layout"
	}
	printTitle(w, "%s (%dx%d)", name, layout.Grid.Cols, layout.Grid.Rows)
	renderGrid(w, layout, layout.Blocks, s.board.Preview())
	printBlocks(w, layout.Blocks, engine.NewRegistry(layout.Sections))
	printOverlaps(w, s.board.Overlaps())
}

func newHoverCmd(opts *sessionOpts) *cobra.Command {
	var grid bool
	cmd := &cobra.Command{
		Use:   "hover ID X Y",
		Short: "Show where a block would land if dropped on a cell",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, x, y, err := parseTarget(args)
			if err != nil {
				return err
			}
			s, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if _, ok := s.board.Block(id); !ok {
				return fmt.Errorf("unknown block %d", id)
			}

			w := cmd.OutOrStdout()
			p := s.board.DragHover(id, x, y)
			printKeyValue(w, "section", fmt.Sprintf("%d %s", p.Section.ID, p.Section.Name))
			printKeyValue(w, "size", fmt.Sprintf("%dx%d", p.MorphedSize.Width, p.MorphedSize.Height))
			printKeyValue(w, "position", fmt.Sprintf("%d,%d", p.Position.X, p.Position.Y))
			if grid {
				printBoard(w, s)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&grid, "grid", "g", false, "render the grid with the preview")
	return cmd
}

func newDropCmd(opts *sessionOpts) *cobra.Command {
	var grid bool
	cmd := &cobra.Command{
		Use:   "drop ID X Y",
		Short: "Drop a block on a cell",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, x, y, err := parseTarget(args)
			if err != nil {
				return err
			}
			s, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}

			before := s.board.Blocks()
			if !s.board.Drop(id, x, y) {
				return fmt.Errorf("unknown block %d", id)
			}
			w := cmd.OutOrStdout()
			printChanges(w, before, s.board.Blocks())
			printOverlaps(w, s.board.Overlaps())
			if grid {
				printBoard(w, s)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&grid, "grid", "g", false, "render the grid after the drop")
	return cmd
}

func newResizeCmd(opts *sessionOpts) *cobra.Command {
	var dx, dy int
	var grid bool
	cmd := &cobra.Command{
		Use:   "resize ID EDGE",
		Short: "Drag a block's edge handle by whole cells",
		Long: `Drag a block's edge handle by whole cells and push or shrink the neighbours it overlaps.

EDGE is one of: top, bottom, left, right, top-left, top-right, bottom-left, bottom-right.`,
		Example: `  patchworkctl resize 2 bottom --dy 2
  patchworkctl resize 1 left --dx=-1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			edge, err := model.ParseEdge(args[1])
			if err != nil {
				return err
			}
			s, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}

			before := s.board.Blocks()
			if !s.board.Resize(id, edge, dx, dy) {
				return fmt.Errorf("unknown block %d", id)
			}
			w := cmd.OutOrStdout()
			printChanges(w, before, s.board.Blocks())
			printOverlaps(w, s.board.Overlaps())
			if grid {
				printBoard(w, s)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&dx, "dx", 0, "horizontal drag in cells")
	cmd.Flags().IntVar(&dy, "dy", 0, "vertical drag in cells")
	cmd.Flags().BoolVarP(&grid, "grid", "g", false, "render the grid after the resize")
	return cmd
}

func newRunCmd(opts *sessionOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "run OP...",
		Short: "Apply a sequence of operations and render the result",
		Long: `Apply a sequence of operations in order and render the result.

Operations:
  hover:ID@X,Y           preview a drop
  drop:ID@X,Y            drop a block
  resize:ID:EDGE:DX,DY   drag an edge handle
  cancel                 clear the preview
  undo | redo | reset`,
		Example: `  patchworkctl run drop:2@3,40 resize:2:bottom:0,1 undo`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), opts, args...)
			if err != nil {
				return err
			}
			printBoard(cmd.OutOrStdout(), s)
			return nil
		},
	}
}

// exportFormats maps a format name to its writer.
var exportFormats = map[string]func(path string, l model.Layout, cfg exportConfig) error{
	"pdf":    func(path string, l model.Layout, _ exportConfig) error { return export.ExportPDF(path, l) },
	"labels": func(path string, l model.Layout, _ exportConfig) error { return export.ExportLabels(path, l) },
	"xlsx":   func(path string, l model.Layout, _ exportConfig) error { return export.ExportXLSX(path, l) },
	"dxf":    func(path string, l model.Layout, c exportConfig) error { return export.ExportDXF(path, l, c.unit) },
	"layout": func(path string, l model.Layout, _ exportConfig) error { return project.SaveLayout(path, l) },
	"backup": func(path string, l model.Layout, c exportConfig) error {
		return project.ExportAllData(path, c.settings, &l)
	},
}

type exportConfig struct {
	unit     float64
	settings model.AppConfig
}

func exportFormatNames() []string {
	return []string{"pdf", "labels", "xlsx", "dxf", "layout", "backup"}
}

func newExportCmd(opts *sessionOpts) *cobra.Command {
	var unit float64
	cmd := &cobra.Command{
		Use:   "export FORMAT OUTPUT",
		Short: "Export the layout after applying --op operations",
		Long: `Export the layout after applying --op operations.

FORMAT is one of: ` + strings.Join(exportFormatNames(), ", ") + `.
The layout format writes TOML or JSON depending on the OUTPUT extension.`,
		Example: `  patchworkctl export pdf layout.pdf --op drop:2@3,40
  patchworkctl export layout quilt.toml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			write, ok := exportFormats[args[0]]
			if !ok {
				return fmt.Errorf("unknown format %q (want one of %s)", args[0], strings.Join(exportFormatNames(), ", "))
			}
			s, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}

			settings := model.DefaultAppConfig()
			if opts.configPath != "" {
				if settings, err = project.LoadAppConfig(opts.configPath); err != nil {
					return fmt.Errorf("load settings: %w", err)
				}
			}

			path := args[1]
			if err := write(path, s.board.Layout(), exportConfig{unit: unit, settings: settings}); err != nil {
				return fmt.Errorf("export %s: %w", args[0], err)
			}
			loggerFromContext(cmd.Context()).Info("exported", "format", args[0], "path", path)
			w := cmd.OutOrStdout()
			printSuccess(w, "Exported %s", args[0])
			printFile(w, path)
			return nil
		},
	}
	cmd.Flags().Float64Var(&unit, "unit", defaultDXFUnit, "DXF drawing units per cell")
	return cmd
}

func newImportSectionsCmd(opts *sessionOpts) *cobra.Command {
	var unit float64
	var output string
	cmd := &cobra.Command{
		Use:   "import-sections FILE",
		Short: "Replace the section catalog from a CSV, Excel or DXF file",
		Long: `Replace the layout's section catalog with sections read from a CSV, Excel or DXF file.

The blocks are kept. Use --output to save the resulting layout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}

			result, err := importSectionsFile(args[0], unit)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, warning := range result.Warnings {
				printWarning(w, "%s", warning)
			}
			if len(result.Errors) > 0 {
				return fmt.Errorf("import failed:\n  %s", strings.Join(result.Errors, "\n  "))
			}

			layout, err := importer.ApplySections(s.board.Layout(), result.Sections)
			if err != nil {
				return err
			}
			printSuccess(w, "Imported %d sections", len(layout.Sections))

			if output == "" {
				printSections(w, layout.Sections)
				return nil
			}
			if err := project.SaveLayout(output, layout); err != nil {
				return err
			}
			printFile(w, output)
			return nil
		},
	}
	cmd.Flags().Float64Var(&unit, "unit", defaultDXFUnit, "DXF drawing units per cell")
	cmd.Flags().StringVarP(&output, "output", "o", "", "save the resulting layout (.toml or .json)")
	return cmd
}

// importSectionsFile picks the importer by file extension.
func importSectionsFile(path string, unit float64) (importer.ImportResult, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt", ".tsv":
		return importer.ImportCSV(path), nil
	case ".xlsx", ".xlsm":
		return importer.ImportExcel(path), nil
	case ".dxf":
		return importer.ImportDXF(path, unit), nil
	}
	return importer.ImportResult{}, fmt.Errorf("unsupported section file %q (want .csv, .xlsx or .dxf)", path)
}

// printChanges lists blocks whose footprint differs between before and after.
func printChanges(w io.Writer, before, after []model.Block) {
	changed := false
	for _, b := range after {
		i := model.FindBlock(before, b.ID)
		if i < 0 || before[i].Rect() == b.Rect() {
			continue
		}
		changed = true
		printKeyValue(w, fmt.Sprintf("%d %s", b.ID, b.Label),
			fmt.Sprintf("%s %s %s", formatRect(before[i].Rect()), iconArrow, formatRect(b.Rect())))
	}
	if !changed {
		printInfo(w, "no blocks moved")
	}
}

func parseTarget(args []string) (id, x, y int, err error) {
	if id, err = parseID(args[0]); err != nil {
		return 0, 0, 0, err
	}
	if x, err = strconv.Atoi(args[1]); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid x %q", args[1])
	}
	if y, err = strconv.Atoi(args[2]); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid y %q", args[2])
	}
	return id, x, y, nil
}

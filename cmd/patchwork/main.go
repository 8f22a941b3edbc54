// Patchwork, a grid block layout editor.
//
// A cross-platform desktop application for arranging blocks on a grid of
// sections. Dropped blocks take the canonical size of the section they land
// in; resizing a block pushes its neighbours out of the way.
//
// Build:
//   go build -o patchwork ./cmd/patchwork
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o patchwork.exe ./cmd/patchwork
//   GOOS=darwin  GOARCH=amd64 go build -o patchwork-darwin ./cmd/patchwork
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/charmbracelet/log"
	fynetooltip "github.com/dweymouth/fyne-tooltip"

	"github.com/piwi3910/patchwork/internal/model"
	"github.com/piwi3910/patchwork/internal/project"
	"github.com/piwi3910/patchwork/internal/ui"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           log.InfoLevel,
	})
	if os.Getenv("PATCHWORK_DEBUG") != "" {
		logger.SetLevel(log.DebugLevel)
	}

	configPath := project.DefaultConfigPath()
	cfg, err := project.LoadAppConfig(configPath)
	if err != nil {
		logger.Warn("using default settings", "path", configPath, "err", err)
		cfg = model.DefaultAppConfig()
	}

	layout, err := project.LoadLayout(cfg.LayoutPath)
	layoutPath := cfg.LayoutPath
	if err != nil {
		logger.Warn("using built-in layout", "path", cfg.LayoutPath, "err", err)
		layout, layoutPath = model.DefaultLayout(), ""
	}

	application := app.NewWithID("com.piwi3910.patchwork")
	window := application.NewWindow("Patchwork")

	appUI := ui.NewApp(application, window, cfg, configPath, layout, layoutPath, logger)
	appUI.SetupMenus()
	window.SetContent(fynetooltip.AddWindowToolTipLayer(appUI.Build(), window.Canvas()))
	window.Resize(fyne.NewSize(1100, 800))
	window.CenterOnScreen()
	window.ShowAndRun()
}

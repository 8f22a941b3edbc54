package cli

import (
	"context"
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/patchwork/internal/project"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version. It is
// called by the main package with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the patchworkctl CLI and returns an error if any command
// fails.
//
// Logging goes to stderr at info level, or debug level with --verbose (-v).
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}

// NewRootCmd builds the command tree. Output goes to the command's out and
// err writers so callers can redirect it.
func NewRootCmd() *cobra.Command {
	var verbose bool
	opts := &sessionOpts{}

	root := &cobra.Command{
		Use:          "patchworkctl",
		Short:        "Patchworkctl moves and resizes blocks on a sectioned grid",
		Long:         `Patchworkctl loads a grid layout, applies hover, drop and resize operations to its blocks, and renders or exports the result.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(withLogger(ctx, newLogger(cmd.ErrOrStderr(), level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("patchworkctl %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&opts.layoutPath, "layout", "l", "", "layout file (.toml or .json); default is the configured or built-in layout")
	root.PersistentFlags().StringVar(&opts.configPath, "config", project.DefaultConfigPath(), "settings file")
	root.PersistentFlags().StringArrayVar(&opts.ops, "op", nil, "operation to apply first, e.g. drop:2@3,40 (repeatable)")

	root.AddCommand(newSectionsCmd(opts))
	root.AddCommand(newShowCmd(opts))
	root.AddCommand(newHoverCmd(opts))
	root.AddCommand(newDropCmd(opts))
	root.AddCommand(newResizeCmd(opts))
	root.AddCommand(newRunCmd(opts))
	root.AddCommand(newExportCmd(opts))
	root.AddCommand(newImportSectionsCmd(opts))

	return root
}

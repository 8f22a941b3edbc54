package cli

import (
	"context"
	"fmt"

	"github.com/piwi3910/patchwork/internal/board"
	"github.com/piwi3910/patchwork/internal/model"
	"github.com/piwi3910/patchwork/internal/project"
)

// sessionOpts holds the flags shared by every command.
type sessionOpts struct {
	layoutPath string
	configPath string
	ops        []string
}

// session is a board built for one command run.
type session struct {
	board  *board.Board
	layout model.Layout
}

// openSession loads settings and the layout, builds a board and applies the
// --op operations followed by extra.
func openSession(ctx context.Context, opts *sessionOpts, extra ...string) (*session, error) {
	logger := loggerFromContext(ctx)

	cfg := model.DefaultAppConfig()
	if opts.configPath != "" {
		loaded, err := project.LoadAppConfig(opts.configPath)
		if err != nil {
			return nil, fmt.Errorf("load settings: %w", err)
		}
		cfg = loaded
	}

	path := opts.layoutPath
	if path == "" {
		path = cfg.LayoutPath
	}
	layout, err := project.LoadLayout(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyToLayout(&layout)
	logger.Debug("layout loaded", "path", path, "sections", len(layout.Sections), "blocks", len(layout.Blocks))

	ops, err := ParseOps(append(append([]string(nil), opts.ops...), extra...))
	if err != nil {
		return nil, err
	}

	b := board.New(layout, board.WithLogger(logger), board.WithHistoryDepth(cfg.HistoryDepth))
	for _, op := range ops {
		if !op.Apply(b) {
			logger.Warn("operation had no effect", "op", op.String())
		}
	}
	return &session{board: b, layout: layout}, nil
}

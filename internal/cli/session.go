package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/morozRed/cratemap/internal/config"
	"github.com/morozRed/cratemap/internal/graph"
	"github.com/morozRed/cratemap/internal/logging"
	"github.com/morozRed/cratemap/internal/nav"
	"github.com/morozRed/cratemap/internal/rustdoc"
)

var errNoIndex = errors.New("no index given (use --index or set index in " + config.FileName + ")")

type configKey struct{}

// setupCommand loads the config, layers CRATEMAP_* variables and flags over
// it, and installs the logger on the command context.
func setupCommand(cmd *cobra.Command, args []string) error {
	configPath, err := OptionalStringFlag(cmd, "config")
	if err != nil {
		return err
	}
	if err := config.LoadDotEnv(""); err != nil {
		return err
	}
	// init creates the file, so it may not exist yet.
	cfg, err := config.Load(configPath, configPath != "" && cmd.Name() != "init")
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return err
	}

	if index, err := OptionalStringFlag(cmd, "index"); err != nil {
		return err
	} else if index != "" {
		cfg.Index = index
	}
	if level, err := OptionalStringFlag(cmd, "log-level"); err != nil {
		return err
	} else if level != "" {
		cfg.LogLevel = level
	}
	if flag := cmd.Flags().Lookup("workers"); flag != nil && flag.Changed {
		workers, err := cmd.Flags().GetInt("workers")
		if err != nil {
			return fmt.Errorf("failed to read --workers flag: %w", err)
		}
		cfg.Workers = workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	noColor, err := OptionalBoolFlag(cmd, "no-color", false)
	if err != nil {
		return err
	}
	logger, err := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		NoColor: noColor,
		Writer:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)
	ctx = context.WithValue(ctx, configKey{}, cfg)
	cmd.SetContext(ctx)
	return nil
}

func commandConfig(cmd *cobra.Command) config.Config {
	if ctx := cmd.Context(); ctx != nil {
		if cfg, ok := ctx.Value(configKey{}).(config.Config); ok {
			return cfg
		}
	}
	return config.Default()
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// wantJSON is true when --json is set or the config asks for JSON output.
func wantJSON(cmd *cobra.Command) (bool, error) {
	asJSON, err := OptionalBoolFlag(cmd, "json", false)
	if err != nil {
		return false, err
	}
	return asJSON || commandConfig(cmd).Format == config.FormatJSON, nil
}

type session struct {
	cfg       config.Config
	logger    *slog.Logger
	crateName string
	indexSize int64
	crate     *rustdoc.Crate
	graph     *graph.Graph
	lookup    *nav.Lookup
	loadTime  time.Duration
}

// openSession loads the configured index and builds its complete graph. A
// malformed root aborts here, before any command output.
func openSession(cmd *cobra.Command) (*session, error) {
	start := time.Now()
	ctx := commandContext(cmd)
	cfg := commandConfig(cmd)
	if cfg.Index == "" {
		return nil, errNoIndex
	}

	info, err := os.Stat(cfg.Index)
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}
	asJSON, err := wantJSON(cmd)
	if err != nil {
		return nil, err
	}
	progress := newProgressReporter(cmd.ErrOrStderr(), "cratemap", asJSON)

	progress.Step("decoding " + cfg.Index)
	crate, err := rustdoc.Load(cfg.Index)
	if err != nil {
		return nil, fmt.Errorf("failed to load index: %w", err)
	}
	crateName, err := crate.RootName()
	if err != nil {
		return nil, fmt.Errorf("malformed index %s: %w", cfg.Index, err)
	}
	logger := logging.FromContext(ctx).With("crate", crateName)

	progress.Step(fmt.Sprintf("building graph over %d items", len(crate.Index)))
	g, err := graph.BuildParallel(ctx, crate, cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("failed to build graph: %w", err)
	}
	if dropped := g.Dropped(); dropped > 0 {
		logger.Debug("dropped references to items outside the index", "count", dropped)
	}
	progress.Done()

	s := &session{
		cfg:       cfg,
		logger:    logger,
		crateName: crateName,
		indexSize: info.Size(),
		crate:     crate,
		graph:     g,
		lookup:    nav.NewLookup(crate),
		loadTime:  time.Since(start),
	}
	logger.Debug("index loaded", "items", len(crate.Index), "edges", g.Len(), "duration", s.loadTime)
	return s, nil
}

func (s *session) resolveItem(query string) (rustdoc.Id, error) {
	return s.lookup.ResolveSingle(query)
}

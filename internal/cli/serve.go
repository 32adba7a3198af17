package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/morozRed/tagjump/internal/mcp"
	"github.com/morozRed/tagjump/internal/tags"
	"github.com/morozRed/tagjump/internal/watch"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func RunServe(cmd *cobra.Command, args []string) error {
	cfg, err := LoadSettings(cmd)
	if err != nil {
		return err
	}
	noWatch, err := OptionalBoolFlag(cmd, "no-watch", false)
	if err != nil {
		return err
	}
	logger := cfg.NewLogger()

	store, err := tags.NewStore(cfg.TagsFile)
	if err != nil {
		return err
	}
	if warnings := store.Current().Warnings; len(warnings) > 0 {
		logger.Warn("malformed tag lines skipped", "path", cfg.TagsFile, "count", len(warnings))
	}

	var watcher *watch.Watcher
	if cfg.Watch.Enabled && !noWatch {
		watcher, err = watch.New(store.Path(), cfg.Watch.Debounce.Duration, func() error {
			snap, err := store.Reload()
			if err != nil {
				return err
			}
			if len(snap.Warnings) > 0 {
				logger.Warn("malformed tag lines skipped", "path", store.Path(), "count", len(snap.Warnings))
			}
			return nil
		}, logger)
		if err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	version := "dev"
	if cmd != nil && cmd.Root().Version != "" {
		version = cmd.Root().Version
	}
	server := mcp.NewServer(store, version, cfg.SuggestLimit, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// stdin closing ends the session, which also stops the watcher
		defer cancel()
		err := server.Serve(gctx, inReader(cmd), outWriter(cmd))
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	if watcher != nil {
		g.Go(func() error {
			return watcher.Run(gctx)
		})
	}

	err = g.Wait()
	logger.Info("server stopped")
	return err
}

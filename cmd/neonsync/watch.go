// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/petar-djukic/neonsync/internal/report"
	"github.com/petar-djukic/neonsync/internal/watch"
	"github.com/petar-djukic/neonsync/pkg/neonsync"
)

// newWatchCmd creates the "watch" command.
func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run sync whenever the catalog or an artifact changes",
		Args:  cobra.NoArgs,
		RunE:  runWatch,
	}

	cmd.Flags().Duration("debounce", watch.DefaultDebounce, "Quiet period before re-running")

	return cmd
}

// runWatch syncs once, then again after every settled change. A failed
// pass is logged and watching continues.
func runWatch(cmd *cobra.Command, args []string) error {
	debounce, _ := cmd.Flags().GetDuration("debounce")

	format, err := outputFormat()
	if err != nil {
		return err
	}
	s, err := newSyncer()
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	pass := func(ctx context.Context, changed []string) error {
		if len(changed) > 0 {
			logger.Info("sources changed", zap.Strings("paths", changed))
		}
		res, err := s.Sync(ctx, neonsync.SyncOptions{})
		if err != nil {
			logger.Error("sync failed", zap.Error(err))
			return nil
		}
		if err := report.Write(cmd.OutOrStdout(), format, res); err != nil {
			return err
		}
		if err := res.Err(); err != nil {
			logger.Warn("sync incomplete", zap.Error(err))
		}
		return nil
	}

	if err := pass(ctx, nil); err != nil {
		return err
	}
	w := &watch.Watcher{Paths: s.Sources(), Debounce: debounce, Logger: logger}
	return w.Run(ctx, pass)
}

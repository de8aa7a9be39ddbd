// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/petar-djukic/neonsync/internal/report"
	"github.com/petar-djukic/neonsync/pkg/neonsync"
)

// newSyncCmd creates the "sync" command.
func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Insert stubs for missing intrinsics",
		Long: "Sync reads the catalog and writes a patched copy of each artifact in which every " +
			"missing intrinsic has a placeholder stub. Source files are never modified.",
		Args: cobra.NoArgs,
		RunE: runSync,
	}

	cmd.Flags().Bool("dry-run", false, "Report insertions without writing patched copies")
	cmd.Flags().Bool("diff", false, "Include a line diff of each patched copy")

	return cmd
}

// runSync executes one synchronization pass. Every artifact is attempted
// before a failure is reported.
func runSync(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	diff, _ := cmd.Flags().GetBool("diff")

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

	res, err := s.Sync(ctx, neonsync.SyncOptions{DryRun: dryRun, Diff: diff})
	if err != nil {
		return err
	}
	if err := report.Write(cmd.OutOrStdout(), format, res); err != nil {
		return err
	}
	return res.Err()
}

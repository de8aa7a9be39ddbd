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

// newCoverageCmd creates the "coverage" command.
func newCoverageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coverage",
		Short: "Report implementation coverage",
		Long: "Coverage reports the share of header declarations that are implemented, the share of " +
			"test bodies that are not placeholders, and optionally catalog coverage by group.",
		Args: cobra.NoArgs,
		RunE: runCoverage,
	}

	cmd.Flags().Bool("groups", false, "Break catalog coverage down by group")

	return cmd
}

func runCoverage(cmd *cobra.Command, args []string) error {
	groups, _ := cmd.Flags().GetBool("groups")

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

	res, err := s.Coverage(ctx, neonsync.CoverageOptions{Groups: groups})
	if err != nil {
		return err
	}
	if err := report.Write(cmd.OutOrStdout(), format, res); err != nil {
		return err
	}
	return res.Err()
}

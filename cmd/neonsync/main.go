// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command neonsync keeps neon2rvv.h and its tests in step with the NEON
// intrinsic catalog.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/petar-djukic/neonsync/pkg/neonsync"
)

const version = "0.1.0"

// logger is built in PersistentPreRunE and shared by every command.
var logger = zap.NewNop()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd creates the root command with its global flags and
// subcommands.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "neonsync",
		Short: "Synchronize neon2rvv artifacts with the intrinsic catalog",
		Long: "neonsync finds catalog intrinsics missing from neon2rvv.h, tests/impl.h, and tests/impl.cpp, " +
			"writes patched copies with placeholder stubs, and reports implementation coverage.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if viper.GetBool("verbose") {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			l, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	// Global flags.
	flags := rootCmd.PersistentFlags()
	flags.String("root", "", "Repository root (default: enclosing git worktree)")
	flags.String("catalog", neonsync.DefaultCatalog, "Intrinsic catalog CSV")
	flags.String("header", neonsync.DefaultHeader, "Translation header")
	flags.String("test-decl", neonsync.DefaultTestDecl, "Test declaration list")
	flags.String("test-impl", neonsync.DefaultTestImpl, "Test implementation file")
	flags.String("out-dir", "", "Directory for patched copies (default: repository root)")
	flags.String("out-prefix", "modified_", "File name prefix for patched copies")
	flags.String("match", "literal", "Presence matching: literal or structured")
	flags.String("test-impl-type", "NEON2RVV_TEST_IMPL", "Fixture type in test stubs")
	flags.Int("decl-width", 79, "Column width of test declaration stubs")
	flags.StringSlice("exclude", []string{"p8", "p16", "p32", "p64", "f16"}, "Type tags not expected to be implemented (comma or space separated in NEONSYNC_EXCLUDE)")
	flags.StringP("format", "o", "text", "Output format: text, json, or yaml")
	flags.BoolP("verbose", "v", false, "Enable debug logging")

	// Bind flags to viper.
	for _, name := range []string{
		"root", "catalog", "header", "test-decl", "test-impl", "out-dir", "out-prefix",
		"match", "test-impl-type", "decl-width", "exclude", "format", "verbose",
	} {
		viper.BindPFlag(name, flags.Lookup(name))
	}

	// Env vars: NEONSYNC_CATALOG, NEONSYNC_MATCH, etc.
	viper.SetEnvPrefix("NEONSYNC")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	// Config file.
	viper.SetConfigName(".neonsync")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.ReadInConfig() // Ignore error; config file is optional.

	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newCoverageCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print neonsync version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "neonsync %s\n", version)
		},
	}
}

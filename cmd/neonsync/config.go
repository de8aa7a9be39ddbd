// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/petar-djukic/neonsync/internal/report"
	"github.com/petar-djukic/neonsync/pkg/neonsync"
)

// envKeyReplacer maps flag names like "test-decl" to NEONSYNC_TEST_DECL.
var envKeyReplacer = strings.NewReplacer("-", "_")

// newSyncer builds a Syncer from the bound flags, environment, and config
// file.
func newSyncer() (*neonsync.Syncer, error) {
	return neonsync.New(neonsync.Config{
		Root:      viper.GetString("root"),
		Catalog:   viper.GetString("catalog"),
		Header:    viper.GetString("header"),
		TestDecl:  viper.GetString("test-decl"),
		TestImpl:  viper.GetString("test-impl"),
		OutDir:    viper.GetString("out-dir"),
		OutPrefix: viper.GetString("out-prefix"),
		Match:     viper.GetString("match"),
		ImplType:  viper.GetString("test-impl-type"),
		DeclWidth: viper.GetInt("decl-width"),
		Exclude:   splitTags(viper.GetStringSlice("exclude")),
		Logger:    logger,
	})
}

// outputFormat returns the validated --format value.
func outputFormat() (report.Format, error) {
	return report.ParseFormat(viper.GetString("format"))
}

// splitTags flattens comma-separated entries. Environment values arrive as
// one whitespace-split list, so NEONSYNC_EXCLUDE=p8,p16 would otherwise be
// a single tag.
func splitTags(values []string) []string {
	var tags []string
	for _, v := range values {
		for _, tag := range strings.Split(v, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

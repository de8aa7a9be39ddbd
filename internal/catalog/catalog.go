// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package catalog parses the intrinsic catalog, a CSV file with the columns
// ReturnType, Name, Arguments, Group and a header row.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/petar-djukic/neonsync/pkg/types"
)

const minFields = 4

// groupSeparator splits a group path into primary and secondary parts.
const groupSeparator = " / "

// Parse reads catalog rows in file order. The first row is a header and is
// skipped. A row with fewer than four fields fails the whole parse; no
// partial catalog is returned. Duplicate names are kept.
func Parse(r io.Reader) ([]types.CatalogEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var entries []types.CatalogEntry
	header := true
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing catalog: %w", err)
		}
		if header {
			header = false
			continue
		}
		if len(record) < minFields {
			line, _ := cr.FieldPos(0)
			return nil, &types.MalformedCatalogError{Line: line, Fields: len(record)}
		}
		entries = append(entries, types.CatalogEntry{
			ReturnType: strings.TrimSpace(record[0]),
			Name:       strings.TrimSpace(record[1]),
			Arguments:  strings.TrimSpace(record[2]),
			Group:      strings.TrimSpace(record[3]),
		})
	}
	return entries, nil
}

// Load opens and parses the catalog at path.
func Load(path string) ([]types.CatalogEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &types.IOUnavailableError{Path: path, Err: err}
	}
	defer f.Close()
	return Parse(f)
}

// PrimaryGroup returns the top-level part of a group path.
func PrimaryGroup(group string) string {
	if i := strings.Index(group, groupSeparator); i >= 0 {
		return group[:i]
	}
	return group
}

// Names returns the set of intrinsic names in the catalog.
func Names(entries []types.CatalogEntry) map[string]bool {
	names := make(map[string]bool, len(entries))
	for _, e := range entries {
		names[e.Name] = true
	}
	return names
}

// Groups returns the sorted distinct group paths in the catalog.
func Groups(entries []types.CatalogEntry) []string {
	seen := make(map[string]bool)
	var groups []string
	for _, e := range entries {
		if !seen[e.Group] {
			seen[e.Group] = true
			groups = append(groups, e.Group)
		}
	}
	sort.Strings(groups)
	return groups
}

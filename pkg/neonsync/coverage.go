// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package neonsync

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/petar-djukic/neonsync/internal/artifact"
	"github.com/petar-djukic/neonsync/internal/catalog"
	"github.com/petar-djukic/neonsync/internal/coverage"
	"github.com/petar-djukic/neonsync/pkg/types"
)

// CoverageOptions controls what a Coverage call computes.
type CoverageOptions struct {
	Groups bool // Break catalog coverage down by group
}

// CoverageResult collects every coverage figure that could be computed.
// Each part is independent; Errors lists the parts that failed.
type CoverageResult struct {
	Header *coverage.Summary     `json:"header,omitempty" yaml:"header,omitempty"`
	Tests  *coverage.TestSummary `json:"tests,omitempty" yaml:"tests,omitempty"`
	Total  *coverage.Group       `json:"total,omitempty" yaml:"total,omitempty"`
	Groups []coverage.Group      `json:"groups,omitempty" yaml:"groups,omitempty"`
	Errors []string              `json:"errors,omitempty" yaml:"errors,omitempty"`

	errs []error
}

// Err joins the errors of all failed parts.
func (r *CoverageResult) Err() error {
	return errors.Join(r.errs...)
}

func (r *CoverageResult) fail(part string, err error) {
	err = fmt.Errorf("%s: %w", part, err)
	r.errs = append(r.errs, err)
	r.Errors = append(r.Errors, err.Error())
}

// RenderText prints the figures in the layout of the coverage scripts.
func (r *CoverageResult) RenderText(w io.Writer) error {
	if r.Header != nil {
		fmt.Fprintf(w, "expected_impl_cnt: %d\n", r.Header.Expected)
		fmt.Fprintf(w, "is_impl_cnt: %d\n", r.Header.Implemented)
		fmt.Fprintf(w, "ratio: %.4f\n", r.Header.Ratio)
	}
	if r.Tests != nil {
		fmt.Fprintf(w, "tests: %d / %d implemented (%.4f)\n", r.Tests.Implemented, r.Tests.Expected, r.Tests.Ratio)
	}
	if r.Total != nil {
		fmt.Fprintf(w, "\nNeon2RVV coverage:\nTotal %d / %d\n", r.Total.Implemented, r.Total.Total)
	}
	for _, g := range r.Groups {
		fmt.Fprintf(w, "%s\t %d / %d\n", g.Name, g.Implemented, g.Total)
		for _, sg := range g.Groups {
			fmt.Fprintf(w, "\t %s\t %d / %d\n", sg.Name, sg.Implemented, sg.Total)
		}
		fmt.Fprintln(w)
	}
	for _, e := range r.Errors {
		fmt.Fprintf(w, "error: %s\n", e)
	}
	return nil
}

// Coverage computes header coverage, test coverage, and, on request,
// catalog coverage by group. A cancelled ctx stops the call between parts.
func (s *Syncer) Coverage(ctx context.Context, opts CoverageOptions) (*CoverageResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res := &CoverageResult{}

	var implemented map[string]bool
	if h, err := artifact.Read(types.KindHeader, s.cfg.Header); err != nil {
		res.fail("header", err)
	} else {
		implemented = coverage.ImplementedNames(h.Content)
		sum, err := coverage.Header(h.Content, s.cfg.Exclude)
		if err != nil {
			res.fail("header", err)
		} else {
			res.Header = &sum
		}
	}

	if ti, err := artifact.Read(types.KindTestImpl, s.cfg.TestImpl); err != nil {
		res.fail("tests", err)
	} else if sum, err := coverage.Tests(ti.Content); err != nil {
		res.fail("tests", err)
	} else {
		res.Tests = &sum
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Groups && implemented != nil {
		entries, err := catalog.Load(s.cfg.Catalog)
		if err != nil {
			res.fail("catalog", err)
		} else {
			total := coverage.Total(entries, implemented)
			res.Total = &total
			res.Groups = coverage.Groups(entries, implemented)
		}
	}

	if err := res.Err(); err != nil {
		s.log.Warn("coverage incomplete", zap.Error(err))
	}
	return res, nil
}

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package neonsync keeps the NEON translation header and its test
// scaffolding in step with the intrinsic catalog. It writes patched copies
// of each artifact with placeholder stubs for missing intrinsics and
// reports how much of the catalog is implemented.
package neonsync

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/petar-djukic/neonsync/internal/artifact"
	"github.com/petar-djukic/neonsync/internal/coverage"
	"github.com/petar-djukic/neonsync/internal/git"
	"github.com/petar-djukic/neonsync/internal/stub"
	"github.com/petar-djukic/neonsync/internal/stubsync"
	"github.com/petar-djukic/neonsync/pkg/types"
)

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Default artifact locations, relative to the repository root.
const (
	DefaultCatalog  = "scripts/neon_scrapper/neon_intrinsics.csv"
	DefaultHeader   = "neon2rvv.h"
	DefaultTestDecl = "tests/impl.h"
	DefaultTestImpl = "tests/impl.cpp"
)

// Config configures a Syncer. Relative paths are resolved against Root.
type Config struct {
	Root      string   // Repository root; empty = enclosing git worktree, else the working directory
	Catalog   string   `validate:"required"`
	Header    string   `validate:"required"`
	TestDecl  string   `validate:"required"`
	TestImpl  string   `validate:"required"`
	OutDir    string   // Directory for patched copies (default Root)
	OutPrefix string   // Prefix for patched copies (default "modified_")
	Match     string   `validate:"omitempty,oneof=literal structured"`
	ImplType  string   `validate:"omitempty,cident"` // Test fixture type (default NEON2RVV_TEST_IMPL)
	DeclWidth int      `validate:"gte=0"`            // Test-declaration stub width (default 79)
	Exclude   []string // Unsupported type tags for header coverage (default p8,p16,p32,p64,f16)

	Logger *zap.Logger `validate:"-"`
}

// cIdent matches the type names a test stub can spell after "const".
var cIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_:]*$`)

var (
	validatorInstance *validator.Validate
	validatorOnce     sync.Once
)

func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInstance = validator.New()
		validatorInstance.RegisterValidation("cident", func(fl validator.FieldLevel) bool {
			return cIdent.MatchString(fl.Field().String())
		})
	})
	return validatorInstance
}

// Syncer runs synchronization and coverage passes for one repository.
type Syncer struct {
	cfg  Config
	mode stubsync.MatchMode
	log  *zap.Logger
}

// New validates cfg, fills defaults, and resolves every path.
func New(cfg Config) (*Syncer, error) {
	if err := getValidator().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	mode, err := stubsync.ParseMatchMode(cfg.Match)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := resolvePaths(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	applyDefaults(&cfg)

	return &Syncer{cfg: cfg, mode: mode, log: cfg.Logger}, nil
}

// Config returns the resolved configuration.
func (s *Syncer) Config() Config {
	return s.cfg
}

// Sources returns the catalog and artifact paths, in that order.
func (s *Syncer) Sources() []string {
	return []string{s.cfg.Catalog, s.cfg.Header, s.cfg.TestDecl, s.cfg.TestImpl}
}

func (s *Syncer) source(kind types.ArtifactKind) string {
	switch kind {
	case types.KindHeader:
		return s.cfg.Header
	case types.KindTestDecl:
		return s.cfg.TestDecl
	default:
		return s.cfg.TestImpl
	}
}

func (s *Syncer) stubOptions() stub.Options {
	return stub.Options{DeclWidth: s.cfg.DeclWidth, ImplType: s.cfg.ImplType}
}

// resolvePaths fixes Root and makes every path absolute.
func resolvePaths(cfg *Config) error {
	if cfg.Root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cfg.Root = wd
		if root, err := git.FindRoot(wd); err == nil {
			cfg.Root = root
		}
	}

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return fmt.Errorf("resolving root: %w", err)
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return fmt.Errorf("root %q does not exist or is not a directory", cfg.Root)
	}
	cfg.Root = root

	for _, p := range []*string{&cfg.Catalog, &cfg.Header, &cfg.TestDecl, &cfg.TestImpl, &cfg.OutDir} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(root, *p)
		}
	}
	return nil
}

// applyDefaults fills in zero-value fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.OutDir == "" {
		cfg.OutDir = cfg.Root
	}
	if cfg.OutPrefix == "" {
		cfg.OutPrefix = artifact.DefaultPrefix
	}
	if cfg.ImplType == "" {
		cfg.ImplType = stub.DefaultImplType
	}
	if cfg.DeclWidth == 0 {
		cfg.DeclWidth = stub.DefaultDeclWidth
	}
	if len(cfg.Exclude) == 0 {
		cfg.Exclude = coverage.DefaultExclude
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
}

package generator

import (
	"fmt"
	"os"

	"github.com/pablor21/enumlabel/config"
	"github.com/pablor21/enumlabel/logger"
	"github.com/pablor21/enumlabel/parser"
)

// ProcessContext carries the settings of one generator run
type ProcessContext struct {
	Config *config.Config
	Logger logger.Logger
	Dir    string // directory package patterns are resolved from; "" is the working directory
	Check  bool   // only compare, never write
}

// ProcessResult lists what a run found and touched
type ProcessResult struct {
	Packages []*parser.Package
	Written  []string // files written or removed
	Stale    []string // packages whose output is out of date, in check mode
}

// Process runs the generator with the default configuration
func Process() (*ProcessResult, error) {
	return ProcessWithConfig(config.NewDefaultConfig())
}

// ProcessWithConfig runs the generator with the provided configuration
func ProcessWithConfig(cfg *config.Config) (*ProcessResult, error) {
	ctx := &ProcessContext{
		Config: cfg,
		Logger: logger.New(os.Stderr, cfg.LogLevel),
	}
	return ProcessWithContext(ctx)
}

// ProcessWithContext loads the configured packages and generates their files
func ProcessWithContext(ctx *ProcessContext) (*ProcessResult, error) {
	if ctx.Logger == nil {
		ctx.Logger = logger.NewDefaultLogger()
	}
	if err := ctx.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	pkgs, err := parser.NewParser(ctx.Config, ctx.Logger).Load(ctx.Dir, ctx.Config.ResolvedPackages()...)
	if err != nil {
		return nil, err
	}
	return generatePackages(ctx, pkgs)
}

func generatePackages(ctx *ProcessContext, pkgs []*parser.Package) (*ProcessResult, error) {
	res := &ProcessResult{Packages: pkgs}
	gen := New(ctx.Config, ctx.Logger)

	for _, pkg := range pkgs {
		if ctx.Check {
			ok, err := gen.Check(pkg)
			if err != nil {
				return nil, fmt.Errorf("package %s: %w", pkg.Path, err)
			}
			if !ok {
				res.Stale = append(res.Stale, pkg.Path)
			}
			continue
		}

		path, err := gen.Write(pkg)
		if err != nil {
			return nil, fmt.Errorf("package %s: %w", pkg.Path, err)
		}
		if path != "" {
			res.Written = append(res.Written, path)
		}
	}
	return res, nil
}

// Package parser finds annotated enum types and their constants in Go packages.
package parser

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pablor21/enumlabel/annotations"
	"github.com/pablor21/enumlabel/config"
	"github.com/pablor21/enumlabel/logger"
	"golang.org/x/tools/go/packages"
)

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedTypesSizes

// Parser scans Go packages and extracts enum information
type Parser struct {
	config    *config.Config
	specs     annotations.Specs
	logger    logger.Logger
	validator *annotations.Validator
}

func NewParser(cfg *config.Config, log logger.Logger) *Parser {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	if log == nil {
		log = logger.Discard()
	}
	specs := annotations.DefaultSpecs()
	return &Parser{
		config:    cfg,
		specs:     specs,
		logger:    log.WithTag("scan"),
		validator: annotations.NewValidator(cfg.Validator.Action, cfg.Validator.Mode, cfg.AnnotationPrefix, specs),
	}
}

// Validator returns the validator holding the annotation findings of every parsed package.
func (p *Parser) Validator() *annotations.Validator {
	return p.validator
}

// Load loads the packages matching patterns, resolved from dir, and parses each one.
func (p *Parser) Load(dir string, patterns ...string) ([]*Package, error) {
	cfg := &packages.Config{
		Mode: loadMode,
		Dir:  dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages matched %v", patterns)
	}

	var result []*Package
	for _, pkg := range pkgs {
		parsed, err := p.ParsePackage(pkg)
		if err != nil {
			return nil, fmt.Errorf("failed to parse package %s: %w", pkg.PkgPath, err)
		}
		result = append(result, parsed)
	}

	if p.validator.ShouldFail() {
		return nil, fmt.Errorf("annotation validation failed:\n%s", p.validator.Summary())
	}
	for _, finding := range p.validator.Errors() {
		p.logger.Warn(finding.Error())
	}
	return result, nil
}

// ParsePackage extracts the enums of a loaded package.
//
// Type errors are logged and tolerated, since a stale generated file in the
// package can fail to type check until it is regenerated. The go command
// reports the same failure once more as a build error ("# pkg" followed by
// the compiler output), which is tolerated alongside them. Any other load
// or syntax error aborts.
func (p *Parser) ParsePackage(pkg *packages.Package) (*Package, error) {
	typeErrors := 0
	for _, e := range pkg.Errors {
		if e.Kind == packages.TypeError {
			typeErrors++
		}
	}

	var fatal []error
	for _, e := range pkg.Errors {
		switch {
		case e.Kind == packages.TypeError:
			p.logger.Warn("type error", "package", pkg.PkgPath, "error", e.Msg)
			continue
		case typeErrors > 0 && isBuildError(e):
			p.logger.Debug("build error", "package", pkg.PkgPath, "error", e.Msg)
			continue
		}
		fatal = append(fatal, e)
	}
	if len(fatal) > 0 {
		return nil, errors.Join(fatal...)
	}
	if pkg.TypesInfo == nil {
		return nil, fmt.Errorf("no type information for %s", pkg.PkgPath)
	}

	result := &Package{
		Name: pkg.Name,
		Path: pkg.PkgPath,
	}
	if len(pkg.GoFiles) > 0 {
		result.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	files := p.sourceFiles(pkg)
	for _, f := range files {
		result.Enums = append(result.Enums, p.extractEnums(pkg, f)...)
	}

	for _, enum := range result.Enums {
		named := p.lookupNamed(pkg, enum.Name)
		for _, f := range files {
			enum.Values = append(enum.Values, p.extractEnumValues(pkg, f.file, enum, named)...)
		}
	}

	// in "all" mode a plain integer type without constants is not an enum
	if p.config.ScanOptions.Enums == config.ScanModeAll {
		kept := result.Enums[:0]
		for _, enum := range result.Enums {
			if len(enum.Values) > 0 || p.isAnnotated(enum.Annotations) {
				kept = append(kept, enum)
			}
		}
		result.Enums = kept
	}

	p.logger.Debug("parsed package", "package", pkg.PkgPath, "enums", len(result.Enums))
	return result, nil
}

type sourceFile struct {
	name string
	file *ast.File
}

// isBuildError reports whether e is compiler output relayed by go list.
func isBuildError(e packages.Error) bool {
	return e.Kind == packages.ListError && strings.HasPrefix(e.Msg, "# ")
}

// sourceFiles returns the package syntax sorted by file name, without the
// generator's own output file.
func (p *Parser) sourceFiles(pkg *packages.Package) []sourceFile {
	var files []sourceFile
	for _, f := range pkg.Syntax {
		name := pkg.Fset.Position(f.Pos()).Filename
		if filepath.Base(name) == p.config.Output {
			continue
		}
		files = append(files, sourceFile{name: name, file: f})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].name < files[j].name })
	return files
}

func (p *Parser) extractEnums(pkg *packages.Package, f sourceFile) []*EnumInfo {
	var enums []*EnumInfo

	for _, decl := range f.file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}

		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok || typeSpec.Assign.IsValid() || typeSpec.TypeParams != nil {
				continue
			}

			basic := integerUnderlying(pkg.TypesInfo.Defs[typeSpec.Name])
			if basic == nil {
				continue
			}

			var docs []*ast.CommentGroup
			if !genDecl.Lparen.IsValid() {
				docs = append(docs, genDecl.Doc)
			}
			docs = append(docs, typeSpec.Doc, typeSpec.Comment)
			anns := annotations.ParseAnnotations(docs...)

			name := typeSpec.Name.Name
			if !p.shouldScan(name, anns) {
				continue
			}
			p.validator.Validate(anns, annotations.PlacementEnum, name)

			enum := &EnumInfo{
				Name:        name,
				DisplayName: name,
				Package:     pkg.Name,
				PackagePath: pkg.PkgPath,
				SourceFile:  f.name,
				Comment:     extractCommentText(docs...),
				Flags:       p.specs.Has(anns, annotations.Flags, p.config.AnnotationPrefix),
				Underlying:  basic.Name(),
				Signed:      basic.Info()&types.IsUnsigned == 0,
				Bits:        pkg.TypesSizes.Sizeof(basic) * 8,
				Annotations: anns,
			}
			if spec := p.specs.Lookup(annotations.Enum, p.config.AnnotationPrefix); spec != nil {
				for _, ann := range p.specs.Find(anns, annotations.Enum, p.config.AnnotationPrefix) {
					if v, ok := spec.Value(ann); ok && v != "" {
						enum.DisplayName = v
					}
				}
			}

			p.logger.Debug("found enum", "type", name, "flags", enum.Flags, "annotations", len(anns))
			enums = append(enums, enum)
		}
	}

	return enums
}

func (p *Parser) shouldScan(name string, anns []annotations.Annotation) bool {
	if p.specs.Has(anns, annotations.Skip, p.config.AnnotationPrefix) {
		return false
	}
	if !ast.IsExported(name) && !p.config.ScanOptions.IncludeUnexported {
		return false
	}
	if p.config.ScanOptions.Enums == config.ScanModeAll {
		return true
	}
	return p.isAnnotated(anns)
}

func (p *Parser) isAnnotated(anns []annotations.Annotation) bool {
	return p.specs.Has(anns, annotations.Enum, p.config.AnnotationPrefix) ||
		p.specs.Has(anns, annotations.Flags, p.config.AnnotationPrefix)
}

// extractEnumValues collects, in source order, the constants of file whose type is exactly the enum type
func (p *Parser) extractEnumValues(pkg *packages.Package, file *ast.File, enum *EnumInfo, named types.Type) []*EnumValue {
	if named == nil {
		return nil
	}

	var values []*EnumValue
	labelSpec := p.specs.Lookup(annotations.Label, p.config.AnnotationPrefix)

	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.CONST {
			continue
		}

		for _, spec := range genDecl.Specs {
			valueSpec, ok := spec.(*ast.ValueSpec)
			if !ok {
				continue
			}

			var docs []*ast.CommentGroup
			if !genDecl.Lparen.IsValid() {
				docs = append(docs, genDecl.Doc)
			}
			docs = append(docs, valueSpec.Doc, valueSpec.Comment)

			for _, ident := range valueSpec.Names {
				if ident.Name == "_" {
					continue
				}
				obj, ok := pkg.TypesInfo.Defs[ident].(*types.Const)
				if !ok || !types.Identical(obj.Type(), named) {
					continue
				}

				anns := annotations.ParseAnnotations(docs...)
				if p.specs.Has(anns, annotations.Skip, p.config.AnnotationPrefix) {
					p.logger.Debug("skipping constant", "type", enum.Name, "constant", ident.Name)
					continue
				}
				location := enum.Name + "." + ident.Name
				p.validator.Validate(anns, annotations.PlacementEnumValue, location)

				ev := &EnumValue{
					Name:        ident.Name,
					Value:       obj.Val(),
					Comment:     extractCommentText(docs...),
					Annotations: anns,
				}
				for _, ann := range p.specs.Find(anns, annotations.Label, p.config.AnnotationPrefix) {
					ev.Labels = append(ev.Labels, labelSpec.Values(ann)...)
				}

				p.logger.Debug("found constant", "constant", location, "value", ev.Value.ExactString(), "labels", len(ev.Labels))
				values = append(values, ev)
			}
		}
	}

	return values
}

func (p *Parser) lookupNamed(pkg *packages.Package, name string) types.Type {
	if pkg.Types == nil {
		return nil
	}
	obj := pkg.Types.Scope().Lookup(name)
	if obj == nil {
		return nil
	}
	return obj.Type()
}

// integerUnderlying returns the basic integer type behind a defined type, or nil.
func integerUnderlying(obj types.Object) *types.Basic {
	tn, ok := obj.(*types.TypeName)
	if !ok || tn.IsAlias() {
		return nil
	}
	named, ok := tn.Type().(*types.Named)
	if !ok {
		return nil
	}
	basic, ok := named.Underlying().(*types.Basic)
	if !ok || basic.Info()&types.IsInteger == 0 {
		return nil
	}
	return basic
}

// extractCommentText returns the plain text of comment groups without annotation lines.
func extractCommentText(groups ...*ast.CommentGroup) string {
	var parts []string
	for _, group := range groups {
		if group == nil {
			continue
		}
		for _, line := range strings.Split(group.Text(), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "@") {
				continue
			}
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, "\n")
}

// Package generator renders the enumlabel registration file for parsed packages.
package generator

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"github.com/pablor21/enumlabel"
	"github.com/pablor21/enumlabel/config"
	"github.com/pablor21/enumlabel/logger"
	"github.com/pablor21/enumlabel/parser"
	"golang.org/x/tools/imports"
)

// Header starts every generated file. A file without it is never overwritten or removed.
const Header = "// Code generated by enumlabelgen. DO NOT EDIT."

//go:embed templates/enumlabel.go.tmpl
var templateFS embed.FS

var fileTemplate = template.Must(template.New("enumlabel.go.tmpl").
	Funcs(template.FuncMap{"quote": strconv.Quote}).
	ParseFS(templateFS, "templates/enumlabel.go.tmpl"))

type fileData struct {
	Package string
	Enums   []enumData
}

type enumData struct {
	Type        string
	DisplayName string
	Var         string
	Constructor string // Enum or Flags
	Flags       bool
	Delimiter   string // rune literal
	Variants    []variantData
}

type variantData struct {
	Name   string
	Labels []string
}

// Generator renders and writes one output file per package
type Generator struct {
	config *config.Config
	logger logger.Logger
}

func New(cfg *config.Config, log logger.Logger) *Generator {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Generator{config: cfg, logger: log.WithTag("gen")}
}

// Generate renders the output file for pkg. It returns nil when the package
// has nothing to register.
//
// Ordinary enums need exactly one label per constant; every violation is
// reported in the returned error. Composite flags constants are skipped with
// a warning.
func (g *Generator) Generate(pkg *parser.Package) ([]byte, error) {
	data := fileData{Package: pkg.Name}
	var errs []error

	for _, enum := range pkg.Enums {
		ed, err := g.enumData(enum)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ed == nil {
			continue
		}
		data.Enums = append(data.Enums, *ed)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if len(data.Enums) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", pkg.Path, err)
	}

	name := filepath.Join(pkg.Dir, g.config.Output)
	out, err := imports.Process(name, buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to format %s: %w\n%s", name, err, buf.String())
	}
	return out, nil
}

func (g *Generator) enumData(enum *parser.EnumInfo) (*enumData, error) {
	ed := &enumData{
		Type:        enum.Name,
		DisplayName: enum.DisplayName,
		Var:         definitionVar(enum.Name),
		Constructor: "Enum",
		Flags:       enum.Flags,
		Delimiter:   strconv.QuoteRune(g.config.Delimiter()),
	}
	if enum.Flags {
		ed.Constructor = "Flags"
	}

	var errs []error
	for _, v := range enum.Values {
		if enum.Flags {
			if !v.IsZero() && !enum.IsSingleBit(v) {
				g.logger.Warn("skipping composite flags constant", "type", enum.Name, "constant", v.Name, "value", v.Value.ExactString())
				continue
			}
		} else if len(v.Labels) != 1 {
			errs = append(errs, fmt.Errorf("%s: %w", enum.SourceFile, &enumlabel.ConfigurationError{
				Type:    enum.DisplayName,
				Variant: v.Name,
				Labels:  v.Labels,
			}))
			continue
		}
		ed.Variants = append(ed.Variants, variantData{Name: v.Name, Labels: v.Labels})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if !enum.Flags && len(ed.Variants) == 0 {
		g.logger.Warn("skipping enum without constants", "type", enum.Name)
		return nil, nil
	}
	g.logger.Debug("rendering enum", "type", enum.Name, "variants", len(ed.Variants))
	return ed, nil
}

// Write generates pkg's output file and writes it into the package directory.
// A previously generated file is removed when there is nothing left to
// register. It returns the path touched, or "" when nothing changed.
func (g *Generator) Write(pkg *parser.Package) (string, error) {
	src, err := g.Generate(pkg)
	if err != nil {
		return "", err
	}

	path := filepath.Join(pkg.Dir, g.config.Output)
	existing, readErr := os.ReadFile(path)
	if readErr == nil && !isGenerated(existing) {
		if src == nil {
			return "", nil
		}
		return "", fmt.Errorf("refusing to overwrite %s: not a generated file", path)
	}

	if src == nil {
		if readErr != nil {
			return "", nil
		}
		if err := os.Remove(path); err != nil {
			return "", fmt.Errorf("failed to remove stale %s: %w", path, err)
		}
		g.logger.Info("removed stale file", "path", path)
		return path, nil
	}

	if readErr == nil && bytes.Equal(existing, src) {
		g.logger.Debug("up to date", "path", path)
		return "", nil
	}
	if err := os.WriteFile(path, src, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	g.logger.Info("generated", "path", path, "enums", len(pkg.Enums))
	return path, nil
}

// Check reports whether the file on disk matches what Write would produce.
func (g *Generator) Check(pkg *parser.Package) (bool, error) {
	src, err := g.Generate(pkg)
	if err != nil {
		return false, err
	}
	existing, err := os.ReadFile(filepath.Join(pkg.Dir, g.config.Output))
	if errors.Is(err, os.ErrNotExist) {
		return src == nil, nil
	}
	if err != nil {
		return false, err
	}
	if src == nil {
		return !isGenerated(existing), nil
	}
	return bytes.Equal(existing, src), nil
}

func isGenerated(src []byte) bool {
	return bytes.HasPrefix(src, []byte(Header))
}

// definitionVar names the package variable holding a type's definition, e.g. Status -> statusDefinition
func definitionVar(typeName string) string {
	r, size := utf8.DecodeRuneInString(typeName)
	// leading acronyms are lowered as a whole: HTTPMode -> httpModeDefinition
	upper := 0
	for _, c := range typeName {
		if !unicode.IsUpper(c) {
			break
		}
		upper++
	}
	if upper > 1 && upper < utf8.RuneCountInString(typeName) {
		upper--
	}
	if upper > 1 {
		runes := []rune(typeName)
		return strings.ToLower(string(runes[:upper])) + string(runes[upper:]) + "Definition"
	}
	return string(unicode.ToLower(r)) + typeName[size:] + "Definition"
}

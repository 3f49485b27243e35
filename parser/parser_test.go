package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pablor21/enumlabel/annotations"
	"github.com/pablor21/enumlabel/config"
	"github.com/pablor21/enumlabel/logger"
	"golang.org/x/tools/go/packages"
)

const fixtureSource = `package fixture

// Status of a place.
// @enum(name="PlaceStatus")
type Status int

const (
	// @label("active")
	Active Status = iota
	// @label("suspended")
	Suspended
	_
	// @skip
	Hidden
	Deleted // @label("deleted")
)

// Color is a set of colors.
// @flags
type Color uint8

const (
	None  Color = 0
	Red   Color = 1 << iota
	Green
	Blue
	Cyan  = Green | Blue
)

// @flags
type Sign int8

const (
	SignHigh Sign = -128
	SignLow  Sign = 1
)

type plain int

const One plain = 1

// @enum
type hidden int

const Secret hidden = 1

type Alias = int
`

func writeFixture(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	files["go.mod"] = "module example.com/fixture\n\ngo 1.22\n"
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return dir
}

func loadFixture(t *testing.T, cfg *config.Config, files map[string]string) *Package {
	t.Helper()
	dir := writeFixture(t, files)
	p := NewParser(cfg, logger.Discard())
	pkgs, err := p.Load(dir, ".")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(pkgs) != 1 {
		t.Fatalf("Load() returned %d packages, want 1", len(pkgs))
	}
	return pkgs[0]
}

type valueSummary struct {
	Name   string
	Value  string
	Labels []string
}

func summarize(e *EnumInfo) []valueSummary {
	var out []valueSummary
	for _, v := range e.Values {
		out = append(out, valueSummary{Name: v.Name, Value: v.Value.ExactString(), Labels: v.Labels})
	}
	return out
}

func findEnum(pkg *Package, name string) *EnumInfo {
	for _, e := range pkg.Enums {
		if e.Name == name {
			return e
		}
	}
	return nil
}

func TestParseAnnotatedEnums(t *testing.T) {
	pkg := loadFixture(t, config.NewDefaultConfig(), map[string]string{"fixture.go": fixtureSource})

	if pkg.Name != "fixture" || pkg.Path != "example.com/fixture" {
		t.Errorf("package = %s (%s)", pkg.Name, pkg.Path)
	}

	var names []string
	for _, e := range pkg.Enums {
		names = append(names, e.Name)
	}
	if diff := cmp.Diff([]string{"Status", "Color", "Sign"}, names); diff != "" {
		t.Fatalf("enums mismatch (-want +got):\n%s", diff)
	}

	status := findEnum(pkg, "Status")
	if status.Flags {
		t.Error("Status should not be flags")
	}
	if status.DisplayName != "PlaceStatus" {
		t.Errorf("DisplayName = %q, want PlaceStatus", status.DisplayName)
	}
	if status.Comment != "Status of a place." {
		t.Errorf("Comment = %q", status.Comment)
	}
	if status.Underlying != "int" || !status.Signed {
		t.Errorf("Underlying = %s signed=%v", status.Underlying, status.Signed)
	}
	wantStatus := []valueSummary{
		{Name: "Active", Value: "0", Labels: []string{"active"}},
		{Name: "Suspended", Value: "1", Labels: []string{"suspended"}},
		{Name: "Deleted", Value: "4", Labels: []string{"deleted"}},
	}
	if diff := cmp.Diff(wantStatus, summarize(status)); diff != "" {
		t.Errorf("Status values mismatch (-want +got):\n%s", diff)
	}

	color := findEnum(pkg, "Color")
	if !color.Flags || color.Signed || color.Bits != 8 {
		t.Errorf("Color flags=%v signed=%v bits=%d", color.Flags, color.Signed, color.Bits)
	}
	wantColor := []valueSummary{
		{Name: "None", Value: "0"},
		{Name: "Red", Value: "2"},
		{Name: "Green", Value: "4"},
		{Name: "Blue", Value: "8"},
		{Name: "Cyan", Value: "12"},
	}
	if diff := cmp.Diff(wantColor, summarize(color)); diff != "" {
		t.Errorf("Color values mismatch (-want +got):\n%s", diff)
	}
}

func TestIsSingleBit(t *testing.T) {
	pkg := loadFixture(t, config.NewDefaultConfig(), map[string]string{"fixture.go": fixtureSource})

	color := findEnum(pkg, "Color")
	got := map[string]bool{}
	for _, v := range color.Values {
		got[v.Name] = color.IsSingleBit(v)
	}
	want := map[string]bool{"None": false, "Red": true, "Green": true, "Blue": true, "Cyan": false}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("IsSingleBit mismatch (-want +got):\n%s", diff)
	}
	if !color.Values[0].IsZero() || color.Values[1].IsZero() {
		t.Error("IsZero reports wrong values")
	}

	sign := findEnum(pkg, "Sign")
	for _, v := range sign.Values {
		if !sign.IsSingleBit(v) {
			t.Errorf("%s should be a single bit", v.Name)
		}
	}
}

func TestScanModeAll(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.ScanOptions.Enums = config.ScanModeAll
	cfg.ScanOptions.IncludeUnexported = true

	pkg := loadFixture(t, cfg, map[string]string{"fixture.go": fixtureSource})

	for _, name := range []string{"Status", "Color", "Sign", "plain", "hidden"} {
		if findEnum(pkg, name) == nil {
			t.Errorf("expected enum %s", name)
		}
	}
	if findEnum(pkg, "Alias") != nil {
		t.Error("type aliases must not be scanned")
	}
}

func TestSkipsOutputFile(t *testing.T) {
	files := map[string]string{
		"fixture.go": fixtureSource,
		// a stale generated file referencing a removed constant
		"enumlabel_gen.go": "package fixture\n\n// @enum\ntype Generated int\n\nvar _ = Removed\n",
	}
	pkg := loadFixture(t, config.NewDefaultConfig(), files)

	if findEnum(pkg, "Generated") != nil {
		t.Error("types declared in the output file must be ignored")
	}
	if findEnum(pkg, "Status") == nil {
		t.Error("Status should still be found despite the type error")
	}
}

func TestStaleOutputFileReferenced(t *testing.T) {
	files := map[string]string{
		"fixture.go": fixtureSource,
		"use.go":     "package fixture\n\nfunc describe() (string, error) { return Active.EnumLabel() }\n",
		// generated before the method was emitted
		"enumlabel_gen.go": "package fixture\n",
	}
	pkg := loadFixture(t, config.NewDefaultConfig(), files)

	if findEnum(pkg, "Status") == nil {
		t.Error("Status should still be found while use.go does not compile")
	}
}

func TestParsePackageErrors(t *testing.T) {
	buildErr := packages.Error{
		Msg:  "# example.com/fixture\n./enumlabel_gen.go:5:9: undefined: Removed",
		Kind: packages.ListError,
	}
	typeErr := packages.Error{
		Pos:  "enumlabel_gen.go:5:9",
		Msg:  "undefined: Removed",
		Kind: packages.TypeError,
	}
	p := NewParser(config.NewDefaultConfig(), logger.Discard())

	tests := []struct {
		name    string
		errs    []packages.Error
		wantErr string
	}{
		{
			name:    "build error with matching type error",
			errs:    []packages.Error{typeErr, buildErr},
			wantErr: "no type information",
		},
		{
			name:    "build error alone",
			errs:    []packages.Error{buildErr},
			wantErr: "undefined: Removed",
		},
		{
			name: "missing module",
			errs: []packages.Error{typeErr, {
				Msg:  "no required module provides package example.com/missing",
				Kind: packages.ListError,
			}},
			wantErr: "no required module",
		},
		{
			name:    "syntax error",
			errs:    []packages.Error{{Pos: "a.go:3:1", Msg: "expected declaration", Kind: packages.ParseError}},
			wantErr: "expected declaration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.ParsePackage(&packages.Package{PkgPath: "example.com/fixture", Errors: tt.errs})
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ParsePackage() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestPositionalLabelsCounted(t *testing.T) {
	src := `package fixture

// @enum
type Kind int

const (
	One   Kind = 1 // @label("one", "uno")
	Two   Kind = 2 // @label("two,dos")
	Three Kind = 3 // @label(value)
)
`
	pkg := loadFixture(t, config.NewDefaultConfig(), map[string]string{"fixture.go": src})
	want := []valueSummary{
		{Name: "One", Value: "1", Labels: []string{"one", "uno"}},
		{Name: "Two", Value: "2", Labels: []string{"two,dos"}},
		{Name: "Three", Value: "3", Labels: []string{"value"}},
	}
	if diff := cmp.Diff(want, summarize(findEnum(pkg, "Kind"))); diff != "" {
		t.Errorf("Kind values mismatch (-want +got):\n%s", diff)
	}
}

func TestValuesAcrossFiles(t *testing.T) {
	files := map[string]string{
		"a.go": "package fixture\n\n// @enum\ntype Mode int\n\nconst Walk Mode = 0 // @label(\"walking\")\n",
		"b.go": "package fixture\n\nconst (\n\t// @label(\"driving\")\n\tDrive Mode = 1\n)\n",
	}
	pkg := loadFixture(t, config.NewDefaultConfig(), files)

	mode := findEnum(pkg, "Mode")
	if mode == nil {
		t.Fatal("Mode not found")
	}
	want := []valueSummary{
		{Name: "Walk", Value: "0", Labels: []string{"walking"}},
		{Name: "Drive", Value: "1", Labels: []string{"driving"}},
	}
	if diff := cmp.Diff(want, summarize(mode)); diff != "" {
		t.Errorf("Mode values mismatch (-want +got):\n%s", diff)
	}
}

func TestMultipleLabelsKept(t *testing.T) {
	src := `package fixture

// @enum
type Kind int

const (
	// @label("one")
	// @label("uno")
	One Kind = 1
	Two Kind = 2
)
`
	pkg := loadFixture(t, config.NewDefaultConfig(), map[string]string{"fixture.go": src})
	want := []valueSummary{
		{Name: "One", Value: "1", Labels: []string{"one", "uno"}},
		{Name: "Two", Value: "2"},
	}
	if diff := cmp.Diff(want, summarize(findEnum(pkg, "Kind"))); diff != "" {
		t.Errorf("Kind values mismatch (-want +got):\n%s", diff)
	}
}

func TestValidationFailure(t *testing.T) {
	src := `package fixture

// @enum
// @label("misplaced")
type Kind int

const One Kind = 1 // @label("one")
`
	dir := writeFixture(t, map[string]string{"fixture.go": src})
	p := NewParser(config.NewDefaultConfig(), logger.Discard())
	_, err := p.Load(dir, ".")
	if err == nil || !strings.Contains(err.Error(), "Kind @label: not valid on enum") {
		t.Fatalf("Load() error = %v, want validation failure", err)
	}

	cfg := config.NewDefaultConfig()
	cfg.Validator.Action = annotations.ValidationActionWarn
	p = NewParser(cfg, logger.Discard())
	if _, err := p.Load(dir, "."); err != nil {
		t.Fatalf("Load() with warn action error = %v", err)
	}
	if !p.Validator().HasErrors() {
		t.Error("expected the validator to record the misplaced label")
	}
}

func TestExtractCommentText(t *testing.T) {
	pkg := loadFixture(t, config.NewDefaultConfig(), map[string]string{"fixture.go": fixtureSource})
	if got := findEnum(pkg, "Color").Comment; got != "Color is a set of colors." {
		t.Errorf("Comment = %q", got)
	}
}

package annotations

import "strings"

// Names of the annotations understood by the enum scanner.
const (
	Label = "label"
	Flags = "flags"
	Enum  = "enum"
	Skip  = "skip"
)

// DefaultSpecs returns the annotations recognized on enum declarations.
func DefaultSpecs() Specs {
	return Specs{
		{
			Name:        Label,
			Description: "Display label rendered for the constant. Exactly one is expected on every variant of an ordinary enum.",
			ValidOn:     []Placement{PlacementEnumValue},
			Aliases:     []string{"value", "enumMember"},
			Multiple:    true,
			Params: []Param{
				{
					Name:        "value",
					Description: "The label text",
					IsDefault:   true,
					IsRequired:  true,
				},
			},
		},
		{
			Name:        Flags,
			Description: "Marks the type as a bitmask whose constants are combined with bitwise OR",
			ValidOn:     []Placement{PlacementEnum},
			Aliases:     []string{"bitmask", "bitflag"},
		},
		{
			Name:        Enum,
			Description: "Marks the type for label table generation",
			ValidOn:     []Placement{PlacementEnum},
			Params: []Param{
				{
					Name:        "name",
					Description: "Type name reported in errors, defaults to the Go type name",
					IsDefault:   true,
				},
			},
		},
		{
			Name:        Skip,
			Description: "Excludes the type or constant from generation",
			Aliases:     []string{"ignore"},
		},
	}
}

// Lookup finds the spec an annotation name refers to, honoring aliases and
// the configured prefix.
func (s Specs) Lookup(name, prefix string) *Spec {
	for i := range s {
		if s[i].Matches(name, prefix) {
			return &s[i]
		}
	}
	return nil
}

// Matches reports whether name refers to this spec or one of its aliases.
func (s *Spec) Matches(name, prefix string) bool {
	return MatchesAnnotation(name, prefix, append([]string{s.Name}, s.Aliases...)...)
}

// Param returns the parameter with the given name or alias.
func (s *Spec) Param(name string) *Param {
	for i := range s.Params {
		p := &s.Params[i]
		if strings.EqualFold(p.Name, name) {
			return p
		}
		for _, alias := range p.Aliases {
			if strings.EqualFold(alias, name) {
				return p
			}
		}
	}
	return nil
}

// DefaultParam returns the parameter that receives positional values.
func (s *Spec) DefaultParam() *Param {
	for i := range s.Params {
		if s.Params[i].IsDefault {
			return &s.Params[i]
		}
	}
	return nil
}

// IsValidPlacement reports whether the annotation may be used on placement.
func (s *Spec) IsValidPlacement(placement Placement) bool {
	if len(s.ValidOn) == 0 {
		return true
	}
	for _, p := range s.ValidOn {
		if p == placement {
			return true
		}
	}
	return false
}

// Value returns the value of the spec's default parameter in ann: the
// positional value when present, the named parameter otherwise.
func (s *Spec) Value(ann Annotation) (string, bool) {
	p := s.DefaultParam()
	if p == nil {
		return "", false
	}
	if v, ok := ann.Params[""]; ok {
		return v, true
	}
	if v, ok := ann.GetParamValue(p.Name, p.Aliases...); ok {
		return v, true
	}
	// @label active parses as a flag; a lone bare word is the value
	if len(ann.Params) == 1 {
		for k, v := range ann.Params {
			if v == "true" && s.Param(k) == nil {
				return k, true
			}
		}
	}
	return p.DefaultValue, false
}

// Values returns every value given to the spec's default parameter in ann.
// Each positional argument is a value of its own, so @label("a", "b") has two.
func (s *Spec) Values(ann Annotation) []string {
	if len(ann.Args) > 1 {
		return append([]string(nil), ann.Args...)
	}
	if v, ok := s.Value(ann); ok {
		return []string{v}
	}
	return nil
}

// Find returns every annotation in anns that refers to the named spec.
func (s Specs) Find(anns []Annotation, name, prefix string) []Annotation {
	spec := s.Lookup(name, prefix)
	if spec == nil {
		return nil
	}
	var out []Annotation
	for _, ann := range anns {
		if spec.Matches(ann.Name, prefix) {
			out = append(out, ann)
		}
	}
	return out
}

// Has reports whether anns contains the named annotation.
func (s Specs) Has(anns []Annotation, name, prefix string) bool {
	return len(s.Find(anns, name, prefix)) > 0
}

// NormalizeAnnotationName normalizes annotation names for comparison (case-insensitive)
func NormalizeAnnotationName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Package annotations parses the @name(params) comment annotations that mark
// enum types and attach display labels to their constants.
package annotations

// Annotation represents a parsed annotation from Go comments (@name(params))
type Annotation struct {
	Name    string            // e.g., "label", "flags"
	Params  map[string]string // key-value parameters, "" holds positional values
	Args    []string          // positional values, one per argument
	RawText string            // original text
}

// Placement represents where an annotation can be used
type Placement string

const (
	PlacementEnum      Placement = "enum"      // the enum type declaration
	PlacementEnumValue Placement = "enumValue" // a constant of the enum type
	PlacementFile      Placement = "file"
)

// Param defines a parameter of an annotation specification
type Param struct {
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description"`
	IsDefault    bool     `yaml:"isDefault"` // positional values are stored under this param
	Aliases      []string `yaml:"aliases"`
	DefaultValue string   `yaml:"defaultValue"`
	IsRequired   bool     `yaml:"isRequired"`
}

// Spec defines an annotation the scanner understands
type Spec struct {
	Name        string      `yaml:"name"`
	Params      []Param     `yaml:"params"`
	ValidOn     []Placement `yaml:"validOn"` // nil or empty means anywhere
	Aliases     []string    `yaml:"aliases"`
	Description string      `yaml:"description"`
	Multiple    bool        `yaml:"multiple"` // may appear more than once on the same target
}

// Specs is the set of annotations recognized by a scan
type Specs []Spec

package annotations

import (
	"fmt"
	"strings"
)

// ValidationAction defines how to handle validation errors
type ValidationAction string

const (
	ValidationActionDisabled ValidationAction = "disabled"
	ValidationActionWarn     ValidationAction = "warn"
	ValidationActionFail     ValidationAction = "fail"
)

// ValidationMode defines the strictness of validation
type ValidationMode string

const (
	ValidationModeLax    ValidationMode = "lax"    // known annotations only
	ValidationModeStrict ValidationMode = "strict" // unknown annotations and params are errors
)

// Severity of a validation finding
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ValidationError represents a validation finding
type ValidationError struct {
	Location string // e.g. "Status.Active @label"
	Message  string
	Severity Severity
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Location, e.Message)
}

// Validator checks annotations against their specs
type Validator struct {
	action ValidationAction
	mode   ValidationMode
	prefix string
	specs  Specs
	errors []ValidationError
}

// NewValidator creates a validator for specs. An empty action disables it.
func NewValidator(action ValidationAction, mode ValidationMode, prefix string, specs Specs) *Validator {
	if action == "" {
		action = ValidationActionDisabled
	}
	if mode == "" {
		mode = ValidationModeLax
	}
	return &Validator{
		action: action,
		mode:   mode,
		prefix: prefix,
		specs:  specs,
	}
}

// Validate checks every annotation found on one target.
func (v *Validator) Validate(anns []Annotation, placement Placement, location string) {
	if v.action == ValidationActionDisabled {
		return
	}

	seen := make(map[string]int)
	for _, ann := range anns {
		where := fmt.Sprintf("%s @%s", location, ann.Name)

		spec := v.specs.Lookup(ann.Name, v.prefix)
		if spec == nil {
			if v.mode == ValidationModeStrict {
				v.add(where, "unknown annotation", SeverityError)
			}
			continue
		}

		if !spec.IsValidPlacement(placement) {
			v.add(where, fmt.Sprintf("not valid on %s", placement), SeverityError)
		}

		seen[spec.Name]++
		if !spec.Multiple && seen[spec.Name] == 2 {
			v.add(where, "may only appear once", SeverityWarning)
		}

		if p := spec.DefaultParam(); p != nil && p.IsRequired {
			if _, ok := spec.Value(ann); !ok {
				v.add(where, fmt.Sprintf("required parameter '%s' missing", p.Name), SeverityError)
			}
		}

		if v.mode == ValidationModeStrict {
			for name := range ann.Params {
				if name == "" || spec.Param(name) != nil {
					continue
				}
				if _, ok := spec.Value(ann); ok && len(ann.Params) == 1 {
					continue // lone bare word taken as the value
				}
				v.add(where, fmt.Sprintf("unknown parameter '%s'", name), SeverityError)
			}
		}
	}
}

func (v *Validator) add(location, message string, severity Severity) {
	v.errors = append(v.errors, ValidationError{
		Location: location,
		Message:  message,
		Severity: severity,
	})
}

// Errors returns all findings in the order they were reported
func (v *Validator) Errors() []ValidationError {
	return v.errors
}

// HasErrors returns true if any finding is an error
func (v *Validator) HasErrors() bool {
	for _, err := range v.errors {
		if err.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ShouldFail returns true if validation should stop generation
func (v *Validator) ShouldFail() bool {
	return v.action == ValidationActionFail && v.HasErrors()
}

// Summary joins all findings into a single message.
func (v *Validator) Summary() string {
	lines := make([]string, len(v.errors))
	for i, err := range v.errors {
		lines[i] = err.Error()
	}
	return strings.Join(lines, "\n")
}

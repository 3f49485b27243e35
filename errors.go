package enumlabel

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors, matchable with errors.Is.
var (
	// ErrMissingLabel indicates a variant without exactly one display label.
	ErrMissingLabel = errors.New("missing label")

	// ErrUnknownValue indicates a value that is not a declared variant.
	ErrUnknownValue = errors.New("value is not a declared variant")

	// ErrUnknownEnum indicates a type with no registered definition.
	ErrUnknownEnum = errors.New("enum type is not registered")

	// ErrAlreadyRegistered indicates a second definition for the same type.
	ErrAlreadyRegistered = errors.New("enum type already registered")
)

// ConfigurationError reports a malformed enum definition. It can only be
// fixed by correcting the definition, so callers should not retry or recover.
type ConfigurationError struct {
	// Type is the enum type name.
	Type string

	// Variant is the symbolic name of the offending variant.
	Variant string

	// Labels holds the labels that were declared, if any.
	Labels []string

	// Reason overrides the default "missing label" description.
	Reason string
}

func (e *ConfigurationError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = ErrMissingLabel.Error()
		if len(e.Labels) > 1 {
			reason = fmt.Sprintf("%s (%d labels declared: %s)", reason, len(e.Labels), strings.Join(e.Labels, ", "))
		}
	}
	return fmt.Sprintf("enumlabel: %s.%s: %s", e.Type, e.Variant, reason)
}

// Unwrap returns ErrMissingLabel for label defects and nil otherwise.
func (e *ConfigurationError) Unwrap() error {
	if e.Reason != "" {
		return nil
	}
	return ErrMissingLabel
}

// ArgumentError reports a value that cannot be rendered by its definition.
type ArgumentError struct {
	// Type is the enum type name.
	Type string

	// Value is the decimal rendering of the rejected value.
	Value string

	// Err is ErrUnknownValue or ErrUnknownEnum.
	Err error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("enumlabel: %s(%s): %v", e.Type, e.Value, e.Err)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

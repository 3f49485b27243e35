package enumlabel

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// LabelOf returns the display label declared for value, verbatim.
//
// The value must match a declared variant exactly, otherwise an
// *ArgumentError is returned. A variant with no label or more than one label
// yields a *ConfigurationError.
func (d *Definition[T]) LabelOf(value T) (string, error) {
	v, ok := d.Variant(value)
	if !ok {
		return "", &ArgumentError{Type: d.name, Value: d.format(value), Err: ErrUnknownValue}
	}
	label, ok := v.Label()
	if !ok {
		return "", &ConfigurationError{Type: d.name, Variant: v.Name, Labels: v.Labels}
	}
	return label, nil
}

// FlagsLabelOf renders value as a lowercase token.
//
// For flags enums the result is the weight of every set bit, from the least
// significant upward, joined by delim; zero renders as "". For ordinary enums
// the result is the decimal value of the declared variant and delim is unused.
func (d *Definition[T]) FlagsLabelOf(value T, delim rune) (string, error) {
	if !d.flags {
		if _, ok := d.byValue[value]; !ok {
			return "", &ArgumentError{Type: d.name, Value: d.format(value), Err: ErrUnknownValue}
		}
		return strings.ToLower(d.format(value)), nil
	}
	return strings.ToLower(joinBits(d.bits(value), delim)), nil
}

// MustLabelOf is like LabelOf but panics on error.
func (d *Definition[T]) MustLabelOf(value T) string {
	s, err := d.LabelOf(value)
	if err != nil {
		panic(err)
	}
	return s
}

// MustFlagsLabelOf is like FlagsLabelOf but panics on error.
func (d *Definition[T]) MustFlagsLabelOf(value T, delim rune) string {
	s, err := d.FlagsLabelOf(value, delim)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate reports every definitional defect: ordinary variants without
// exactly one label, and flags variants that are neither zero nor a single bit.
func (d *Definition[T]) Validate() error {
	var errs []error
	for _, v := range d.variants {
		if d.flags {
			if b := d.bits(v.Value); b != 0 && b&(b-1) != 0 {
				errs = append(errs, &ConfigurationError{
					Type:    d.name,
					Variant: v.Name,
					Labels:  v.Labels,
					Reason:  fmt.Sprintf("flags value %s is not a single bit", d.format(v.Value)),
				})
			}
			continue
		}
		if _, ok := v.Label(); !ok {
			errs = append(errs, &ConfigurationError{Type: d.name, Variant: v.Name, Labels: v.Labels})
		}
	}
	return errors.Join(errs...)
}

// bits returns the value's two's complement bit pattern limited to the width of T.
func (d *Definition[T]) bits(value T) uint64 {
	u := uint64(value)
	if d.width < 64 {
		u &= 1<<d.width - 1
	}
	return u
}

func (d *Definition[T]) format(value T) string {
	return formatInteger(value, d.signed)
}

func formatInteger[T Integer](value T, signed bool) string {
	if signed {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatUint(uint64(value), 10)
}

func joinBits(u uint64, delim rune) string {
	var sb strings.Builder
	for rest := u; rest != 0; rest &= rest - 1 {
		if sb.Len() > 0 {
			sb.WriteRune(delim)
		}
		sb.WriteString(strconv.FormatUint(1<<bits.TrailingZeros64(rest), 10))
	}
	return sb.String()
}

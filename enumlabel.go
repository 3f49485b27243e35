// Package enumlabel renders integer-backed enum values as the lowercase
// string tokens expected by API payloads.
//
// Ordinary enums resolve to the single label declared for each variant.
// Flags enums resolve to the numeric weights of their set bits joined by a
// delimiter, e.g. Red|Blue becomes "1|4".
//
// Definitions are static tables built once, usually by code generated with
// cmd/enumlabelgen from @label and @flags comment annotations:
//
//	// @flags
//	type Color int
//
//	const (
//		Red   Color = 1 << iota // @label("red")
//		Green                   // @label("green")
//		Blue                    // @label("blue")
//	)
//
// and then looked up by type:
//
//	s, err := enumlabel.FlagsLabelOf(Red|Blue, '|') // "1|4"
package enumlabel

// Integer is the set of types an enum definition can be backed by.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Variant is a single named constant of an enum together with every display
// label declared for it. Exactly one label is expected; zero or several are
// reported as a ConfigurationError when the label is requested.
type Variant[T Integer] struct {
	Name   string
	Value  T
	Labels []string
}

// V builds a Variant.
func V[T Integer](name string, value T, labels ...string) Variant[T] {
	return Variant[T]{Name: name, Value: value, Labels: labels}
}

// Label returns the variant's single declared label.
func (v Variant[T]) Label() (string, bool) {
	if len(v.Labels) != 1 {
		return "", false
	}
	return v.Labels[0], true
}

// Definition is the immutable description of one enum type.
type Definition[T Integer] struct {
	name     string
	flags    bool
	variants []Variant[T]
	byValue  map[T]int
	width    uint
	signed   bool
}

// Enum defines an ordinary enum whose variants are mutually exclusive.
func Enum[T Integer](typeName string, variants ...Variant[T]) *Definition[T] {
	return newDefinition(typeName, false, variants)
}

// Flags defines a bitmask enum whose variants are combined with bitwise OR.
func Flags[T Integer](typeName string, variants ...Variant[T]) *Definition[T] {
	return newDefinition(typeName, true, variants)
}

func newDefinition[T Integer](typeName string, flags bool, variants []Variant[T]) *Definition[T] {
	d := &Definition[T]{
		name:     typeName,
		flags:    flags,
		variants: make([]Variant[T], len(variants)),
		byValue:  make(map[T]int, len(variants)),
		width:    bitWidth[T](),
		signed:   isSigned[T](),
	}
	for i, v := range variants {
		v.Labels = append([]string(nil), v.Labels...)
		d.variants[i] = v
		// aliases resolve to the first declared name
		if _, exists := d.byValue[v.Value]; !exists {
			d.byValue[v.Value] = i
		}
	}
	return d
}

// Name returns the enum's type name.
func (d *Definition[T]) Name() string { return d.name }

// IsFlags reports whether the enum is a bitmask.
func (d *Definition[T]) IsFlags() bool { return d.flags }

// Variants returns a copy of the declared variants in declaration order.
func (d *Definition[T]) Variants() []Variant[T] {
	out := make([]Variant[T], len(d.variants))
	for i, v := range d.variants {
		v.Labels = append([]string(nil), v.Labels...)
		out[i] = v
	}
	return out
}

// Variant returns the variant declared with exactly the given value.
func (d *Definition[T]) Variant(value T) (Variant[T], bool) {
	i, ok := d.byValue[value]
	if !ok {
		return Variant[T]{}, false
	}
	return d.variants[i], true
}

// bitWidth counts the bits of T by shifting a one out of it.
func bitWidth[T Integer]() uint {
	var n uint
	for x := T(1); x != 0; x <<= 1 {
		n++
	}
	return n
}

func isSigned[T Integer]() bool {
	var zero T
	return ^zero < zero
}

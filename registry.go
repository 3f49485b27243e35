package enumlabel

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

type registeredDefinition interface {
	Name() string
	IsFlags() bool
}

// registry maps each enum type to its definition. It is filled during
// package initialization and only read afterwards.
var (
	registry = make(map[reflect.Type]registeredDefinition)
	mu       sync.RWMutex
)

// Register installs def as the definition of T.
// Registering a second definition for the same type fails with ErrAlreadyRegistered.
func Register[T Integer](def *Definition[T]) error {
	if def == nil {
		return fmt.Errorf("enumlabel: nil definition for %s", reflect.TypeFor[T]())
	}
	key := reflect.TypeFor[T]()

	mu.Lock()
	defer mu.Unlock()

	if existing, ok := registry[key]; ok {
		return fmt.Errorf("enumlabel: %s (registered as %q): %w", key, existing.Name(), ErrAlreadyRegistered)
	}
	registry[key] = def
	return nil
}

// MustRegister is like Register but panics on error. It returns def so the
// result can be assigned to a package-level variable.
func MustRegister[T Integer](def *Definition[T]) *Definition[T] {
	if err := Register(def); err != nil {
		panic(err)
	}
	return def
}

// Lookup returns the definition registered for T.
func Lookup[T Integer]() (*Definition[T], bool) {
	mu.RLock()
	defer mu.RUnlock()

	def, ok := registry[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	return def.(*Definition[T]), true
}

// Registered returns the names of all registered enum types, sorted.
func Registered() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for _, def := range registry {
		names = append(names, def.Name())
	}
	sort.Strings(names)
	return names
}

// LabelOf resolves the definition registered for T and returns the label of value.
func LabelOf[T Integer](value T) (string, error) {
	def, err := lookupFor(value)
	if err != nil {
		return "", err
	}
	return def.LabelOf(value)
}

// FlagsLabelOf resolves the definition registered for T and renders value as
// described by Definition.FlagsLabelOf.
func FlagsLabelOf[T Integer](value T, delim rune) (string, error) {
	def, err := lookupFor(value)
	if err != nil {
		return "", err
	}
	return def.FlagsLabelOf(value, delim)
}

// MustLabelOf is like LabelOf but panics on error.
func MustLabelOf[T Integer](value T) string {
	s, err := LabelOf(value)
	if err != nil {
		panic(err)
	}
	return s
}

// MustFlagsLabelOf is like FlagsLabelOf but panics on error.
func MustFlagsLabelOf[T Integer](value T, delim rune) string {
	s, err := FlagsLabelOf(value, delim)
	if err != nil {
		panic(err)
	}
	return s
}

func lookupFor[T Integer](value T) (*Definition[T], error) {
	def, ok := Lookup[T]()
	if !ok {
		return nil, &ArgumentError{
			Type:  reflect.TypeFor[T]().String(),
			Value: formatInteger(value, isSigned[T]()),
			Err:   ErrUnknownEnum,
		}
	}
	return def, nil
}


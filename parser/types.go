package parser

import (
	"go/constant"
	"go/token"

	"github.com/pablor21/enumlabel/annotations"
)

// Package holds the enums found in one Go package
type Package struct {
	Name  string // package name, e.g. "places"
	Path  string // import path
	Dir   string // directory holding the package sources
	Enums []*EnumInfo
}

// EnumInfo contains parsed information about an enum type
type EnumInfo struct {
	Name        string // Go type name
	DisplayName string // name reported in errors, from @enum(name="...") or the Go name
	Package     string
	PackagePath string
	SourceFile  string
	Comment     string // doc comment without annotations
	Flags       bool   // marked @flags
	Underlying  string // e.g. "int", "uint8"
	Signed      bool
	Bits        int64 // size of the underlying type in bits
	Values      []*EnumValue
	Annotations []annotations.Annotation
}

// EnumValue represents a single enum constant
type EnumValue struct {
	Name        string
	Value       constant.Value // exact value from the type checker
	Labels      []string       // every @label declared, in source order
	Comment     string
	Annotations []annotations.Annotation
}

// IsSingleBit reports whether v has exactly one bit set within the enum's width.
func (e *EnumInfo) IsSingleBit(v *EnumValue) bool {
	if v.Value == nil || v.Value.Kind() != constant.Int {
		return false
	}
	if constant.Sign(v.Value) < 0 {
		// only the sign bit itself: -2^(bits-1)
		signBit := constant.Shift(constant.MakeInt64(-1), token.SHL, uint(e.Bits-1))
		return constant.Compare(v.Value, token.EQL, signBit)
	}
	u, exact := constant.Uint64Val(v.Value)
	return exact && u != 0 && u&(u-1) == 0
}

// IsZero reports whether v is the zero value.
func (v *EnumValue) IsZero() bool {
	return v.Value != nil && v.Value.Kind() == constant.Int && constant.Sign(v.Value) == 0
}

package enumlabel

// DefaultDelimiter separates flags tokens when no delimiter is given.
const DefaultDelimiter = ','

// Labeler is implemented by enum types that render their own canonical label.
// Generated code implements it for every annotated enum.
type Labeler interface {
	EnumLabel() (string, error)
}

// Text adapts an enum value for embedding in payloads through
// encoding.TextMarshaler. Ordinary enums marshal to their label, flags enums
// to their bit weights joined by Delimiter (DefaultDelimiter when zero).
type Text[T Integer] struct {
	Value     T
	Delimiter rune
}

// MarshalText implements encoding.TextMarshaler.
func (t Text[T]) MarshalText() ([]byte, error) {
	def, err := lookupFor(t.Value)
	if err != nil {
		return nil, err
	}

	var s string
	if def.IsFlags() {
		delim := t.Delimiter
		if delim == 0 {
			delim = DefaultDelimiter
		}
		s, err = def.FlagsLabelOf(t.Value, delim)
	} else {
		s, err = def.LabelOf(t.Value)
	}
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// Label renders v through its own Labeler implementation when it has one and
// through the registry otherwise.
func Label[T Integer](v T) (string, error) {
	if l, ok := any(v).(Labeler); ok {
		return l.EnumLabel()
	}
	b, err := Text[T]{Value: v}.MarshalText()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

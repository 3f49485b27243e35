package annotations

import "strings"

// MatchesAnnotation checks if an annotation name matches one of the expected
// names, with or without the configured prefix. With prefix "@api" and name
// "label" it matches "@apiLabel", "apilabel" and plain "label".
func MatchesAnnotation(annName string, prefix string, names ...string) bool {
	annName = NormalizeAnnotationName(annName)
	prefix = strings.ToLower(strings.TrimPrefix(prefix, "@"))

	for _, name := range names {
		name = NormalizeAnnotationName(name)
		if prefix != "" && annName == prefix+name {
			return true
		}
		if annName == name {
			return true
		}
	}

	return false
}

// GetParamValue returns the value of an annotation parameter by name.
// It first checks for the exact parameter name, then checks aliases.
func (a *Annotation) GetParamValue(name string, aliases ...string) (string, bool) {
	for _, key := range append([]string{name}, aliases...) {
		for k, v := range a.Params {
			if strings.EqualFold(k, key) {
				return v, true
			}
		}
	}
	return "", false
}

// GetParamBool returns a boolean parameter value. Accepted true values (case-insensitive):
// "true", "1", "yes", "on". Returns (false, false) if absent or unparsable.
func (a *Annotation) GetParamBool(name string, aliases ...string) (bool, bool) {
	raw, ok := a.GetParamValue(name, aliases...)
	if !ok {
		return false, false
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "on":
		return true, true
	case "false", "0", "no", "off":
		return false, true
	default:
		return false, false
	}
}

// HasParam checks if an annotation has a parameter with the given name or aliases.
func (a *Annotation) HasParam(name string, aliases ...string) bool {
	_, ok := a.GetParamValue(name, aliases...)
	return ok
}

package annotations

import (
	"go/ast"
	"strings"
)

// ParseAnnotations extracts annotations from comment groups, in source order.
// Nil groups are ignored.
func ParseAnnotations(comments ...*ast.CommentGroup) []Annotation {
	var annotations []Annotation

	for _, cg := range comments {
		if cg == nil {
			continue
		}
		for _, c := range cg.List {
			text := strings.TrimSpace(c.Text)
			text = strings.TrimPrefix(text, "//")
			text = strings.TrimPrefix(text, "/*")
			text = strings.TrimSuffix(text, "*/")

			for _, line := range strings.Split(text, "\n") {
				line = strings.TrimSpace(line)
				line = strings.TrimSpace(strings.TrimPrefix(line, "*"))
				if !strings.HasPrefix(line, "@") {
					continue
				}
				if ann := parseAnnotation(line); ann.Name != "" {
					annotations = append(annotations, ann)
				}
			}
		}
	}

	return annotations
}

// parseAnnotation parses a single annotation line in one of the forms
//
//	@name
//	@name("positional", key:value, flag)
//	@name key="value" flag
func parseAnnotation(line string) Annotation {
	ann := Annotation{
		RawText: line,
		Params:  make(map[string]string),
	}

	body := strings.TrimPrefix(line, "@")
	nameEnd := strings.IndexFunc(body, func(r rune) bool { return r == '(' || r == ' ' || r == '\t' })
	if nameEnd == -1 {
		ann.Name = strings.TrimSpace(body)
		return ann
	}
	ann.Name = strings.TrimSpace(body[:nameEnd])
	rest := strings.TrimSpace(body[nameEnd:])

	if strings.HasPrefix(rest, "(") {
		rest = rest[1:]
		if end := strings.LastIndex(rest, ")"); end != -1 {
			rest = rest[:end]
		}
		parseParams(&ann, splitTopLevel(rest, func(r rune) bool { return r == ',' }), true)
		return ann
	}

	parseParams(&ann, splitTopLevel(rest, func(r rune) bool { return r == ' ' || r == '\t' }), false)
	return ann
}

// parseParams fills ann from already split parts. Parts without a key are
// boolean flags when they are bare identifiers; quoted parts (and, inside
// parentheses, any other keyless part) are positional. A lone bare word in
// parentheses is positional too, so @label(value) labels with "value".
// Positional values are kept in order in Args and comma joined under the
// empty key.
func parseParams(ann *Annotation, parts []string, positional bool) {
	lone := positional && len(parts) == 1
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if key, value, ok := splitKeyValue(part); ok {
			ann.Params[key] = unquote(value)
			continue
		}

		if !lone && !isQuoted(part) && isBooleanFlag(part) {
			ann.Params[part] = "true"
			continue
		}
		if !positional && !isQuoted(part) {
			continue
		}

		value := unquote(part)
		ann.Args = append(ann.Args, value)
		if prev, exists := ann.Params[""]; exists {
			ann.Params[""] = prev + "," + value
		} else {
			ann.Params[""] = value
		}
	}
}

// splitTopLevel splits s at every separator rune that is outside quotes and brackets.
func splitTopLevel(s string, isSep func(rune) bool) []string {
	var parts []string
	var current strings.Builder
	var quote rune
	depth := 0

	for _, ch := range s {
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
		case ch == '[':
			depth++
		case ch == ']':
			depth--
		case depth == 0 && isSep(ch):
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
			continue
		}
		current.WriteRune(ch)
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}

// splitKeyValue splits key:value or key=value at the first separator outside quotes.
func splitKeyValue(part string) (string, string, bool) {
	var quote rune
	for i, ch := range part {
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
		case ch == ':' || ch == '=':
			key := strings.TrimSpace(part[:i])
			if key == "" {
				return "", "", false
			}
			return key, strings.TrimSpace(part[i+1:]), true
		}
	}
	return "", "", false
}

func isQuoted(s string) bool {
	return len(s) >= 2 &&
		((s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\''))
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if isQuoted(s) {
		return s[1 : len(s)-1]
	}
	return s
}

// isBooleanFlag checks if a string looks like a boolean flag (simple identifier)
func isBooleanFlag(s string) bool {
	if s == "" {
		return false
	}
	for _, ch := range s {
		isLetter := (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
		isDigit := ch >= '0' && ch <= '9'
		if !isLetter && !isDigit && ch != '_' && ch != '-' {
			return false
		}
	}
	return true
}

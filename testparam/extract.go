package testparam

import (
	"encoding/json"
	"log/slog"
	"sort"
	"strings"
)

// Extract normalizes a stored test-case input into an ordered parameter
// list matching paramNames. Raw may be a structured JSON object (the
// preferred storage form), a legacy free-text string, or a positional
// value list. Parameters declared in the signature but absent from the
// parsed result become null with a logged warning; extraction never
// fails on malformed legacy data.
func Extract(raw any, paramNames []string, logger *slog.Logger) Params {
	if logger == nil {
		logger = slog.Default()
	}

	var params Params
	switch v := raw.(type) {
	case map[string]any:
		params = fromStructured(v, paramNames)
	case string:
		params = fromLegacyText(v, paramNames)
	case []any:
		params = fromPositional(v, paramNames)
	case nil:
		params = Params{}
	default:
		// single bare value, bind it to the first parameter
		params = fromPositional([]any{v}, paramNames)
	}

	return fillMissing(params, paramNames, logger)
}

// UnwrapEnvelope flattens the {"expected_outputs": [...]} envelope used
// by stateful-class problems into the bare sequence. Any other value
// passes through unchanged.
func UnwrapEnvelope(v any) any {
	obj, ok := v.(map[string]any)
	if !ok {
		return v
	}
	if len(obj) != 1 {
		return v
	}
	if seq, ok := obj["expected_outputs"]; ok {
		return seq
	}
	return v
}

func fromStructured(obj map[string]any, paramNames []string) Params {
	params := make(Params, 0, len(paramNames))
	for _, name := range paramNames {
		if value, ok := obj[name]; ok {
			params = append(params, Param{Name: name, Value: UnwrapEnvelope(value)})
		}
	}
	// keys outside the signature are carried after the declared ones so
	// nothing stored is silently dropped; sorted so parameter order is
	// stable across runs
	var extras []string
	for key := range obj {
		if containsName(paramNames, key) {
			continue
		}
		extras = append(extras, key)
	}
	sort.Strings(extras)
	for _, key := range extras {
		params = append(params, Param{Name: key, Value: UnwrapEnvelope(obj[key])})
	}
	return params
}

func fromPositional(values []any, paramNames []string) Params {
	params := make(Params, 0, len(values))
	for i, value := range values {
		name := ""
		if i < len(paramNames) {
			name = paramNames[i]
		}
		params = append(params, Param{Name: name, Value: value})
	}
	return params
}

func fromLegacyText(text string, paramNames []string) Params {
	text = strings.TrimSpace(text)
	if text == "" {
		return Params{}
	}

	lines := splitNonEmptyLines(text)

	if !strings.Contains(text, "=") {
		// positional, one value per line; a single line with several
		// top-level commas is a one-line positional list
		raw := lines
		if len(raw) == 1 && len(paramNames) > 1 {
			raw = splitTopLevel(raw[0], ',')
		}
		values := make([]any, len(raw))
		for i, r := range raw {
			values[i] = parseValue(r)
		}
		return fromPositional(values, paramNames)
	}

	var assignments []string
	if len(lines) > 1 {
		assignments = lines
	} else {
		// single comma-separated line of name = value pairs; commas
		// inside strings, brackets and braces are not separators
		assignments = splitTopLevel(lines[0], ',')
	}

	params := make(Params, 0, len(assignments))
	for _, a := range assignments {
		name, value, ok := splitAssignment(a)
		if !ok {
			params = append(params, Param{Value: parseValue(a)})
			continue
		}
		params = append(params, Param{Name: name, Value: parseValue(value)})
	}

	// legacy rows sometimes omit names entirely on some pairs; bind the
	// unnamed ones to the remaining signature parameters in order
	used := map[string]bool{}
	for _, p := range params {
		if p.Name != "" {
			used[p.Name] = true
		}
	}
	for i := range params {
		if params[i].Name != "" {
			continue
		}
		for _, name := range paramNames {
			if !used[name] {
				params[i].Name = name
				used[name] = true
				break
			}
		}
	}
	return params
}

func fillMissing(params Params, paramNames []string, logger *slog.Logger) Params {
	out := make(Params, 0, len(paramNames))
	for _, name := range paramNames {
		if value, ok := params.Value(name); ok {
			out = append(out, Param{Name: name, Value: value})
			continue
		}
		logger.Warn("test case is missing a signature parameter, defaulting to null",
			"param", name)
		out = append(out, Param{Name: name, Value: nil})
	}
	// preserve extras (e.g. class-based operation logs stored under
	// non-signature keys)
	for _, p := range params {
		if p.Name == "" || containsName(paramNames, p.Name) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// parseValue interprets a legacy textual value as JSON where possible;
// a value that fails to parse has surrounding quotes stripped and is
// kept as a plain string.
func parseValue(text string) any {
	text = strings.TrimSpace(text)
	var v any
	if err := json.Unmarshal([]byte(text), &v); err == nil {
		return v
	}
	if len(text) >= 2 {
		if (text[0] == '"' && text[len(text)-1] == '"') ||
			(text[0] == '\'' && text[len(text)-1] == '\'') {
			return text[1 : len(text)-1]
		}
	}
	return text
}

// splitTopLevel splits s on sep occurrences that are outside any
// string literal and outside any bracket or brace nesting.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	var quote byte
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == '\\' {
				i++
				continue
			}
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '[', '{', '(':
			depth++
		case ']', '}', ')':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if last := strings.TrimSpace(s[start:]); last != "" {
		parts = append(parts, last)
	}
	return parts
}

// splitAssignment splits "name = value" at the first top-level '='.
func splitAssignment(s string) (name string, value string, ok bool) {
	depth := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == '\\' {
				i++
				continue
			}
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '[', '{', '(':
			depth++
		case ']', '}', ')':
			depth--
		case '=':
			if depth == 0 {
				lhs := strings.TrimSpace(s[:i])
				if lhs == "" || !isIdentifier(lhs) {
					return "", "", false
				}
				return lhs, strings.TrimSpace(s[i+1:]), true
			}
		}
	}
	return "", "", false
}

func isIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return s != ""
}

func splitNonEmptyLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

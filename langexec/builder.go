package langexec

import "strings"

// programBuilder assembles a generated program from named sections
// (helper declarations, user code, the driver). Keeping the sections
// separate until the final render is what stops injected helpers and
// user code from silently colliding on identifiers: every driver-side
// name is underscore-prefixed, and analysis already excludes
// underscore-prefixed names from the user's namespace.
type programBuilder struct {
	commentPrefix string
	sections      []section
}

type section struct {
	name string
	text string
}

func newProgramBuilder(commentPrefix string) *programBuilder {
	return &programBuilder{commentPrefix: commentPrefix}
}

func (b *programBuilder) Add(name, text string) {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return
	}
	b.sections = append(b.sections, section{name: name, text: text})
}

func (b *programBuilder) Render() string {
	var sb strings.Builder
	for i, s := range b.sections {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		if b.commentPrefix != "" && s.name != "" {
			sb.WriteString(b.commentPrefix + " --- " + s.name + " ---\n")
		}
		sb.WriteString(s.text)
	}
	sb.WriteString("\n")
	return sb.String()
}

// indent prefixes every non-empty line of block with the given prefix.
func indent(block, prefix string) string {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

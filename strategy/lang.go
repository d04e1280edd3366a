package strategy

import "strings"

func normalizeLanguage(language string) string {
	l := strings.ToLower(language)
	switch {
	case strings.HasPrefix(l, "python"), l == "py":
		return "python"
	case l == "javascript", l == "js", l == "node", l == "nodejs":
		return "javascript"
	case l == "java":
		return "java"
	}
	return l
}

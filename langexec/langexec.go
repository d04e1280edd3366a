package langexec

import (
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/algoprep/grader/callplan"
	"github.com/algoprep/grader/testparam"
)

// Executor builds a self-contained program for one target language.
// The built program reads a single integer test-case index from stdin,
// prints exactly one JSON line with the result of executing the call
// plan against that case, and exits. It never prompts for more input.
type Executor interface {
	Language() string
	SandboxLanguageID() int
	// UsesIndexProtocol reports whether the generated program follows
	// the test-case-index stdin convention. Languages without it are
	// fed the raw input values joined by newlines.
	UsesIndexProtocol() bool
	// BuildProgram wraps strategy-prepared user code and the call
	// block into a runnable program embedding the test inputs.
	BuildProgram(prepared string, callBlock string, tests []testparam.Params, plan callplan.CallPlan) (string, error)
}

var registry = map[string]Executor{
	"python3":    pythonExecutor{},
	"javascript": javascriptExecutor{},
	"java":       javaExecutor{},
}

var aliases = map[string]string{
	"python": "python3",
	"py":     "python3",
	"js":     "javascript",
	"node":   "javascript",
	"nodejs": "javascript",
}

// Get resolves the executor for a language name. Unknown languages are
// rejected with an error enumerating the supported set; there is no
// silent fallback to a default language.
func Get(language string) (Executor, error) {
	key := strings.ToLower(strings.TrimSpace(language))
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	if exec, ok := registry[key]; ok {
		return exec, nil
	}
	return nil, ErrUnsupportedLanguage(language, Supported())
}

// Supported returns the canonical language names in sorted order.
func Supported() []string {
	names := maps.Keys(registry)
	slices.Sort(names)
	return names
}

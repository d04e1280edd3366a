package langexec

import (
	"encoding/json"
	"fmt"

	"github.com/algoprep/grader/callplan"
	"github.com/algoprep/grader/testparam"
)

// Sandbox language identifiers (Judge0 numbering).
const (
	sandboxIDPython3    = 71
	sandboxIDJavaScript = 63
	sandboxIDJava       = 62
)

type pythonExecutor struct{}

func (pythonExecutor) Language() string        { return "python3" }
func (pythonExecutor) SandboxLanguageID() int  { return sandboxIDPython3 }
func (pythonExecutor) UsesIndexProtocol() bool { return true }

const pyImports = `import sys
import json
import collections
import heapq
import bisect
import math
import itertools
import functools
from typing import List, Optional, Dict, Set, Tuple`

func (e pythonExecutor) BuildProgram(prepared string, callBlock string, tests []testparam.Params, plan callplan.CallPlan) (string, error) {
	testsLiteral, err := pythonTestsLiteral(tests)
	if err != nil {
		return "", err
	}

	driver := "_TESTS = " + testsLiteral + "\n\n"
	driver += "def _run_case(_args):\n"
	for _, name := range plan.ParamNames {
		driver += fmt.Sprintf("    %s = _args.get(%q)\n", name, name)
	}
	driver += indent(callBlock, "    ") + "\n"
	driver += "    return _actual\n\n"
	driver += `if __name__ == "__main__":
    _idx = int(sys.stdin.readline().strip())
    print(json.dumps(_run_case(_TESTS[_idx])))`

	b := newProgramBuilder("#")
	b.Add("imports", pyImports)
	b.Add("solution", prepared)
	b.Add("driver", driver)
	return b.Render(), nil
}

// pythonTestsLiteral renders the test inputs as a Python literal:
// JSON with true/false/null rewritten to True/False/None outside of
// string literals.
func pythonTestsLiteral(tests []testparam.Params) (string, error) {
	raw, err := marshalTests(tests)
	if err != nil {
		return "", err
	}
	return translatePyLiterals(raw), nil
}

func marshalTests(tests []testparam.Params) (string, error) {
	arr := make([]map[string]any, len(tests))
	for i, params := range tests {
		obj := make(map[string]any, len(params))
		for _, p := range params {
			obj[p.Name] = p.Value
		}
		arr[i] = obj
	}
	raw, err := json.Marshal(arr)
	if err != nil {
		return "", fmt.Errorf("failed to serialize test inputs: %w", err)
	}
	return string(raw), nil
}

// translatePyLiterals rewrites the JSON literals true, false and null
// into their Python spellings, skipping over string literals so values
// like "untrue" or "null island" are never touched.
func translatePyLiterals(jsonText string) string {
	var out []byte
	inString := false
	for i := 0; i < len(jsonText); i++ {
		c := jsonText[i]
		if inString {
			out = append(out, c)
			if c == '\\' && i+1 < len(jsonText) {
				i++
				out = append(out, jsonText[i])
				continue
			}
			if c == '"' {
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
			out = append(out, c)
			continue
		}
		switch {
		case hasWordAt(jsonText, i, "true"):
			out = append(out, "True"...)
			i += len("true") - 1
		case hasWordAt(jsonText, i, "false"):
			out = append(out, "False"...)
			i += len("false") - 1
		case hasWordAt(jsonText, i, "null"):
			out = append(out, "None"...)
			i += len("null") - 1
		default:
			out = append(out, c)
		}
	}
	return string(out)
}

func hasWordAt(s string, i int, word string) bool {
	if i+len(word) > len(s) || s[i:i+len(word)] != word {
		return false
	}
	if i+len(word) < len(s) {
		next := s[i+len(word)]
		if next == '_' || (next >= 'a' && next <= 'z') || (next >= 'A' && next <= 'Z') || (next >= '0' && next <= '9') {
			return false
		}
	}
	return true
}

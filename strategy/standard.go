package strategy

import (
	"fmt"
	"strings"

	"github.com/algoprep/grader/callplan"
)

// standardStrategy calls the user's function directly over the raw
// JSON arguments. No helpers beyond the generic imports the language
// executor already emits.
type standardStrategy struct{}

func (standardStrategy) Kind() Kind { return Standard }

func (standardStrategy) PrepareCode(source string, language string) (string, error) {
	return source, nil
}

func (standardStrategy) CallExpr(plan callplan.CallPlan, language string) (string, error) {
	args := strings.Join(plan.ParamNames, ", ")
	call := receiver(plan, language) + plan.FuncName + "(" + args + ")"

	switch normalizeLanguage(language) {
	case "python":
		if plan.ReturnsVoid && len(plan.ParamNames) > 0 {
			// void return: the graded output is the mutated argument
			return call + "\n_actual = " + plan.ParamNames[0], nil
		}
		return "_actual = " + call, nil
	case "javascript":
		if plan.ReturnsVoid && len(plan.ParamNames) > 0 {
			return call + ";\nlet _actual = " + plan.ParamNames[0] + ";", nil
		}
		return "let _ret = " + call + ";\nlet _actual = _ret === undefined ? null : _ret;", nil
	case "java":
		return call, nil
	}
	return "", fmt.Errorf("standard strategy: unsupported language %q", language)
}

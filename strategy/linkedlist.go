package strategy

import (
	"fmt"
	"strings"

	"github.com/algoprep/grader/callplan"
)

// linkedListStrategy converts flat arrays to ListNode chains around the
// call. For cycle-detection problems a "pos" parameter reconnects the
// tail to an earlier node by index and is consumed by the constructor
// instead of being passed to the user's function.
type linkedListStrategy struct{}

func (linkedListStrategy) Kind() Kind { return LinkedList }

func (linkedListStrategy) PrepareCode(source string, language string) (string, error) {
	switch normalizeLanguage(language) {
	case "python":
		if strings.Contains(source, "class ListNode") {
			return source, nil
		}
		return pyLinkedListHelpers + "\n" + source, nil
	case "javascript":
		if strings.Contains(source, "function ListNode") || strings.Contains(source, "class ListNode") {
			return source, nil
		}
		return jsLinkedListHelpers + "\n" + source, nil
	}
	return "", fmt.Errorf("linked list problems are not supported for language %q", language)
}

func (linkedListStrategy) CallExpr(plan callplan.CallPlan, language string) (string, error) {
	hasPos := containsStr(plan.ParamNames, "pos")

	var lines []string
	var args []string
	firstList := ""
	for _, name := range plan.ParamNames {
		if name == "pos" && hasPos {
			continue // consumed by the cycle-aware constructor
		}
		if plan.ParamKind(name) == callplan.LinkedList {
			if firstList == "" {
				firstList = name
			}
			lines = append(lines, convertList(name, hasPos, language))
		}
		args = append(args, name)
	}

	call := receiver(plan, language) + plan.FuncName + "(" + strings.Join(args, ", ") + ")"

	switch normalizeLanguage(language) {
	case "python":
		lines = append(lines, "_ret = "+call)
		switch {
		case plan.ReturnsVoid && firstList != "":
			// re-read the mutated list through the same variable
			lines = append(lines, "_actual = _list_to_arr("+firstList+")")
		case plan.ReturnsStructural == callplan.LinkedList:
			lines = append(lines, "_actual = _list_to_arr(_ret)")
		default:
			lines = append(lines, "_actual = _ret")
		}
		return strings.Join(lines, "\n"), nil
	case "javascript":
		lines = append(lines, "let _ret = "+call+";")
		switch {
		case plan.ReturnsVoid && firstList != "":
			lines = append(lines, "let _actual = _listToArr("+firstList+");")
		case plan.ReturnsStructural == callplan.LinkedList:
			lines = append(lines, "let _actual = _listToArr(_ret);")
		default:
			lines = append(lines, "let _actual = _ret === undefined ? null : _ret;")
		}
		return strings.Join(lines, "\n"), nil
	}
	return "", fmt.Errorf("linked list problems are not supported for language %q", language)
}

func convertList(name string, hasPos bool, language string) string {
	switch normalizeLanguage(language) {
	case "python":
		if hasPos {
			return name + " = _arr_to_list(" + name + ", pos)"
		}
		return name + " = _arr_to_list(" + name + ")"
	case "javascript":
		if hasPos {
			return name + " = _arrToList(" + name + ", pos);"
		}
		return name + " = _arrToList(" + name + ");"
	}
	return ""
}

func containsStr(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}

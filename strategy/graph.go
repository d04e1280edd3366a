package strategy

import (
	"fmt"
	"strings"

	"github.com/algoprep/grader/callplan"
)

// graphStrategy converts adjacency lists to a node graph with one node
// per distinct value. The output converter walks the graph breadth
// first so the adjacency list it rebuilds has a canonical ordering.
type graphStrategy struct{}

func (graphStrategy) Kind() Kind { return Graph }

func (graphStrategy) PrepareCode(source string, language string) (string, error) {
	switch normalizeLanguage(language) {
	case "python":
		if strings.Contains(source, "class Node") {
			return source, nil
		}
		return pyGraphHelpers + "\n" + source, nil
	case "javascript":
		if strings.Contains(source, "function Node") || strings.Contains(source, "class Node") {
			return source, nil
		}
		return jsGraphHelpers + "\n" + source, nil
	}
	return "", fmt.Errorf("graph problems are not supported for language %q", language)
}

func (graphStrategy) CallExpr(plan callplan.CallPlan, language string) (string, error) {
	lang := normalizeLanguage(language)
	if lang != "python" && lang != "javascript" {
		return "", fmt.Errorf("graph problems are not supported for language %q", language)
	}

	var lines []string
	for _, name := range plan.ParamNames {
		if plan.ParamKind(name) != callplan.Graph {
			continue
		}
		if lang == "python" {
			lines = append(lines, name+" = _adj_to_graph("+name+")")
		} else {
			lines = append(lines, name+" = _adjToGraph("+name+");")
		}
	}

	call := receiver(plan, language) + plan.FuncName + "(" + strings.Join(plan.ParamNames, ", ") + ")"

	if lang == "python" {
		lines = append(lines, "_ret = "+call)
		if plan.ReturnsStructural == callplan.Graph {
			lines = append(lines, "_actual = _graph_to_adj(_ret)")
		} else {
			lines = append(lines, "_actual = _ret")
		}
	} else {
		lines = append(lines, "let _ret = "+call+";")
		if plan.ReturnsStructural == callplan.Graph {
			lines = append(lines, "let _actual = _graphToAdj(_ret);")
		} else {
			lines = append(lines, "let _actual = _ret === undefined ? null : _ret;")
		}
	}
	return strings.Join(lines, "\n"), nil
}

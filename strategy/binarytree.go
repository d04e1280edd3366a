package strategy

import (
	"fmt"
	"strings"

	"github.com/algoprep/grader/callplan"
)

// binaryTreeStrategy converts level-order arrays to TreeNode trees.
// Lowest-common-ancestor shaped signatures build the tree once and pass
// node references located by value for the two targets.
type binaryTreeStrategy struct{}

func (binaryTreeStrategy) Kind() Kind { return BinaryTree }

func (binaryTreeStrategy) PrepareCode(source string, language string) (string, error) {
	switch normalizeLanguage(language) {
	case "python":
		if strings.Contains(source, "class TreeNode") {
			return source, nil
		}
		return pyBinaryTreeHelpers + "\n" + source, nil
	case "javascript":
		if strings.Contains(source, "function TreeNode") || strings.Contains(source, "class TreeNode") {
			return source, nil
		}
		return jsBinaryTreeHelpers + "\n" + source, nil
	}
	return "", fmt.Errorf("binary tree problems are not supported for language %q", language)
}

func (binaryTreeStrategy) CallExpr(plan callplan.CallPlan, language string) (string, error) {
	lang := normalizeLanguage(language)
	if lang != "python" && lang != "javascript" {
		return "", fmt.Errorf("binary tree problems are not supported for language %q", language)
	}

	if isLcaShape(plan) {
		return lcaCallExpr(plan, lang), nil
	}

	var lines []string
	firstTree := ""
	for _, name := range plan.ParamNames {
		if plan.ParamKind(name) != callplan.BinaryTree {
			continue
		}
		if firstTree == "" {
			firstTree = name
		}
		if lang == "python" {
			lines = append(lines, name+" = _arr_to_tree("+name+")")
		} else {
			lines = append(lines, name+" = _arrToTree("+name+");")
		}
	}

	call := receiver(plan, language) + plan.FuncName + "(" + strings.Join(plan.ParamNames, ", ") + ")"

	if lang == "python" {
		lines = append(lines, "_ret = "+call)
		switch {
		case plan.ReturnsVoid && firstTree != "":
			lines = append(lines, "_actual = _tree_to_arr("+firstTree+")")
		case plan.ReturnsStructural == callplan.BinaryTree:
			lines = append(lines, "_actual = _tree_to_arr(_ret)")
		default:
			lines = append(lines, "_actual = _ret")
		}
	} else {
		lines = append(lines, "let _ret = "+call+";")
		switch {
		case plan.ReturnsVoid && firstTree != "":
			lines = append(lines, "let _actual = _treeToArr("+firstTree+");")
		case plan.ReturnsStructural == callplan.BinaryTree:
			lines = append(lines, "let _actual = _treeToArr(_ret);")
		default:
			lines = append(lines, "let _actual = _ret === undefined ? null : _ret;")
		}
	}
	return strings.Join(lines, "\n"), nil
}

// isLcaShape recognizes the (root, p, q) convention where p and q are
// stored as plain values but the user's function expects resolved node
// references inside root's tree.
func isLcaShape(plan callplan.CallPlan) bool {
	if strings.EqualFold(plan.FuncName, "lowestCommonAncestor") {
		return true
	}
	return len(plan.ParamNames) == 3 &&
		plan.ParamNames[0] == "root" &&
		plan.ParamNames[1] == "p" &&
		plan.ParamNames[2] == "q"
}

func lcaCallExpr(plan callplan.CallPlan, lang string) string {
	root, p, q := plan.ParamNames[0], plan.ParamNames[1], plan.ParamNames[2]
	call := receiver(plan, lang) + plan.FuncName +
		"(" + root + ", " + p + ", " + q + ")"
	if lang == "python" {
		return strings.Join([]string{
			root + " = _arr_to_tree(" + root + ")",
			p + " = _find_node(" + root + ", " + p + ")",
			q + " = _find_node(" + root + ", " + q + ")",
			"_ret = " + call,
			"_actual = _ret.val if _ret else None",
		}, "\n")
	}
	return strings.Join([]string{
		root + " = _arrToTree(" + root + ");",
		p + " = _findNode(" + root + ", " + p + ");",
		q + " = _findNode(" + root + ", " + q + ");",
		"let _ret = " + call + ";",
		"let _actual = _ret ? _ret.val : null;",
	}, "\n")
}

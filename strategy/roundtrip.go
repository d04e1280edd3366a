package strategy

import (
	"fmt"
	"strings"

	"github.com/algoprep/grader/callplan"
)

// roundTripStrategy grades problems whose contract is a user-defined
// pair of inverse operations (encode/decode, serialize/deserialize).
// The round-tripped value is the test's actual output; the intermediate
// encoded representation is never compared against anything.
type roundTripStrategy struct {
	kind   Kind
	first  string // encode / serialize
	second string // decode / deserialize
}

func (s roundTripStrategy) Kind() Kind { return s.kind }

func (s roundTripStrategy) PrepareCode(source string, language string) (string, error) {
	lang := normalizeLanguage(language)
	if lang != "python" && lang != "javascript" {
		return "", fmt.Errorf("%s problems are not supported for language %q", s.kind, language)
	}
	if s.kind != SerializeDeserialize {
		return source, nil
	}
	// serialize/deserialize round-trips a binary tree value
	return binaryTreeStrategy{}.PrepareCode(source, language)
}

func (s roundTripStrategy) CallExpr(plan callplan.CallPlan, language string) (string, error) {
	param := "data"
	if len(plan.ParamNames) > 0 {
		param = plan.ParamNames[0]
	}
	class := plan.ClassName
	if class == "" || class == "Solution" {
		class = "Codec"
	}

	switch normalizeLanguage(language) {
	case "python":
		if s.kind == SerializeDeserialize {
			return strings.Join([]string{
				"_codec = " + class + "()",
				param + " = _arr_to_tree(" + param + ")",
				"_actual = _tree_to_arr(_codec." + s.second + "(_codec." + s.first + "(" + param + ")))",
			}, "\n"), nil
		}
		return strings.Join([]string{
			"_codec = " + class + "()",
			"_actual = _codec." + s.second + "(_codec." + s.first + "(" + param + "))",
		}, "\n"), nil
	case "javascript":
		if s.kind == SerializeDeserialize {
			if isJsFunctionPair(plan) {
				return strings.Join([]string{
					param + " = _arrToTree(" + param + ");",
					"let _actual = _treeToArr(" + s.second + "(" + s.first + "(" + param + ")));",
				}, "\n"), nil
			}
			return strings.Join([]string{
				"const _codec = new " + class + "();",
				param + " = _arrToTree(" + param + ");",
				"let _actual = _treeToArr(_codec." + s.second + "(_codec." + s.first + "(" + param + ")));",
			}, "\n"), nil
		}
		if isJsFunctionPair(plan) {
			return "let _actual = " + s.second + "(" + s.first + "(" + param + "));", nil
		}
		return strings.Join([]string{
			"const _codec = new " + class + "();",
			"let _actual = _codec." + s.second + "(_codec." + s.first + "(" + param + "));",
		}, "\n"), nil
	}
	return "", fmt.Errorf("%s problems are not supported for language %q", s.kind, language)
}

// isJsFunctionPair reports whether the user wrote the pair as two free
// functions (the common JavaScript form) rather than a class.
func isJsFunctionPair(plan callplan.CallPlan) bool {
	return plan.ClassName == "" && plan.CallKind == callplan.Standalone
}

package strategy

import (
	"fmt"
	"strings"

	"github.com/algoprep/grader/callplan"
)

// classBasedStrategy drives one persistent instance through an
// operation log: a [constructorName, method1, ...] sequence paired with
// a parallel values sequence. Each operation yields one result; the
// constructor yields null.
type classBasedStrategy struct{}

func (classBasedStrategy) Kind() Kind { return ClassBased }

func (classBasedStrategy) PrepareCode(source string, language string) (string, error) {
	switch normalizeLanguage(language) {
	case "python", "javascript":
		return source, nil
	}
	return "", fmt.Errorf("stateful class problems are not supported for language %q", language)
}

func (classBasedStrategy) CallExpr(plan callplan.CallPlan, language string) (string, error) {
	ops, vals := "operations", "values"
	if len(plan.ParamNames) >= 2 {
		ops, vals = plan.ParamNames[0], plan.ParamNames[1]
	}

	switch normalizeLanguage(language) {
	case "python":
		return strings.Join([]string{
			"_out = [None]",
			"_inst = globals()[" + ops + "[0]](*(" + vals + "[0] or []))",
			"for _i in range(1, len(" + ops + ")):",
			"    _r = getattr(_inst, " + ops + "[_i])(*(" + vals + "[_i] or []))",
			"    _out.append(_r)",
			"_actual = _out",
		}, "\n"), nil
	case "javascript":
		return strings.Join([]string{
			"const _out = [null];",
			"const _ctor = eval(" + ops + "[0]);",
			"const _inst = new _ctor(...(" + vals + "[0] || []));",
			"for (let _i = 1; _i < " + ops + ".length; _i++) {",
			"    const _r = _inst[" + ops + "[_i]](...(" + vals + "[_i] || []));",
			"    _out.push(_r === undefined ? null : _r);",
			"}",
			"let _actual = _out;",
		}, "\n"), nil
	}
	return "", fmt.Errorf("stateful class problems are not supported for language %q", language)
}

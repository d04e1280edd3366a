package langexec

import (
	"fmt"

	"github.com/algoprep/grader/callplan"
	"github.com/algoprep/grader/testparam"
)

type javascriptExecutor struct{}

func (javascriptExecutor) Language() string        { return "javascript" }
func (javascriptExecutor) SandboxLanguageID() int  { return sandboxIDJavaScript }
func (javascriptExecutor) UsesIndexProtocol() bool { return true }

func (e javascriptExecutor) BuildProgram(prepared string, callBlock string, tests []testparam.Params, plan callplan.CallPlan) (string, error) {
	testsLiteral, err := marshalTests(tests)
	if err != nil {
		return "", err
	}

	driver := "const _TESTS = " + testsLiteral + ";\n\n"
	driver += "function _runCase(_args) {\n"
	for _, name := range plan.ParamNames {
		driver += fmt.Sprintf("    let %s = _args[%q];\n", name, name)
	}
	driver += indent(callBlock, "    ") + "\n"
	driver += "    return _actual === undefined ? null : _actual;\n"
	driver += "}\n\n"
	driver += `const _idx = parseInt(require("fs").readFileSync(0, "utf8").trim(), 10);
console.log(JSON.stringify(_runCase(_TESTS[_idx])));`

	b := newProgramBuilder("//")
	b.Add("solution", prepared)
	b.Add("driver", driver)
	return b.Render(), nil
}

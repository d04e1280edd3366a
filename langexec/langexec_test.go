package langexec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/algoprep/grader/callplan"
	"github.com/algoprep/grader/srvcerror"
	"github.com/algoprep/grader/testparam"
)

func twoSumTests() []testparam.Params {
	return []testparam.Params{
		{
			{Name: "nums", Value: []any{2.0, 7.0, 11.0, 15.0}},
			{Name: "target", Value: 9.0},
		},
		{
			{Name: "nums", Value: []any{3.0, 3.0}},
			{Name: "target", Value: 6.0},
		},
	}
}

func TestGetResolvesCanonicalNamesAndAliases(t *testing.T) {
	for _, language := range []string{"python3", "python", "PY", "javascript", "js", "node", "java"} {
		exec, err := Get(language)
		require.NoError(t, err, language)
		assert.NotEmpty(t, exec.Language())
	}
}

func TestGetUnknownLanguageEnumeratesSupportedSet(t *testing.T) {
	_, err := Get("cobol")
	require.Error(t, err)

	srvcErr := &srvcerror.Error{}
	require.ErrorAs(t, err, &srvcErr)
	assert.Equal(t, ErrCodeUnsupportedLanguage, srvcErr.ErrorCode())
	for _, name := range []string{"java", "javascript", "python3"} {
		assert.Contains(t, srvcErr.Error(), name)
	}
}

func TestSupportedIsSorted(t *testing.T) {
	assert.Equal(t, []string{"java", "javascript", "python3"}, Supported())
}

func TestSandboxLanguageIDs(t *testing.T) {
	py, _ := Get("python3")
	js, _ := Get("javascript")
	jv, _ := Get("java")

	assert.Equal(t, 71, py.SandboxLanguageID())
	assert.Equal(t, 63, js.SandboxLanguageID())
	assert.Equal(t, 62, jv.SandboxLanguageID())
}

func TestPythonBuildProgram(t *testing.T) {
	exec, err := Get("python3")
	require.NoError(t, err)

	plan := callplan.CallPlan{
		FuncName:   "twoSum",
		ClassName:  "Solution",
		CallKind:   callplan.BoundMethod,
		ParamNames: []string{"nums", "target"},
	}
	prog, err := exec.BuildProgram(
		"class Solution:\n    def twoSum(self, nums, target):\n        return [0, 1]",
		"_actual = Solution().twoSum(nums, target)",
		twoSumTests(), plan)
	require.NoError(t, err)

	// embedded tests, parameter bindings, index protocol, single JSON line out
	assert.Contains(t, prog, `_TESTS = [{"nums":[2,7,11,15],"target":9},{"nums":[3,3],"target":6}]`)
	assert.Contains(t, prog, `nums = _args.get("nums")`)
	assert.Contains(t, prog, `target = _args.get("target")`)
	assert.Contains(t, prog, "_idx = int(sys.stdin.readline().strip())")
	assert.Contains(t, prog, "print(json.dumps(_run_case(_TESTS[_idx])))")

	// helpers and driver come after the user's code so user definitions win
	assert.Less(t,
		strings.Index(prog, "class Solution"),
		strings.Index(prog, "_TESTS ="))
}

func TestPythonBuildProgramTranslatesLiterals(t *testing.T) {
	exec, _ := Get("python3")
	tests := []testparam.Params{{
		{Name: "flag", Value: true},
		{Name: "missing", Value: nil},
		{Name: "word", Value: "untrue null"},
	}}
	plan := callplan.CallPlan{FuncName: "solve", ParamNames: []string{"flag", "missing", "word"}}

	prog, err := exec.BuildProgram("def solve(flag, missing, word):\n    return flag", "_actual = solve(flag, missing, word)", tests, plan)
	require.NoError(t, err)

	assert.Contains(t, prog, `"flag":True`)
	assert.Contains(t, prog, `"missing":None`)
	// literal spellings inside strings stay untouched
	assert.Contains(t, prog, `"word":"untrue null"`)
	assert.NotContains(t, prog, "untrue None")
}

func TestTranslatePyLiterals(t *testing.T) {
	assert.Equal(t, `[True,False,None]`, translatePyLiterals(`[true,false,null]`))
	assert.Equal(t, `{"a":"true","b":True}`, translatePyLiterals(`{"a":"true","b":true}`))
	assert.Equal(t, `"nullable"`, translatePyLiterals(`"nullable"`))
	assert.Equal(t, `["esc\"true",True]`, translatePyLiterals(`["esc\"true",true]`))
	// identifier continuation blocks the rewrite
	assert.Equal(t, `truex`, translatePyLiterals(`truex`))
}

func TestJavaScriptBuildProgram(t *testing.T) {
	exec, err := Get("javascript")
	require.NoError(t, err)

	plan := callplan.CallPlan{FuncName: "twoSum", ParamNames: []string{"nums", "target"}}
	prog, err := exec.BuildProgram(
		"var twoSum = function(nums, target) { return [0, 1]; };",
		"let _ret = twoSum(nums, target);\nlet _actual = _ret === undefined ? null : _ret;",
		twoSumTests(), plan)
	require.NoError(t, err)

	assert.Contains(t, prog, `const _TESTS = [{"nums":[2,7,11,15],"target":9},{"nums":[3,3],"target":6}];`)
	assert.Contains(t, prog, `let nums = _args["nums"];`)
	assert.Contains(t, prog, "JSON.stringify")
}

func TestJavaBuildProgramTypedLiterals(t *testing.T) {
	exec, err := Get("java")
	require.NoError(t, err)

	plan := callplan.CallPlan{
		FuncName:   "twoSum",
		ClassName:  "Solution",
		CallKind:   callplan.BoundMethod,
		ParamNames: []string{"nums", "target"},
		ParamTypes: map[string]string{"nums": "int[]", "target": "int"},
		ReturnType: "int[]",
	}
	prog, err := exec.BuildProgram(
		"class Solution {\n    public int[] twoSum(int[] nums, int target) { return new int[]{0, 1}; }\n}",
		"new Solution().twoSum(nums, target)",
		twoSumTests(), plan)
	require.NoError(t, err)

	assert.Contains(t, prog, "int[] nums = new int[]{2, 7, 11, 15};")
	assert.Contains(t, prog, "int target = 9;")
	assert.Contains(t, prog, "case 1: {")
	assert.Contains(t, prog, "_actual = new Solution().twoSum(nums, target);")
	assert.Contains(t, prog, "System.out.println(_toJson(_actual));")
}

func TestJavaBuildProgramRequiresParamTypes(t *testing.T) {
	exec, _ := Get("java")
	plan := callplan.CallPlan{FuncName: "twoSum", ParamNames: []string{"nums", "target"}}

	_, err := exec.BuildProgram("class Solution {}", "x", twoSumTests(), plan)
	assert.Error(t, err)
}

func TestJavaLiteral(t *testing.T) {
	cases := []struct {
		value    any
		declType string
		want     string
	}{
		{9.0, "int", "9"},
		{9.0, "long", "9L"},
		{1.5, "double", "1.5"},
		{true, "boolean", "true"},
		{"a\"b", "String", `"a\"b"`},
		{"x", "char", "'x'"},
		{[]any{1.0, 2.0}, "int[]", "new int[]{1, 2}"},
		{[]any{"a", "b"}, "String[]", `new String[]{"a", "b"}`},
		{[]any{[]any{1.0}, []any{2.0, 3.0}}, "int[][]", "new int[][]{new int[]{1}, new int[]{2, 3}}"},
		{[]any{1.0, 2.0}, "List<Integer>", "new ArrayList<>(Arrays.asList(1, 2))"},
		{nil, "String", "null"},
	}
	for _, c := range cases {
		got, err := javaLiteral(c.value, c.declType)
		require.NoError(t, err, c.declType)
		assert.Equal(t, c.want, got)
	}
}

func TestJavaLiteralRejectsUnsupported(t *testing.T) {
	_, err := javaLiteral(map[string]any{}, "Map<String, Integer>")
	assert.Error(t, err)

	_, err = javaLiteral(nil, "int")
	assert.Error(t, err)

	_, err = javaLiteral("not a number", "int")
	assert.Error(t, err)
}

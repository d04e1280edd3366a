package strategy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/algoprep/grader/callplan"
	"github.com/algoprep/grader/strategy"
)

func standardPlan() callplan.CallPlan {
	return callplan.CallPlan{
		FuncName:   "twoSum",
		ClassName:  "Solution",
		CallKind:   callplan.BoundMethod,
		ParamNames: []string{"nums", "target"},
		StructuralKinds: map[string]callplan.StructKind{
			"nums": callplan.StructNone, "target": callplan.StructNone,
		},
	}
}

func TestSelectStandardByDefault(t *testing.T) {
	s := strategy.Select("two-sum", "class Solution: ...", standardPlan())
	assert.Equal(t, strategy.Standard, s.Kind())
}

func TestSelectLinkedListFromParamKind(t *testing.T) {
	plan := callplan.CallPlan{
		FuncName:   "reverseList",
		ParamNames: []string{"head"},
		StructuralKinds: map[string]callplan.StructKind{
			"head": callplan.LinkedList,
		},
		ReturnsStructural: callplan.LinkedList,
	}
	s := strategy.Select("reverse-linked-list", "def reverseList(head): ...", plan)
	assert.Equal(t, strategy.LinkedList, s.Kind())
}

func TestSelectBinaryTreeFromReturnKind(t *testing.T) {
	plan := callplan.CallPlan{
		FuncName:          "invertTree",
		ParamNames:        []string{"root"},
		StructuralKinds:   map[string]callplan.StructKind{"root": callplan.BinaryTree},
		ReturnsStructural: callplan.BinaryTree,
	}
	s := strategy.Select("invert-binary-tree", "...", plan)
	assert.Equal(t, strategy.BinaryTree, s.Kind())
}

func TestSelectClassBasedForStatefulPlan(t *testing.T) {
	plan := callplan.CallPlan{
		FuncName:   "MinStack",
		ClassName:  "MinStack",
		CallKind:   callplan.StatefulClass,
		ParamNames: []string{"operations", "values"},
	}
	s := strategy.Select("min-stack", "class MinStack: ...", plan)
	assert.Equal(t, strategy.ClassBased, s.Kind())
}

func TestSelectEncodeDecodeByProblemID(t *testing.T) {
	s := strategy.Select("encode-and-decode-strings", "def solve(): ...", standardPlan())
	assert.Equal(t, strategy.EncodeDecode, s.Kind())
}

func TestSelectEncodeDecodeByDefinedPair(t *testing.T) {
	src := "class Codec:\n    def encode(self, strs):\n        pass\n    def decode(self, s):\n        pass\n"
	s := strategy.Select("unknown-problem", src, standardPlan())
	assert.Equal(t, strategy.EncodeDecode, s.Kind())
}

func TestSelectPairNeedsDefinitionsNotCalls(t *testing.T) {
	// calling helpers named encode/decode must not flip the strategy
	src := "def solve(s):\n    return decode(encode(s))\n"
	s := strategy.Select("unknown-problem", src, callplan.CallPlan{
		FuncName:   "solve",
		ParamNames: []string{"s"},
	})
	assert.Equal(t, strategy.Standard, s.Kind())
}

func TestSelectSerializeDeserialize(t *testing.T) {
	s := strategy.Select("serialize-and-deserialize-binary-tree", "...", standardPlan())
	assert.Equal(t, strategy.SerializeDeserialize, s.Kind())
}

func TestIsSmartCompare(t *testing.T) {
	assert.True(t, strategy.IsSmartCompare("group-anagrams"))
	assert.True(t, strategy.IsSmartCompare("3sum"))
	assert.False(t, strategy.IsSmartCompare("two-sum"))
}

func TestStandardCallExprPython(t *testing.T) {
	block, err := strategyCallExpr(t, "two-sum", standardPlan(), "python3")
	require.NoError(t, err)
	assert.Equal(t, "_actual = Solution().twoSum(nums, target)", block)
}

func TestStandardCallExprVoidReturnGradesMutatedArgument(t *testing.T) {
	plan := callplan.CallPlan{
		FuncName:    "rotate",
		ClassName:   "Solution",
		CallKind:    callplan.BoundMethod,
		ParamNames:  []string{"matrix"},
		ReturnsVoid: true,
	}
	block, err := strategyCallExpr(t, "rotate-image", plan, "python3")
	require.NoError(t, err)
	assert.Equal(t, "Solution().rotate(matrix)\n_actual = matrix", block)
}

func TestLinkedListCallExprConsumesPos(t *testing.T) {
	plan := callplan.CallPlan{
		FuncName:   "hasCycle",
		ParamNames: []string{"head", "pos"},
		StructuralKinds: map[string]callplan.StructKind{
			"head": callplan.LinkedList, "pos": callplan.StructNone,
		},
	}
	block, err := strategyCallExpr(t, "linked-list-cycle", plan, "python3")
	require.NoError(t, err)

	assert.Contains(t, block, "head = _arr_to_list(head, pos)")
	// pos feeds the constructor only, never the user's function
	assert.Contains(t, block, "hasCycle(head)")
	assert.NotContains(t, block, "hasCycle(head, pos)")
}

func TestLinkedListCallExprVoidReturn(t *testing.T) {
	plan := callplan.CallPlan{
		FuncName:    "reorderList",
		ClassName:   "Solution",
		CallKind:    callplan.BoundMethod,
		ParamNames:  []string{"head"},
		ReturnsVoid: true,
		StructuralKinds: map[string]callplan.StructKind{
			"head": callplan.LinkedList,
		},
	}
	block, err := strategyCallExpr(t, "reorder-list", plan, "python3")
	require.NoError(t, err)
	assert.Contains(t, block, "_actual = _list_to_arr(head)")
}

func TestBinaryTreeLcaCallExpr(t *testing.T) {
	plan := callplan.CallPlan{
		FuncName:   "lowestCommonAncestor",
		ClassName:  "Solution",
		CallKind:   callplan.BoundMethod,
		ParamNames: []string{"root", "p", "q"},
		StructuralKinds: map[string]callplan.StructKind{
			"root": callplan.BinaryTree,
			"p":    callplan.BinaryTree,
			"q":    callplan.BinaryTree,
		},
	}
	block, err := strategyCallExpr(t, "lowest-common-ancestor-of-a-binary-tree", plan, "python3")
	require.NoError(t, err)

	assert.Contains(t, block, "p = _find_node(root, p)")
	assert.Contains(t, block, "q = _find_node(root, q)")
	assert.Contains(t, block, "_actual = _ret.val if _ret else None")
}

func TestLinkedListPrepareCodeInjectsHelpersBeforeUserCode(t *testing.T) {
	plan := callplan.CallPlan{
		FuncName:        "reverseList",
		ParamNames:      []string{"head"},
		StructuralKinds: map[string]callplan.StructKind{"head": callplan.LinkedList},
	}
	s := strategy.Select("reverse-linked-list", "def reverseList(head): ...", plan)

	prepared, err := s.PrepareCode("def reverseList(head): ...", "python3")
	require.NoError(t, err)
	assert.Less(t,
		indexOf(prepared, "class ListNode"),
		indexOf(prepared, "def reverseList"))
}

func TestLinkedListPrepareCodeKeepsUserDefinition(t *testing.T) {
	src := "class ListNode:\n    pass\n\ndef reverseList(head):\n    return head\n"
	plan := callplan.CallPlan{
		FuncName:        "reverseList",
		ParamNames:      []string{"head"},
		StructuralKinds: map[string]callplan.StructKind{"head": callplan.LinkedList},
	}
	s := strategy.Select("reverse-linked-list", src, plan)

	prepared, err := s.PrepareCode(src, "python3")
	require.NoError(t, err)
	assert.Equal(t, src, prepared)
}

func TestClassBasedUnsupportedForJava(t *testing.T) {
	plan := callplan.CallPlan{
		FuncName:   "MinStack",
		ClassName:  "MinStack",
		CallKind:   callplan.StatefulClass,
		ParamNames: []string{"operations", "values"},
	}
	s := strategy.Select("min-stack", "class MinStack { }", plan)

	_, err := s.CallExpr(plan, "java")
	assert.Error(t, err)
}

func strategyCallExpr(t *testing.T, problemID string, plan callplan.CallPlan, language string) (string, error) {
	t.Helper()
	s := strategy.Select(problemID, "", plan)
	return s.CallExpr(plan, language)
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}

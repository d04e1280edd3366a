package strategy

import (
	"github.com/algoprep/grader/callplan"
)

// Kind identifies one of the closed set of code-generation strategies.
type Kind int

const (
	Standard Kind = iota
	LinkedList
	BinaryTree
	Graph
	ClassBased
	EncodeDecode
	SerializeDeserialize
)

func (k Kind) String() string {
	switch k {
	case Standard:
		return "standard"
	case LinkedList:
		return "linked_list"
	case BinaryTree:
		return "binary_tree"
	case Graph:
		return "graph"
	case ClassBased:
		return "class_based"
	case EncodeDecode:
		return "encode_decode"
	case SerializeDeserialize:
		return "serialize_deserialize"
	}
	return "unknown"
}

// Strategy is a stateless code-generation policy. PrepareCode injects
// the helper types and converters the call needs into the user's
// source; CallExpr builds the invocation block executed per test case.
// The block may span several lines; its last statement must assign the
// test outcome to the _actual variable. It runs inside the driver
// emitted by the language executor, where every parameter name from
// the call plan is already bound to the test case's raw JSON value.
type Strategy interface {
	Kind() Kind
	PrepareCode(source string, language string) (string, error)
	CallExpr(plan callplan.CallPlan, language string) (string, error)
}

// receiver returns the expression the call is made on: an instance for
// Solution-style methods, nothing for standalone functions.
func receiver(plan callplan.CallPlan, language string) string {
	if plan.CallKind != callplan.BoundMethod {
		return ""
	}
	class := plan.ClassName
	if class == "" {
		class = "Solution"
	}
	switch normalizeLanguage(language) {
	case "python":
		return class + "()."
	case "javascript":
		return "new " + class + "()."
	case "java":
		return "new " + class + "()."
	}
	return ""
}

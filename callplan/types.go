package callplan

// CallKind says how the user's code must be invoked.
type CallKind int

const (
	Standalone CallKind = iota // plain top-level function
	BoundMethod                // method on a Solution-style instance
	StatefulClass              // one persistent instance driven by an operation log
)

func (k CallKind) String() string {
	switch k {
	case Standalone:
		return "standalone"
	case BoundMethod:
		return "bound_method"
	case StatefulClass:
		return "stateful_class"
	}
	return "unknown"
}

// StructKind is a recognized data-structure shape that needs conversion
// between its flat JSON form and an in-language object graph.
type StructKind int

const (
	StructNone StructKind = iota
	LinkedList
	BinaryTree
	Graph
)

func (k StructKind) String() string {
	switch k {
	case LinkedList:
		return "linked_list"
	case BinaryTree:
		return "binary_tree"
	case Graph:
		return "graph"
	}
	return "none"
}

// CallPlan is the resolved description of how to invoke user code for a
// submission. It is computed once per submission and threaded through
// strategy selection, code generation and result interpretation; it is
// never re-derived downstream.
type CallPlan struct {
	FuncName   string
	ClassName  string // receiver class for BoundMethod / StatefulClass
	ParamNames []string
	CallKind   CallKind

	// StructuralKinds has exactly one entry per parameter name.
	StructuralKinds map[string]StructKind

	ReturnsStructural StructKind
	ReturnsVoid       bool

	// ParamTypes carries declared parameter types when the source
	// language exposes them (Java); empty for dynamic languages.
	ParamTypes map[string]string
	ReturnType string

	// Warnings carries analysis ambiguities (e.g. several plausible
	// function definitions with no canonical match) for the caller.
	Warnings []string
}

// ParamKind returns the structural kind for a parameter, StructNone for
// unknown names.
func (p CallPlan) ParamKind(name string) StructKind {
	if k, ok := p.StructuralKinds[name]; ok {
		return k
	}
	return StructNone
}

// HasStructural reports whether any parameter or the return value is a
// recognized structural type.
func (p CallPlan) HasStructural() bool {
	if p.ReturnsStructural != StructNone {
		return true
	}
	for _, k := range p.StructuralKinds {
		if k != StructNone {
			return true
		}
	}
	return false
}

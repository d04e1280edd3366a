package callplan

import (
	"fmt"
	"regexp"
	"strings"
)

// candidate is one discovered function/method definition.
type candidate struct {
	Name       string
	Params     []string
	ParamAnnot map[string]string
	Return     string
	Class      string
	SelfBound  bool
	Order      int
}

// Analyze inspects user source code and the problem's canonical
// signature and resolves the CallPlan for the submission. It returns an
// error only when no callable definition can be found at all; every
// other ambiguity degrades to a warning on the plan.
func Analyze(source, canonicalSig, language string) (CallPlan, error) {
	sigName, sigParams := ParseSignature(canonicalSig)

	var cands []candidate
	switch normalizeLanguage(language) {
	case "python":
		cands = discoverPython(source)
	case "javascript":
		cands = discoverJavaScript(source)
	case "java":
		cands = discoverJava(source)
	default:
		cands = discoverPython(source)
	}

	cands = dropPrivate(cands)
	if len(cands) == 0 {
		return CallPlan{}, fmt.Errorf("no function definition found in submitted code")
	}

	plan := CallPlan{}

	if stateful, ok := detectStateful(source, language, cands, sigName); ok {
		plan = stateful
	} else {
		chosen, warning := pickCandidate(cands, sigName)
		plan.FuncName = chosen.Name
		plan.ClassName = chosen.Class
		plan.ParamNames = chosen.Params
		if warning != "" {
			plan.Warnings = append(plan.Warnings, warning)
		}
		if chosen.SelfBound || chosen.Class != "" {
			plan.CallKind = BoundMethod
		} else {
			plan.CallKind = Standalone
		}
		plan.ReturnsVoid = isVoidReturn(chosen.Return)
		plan.ReturnsStructural = structKindOfAnnotation(chosen.Return)
		plan.ReturnType = chosen.Return
		if len(chosen.ParamAnnot) > 0 {
			plan.ParamTypes = chosen.ParamAnnot
		}

		// the declared signature is authoritative for parameter names
		// and count when present
		if len(sigParams) > 0 {
			plan.ParamNames = sigParams
		}

		plan.StructuralKinds = make(map[string]StructKind, len(plan.ParamNames))
		for _, name := range plan.ParamNames {
			plan.StructuralKinds[name] = structKindOf(chosen.ParamAnnot[name], name, source)
		}
	}

	return plan, nil
}

// ParseSignature parses a canonical signature string such as
// "twoSum(nums, target)" or "def addTwoNumbers(self, l1, l2) -> ListNode".
func ParseSignature(sig string) (name string, params []string) {
	sig = strings.TrimSpace(sig)
	if sig == "" {
		return "", nil
	}
	sig = strings.TrimPrefix(sig, "def ")
	open := strings.Index(sig, "(")
	if open < 0 {
		return strings.TrimSpace(sig), nil
	}
	name = strings.TrimSpace(sig[:open])
	closing := strings.LastIndex(sig, ")")
	if closing < open {
		closing = len(sig)
	}
	for _, p := range strings.Split(sig[open+1:closing], ",") {
		p = strings.TrimSpace(p)
		if p == "" || p == "self" {
			continue
		}
		// drop type annotations and defaults
		if i := strings.IndexAny(p, ":="); i >= 0 {
			p = strings.TrimSpace(p[:i])
		}
		// java style "int[] nums"
		if fields := strings.Fields(p); len(fields) > 1 {
			p = fields[len(fields)-1]
		}
		if p != "" {
			params = append(params, p)
		}
	}
	return name, params
}

func pickCandidate(cands []candidate, sigName string) (candidate, string) {
	if sigName != "" {
		for _, c := range cands {
			if c.Name == sigName {
				return c, ""
			}
		}
	}
	// prefer Solution methods over loose helpers
	for _, c := range cands {
		if c.Class == "Solution" {
			return c, ambiguityWarning(cands, sigName, c)
		}
	}
	return cands[0], ambiguityWarning(cands, sigName, cands[0])
}

func ambiguityWarning(cands []candidate, sigName string, chosen candidate) string {
	if len(cands) < 2 {
		return ""
	}
	names := make([]string, len(cands))
	for i, c := range cands {
		names[i] = c.Name
	}
	return fmt.Sprintf(
		"multiple function definitions found (%s) and none matches the declared signature %q; grading against %q",
		strings.Join(names, ", "), sigName, chosen.Name)
}

func dropPrivate(cands []candidate) []candidate {
	out := cands[:0]
	for _, c := range cands {
		if strings.HasPrefix(c.Name, "_") {
			continue
		}
		out = append(out, c)
	}
	return out
}

var pyDefRe = regexp.MustCompile(`^([ \t]*)def[ \t]+([A-Za-z_]\w*)[ \t]*\(([^)]*)\)[ \t]*(?:->[ \t]*([^:]+))?:`)
var pyClassRe = regexp.MustCompile(`^class[ \t]+([A-Za-z_]\w*)`)

func discoverPython(source string) []candidate {
	var cands []candidate
	currentClass := ""
	for _, line := range strings.Split(source, "\n") {
		if m := pyClassRe.FindStringSubmatch(line); m != nil {
			currentClass = m[1]
			continue
		}
		m := pyDefRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		indent, name, rawParams, ret := m[1], m[2], m[3], m[4]
		class := currentClass
		if indent == "" {
			class = ""
			currentClass = ""
		}
		c := candidate{
			Name:       name,
			Class:      class,
			Return:     strings.TrimSpace(ret),
			ParamAnnot: map[string]string{},
			Order:      len(cands),
		}
		for _, p := range strings.Split(rawParams, ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			pname, annot := p, ""
			if i := strings.Index(p, ":"); i >= 0 {
				pname = strings.TrimSpace(p[:i])
				annot = strings.TrimSpace(p[i+1:])
			}
			if i := strings.Index(pname, "="); i >= 0 {
				pname = strings.TrimSpace(pname[:i])
			}
			if pname == "self" {
				c.SelfBound = true
				continue
			}
			c.Params = append(c.Params, pname)
			if annot != "" {
				c.ParamAnnot[pname] = annot
			}
		}
		cands = append(cands, c)
	}
	return cands
}

var jsFuncRe = regexp.MustCompile(`(?m)^\s*(?:var|let|const)?\s*(?:function\s+)?([A-Za-z_$][\w$]*)\s*=?\s*(?:function)?\s*\(([^)]*)\)\s*(?:=>)?\s*\{`)
var jsClassRe = regexp.MustCompile(`(?m)^\s*class\s+([A-Za-z_$][\w$]*)`)

var jsKeywords = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true,
	"catch": true, "function": true, "return": true, "constructor": true,
}

type jsClassSpan struct {
	name       string
	start, end int
}

// jsClassSpans locates class declarations and their brace-delimited
// bodies so method definitions are attributed to the class they are
// textually inside of, and nothing else is.
func jsClassSpans(source string) []jsClassSpan {
	var spans []jsClassSpan
	for _, m := range jsClassRe.FindAllStringSubmatchIndex(source, -1) {
		name := source[m[2]:m[3]]
		open := strings.IndexByte(source[m[1]:], '{')
		if open < 0 {
			continue
		}
		start := m[1] + open
		end := len(source)
		depth := 0
		for i := start; i < len(source); i++ {
			switch source[i] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					end = i
					i = len(source)
				}
			}
		}
		spans = append(spans, jsClassSpan{name: name, start: start, end: end})
	}
	return spans
}

func discoverJavaScript(source string) []candidate {
	spans := jsClassSpans(source)
	var cands []candidate
	for _, m := range jsFuncRe.FindAllStringSubmatchIndex(source, -1) {
		name := source[m[2]:m[3]]
		rawParams := ""
		if m[4] >= 0 {
			rawParams = source[m[4]:m[5]]
		}
		if jsKeywords[name] {
			continue
		}
		class := ""
		for _, span := range spans {
			if m[0] >= span.start && m[0] < span.end {
				class = span.name
				break
			}
		}
		c := candidate{
			Name:       name,
			Class:      class,
			ParamAnnot: map[string]string{},
			Order:      len(cands),
		}
		for _, p := range strings.Split(rawParams, ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			c.Params = append(c.Params, p)
		}
		cands = append(cands, c)
	}
	return cands
}

var javaMethodRe = regexp.MustCompile(`(?m)(?:public|protected)\s+(?:static\s+)?([\w<>\[\], ]+?)\s+([A-Za-z_]\w*)\s*\(([^)]*)\)\s*\{`)
var javaClassRe = regexp.MustCompile(`class\s+([A-Za-z_]\w*)`)

func discoverJava(source string) []candidate {
	var cands []candidate
	class := ""
	if m := javaClassRe.FindStringSubmatch(source); m != nil {
		class = m[1]
	}
	for _, m := range javaMethodRe.FindAllStringSubmatch(source, -1) {
		ret, name, rawParams := strings.TrimSpace(m[1]), m[2], m[3]
		if name == class {
			continue // constructor
		}
		c := candidate{
			Name:       name,
			Class:      class,
			Return:     ret,
			ParamAnnot: map[string]string{},
			Order:      len(cands),
		}
		for _, p := range strings.Split(rawParams, ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			fields := strings.Fields(p)
			pname := fields[len(fields)-1]
			c.Params = append(c.Params, pname)
			if len(fields) > 1 {
				c.ParamAnnot[pname] = strings.Join(fields[:len(fields)-1], " ")
			}
		}
		cands = append(cands, c)
	}
	return cands
}

// detectStateful recognizes the operation-log pattern: a class other
// than Solution exposing a constructor plus public methods, driven by a
// [ctor, m1, m2, ...] sequence in the test case.
func detectStateful(source, language string, cands []candidate, sigName string) (CallPlan, bool) {
	byClass := map[string][]candidate{}
	for _, c := range cands {
		if c.Class != "" && c.Class != "Solution" && c.Class != "Main" {
			byClass[c.Class] = append(byClass[c.Class], c)
		}
	}
	hasCtor := map[string]bool{}
	if normalizeLanguage(language) == "python" {
		for _, line := range strings.Split(source, "\n") {
			if strings.Contains(line, "def __init__") {
				// __init__ was filtered as private; its presence marks
				// the enclosing class as constructible
				for class := range byClass {
					if strings.Contains(source, "class "+class) {
						hasCtor[class] = true
					}
				}
			}
		}
	} else {
		for class := range byClass {
			if strings.Contains(source, "constructor(") || strings.Contains(source, "public "+class+"(") {
				hasCtor[class] = true
			}
		}
	}

	for class, methods := range byClass {
		if len(methods) == 0 || !hasCtor[class] {
			continue
		}
		// a stateful class is one the test drives by name, or the only
		// class present with several public methods
		if class == sigName || len(methods) >= 2 {
			return CallPlan{
				FuncName:        class,
				ClassName:       class,
				CallKind:        StatefulClass,
				ParamNames:      []string{"operations", "values"},
				StructuralKinds: map[string]StructKind{"operations": StructNone, "values": StructNone},
			}, true
		}
	}
	return CallPlan{}, false
}

func normalizeLanguage(language string) string {
	l := strings.ToLower(language)
	switch {
	case strings.HasPrefix(l, "python"), l == "py":
		return "python"
	case l == "javascript", l == "js", l == "node", l == "nodejs":
		return "javascript"
	case l == "java":
		return "java"
	}
	return l
}

func isVoidReturn(ret string) bool {
	ret = strings.TrimSpace(ret)
	return ret == "None" || ret == "void"
}

func structKindOfAnnotation(annot string) StructKind {
	switch {
	case annot == "":
		return StructNone
	case strings.Contains(annot, "ListNode"):
		return LinkedList
	case strings.Contains(annot, "TreeNode"):
		return BinaryTree
	case regexp.MustCompile(`\bNode\b`).MatchString(annot):
		return Graph
	}
	return StructNone
}

var linkedListParamNames = map[string]bool{
	"head": true, "headA": true, "headB": true,
	"l1": true, "l2": true, "list1": true, "list2": true, "lists": true,
}

var treeParamNames = map[string]bool{
	"root": true, "root1": true, "root2": true, "p": true, "q": true,
	"subRoot": true, "original": true, "cloned": true,
}

// structKindOf resolves the structural kind of a parameter from its
// type annotation, falling back to naming cues when the source has no
// annotations (plain JavaScript, un-annotated Python).
func structKindOf(annot, paramName, source string) StructKind {
	if k := structKindOfAnnotation(annot); k != StructNone {
		return k
	}
	if annot != "" {
		return StructNone
	}
	mentionsList := strings.Contains(source, "ListNode")
	mentionsTree := strings.Contains(source, "TreeNode")
	mentionsGraph := !mentionsList && !mentionsTree &&
		regexp.MustCompile(`\bNode\b`).MatchString(source)
	switch {
	case mentionsList && linkedListParamNames[paramName]:
		return LinkedList
	case mentionsTree && treeParamNames[paramName]:
		return BinaryTree
	case mentionsGraph && (paramName == "node" || paramName == "graph"):
		return Graph
	}
	return StructNone
}

package langexec

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/algoprep/grader/callplan"
	"github.com/algoprep/grader/testparam"
)

type javaExecutor struct{}

func (javaExecutor) Language() string        { return "java" }
func (javaExecutor) SandboxLanguageID() int  { return sandboxIDJava }
func (javaExecutor) UsesIndexProtocol() bool { return true }

// BuildProgram generates a Main class whose main method switches on
// the test index, declares each argument as a typed Java literal,
// evaluates the call block and prints the result as one JSON line.
// The declared parameter types come from the resolved call plan.
func (e javaExecutor) BuildProgram(prepared string, callBlock string, tests []testparam.Params, plan callplan.CallPlan) (string, error) {
	var cases strings.Builder
	for i, params := range tests {
		fmt.Fprintf(&cases, "        case %d: {\n", i)
		for _, name := range plan.ParamNames {
			declType := plan.ParamTypes[name]
			if declType == "" {
				return "", fmt.Errorf("cannot determine java type of parameter %q", name)
			}
			value, _ := params.Value(name)
			literal, err := javaLiteral(value, declType)
			if err != nil {
				return "", fmt.Errorf("test case %d, parameter %q: %w", i, name, err)
			}
			fmt.Fprintf(&cases, "            %s %s = %s;\n", declType, name, literal)
		}
		if plan.ReturnsVoid && len(plan.ParamNames) > 0 {
			fmt.Fprintf(&cases, "            %s;\n", callBlock)
			fmt.Fprintf(&cases, "            _actual = %s;\n", plan.ParamNames[0])
		} else {
			fmt.Fprintf(&cases, "            _actual = %s;\n", callBlock)
		}
		cases.WriteString("            break;\n        }\n")
	}

	driver := `public class Main {
    public static void main(String[] _argv) throws Exception {
        java.util.Scanner _sc = new java.util.Scanner(System.in);
        int _idx = Integer.parseInt(_sc.nextLine().trim());
        Object _actual = null;
        switch (_idx) {
` + cases.String() + `        default:
            throw new IllegalArgumentException("no such test case: " + _idx);
        }
        System.out.println(_toJson(_actual));
    }

` + javaJsonHelper + `
}`

	b := newProgramBuilder("")
	b.Add("imports", "import java.util.*;")
	b.Add("solution", prepared)
	b.Add("driver", driver)
	return b.Render(), nil
}

// javaLiteral renders a JSON value as a Java literal of the declared
// type. Only the argument types seen across the supported problem set
// are handled; anything else is an explicit error rather than a guess.
func javaLiteral(value any, declType string) (string, error) {
	declType = strings.TrimSpace(declType)
	if value == nil {
		switch declType {
		case "int", "long", "double", "boolean", "char":
			return "", fmt.Errorf("null value for primitive type %s", declType)
		}
		return "null", nil
	}

	switch declType {
	case "int", "Integer":
		n, ok := asFloat(value)
		if !ok {
			return "", fmt.Errorf("expected number, got %T", value)
		}
		return strconv.FormatInt(int64(n), 10), nil
	case "long", "Long":
		n, ok := asFloat(value)
		if !ok {
			return "", fmt.Errorf("expected number, got %T", value)
		}
		return strconv.FormatInt(int64(n), 10) + "L", nil
	case "double", "Double":
		n, ok := asFloat(value)
		if !ok {
			return "", fmt.Errorf("expected number, got %T", value)
		}
		return strconv.FormatFloat(n, 'g', -1, 64), nil
	case "boolean", "Boolean":
		b, ok := value.(bool)
		if !ok {
			return "", fmt.Errorf("expected boolean, got %T", value)
		}
		return strconv.FormatBool(b), nil
	case "String":
		s, ok := value.(string)
		if !ok {
			return "", fmt.Errorf("expected string, got %T", value)
		}
		return javaString(s), nil
	case "char":
		s, ok := value.(string)
		if !ok || len(s) != 1 {
			return "", fmt.Errorf("expected single-character string, got %v", value)
		}
		return "'" + strings.ReplaceAll(s, "'", "\\'") + "'", nil
	case "int[]", "long[]", "double[]", "boolean[]", "String[]", "char[]":
		return javaArrayLiteral(value, declType)
	case "int[][]", "char[][]", "String[][]":
		elems, ok := value.([]any)
		if !ok {
			return "", fmt.Errorf("expected array of arrays, got %T", value)
		}
		inner := strings.TrimSuffix(declType, "[]")
		parts := make([]string, len(elems))
		for i, e := range elems {
			lit, err := javaArrayLiteral(e, inner)
			if err != nil {
				return "", err
			}
			parts[i] = lit
		}
		return "new " + declType + "{" + strings.Join(parts, ", ") + "}", nil
	case "List<Integer>", "List<String>", "List<List<Integer>>", "List<List<String>>":
		return javaListLiteral(value, declType)
	}
	return "", fmt.Errorf("unsupported java parameter type %q", declType)
}

func javaArrayLiteral(value any, declType string) (string, error) {
	elems, ok := value.([]any)
	if !ok {
		return "", fmt.Errorf("expected array for %s, got %T", declType, value)
	}
	elemType := strings.TrimSuffix(declType, "[]")
	parts := make([]string, len(elems))
	for i, e := range elems {
		lit, err := javaLiteral(e, elemType)
		if err != nil {
			return "", err
		}
		parts[i] = lit
	}
	return "new " + declType + "{" + strings.Join(parts, ", ") + "}", nil
}

func javaListLiteral(value any, declType string) (string, error) {
	elems, ok := value.([]any)
	if !ok {
		return "", fmt.Errorf("expected array for %s, got %T", declType, value)
	}
	inner := declType[strings.Index(declType, "<")+1 : len(declType)-1]
	parts := make([]string, len(elems))
	for i, e := range elems {
		lit, err := javaLiteral(e, inner)
		if err != nil {
			return "", err
		}
		parts[i] = lit
	}
	return "new ArrayList<>(Arrays.asList(" + strings.Join(parts, ", ") + "))", nil
}

func javaString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString("\\\"")
		case '\\':
			sb.WriteString("\\\\")
		case '\n':
			sb.WriteString("\\n")
		case '\r':
			sb.WriteString("\\r")
		case '\t':
			sb.WriteString("\\t")
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// the JSON serializer used to print results from generated Java code
const javaJsonHelper = `    static String _toJson(Object v) {
        if (v == null) return "null";
        if (v instanceof String) {
            StringBuilder sb = new StringBuilder("\"");
            for (char c : ((String) v).toCharArray()) {
                switch (c) {
                case '"': sb.append("\\\""); break;
                case '\\': sb.append("\\\\"); break;
                case '\n': sb.append("\\n"); break;
                case '\r': sb.append("\\r"); break;
                case '\t': sb.append("\\t"); break;
                default: sb.append(c);
                }
            }
            return sb.append("\"").toString();
        }
        if (v instanceof Character) return _toJson(String.valueOf(v));
        if (v instanceof Number || v instanceof Boolean) return String.valueOf(v);
        if (v instanceof int[]) {
            StringBuilder sb = new StringBuilder("[");
            int[] a = (int[]) v;
            for (int i = 0; i < a.length; i++) sb.append(i > 0 ? "," : "").append(a[i]);
            return sb.append("]").toString();
        }
        if (v instanceof long[]) {
            StringBuilder sb = new StringBuilder("[");
            long[] a = (long[]) v;
            for (int i = 0; i < a.length; i++) sb.append(i > 0 ? "," : "").append(a[i]);
            return sb.append("]").toString();
        }
        if (v instanceof double[]) {
            StringBuilder sb = new StringBuilder("[");
            double[] a = (double[]) v;
            for (int i = 0; i < a.length; i++) sb.append(i > 0 ? "," : "").append(a[i]);
            return sb.append("]").toString();
        }
        if (v instanceof boolean[]) {
            StringBuilder sb = new StringBuilder("[");
            boolean[] a = (boolean[]) v;
            for (int i = 0; i < a.length; i++) sb.append(i > 0 ? "," : "").append(a[i]);
            return sb.append("]").toString();
        }
        if (v instanceof char[]) {
            StringBuilder sb = new StringBuilder("[");
            char[] a = (char[]) v;
            for (int i = 0; i < a.length; i++) sb.append(i > 0 ? "," : "").append(_toJson(a[i]));
            return sb.append("]").toString();
        }
        if (v instanceof Object[]) {
            StringBuilder sb = new StringBuilder("[");
            Object[] a = (Object[]) v;
            for (int i = 0; i < a.length; i++) sb.append(i > 0 ? "," : "").append(_toJson(a[i]));
            return sb.append("]").toString();
        }
        if (v instanceof List) {
            StringBuilder sb = new StringBuilder("[");
            List<?> a = (List<?>) v;
            for (int i = 0; i < a.size(); i++) sb.append(i > 0 ? "," : "").append(_toJson(a.get(i)));
            return sb.append("]").toString();
        }
        if (v instanceof Map) {
            StringBuilder sb = new StringBuilder("{");
            boolean first = true;
            for (Map.Entry<?, ?> e : ((Map<?, ?>) v).entrySet()) {
                if (!first) sb.append(",");
                first = false;
                sb.append(_toJson(String.valueOf(e.getKey()))).append(":").append(_toJson(e.getValue()));
            }
            return sb.append("}").toString();
        }
        return _toJson(String.valueOf(v));
    }`

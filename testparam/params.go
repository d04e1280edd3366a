package testparam

// Param is a single named test-case argument.
type Param struct {
	Name  string
	Value any
}

// Params is an ordered parameter list. Order matches the declared
// function signature and is preserved end-to-end through grading.
type Params []Param

func (p Params) Value(name string) (any, bool) {
	for _, param := range p {
		if param.Name == name {
			return param.Value, true
		}
	}
	return nil, false
}

func (p Params) Names() []string {
	names := make([]string, len(p))
	for i, param := range p {
		names[i] = param.Name
	}
	return names
}

func (p Params) Values() []any {
	values := make([]any, len(p))
	for i, param := range p {
		values[i] = param.Value
	}
	return values
}

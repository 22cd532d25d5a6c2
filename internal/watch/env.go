package watch

// Variable is a single name=value pair from a process environment.
type Variable struct {
	Name  string
	Value string
}

// Environment is the initial environment of a process, captured once before
// the process is terminated. Order is preserved from the environment block.
// It is never mutated after capture: the relaunched process must see exactly
// the environment its previous incarnation had.
type Environment []Variable

// Strings renders the environment in the name=value form expected by
// os/exec. The result fully replaces the child's environment, it is not
// merged with the watcher's own.
func (e Environment) Strings() []string {
	out := make([]string, len(e))
	for i, v := range e {
		out[i] = v.Name + "=" + v.Value
	}
	return out
}

// Lookup returns the value of the first variable with the given name.
func (e Environment) Lookup(name string) (string, bool) {
	for _, v := range e {
		if v.Name == name {
			return v.Value, true
		}
	}
	return "", false
}

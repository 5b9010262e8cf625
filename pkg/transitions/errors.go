package transitions

import "fmt"

// MissingParameterError reports a path placeholder that had no value in the
// resolution context. It signals an integration bug in the caller (an
// operation referenced without its required path data), so document assembly
// always propagates it instead of dropping the reference.
type MissingParameterError struct {
	// Param is the first unresolved placeholder name.
	Param string
	// Operation is the name the caller tried to resolve.
	Operation string
	// Template is the href template before substitution.
	Template string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("transitions: missing parameter %q for operation %q with href %q",
		e.Param, e.Operation, e.Template)
}

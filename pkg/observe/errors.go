package observe

import "fmt"

// FormatError reports an observation file name that does not follow the
// <arch>:<bits> convention.
type FormatError struct {
	Name string
	Msg  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid observation file name %q: %s", e.Name, e.Msg)
}

package relevancy

import "fmt"

type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("syntax error on line %d", e.Line)
	}
	return fmt.Sprintf("syntax error on line %d: %s", e.Line, e.Msg)
}

package useparse

import "fmt"

// ErrSyntax reports a malformed `use` item. Items that fail to construct
// are dropped from the output rather than surfaced as pipeline errors; the
// error is retained on the ParsedItem for diagnostic logging only.
type ErrSyntax struct {
	Side string
	Line int
	Col  int
	Msg  string
}

func (e *ErrSyntax) Error() string {
	return fmt.Sprintf("useparse: %s side, line %d col %d: %s", e.Side, e.Line, e.Col, e.Msg)
}

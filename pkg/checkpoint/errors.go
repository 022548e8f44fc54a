package checkpoint

import "fmt"

// FormatError reports a text matrix that does not have the expected shape.
// Line is 1-based and 0 when the problem is not tied to a single line. For
// row and column count mismatches Want and Got hold the expected and the
// actual count; otherwise both are 0.
type FormatError struct {
	Path      string
	Line      int
	Want, Got int
	Msg       string
}

func (e *FormatError) Error() string {
	name := e.Path
	if name == "" {
		name = "<input>"
	}
	if e.Line > 0 {
		return fmt.Sprintf("checkpoint: %s:%d: %s", name, e.Line, e.Msg)
	}
	return fmt.Sprintf("checkpoint: %s: %s", name, e.Msg)
}

func formatErrorf(line int, format string, args ...any) *FormatError {
	return &FormatError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

// columnError reports a row with got values where want were expected.
func columnError(line, want, got int) *FormatError {
	fe := formatErrorf(line, "row has %d values, want %d", got, want)
	fe.Want, fe.Got = want, got
	return fe
}

package fluid

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is wrapped by every error returned from Config.Validate
	// and NewGrid.
	ErrConfiguration = errors.New("fluid: invalid configuration")

	// ErrDiverged is wrapped by DivergenceError.
	ErrDiverged = errors.New("fluid: velocity field diverged")
)

// DivergenceError reports the first non-finite velocity found after a step.
type DivergenceError struct {
	Step     int
	Field    string // "u" or "v"
	Row, Col int
	Value    float64
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("fluid: %s[%d,%d] = %v after step %d", e.Field, e.Row, e.Col, e.Value, e.Step)
}

func (e *DivergenceError) Unwrap() error {
	return ErrDiverged
}

func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrConfiguration}, args...)...)
}

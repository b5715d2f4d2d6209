package stack

import (
	"errors"
	"fmt"
)

// Every message is prefixed with "rlnc:". Call sites wrap these with
// fmt.Errorf("ctx: %w", ErrX); callers match with errors.Is.
var (
	// ErrConfiguration signals an unusable factory or field setup: zero
	// bounds, or a field that packs a non-empty block into zero bytes.
	ErrConfiguration = errors.New("rlnc: invalid configuration")

	// ErrInvalidArgument signals a caller contract violation: parameters
	// beyond the factory bounds, a buffer shorter than the identifier, or an
	// operation on a coder that was never constructed.
	ErrInvalidArgument = errors.New("rlnc: invalid argument")
)

// BoundsError reports a block parameter that exceeds the factory bound.
type BoundsError struct {
	Param string
	Value uint32
	Max   uint32
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("rlnc: %s %d exceeds maximum %d", e.Param, e.Value, e.Max)
}

// Unwrap makes errors.Is(err, ErrInvalidArgument) hold.
func (e *BoundsError) Unwrap() error {
	return ErrInvalidArgument
}

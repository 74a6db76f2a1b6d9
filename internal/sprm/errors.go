package sprm

import "errors"

var (
	ErrTruncated       = errors.New("sprm: truncated operation")
	ErrMalformed       = errors.New("sprm: malformed operand")
	ErrOperandTooLarge = errors.New("sprm: operand too large for its width class")
)

package spirv

import "errors"

// The encoder has no recoverable failures. These errors are the panic
// values for misuse, so a caller that recovers can match them with errors.Is.
var (
	ErrWordCountMismatch   = errors.New("spirv: instruction word count mismatch")
	ErrInstructionTooLong  = errors.New("spirv: instruction exceeds 65535 words")
	ErrIDOverflow          = errors.New("spirv: id space exhausted")
	ErrBackpatchOutOfRange = errors.New("spirv: backpatch offset out of range")
)

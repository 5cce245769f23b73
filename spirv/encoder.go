package spirv

import (
	"fmt"

	"go.uber.org/zap"
)

// maxWordCount is the largest instruction length the 16-bit header field holds.
const maxWordCount = 0xFFFF

// Header packs an opcode and an instruction's total word count,
// header included, into an instruction header word.
func Header(opcode OpCode, wordCount int) uint32 {
	return (uint32(wordCount) << 16) | uint32(opcode)
}

// DecodeHeader splits an instruction header word into opcode and word count.
func DecodeHeader(word uint32) (OpCode, int) {
	return OpCode(word & 0xFFFF), int(word >> 16)
}

// instructionLength returns an instruction's total word count, header
// included. It panics with ErrInstructionTooLong if the count does not fit
// the header's 16-bit field.
func instructionLength(opcode OpCode, operands []Operand) int {
	count := WordCount(operands...) + 1
	if count > maxWordCount {
		panic(fmt.Errorf("%w: opcode %d needs %d words", ErrInstructionTooLong, opcode, count))
	}
	return count
}

// Encoder writes a SPIR-V module as a flat stream of words.
//
// A module is produced by WriteHeader, any number of WriteInstruction calls
// (or the Op* emitters built on it), FinalizeBound, then Words or Bytes.
// An Encoder is not safe for concurrent use.
type Encoder struct {
	options Options
	buf     *WordBuffer
	ids     *IDAllocator
}

// NewEncoder creates an encoder with its own buffer and id space.
func NewEncoder(options Options) *Encoder {
	return newEncoder(options, NewIDAllocator())
}

func newEncoder(options Options, ids *IDAllocator) *Encoder {
	return &Encoder{
		options: options,
		buf:     NewWordBuffer(options.InitialCapacity),
		ids:     ids,
	}
}

// WriteHeader writes the five-word module preamble. The bound is written as
// a zero placeholder and filled in by FinalizeBound.
func (e *Encoder) WriteHeader(version uint32) {
	e.buf.Append(MagicNumber)
	e.buf.Append(version)
	e.buf.Append(GeneratorID)
	e.buf.Append(0) // bound, see FinalizeBound
	e.buf.Append(0) // schema

	Logger().Debug("spirv header written", zap.Uint32("version", version))
}

// WriteInstruction writes one instruction: the header word followed by the
// operands. The word count in the header is computed from the same operands
// that are encoded.
func (e *Encoder) WriteInstruction(opcode OpCode, operands ...Operand) {
	count := instructionLength(opcode, operands)
	start := e.buf.Len()
	e.buf.Append(Header(opcode, count))
	Encode(e.buf, operands...)

	if e.options.Validation {
		if written := e.buf.Len() - start; written != count {
			Logger().Error("instruction word count mismatch",
				zap.Uint16("opcode", uint16(opcode)),
				zap.Int("counted", count),
				zap.Int("written", written))
			panic(fmt.Errorf("%w: opcode %d counted %d words, wrote %d",
				ErrWordCountMismatch, opcode, count, written))
		}
	}
}

// AllocID allocates a new SPIR-V ID.
func (e *Encoder) AllocID() uint32 {
	return e.ids.Next()
}

// Bound returns one past the highest id allocated so far.
func (e *Encoder) Bound() uint32 {
	return e.ids.Bound()
}

// FinalizeBound patches the current id bound into the preamble. It must be
// called after the last id is allocated; calling it again is harmless.
func (e *Encoder) FinalizeBound() {
	bound := e.ids.Bound()
	e.buf.Backpatch(BoundOffset, bound)

	Logger().Debug("spirv bound finalized",
		zap.Uint32("bound", bound),
		zap.Int("words", e.buf.Len()))
}

// Len returns the number of words written so far.
func (e *Encoder) Len() int {
	return e.buf.Len()
}

// Words returns the encoded module.
func (e *Encoder) Words() []uint32 {
	return e.buf.Words()
}

// Bytes returns the encoded module in little-endian byte order.
func (e *Encoder) Bytes() []byte {
	return e.buf.Bytes()
}

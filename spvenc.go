// Package spvenc emits SPIR-V modules as flat streams of 32-bit words.
//
// The spirv package holds the encoder: a growable word buffer, the operand
// encoder and its matching word counter, the id allocator and the module
// header with its backpatched bound. This package wraps the usual
// header, body, finalize sequence in a single call:
//
//	words, err := spvenc.Emit(func(e *spirv.Encoder) {
//	    e.OpCapability(spirv.CapabilityShader)
//	    e.OpMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
package spvenc

import (
	"errors"
	"fmt"

	"github.com/gogpu/spvenc/spirv"
)

// EmitFunc writes the body of a module. The header is already written and
// the bound is finalized after it returns.
type EmitFunc func(e *spirv.Encoder)

// Emit builds a module with default options and returns its words.
func Emit(body EmitFunc) ([]uint32, error) {
	return EmitWithOptions(spirv.DefaultOptions(), body)
}

// EmitWithOptions builds a module with custom options and returns its words.
//
// An instruction longer than 65535 words or id exhaustion is reported as an
// error wrapping the matching spirv sentinel. Any other panic from body is
// propagated.
func EmitWithOptions(opts spirv.Options, body EmitFunc) ([]uint32, error) {
	enc, err := run(opts, body)
	if err != nil {
		return nil, err
	}
	return enc.Words(), nil
}

// EmitBytes builds a module with default options and returns it in
// little-endian byte order, ready to be written to a .spv file.
func EmitBytes(body EmitFunc) ([]byte, error) {
	enc, err := run(spirv.DefaultOptions(), body)
	if err != nil {
		return nil, err
	}
	return enc.Bytes(), nil
}

func run(opts spirv.Options, body EmitFunc) (enc *spirv.Encoder, err error) {
	defer func() {
		if r := recover(); r != nil {
			perr, ok := r.(error)
			if !ok || !isEncoderError(perr) {
				panic(r)
			}
			enc, err = nil, fmt.Errorf("emit error: %w", perr)
		}
	}()

	enc = spirv.NewEncoder(opts)
	enc.WriteHeader(opts.Version.Word())
	if body != nil {
		body(enc)
	}
	enc.FinalizeBound()
	return enc, nil
}

// isEncoderError reports whether err is a misuse body can cause. Operands
// are sealed and the header is written before body runs, so count
// mismatches and bad backpatches are left to propagate.
func isEncoderError(err error) bool {
	return errors.Is(err, spirv.ErrInstructionTooLong) ||
		errors.Is(err, spirv.ErrIDOverflow)
}

// Package spirv provides a word-level SPIR-V module encoder.
//
// SPIR-V is the standard intermediate language for GPU shaders,
// used by Vulkan, OpenCL, and other APIs.
//
// # Encoder
//
// Encoder writes a module directly into a growable word buffer:
//
//	enc := spirv.NewEncoder(spirv.DefaultOptions())
//	enc.WriteHeader(spirv.Version1_3.Word())
//	enc.OpCapability(spirv.CapabilityShader)
//	enc.OpMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)
//	voidType := enc.AllocID()
//	enc.OpTypeVoid(voidType)
//	enc.FinalizeBound()
//	words := enc.Words()
//
// The bound field of the header is written as zero and patched by
// FinalizeBound once every id has been allocated.
//
// # Operands
//
// Every instruction is a header word, (wordCount << 16) | opcode, followed by
// its operands. Operands are described by the closed Operand type:
//
//   - Word: ids, enumerants, masks and 32-bit literals
//   - Pair: two 16-bit values packed into one word
//   - Constant: numeric literals of any width (see ConstantOf)
//   - Text: NUL-terminated UTF-8 strings
//   - Optional, List, Tuple: quantified and grouped operands
//
// WordCount and Encode are the only two functions that interpret operands,
// so the announced length of an instruction always matches what is written.
// With Options.Validation set, WriteInstruction also checks this at runtime.
//
// # Module Builder
//
// ModuleBuilder records instructions per logical section and encodes them
// in module layout order, so callers can declare types after functions:
//
//	builder := spirv.NewModuleBuilder(spirv.Version1_3)
//	builder.AddCapability(spirv.CapabilityShader)
//	builder.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)
//
//	floatType := builder.AddTypeFloat(32)
//	vec4Type := builder.AddTypeVector(floatType, 4)
//
//	binary := builder.Build()
//
// # SPIR-V Structure
//
// SPIR-V modules consist of:
//   - Header (magic, version, generator, bound, schema)
//   - Capabilities (required features)
//   - Extensions (optional extensions)
//   - Extended instruction imports (GLSL.std.450, etc.)
//   - Memory model (addressing and memory model)
//   - Entry points (shader entry functions)
//   - Execution modes (shader configuration)
//   - Debug information (names, source info)
//   - Annotations (decorations)
//   - Types and constants
//   - Global variables
//   - Functions (code)
//
// # References
//
// SPIR-V Specification: https://registry.khronos.org/SPIR-V/specs/unified1/SPIRV.html
package spirv

package spirv

import (
	"go.uber.org/zap"
)

// Instruction is a recorded SPIR-V instruction awaiting encoding.
type Instruction struct {
	Opcode   OpCode
	Operands []Operand // result type ID, result ID, operands
}

// InstructionBuilder builds SPIR-V instructions.
type InstructionBuilder struct {
	operands []Operand
}

// NewInstructionBuilder creates a new instruction builder.
func NewInstructionBuilder() *InstructionBuilder {
	return &InstructionBuilder{
		operands: make([]Operand, 0, 8),
	}
}

// AddWord adds a word to the instruction.
func (b *InstructionBuilder) AddWord(word uint32) {
	b.operands = append(b.operands, Word(word))
}

// AddWords adds a run of words, such as an id list.
func (b *InstructionBuilder) AddWords(words ...uint32) {
	b.operands = append(b.operands, Words(words...))
}

// AddString adds a null-terminated UTF-8 string.
func (b *InstructionBuilder) AddString(s string) {
	b.operands = append(b.operands, Text(s))
}

// AddOperand adds an arbitrary logical operand.
func (b *InstructionBuilder) AddOperand(op Operand) {
	b.operands = append(b.operands, op)
}

// Build builds the instruction with the given opcode.
func (b *InstructionBuilder) Build(opcode OpCode) Instruction {
	return Instruction{
		Opcode:   opcode,
		Operands: b.operands,
	}
}

// WordCount returns the instruction's length in words, header included.
func (i Instruction) WordCount() int {
	return WordCount(i.Operands...) + 1
}

// Encode encodes the instruction to words. It panics with
// ErrInstructionTooLong if the instruction exceeds 65535 words.
func (i Instruction) Encode() []uint32 {
	wordCount := instructionLength(i.Opcode, i.Operands)
	buf := NewWordBuffer(wordCount)
	buf.Append(Header(i.Opcode, wordCount))
	Encode(buf, i.Operands...)
	return buf.Words()
}

// ModuleBuilder builds complete SPIR-V modules.
//
// Instructions are recorded per logical section and encoded in section
// order by Build, so they may be added in any order.
type ModuleBuilder struct {
	options Options

	// Sections (ordered per SPIR-V spec)
	capabilities   []Instruction
	extensions     []Instruction
	extInstImports []Instruction
	memoryModel    *Instruction
	entryPoints    []Instruction
	executionModes []Instruction
	debugStrings   []Instruction // OpString
	debugNames     []Instruction // OpName, OpMemberName
	annotations    []Instruction // OpDecorate, OpMemberDecorate
	types          []Instruction // OpType*, OpConstant*
	globalVars     []Instruction // OpVariable (global)
	functions      []Instruction // OpFunction...OpFunctionEnd

	// ID allocation
	ids *IDAllocator
}

// NewModuleBuilder creates a new SPIR-V module builder.
func NewModuleBuilder(version Version) *ModuleBuilder {
	options := DefaultOptions()
	options.Version = version
	options.InitialCapacity = 0 // sized from the recorded instructions
	return NewModuleBuilderWithOptions(options)
}

// NewModuleBuilderWithOptions creates a module builder with custom options.
func NewModuleBuilderWithOptions(options Options) *ModuleBuilder {
	return &ModuleBuilder{
		options: options,
		ids:     NewIDAllocator(),
	}
}

// AllocID allocates a new SPIR-V ID.
func (b *ModuleBuilder) AllocID() uint32 {
	return b.ids.Next()
}

// Bound returns one past the highest id allocated so far.
func (b *ModuleBuilder) Bound() uint32 {
	return b.ids.Bound()
}

// record appends an instruction to a section.
func record(section *[]Instruction, opcode OpCode, operands ...Operand) {
	*section = append(*section, Instruction{Opcode: opcode, Operands: operands})
}

// AddCapability adds a capability.
func (b *ModuleBuilder) AddCapability(capability Capability) {
	record(&b.capabilities, OpCapability, Word(capability))
}

// AddExtension adds an extension.
func (b *ModuleBuilder) AddExtension(name string) {
	record(&b.extensions, OpExtension, Text(name))
}

// AddExtInstImport imports an extended instruction set.
func (b *ModuleBuilder) AddExtInstImport(name string) uint32 {
	id := b.AllocID()
	record(&b.extInstImports, OpExtInstImport, Word(id), Text(name))
	return id
}

// SetMemoryModel sets the memory model.
func (b *ModuleBuilder) SetMemoryModel(addressing AddressingModel, memory MemoryModel) {
	b.memoryModel = &Instruction{
		Opcode:   OpMemoryModel,
		Operands: []Operand{Word(addressing), Word(memory)},
	}
}

// AddEntryPoint adds an entry point.
func (b *ModuleBuilder) AddEntryPoint(execModel ExecutionModel, funcID uint32, name string, interfaces []uint32) {
	record(&b.entryPoints, OpEntryPoint, Word(execModel), Word(funcID), Text(name), Words(interfaces...))
}

// AddExecutionMode adds an execution mode.
func (b *ModuleBuilder) AddExecutionMode(entryPoint uint32, mode ExecutionMode, params ...uint32) {
	record(&b.executionModes, OpExecutionMode, Word(entryPoint), Word(mode), Words(params...))
}

// AddString adds a debug string.
func (b *ModuleBuilder) AddString(text string) uint32 {
	id := b.AllocID()
	record(&b.debugStrings, OpString, Word(id), Text(text))
	return id
}

// AddSource records the source language and, optionally, the source file.
// A zero file id omits the file operand.
func (b *ModuleBuilder) AddSource(language SourceLanguage, version uint32, file uint32) {
	fileOperand := None()
	if file != 0 {
		fileOperand = Some(Word(file))
	}
	record(&b.debugStrings, OpSource, Word(language), Word(version), fileOperand)
}

// AddName adds a debug name.
func (b *ModuleBuilder) AddName(id uint32, name string) {
	record(&b.debugNames, OpName, Word(id), Text(name))
}

// AddMemberName adds a debug member name.
func (b *ModuleBuilder) AddMemberName(structID, member uint32, name string) {
	record(&b.debugNames, OpMemberName, Word(structID), Word(member), Text(name))
}

// AddDecorate adds a decoration.
func (b *ModuleBuilder) AddDecorate(id uint32, decoration Decoration, params ...uint32) {
	record(&b.annotations, OpDecorate, Word(id), Word(decoration), Words(params...))
}

// AddMemberDecorate adds a member decoration.
func (b *ModuleBuilder) AddMemberDecorate(structID, member uint32, decoration Decoration, params ...uint32) {
	record(&b.annotations, OpMemberDecorate, Word(structID), Word(member), Word(decoration), Words(params...))
}

// addType records a type declaration whose first operand is its result id.
func (b *ModuleBuilder) addType(opcode OpCode, operands ...Operand) uint32 {
	id := b.AllocID()
	record(&b.types, opcode, append([]Operand{Word(id)}, operands...)...)
	return id
}

// AddTypeVoid adds OpTypeVoid.
func (b *ModuleBuilder) AddTypeVoid() uint32 {
	return b.addType(OpTypeVoid)
}

// AddTypeBool adds OpTypeBool.
func (b *ModuleBuilder) AddTypeBool() uint32 {
	return b.addType(OpTypeBool)
}

// AddTypeFloat adds OpTypeFloat.
func (b *ModuleBuilder) AddTypeFloat(width uint32) uint32 {
	return b.addType(OpTypeFloat, Word(width))
}

// AddTypeInt adds OpTypeInt.
func (b *ModuleBuilder) AddTypeInt(width uint32, signed bool) uint32 {
	signedness := Word(0)
	if signed {
		signedness = 1
	}
	return b.addType(OpTypeInt, Word(width), signedness)
}

// AddTypeVector adds OpTypeVector.
func (b *ModuleBuilder) AddTypeVector(componentType uint32, count uint32) uint32 {
	return b.addType(OpTypeVector, Word(componentType), Word(count))
}

// AddTypeMatrix adds OpTypeMatrix.
func (b *ModuleBuilder) AddTypeMatrix(columnType uint32, columnCount uint32) uint32 {
	return b.addType(OpTypeMatrix, Word(columnType), Word(columnCount))
}

// AddTypeArray adds OpTypeArray. length is a constant ID.
func (b *ModuleBuilder) AddTypeArray(elementType uint32, length uint32) uint32 {
	return b.addType(OpTypeArray, Word(elementType), Word(length))
}

// AddTypePointer adds OpTypePointer.
func (b *ModuleBuilder) AddTypePointer(storageClass StorageClass, baseType uint32) uint32 {
	return b.addType(OpTypePointer, Word(storageClass), Word(baseType))
}

// AddTypeFunction adds OpTypeFunction.
func (b *ModuleBuilder) AddTypeFunction(returnType uint32, paramTypes ...uint32) uint32 {
	return b.addType(OpTypeFunction, Word(returnType), Words(paramTypes...))
}

// AddTypeStruct adds OpTypeStruct.
func (b *ModuleBuilder) AddTypeStruct(memberTypes ...uint32) uint32 {
	return b.addType(OpTypeStruct, Words(memberTypes...))
}

// addValue records an instruction in section whose leading operands are
// a result type and a freshly allocated result id.
func (b *ModuleBuilder) addValue(section *[]Instruction, opcode OpCode, resultType uint32, operands ...Operand) uint32 {
	id := b.AllocID()
	record(section, opcode, append([]Operand{Word(resultType), Word(id)}, operands...)...)
	return id
}

// AddConstant adds OpConstant with raw literal words.
func (b *ModuleBuilder) AddConstant(typeID uint32, values ...uint32) uint32 {
	return b.addValue(&b.types, OpConstant, typeID, Words(values...))
}

// AddConstantValue adds OpConstant from a typed numeric literal.
func (b *ModuleBuilder) AddConstantValue(typeID uint32, value Constant) uint32 {
	return b.addValue(&b.types, OpConstant, typeID, value)
}

// AddConstantFloat32 adds a 32-bit float constant.
func (b *ModuleBuilder) AddConstantFloat32(typeID uint32, value float32) uint32 {
	return b.AddConstantValue(typeID, Float32(value))
}

// AddConstantFloat64 adds a 64-bit float constant.
func (b *ModuleBuilder) AddConstantFloat64(typeID uint32, value float64) uint32 {
	return b.AddConstantValue(typeID, Float64(value))
}

// AddConstantBool adds OpConstantTrue or OpConstantFalse.
func (b *ModuleBuilder) AddConstantBool(typeID uint32, value bool) uint32 {
	if value {
		return b.addValue(&b.types, OpConstantTrue, typeID)
	}
	return b.addValue(&b.types, OpConstantFalse, typeID)
}

// AddConstantComposite adds OpConstantComposite.
func (b *ModuleBuilder) AddConstantComposite(typeID uint32, constituents ...uint32) uint32 {
	return b.addValue(&b.types, OpConstantComposite, typeID, Words(constituents...))
}

// AddVariable adds a global OpVariable.
func (b *ModuleBuilder) AddVariable(pointerType uint32, storageClass StorageClass) uint32 {
	return b.addValue(&b.globalVars, OpVariable, pointerType, Word(storageClass), None())
}

// AddVariableWithInit adds a global OpVariable with initializer.
func (b *ModuleBuilder) AddVariableWithInit(pointerType uint32, storageClass StorageClass, initID uint32) uint32 {
	return b.addValue(&b.globalVars, OpVariable, pointerType, Word(storageClass), Some(Word(initID)))
}

// AddFunctionVariable adds an OpVariable in Function storage, to be placed
// at the start of the current function's first block.
func (b *ModuleBuilder) AddFunctionVariable(pointerType uint32) uint32 {
	return b.addValue(&b.functions, OpVariable, pointerType, Word(StorageClassFunction), None())
}

// AddFunction adds a function definition.
func (b *ModuleBuilder) AddFunction(funcType uint32, returnType uint32, control FunctionControl) uint32 {
	return b.addValue(&b.functions, OpFunction, returnType, Word(control), Word(funcType))
}

// AddFunctionParameter adds a function parameter.
func (b *ModuleBuilder) AddFunctionParameter(typeID uint32) uint32 {
	return b.addValue(&b.functions, OpFunctionParameter, typeID)
}

// AddFunctionCall adds OpFunctionCall.
func (b *ModuleBuilder) AddFunctionCall(resultType uint32, function uint32, args ...uint32) uint32 {
	return b.addValue(&b.functions, OpFunctionCall, resultType, Word(function), Words(args...))
}

// AddLabel adds a label.
func (b *ModuleBuilder) AddLabel() uint32 {
	id := b.AllocID()
	record(&b.functions, OpLabel, Word(id))
	return id
}

// AddLabelWithID adds a label for an id allocated earlier, as needed for
// forward branch targets.
func (b *ModuleBuilder) AddLabelWithID(id uint32) {
	record(&b.functions, OpLabel, Word(id))
}

// AddReturn adds OpReturn.
func (b *ModuleBuilder) AddReturn() {
	record(&b.functions, OpReturn)
}

// AddReturnValue adds OpReturnValue.
func (b *ModuleBuilder) AddReturnValue(valueID uint32) {
	record(&b.functions, OpReturnValue, Word(valueID))
}

// AddFunctionEnd adds OpFunctionEnd.
func (b *ModuleBuilder) AddFunctionEnd() {
	record(&b.functions, OpFunctionEnd)
}

// AddBinaryOp adds a binary operation instruction.
func (b *ModuleBuilder) AddBinaryOp(opcode OpCode, resultType uint32, left uint32, right uint32) uint32 {
	return b.addValue(&b.functions, opcode, resultType, Word(left), Word(right))
}

// AddUnaryOp adds a unary operation instruction.
func (b *ModuleBuilder) AddUnaryOp(opcode OpCode, resultType uint32, operand uint32) uint32 {
	return b.addValue(&b.functions, opcode, resultType, Word(operand))
}

// AddLoad adds OpLoad.
func (b *ModuleBuilder) AddLoad(resultType uint32, pointer uint32) uint32 {
	return b.addValue(&b.functions, OpLoad, resultType, Word(pointer), None())
}

// AddStore adds OpStore.
func (b *ModuleBuilder) AddStore(pointer uint32, value uint32) {
	record(&b.functions, OpStore, Word(pointer), Word(value), None())
}

// AddAccessChain adds OpAccessChain.
func (b *ModuleBuilder) AddAccessChain(resultType uint32, base uint32, indices ...uint32) uint32 {
	return b.addValue(&b.functions, OpAccessChain, resultType, Word(base), Words(indices...))
}

// AddCompositeConstruct adds OpCompositeConstruct.
func (b *ModuleBuilder) AddCompositeConstruct(resultType uint32, constituents ...uint32) uint32 {
	return b.addValue(&b.functions, OpCompositeConstruct, resultType, Words(constituents...))
}

// AddCompositeExtract adds OpCompositeExtract.
func (b *ModuleBuilder) AddCompositeExtract(resultType uint32, composite uint32, indices ...uint32) uint32 {
	return b.addValue(&b.functions, OpCompositeExtract, resultType, Word(composite), Words(indices...))
}

// AddVectorShuffle adds OpVectorShuffle for vector swizzle operations.
func (b *ModuleBuilder) AddVectorShuffle(resultType uint32, vec1 uint32, vec2 uint32, components []uint32) uint32 {
	return b.addValue(&b.functions, OpVectorShuffle, resultType, Word(vec1), Word(vec2), Words(components...))
}

// AddSelect adds OpSelect.
func (b *ModuleBuilder) AddSelect(resultType uint32, condition uint32, accept uint32, reject uint32) uint32 {
	return b.addValue(&b.functions, OpSelect, resultType, Word(condition), Word(accept), Word(reject))
}

// AddPhi adds OpPhi with one (value, parent) pair per incoming edge.
func (b *ModuleBuilder) AddPhi(resultType uint32, incoming ...PhiIncoming) uint32 {
	pairs := make(List, len(incoming))
	for i, in := range incoming {
		pairs[i] = Tuple{Word(in.Value), Word(in.Parent)}
	}
	return b.addValue(&b.functions, OpPhi, resultType, pairs)
}

// AddSelectionMerge adds OpSelectionMerge.
func (b *ModuleBuilder) AddSelectionMerge(mergeLabel uint32, control SelectionControl) {
	record(&b.functions, OpSelectionMerge, Word(mergeLabel), Word(control))
}

// AddLoopMerge adds OpLoopMerge.
func (b *ModuleBuilder) AddLoopMerge(mergeLabel uint32, continueLabel uint32, control LoopControl) {
	record(&b.functions, OpLoopMerge, Word(mergeLabel), Word(continueLabel), Word(control))
}

// AddBranch adds OpBranch.
func (b *ModuleBuilder) AddBranch(target uint32) {
	record(&b.functions, OpBranch, Word(target))
}

// AddBranchConditional adds OpBranchConditional.
func (b *ModuleBuilder) AddBranchConditional(condition uint32, trueLabel uint32, falseLabel uint32) {
	record(&b.functions, OpBranchConditional, Word(condition), Word(trueLabel), Word(falseLabel))
}

// AddSwitch adds OpSwitch. Each target literal must match the selector width.
func (b *ModuleBuilder) AddSwitch(selector uint32, defaultLabel uint32, targets ...SwitchTarget) {
	cases := make(List, len(targets))
	for i, t := range targets {
		cases[i] = Tuple{t.Literal, Word(t.Label)}
	}
	record(&b.functions, OpSwitch, Word(selector), Word(defaultLabel), cases)
}

// AddKill adds OpKill (fragment shader discard).
func (b *ModuleBuilder) AddKill() {
	record(&b.functions, OpKill)
}

// AddExtInst adds OpExtInst (extended instruction).
func (b *ModuleBuilder) AddExtInst(resultType uint32, extSet uint32, instruction uint32, operands ...uint32) uint32 {
	return b.addValue(&b.functions, OpExtInst, resultType, Word(extSet), Word(instruction), Words(operands...))
}

// Build generates the final SPIR-V binary.
func (b *ModuleBuilder) Build() []byte {
	return b.encode().Bytes()
}

// BuildWords generates the final SPIR-V module as words.
func (b *ModuleBuilder) BuildWords() []uint32 {
	return b.encode().Words()
}

func (b *ModuleBuilder) encode() *Encoder {
	options := b.options
	if options.InitialCapacity <= 0 {
		options.InitialCapacity = HeaderWords + b.wordCount()
	}

	enc := newEncoder(options, b.ids)
	enc.WriteHeader(options.Version.Word())

	for _, section := range b.sections() {
		for _, inst := range section {
			enc.WriteInstruction(inst.Opcode, inst.Operands...)
		}
	}
	enc.FinalizeBound()

	Logger().Debug("spirv module built",
		zap.Int("words", enc.Len()),
		zap.Uint32("bound", enc.Bound()))

	return enc
}

// sections returns the recorded instructions in module layout order.
func (b *ModuleBuilder) sections() [][]Instruction {
	var memoryModel []Instruction
	if b.memoryModel != nil {
		memoryModel = []Instruction{*b.memoryModel}
	}
	return [][]Instruction{
		b.capabilities,
		b.extensions,
		b.extInstImports,
		memoryModel,
		b.entryPoints,
		b.executionModes,
		b.debugStrings,
		b.debugNames,
		b.annotations,
		b.types,
		b.globalVars,
		b.functions,
	}
}

// wordCount counts total words in the recorded instructions.
func (b *ModuleBuilder) wordCount() int {
	count := 0
	for _, section := range b.sections() {
		for _, inst := range section {
			count += inst.WordCount()
		}
	}
	return count
}

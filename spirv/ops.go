package spirv

// Per-opcode emitters. Each one passes a fixed operand shape to
// WriteInstruction; result ids are allocated by the caller.

// PhiIncoming is one (value, parent block) operand pair of OpPhi.
type PhiIncoming struct {
	Value  uint32
	Parent uint32
}

// SwitchTarget is one (literal, label) operand pair of OpSwitch.
// Literal must have the width of the selector's type.
type SwitchTarget struct {
	Literal Constant
	Label   uint32
}

// OpNop writes OpNop.
func (e *Encoder) OpNop() {
	e.WriteInstruction(OpNop)
}

// OpSource records the source language. file is an optional OpString id,
// source an optional Text holding the source itself.
func (e *Encoder) OpSource(language SourceLanguage, version uint32, file, source Optional) {
	e.WriteInstruction(OpSource, Word(language), Word(version), file, source)
}

// OpName attaches a debug name to target.
func (e *Encoder) OpName(target uint32, name string) {
	e.WriteInstruction(OpName, Word(target), Text(name))
}

// OpMemberName attaches a debug name to a struct member.
func (e *Encoder) OpMemberName(structType, member uint32, name string) {
	e.WriteInstruction(OpMemberName, Word(structType), Word(member), Text(name))
}

// OpString declares a debug string.
func (e *Encoder) OpString(result uint32, text string) {
	e.WriteInstruction(OpString, Word(result), Text(text))
}

// OpExtension declares use of an extension.
func (e *Encoder) OpExtension(name string) {
	e.WriteInstruction(OpExtension, Text(name))
}

// OpExtInstImport imports an extended instruction set.
func (e *Encoder) OpExtInstImport(result uint32, name string) {
	e.WriteInstruction(OpExtInstImport, Word(result), Text(name))
}

// OpExtInst calls an instruction from an imported set.
func (e *Encoder) OpExtInst(resultType, result, set, instruction uint32, operands ...uint32) {
	e.WriteInstruction(OpExtInst, Word(resultType), Word(result), Word(set), Word(instruction), Words(operands...))
}

// OpMemoryModel writes OpMemoryModel.
func (e *Encoder) OpMemoryModel(addressing AddressingModel, memory MemoryModel) {
	e.WriteInstruction(OpMemoryModel, Word(addressing), Word(memory))
}

// OpEntryPoint declares an entry point and the variables in its interface.
func (e *Encoder) OpEntryPoint(model ExecutionModel, entryPoint uint32, name string, interfaces ...uint32) {
	e.WriteInstruction(OpEntryPoint, Word(model), Word(entryPoint), Text(name), Words(interfaces...))
}

// OpExecutionMode sets an execution mode on an entry point.
func (e *Encoder) OpExecutionMode(entryPoint uint32, mode ExecutionMode, literals ...uint32) {
	e.WriteInstruction(OpExecutionMode, Word(entryPoint), Word(mode), Words(literals...))
}

// OpCapability writes OpCapability.
func (e *Encoder) OpCapability(capability Capability) {
	e.WriteInstruction(OpCapability, Word(capability))
}

// OpTypeVoid writes OpTypeVoid.
func (e *Encoder) OpTypeVoid(result uint32) {
	e.WriteInstruction(OpTypeVoid, Word(result))
}

// OpTypeBool writes OpTypeBool.
func (e *Encoder) OpTypeBool(result uint32) {
	e.WriteInstruction(OpTypeBool, Word(result))
}

// OpTypeInt writes OpTypeInt.
func (e *Encoder) OpTypeInt(result, width uint32, signed bool) {
	signedness := Word(0)
	if signed {
		signedness = 1
	}
	e.WriteInstruction(OpTypeInt, Word(result), Word(width), signedness)
}

// OpTypeFloat writes OpTypeFloat.
func (e *Encoder) OpTypeFloat(result, width uint32) {
	e.WriteInstruction(OpTypeFloat, Word(result), Word(width))
}

// OpTypeVector writes OpTypeVector.
func (e *Encoder) OpTypeVector(result, componentType, count uint32) {
	e.WriteInstruction(OpTypeVector, Word(result), Word(componentType), Word(count))
}

// OpTypeMatrix writes OpTypeMatrix.
func (e *Encoder) OpTypeMatrix(result, columnType, columnCount uint32) {
	e.WriteInstruction(OpTypeMatrix, Word(result), Word(columnType), Word(columnCount))
}

// OpTypeArray declares a fixed-size array. length is the id of a constant.
func (e *Encoder) OpTypeArray(result, elementType, length uint32) {
	e.WriteInstruction(OpTypeArray, Word(result), Word(elementType), Word(length))
}

// OpTypeStruct writes OpTypeStruct.
func (e *Encoder) OpTypeStruct(result uint32, memberTypes ...uint32) {
	e.WriteInstruction(OpTypeStruct, Word(result), Words(memberTypes...))
}

// OpTypePointer writes OpTypePointer.
func (e *Encoder) OpTypePointer(result uint32, storageClass StorageClass, baseType uint32) {
	e.WriteInstruction(OpTypePointer, Word(result), Word(storageClass), Word(baseType))
}

// OpTypeFunction writes OpTypeFunction.
func (e *Encoder) OpTypeFunction(result, returnType uint32, paramTypes ...uint32) {
	e.WriteInstruction(OpTypeFunction, Word(result), Word(returnType), Words(paramTypes...))
}

// OpConstantTrue writes OpConstantTrue.
func (e *Encoder) OpConstantTrue(resultType, result uint32) {
	e.WriteInstruction(OpConstantTrue, Word(resultType), Word(result))
}

// OpConstantFalse writes OpConstantFalse.
func (e *Encoder) OpConstantFalse(resultType, result uint32) {
	e.WriteInstruction(OpConstantFalse, Word(resultType), Word(result))
}

// OpConstant declares a scalar constant. The value's width must match
// resultType: 64-bit types take two words, narrower types one.
func (e *Encoder) OpConstant(resultType, result uint32, value Constant) {
	e.WriteInstruction(OpConstant, Word(resultType), Word(result), value)
}

// OpConstantComposite writes OpConstantComposite.
func (e *Encoder) OpConstantComposite(resultType, result uint32, constituents ...uint32) {
	e.WriteInstruction(OpConstantComposite, Word(resultType), Word(result), Words(constituents...))
}

// OpFunction writes OpFunction.
func (e *Encoder) OpFunction(resultType, result uint32, control FunctionControl, functionType uint32) {
	e.WriteInstruction(OpFunction, Word(resultType), Word(result), Word(control), Word(functionType))
}

// OpFunctionParameter writes OpFunctionParameter.
func (e *Encoder) OpFunctionParameter(resultType, result uint32) {
	e.WriteInstruction(OpFunctionParameter, Word(resultType), Word(result))
}

// OpFunctionEnd writes OpFunctionEnd.
func (e *Encoder) OpFunctionEnd() {
	e.WriteInstruction(OpFunctionEnd)
}

// OpFunctionCall writes OpFunctionCall.
func (e *Encoder) OpFunctionCall(resultType, result, function uint32, arguments ...uint32) {
	e.WriteInstruction(OpFunctionCall, Word(resultType), Word(result), Word(function), Words(arguments...))
}

// OpVariable declares a variable. initializer is an optional constant id.
func (e *Encoder) OpVariable(resultType, result uint32, storageClass StorageClass, initializer Optional) {
	e.WriteInstruction(OpVariable, Word(resultType), Word(result), Word(storageClass), initializer)
}

// OpLoad reads through pointer. access is an optional MemoryAccess mask
// followed by any literals the mask requires.
func (e *Encoder) OpLoad(resultType, result, pointer uint32, access Optional) {
	e.WriteInstruction(OpLoad, Word(resultType), Word(result), Word(pointer), access)
}

// OpStore writes object through pointer. access is as for OpLoad.
func (e *Encoder) OpStore(pointer, object uint32, access Optional) {
	e.WriteInstruction(OpStore, Word(pointer), Word(object), access)
}

// OpAccessChain writes OpAccessChain.
func (e *Encoder) OpAccessChain(resultType, result, base uint32, indexes ...uint32) {
	e.WriteInstruction(OpAccessChain, Word(resultType), Word(result), Word(base), Words(indexes...))
}

// OpDecorate writes OpDecorate.
func (e *Encoder) OpDecorate(target uint32, decoration Decoration, literals ...uint32) {
	e.WriteInstruction(OpDecorate, Word(target), Word(decoration), Words(literals...))
}

// OpMemberDecorate writes OpMemberDecorate.
func (e *Encoder) OpMemberDecorate(structType, member uint32, decoration Decoration, literals ...uint32) {
	e.WriteInstruction(OpMemberDecorate, Word(structType), Word(member), Word(decoration), Words(literals...))
}

// OpVectorShuffle writes OpVectorShuffle.
func (e *Encoder) OpVectorShuffle(resultType, result, vector1, vector2 uint32, components ...uint32) {
	e.WriteInstruction(OpVectorShuffle, Word(resultType), Word(result), Word(vector1), Word(vector2), Words(components...))
}

// OpCompositeConstruct writes OpCompositeConstruct.
func (e *Encoder) OpCompositeConstruct(resultType, result uint32, constituents ...uint32) {
	e.WriteInstruction(OpCompositeConstruct, Word(resultType), Word(result), Words(constituents...))
}

// OpCompositeExtract writes OpCompositeExtract.
func (e *Encoder) OpCompositeExtract(resultType, result, composite uint32, indexes ...uint32) {
	e.WriteInstruction(OpCompositeExtract, Word(resultType), Word(result), Word(composite), Words(indexes...))
}

// OpFAdd writes OpFAdd.
func (e *Encoder) OpFAdd(resultType, result, operand1, operand2 uint32) {
	e.WriteInstruction(OpFAdd, Word(resultType), Word(result), Word(operand1), Word(operand2))
}

// OpFMul writes OpFMul.
func (e *Encoder) OpFMul(resultType, result, operand1, operand2 uint32) {
	e.WriteInstruction(OpFMul, Word(resultType), Word(result), Word(operand1), Word(operand2))
}

// OpSelect writes OpSelect.
func (e *Encoder) OpSelect(resultType, result, condition, object1, object2 uint32) {
	e.WriteInstruction(OpSelect, Word(resultType), Word(result), Word(condition), Word(object1), Word(object2))
}

// OpPhi writes OpPhi with one (value, parent) pair per incoming edge.
func (e *Encoder) OpPhi(resultType, result uint32, incoming ...PhiIncoming) {
	pairs := make(List, len(incoming))
	for i, in := range incoming {
		pairs[i] = Tuple{Word(in.Value), Word(in.Parent)}
	}
	e.WriteInstruction(OpPhi, Word(resultType), Word(result), pairs)
}

// OpLoopMerge writes OpLoopMerge.
func (e *Encoder) OpLoopMerge(mergeBlock, continueTarget uint32, control LoopControl) {
	e.WriteInstruction(OpLoopMerge, Word(mergeBlock), Word(continueTarget), Word(control))
}

// OpSelectionMerge writes OpSelectionMerge.
func (e *Encoder) OpSelectionMerge(mergeBlock uint32, control SelectionControl) {
	e.WriteInstruction(OpSelectionMerge, Word(mergeBlock), Word(control))
}

// OpLabel starts a block.
func (e *Encoder) OpLabel(result uint32) {
	e.WriteInstruction(OpLabel, Word(result))
}

// OpBranch writes OpBranch.
func (e *Encoder) OpBranch(target uint32) {
	e.WriteInstruction(OpBranch, Word(target))
}

// OpBranchConditional branches on condition. weights, if given, must hold
// exactly two branch weights.
func (e *Encoder) OpBranchConditional(condition, trueLabel, falseLabel uint32, weights ...uint32) {
	e.WriteInstruction(OpBranchConditional, Word(condition), Word(trueLabel), Word(falseLabel), Words(weights...))
}

// OpSwitch writes a multi-way branch. Targets are encoded in order after the default label.
func (e *Encoder) OpSwitch(selector, defaultLabel uint32, targets ...SwitchTarget) {
	cases := make(List, len(targets))
	for i, t := range targets {
		cases[i] = Tuple{t.Literal, Word(t.Label)}
	}
	e.WriteInstruction(OpSwitch, Word(selector), Word(defaultLabel), cases)
}

// OpKill discards the fragment.
func (e *Encoder) OpKill() {
	e.WriteInstruction(OpKill)
}

// OpReturn writes OpReturn.
func (e *Encoder) OpReturn() {
	e.WriteInstruction(OpReturn)
}

// OpReturnValue writes OpReturnValue.
func (e *Encoder) OpReturnValue(value uint32) {
	e.WriteInstruction(OpReturnValue, Word(value))
}

// OpUnreachable writes OpUnreachable.
func (e *Encoder) OpUnreachable() {
	e.WriteInstruction(OpUnreachable)
}

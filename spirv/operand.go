package spirv

import (
	"encoding/binary"
	"fmt"
	"math"
	"unsafe"
)

// Operand is a logical instruction operand awaiting encoding.
//
// The set of operand kinds is closed: Word, Pair, Constant, Text, Optional,
// List and Tuple. WordCount and Encode handle every kind, and must agree on
// the number of words each one occupies.
type Operand interface {
	isOperand()
}

// Word is a single-word operand: an id, an enumerant, a mask or a 32-bit literal.
type Word uint32

// Pair packs two 16-bit values into one word, Low in the low half.
type Pair struct {
	Low  uint16
	High uint16
}

// Constant is a numeric literal of fixed width.
// Bytes holds the value's bit pattern in little-endian order.
type Constant struct {
	Bytes  []byte
	Signed bool
	Float  bool
}

// Text is a UTF-8 literal string. It is encoded with a terminating NUL.
type Text string

// Optional is an operand that may be absent. A nil Value is absent.
type Optional struct {
	Value Operand
}

// List is a variable-length run of operands.
type List []Operand

// Tuple is a fixed group of operands repeated as a unit, such as the
// (value, parent) pairs of OpPhi.
type Tuple []Operand

func (Word) isOperand()     {}
func (Pair) isOperand()     {}
func (Constant) isOperand() {}
func (Text) isOperand()     {}
func (Optional) isOperand() {}
func (List) isOperand()     {}
func (Tuple) isOperand()    {}

// Some wraps a present optional operand.
func Some(op Operand) Optional {
	return Optional{Value: op}
}

// None returns an absent optional operand.
func None() Optional {
	return Optional{}
}

// Present reports whether the optional operand carries a value.
func (o Optional) Present() bool {
	return o.Value != nil
}

// Words converts raw words, typically ids, to a List.
func Words(words ...uint32) List {
	list := make(List, len(words))
	for i, w := range words {
		list[i] = Word(w)
	}
	return list
}

// Number is the set of fixed-width numeric types accepted by ConstantOf.
type Number interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// ConstantOf captures v's width, signedness and bit pattern.
func ConstantOf[T Number](v T) Constant {
	var zero T
	size := int(unsafe.Sizeof(v))
	isFloat := T(1)/T(2) != zero
	signed := T(0)-1 < zero

	var bits uint64
	switch {
	case isFloat && size == 4:
		bits = uint64(math.Float32bits(float32(v)))
	case isFloat:
		bits = math.Float64bits(float64(v))
	default:
		bits = uint64(v)
	}

	var raw [8]byte
	binary.LittleEndian.PutUint64(raw[:], bits)
	return Constant{
		Bytes:  raw[:size],
		Signed: signed && !isFloat,
		Float:  isFloat,
	}
}

// Int8 through Float64 capture a value of the matching Go type.
func Int8(v int8) Constant       { return ConstantOf(v) }
func Int16(v int16) Constant     { return ConstantOf(v) }
func Int32(v int32) Constant     { return ConstantOf(v) }
func Int64(v int64) Constant     { return ConstantOf(v) }
func Uint8(v uint8) Constant     { return ConstantOf(v) }
func Uint16(v uint16) Constant   { return ConstantOf(v) }
func Uint32(v uint32) Constant   { return ConstantOf(v) }
func Uint64(v uint64) Constant   { return ConstantOf(v) }
func Float32(v float32) Constant { return ConstantOf(v) }
func Float64(v float64) Constant { return ConstantOf(v) }

// WordCount returns the number of words the operands encode to,
// not counting the instruction header.
func WordCount(ops ...Operand) int {
	n := 0
	for _, op := range ops {
		n += operandWords(op)
	}
	return n
}

func operandWords(op Operand) int {
	switch o := op.(type) {
	case Word, Pair:
		return 1
	case Constant:
		return ((len(o.Bytes) + 3) &^ 3) / 4
	case Text:
		// The NUL terminator either fills a word of its own or sits in the
		// zero high bytes of the last partial word.
		return len(o)/4 + 1
	case Optional:
		if o.Value == nil {
			return 0
		}
		return operandWords(o.Value)
	case List:
		return WordCount(o...)
	case Tuple:
		return WordCount(o...)
	default:
		panic(fmt.Sprintf("spirv: unsupported operand %T", op))
	}
}

// Encode appends the words of each operand to b, in order.
func Encode(b *WordBuffer, ops ...Operand) {
	for _, op := range ops {
		encodeOperand(b, op)
	}
}

func encodeOperand(b *WordBuffer, op Operand) {
	switch o := op.(type) {
	case Word:
		b.Append(uint32(o))
	case Pair:
		b.Append(uint32(o.High)<<16 | uint32(o.Low))
	case Constant:
		encodeConstant(b, o)
	case Text:
		encodeText(b, string(o))
	case Optional:
		if o.Value != nil {
			encodeOperand(b, o.Value)
		}
	case List:
		Encode(b, o...)
	case Tuple:
		Encode(b, o...)
	default:
		panic(fmt.Sprintf("spirv: unsupported operand %T", op))
	}
}

func encodeConstant(b *WordBuffer, c Constant) {
	n := len(c.Bytes)

	// Narrow signed integers are sign-extended to a full word.
	if n > 0 && n < 4 && c.Signed && !c.Float {
		var v uint32
		for i := n - 1; i >= 0; i-- {
			v = v<<8 | uint32(c.Bytes[i])
		}
		shift := uint(32 - 8*n)
		b.Append(uint32(int32(v<<shift) >> shift))
		return
	}

	for i := 0; i < n; i += 4 {
		var word uint32
		for j := 0; j < 4 && i+j < n; j++ {
			word |= uint32(c.Bytes[i+j]) << (8 * j)
		}
		b.Append(word)
	}
}

func encodeText(b *WordBuffer, s string) {
	full := len(s) / 4
	for i := 0; i < full; i++ {
		p := s[4*i:]
		b.Append(uint32(p[0]) | uint32(p[1])<<8 | uint32(p[2])<<16 | uint32(p[3])<<24)
	}

	tail := s[4*full:]
	if len(tail) == 0 {
		b.Append(0)
		return
	}

	// Trailing bytes accumulate with earlier bytes in higher positions.
	var last uint32
	for i := 0; i < len(tail); i++ {
		last = last<<8 | uint32(tail[i])
	}
	b.Append(last)
}

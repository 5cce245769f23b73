package spirv

import (
	"encoding/binary"
	"fmt"

	"go.uber.org/zap"
)

// WordBuffer is a growable sequence of 32-bit words with a write cursor.
//
// The backing slice is always fully allocated; size is the number of words
// written so far. Capacity only grows, doubling each time it runs out.
// The zero value is an empty buffer of DefaultCapacity.
type WordBuffer struct {
	words   []uint32
	size    int
	minimum int
}

// NewWordBuffer creates a buffer preallocated to capacity words.
// A non-positive capacity means DefaultCapacity.
func NewWordBuffer(capacity int) *WordBuffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &WordBuffer{
		words:   make([]uint32, capacity),
		minimum: capacity,
	}
}

// Append writes word at the cursor and advances it.
func (b *WordBuffer) Append(word uint32) {
	if b.size >= len(b.words) {
		b.grow()
	}
	b.words[b.size] = word
	b.size++
}

func (b *WordBuffer) grow() {
	minimum := b.minimum
	if minimum <= 0 {
		minimum = DefaultCapacity
	}
	newCap := max(minimum, 2*len(b.words))
	words := make([]uint32, newCap)
	copy(words, b.words[:b.size])

	Logger().Debug("word buffer grown",
		zap.Int("from", len(b.words)),
		zap.Int("to", newCap))

	b.words = words
}

// Backpatch overwrites the already written word at offset.
// The cursor and length are left unchanged.
func (b *WordBuffer) Backpatch(offset int, word uint32) {
	if offset < 0 || offset >= b.size {
		panic(fmt.Errorf("%w: offset %d, length %d", ErrBackpatchOutOfRange, offset, b.size))
	}
	saved := b.size
	b.size = offset
	b.words[b.size] = word
	b.size = saved
}

// Len returns the number of words written.
func (b *WordBuffer) Len() int {
	return b.size
}

// Cap returns the number of words the buffer can hold before growing.
func (b *WordBuffer) Cap() int {
	return len(b.words)
}

// Words returns a copy of the written words, without the unused capacity.
func (b *WordBuffer) Words() []uint32 {
	out := make([]uint32, b.size)
	copy(out, b.words[:b.size])
	return out
}

// Bytes returns the written words in little-endian byte order.
func (b *WordBuffer) Bytes() []byte {
	out := make([]byte, 0, b.size*4)
	for _, word := range b.words[:b.size] {
		out = binary.LittleEndian.AppendUint32(out, word)
	}
	return out
}

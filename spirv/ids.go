package spirv

import (
	"fmt"
	"math"
)

// IDAllocator hands out SPIR-V result ids. Id 0 is never issued.
// The zero value is ready to use.
type IDAllocator struct {
	next uint32
}

// NewIDAllocator creates an allocator whose first id is 1.
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{next: 1}
}

// Next allocates a new id.
//
// The bound must stay representable in the 32-bit header word, so the
// allocator panics with ErrIDOverflow instead of wrapping.
func (a *IDAllocator) Next() uint32 {
	if a.next == 0 {
		a.next = 1
	}
	if a.next == math.MaxUint32 {
		panic(fmt.Errorf("%w: bound would exceed %d", ErrIDOverflow, uint32(math.MaxUint32)))
	}
	id := a.next
	a.next++
	return id
}

// Bound returns one past the highest id issued so far.
func (a *IDAllocator) Bound() uint32 {
	if a.next == 0 {
		return 1
	}
	return a.next
}

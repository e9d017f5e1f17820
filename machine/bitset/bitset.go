// bitset
package bitset

import (
	"fmt"
	"math/bits"
)

const bitsPerByte = 8

// Bits is a fixed-width bit vector backed by a byte slice.  The rotors use
// it to hold their notch positions.
type Bits struct {
	width int
	bits  []byte
}

// New creates a bit vector of the given width with all bits clear.
func New(width int) *Bits {
	return &Bits{
		width: width,
		bits:  make([]byte, (width+bitsPerByte-1)/bitsPerByte),
	}
}

// FromPositions creates a bit vector of the given width with the listed
// bits set.  It fails if any position falls outside [0, width).
func FromPositions(width int, positions ...int) (*Bits, error) {
	b := New(width)
	for _, p := range positions {
		if p < 0 || p >= width {
			return nil, fmt.Errorf("bitset: position %d out of range [0,%d)", p, width)
		}
		b.Set(p)
	}
	return b, nil
}

// Width returns the number of bits in the vector.
func (b *Bits) Width() int {
	return b.width
}

// Set sets the bit at position i.
func (b *Bits) Set(i int) {
	b.bits[i/bitsPerByte] |= 1 << (i % bitsPerByte)
}

// Clr clears the bit at position i.
func (b *Bits) Clr(i int) {
	b.bits[i/bitsPerByte] &^= 1 << (i % bitsPerByte)
}

// Test reports whether the bit at position i is set.
func (b *Bits) Test(i int) bool {
	return b.bits[i/bitsPerByte]&(1<<(i%bitsPerByte)) != 0
}

// Count returns the number of set bits.
func (b *Bits) Count() int {
	n := 0
	for _, v := range b.bits {
		n += bits.OnesCount8(v)
	}
	return n
}

// CountRange returns the number of set bits with positions in [lo, hi].
// Bounds are clamped to the vector width; an empty range counts zero.
func (b *Bits) CountRange(lo, hi int) int {
	if lo < 0 {
		lo = 0
	}
	if hi >= b.width {
		hi = b.width - 1
	}
	if lo > hi {
		return 0
	}
	n := 0
	for i := lo / bitsPerByte; i <= hi/bitsPerByte; i++ {
		m := byte(0xFF)
		if i == lo/bitsPerByte {
			m &= 0xFF << (lo % bitsPerByte)
		}
		if i == hi/bitsPerByte {
			m &= 0xFF >> (bitsPerByte - 1 - hi%bitsPerByte)
		}
		n += bits.OnesCount8(b.bits[i] & m)
	}
	return n
}

// Positions returns the set bit positions in ascending order.
func (b *Bits) Positions() []int {
	p := make([]int, 0, b.Count())
	for i := 0; i < b.width; i++ {
		if b.Test(i) {
			p = append(p, i)
		}
	}
	return p
}

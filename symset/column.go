// Package symset compiles a regex-like symbol-set dialect into a
// 256-bit membership column, and provides the inverse (canonical
// bracketed-hex rendering) and a complexity estimator.
package symset

import "github.com/bits-and-blooms/bitset"

// Column is a 256-bit byte-membership vector: bit b is set iff the
// symbol-set accepts byte b. Backed by bits-and-blooms/bitset rather
// than a hand-rolled fixed-width array, matching the pack's own choice
// of bitset library for fixed-size membership vectors.
type Column struct {
	bits *bitset.BitSet
}

// NewColumn returns an empty (all-zero) column.
func NewColumn() Column {
	return Column{bits: bitset.New(256)}
}

// Full returns a column with every byte set.
func Full() Column {
	c := NewColumn()
	for i := 0; i < 256; i++ {
		c.Set(byte(i))
	}
	return c
}

// Set marks byte b as a member.
func (c Column) Set(b byte) { c.bits.Set(uint(b)) }

// Clear marks byte b as not a member.
func (c Column) Clear(b byte) { c.bits.Clear(uint(b)) }

// Test reports whether byte b is a member.
func (c Column) Test(b byte) bool {
	if c.bits == nil {
		return false
	}
	return c.bits.Test(uint(b))
}

// SetRange sets every byte in [lo, hi] inclusive.
func (c Column) SetRange(lo, hi byte) {
	for b := int(lo); b <= int(hi); b++ {
		c.Set(byte(b))
	}
}

// Flip bit-flips the entire column in place (used by the `^` inverting
// prefix of bracketed classes).
func (c Column) Flip() {
	for i := uint(0); i < 256; i++ {
		c.bits.Flip(i)
	}
}

// Union sets every bit that is set in other (used by OR-column merges
// in common-path merge).
func (c Column) Union(other Column) {
	c.bits.InPlaceUnion(other.bits)
}

// Equal reports bit-for-bit equality between two columns.
func (c Column) Equal(other Column) bool {
	if c.bits == nil || other.bits == nil {
		return c.bits == nil && other.bits == nil || c.IsEmpty() && other.IsEmpty()
	}
	return c.bits.Equal(other.bits)
}

// IsEmpty reports whether no byte is a member.
func (c Column) IsEmpty() bool {
	return c.bits == nil || c.bits.None()
}

// Clone returns an independent copy.
func (c Column) Clone() Column {
	nc := NewColumn()
	nc.bits.InPlaceUnion(c.bits)
	return nc
}

// Bytes returns the sorted list of member bytes.
func (c Column) Bytes() []byte {
	out := make([]byte, 0, 256)
	for i := uint(0); i < 256; i++ {
		if c.bits.Test(i) {
			out = append(out, byte(i))
		}
	}
	return out
}

// Count returns the number of member bytes.
func (c Column) Count() int {
	if c.bits == nil {
		return 0
	}
	return int(c.bits.Count())
}

// Key returns a 256-bit canonical, hashable representation of the
// column suitable for use as a map key (DFA-state dedup in subset
// construction).
func (c Column) Key() [4]uint64 {
	var key [4]uint64
	words := c.bits.Bytes()
	for i := 0; i < len(words) && i < 4; i++ {
		key[i] = words[i]
	}
	return key
}

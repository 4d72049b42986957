package tableau

import "math/bits"

// Column is one tableau column stored as a word-packed bit vector over rows.
// Bit r of the column holds row r. Bits past the row count are kept zero by
// every operation in this file.
//
// All binary operations assume both operands belong to the same State and
// therefore have the same number of words.
type Column []uint64

func wordsFor(rows int) int {
	return (rows + 63) / 64
}

// Bit returns the bit for the given row.
func (c Column) Bit(row int) uint8 {
	return uint8(c[row>>6] >> (uint(row) & 63) & 1)
}

// SetBit sets the bit for the given row to v&1.
func (c Column) SetBit(row int, v uint8) {
	mask := uint64(1) << (uint(row) & 63)
	if v&1 == 1 {
		c[row>>6] |= mask
	} else {
		c[row>>6] &^= mask
	}
}

// Xor sets c ^= a elementwise.
func (c Column) Xor(a Column) {
	for w := range c {
		c[w] ^= a[w]
	}
}

// XorAnd sets c ^= a & b elementwise.
func (c Column) XorAnd(a, b Column) {
	for w := range c {
		c[w] ^= a[w] & b[w]
	}
}

// Swap exchanges the contents of c and a.
func (c Column) Swap(a Column) {
	for w := range c {
		c[w], a[w] = a[w], c[w]
	}
}

// CopyFrom overwrites c with a.
func (c Column) CopyFrom(a Column) {
	copy(c, a)
}

// Clone returns an independent copy of c.
func (c Column) Clone() Column {
	out := make(Column, len(c))
	copy(out, c)
	return out
}

// Equal reports whether c and a hold the same bits.
func (c Column) Equal(a Column) bool {
	if len(c) != len(a) {
		return false
	}
	for w := range c {
		if c[w] != a[w] {
			return false
		}
	}
	return true
}

// OnesCount returns the number of rows whose bit is set.
func (c Column) OnesCount() int {
	n := 0
	for _, w := range c {
		n += bits.OnesCount64(w)
	}
	return n
}

// XorAndNxor sets c ^= a & b & ^(p ^ q) elementwise. This is the shape of
// the CNOT phase term.
func (c Column) XorAndNxor(a, b, p, q Column) {
	for w := range c {
		c[w] ^= a[w] & b[w] &^ (p[w] ^ q[w])
	}
}

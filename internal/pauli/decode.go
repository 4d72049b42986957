// Package pauli decodes tableau rows into Pauli labels and tallies the
// operator's composition.
package pauli

import (
	"fmt"
	"strings"

	"github.com/nvandessel/opspread/internal/tableau"
)

// Label is a single-site Pauli.
type Label uint8

const (
	I Label = iota
	X
	Y
	Z
)

// table maps (z, x) to a label.
var table = [2][2]Label{
	{I, X},
	{Z, Y},
}

func (l Label) String() string {
	switch l {
	case I:
		return "I"
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	}
	return fmt.Sprintf("Label(%d)", uint8(l))
}

// Bits returns the (z, x) encoding of the label.
func (l Label) Bits() (z, x uint8) {
	switch l {
	case X:
		return 0, 1
	case Y:
		return 1, 1
	case Z:
		return 1, 0
	}
	return 0, 0
}

// Counts holds [nI, nX, nY, nZ], indexed by Label.
type Counts [4]int

// Total returns the number of sites counted.
func (c Counts) Total() int {
	return c[I] + c[X] + c[Y] + c[Z]
}

// Weight returns the number of non-identity sites.
func (c Counts) Weight() int {
	return c[X] + c[Y] + c[Z]
}

// Fractions returns each count divided by the total. A zero total yields zeros.
func (c Counts) Fractions() [4]float64 {
	var f [4]float64
	n := c.Total()
	if n == 0 {
		return f
	}
	for k := range c {
		f[k] = float64(c[k]) / float64(n)
	}
	return f
}

// Decode returns the labels of every site of one row.
func Decode(st *tableau.State, row int) ([]Label, error) {
	labels, _, err := DecodeWithStats(st, row)
	return labels, err
}

// DecodeWithStats returns the labels of one row and their counts.
// It never mutates the state.
func DecodeWithStats(st *tableau.State, row int) ([]Label, Counts, error) {
	var counts Counts
	if err := st.CheckRow(row); err != nil {
		return nil, counts, err
	}
	labels := make([]Label, st.Len())
	for i := range labels {
		l := table[st.Z(i).Bit(row)][st.X(i).Bit(row)]
		labels[i] = l
		counts[l]++
	}
	return labels, counts, nil
}

// String renders labels as a Pauli string such as "XIZY".
func String(labels []Label) string {
	var b strings.Builder
	b.Grow(len(labels))
	for _, l := range labels {
		b.WriteString(l.String())
	}
	return b.String()
}

// Parse reads a Pauli string of I, X, Y, Z characters (case-insensitive).
func Parse(s string) ([]Label, error) {
	labels := make([]Label, 0, len(s))
	for k, r := range strings.ToUpper(s) {
		switch r {
		case 'I':
			labels = append(labels, I)
		case 'X':
			labels = append(labels, X)
		case 'Y':
			labels = append(labels, Y)
		case 'Z':
			labels = append(labels, Z)
		default:
			return nil, fmt.Errorf("invalid Pauli %q at position %d", r, k)
		}
	}
	return labels, nil
}

// Tally counts labels.
func Tally(labels []Label) Counts {
	var c Counts
	for _, l := range labels {
		c[l]++
	}
	return c
}

// Support returns the leftmost and rightmost non-identity sites. ok is false
// for the identity operator.
func Support(labels []Label) (left, right int, ok bool) {
	left, right = -1, -1
	for i, l := range labels {
		if l == I {
			continue
		}
		if left < 0 {
			left = i
		}
		right = i
	}
	return left, right, left >= 0
}

// Package tableau holds the binary symplectic representation of a Pauli
// operator on a chain of qubits.
//
// A State has R rows, each an independent copy of the operator, and 2L+1
// columns: the Z bits of sites [0, L), the X bits of sites [0, L), and one
// phase bit. Columns are word-packed over rows so that every gate acts on all
// rows with a handful of word operations.
//
// The per-site bit pair encodes the single-qubit Pauli:
//
//	(z, x) = (0, 0) I
//	(z, x) = (0, 1) X
//	(z, x) = (1, 0) Z
//	(z, x) = (1, 1) Y
package tableau

import (
	"github.com/nvandessel/opspread/internal/constants"
	"github.com/pkg/errors"
)

// State is a batch of Pauli operators in symplectic form.
// A State is not safe for concurrent mutation.
type State struct {
	l       int
	defects int
	periods int
	rows    int

	// cols holds 2l+1 columns: z bits, x bits, phase.
	cols []Column

	// weights is reserved for ensemble coefficients and is never read by
	// gates or decoders.
	weights []float64
}

// New creates a single-row State of chain length l, initialized to the
// all-identity operator with the phase column set.
//
// The defect-chain count d and period count nT are validated and stored but
// not otherwise used by the state.
func New(l, d, nT int) (*State, error) {
	return NewBatch(l, d, nT, 1)
}

// NewBatch is New with an explicit number of rows.
func NewBatch(l, d, nT, rows int) (*State, error) {
	if l <= 0 || l >= constants.MaxChainLength {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "chain length %d not in (0, %d)", l, constants.MaxChainLength)
	}
	if d < 0 || d > constants.MaxDefectChains {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "defect chains %d not in [0, %d]", d, constants.MaxDefectChains)
	}
	if nT < constants.MinPeriods || nT > constants.MaxPeriods {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "periods %d not in [%d, %d]", nT, constants.MinPeriods, constants.MaxPeriods)
	}
	if rows < 1 {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "rows %d must be positive", rows)
	}

	words := wordsFor(rows)
	backing := make([]uint64, (2*l+1)*words)
	cols := make([]Column, 2*l+1)
	for c := range cols {
		cols[c] = Column(backing[c*words : (c+1)*words : (c+1)*words])
	}

	weights := make([]float64, rows)
	for r := range weights {
		weights[r] = 1
	}

	s := &State{
		l:       l,
		defects: d,
		periods: nT,
		rows:    rows,
		cols:    cols,
		weights: weights,
	}
	phase := s.Phase()
	for r := 0; r < rows; r++ {
		phase.SetBit(r, 1)
	}
	return s, nil
}

// Len returns the chain length L.
func (s *State) Len() int { return s.l }

// Rows returns the number of parallel operator copies.
func (s *State) Rows() int { return s.rows }

// DefectChains returns the defect-chain count given at construction.
func (s *State) DefectChains() int { return s.defects }

// Periods returns the period count given at construction.
func (s *State) Periods() int { return s.periods }

// NumColumns returns 2L+1.
func (s *State) NumColumns() int { return len(s.cols) }

// Weights returns a copy of the per-row weight vector.
func (s *State) Weights() []float64 {
	out := make([]float64, len(s.weights))
	copy(out, s.weights)
	return out
}

// Z returns the live Z-bit column of site i. The caller must have validated i.
func (s *State) Z(i int) Column { return s.cols[i] }

// X returns the live X-bit column of site i. The caller must have validated i.
func (s *State) X(i int) Column { return s.cols[s.l+i] }

// Phase returns the live phase column.
func (s *State) Phase() Column { return s.cols[2*s.l] }

// Column returns the live column c, where c indexes the full 2L+1 layout.
func (s *State) Column(c int) (Column, error) {
	if c < 0 || c >= len(s.cols) {
		return nil, errors.Wrapf(ErrIndexOutOfBounds, "column %d not in [0, %d)", c, len(s.cols))
	}
	return s.cols[c], nil
}

// SetColumn overwrites column c with the bits of src.
func (s *State) SetColumn(c int, src Column) error {
	col, err := s.Column(c)
	if err != nil {
		return err
	}
	if len(src) != len(col) {
		return errors.Wrapf(ErrIndexOutOfBounds, "column has %d words, want %d", len(src), len(col))
	}
	col.CopyFrom(src)
	return nil
}

// SetSite assigns the Z and X bits of one site in one row. It is meant for
// seeding a starting operator, e.g. SetSite(0, 0, 0, 1) for X on site 0.
func (s *State) SetSite(row, site int, z, x uint8) error {
	if err := s.CheckRow(row); err != nil {
		return err
	}
	if err := s.CheckSite(site); err != nil {
		return err
	}
	s.Z(site).SetBit(row, z)
	s.X(site).SetBit(row, x)
	return nil
}

// Site returns the Z and X bits of one site in one row.
func (s *State) Site(row, site int) (z, x uint8, err error) {
	if err := s.CheckRow(row); err != nil {
		return 0, 0, err
	}
	if err := s.CheckSite(site); err != nil {
		return 0, 0, err
	}
	return s.Z(site).Bit(row), s.X(site).Bit(row), nil
}

// PhaseBit returns the phase bit of one row.
func (s *State) PhaseBit(row int) (uint8, error) {
	if err := s.CheckRow(row); err != nil {
		return 0, err
	}
	return s.Phase().Bit(row), nil
}

// Clone returns a deep copy of s.
func (s *State) Clone() *State {
	out, _ := NewBatch(s.l, s.defects, s.periods, s.rows)
	for c := range s.cols {
		out.cols[c].CopyFrom(s.cols[c])
	}
	copy(out.weights, s.weights)
	return out
}

// Equal reports whether two states have the same shape and bits.
// Weights are not compared.
func (s *State) Equal(o *State) bool {
	if s.l != o.l || s.rows != o.rows {
		return false
	}
	for c := range s.cols {
		if !s.cols[c].Equal(o.cols[c]) {
			return false
		}
	}
	return true
}

// Package clifford implements Clifford gates as conjugation updates on a
// symplectic tableau. Each gate touches only the columns of the sites it
// acts on plus the phase column, and acts identically on every row.
package clifford

import (
	"github.com/nvandessel/opspread/internal/constants"
	"github.com/nvandessel/opspread/internal/tableau"
	"github.com/pkg/errors"
)

// GateSet applies gates to a tableau.State. The zero value is not usable;
// construct with NewGateSet.
type GateSet struct {
	phaseRule constants.PhaseRule
}

// Option configures a GateSet.
type Option func(*GateSet)

// WithPhaseRule selects the phase-bit update of the Phase gate. Unknown rules
// are ignored.
func WithPhaseRule(r constants.PhaseRule) Option {
	return func(g *GateSet) {
		if r.Valid() {
			g.phaseRule = r
		}
	}
}

// NewGateSet returns a gate set using the documented Phase rule unless an
// option overrides it.
func NewGateSet(opts ...Option) *GateSet {
	g := &GateSet{phaseRule: constants.PhaseRuleDocumented}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// PhaseRule returns the configured Phase gate rule.
func (g *GateSet) PhaseRule() constants.PhaseRule {
	return g.phaseRule
}

// Hadamard swaps z_i and x_i, then r ^= z_i & x_i.
func (g *GateSet) Hadamard(s *tableau.State, i int) error {
	if err := s.CheckSite(i); err != nil {
		return err
	}
	z, x := s.Z(i), s.X(i)
	z.Swap(x)
	s.Phase().XorAnd(z, x)
	return nil
}

// Phase sets z_i ^= x_i and folds x_i & z_i into the phase. Under
// PhaseRuleDocumented the product uses the updated z_i; under
// PhaseRuleTextbook it uses the value before the update.
func (g *GateSet) Phase(s *tableau.State, i int) error {
	if err := s.CheckSite(i); err != nil {
		return err
	}
	z, x, r := s.Z(i), s.X(i), s.Phase()
	if g.phaseRule == constants.PhaseRuleTextbook {
		r.XorAnd(x, z)
		z.Xor(x)
		return nil
	}
	z.Xor(x)
	r.XorAnd(x, z)
	return nil
}

// PauliX flips the phase where z_i is set.
func (g *GateSet) PauliX(s *tableau.State, i int) error {
	if err := s.CheckSite(i); err != nil {
		return err
	}
	s.Phase().Xor(s.Z(i))
	return nil
}

// PauliY flips the phase where exactly one of z_i, x_i is set.
func (g *GateSet) PauliY(s *tableau.State, i int) error {
	if err := s.CheckSite(i); err != nil {
		return err
	}
	r := s.Phase()
	r.Xor(s.Z(i))
	r.Xor(s.X(i))
	return nil
}

// PauliZ flips the phase where x_i is set.
func (g *GateSet) PauliZ(s *tableau.State, i int) error {
	if err := s.CheckSite(i); err != nil {
		return err
	}
	s.Phase().Xor(s.X(i))
	return nil
}

// CNOT applies a controlled-NOT with control i and target j:
// z_i ^= z_j, x_j ^= x_i, then r ^= x_i & z_j & ^(x_j ^ z_i) on the
// updated bits.
func (g *GateSet) CNOT(s *tableau.State, i, j int) error {
	if err := s.CheckSite(i); err != nil {
		return err
	}
	if err := s.CheckSite(j); err != nil {
		return err
	}
	if i == j {
		return errors.Wrapf(tableau.ErrIndexOutOfBounds, "cnot control and target are both site %d", i)
	}
	zi, xi := s.Z(i), s.X(i)
	zj, xj := s.Z(j), s.X(j)
	zi.Xor(zj)
	xj.Xor(xi)
	s.Phase().XorAndNxor(xi, zj, xj, zi)
	return nil
}

// HP is Hadamard followed by Phase folded into one update:
// (z_i, x_i) <- (x_i, x_i ^ z_i), then r ^= x_i.
func (g *GateSet) HP(s *tableau.State, i int) error {
	if err := s.CheckSite(i); err != nil {
		return err
	}
	z, x := s.Z(i), s.X(i)
	z.Swap(x)
	x.Xor(z)
	s.Phase().Xor(x)
	return nil
}

// PH is Phase followed by Hadamard: (z_i, x_i) <- (z_i ^ x_i, z_i).
// The phase is not updated.
func (g *GateSet) PH(s *tableau.State, i int) error {
	if err := s.CheckSite(i); err != nil {
		return err
	}
	z, x := s.Z(i), s.X(i)
	z.Swap(x)
	z.Xor(x)
	return nil
}

// Swap exchanges sites i and j with three alternating CNOTs.
func (g *GateSet) Swap(s *tableau.State, i, j int) error {
	if err := g.CNOT(s, i, j); err != nil {
		return err
	}
	if err := g.CNOT(s, j, i); err != nil {
		return err
	}
	return g.CNOT(s, i, j)
}

// Package sampler draws random single- and two-qubit Clifford gates and
// applies them to a tableau through a clifford.GateSet.
//
// Single-qubit draws are uniform over the 24 products
// {I, H} x {I, HP, PH} x {I, X, Y, Z}. Two-qubit draws dress a local
// equivalence class representative with independent single-qubit draws.
package sampler

import (
	"math/rand/v2"

	"github.com/nvandessel/opspread/internal/clifford"
	"github.com/nvandessel/opspread/internal/constants"
	"github.com/nvandessel/opspread/internal/tableau"
	"github.com/pkg/errors"
)

// Observer is notified of every gate the sampler applies.
type Observer interface {
	GateApplied(g clifford.Gate)
}

// Sampler applies random Cliffords. It owns a single random stream and is
// not safe for concurrent use.
type Sampler struct {
	gates    *clifford.GateSet
	rng      *rand.Rand
	classes  int
	observer Observer
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithEntanglingClasses sets the size of the two-qubit class draw. Only
// constants.DocumentedEntanglingClasses (21, the default) and
// constants.LiteratureEntanglingClasses (20) are accepted; other values are
// ignored.
func WithEntanglingClasses(n int) Option {
	return func(s *Sampler) {
		if n == constants.DocumentedEntanglingClasses || n == constants.LiteratureEntanglingClasses {
			s.classes = n
		}
	}
}

// WithObserver registers an observer for applied gates.
func WithObserver(o Observer) Option {
	return func(s *Sampler) {
		s.observer = o
	}
}

// New creates a sampler drawing from rng.
func New(gates *clifford.GateSet, rng *rand.Rand, opts ...Option) *Sampler {
	s := &Sampler{
		gates:   gates,
		rng:     rng,
		classes: constants.DocumentedEntanglingClasses,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSeeded creates a sampler with a PCG stream derived from seed. Equal
// seeds produce equal gate sequences.
func NewSeeded(gates *clifford.GateSet, seed uint64, opts ...Option) *Sampler {
	return New(gates, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), opts...)
}

// EntanglingClasses returns the size of the two-qubit class draw.
func (s *Sampler) EntanglingClasses() int {
	return s.classes
}

// SingleQubit draws and applies a uniformly random single-qubit Clifford on
// site.
func (s *Sampler) SingleQubit(st *tableau.State, site int) (SingleDraw, error) {
	if err := st.CheckSite(site); err != nil {
		return SingleDraw{}, err
	}
	d := SingleDraw{
		Hadamard: s.rng.IntN(2) == 1,
		Rotation: Rotation(s.rng.IntN(3)),
		Pauli:    Pauli(s.rng.IntN(4)),
	}
	if err := s.applyAll(st, d.Gates(site)); err != nil {
		return d, err
	}
	return d, nil
}

// rotation draws and applies one of {I, HP, PH} on site.
func (s *Sampler) rotation(st *tableau.State, site int) (Rotation, error) {
	r := Rotation(s.rng.IntN(3))
	if k := rotationKinds[r]; k != clifford.KindIdentity {
		if err := s.apply(st, clifford.Gate{Kind: k, A: site}); err != nil {
			return r, err
		}
	}
	return r, nil
}

// TwoQubit draws and applies a random two-qubit Clifford on sites i and j.
func (s *Sampler) TwoQubit(st *tableau.State, i, j int) (TwoDraw, error) {
	d := TwoDraw{I: i, J: j}
	if err := st.CheckSite(i); err != nil {
		return d, err
	}
	if err := st.CheckSite(j); err != nil {
		return d, err
	}
	if i == j {
		return d, errors.Wrapf(tableau.ErrIndexOutOfBounds, "two-qubit gate on a single site %d", i)
	}

	var err error
	if d.PreJ, err = s.SingleQubit(st, j); err != nil {
		return d, err
	}
	if d.PreI, err = s.SingleQubit(st, i); err != nil {
		return d, err
	}

	d.Outcome = s.rng.IntN(s.classes)
	d.Class = classOf(d.Outcome)

	cnot := clifford.Gate{Kind: clifford.KindCNOT, A: i, B: j}
	tonc := clifford.Gate{Kind: clifford.KindCNOT, A: j, B: i}

	switch d.Class {
	case ClassLocal:
		return d, nil
	case ClassCNOT:
		err = s.apply(st, cnot)
	case ClassDoubleCNOT:
		err = s.applyAll(st, []clifford.Gate{cnot, tonc})
	case ClassSwap:
		return d, s.applyAll(st, []clifford.Gate{cnot, tonc, cnot})
	}
	if err != nil {
		return d, err
	}

	if d.PostJ, err = s.rotation(st, j); err != nil {
		return d, err
	}
	if d.PostI, err = s.rotation(st, i); err != nil {
		return d, err
	}
	return d, nil
}

func (s *Sampler) applyAll(st *tableau.State, gates []clifford.Gate) error {
	for _, g := range gates {
		if err := s.apply(st, g); err != nil {
			return err
		}
	}
	return nil
}

// apply dispatches one gate to the gate set.
func (s *Sampler) apply(st *tableau.State, g clifford.Gate) error {
	var err error
	switch g.Kind {
	case clifford.KindIdentity:
	case clifford.KindHadamard:
		err = s.gates.Hadamard(st, g.A)
	case clifford.KindPhase:
		err = s.gates.Phase(st, g.A)
	case clifford.KindPauliX:
		err = s.gates.PauliX(st, g.A)
	case clifford.KindPauliY:
		err = s.gates.PauliY(st, g.A)
	case clifford.KindPauliZ:
		err = s.gates.PauliZ(st, g.A)
	case clifford.KindCNOT:
		err = s.gates.CNOT(st, g.A, g.B)
	case clifford.KindHP:
		err = s.gates.HP(st, g.A)
	case clifford.KindPH:
		err = s.gates.PH(st, g.A)
	default:
		return errors.Errorf("unknown gate kind %d", int(g.Kind))
	}
	if err != nil {
		return err
	}
	if s.observer != nil {
		s.observer.GateApplied(g)
	}
	return nil
}

// Apply applies one explicit gate through the same dispatch the random draws
// use.
func (s *Sampler) Apply(st *tableau.State, g clifford.Gate) error {
	return s.apply(st, g)
}

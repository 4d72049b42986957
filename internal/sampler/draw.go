package sampler

import "github.com/nvandessel/opspread/internal/clifford"

// Rotation is the middle factor of a single-qubit draw.
type Rotation int

const (
	RotationNone Rotation = iota
	RotationHP
	RotationPH
)

// Pauli is the last factor of a single-qubit draw.
type Pauli int

const (
	PauliNone Pauli = iota
	PauliX
	PauliY
	PauliZ
)

var rotationKinds = [...]clifford.Kind{
	RotationNone: clifford.KindIdentity,
	RotationHP:   clifford.KindHP,
	RotationPH:   clifford.KindPH,
}

var pauliKinds = [...]clifford.Kind{
	PauliNone: clifford.KindIdentity,
	PauliX:    clifford.KindPauliX,
	PauliY:    clifford.KindPauliY,
	PauliZ:    clifford.KindPauliZ,
}

// SingleDraw records the three factors chosen for one single-qubit Clifford.
type SingleDraw struct {
	Hadamard bool
	Rotation Rotation
	Pauli    Pauli
}

// Index packs the draw into [0, 24): hadamard*12 + rotation*4 + pauli.
func (d SingleDraw) Index() int {
	h := 0
	if d.Hadamard {
		h = 1
	}
	return h*12 + int(d.Rotation)*4 + int(d.Pauli)
}

// Gates returns the non-identity gates of the draw in application order.
func (d SingleDraw) Gates(site int) []clifford.Gate {
	var out []clifford.Gate
	if d.Hadamard {
		out = append(out, clifford.Gate{Kind: clifford.KindHadamard, A: site})
	}
	if k := rotationKinds[d.Rotation]; k != clifford.KindIdentity {
		out = append(out, clifford.Gate{Kind: k, A: site})
	}
	if k := pauliKinds[d.Pauli]; k != clifford.KindIdentity {
		out = append(out, clifford.Gate{Kind: k, A: site})
	}
	return out
}

// Class is the entangling part of a two-qubit draw.
type Class int

const (
	// ClassLocal applies no entangling gate.
	ClassLocal Class = iota
	// ClassCNOT applies CNOT(i,j) then restricted rotations on j and i.
	ClassCNOT
	// ClassDoubleCNOT applies CNOT(i,j), CNOT(j,i) then restricted rotations.
	ClassDoubleCNOT
	// ClassSwap applies CNOT(i,j), CNOT(j,i), CNOT(i,j).
	ClassSwap
)

func (c Class) String() string {
	switch c {
	case ClassLocal:
		return "local"
	case ClassCNOT:
		return "cnot"
	case ClassDoubleCNOT:
		return "double-cnot"
	case ClassSwap:
		return "swap"
	}
	return "unknown"
}

// classOf maps a class draw in [0, 21) to its class.
func classOf(outcome int) Class {
	switch {
	case outcome == 0:
		return ClassLocal
	case outcome <= 9:
		return ClassCNOT
	case outcome <= 18:
		return ClassDoubleCNOT
	case outcome == 19:
		return ClassSwap
	default:
		return ClassLocal
	}
}

// TwoDraw records every random choice of one two-qubit Clifford on (I, J).
type TwoDraw struct {
	I, J int

	// PreJ and PreI are the full single-qubit draws applied first.
	PreJ, PreI SingleDraw

	// Outcome is the raw class draw and Class its interpretation.
	Outcome int
	Class   Class

	// PostJ and PostI are the restricted rotations after the entangler.
	// They are RotationNone for ClassLocal and ClassSwap.
	PostJ, PostI Rotation
}

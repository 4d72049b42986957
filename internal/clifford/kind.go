package clifford

import "fmt"

// Kind enumerates the gates of the set. It is closed: the sampler dispatches
// on it with a single switch.
type Kind int

const (
	KindIdentity Kind = iota
	KindHadamard
	KindPhase
	KindPauliX
	KindPauliY
	KindPauliZ
	KindCNOT
	KindHP
	KindPH
)

var kindNames = [...]string{
	KindIdentity: "I",
	KindHadamard: "H",
	KindPhase:    "S",
	KindPauliX:   "X",
	KindPauliY:   "Y",
	KindPauliZ:   "Z",
	KindCNOT:     "CNOT",
	KindHP:       "HP",
	KindPH:       "PH",
}

// Kinds lists every gate kind in declaration order.
var Kinds = []Kind{KindIdentity, KindHadamard, KindPhase, KindPauliX, KindPauliY, KindPauliZ, KindCNOT, KindHP, KindPH}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// TwoQubit reports whether the gate acts on a pair of sites.
func (k Kind) TwoQubit() bool {
	return k == KindCNOT
}

// Gate is one gate application. B is only meaningful for two-qubit kinds,
// where A is the control and B the target.
type Gate struct {
	Kind Kind
	A    int
	B    int
}

func (g Gate) String() string {
	if g.Kind.TwoQubit() {
		return fmt.Sprintf("%s(%d,%d)", g.Kind, g.A, g.B)
	}
	return fmt.Sprintf("%s(%d)", g.Kind, g.A)
}

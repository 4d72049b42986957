package sampler

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/nvandessel/opspread/internal/clifford"
	"github.com/nvandessel/opspread/internal/constants"
	"github.com/nvandessel/opspread/internal/tableau"
)

// chiSquare001 holds the upper 0.1% critical values of the chi-square
// distribution by degrees of freedom.
var chiSquare001 = map[int]float64{
	19: 43.820,
	20: 45.315,
	23: 49.728,
}

// newState creates a single-row state of length l and fails the test on error.
func newState(t *testing.T, l int) *tableau.State {
	t.Helper()
	s, err := tableau.New(l, 0, 1)
	if err != nil {
		t.Fatalf("tableau.New(%d): %v", l, err)
	}
	return s
}

// chiSquare returns the Pearson statistic of counts against a uniform
// expectation over len(counts) categories.
func chiSquare(counts []int, n int) float64 {
	expected := float64(n) / float64(len(counts))
	var stat float64
	for _, c := range counts {
		d := float64(c) - expected
		stat += d * d / expected
	}
	return stat
}

// countingObserver tallies applied gates by kind.
type countingObserver struct {
	counts map[clifford.Kind]int
	gates  []clifford.Gate
}

func (o *countingObserver) GateApplied(g clifford.Gate) {
	if o.counts == nil {
		o.counts = map[clifford.Kind]int{}
	}
	o.counts[g.Kind]++
	o.gates = append(o.gates, g)
}

// replay returns the gate sequence a TwoDraw implies.
func replay(d TwoDraw) []clifford.Gate {
	gates := append(d.PreJ.Gates(d.J), d.PreI.Gates(d.I)...)
	cnot := clifford.Gate{Kind: clifford.KindCNOT, A: d.I, B: d.J}
	tonc := clifford.Gate{Kind: clifford.KindCNOT, A: d.J, B: d.I}
	switch d.Class {
	case ClassCNOT:
		gates = append(gates, cnot)
	case ClassDoubleCNOT:
		gates = append(gates, cnot, tonc)
	case ClassSwap:
		return append(gates, cnot, tonc, cnot)
	default:
		return gates
	}
	if k := rotationKinds[d.PostJ]; k != clifford.KindIdentity {
		gates = append(gates, clifford.Gate{Kind: k, A: d.J})
	}
	if k := rotationKinds[d.PostI]; k != clifford.KindIdentity {
		gates = append(gates, clifford.Gate{Kind: k, A: d.I})
	}
	return gates
}

func TestSingleQubit_UniformOver24(t *testing.T) {
	const n = 24000
	s := NewSeeded(clifford.NewGateSet(), 2024)
	st := newState(t, 1)

	counts := make([]int, constants.SingleQubitCliffords)
	for k := 0; k < n; k++ {
		d, err := s.SingleQubit(st, 0)
		if err != nil {
			t.Fatalf("SingleQubit: %v", err)
		}
		counts[d.Index()]++
	}

	for idx, c := range counts {
		if c == 0 {
			t.Errorf("combination %d never drawn", idx)
		}
	}
	if stat := chiSquare(counts, n); stat > chiSquare001[23] {
		t.Errorf("chi-square = %.2f over 24 combinations, critical %.2f", stat, chiSquare001[23])
	}
}

func TestTwoQubit_ClassDrawUniform(t *testing.T) {
	tests := []struct {
		name    string
		classes int
	}{
		{"documented", constants.DocumentedEntanglingClasses},
		{"literature", constants.LiteratureEntanglingClasses},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const n = 21000
			s := NewSeeded(clifford.NewGateSet(), 7, WithEntanglingClasses(tt.classes))
			if s.EntanglingClasses() != tt.classes {
				t.Fatalf("EntanglingClasses() = %d, want %d", s.EntanglingClasses(), tt.classes)
			}
			st := newState(t, 2)

			counts := make([]int, tt.classes)
			for k := 0; k < n; k++ {
				d, err := s.TwoQubit(st, 0, 1)
				if err != nil {
					t.Fatalf("TwoQubit: %v", err)
				}
				if d.Outcome < 0 || d.Outcome >= tt.classes {
					t.Fatalf("outcome %d outside [0, %d)", d.Outcome, tt.classes)
				}
				counts[d.Outcome]++
			}
			if stat := chiSquare(counts, n); stat > chiSquare001[tt.classes-1] {
				t.Errorf("chi-square = %.2f, critical %.2f", stat, chiSquare001[tt.classes-1])
			}
		})
	}
}

func TestClassOf(t *testing.T) {
	want := map[int]Class{0: ClassLocal, 20: ClassLocal, 19: ClassSwap}
	for o := 1; o <= 9; o++ {
		want[o] = ClassCNOT
	}
	for o := 10; o <= 18; o++ {
		want[o] = ClassDoubleCNOT
	}
	for o, c := range want {
		if got := classOf(o); got != c {
			t.Errorf("classOf(%d) = %s, want %s", o, got, c)
		}
	}
}

func TestWithEntanglingClasses_IgnoresOtherCounts(t *testing.T) {
	for _, n := range []int{0, 1, 19, 22, 11520} {
		s := New(clifford.NewGateSet(), rand.New(rand.NewPCG(1, 2)), WithEntanglingClasses(n))
		if s.EntanglingClasses() != constants.DocumentedEntanglingClasses {
			t.Errorf("WithEntanglingClasses(%d) changed class count to %d", n, s.EntanglingClasses())
		}
	}
}

func TestTwoQubit_MatchesRecordedDraw(t *testing.T) {
	gates := clifford.NewGateSet()
	s := NewSeeded(gates, 99)
	obs := &countingObserver{}
	replayer := New(gates, nil, WithObserver(obs))

	st := newState(t, 4)
	if err := st.SetSite(0, 1, 0, 1); err != nil {
		t.Fatalf("SetSite: %v", err)
	}

	seenClass := map[Class]bool{}
	for k := 0; k < 500; k++ {
		want := st.Clone()
		d, err := s.TwoQubit(st, 1, 2)
		if err != nil {
			t.Fatalf("TwoQubit: %v", err)
		}
		seenClass[d.Class] = true
		if d.Class == ClassLocal || d.Class == ClassSwap {
			if d.PostI != RotationNone || d.PostJ != RotationNone {
				t.Errorf("class %s recorded post rotations %d/%d", d.Class, d.PostI, d.PostJ)
			}
		}

		for _, g := range replay(d) {
			if err := replayer.Apply(want, g); err != nil {
				t.Fatalf("Apply(%s): %v", g, err)
			}
		}
		if !want.Equal(st) {
			t.Fatalf("draw %d (%+v): replayed state differs from sampled state", k, d)
		}
	}
	for _, c := range []Class{ClassLocal, ClassCNOT, ClassDoubleCNOT, ClassSwap} {
		if !seenClass[c] {
			t.Errorf("class %s never drawn", c)
		}
	}
	if obs.counts[clifford.KindIdentity] != 0 {
		t.Errorf("identity gates reached the gate set %d times", obs.counts[clifford.KindIdentity])
	}
}

func TestSampler_Reproducible(t *testing.T) {
	run := func() (*tableau.State, []TwoDraw) {
		s := NewSeeded(clifford.NewGateSet(), 12345)
		st := newState(t, 6)
		if err := st.SetSite(0, 3, 1, 0); err != nil {
			t.Fatalf("SetSite: %v", err)
		}
		var draws []TwoDraw
		for k := 0; k < 50; k++ {
			d, err := s.TwoQubit(st, k%5, k%5+1)
			if err != nil {
				t.Fatalf("TwoQubit: %v", err)
			}
			draws = append(draws, d)
		}
		return st, draws
	}

	a, da := run()
	b, db := run()
	if !a.Equal(b) {
		t.Error("same seed produced different states")
	}
	for k := range da {
		if da[k] != db[k] {
			t.Fatalf("draw %d differs: %+v vs %+v", k, da[k], db[k])
		}
	}
}

func TestObserver_SeesEveryGate(t *testing.T) {
	obs := &countingObserver{}
	s := NewSeeded(clifford.NewGateSet(), 3, WithObserver(obs))
	st := newState(t, 2)

	total := 0
	for k := 0; k < 200; k++ {
		d, err := s.SingleQubit(st, 1)
		if err != nil {
			t.Fatalf("SingleQubit: %v", err)
		}
		total += len(d.Gates(1))
	}
	if len(obs.gates) != total {
		t.Errorf("observer saw %d gates, draws imply %d", len(obs.gates), total)
	}
	for _, g := range obs.gates {
		if g.A != 1 {
			t.Errorf("gate %s applied to wrong site", g)
		}
	}
}

func TestSampler_OutOfBounds(t *testing.T) {
	s := NewSeeded(clifford.NewGateSet(), 1)
	st := newState(t, 3)
	before := st.Clone()

	if _, err := s.SingleQubit(st, 3); !errors.Is(err, tableau.ErrIndexOutOfBounds) {
		t.Errorf("SingleQubit(3) error = %v", err)
	}
	for _, pair := range [][2]int{{0, 3}, {-1, 0}, {2, 2}} {
		if _, err := s.TwoQubit(st, pair[0], pair[1]); !errors.Is(err, tableau.ErrIndexOutOfBounds) {
			t.Errorf("TwoQubit(%d,%d) error = %v", pair[0], pair[1], err)
		}
	}
	if !st.Equal(before) {
		t.Error("failed draw mutated state")
	}
}

func TestApply_UnknownKind(t *testing.T) {
	s := NewSeeded(clifford.NewGateSet(), 1)
	if err := s.Apply(newState(t, 1), clifford.Gate{Kind: clifford.Kind(42)}); err == nil {
		t.Error("expected error for unknown gate kind")
	}
}

func TestSingleDraw_IndexAndGates(t *testing.T) {
	seen := map[int]bool{}
	for h := 0; h < 2; h++ {
		for r := RotationNone; r <= RotationPH; r++ {
			for p := PauliNone; p <= PauliZ; p++ {
				d := SingleDraw{Hadamard: h == 1, Rotation: r, Pauli: p}
				idx := d.Index()
				if idx < 0 || idx >= 24 || seen[idx] {
					t.Errorf("Index() = %d for %+v", idx, d)
				}
				seen[idx] = true

				wantLen := h
				if r != RotationNone {
					wantLen++
				}
				if p != PauliNone {
					wantLen++
				}
				if got := len(d.Gates(0)); got != wantLen {
					t.Errorf("%+v: %d gates, want %d", d, got, wantLen)
				}
			}
		}
	}
	got := SingleDraw{Hadamard: true, Rotation: RotationPH, Pauli: PauliY}.Gates(5)
	want := []clifford.Gate{
		{Kind: clifford.KindHadamard, A: 5},
		{Kind: clifford.KindPH, A: 5},
		{Kind: clifford.KindPauliY, A: 5},
	}
	for k := range want {
		if got[k] != want[k] {
			t.Errorf("gate %d = %s, want %s", k, got[k], want[k])
		}
	}
}

// Package brickwork composes random two-qubit Cliffords into one circuit
// period on an open chain.
package brickwork

import (
	"context"

	"github.com/nvandessel/opspread/internal/sampler"
	"github.com/nvandessel/opspread/internal/tableau"
)

// Scheduler applies brickwork periods with a sampler.
type Scheduler struct {
	sampler *sampler.Sampler
}

// NewScheduler creates a scheduler drawing gates from s.
func NewScheduler(s *sampler.Sampler) *Scheduler {
	return &Scheduler{sampler: s}
}

// Period applies one circuit period to st: a sweep over every bond
// (k, k+1) for k = 0..L-2, then a sweep over k = 1..L-2. Bonds are visited
// sequentially in increasing order. A chain of length 1 has no bonds.
func (sc *Scheduler) Period(st *tableau.State) error {
	_, err := sc.period(st, nil)
	return err
}

// PeriodDraws is Period that also returns every two-qubit draw in order.
func (sc *Scheduler) PeriodDraws(st *tableau.State) ([]sampler.TwoDraw, error) {
	draws := make([]sampler.TwoDraw, 0, BondsPerPeriod(st.Len()))
	return sc.period(st, draws)
}

func (sc *Scheduler) period(st *tableau.State, draws []sampler.TwoDraw) ([]sampler.TwoDraw, error) {
	l := st.Len()
	for _, start := range [2]int{0, 1} {
		for k := start; k+1 < l; k++ {
			d, err := sc.sampler.TwoQubit(st, k, k+1)
			if err != nil {
				return draws, err
			}
			if draws != nil {
				draws = append(draws, d)
			}
		}
	}
	return draws, nil
}

// BondsPerPeriod returns the number of two-qubit draws in one period of a
// chain of length l: (l-1) + (l-2) for l >= 2.
func BondsPerPeriod(l int) int {
	switch {
	case l < 2:
		return 0
	case l == 2:
		return 1
	}
	return 2*l - 3
}

// DefectLayer is a layer of single-qubit defect gates applied along defect
// chains between periods. There are no implementations yet.
type DefectLayer interface {
	ApplyDefects(st *tableau.State) error
}

// FloquetDriver runs a multi-period schedule on a state. There are no
// implementations yet; simulation.Runner loops over Period directly.
type FloquetDriver interface {
	Drive(ctx context.Context, st *tableau.State, periods int) error
}

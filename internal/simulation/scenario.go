package simulation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nvandessel/opspread/internal/config"
	"github.com/nvandessel/opspread/internal/constants"
	"github.com/nvandessel/opspread/internal/pauli"
	"github.com/nvandessel/opspread/internal/tableau"
)

// Scenario defines a complete simulation run.
type Scenario struct {
	Name         string
	ChainLength  int
	DefectChains int
	Periods      int
	Seed         uint64
	Initial      []SiteSeed

	// PhaseRule defaults to constants.PhaseRuleDocumented when empty.
	PhaseRule constants.PhaseRule

	// EntanglingClasses defaults to 21 when zero.
	EntanglingClasses int

	// BeforePeriod, when non-nil, is called before each period executes.
	// Use this to inspect or perturb the state between periods.
	BeforePeriod func(period int, st *tableau.State)
}

// SiteSeed places one Pauli on one site of the starting operator.
type SiteSeed struct {
	Site  int
	Label pauli.Label
}

// PeriodResult captures the operator after one period. Period 0 is the
// seeded starting operator.
type PeriodResult struct {
	Period int           `json:"period"`
	Labels []pauli.Label `json:"-"`
	Pauli  string        `json:"pauli"`
	Counts pauli.Counts  `json:"counts"`
	Weight int           `json:"weight"`
	Left   int           `json:"left"`
	Right  int           `json:"right"`
}

// Fractions returns the counts normalized by chain length.
func (p PeriodResult) Fractions() [4]float64 {
	return p.Counts.Fractions()
}

// Result captures every period of a run.
type Result struct {
	RunID       string         `json:"run_id"`
	Name        string         `json:"name,omitempty"`
	ChainLength int            `json:"chain_length"`
	Seed        uint64         `json:"seed"`
	PhaseRule   string         `json:"phase_rule"`
	Classes     int            `json:"entangling_classes"`
	Initial     PeriodResult   `json:"initial"`
	Periods     []PeriodResult `json:"periods"`
}

// Final returns the last period, or the initial operator when no period ran.
func (r *Result) Final() PeriodResult {
	if len(r.Periods) == 0 {
		return r.Initial
	}
	return r.Periods[len(r.Periods)-1]
}

// ParseInitial reads a starting operator for a chain of length l. It accepts
// either a comma-separated list of "<P>@<site>" terms, e.g. "X@0,Z@5", or a
// full Pauli string of exactly l characters. An empty string is the identity.
func ParseInitial(initial string, l int) ([]SiteSeed, error) {
	initial = strings.TrimSpace(initial)
	if initial == "" {
		return nil, nil
	}

	if !strings.Contains(initial, "@") {
		labels, err := pauli.Parse(initial)
		if err != nil {
			return nil, fmt.Errorf("parsing initial operator: %w", err)
		}
		if len(labels) != l {
			return nil, fmt.Errorf("initial operator has %d sites, chain has %d", len(labels), l)
		}
		var seeds []SiteSeed
		for i, lab := range labels {
			if lab != pauli.I {
				seeds = append(seeds, SiteSeed{Site: i, Label: lab})
			}
		}
		return seeds, nil
	}

	var seeds []SiteSeed
	seen := make(map[int]string)
	for _, term := range strings.Split(initial, ",") {
		name, siteStr, ok := strings.Cut(strings.TrimSpace(term), "@")
		if !ok {
			return nil, fmt.Errorf("initial term %q: expected <P>@<site>", term)
		}
		labels, err := pauli.Parse(name)
		if err != nil || len(labels) != 1 {
			return nil, fmt.Errorf("initial term %q: expected a single Pauli", term)
		}
		site, err := strconv.Atoi(siteStr)
		if err != nil {
			return nil, fmt.Errorf("initial term %q: invalid site: %w", term, err)
		}
		if site < 0 || site >= l {
			return nil, fmt.Errorf("initial term %q: site %d not in [0, %d)", term, site, l)
		}
		if prev, ok := seen[site]; ok {
			return nil, fmt.Errorf("initial term %q: site %d already set by %q", term, site, prev)
		}
		seen[site] = strings.TrimSpace(term)
		seeds = append(seeds, SiteSeed{Site: site, Label: labels[0]})
	}
	return seeds, nil
}

// ScenarioFromConfig converts validated simulation settings to a Scenario.
func ScenarioFromConfig(name string, cfg config.SimulationConfig) (Scenario, error) {
	seeds, err := ParseInitial(cfg.Initial, cfg.ChainLength)
	if err != nil {
		return Scenario{}, err
	}
	return Scenario{
		Name:              name,
		ChainLength:       cfg.ChainLength,
		DefectChains:      cfg.DefectChains,
		Periods:           cfg.Periods,
		Seed:              cfg.Seed,
		Initial:           seeds,
		PhaseRule:         cfg.PhaseRule,
		EntanglingClasses: cfg.EntanglingClasses,
	}, nil
}

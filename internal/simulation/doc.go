// Package simulation drives a brickwork Clifford circuit over a fixed number
// of periods and collects the operator composition after each one.
//
// A Scenario fixes the chain, the starting operator, and the sampler
// options. Runner.Run builds the tableau, seeds it, applies one brickwork
// period at a time, and decodes row 0 after every period.
//
// Usage:
//
//	r := simulation.NewRunner(simulation.WithLogger(logger))
//	result, err := r.Run(ctx, simulation.Scenario{
//	    Name:        "x-at-origin",
//	    ChainLength: 200,
//	    Periods:     10,
//	    Seed:        1,
//	    Initial:     []simulation.SiteSeed{{Site: 0, Label: pauli.X}},
//	})
package simulation

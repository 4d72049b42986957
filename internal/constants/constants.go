// Package constants provides named constants used throughout the opspread codebase.
// This centralizes construction bounds and defaults for better maintainability.
package constants

// Chain construction bounds
const (
	// MaxChainLength is the exclusive upper bound on the number of qubits in a chain.
	MaxChainLength = 1000

	// MaxDefectChains is the inclusive upper bound on the number of defect chains.
	MaxDefectChains = 10

	// MinPeriods is the inclusive lower bound on the number of circuit periods.
	MinPeriods = 1

	// MaxPeriods is the inclusive upper bound on the number of circuit periods.
	MaxPeriods = 10
)

// Simulation defaults used when no config file or flag overrides them.
const (
	// DefaultChainLength is the default number of qubits.
	DefaultChainLength = 200

	// DefaultPeriods is the default number of brickwork periods to run.
	DefaultPeriods = 10

	// DefaultSeed seeds the gate sampler when none is configured.
	DefaultSeed = 1

	// DefaultInitialOperator is the starting operator: X on site 0.
	DefaultInitialOperator = "X@0"
)

// Two-qubit local-equivalence class draws.
const (
	// DocumentedEntanglingClasses is the default 21-way class draw.
	// Outcomes 0 and 20 both apply no entangling gate.
	DocumentedEntanglingClasses = 21

	// LiteratureEntanglingClasses is the 1 + 9 + 9 + 1 class count of the
	// two-qubit Clifford group modulo single-qubit Cliffords.
	LiteratureEntanglingClasses = 20
)

// SingleQubitCliffords is the order of the single-qubit Clifford group
// modulo phases.
const SingleQubitCliffords = 24

package constants

// PhaseRule names the phase-bit update used by the Phase gate.
type PhaseRule string

const (
	// PhaseRuleDocumented computes the phase term from the updated z bit.
	PhaseRuleDocumented PhaseRule = "documented"

	// PhaseRuleTextbook computes the phase term from the pre-update z bit,
	// as in the Aaronson-Gottesman tableau rule.
	PhaseRuleTextbook PhaseRule = "textbook"
)

// Valid returns true if the phase rule is a recognized value.
func (r PhaseRule) Valid() bool {
	switch r {
	case PhaseRuleDocumented, PhaseRuleTextbook:
		return true
	}
	return false
}

// String returns the string representation of the phase rule.
func (r PhaseRule) String() string {
	return string(r)
}

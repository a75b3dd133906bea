package analyzer

import (
	"log/slog"
)

// Decides which operands of a whitelisted instruction are written
type WritePolicy uint8

const (
	// Only the destination operand (the last one) is written. Default. A register
	// used only as a source stays Untouched, so "move.l d6,d0" leaves D6 Untouched
	// where WritePolicy_AnyOperand reports it Unsafe
	WritePolicy_Destination WritePolicy = iota

	// Every register outside parentheses is written, sources included. Reproduces
	// the behaviour of line-level heuristics that flag any register appearing
	// in a modifying instruction
	WritePolicy_AnyOperand
)

func (p WritePolicy) String() string {
	switch p {
	case WritePolicy_Destination:
		return "destination"
	case WritePolicy_AnyOperand:
		return "any-operand"
	}

	panic("unreachable")
}

// Returns the policy with the given name ("destination", "any-operand")
func WritePolicyByName(name string) (WritePolicy, bool) {
	for _, policy := range []WritePolicy{WritePolicy_Destination, WritePolicy_AnyOperand} {
		if policy.String() == name {
			return policy, true
		}
	}

	return 0, false
}

type Settings struct {
	// Credit every label of a run of consecutive labels as an entry point of the
	// shared body. When false only the label closest to the body is a subroutine
	SharedLabels bool

	WritePolicy WritePolicy
}

var DefaultSettings = Settings{
	SharedLabels: false,
	WritePolicy:  WritePolicy_Destination,
}

// LogValue implements [slog.LogValuer].
func (s Settings) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("shared-labels", s.SharedLabels),
		slog.String("write-policy", s.WritePolicy.String()),
	)
}

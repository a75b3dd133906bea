package analyzer

import (
	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/m68k/asm"
	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/m68k/registers"
)

// Register sets accumulated over the lines of one subroutine
type State struct {
	// Registers referenced at all, read or written
	Touched registers.Set `json:"touched" yaml:"touched"`

	// Registers written at least once
	Modified registers.Set `json:"modified" yaml:"modified"`

	// Registers pushed to the stack by a bulk save, anywhere in the span
	Saved registers.Set `json:"saved" yaml:"saved"`
}

// Accumulates the register state of one subroutine. A tracker is not safe for
// concurrent use; concurrent analyses need a tracker each
type Tracker struct {
	analyzer *Analyzer
	state    State
}

func (a *Analyzer) NewTracker() *Tracker {
	return &Tracker{analyzer: a}
}

// Clears the accumulated state
func (t *Tracker) Reset() {
	t.state = State{}
}

// Returns the state accumulated so far
func (t *Tracker) State() State {
	return t.state
}

// Accumulates the effect of one line
func (t *Tracker) Feed(line string) {
	t.feedInstruction(t.analyzer.Classify(line))
}

func (t *Tracker) feedInstruction(instruction Instruction) {
	switch instruction.Kind {
	case InstructionKind_None:
		return
	case InstructionKind_BulkSave:
		t.state.Saved = t.state.Saved.Union(instruction.Saved)
		return
	}

	t.state.Touched = t.state.Touched.Union(instruction.Referenced)
	t.state.Modified = t.state.Modified.Union(instruction.Written)
}

// Resets the tracker and accumulates all the given lines, returning the final state.
//
// Saves are order independent: a register pushed by a movem anywhere in the lines
// counts as saved for the whole subroutine, even when the push comes after the
// modification.
func (t *Tracker) Track(lines []string) State {
	t.Reset()

	for _, line := range asm.LexAll(lines) {
		t.feedInstruction(t.analyzer.classifyLexed(line))
	}

	return t.state
}

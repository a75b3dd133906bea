package analyzer

import (
	"fmt"

	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/m68k/asm"
)

// A subroutine: a label and the lines up to its return instruction
type Span struct {
	// Label text, without ':'
	Label string `json:"label" yaml:"label"`

	// Index of the label line
	Start int `json:"start" yaml:"start"`

	// Index of the first body line. Equal to Start+1 unless the label shares its
	// body with the labels that follow it
	BodyStart int `json:"bodyStart" yaml:"bodyStart"`

	// Index of the last body line (inclusive), usually the return instruction
	End int `json:"end" yaml:"end"`
}

// Returns the body lines of the span. The slice aliases the given lines
func (s Span) Body(lines []string) []string {
	return lines[s.BodyStart : s.End+1]
}

func (s Span) String() string {
	return fmt.Sprintf("%v (lines %v-%v)", s.Label, s.Start, s.End)
}

// Finds all subroutines of a source, in source order, with the default settings
func LocateSubroutines(lines []string) []Span {
	return New(DefaultSettings).LocateSubroutines(lines)
}

// Finds all subroutines of a source, in source order.
//
// A label is a subroutine entry point if a return instruction (rts/rte) follows
// it before the next label or the end of input. Labels without one are ignored.
// When several labels are defined one after the other, only the last one is an
// entry point unless SharedLabels is set.
func (a *Analyzer) LocateSubroutines(lines []string) []Span {
	lexed := asm.LexAll(lines)
	confirmed := a.confirmLabels(lexed)

	var spans []Span

	for start, line := range lexed {
		if line.Kind != asm.LineKind_Label || !confirmed[start] {
			continue
		}

		bodyStart := start + 1
		if a.settings.SharedLabels {
			bodyStart = skipToFirstLineAfterLabelRun(lexed, start)
		}

		spans = append(spans, Span{
			Label:     line.Label,
			Start:     start,
			BodyStart: bodyStart,
			End:       spanEnd(lexed, bodyStart),
		})
	}

	return spans
}

// First pass: returns the indices of the label lines confirmed as entry points
func (a *Analyzer) confirmLabels(lexed []asm.Line) map[int]bool {
	confirmed := map[int]bool{}

	// Labels seen since the last instruction, all sharing the same upcoming body
	var pending []int
	sawCode := false

	for i, line := range lexed {
		switch {
		case line.Kind == asm.LineKind_Label:
			if sawCode {
				pending = nil
				sawCode = false
			}
			pending = append(pending, i)

		case line.IsReturn():
			if len(pending) > 0 {
				if a.settings.SharedLabels {
					for _, label := range pending {
						confirmed[label] = true
					}
				} else {
					confirmed[pending[len(pending)-1]] = true
				}
			}
			pending = nil
			sawCode = false

		case line.IsCode():
			sawCode = true
		}
	}

	return confirmed
}

// Returns the index of the first line after the run of labels starting at start.
// Blank and comment lines between the labels belong to the run
func skipToFirstLineAfterLabelRun(lexed []asm.Line, start int) int {
	next := start + 1

	for i := start + 1; i < len(lexed); i++ {
		if lexed[i].Kind == asm.LineKind_Instruction {
			break
		}

		if lexed[i].Kind == asm.LineKind_Label {
			next = i + 1
		}
	}

	return next
}

// Second pass: scans forward from bodyStart up to the next label (exclusive) or
// return instruction (inclusive)
func spanEnd(lexed []asm.Line, bodyStart int) int {
	for i := bodyStart; i < len(lexed); i++ {
		if lexed[i].Kind == asm.LineKind_Label {
			return i - 1
		}

		if lexed[i].IsReturn() {
			return i
		}
	}

	return len(lexed) - 1
}

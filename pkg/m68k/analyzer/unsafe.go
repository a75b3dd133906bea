package analyzer

import (
	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/m68k/asm"
	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/m68k/registers"
)

// A line modifying a preserved register that the subroutine never saves
type UnsafeSite struct {
	// Line index, relative to the lines given to LocateUnsafeSites()
	Line int `json:"line" yaml:"line"`

	Register registers.Register `json:"register" yaml:"register"`
	Family   registers.Family   `json:"family" yaml:"family"`

	// Byte range of the offending text within the line
	Column int `json:"column" yaml:"column"`
	Length int `json:"length" yaml:"length"`
}

// Finds the unsafe modification sites of a subroutine with the default settings
func LocateUnsafeSites(lines []string, state State) []UnsafeSite {
	return New(DefaultSettings).LocateUnsafeSites(lines, state)
}

// Finds the lines that modify a preserved register absent from the saved set.
// state must be the result of tracking the same lines. At most one site is
// reported per line: the first qualifying register, in order of appearance
func (a *Analyzer) LocateUnsafeSites(lines []string, state State) []UnsafeSite {
	var sites []UnsafeSite

	for i, line := range asm.LexAll(lines) {
		instruction := a.classifyLexed(line)

		if site, ok := firstUnsafeWrite(instruction, state); ok {
			site.Line = i
			sites = append(sites, site)
		}
	}

	return sites
}

func isUnsafe(register registers.Register, state State) bool {
	return register.Convention() == registers.Convention_Preserved &&
		state.Modified.Has(register) &&
		!state.Saved.Has(register)
}

func firstUnsafeWrite(instruction Instruction, state State) (UnsafeSite, bool) {
	switch instruction.Kind {
	case InstructionKind_Generic:
		for _, token := range instruction.WriteTokens {
			if isUnsafe(token.Register, state) {
				return UnsafeSite{
					Register: token.Register,
					Family:   token.Register.Family(),
					Column:   token.Offset,
					Length:   asm.RegisterTokenLength,
				}, true
			}
		}

	case InstructionKind_BulkRestore:
		// Registers inside a range ("d3" in "d2-d7") have no token of their own,
		// so the whole list is highlighted for them
		for _, register := range instruction.Written.Registers() {
			if !isUnsafe(register, state) {
				continue
			}

			site := UnsafeSite{
				Register: register,
				Family:   register.Family(),
				Column:   instruction.List.Offset,
				Length:   len(instruction.List.Text),
			}

			for _, token := range instruction.Tokens {
				if token.Register == register {
					site.Column = token.Offset
					site.Length = asm.RegisterTokenLength
					break
				}
			}

			return site, true
		}
	}

	return UnsafeSite{}, false
}

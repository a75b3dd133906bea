package analyzer

import (
	"strings"

	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/m68k/asm"
	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/m68k/registers"
	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/utils"
)

type InstructionKind uint8

const (
	// Blank, comment and label lines
	InstructionKind_None InstructionKind = iota

	// movem <list>,-(sp)
	InstructionKind_BulkSave

	// movem (sp)+,<list>
	InstructionKind_BulkRestore

	// Any other instruction
	InstructionKind_Generic
)

func (k InstructionKind) String() string {
	switch k {
	case InstructionKind_None:
		return "none"
	case InstructionKind_BulkSave:
		return "bulk save"
	case InstructionKind_BulkRestore:
		return "bulk restore"
	case InstructionKind_Generic:
		return "generic"
	}

	panic("unreachable")
}

// Effect of an instruction on the tracked registers
type Effect uint8

const (
	// References no tracked register
	Effect_NoEffect Effect = iota

	// References tracked registers without writing any
	Effect_ReadsOnly

	// Writes exactly one tracked register
	Effect_WritesRegister

	// Writes a set of registers (bulk restores, or several writes)
	Effect_WritesRegisterSet
)

func (e Effect) String() string {
	switch e {
	case Effect_NoEffect:
		return "no effect"
	case Effect_ReadsOnly:
		return "reads only"
	case Effect_WritesRegister:
		return "writes register"
	case Effect_WritesRegisterSet:
		return "writes register set"
	}

	panic("unreachable")
}

// Classification of one source line. Derived on demand, never stored
type Instruction struct {
	Line   asm.Line
	Kind   InstructionKind
	Effect Effect

	// Registers referenced anywhere in the operands. Empty for bulk saves
	Referenced registers.Set

	// Registers whose value the instruction modifies
	Written registers.Set

	// Registers pushed to the stack (bulk saves only)
	Saved registers.Set

	// Unparenthesized register tokens of the operands, offsets relative to Line.Text
	Tokens []asm.RegisterToken

	// The tokens of Tokens counted as writes under the write policy (generic instructions only)
	WriteTokens []asm.RegisterToken

	// Register list operand of a bulk save/restore, offset relative to Line.Text
	List asm.Operand
}

// Classifies a source line with the default settings
func Classify(line string) Instruction {
	return New(DefaultSettings).Classify(line)
}

// Classifies a source line
func (a *Analyzer) Classify(line string) Instruction {
	return a.classifyLexed(asm.Lex(line))
}

func (a *Analyzer) classifyLexed(line asm.Line) Instruction {
	instruction := Instruction{Line: line}

	if !line.IsCode() {
		return instruction
	}

	operands := line.OperandList()

	if list, ok := bulkSaveList(line); ok {
		instruction.Kind = InstructionKind_BulkSave
		instruction.List = list
		instruction.Saved, _ = registers.ParseList(list.Text)
		return instruction
	}

	allTokens := shiftTokens(asm.RegisterTokens(line.Operands), line.OperandsOffset)
	for _, token := range allTokens {
		instruction.Referenced = instruction.Referenced.Add(token.Register)

		if !token.Parenthesized {
			instruction.Tokens = append(instruction.Tokens, token)
		}
	}

	if list, ok := bulkRestoreList(line); ok {
		instruction.Kind = InstructionKind_BulkRestore
		instruction.List = list
		instruction.Written, _ = registers.ParseList(list.Text)
		instruction.Referenced = instruction.Referenced.Union(instruction.Written)
		instruction.Effect = effectOf(instruction, true)
		return instruction
	}

	instruction.Kind = InstructionKind_Generic

	if Mnemonics.Writes(line.Mnemonic) && len(operands) > 0 && !isStackAccess(operands[len(operands)-1]) {
		instruction.WriteTokens = a.writeTokens(line, instruction.Tokens)

		for _, token := range instruction.WriteTokens {
			instruction.Written = instruction.Written.Add(token.Register)
		}
	}

	instruction.Effect = effectOf(instruction, false)
	return instruction
}

// Returns the tokens written by a whitelisted instruction: the ones of the last
// operand, or all of them under WritePolicy_AnyOperand
func (a *Analyzer) writeTokens(line asm.Line, tokens []asm.RegisterToken) []asm.RegisterToken {
	if a.settings.WritePolicy == WritePolicy_AnyOperand {
		return tokens
	}

	operands := asm.SplitOperandsWithOffsets(line.Operands)
	destinationStart := line.OperandsOffset + operands[len(operands)-1].Offset

	return utils.Filter(tokens, func(token asm.RegisterToken) bool { return token.Offset >= destinationStart })
}

func effectOf(instruction Instruction, restore bool) Effect {
	switch {
	case restore && !instruction.Written.Empty():
		return Effect_WritesRegisterSet
	case instruction.Written.Len() == 1:
		return Effect_WritesRegister
	case instruction.Written.Len() > 1:
		return Effect_WritesRegisterSet
	case !instruction.Referenced.Empty():
		return Effect_ReadsOnly
	}

	return Effect_NoEffect
}

func shiftTokens(tokens []asm.RegisterToken, offset int) []asm.RegisterToken {
	for i := range tokens {
		tokens[i].Offset += offset
	}

	return tokens
}

// Returns the register list of a "movem.{l|w} <list>,-(sp)" line
func bulkSaveList(line asm.Line) (asm.Operand, bool) {
	operands, ok := movemOperands(line)
	if !ok || !isPreDecrementSP(operands[1].Text) {
		return asm.Operand{}, false
	}

	return operands[0], true
}

// Returns the register list of a "movem.{l|w} (sp)+,<list>" line
func bulkRestoreList(line asm.Line) (asm.Operand, bool) {
	operands, ok := movemOperands(line)
	if !ok || !isPostIncrementSP(operands[0].Text) {
		return asm.Operand{}, false
	}

	return operands[1], true
}

// Returns the two operands of a movem.l/movem.w line, offsets relative to Line.Text
func movemOperands(line asm.Line) ([]asm.Operand, bool) {
	if line.Opcode != "movem.l" && line.Opcode != "movem.w" {
		return nil, false
	}

	operands := asm.SplitOperandsWithOffsets(line.Operands)
	if len(operands) != 2 {
		return nil, false
	}

	for i := range operands {
		operands[i].Offset += line.OperandsOffset
	}

	return operands, true
}

func normalizeOperand(operand string) string {
	return strings.ToLower(strings.Join(strings.Fields(operand), ""))
}

func isPreDecrementSP(operand string) bool {
	operand = normalizeOperand(operand)
	return operand == "-(sp)" || operand == "-(a7)"
}

func isPostIncrementSP(operand string) bool {
	operand = normalizeOperand(operand)
	return operand == "(sp)+" || operand == "(a7)+"
}

// Reports whether the operand pushes to or pops from the stack
func isStackAccess(operand string) bool {
	operand = normalizeOperand(operand)
	return strings.Contains(operand, "-(sp)") || strings.Contains(operand, "(sp)+") ||
		strings.Contains(operand, "-(a7)") || strings.Contains(operand, "(a7)+")
}

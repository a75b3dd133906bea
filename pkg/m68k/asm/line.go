package asm

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/utils"
)

type LineKind uint8

const (
	LineKind_Blank LineKind = iota
	LineKind_Comment
	LineKind_Label
	LineKind_Instruction
)

func (k LineKind) String() string {
	switch k {
	case LineKind_Blank:
		return "blank"
	case LineKind_Comment:
		return "comment"
	case LineKind_Label:
		return "label"
	case LineKind_Instruction:
		return "instruction"
	}

	panic("unreachable")
}

// A lexed source line
type Line struct {
	Kind LineKind

	// Raw line text, as read from the source
	Text string

	// Label name, without the trailing ':' (label lines only)
	Label string

	// Lower case opcode including the size suffix, e.g. "move.l"
	Opcode string

	// Lower case opcode without the size suffix, e.g. "move"
	Mnemonic string

	// Lower case size suffix ("b", "w", "l", "s"), empty if none
	Size string

	// Operand text with any trailing comment removed
	Operands string

	// Byte offset of Operands within Text
	OperandsOffset int

	// Trailing comment text, including the leading ';'
	Comment string
}

var labelPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_.]*):$`)

// Lexes a single source line
func Lex(text string) Line {
	line := Line{Text: text}
	trimmed := strings.TrimSpace(text)

	switch {
	case trimmed == "":
		line.Kind = LineKind_Blank
	case strings.HasPrefix(trimmed, ";"):
		line.Kind = LineKind_Comment
		line.Comment = trimmed
	case labelPattern.MatchString(trimmed):
		line.Kind = LineKind_Label
		line.Label = labelPattern.FindStringSubmatch(trimmed)[1]
	default:
		line.Kind = LineKind_Instruction
		lexInstruction(&line)
	}

	return line
}

// Lexes every line of a source
func LexAll(lines []string) []Line {
	result := make([]Line, len(lines))

	for i, text := range lines {
		result[i] = Lex(text)
	}

	return result
}

func lexInstruction(line *Line) {
	code := line.Text
	if at := commentStart(code); at >= 0 {
		line.Comment = strings.TrimSpace(code[at:])
		code = code[:at]
	}

	// Any unicode space separates tokens, so CRLF sources split on '\n' lex the same
	opcodeStart := len(code) - len(strings.TrimLeftFunc(code, unicode.IsSpace))
	rest := code[opcodeStart:]
	opcodeEnd := strings.IndexFunc(rest, unicode.IsSpace)
	if opcodeEnd < 0 {
		opcodeEnd = len(rest)
	}

	line.Opcode = strings.ToLower(strings.TrimSpace(rest[:opcodeEnd]))
	line.Mnemonic, line.Size, _ = strings.Cut(line.Opcode, ".")

	operands := rest[opcodeEnd:]
	leading := len(operands) - len(strings.TrimLeftFunc(operands, unicode.IsSpace))
	line.Operands = strings.TrimSpace(operands)
	line.OperandsOffset = opcodeStart + opcodeEnd + leading
}

// Returns the byte offset of the ';' starting a trailing comment, or -1.
// Semicolons inside quoted strings do not start comments
func commentStart(text string) int {
	var quote byte

	for i := 0; i < len(text); i++ {
		c := text[i]

		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == ';':
			return i
		}
	}

	return -1
}

// Reports whether the line holds an instruction (as opposed to a blank, comment or label line)
func (l *Line) IsCode() bool {
	return l.Kind == LineKind_Instruction
}

// Reports whether the line is a subroutine return (rts or rte)
func (l *Line) IsReturn() bool {
	return l.Kind == LineKind_Instruction && (l.Opcode == "rts" || l.Opcode == "rte")
}

// Returns the top-level operands of the instruction. Commas inside parentheses
// do not split operands, so "(8,a2)" stays a single operand
func (l *Line) OperandList() []string {
	return SplitOperands(l.Operands)
}

// An operand of an instruction
type Operand struct {
	Text string

	// Byte offset of Text within the operand text it was split from
	Offset int
}

// Splits operand text on top-level commas
func SplitOperands(operands string) []string {
	return utils.Map(SplitOperandsWithOffsets(operands), func(op Operand) string { return op.Text })
}

// Like SplitOperands(), but keeps track of where each operand starts
func SplitOperandsWithOffsets(operands string) []Operand {
	if strings.TrimSpace(operands) == "" {
		return nil
	}

	var result []Operand
	depth := 0
	start := 0

	for i := 0; i <= len(operands); i++ {
		if i < len(operands) {
			switch operands[i] {
			case '(':
				depth++
				continue
			case ')':
				if depth > 0 {
					depth--
				}
				continue
			case ',':
				if depth > 0 {
					continue
				}
			default:
				continue
			}
		}

		raw := operands[start:i]
		leading := len(raw) - len(strings.TrimLeft(raw, " \t"))
		result = append(result, Operand{Text: strings.TrimSpace(raw), Offset: start + leading})
		start = i + 1
	}

	return result
}

package analyzer

import (
	"fmt"
	"sort"
	"strings"
)

// Describes a mnemonic known to write its destination operand
type MnemonicDescriptor struct {
	Mnemonic    string
	Description string
}

// Contains the mnemonics the classifier treats as register writers. Every other
// mnemonic (tst, cmp, btst, jsr, ...) is assumed to only read its operands
type MnemonicsDescriptor struct {
	mnemonics map[string]*MnemonicDescriptor
}

// Reports whether the mnemonic (lower case, without size suffix) writes its destination
func (d *MnemonicsDescriptor) Writes(mnemonic string) bool {
	_, ok := d.mnemonics[mnemonic]
	return ok
}

func (d *MnemonicsDescriptor) Descriptor(mnemonic string) (*MnemonicDescriptor, bool) {
	descriptor, ok := d.mnemonics[mnemonic]
	return descriptor, ok
}

// Returns all the writer mnemonics in alphabetical order
func (d *MnemonicsDescriptor) AllMnemonics() []*MnemonicDescriptor {
	result := make([]*MnemonicDescriptor, 0, len(d.mnemonics))

	for _, descriptor := range d.mnemonics {
		result = append(result, descriptor)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Mnemonic < result[j].Mnemonic })
	return result
}

// Dumps the mnemonic table and the line grammar as one big multiline string
func (d *MnemonicsDescriptor) Documentation(leftpad int) string {
	leftpad_str := strings.Repeat(" ", leftpad)

	var builder strings.Builder

	builder.WriteString(leftpad_str)
	builder.WriteString("Line grammar (case insensitive):\n\n")
	for _, rule := range grammarRules {
		builder.WriteString(fmt.Sprintf("%v - %v\n", leftpad_str, rule))
	}

	builder.WriteString("\n")
	builder.WriteString(leftpad_str)
	builder.WriteString(fmt.Sprintf("Mnemonics writing their destination operand (%v):\n\n", len(d.mnemonics)))

	for _, descriptor := range d.AllMnemonics() {
		builder.WriteString(fmt.Sprintf("%v - %-6v %v\n", leftpad_str, descriptor.Mnemonic, descriptor.Description))
	}

	return builder.String()
}

// Like Documentation(), but with zero leftpad
func (d *MnemonicsDescriptor) DocString() string {
	return d.Documentation(0)
}

func NewMnemonicsDescriptor(mnemonics []*MnemonicDescriptor) MnemonicsDescriptor {
	result := MnemonicsDescriptor{mnemonics: make(map[string]*MnemonicDescriptor, len(mnemonics))}

	for _, descriptor := range mnemonics {
		if _, duplicated := result.mnemonics[descriptor.Mnemonic]; duplicated {
			panic(fmt.Sprintf("duplicated mnemonic '%v'", descriptor.Mnemonic))
		}

		result.mnemonics[descriptor.Mnemonic] = descriptor
	}

	return result
}

var grammarRules = []string{
	"label:       identifier ':' alone on its line, identifier = [A-Za-z_][A-Za-z0-9_.]*",
	"comment:     first non blank character is ';'. Text after ';' is never an operand",
	"return:      first token is rts or rte",
	"register:    d0-d7, a0-a6 as a whole word (a7/sp is not tracked)",
	"bulk save:   movem.l|movem.w <register list>,-(sp)",
	"bulk restore: movem.l|movem.w (sp)+,<register list>",
	"register list: entries separated by '/', each a register or a same family range r1-r2",
}

// Mnemonics known to write a register destination
var Mnemonics MnemonicsDescriptor = NewMnemonicsDescriptor([]*MnemonicDescriptor{
	{Mnemonic: "move", Description: "Copies the source operand into the destination"},
	{Mnemonic: "movea", Description: "Copies the source operand into an address register"},
	{Mnemonic: "lea", Description: "Loads an effective address into an address register"},
	{Mnemonic: "add", Description: "Adds the source to the destination"},
	{Mnemonic: "sub", Description: "Subtracts the source from the destination"},
	{Mnemonic: "mulu", Description: "Unsigned 16x16 multiplication into a data register"},
	{Mnemonic: "muls", Description: "Signed 16x16 multiplication into a data register"},
	{Mnemonic: "divu", Description: "Unsigned 32/16 division into a data register"},
	{Mnemonic: "divs", Description: "Signed 32/16 division into a data register"},
	{Mnemonic: "and", Description: "Bitwise and into the destination"},
	{Mnemonic: "or", Description: "Bitwise or into the destination"},
	{Mnemonic: "eor", Description: "Bitwise exclusive or into the destination"},
	{Mnemonic: "not", Description: "Bitwise complement of the operand"},
	{Mnemonic: "neg", Description: "Negates the operand"},
	{Mnemonic: "clr", Description: "Clears the operand"},
	{Mnemonic: "ext", Description: "Sign extends a data register"},
	{Mnemonic: "swap", Description: "Swaps the halves of a data register"},
	{Mnemonic: "exg", Description: "Exchanges two registers"},
	{Mnemonic: "asl", Description: "Arithmetic shift left"},
	{Mnemonic: "asr", Description: "Arithmetic shift right"},
	{Mnemonic: "lsl", Description: "Logical shift left"},
	{Mnemonic: "lsr", Description: "Logical shift right"},
	{Mnemonic: "rol", Description: "Rotate left"},
	{Mnemonic: "ror", Description: "Rotate right"},
	{Mnemonic: "addq", Description: "Adds a 1-8 immediate to the destination"},
	{Mnemonic: "subq", Description: "Subtracts a 1-8 immediate from the destination"},
	{Mnemonic: "adda", Description: "Adds to an address register"},
	{Mnemonic: "suba", Description: "Subtracts from an address register"},
	{Mnemonic: "addi", Description: "Adds an immediate to the destination"},
	{Mnemonic: "subi", Description: "Subtracts an immediate from the destination"},
	{Mnemonic: "andi", Description: "Bitwise and of an immediate into the destination"},
	{Mnemonic: "ori", Description: "Bitwise or of an immediate into the destination"},
	{Mnemonic: "eori", Description: "Bitwise exclusive or of an immediate into the destination"},
	{Mnemonic: "link", Description: "Creates a stack frame"},
	{Mnemonic: "unlk", Description: "Destroys a stack frame, restoring the frame pointer"},
})

package registers

import (
	"fmt"
	"strings"
)

type RegisterDescriptor struct {
	Register Register

	// Register description (for documentation/hover text)
	Description string
}

func (d *RegisterDescriptor) Family() Family {
	return d.Register.Family()
}

func (d *RegisterDescriptor) Convention() Convention {
	return d.Register.Convention()
}

// Dumps the register description as a one line string
func (d *RegisterDescriptor) Documentation(leftpad int) string {
	return fmt.Sprintf("%v%v (%v, %v): %v", strings.Repeat(" ", leftpad), d.Register, d.Family(), d.Convention(), d.Description)
}

// Contains the description of all tracked registers
type RegistersDescriptor struct {
	registers []*RegisterDescriptor
}

// Returns the descriptor of a register
func (d *RegistersDescriptor) Descriptor(r Register) *RegisterDescriptor {
	return d.registers[r]
}

func (d *RegistersDescriptor) AllRegisters() []*RegisterDescriptor {
	return d.registers
}

// Dumps the register table as one big multiline string
func (d *RegistersDescriptor) Documentation(leftpad int) string {
	leftpad_str := strings.Repeat(" ", leftpad)

	var builder strings.Builder

	builder.WriteString(leftpad_str)
	builder.WriteString(fmt.Sprintf("tracked registers: %v\n", len(d.registers)))
	builder.WriteString(leftpad_str)
	builder.WriteString(fmt.Sprintf("scratch (caller-saved): %v\n", d.ByConvention(Convention_Scratch).ListString()))
	builder.WriteString(leftpad_str)
	builder.WriteString(fmt.Sprintf("preserved (callee-saved): %v\n\n", d.ByConvention(Convention_Preserved).ListString()))

	for _, family := range Families() {
		builder.WriteString(leftpad_str)
		builder.WriteString(fmt.Sprintf("%v registers:\n\n", family))

		for _, descriptor := range d.AllRegisters() {
			if descriptor.Family() != family {
				continue
			}

			builder.WriteString(" - ")
			builder.WriteString(descriptor.Documentation(leftpad))
			builder.WriteString("\n")
		}

		builder.WriteString("\n")
	}

	return builder.String()
}

// Like Documentation(), but with zero leftpad
func (d *RegistersDescriptor) DocString() string {
	return d.Documentation(0)
}

// Returns the set of registers with the given calling convention class
func (d *RegistersDescriptor) ByConvention(c Convention) Set {
	var result Set

	for _, register := range d.registers {
		if register.Convention() == c {
			result = result.Add(register.Register)
		}
	}

	return result
}

func NewRegistersDescriptor(registers []*RegisterDescriptor) RegistersDescriptor {
	for i := range All() {
		if i >= len(registers) || registers[i].Register != Register(i) {
			panic(fmt.Sprintf("missing or misplaced descriptor for register '%v'. Make sure registers are listed in D0..D7, A0..A6 order", Register(i)))
		}
	}

	return RegistersDescriptor{registers: registers}
}

// Contains the metadata of all registers tracked by the analyzer
var Registers RegistersDescriptor = NewRegistersDescriptor([]*RegisterDescriptor{
	{Register: D0, Description: "Data register, scratch. Holds the return value by convention"},
	{Register: D1, Description: "Data register, scratch. Second return/argument register"},
	{Register: D2, Description: "Data register, must be preserved across calls"},
	{Register: D3, Description: "Data register, must be preserved across calls"},
	{Register: D4, Description: "Data register, must be preserved across calls"},
	{Register: D5, Description: "Data register, must be preserved across calls"},
	{Register: D6, Description: "Data register, must be preserved across calls"},
	{Register: D7, Description: "Data register, must be preserved across calls"},
	{Register: A0, Description: "Address register, scratch. Commonly an argument pointer"},
	{Register: A1, Description: "Address register, scratch. Commonly an argument pointer"},
	{Register: A2, Description: "Address register, must be preserved across calls"},
	{Register: A3, Description: "Address register, must be preserved across calls"},
	{Register: A4, Description: "Address register, must be preserved across calls. Small data base pointer in some toolchains"},
	{Register: A5, Description: "Address register, must be preserved across calls. Frame pointer when link/unlk are used"},
	{Register: A6, Description: "Address register, must be preserved across calls. Library base pointer on AmigaOS"},
})

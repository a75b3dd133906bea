package registers

import (
	"errors"
	"strings"

	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/utils"
)

type Family uint8

const (
	// Data registers D0-D7
	Family_Data Family = iota

	// Address registers A0-A6
	Family_Address

	// Number of register families
	TOTAL_FAMILIES
)

var ErrUnknownFamily = errors.New("unknown register family")

func (f Family) String() string {
	switch f {
	case Family_Data:
		return "data"
	case Family_Address:
		return "address"
	}

	panic("unreachable")
}

// Returns the register name prefix of the family ("D" or "A")
func (f Family) Prefix() string {
	switch f {
	case Family_Data:
		return "D"
	case Family_Address:
		return "A"
	}

	panic("unreachable")
}

// Returns all the registers of the family
func (f Family) Registers() []Register {
	return utils.Filter(All(), func(r Register) bool { return r.Family() == f })
}

func (f Family) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// Returns the family given a register name prefix ("d", "A", ...)
func FamilyByPrefix(prefix string) (Family, error) {
	switch strings.ToUpper(prefix) {
	case "D":
		return Family_Data, nil
	case "A":
		return Family_Address, nil
	}

	return 0, utils.MakeError(ErrUnknownFamily, "'%v'", prefix)
}

// Returns all register families
func Families() []Family {
	return []Family{Family_Data, Family_Address}
}

// Calling convention class of a register
type Convention uint8

const (
	// Caller-saved. A subroutine may freely clobber it
	Convention_Scratch Convention = iota

	// Callee-saved. A subroutine that modifies it must save and restore it
	Convention_Preserved
)

func (c Convention) String() string {
	switch c {
	case Convention_Scratch:
		return "scratch"
	case Convention_Preserved:
		return "preserved"
	}

	panic("unreachable")
}

func (c Convention) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

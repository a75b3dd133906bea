package registers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/utils"
)

// A tracked m68k register. A7/SP and PC are never tracked
type Register uint8

const (
	D0 Register = iota
	D1
	D2
	D3
	D4
	D5
	D6
	D7
	A0
	A1
	A2
	A3
	A4
	A5
	A6

	// Number of tracked registers
	TOTAL_REGISTERS
)

// Number of data registers (D0-D7)
const TotalDataRegisters = 8

// Number of tracked address registers (A0-A6)
const TotalAddressRegisters = int(TOTAL_REGISTERS) - TotalDataRegisters

var ErrUnknownRegister = errors.New("unknown register")
var ErrUntrackedRegister = errors.New("untracked register")

// Returns all tracked registers, data registers first
func All() []Register {
	return utils.Iota(int(TOTAL_REGISTERS), func(i int) Register { return Register(i) })
}

// Returns the register family (data or address)
func (r Register) Family() Family {
	if r < A0 {
		return Family_Data
	}

	return Family_Address
}

// Returns the ordinal of the register within its family (D3 -> 3, A2 -> 2)
func (r Register) Index() int {
	if r.Family() == Family_Data {
		return int(r)
	}

	return int(r - A0)
}

// Returns the calling convention class of the register
func (r Register) Convention() Convention {
	switch r {
	case D0, D1, A0, A1:
		return Convention_Scratch
	}

	return Convention_Preserved
}

func (r Register) Valid() bool {
	return r < TOTAL_REGISTERS
}

// Returns the canonical (upper case) register name, e.g. "D2"
func (r Register) Name() string {
	if !r.Valid() {
		return fmt.Sprintf("Register(%d)", uint8(r))
	}

	return r.Family().Prefix() + fmt.Sprint(r.Index())
}

func (r Register) String() string {
	return r.Name()
}

func (r Register) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, utils.MakeError(ErrUnknownRegister, "%d", uint8(r))
	}

	return []byte(r.Name()), nil
}

func (r *Register) UnmarshalText(text []byte) error {
	reg, err := ByName(string(text))
	if err != nil {
		return err
	}

	*r = reg
	return nil
}

// Returns the register of the given family with the given ordinal
func FromFamilyIndex(family Family, index int) (Register, error) {
	switch family {
	case Family_Data:
		if index >= 0 && index < TotalDataRegisters {
			return D0 + Register(index), nil
		}
	case Family_Address:
		if index >= 0 && index < TotalAddressRegisters {
			return A0 + Register(index), nil
		}
		if index == TotalAddressRegisters {
			return 0, utils.MakeError(ErrUntrackedRegister, "'%v%v' is the stack pointer", family.Prefix(), index)
		}
	}

	return 0, utils.MakeError(ErrUnknownRegister, "no register with index %v in family '%v'", index, family)
}

// Returns a register given its name. Names are case insensitive ("d2", "D2", "a6").
// "a7" and "sp" are reported as ErrUntrackedRegister
func ByName(name string) (Register, error) {
	name = strings.ToUpper(strings.TrimSpace(name))

	if name == "SP" || name == "PC" {
		return 0, utils.MakeError(ErrUntrackedRegister, "'%v'", name)
	}

	if len(name) != 2 || name[1] < '0' || name[1] > '9' {
		return 0, utils.MakeError(ErrUnknownRegister, "'%v'", name)
	}

	family, err := FamilyByPrefix(name[:1])
	if err != nil {
		return 0, utils.MakeError(ErrUnknownRegister, "'%v'", name)
	}

	return FromFamilyIndex(family, int(name[1]-'0'))
}

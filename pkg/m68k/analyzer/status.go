package analyzer

import (
	"encoding/json"
	"errors"

	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/m68k/registers"
	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/utils"
)

type Status uint8

const (
	// Never referenced, or only read
	Status_Untouched Status = iota

	// Caller-saved register referenced by the subroutine
	Status_Scratch

	// Preserved register saved on the stack by the subroutine
	Status_Saved

	// Preserved register modified without being saved
	Status_Unsafe

	TOTAL_STATUSES
)

var ErrUnknownStatus = errors.New("unknown register status")

func (s Status) String() string {
	switch s {
	case Status_Untouched:
		return "untouched"
	case Status_Scratch:
		return "scratch"
	case Status_Saved:
		return "saved"
	case Status_Unsafe:
		return "unsafe"
	}

	panic("unreachable")
}

func (s Status) MarshalText() ([]byte, error) {
	if s >= TOTAL_STATUSES {
		return nil, utils.MakeError(ErrUnknownStatus, "%d", uint8(s))
	}

	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for _, status := range Statuses() {
		if status.String() == string(text) {
			*s = status
			return nil
		}
	}

	return utils.MakeError(ErrUnknownStatus, "'%v'", string(text))
}

// Returns all statuses
func Statuses() []Status {
	return utils.Iota(int(TOTAL_STATUSES), func(i int) Status { return Status(i) })
}

// Status of every tracked register. Being an array indexed by register, a result
// always covers the whole register universe with exactly one status per register
type Result [registers.TOTAL_REGISTERS]Status

func (r *Result) Status(register registers.Register) Status {
	return r[register]
}

// Returns the registers with the given status, in universe order
func (r *Result) Registers(status Status) []registers.Register {
	return utils.Filter(registers.All(), func(register registers.Register) bool { return r[register] == status })
}

// Returns the registers of a family with the given status, in universe order
func (r *Result) FamilyRegisters(family registers.Family, status Status) []registers.Register {
	return utils.Filter(family.Registers(), func(register registers.Register) bool { return r[register] == status })
}

func (r *Result) HasUnsafe() bool {
	return len(r.Registers(Status_Unsafe)) > 0
}

// Returns the result as a register -> status map
func (r *Result) Map() map[registers.Register]Status {
	result := make(map[registers.Register]Status, len(r))

	for _, register := range registers.All() {
		result[register] = r[register]
	}

	return result
}

func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Map())
}

func (r Result) MarshalYAML() (any, error) {
	return r.Map(), nil
}

// Combines the accumulated register sets into one status per register:
//
//  1. not touched: Untouched
//  2. scratch by convention: Scratch, whatever else happened to it
//  3. preserved and saved: Saved
//  4. preserved, not saved and modified: Unsafe
//  5. preserved and only read: Untouched
func Resolve(state State) Result {
	var result Result

	for _, register := range registers.All() {
		result[register] = resolve(register, state)
	}

	return result
}

func resolve(register registers.Register, state State) Status {
	switch {
	case !state.Touched.Has(register):
		return Status_Untouched
	case register.Convention() == registers.Convention_Scratch:
		return Status_Scratch
	case state.Saved.Has(register):
		return Status_Saved
	case state.Modified.Has(register):
		return Status_Unsafe
	}

	return Status_Untouched
}

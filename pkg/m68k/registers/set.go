package registers

import (
	"strings"
)

// A set of tracked registers, one bit per register
type Set uint16

// Returns a set containing the given registers
func SetOf(registers ...Register) Set {
	var s Set

	for _, r := range registers {
		s = s.Add(r)
	}

	return s
}

// Returns a copy of the set with the register added. Untracked registers are ignored
func (s Set) Add(r Register) Set {
	if !r.Valid() {
		return s
	}

	return s | (1 << r)
}

func (s Set) Has(r Register) bool {
	return r.Valid() && s&(1<<r) != 0
}

func (s Set) Union(other Set) Set {
	return s | other
}

func (s Set) Intersection(other Set) Set {
	return s & other
}

// Returns the registers of s not in other
func (s Set) Difference(other Set) Set {
	return s &^ other
}

func (s Set) Empty() bool {
	return s == 0
}

func (s Set) Len() int {
	n := 0

	for _, r := range All() {
		if s.Has(r) {
			n++
		}
	}

	return n
}

// Returns the registers in the set in universe order (D0..D7, A0..A6)
func (s Set) Registers() []Register {
	result := make([]Register, 0, s.Len())

	for _, r := range All() {
		if s.Has(r) {
			result = append(result, r)
		}
	}

	return result
}

// Returns the set written in register list syntax, collapsing consecutive
// registers of the same family into ranges ("d2-d4/a2/a5-a6"). The result
// parses back to the same set with ParseList
func (s Set) ListString() string {
	var entries []string

	for _, family := range Families() {
		familyRegisters := family.Registers()

		for i := 0; i < len(familyRegisters); i++ {
			if !s.Has(familyRegisters[i]) {
				continue
			}

			first := familyRegisters[i]
			for i+1 < len(familyRegisters) && s.Has(familyRegisters[i+1]) {
				i++
			}
			last := familyRegisters[i]

			if first == last {
				entries = append(entries, strings.ToLower(first.Name()))
			} else {
				entries = append(entries, strings.ToLower(first.Name())+"-"+strings.ToLower(last.Name()))
			}
		}
	}

	return strings.Join(entries, "/")
}

func (s Set) String() string {
	return "{" + s.ListString() + "}"
}

// Sets are serialized in register list syntax
func (s Set) MarshalText() ([]byte, error) {
	return []byte(s.ListString()), nil
}

func (s *Set) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*s = 0
		return nil
	}

	set, err := ParseList(string(text))
	if err != nil {
		return err
	}

	*s = set
	return nil
}

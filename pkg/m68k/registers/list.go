package registers

import (
	"errors"
	"strings"

	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/utils"
)

var ErrInvalidRegisterList = errors.New("invalid register list")

// Parses a movem register list ("d2-d7/a2-a6", "d0/a3", ...).
//
// Entries are separated by '/'. An entry is either a single register or a range
// R1-R2 of registers of the same family; a range expands to every register of the
// family whose index lies between both ends, inclusive. References to the stack
// pointer (a7/sp) are accepted and dropped, since it is not a tracked register.
//
// ParseList never discards valid entries: on error the returned set contains every
// entry that could be parsed, and the error lists the rejected ones.
func ParseList(list string) (Set, error) {
	var result Set
	var errs []error

	for _, entry := range strings.Split(list, "/") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			errs = append(errs, utils.MakeError(ErrInvalidRegisterList, "empty entry in '%v'", list))
			continue
		}

		set, err := parseListEntry(entry)
		result = result.Union(set)

		if err != nil {
			errs = append(errs, err)
		}
	}

	return result, errors.Join(errs...)
}

func parseListEntry(entry string) (Set, error) {
	first, last, isRange := strings.Cut(entry, "-")

	if !isRange {
		r, err := ByName(first)
		if errors.Is(err, ErrUntrackedRegister) {
			return 0, nil
		} else if err != nil {
			return 0, utils.MakeError(ErrInvalidRegisterList, "'%v': %v", entry, err)
		}

		return SetOf(r), nil
	}

	firstFamily, firstIndex, err := parseRangeBound(first)
	if err != nil {
		return 0, utils.MakeError(ErrInvalidRegisterList, "'%v': %v", entry, err)
	}

	lastFamily, lastIndex, err := parseRangeBound(last)
	if err != nil {
		return 0, utils.MakeError(ErrInvalidRegisterList, "'%v': %v", entry, err)
	}

	if firstFamily != lastFamily {
		return 0, utils.MakeError(ErrInvalidRegisterList, "range '%v' mixes %v and %v registers", entry, firstFamily, lastFamily)
	}

	if firstIndex > lastIndex {
		firstIndex, lastIndex = lastIndex, firstIndex
	}

	var result Set

	for index := firstIndex; index <= lastIndex; index++ {
		// a7 may close an address range; it is simply not tracked
		if r, err := FromFamilyIndex(firstFamily, index); err == nil {
			result = result.Add(r)
		}
	}

	return result, nil
}

// Range bounds are parsed by family and index so that a7/sp can close a range
func parseRangeBound(name string) (Family, int, error) {
	name = strings.ToUpper(strings.TrimSpace(name))

	if name == "SP" {
		return Family_Address, TotalAddressRegisters, nil
	}

	if len(name) != 2 || name[1] < '0' || name[1] > '7' {
		return 0, 0, utils.MakeError(ErrUnknownRegister, "'%v'", name)
	}

	family, err := FamilyByPrefix(name[:1])
	if err != nil {
		return 0, 0, utils.MakeError(ErrUnknownRegister, "'%v'", name)
	}

	return family, int(name[1] - '0'), nil
}

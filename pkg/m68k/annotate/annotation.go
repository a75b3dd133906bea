package annotate

import (
	"fmt"
	"strings"

	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/m68k/analyzer"
	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/m68k/registers"
)

// Statuses shown in annotations, in display order
var annotatedStatuses = []analyzer.Status{analyzer.Status_Unsafe, analyzer.Status_Saved, analyzer.Status_Scratch}

// Registers of one family grouped by status
type FamilyGroup struct {
	Family   registers.Family
	ByStatus map[analyzer.Status]registers.Set
}

// Groups a result by family, then by status. Untouched registers are left out,
// and so are families with no touched register
func Group(result analyzer.Result) []FamilyGroup {
	var groups []FamilyGroup

	for _, family := range registers.Families() {
		group := FamilyGroup{Family: family, ByStatus: map[analyzer.Status]registers.Set{}}

		for _, status := range annotatedStatuses {
			if set := registers.SetOf(result.FamilyRegisters(family, status)...); !set.Empty() {
				group.ByStatus[status] = set
			}
		}

		if len(group.ByStatus) > 0 {
			groups = append(groups, group)
		}
	}

	return groups
}

// Returns the one line annotation shown above a subroutine label, e.g.
//
//	DrawSprite: data unsafe d3, saved d2 | address saved a2, scratch a0-a1
func Annotation(report analyzer.Report, style *Style) string {
	var builder strings.Builder

	builder.WriteString(style.Label.Sprint(report.Span.Label + ":"))

	groups := Group(report.Result)
	if len(groups) == 0 {
		builder.WriteString(" " + style.Untouched.Sprint("no registers used"))
		return builder.String()
	}

	for i, group := range groups {
		if i > 0 {
			builder.WriteString(" |")
		}

		builder.WriteString(" " + style.Family.Sprint(group.Family.String()))

		entries := make([]string, 0, len(group.ByStatus))
		for _, status := range annotatedStatuses {
			if set, ok := group.ByStatus[status]; ok {
				entries = append(entries, style.Status(status).Sprintf("%v %v", status, set.ListString()))
			}
		}

		builder.WriteString(" " + strings.Join(entries, ", "))
	}

	return builder.String()
}

// Returns the tooltip text of a register within an analyzed subroutine
func Hover(result analyzer.Result, register registers.Register) string {
	descriptor := registers.Registers.Descriptor(register)
	status := result.Status(register)

	var explanation string
	switch status {
	case analyzer.Status_Untouched:
		explanation = "not modified by this subroutine"
	case analyzer.Status_Scratch:
		explanation = "caller-saved, free to use without saving"
	case analyzer.Status_Saved:
		explanation = "preserved on the stack by this subroutine"
	case analyzer.Status_Unsafe:
		explanation = "modified without being saved: callers expect it preserved"
	}

	return fmt.Sprintf("%v (%v, %v): %v, %v.\n%v", register, register.Family(), register.Convention(), status, explanation, descriptor.Description)
}

// Returns movem instructions saving and restoring the given registers
func SaveRestoreExample(set registers.Set) (save string, restore string) {
	list := set.ListString()
	return fmt.Sprintf("movem.l %v,-(sp)", list), fmt.Sprintf("movem.l (sp)+,%v", list)
}

// Returns the unsafe registers of a report as a set
func UnsafeSet(report analyzer.Report) registers.Set {
	return registers.SetOf(report.Result.Registers(analyzer.Status_Unsafe)...)
}

// Returns the line indices of all subroutine labels with their annotation
func Annotations(reports []analyzer.Report, style *Style) map[int]string {
	annotations := make(map[int]string, len(reports))

	for _, report := range reports {
		annotations[report.Span.Start] = Annotation(report, style)
	}

	return annotations
}

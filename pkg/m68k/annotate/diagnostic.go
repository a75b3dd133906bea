package annotate

import (
	"fmt"

	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/m68k/analyzer"
)

type Severity uint8

const (
	Severity_Warning Severity = iota
	Severity_Error
)

func (s Severity) String() string {
	switch s {
	case Severity_Warning:
		return "warning"
	case Severity_Error:
		return "error"
	}

	panic("unreachable")
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// A located message about an unsafe register modification
type Diagnostic struct {
	Subroutine string   `json:"subroutine" yaml:"subroutine"`
	Line       int      `json:"line" yaml:"line"`
	Column     int      `json:"column" yaml:"column"`
	Length     int      `json:"length" yaml:"length"`
	Severity   Severity `json:"severity" yaml:"severity"`
	Message    string   `json:"message" yaml:"message"`

	// Instructions that would make the subroutine preserve every unsafe register
	SaveExample    string `json:"saveExample" yaml:"saveExample"`
	RestoreExample string `json:"restoreExample" yaml:"restoreExample"`
}

// Returns one diagnostic per unsafe site of the report
func Diagnostics(report analyzer.Report, severity Severity) []Diagnostic {
	if len(report.UnsafeSites) == 0 {
		return nil
	}

	save, restore := SaveRestoreExample(UnsafeSet(report))
	diagnostics := make([]Diagnostic, 0, len(report.UnsafeSites))

	for _, site := range report.UnsafeSites {
		diagnostics = append(diagnostics, Diagnostic{
			Subroutine:     report.Span.Label,
			Line:           site.Line,
			Column:         site.Column,
			Length:         site.Length,
			Severity:       severity,
			Message:        fmt.Sprintf("%v register %v is modified in %v but never saved", site.Family, site.Register, report.Span.Label),
			SaveExample:    save,
			RestoreExample: restore,
		})
	}

	return diagnostics
}

// Returns the diagnostics of all reports, in source order
func AllDiagnostics(reports []analyzer.Report, severity Severity) []Diagnostic {
	var diagnostics []Diagnostic

	for _, report := range reports {
		diagnostics = append(diagnostics, Diagnostics(report, severity)...)
	}

	return diagnostics
}

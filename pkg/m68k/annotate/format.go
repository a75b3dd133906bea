package annotate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/m68k/analyzer"
	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/utils"
	"gopkg.in/yaml.v3"
)

type Format uint8

const (
	Format_Text Format = iota
	Format_JSON
	Format_YAML
)

var ErrUnknownFormat = errors.New("unknown output format")

func (f Format) String() string {
	switch f {
	case Format_Text:
		return "text"
	case Format_JSON:
		return "json"
	case Format_YAML:
		return "yaml"
	}

	panic("unreachable")
}

// Returns the output format with the given name ("text", "json", "yaml")
func FormatByName(name string) (Format, error) {
	for _, format := range []Format{Format_Text, Format_JSON, Format_YAML} {
		if format.String() == strings.ToLower(name) {
			return format, nil
		}
	}

	return 0, utils.MakeError(ErrUnknownFormat, "'%v', expected one of text, json, yaml", name)
}

// Analysis results of one source file
type FileReport struct {
	Path        string            `json:"path" yaml:"path"`
	Subroutines []analyzer.Report `json:"subroutines" yaml:"subroutines"`
	Diagnostics []Diagnostic      `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`

	lines []string
}

func NewFileReport(path string, lines []string, reports []analyzer.Report, severity Severity) FileReport {
	return FileReport{
		Path:        path,
		Subroutines: reports,
		Diagnostics: AllDiagnostics(reports, severity),
		lines:       lines,
	}
}

// Returns the source lines the report was computed from
func (r *FileReport) Lines() []string {
	return r.lines
}

// Reports whether any subroutine of the file modifies a preserved register without saving it
func (r *FileReport) HasUnsafe() bool {
	for _, report := range r.Subroutines {
		if report.Result.HasUnsafe() {
			return true
		}
	}

	return false
}

// Writes file reports in the given format. style is only used by the text format
func Write(w io.Writer, format Format, files []FileReport, style *Style) error {
	switch format {
	case Format_Text:
		return writeText(w, files, style)
	case Format_JSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(files)
	case Format_YAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(files); err != nil {
			return err
		}
		return encoder.Close()
	}

	return utils.MakeError(ErrUnknownFormat, "%v", uint8(format))
}

func writeText(w io.Writer, files []FileReport, style *Style) error {
	var builder strings.Builder

	for _, file := range files {
		builder.WriteString(style.Family.Sprint(file.Path))
		builder.WriteString(fmt.Sprintf(" (%v subroutines)\n", len(file.Subroutines)))

		for _, report := range file.Subroutines {
			builder.WriteString(style.LineNo.Sprintf("%5d ", report.Span.Start+1))
			builder.WriteString(Annotation(report, style))
			builder.WriteString("\n")
		}

		for _, diagnostic := range file.Diagnostics {
			builder.WriteString(fmt.Sprintf("%v:%v:%v: %v: %v\n",
				file.Path, diagnostic.Line+1, diagnostic.Column+1, style.Unsafe.Sprint(diagnostic.Severity), diagnostic.Message))

			if diagnostic.Line < len(file.lines) {
				builder.WriteString("    ")
				builder.WriteString(Highlight(file.lines[diagnostic.Line], diagnostic.Column, diagnostic.Length, style.Unsafe.Sprint))
				builder.WriteString("\n")
			}

			builder.WriteString(style.Comment.Sprintf("    save with '%v', restore with '%v'\n", diagnostic.SaveExample, diagnostic.RestoreExample))
		}

		builder.WriteString("\n")
	}

	_, err := io.WriteString(w, builder.String())
	return err
}

// Returns the text with the byte range [column, column+length) passed through
// mark. Out of range columns are clamped to the text
func Highlight(text string, column, length int, mark func(...any) string) string {
	start := min(max(column, 0), len(text))
	end := min(max(start+length, start), len(text))

	return text[:start] + mark(text[start:end]) + text[end:]
}

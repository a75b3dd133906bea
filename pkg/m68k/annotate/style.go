package annotate

import (
	"github.com/fatih/color"
	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/m68k/analyzer"
)

// Colors used to render annotations. A Style is owned by whoever renders, there
// is no package level style
type Style struct {
	Label     *color.Color
	Family    *color.Color
	Untouched *color.Color
	Scratch   *color.Color
	Saved     *color.Color
	Unsafe    *color.Color
	Comment   *color.Color
	LineNo    *color.Color
}

// Returns the default style. If colored is false, rendering produces plain text
func NewStyle(colored bool) *Style {
	s := &Style{
		Label:     color.New(color.FgHiMagenta, color.Bold),
		Family:    color.New(color.FgWhite, color.Bold),
		Untouched: color.New(color.FgHiBlack),
		Scratch:   color.New(color.FgCyan),
		Saved:     color.New(color.FgGreen),
		Unsafe:    color.New(color.FgRed, color.Bold),
		Comment:   color.New(color.FgHiBlack),
		LineNo:    color.New(color.FgHiCyan),
	}

	for _, c := range s.all() {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return s
}

func (s *Style) all() []*color.Color {
	return []*color.Color{s.Label, s.Family, s.Untouched, s.Scratch, s.Saved, s.Unsafe, s.Comment, s.LineNo}
}

// Returns the color of a register status
func (s *Style) Status(status analyzer.Status) *color.Color {
	switch status {
	case analyzer.Status_Scratch:
		return s.Scratch
	case analyzer.Status_Saved:
		return s.Saved
	case analyzer.Status_Unsafe:
		return s.Unsafe
	}

	return s.Untouched
}

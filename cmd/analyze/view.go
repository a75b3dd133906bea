package analyze

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/m68k/analyzer"
	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/m68k/annotate"
	"github.com/rivo/tview"
	"github.com/spf13/cobra"
)

var ViewCmd = &cobra.Command{
	Use:   "view <file>",
	Short: "Browse an m68k assembly file with register annotations",
	Long: `Opens an interactive viewer showing the source with an annotation above every subroutine
label and unsafe register writes highlighted.

Keys:
  n / p     jump to the next / previous unsafe write
  r         reload and re-analyze the file
  q / Esc   quit`,
	Args: cobra.ExactArgs(1),
	Run:  runView,
}

func runView(cmd *cobra.Command, args []string) {
	settings, err := settingsFromConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	v := newViewer(analyzer.New(settings), args[0])
	if err := v.load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if err := v.app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}

type viewer struct {
	analyzer *analyzer.Analyzer
	path     string
	report   annotate.FileReport
	current  int

	app    *tview.Application
	source *tview.TextView
	status *tview.TextView
}

func newViewer(a *analyzer.Analyzer, path string) *viewer {
	v := &viewer{
		analyzer: a,
		path:     path,
		app:      tview.NewApplication(),
		source:   tview.NewTextView(),
		status:   tview.NewTextView(),
	}

	v.source.SetDynamicColors(true).
		SetRegions(true).
		SetWrap(false).
		SetBorder(true).
		SetTitle(" " + path + " ")

	v.status.SetDynamicColors(true).SetBorder(true).SetTitle(" unsafe writes ")

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(v.source, 0, 1, true).
		AddItem(v.status, 5, 0, false)

	v.app.SetRoot(layout, true).SetInputCapture(v.handleKey)

	return v
}

func (v *viewer) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEscape:
		v.app.Stop()
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case 'q':
			v.app.Stop()
		case 'n':
			v.jump(1)
		case 'p':
			v.jump(-1)
		case 'r':
			if err := v.load(); err != nil {
				v.status.SetText(fmt.Sprintf("[red::b]%v[-:-:-]", tview.Escape(err.Error())))
			}
		default:
			return event
		}

		return nil
	}

	return event
}

// Re-reads and re-analyzes the file, then redraws
func (v *viewer) load() error {
	report, err := analyzeFile(v.analyzer, v.path, annotate.Severity_Warning)
	if err != nil {
		return err
	}

	v.report = report
	v.current = -1
	v.source.SetText(renderSource(report, annotate.NewStyle(true)))
	v.showDiagnostic()

	return nil
}

// Highlights the next (direction 1) or previous (-1) unsafe write, wrapping around
func (v *viewer) jump(direction int) {
	total := len(v.report.Diagnostics)
	if total == 0 {
		return
	}

	v.current = ((v.current+direction)%total + total) % total
	v.source.Highlight(siteRegion(v.current)).ScrollToHighlight()
	v.showDiagnostic()
}

func (v *viewer) showDiagnostic() {
	if len(v.report.Diagnostics) == 0 {
		v.status.SetText("[green]no unsafe register writes[-]")
		return
	}

	if v.current < 0 {
		v.status.SetText(fmt.Sprintf("%v unsafe writes, press n to jump to the first one", len(v.report.Diagnostics)))
		return
	}

	diagnostic := v.report.Diagnostics[v.current]
	v.status.SetText(fmt.Sprintf("[red::b]%v/%v[-:-:-] line %v: %v\n[grey]save with '%v', restore with '%v'[-]",
		v.current+1, len(v.report.Diagnostics), diagnostic.Line+1,
		tview.Escape(diagnostic.Message),
		tview.Escape(diagnostic.SaveExample), tview.Escape(diagnostic.RestoreExample)))
}

func siteRegion(index int) string {
	return fmt.Sprintf("unsafe-%d", index)
}

// Returns the source as tview tagged text: line numbers, an annotation line above
// every subroutine label and each diagnostic column range wrapped in its own region
func renderSource(report annotate.FileReport, style *annotate.Style) string {
	annotations := annotate.Annotations(report.Subroutines, style)

	type site struct {
		index          int
		column, length int
	}

	sites := map[int][]site{}
	for i, diagnostic := range report.Diagnostics {
		sites[diagnostic.Line] = append(sites[diagnostic.Line], site{index: i, column: diagnostic.Column, length: diagnostic.Length})
	}

	var builder strings.Builder

	for i, line := range report.Lines() {
		if annotation, ok := annotations[i]; ok {
			builder.WriteString("      ; ")
			builder.WriteString(tview.TranslateANSI(annotation))
			builder.WriteString("\n")
		}

		builder.WriteString(fmt.Sprintf("[grey]%5d[-] ", i+1))

		lineSites := sites[i]
		sort.Slice(lineSites, func(a, b int) bool { return lineSites[a].column < lineSites[b].column })

		cursor := 0
		for _, s := range lineSites {
			start := min(max(s.column, cursor), len(line))
			end := min(max(s.column+s.length, start), len(line))

			builder.WriteString(tview.Escape(line[cursor:start]))
			builder.WriteString(fmt.Sprintf(`["%v"][red::b]%v[-:-:-][""]`, siteRegion(s.index), tview.Escape(line[start:end])))
			cursor = end
		}

		builder.WriteString(tview.Escape(line[cursor:]))
		builder.WriteString("\n")
	}

	return builder.String()
}

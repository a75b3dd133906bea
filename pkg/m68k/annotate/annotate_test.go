package annotate

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/m68k/analyzer"
	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/m68k/registers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var source = []string{
	"DrawSprite:",
	"  movem.l d2/a2,-(sp)",
	"  move.l (a0),d2",
	"  lea 16(a1),a2",
	"  clr.w d3",
	"  movem.l (sp)+,d2/a2",
	"  rts",
	"Nothing:",
	"  rts",
}

func analyze(t *testing.T) []analyzer.Report {
	reports := analyzer.AnalyzeFile(source)
	require.Len(t, reports, 2)
	return reports
}

func TestAnnotation_GroupsByFamilyThenStatus(t *testing.T) {
	reports := analyze(t)

	assert.Equal(t, "DrawSprite: data unsafe d3, saved d2 | address saved a2, scratch a0-a1", Annotation(reports[0], NewStyle(false)))
	assert.Equal(t, "Nothing: no registers used", Annotation(reports[1], NewStyle(false)))
}

func TestAnnotations_KeyedByLabelLine(t *testing.T) {
	annotations := Annotations(analyze(t), NewStyle(false))

	assert.Len(t, annotations, 2)
	assert.True(t, strings.HasPrefix(annotations[0], "DrawSprite:"))
	assert.True(t, strings.HasPrefix(annotations[7], "Nothing:"))
}

func TestGroup_SkipsUntouchedFamilies(t *testing.T) {
	var result analyzer.Result
	result[registers.D4] = analyzer.Status_Unsafe

	groups := Group(result)

	require.Len(t, groups, 1)
	assert.Equal(t, registers.Family_Data, groups[0].Family)
	assert.Equal(t, map[analyzer.Status]registers.Set{analyzer.Status_Unsafe: registers.SetOf(registers.D4)}, groups[0].ByStatus)
}

func TestHover(t *testing.T) {
	reports := analyze(t)

	hover := Hover(reports[0].Result, registers.D3)
	assert.Contains(t, hover, "D3 (data, preserved): unsafe")

	hover = Hover(reports[0].Result, registers.A0)
	assert.Contains(t, hover, "A0 (address, scratch): scratch")
}

func TestDiagnostics(t *testing.T) {
	reports := analyze(t)

	diagnostics := Diagnostics(reports[0], Severity_Warning)

	require.Len(t, diagnostics, 1)
	assert.Equal(t, Diagnostic{
		Subroutine:     "DrawSprite",
		Line:           4,
		Column:         8,
		Length:         2,
		Severity:       Severity_Warning,
		Message:        "data register D3 is modified in DrawSprite but never saved",
		SaveExample:    "movem.l d3,-(sp)",
		RestoreExample: "movem.l (sp)+,d3",
	}, diagnostics[0])

	assert.Empty(t, Diagnostics(reports[1], Severity_Warning))
	assert.Len(t, AllDiagnostics(reports, Severity_Error), 1)
}

func TestSaveRestoreExample(t *testing.T) {
	save, restore := SaveRestoreExample(registers.SetOf(registers.D2, registers.D3, registers.D4, registers.A6))

	assert.Equal(t, "movem.l d2-d4/a6,-(sp)", save)
	assert.Equal(t, "movem.l (sp)+,d2-d4/a6", restore)
}

func TestHighlight(t *testing.T) {
	mark := func(a ...any) string { return "<" + a[0].(string) + ">" }

	assert.Equal(t, "  clr.w <d3>", Highlight("  clr.w d3", 8, 2, mark))
	assert.Equal(t, "ab<>", Highlight("ab", 10, 2, mark))
	assert.Equal(t, "<ab>", Highlight("ab", -1, 5, mark))
}

func TestFormatByName(t *testing.T) {
	format, err := FormatByName("YAML")
	require.NoError(t, err)
	assert.Equal(t, Format_YAML, format)

	_, err = FormatByName("xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestWrite_Text(t *testing.T) {
	files := []FileReport{NewFileReport("sprite.s", source, analyze(t), Severity_Warning)}

	var buffer bytes.Buffer
	require.NoError(t, Write(&buffer, Format_Text, files, NewStyle(false)))

	output := buffer.String()
	assert.Contains(t, output, "sprite.s (2 subroutines)")
	assert.Contains(t, output, "    1 DrawSprite: data unsafe d3")
	assert.Contains(t, output, "sprite.s:5:9: warning: data register D3 is modified in DrawSprite but never saved")
	assert.Contains(t, output, "      clr.w d3\n")
	assert.Contains(t, output, "save with 'movem.l d3,-(sp)', restore with 'movem.l (sp)+,d3'")
	assert.True(t, files[0].HasUnsafe())
}

func TestWrite_JSON(t *testing.T) {
	files := []FileReport{NewFileReport("sprite.s", source, analyze(t), Severity_Warning)}

	var buffer bytes.Buffer
	require.NoError(t, Write(&buffer, Format_JSON, files, NewStyle(false)))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "sprite.s", decoded[0]["path"])
	assert.Len(t, decoded[0]["subroutines"], 2)
	assert.Len(t, decoded[0]["diagnostics"], 1)
}

func TestWrite_YAML(t *testing.T) {
	files := []FileReport{NewFileReport("sprite.s", source, analyze(t), Severity_Warning)}

	var buffer bytes.Buffer
	require.NoError(t, Write(&buffer, Format_YAML, files, NewStyle(false)))

	var decoded []struct {
		Path        string `yaml:"path"`
		Subroutines []struct {
			Span struct {
				Label string `yaml:"label"`
			} `yaml:"span"`
			Registers map[string]string `yaml:"registers"`
		} `yaml:"subroutines"`
	}
	require.NoError(t, yaml.Unmarshal(buffer.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	require.Len(t, decoded[0].Subroutines, 2)
	assert.Equal(t, "DrawSprite", decoded[0].Subroutines[0].Span.Label)
	assert.Equal(t, "unsafe", decoded[0].Subroutines[0].Registers["D3"])
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, Format(42), nil, NewStyle(false))

	assert.ErrorIs(t, err, ErrUnknownFormat)
}

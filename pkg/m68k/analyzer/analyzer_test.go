package analyzer

import (
	"encoding/json"
	"testing"

	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/m68k/registers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Bodies used by the tests checking properties that hold for any input
var sampleBodies = [][]string{
	nil,
	{"  rts"},
	{"  movem.l d2-d3,-(sp)", "  move.l d6,d0", "  movem.l (sp)+,d2-d3", "  rts"},
	{"  move.l a4,(a2)", "  rts"},
	{"  clr.l d0", "  clr.l d1", "  lea (a0),a1", "  move.l a1,a0", "  rts"},
	{"  clr.l d5", "  movem.l d5,-(sp)", "  movem.l (sp)+,d5", "  rts"},
	{"  link a5,#-8", "  move.l 8(a5),d2", "  unlk a5", "  rts"},
	{"  exg d2,a3", "  swap d4", "  ext.w d4", "  mulu d4,d7", "  rts"},
	{"  ; only comments", "", "  nop", "  garbage ((( d2", "  rts"},
	{"  movem.l d0-d7/a0-a6,-(sp)", "  moveq #0,d3", "  movem.l (sp)+,d0-d7/a0-a6", "  rte"},
}

var analyzers = map[string]*Analyzer{
	"destination": New(DefaultSettings),
	"any-operand": New(Settings{WritePolicy: WritePolicy_AnyOperand}),
}

func TestAnalyzeSubroutine_ScenarioSaveRestoreAroundScratchMove(t *testing.T) {
	lines := []string{"movem.l d2-d3,-(sp)", "move.l d6,d0", "movem.l (sp)+,d2-d3", "rts"}

	result := AnalyzeSubroutine(lines)

	assert.Equal(t, []registers.Register{registers.D2, registers.D3}, result.Registers(Status_Saved))
	assert.Equal(t, []registers.Register{registers.D0}, result.Registers(Status_Scratch))
	assert.Empty(t, result.Registers(Status_Unsafe))
	assert.Equal(t, Status_Untouched, result.Status(registers.D6), "d6 is only a source operand")
	assert.Len(t, result.Registers(Status_Untouched), 12)
}

func TestAnalyzeSubroutine_ScenarioSaveRestoreAroundScratchMove_AnyOperand(t *testing.T) {
	lines := []string{"movem.l d2-d3,-(sp)", "move.l d6,d0", "movem.l (sp)+,d2-d3", "rts"}

	result := analyzers["any-operand"].AnalyzeSubroutine(lines)

	assert.Equal(t, []registers.Register{registers.D2, registers.D3}, result.Registers(Status_Saved))
	assert.Equal(t, []registers.Register{registers.D6}, result.Registers(Status_Unsafe))
	assert.Equal(t, []registers.Register{registers.D0}, result.Registers(Status_Scratch))
	assert.Len(t, result.Registers(Status_Untouched), 11)
}

func TestAnalyzeSubroutine_EmptyBody(t *testing.T) {
	spans := LocateSubroutines([]string{"Empty:", "  rts"})
	require.Len(t, spans, 1)

	result := AnalyzeSubroutine(spans[0].Body([]string{"Empty:", "  rts"}))

	assert.Len(t, result.Registers(Status_Untouched), 15)
}

func TestAnalyzeSubroutine_AddressingModeBase(t *testing.T) {
	result := AnalyzeSubroutine([]string{"move.l a4,(a2)"})

	assert.Equal(t, Status_Untouched, result.Status(registers.A2))
	assert.Equal(t, Status_Untouched, result.Status(registers.A4))

	result = analyzers["any-operand"].AnalyzeSubroutine([]string{"move.l a4,(a2)"})

	assert.Equal(t, Status_Untouched, result.Status(registers.A2))
	assert.Equal(t, Status_Unsafe, result.Status(registers.A4))
}

func TestAnalyzeSubroutine_SaveAfterModificationIsSaved(t *testing.T) {
	result := AnalyzeSubroutine([]string{"  clr.l d5", "  movem.l d5,-(sp)", "  rts"})

	assert.Equal(t, Status_Saved, result.Status(registers.D5))
}

func TestAnalyzeSubroutine_StatusMapIsTotal(t *testing.T) {
	for name, analyzer := range analyzers {
		for _, body := range sampleBodies {
			result := analyzer.AnalyzeSubroutine(body)

			assert.Len(t, result.Map(), int(registers.TOTAL_REGISTERS), "%v: %v", name, body)

			total := 0
			for _, status := range Statuses() {
				total += len(result.Registers(status))
			}
			assert.Equal(t, int(registers.TOTAL_REGISTERS), total, "%v: %v", name, body)
		}
	}
}

func TestAnalyzeSubroutine_ScratchRegistersAreNeverUnsafe(t *testing.T) {
	scratch := registers.SetOf(registers.D0, registers.D1, registers.A0, registers.A1)

	for name, analyzer := range analyzers {
		for _, body := range sampleBodies {
			state := analyzer.NewTracker().Track(body)
			result := Resolve(state)

			for _, register := range registers.All() {
				switch result.Status(register) {
				case Status_Scratch:
					assert.True(t, scratch.Has(register), "%v: %v in %v", name, register, body)
					assert.True(t, state.Touched.Has(register), "%v: %v in %v", name, register, body)
				case Status_Unsafe:
					assert.False(t, scratch.Has(register), "%v: %v in %v", name, register, body)
				}
			}
		}
	}
}

func TestAnalyzeSubroutine_SavedAndModifiedPreservedRegistersAreSaved(t *testing.T) {
	for name, analyzer := range analyzers {
		for _, body := range sampleBodies {
			state := analyzer.NewTracker().Track(body)
			result := Resolve(state)

			for _, register := range state.Saved.Intersection(state.Modified).Registers() {
				if register.Convention() == registers.Convention_Preserved {
					assert.Equal(t, Status_Saved, result.Status(register), "%v: %v in %v", name, register, body)
				}
			}

			for _, register := range state.Modified.Difference(state.Saved).Registers() {
				if register.Convention() == registers.Convention_Preserved {
					assert.Equal(t, Status_Unsafe, result.Status(register), "%v: %v in %v", name, register, body)
				}
			}
		}
	}
}

func TestAnalyzeSubroutine_Idempotent(t *testing.T) {
	for name, analyzer := range analyzers {
		tracker := analyzer.NewTracker()

		for _, body := range sampleBodies {
			first := analyzer.AnalyzeSubroutine(body)

			// A reused tracker must not leak state from the previous body
			tracker.Track([]string{"  clr.l d2", "  movem.l d3,-(sp)"})
			second := Resolve(tracker.Track(body))

			assert.Equal(t, first, second, "%v: %v", name, body)
		}
	}
}

func TestAnalyzeSubroutine_WholeSetSaved(t *testing.T) {
	result := AnalyzeSubroutine(sampleBodies[9])

	for _, register := range registers.All() {
		if register.Convention() == registers.Convention_Scratch {
			assert.Equal(t, Status_Scratch, result.Status(register), "%v", register)
		} else {
			assert.Equal(t, Status_Saved, result.Status(register), "%v", register)
		}
	}
}

func TestAnalyzeFile(t *testing.T) {
	lines := []string{
		"; sprite routines",
		"DrawSprite:",
		"  movem.l d2/a2,-(sp)",
		"  move.l (a0),d2",
		"  lea 16(a1),a2",
		"  clr.w d3",
		"  movem.l (sp)+,d2/a2",
		"  rts",
		"",
		"ClearScreen:",
		"  moveq #0,d0",
		"  move.w #1999,d7",
		"  rts",
		"Orphan:",
		"  clr.l d4",
	}

	reports := AnalyzeFile(lines)

	require.Len(t, reports, 2)

	draw := reports[0]
	assert.Equal(t, "DrawSprite", draw.Span.Label)
	assert.Equal(t, Status_Saved, draw.Result.Status(registers.D2))
	assert.Equal(t, Status_Saved, draw.Result.Status(registers.A2))
	assert.Equal(t, Status_Unsafe, draw.Result.Status(registers.D3))
	assert.Equal(t, Status_Scratch, draw.Result.Status(registers.A0))
	assert.Equal(t, Status_Scratch, draw.Result.Status(registers.A1))
	require.Len(t, draw.UnsafeSites, 1)
	assert.Equal(t, 5, draw.UnsafeSites[0].Line)
	assert.Equal(t, registers.D3, draw.UnsafeSites[0].Register)

	clearScreen := reports[1]
	assert.Equal(t, "ClearScreen", clearScreen.Span.Label)
	assert.Equal(t, Status_Scratch, clearScreen.Result.Status(registers.D0))
	assert.Equal(t, Status_Unsafe, clearScreen.Result.Status(registers.D7))
	require.Len(t, clearScreen.UnsafeSites, 1)
	assert.Equal(t, 11, clearScreen.UnsafeSites[0].Line)
}

func TestAnalyzeFile_EmptyInput(t *testing.T) {
	assert.Empty(t, AnalyzeFile(nil))
}

func TestReport_JSON(t *testing.T) {
	reports := AnalyzeFile([]string{"Foo:", "  clr.l d2", "  rts"})
	require.Len(t, reports, 1)

	data, err := json.Marshal(reports[0])
	require.NoError(t, err)

	var decoded struct {
		Span        Span              `json:"span"`
		State       map[string]string `json:"state"`
		Registers   map[string]string `json:"registers"`
		UnsafeSites []struct {
			Line     int    `json:"line"`
			Register string `json:"register"`
			Family   string `json:"family"`
		} `json:"unsafeSites"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "Foo", decoded.Span.Label)
	assert.Equal(t, "d2", decoded.State["modified"])
	assert.Equal(t, "unsafe", decoded.Registers["D2"])
	require.Len(t, decoded.UnsafeSites, 1)
	assert.Equal(t, 1, decoded.UnsafeSites[0].Line)
	assert.Equal(t, "D2", decoded.UnsafeSites[0].Register)
	assert.Equal(t, "data", decoded.UnsafeSites[0].Family)
}

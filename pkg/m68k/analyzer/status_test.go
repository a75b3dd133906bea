package analyzer

import (
	"encoding/json"
	"testing"

	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/m68k/registers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestResolve_PriorityOrder(t *testing.T) {
	state := State{
		Touched:  registers.SetOf(registers.D0, registers.A1, registers.D2, registers.D3, registers.D4),
		Modified: registers.SetOf(registers.D0, registers.D2, registers.D3, registers.D5),
		Saved:    registers.SetOf(registers.A1, registers.D2, registers.D6),
	}

	result := Resolve(state)

	assert.Equal(t, Status_Scratch, result.Status(registers.D0), "scratch even if modified and unsaved")
	assert.Equal(t, Status_Scratch, result.Status(registers.A1), "scratch even if saved")
	assert.Equal(t, Status_Saved, result.Status(registers.D2))
	assert.Equal(t, Status_Unsafe, result.Status(registers.D3))
	assert.Equal(t, Status_Untouched, result.Status(registers.D4), "read only")
	assert.Equal(t, Status_Untouched, result.Status(registers.D5), "modified but never touched")
	assert.Equal(t, Status_Untouched, result.Status(registers.D6), "saved but never touched")
}

func TestResolve_EmptyStateIsAllUntouched(t *testing.T) {
	result := Resolve(State{})

	assert.Len(t, result.Registers(Status_Untouched), 15)
	assert.False(t, result.HasUnsafe())
}

func TestResult_Queries(t *testing.T) {
	var result Result
	result[registers.D3] = Status_Unsafe
	result[registers.A4] = Status_Unsafe
	result[registers.A0] = Status_Scratch

	assert.Equal(t, []registers.Register{registers.D3, registers.A4}, result.Registers(Status_Unsafe))
	assert.Equal(t, []registers.Register{registers.A4}, result.FamilyRegisters(registers.Family_Address, Status_Unsafe))
	assert.True(t, result.HasUnsafe())
	assert.Len(t, result.Map(), 15)
}

func TestResult_JSON(t *testing.T) {
	var result Result
	result[registers.D2] = Status_Saved

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded, 15)
	assert.Equal(t, "saved", decoded["D2"])
	assert.Equal(t, "untouched", decoded["A6"])
}

func TestResult_YAML(t *testing.T) {
	var result Result
	result[registers.A5] = Status_Unsafe

	data, err := yaml.Marshal(result)
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Len(t, decoded, 15)
	assert.Equal(t, "unsafe", decoded["A5"])
}

func TestStatus_TextRoundTrip(t *testing.T) {
	for _, status := range Statuses() {
		text, err := status.MarshalText()
		require.NoError(t, err)

		var decoded Status
		require.NoError(t, decoded.UnmarshalText(text))
		assert.Equal(t, status, decoded)
	}

	var status Status
	assert.ErrorIs(t, status.UnmarshalText([]byte("dirty")), ErrUnknownStatus)
}

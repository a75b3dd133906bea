package asm

import (
	"strings"
	"testing"

	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/m68k/registers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterTokens_ParenthesizedFlag(t *testing.T) {
	tokens := RegisterTokens("a4,(a2)")

	require.Len(t, tokens, 2)
	assert.Equal(t, registers.A4, tokens[0].Register)
	assert.False(t, tokens[0].Parenthesized)
	assert.Equal(t, 0, tokens[0].Offset)
	assert.Equal(t, registers.A2, tokens[1].Register)
	assert.True(t, tokens[1].Parenthesized)
	assert.Equal(t, 4, tokens[1].Offset)
}

func TestRegisterTokens_AddressingModes(t *testing.T) {
	for _, operand := range []string{"(a3)", "(a3)+", "-(a3)", "(8,a3)", "8(a3)", "(a0,a3.l)"} {
		set := registers.Set(0)
		for _, token := range RegisterTokens(operand) {
			if token.Register == registers.A3 {
				assert.True(t, token.Parenthesized, operand)
			}
			set = set.Add(token.Register)
		}
		assert.True(t, set.Has(registers.A3), operand)
	}
}

func TestRegisterTokens_WholeWordsOnly(t *testing.T) {
	assert.Empty(t, RegisterTokens("bsr load_d0"))
	assert.Empty(t, RegisterTokens("jsr _LVOd2"))
	assert.Empty(t, RegisterTokens("move.l #$d0,x"))
	assert.Empty(t, RegisterTokens("dc.w %a1"))
	assert.Empty(t, RegisterTokens("jmp foo.a5"))
	assert.Empty(t, RegisterTokens("d0x"))
	assert.Empty(t, RegisterTokens("ad0"))
}

func TestRegisterTokens_SizeSuffixAllowed(t *testing.T) {
	tokens := RegisterTokens("(a0,D1.W)")

	require.Len(t, tokens, 2)
	assert.Equal(t, registers.D1, tokens[1].Register)
}

func TestRegisterTokens_StackPointerIsNotTracked(t *testing.T) {
	assert.Empty(t, RegisterTokens("a7,-(sp)"))
}

func TestReadSource(t *testing.T) {
	lines, err := ReadSource(strings.NewReader("Foo:\r\n  rts\r\n"))

	require.NoError(t, err)
	assert.Equal(t, []string{"Foo:", "  rts"}, lines)
}

func TestReadFile_MissingFile(t *testing.T) {
	_, err := ReadFile("/this/path/does/not/exist.s")

	assert.ErrorIs(t, err, ErrReadSource)
}

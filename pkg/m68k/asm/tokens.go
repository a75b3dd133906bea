package asm

import (
	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/m68k/registers"
)

// A tracked register reference found in source text
type RegisterToken struct {
	Register registers.Register

	// Byte offset of the token within the scanned text
	Offset int

	// The token is enclosed in parentheses, i.e. it is an addressing mode base
	// or index such as "(a4)", "(8,a2)" or "(a0,d1.w)"
	Parenthesized bool
}

// Length of a register token in source text
const RegisterTokenLength = 2

// Returns every tracked register token of the text, in order of appearance.
//
// A token is a data or address register name ("d0".."d7", "a0".."a6", any case)
// matched as a whole word: it can't be preceded by identifier characters (letters,
// digits, '_', '.') or numeric literal prefixes ('$', '%', '@'), nor followed by
// letters, digits or '_'. A following '.' is allowed for index size suffixes
// ("d0.w"). "a7" is a valid token but not a tracked register and is skipped.
func RegisterTokens(text string) []RegisterToken {
	var tokens []RegisterToken
	depth := 0

	for i := 0; i < len(text); i++ {
		c := text[i]

		switch c {
		case '(':
			depth++
			continue
		case ')':
			if depth > 0 {
				depth--
			}
			continue
		}

		if i+1 >= len(text) || !isRegisterPrefix(c) || text[i+1] < '0' || text[i+1] > '7' {
			continue
		}
		if i > 0 && (isIdentifierChar(text[i-1]) || isLiteralPrefix(text[i-1])) {
			continue
		}
		if i+2 < len(text) && isWordChar(text[i+2]) {
			continue
		}

		register, err := registers.ByName(text[i : i+2])
		if err != nil {
			continue
		}

		tokens = append(tokens, RegisterToken{
			Register:      register,
			Offset:        i,
			Parenthesized: depth > 0,
		})
		i++
	}

	return tokens
}

func isRegisterPrefix(c byte) bool {
	return c == 'd' || c == 'D' || c == 'a' || c == 'A'
}

func isWordChar(c byte) bool {
	return c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentifierChar(c byte) bool {
	return c == '.' || isWordChar(c)
}

func isLiteralPrefix(c byte) bool {
	return c == '$' || c == '%' || c == '@'
}

// Package asm implements a small line lexer for Motorola 68000 assembly sources.
//
// Every source line falls in exactly one of four states: blank, comment, label
// or instruction. Labels are recognized only when the label is alone on its line
// ("identifier:"), and comments start with ';'. Anything else is an instruction
// line, split into an opcode (mnemonic plus optional size suffix) and its operand
// text. The lexer never fails: unrecognized text is still an instruction line
// whose mnemonic nobody knows.
package asm

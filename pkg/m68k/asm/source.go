package asm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/utils"
)

var ErrReadSource = errors.New("failed to read assembly source")

// Longest accepted source line
const MaxLineLength = 1024 * 1024

// Reads an assembly source into its ordered sequence of lines
func ReadSource(r io.Reader) ([]string, error) {
	var lines []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineLength)

	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, utils.MakeError(ErrReadSource, "%v", err)
	}

	return lines, nil
}

// Reads an assembly source file into its ordered sequence of lines
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, utils.MakeError(ErrReadSource, "%v", err)
	}
	defer f.Close()

	lines, err := ReadSource(f)
	if err != nil {
		return nil, fmt.Errorf("'%v': %w", path, err)
	}

	return lines, nil
}
